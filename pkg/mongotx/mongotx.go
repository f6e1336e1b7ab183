package mongotx

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

// ErrStartSession ошибка открытия сессии MongoDB
var ErrStartSession = errors.New("mongotx: failed to start session")

// TransactionManager менеджер транзакций MongoDB.
// Транзакции требуют replica set (или sharded cluster)
type TransactionManager struct {
	client *mongo.Client
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(client *mongo.Client) *TransactionManager {
	return &TransactionManager{client: client}
}

// Do выполняет fn в транзакции с read concern majority
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, options.Transaction().
		SetReadConcern(readconcern.Majority()).
		SetWriteConcern(writeconcern.Majority()), fn)
}

// DoSerializable выполняет fn в snapshot-транзакции.
// Конфликтующие записи в одни и те же документы приводят к WriteConflict
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority()), fn)
}

// DoReadOnly выполняет fn в snapshot-транзакции на primary
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetReadPreference(readpref.Primary()), fn)
}

// IsInTransaction true, если контекст несет сессию MongoDB
func IsInTransaction(ctx context.Context) bool {
	return mongo.SessionFromContext(ctx) != nil
}

func (m *TransactionManager) run(ctx context.Context, opts *options.TransactionOptions, fn func(ctx context.Context) error) error {
	if IsInTransaction(ctx) {
		return fn(ctx)
	}

	sess, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStartSession, err)
	}
	defer sess.EndSession(ctx)

	// WithTransaction сам повторяет попытки при TransientTransactionError
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, opts)
	if err != nil {
		if isWriteConflict(err) {
			return fmt.Errorf("%w: %v", txmanager.ErrSerializationFailure, err)
		}
		return err
	}

	return nil
}

// transientTransactionLabel метка ошибки, которую сервер ставит на конфликт записи в транзакции
const transientTransactionLabel = "TransientTransactionError"

func isWriteConflict(err error) bool {
	var labeled mongo.LabeledError
	if errors.As(err, &labeled) {
		return labeled.HasErrorLabel(transientTransactionLabel)
	}
	return false
}
