package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/mongotx"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

const (
	bookingsCollection = "bookings"
	locksCollection    = "studio_locks"
	mongoOpTimeout     = 5 * time.Second
)

// bookingDocument представление бронирования в MongoDB
type bookingDocument struct {
	ID        string    `bson:"_id"`
	Studio    string    `bson:"studio"`
	StudioKey string    `bson:"studio_key"`
	StartDate time.Time `bson:"start_date"`
	EndDate   time.Time `bson:"end_date"`
	StartTime string    `bson:"start_time"`
	EndTime   string    `bson:"end_time"`

	Items      []domain.LineItem `bson:"items"`
	Subtotal   int64             `bson:"subtotal_cents"`
	StudioCost int64             `bson:"studio_cost_cents"`
	Surcharge  int64             `bson:"surcharge_cents"`
	Total      int64             `bson:"total_cents"`

	PaymentStatus     string  `bson:"payment_status"`
	CheckoutSessionID *string `bson:"checkout_session_id,omitempty"`

	CustomerName  string `bson:"customer_name"`
	CustomerEmail string `bson:"customer_email"`
	CustomerPhone string `bson:"customer_phone"`

	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
	PaidAt    *time.Time `bson:"paid_at,omitempty"`
}

// MongoRepository репозиторий бронирований в MongoDB
type MongoRepository struct {
	coll  *mongo.Collection
	locks *mongo.Collection
	now   func() time.Time
}

// NewMongoRepository создает репозиторий бронирований поверх базы MongoDB
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		coll:  db.Collection(bookingsCollection),
		locks: db.Collection(locksCollection),
		now:   time.Now,
	}
}

// EnsureIndexes создает индексы коллекции бронирований
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "studio_key", Value: 1}, {Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}},
			Options: options.Index().SetName("studio_dates_idx"),
		},
		{
			Keys:    bson.D{{Key: "payment_status", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("status_created_idx"),
		},
		{
			Keys: bson.D{{Key: "checkout_session_id", Value: 1}},
			Options: options.Index().SetName("checkout_session_uniq").SetUnique(true).
				SetPartialFilterExpression(bson.M{"checkout_session_id": bson.M{"$exists": true}}),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("%w: EnsureIndexes - %v", ErrExecQuery, err)
	}
	return nil
}

// Create сохраняет новое бронирование
func (r *MongoRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if booking.EndDate.IsZero() {
		booking.EndDate = booking.StartDate
	}
	if booking.Items == nil {
		booking.Items = []domain.LineItem{}
	}

	now := r.now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, toDocument(booking)); err != nil {
		return nil, fmt.Errorf("%w: Create - insert booking: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *MongoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	var doc bookingDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - find booking: %w", ErrExecQuery, err)
	}

	return fromDocument(&doc)
}

// List получает бронирования по фильтру. Семантика фильтра совпадает с Repository.List
func (r *MongoRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "created_at", Value: 1}})
	if filter.Limit > 0 {
		opts = opts.SetLimit(int64(filter.Limit)).SetSkip(int64(filter.Offset))
	}

	cursor, err := r.coll.Find(ctx, buildMongoFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: List - find bookings: %w", ErrExecQuery, err)
	}
	defer cursor.Close(ctx)

	bookings := make([]*domain.Booking, 0)
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: List - decode booking: %v", ErrScanRow, err)
		}
		b, err := fromDocument(&doc)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - cursor error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// LockStudio записывает документ-блокировку студии в текущей транзакции.
// Параллельная транзакция по той же студии получит WriteConflict
func (r *MongoRepository) LockStudio(ctx context.Context, studio string) error {
	if !mongotx.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}

	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	_, err := r.locks.UpdateOne(ctx,
		bson.M{"_id": studioKey(studio)},
		bson.M{"$inc": bson.M{"version": 1}, "$set": bson.M{"locked_at": r.now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%w: LockStudio - %w", ErrExecQuery, err)
	}
	return nil
}

// UpdateStatus переводит бронирование из статуса from в статус to
func (r *MongoRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus) error {
	opCtx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	now := r.now().UTC()
	set := bson.M{"payment_status": string(to), "updated_at": now}
	if to == domain.StatusPaid {
		set["paid_at"] = now
	}

	res, err := r.coll.UpdateOne(opCtx,
		bson.M{"_id": id.String(), "payment_status": string(from)},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - %v", ErrExecQuery, err)
	}

	if res.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusConflict
	}
	return nil
}

// SetCheckoutSession сохраняет ID Stripe checkout сессии
func (r *MongoRepository) SetCheckoutSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"checkout_session_id": sessionID, "updated_at": r.now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("%w: SetCheckoutSession - %v", ErrExecQuery, err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ExpirePending переводит в expired перечисленные бронирования, если они все еще pending
// и созданы раньше createdBefore
func (r *MongoRepository) ExpirePending(ctx context.Context, ids []uuid.UUID, createdBefore time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	res, err := r.coll.UpdateMany(ctx,
		bson.M{
			"_id":            bson.M{"$in": idStrings},
			"payment_status": string(domain.StatusPending),
			"created_at":     bson.M{"$lt": createdBefore.UTC()},
		},
		bson.M{"$set": bson.M{"payment_status": string(domain.StatusExpired), "updated_at": r.now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - %v", ErrExecQuery, err)
	}

	return res.ModifiedCount, nil
}

// buildMongoFilter переводит domain.BookingsFilter в фильтр MongoDB
func buildMongoFilter(filter domain.BookingsFilter) bson.M {
	query := bson.M{}
	var and []bson.M

	if filter.Studio != "" {
		query["studio_key"] = studioKey(filter.Studio)
	}
	if filter.To != nil {
		query["start_date"] = bson.M{"$lte": domain.DateOf(*filter.To)}
	}
	if filter.From != nil {
		query["end_date"] = bson.M{"$gte": domain.DateOf(*filter.From)}
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query["payment_status"] = bson.M{"$in": statuses}
	}

	if filter.PendingCreatedAfter != nil {
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"payment_status": bson.M{"$ne": string(domain.StatusPending)}},
			bson.M{"created_at": bson.M{"$gt": filter.PendingCreatedAfter.UTC()}},
		}})
	}
	if filter.CreatedBefore != nil {
		query["created_at"] = bson.M{"$lt": filter.CreatedBefore.UTC()}
	}

	var expr bson.A
	if filter.Month != nil {
		expr = append(expr, bson.M{"$eq": bson.A{bson.M{"$month": "$start_date"}, *filter.Month}})
	}
	if filter.Year != nil {
		expr = append(expr, bson.M{"$eq": bson.A{bson.M{"$year": "$start_date"}, *filter.Year}})
	}
	if len(expr) > 0 {
		and = append(and, bson.M{"$expr": bson.M{"$and": expr}})
	}

	if len(and) > 0 {
		query["$and"] = and
	}
	return query
}

func studioKey(studio string) string {
	return strings.ToLower(strings.TrimSpace(studio))
}

func toDocument(b *domain.Booking) *bookingDocument {
	return &bookingDocument{
		ID:                b.ID.String(),
		Studio:            b.Studio,
		StudioKey:         studioKey(b.Studio),
		StartDate:         domain.DateOf(b.StartDate),
		EndDate:           domain.DateOf(b.EffectiveEndDate()),
		StartTime:         b.StartTime.String(),
		EndTime:           b.EndTime.String(),
		Items:             b.Items,
		Subtotal:          int64(b.Subtotal),
		StudioCost:        int64(b.StudioCost),
		Surcharge:         int64(b.Surcharge),
		Total:             int64(b.Total),
		PaymentStatus:     string(b.PaymentStatus),
		CheckoutSessionID: b.CheckoutSessionID,
		CustomerName:      b.Customer.Name,
		CustomerEmail:     b.Customer.Email,
		CustomerPhone:     b.Customer.Phone,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
		PaidAt:            b.PaidAt,
	}
}

func fromDocument(doc *bookingDocument) (*domain.Booking, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id %q: %v", ErrScanRow, doc.ID, err)
	}

	items := doc.Items
	if items == nil {
		items = []domain.LineItem{}
	}

	return &domain.Booking{
		ID:                id,
		Studio:            doc.Studio,
		StartDate:         domain.DateOf(doc.StartDate.UTC()),
		EndDate:           domain.DateOf(doc.EndDate.UTC()),
		StartTime:         types.TimeLabel(doc.StartTime),
		EndTime:           types.TimeLabel(doc.EndTime),
		Items:             items,
		Subtotal:          types.Cents(doc.Subtotal),
		StudioCost:        types.Cents(doc.StudioCost),
		Surcharge:         types.Cents(doc.Surcharge),
		Total:             types.Cents(doc.Total),
		PaymentStatus:     domain.PaymentStatus(doc.PaymentStatus),
		CheckoutSessionID: doc.CheckoutSessionID,
		Customer: domain.Customer{
			Name:  doc.CustomerName,
			Email: doc.CustomerEmail,
			Phone: doc.CustomerPhone,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		PaidAt:    doc.PaidAt,
	}, nil
}
