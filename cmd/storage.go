package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/m04kA/SMC-StudioBooking/internal/config"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/metrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/mongotx"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

// bookingStore общий набор методов репозиториев бронирований (PostgreSQL и MongoDB)
type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	LockStudio(ctx context.Context, studio string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus) error
	SetCheckoutSession(ctx context.Context, id uuid.UUID, sessionID string) error
	ExpirePending(ctx context.Context, ids []uuid.UUID, createdBefore time.Time) (int64, error)
}

type catalogStore interface {
	Get(ctx context.Context) (*domain.Catalog, error)
	Replace(ctx context.Context, catalog *domain.Catalog) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории и менеджер транзакций выбранного хранилища
type storage struct {
	bookings bookingStore
	catalog  catalogStore
	tx       txManager
	close    func()
}

var (
	_ bookingStore = (*bookingRepo.Repository)(nil)
	_ bookingStore = (*bookingRepo.MongoRepository)(nil)
	_ catalogStore = (*catalogRepo.Repository)(nil)
	_ catalogStore = (*catalogRepo.MongoRepository)(nil)
	_ txManager    = (*txmanager.TransactionManager)(nil)
	_ txManager    = (*mongotx.TransactionManager)(nil)
)

func openStorage(cfg *config.Config, m *metrics.Metrics, log *logger.Logger, stopMetricsCh <-chan struct{}) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		return openMongo(cfg.Mongo, log)
	default:
		return openPostgres(cfg, m, log, stopMetricsCh)
	}
}

func openPostgres(cfg *config.Config, m *metrics.Metrics, log *logger.Logger, stopMetricsCh <-chan struct{}) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Info("Successfully connected to PostgreSQL (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// С выключенными метриками обёртка просто проксирует вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopMetricsCh)
	if m != nil {
		log.Info("Database metrics collection started")
	}

	return &storage{
		bookings: bookingRepo.NewRepository(wrappedDB),
		catalog:  catalogRepo.NewRepository(wrappedDB),
		tx:       txmanager.NewTransactionManager(wrappedDB),
		close: func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL: %v", err)
			}
		},
	}, nil
}

func openMongo(cfg config.MongoConfig, log *logger.Logger) (*storage, error) {
	timeout := time.Duration(cfg.ConnectTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	closeClient := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error("Failed to disconnect MongoDB: %v", err)
		}
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		closeClient()
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	log.Info("Successfully connected to MongoDB (db=%s)", cfg.Database)

	db := client.Database(cfg.Database)
	bookings := bookingRepo.NewMongoRepository(db)
	if err := bookings.EnsureIndexes(ctx); err != nil {
		closeClient()
		return nil, fmt.Errorf("ensure mongo indexes: %w", err)
	}

	return &storage{
		bookings: bookings,
		catalog:  catalogRepo.NewMongoRepository(db),
		tx:       mongotx.NewTransactionManager(client),
		close:    closeClient,
	}, nil
}
