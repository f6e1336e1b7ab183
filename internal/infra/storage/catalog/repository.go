package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

const pgUniqueViolation = "23505"

// Repository репозиторий каталога (студии и доп. услуги) в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает каталог целиком.
// Пустой каталог (нет ни студий, ни услуг) считается отсутствующим
func (r *Repository) Get(ctx context.Context) (*domain.Catalog, error) {
	studios, err := r.getStudios(ctx)
	if err != nil {
		return nil, err
	}

	services, err := r.getServices(ctx)
	if err != nil {
		return nil, err
	}

	if len(studios) == 0 && len(services) == 0 {
		return nil, ErrCatalogNotFound
	}

	catalog := &domain.Catalog{Studios: studios, Services: services}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	query, args, err := psqlbuilder.Select("updated_at").From("catalog_meta").Where(squirrel.Eq{"id": 1}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build meta query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: Get - scan meta: %v", ErrScanRow, err)
	}
	catalog.UpdatedAt = updatedAt.Time

	return catalog, nil
}

// Replace полностью заменяет каталог. Должен вызываться в транзакции
func (r *Repository) Replace(ctx context.Context, catalog *domain.Catalog) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, t := range []string{"catalog_studios", "catalog_services"} {
		query, args, err := psqlbuilder.Delete(t).ToSql()
		if err != nil {
			return fmt.Errorf("%w: Replace - build delete %s: %v", ErrBuildQuery, t, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Replace - delete %s: %v", ErrExecQuery, t, err)
		}
	}

	if len(catalog.Studios) > 0 {
		insert := psqlbuilder.Insert("catalog_studios").
			Columns("id", "name", "price_per_hour", "min_booking_minutes", "max_bookable_days", "position")
		for i, s := range catalog.Studios {
			insert = insert.Values(s.ID, s.Name, int64(s.PricePerHour), s.MinBookingMinutes, s.MaxBookableDays, i)
		}
		if err := r.exec(ctx, executor, insert, "insert studios"); err != nil {
			return err
		}
	}

	if len(catalog.Services) > 0 {
		insert := psqlbuilder.Insert("catalog_services").
			Columns("id", "name", "price_per_hour", "image_url", "position")
		for i, s := range catalog.Services {
			insert = insert.Values(s.ID, s.Name, int64(s.PricePerHour), s.ImageURL, i)
		}
		if err := r.exec(ctx, executor, insert, "insert services"); err != nil {
			return err
		}
	}

	updatedAt := time.Now().UTC()
	meta := psqlbuilder.Insert("catalog_meta").
		Columns("id", "updated_at").
		Values(1, updatedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET updated_at = EXCLUDED.updated_at")

	if err := r.exec(ctx, executor, meta, "touch meta"); err != nil {
		return err
	}

	catalog.UpdatedAt = updatedAt
	return nil
}

func (r *Repository) exec(ctx context.Context, executor DBExecutor, b squirrel.InsertBuilder, op string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build %s: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicateName, pqErr.Detail)
		}
		return fmt.Errorf("%w: Replace - %s: %v", ErrExecQuery, op, err)
	}
	return nil
}

func (r *Repository) getStudios(ctx context.Context) ([]domain.Studio, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price_per_hour", "min_booking_minutes", "max_bookable_days").
		From("catalog_studios").
		OrderBy("position ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getStudios - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getStudios - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	studios := make([]domain.Studio, 0)
	for rows.Next() {
		var (
			s     domain.Studio
			price int64
		)
		if err := rows.Scan(&s.ID, &s.Name, &price, &s.MinBookingMinutes, &s.MaxBookableDays); err != nil {
			return nil, fmt.Errorf("%w: getStudios - scan row: %v", ErrScanRow, err)
		}
		s.PricePerHour = types.Cents(price)
		studios = append(studios, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getStudios - rows error: %v", ErrScanRow, err)
	}

	return studios, nil
}

func (r *Repository) getServices(ctx context.Context) ([]domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price_per_hour", "image_url").
		From("catalog_services").
		OrderBy("position ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var (
			s     domain.Service
			price int64
		)
		if err := rows.Scan(&s.ID, &s.Name, &price, &s.ImageURL); err != nil {
			return nil, fmt.Errorf("%w: getServices - scan row: %v", ErrScanRow, err)
		}
		s.PricePerHour = types.Cents(price)
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
