package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

const table = "bookings"

var columns = []string{
	"id",
	"studio",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"items",
	"subtotal_cents",
	"studio_cost_cents",
	"surcharge_cents",
	"total_cents",
	"payment_status",
	"checkout_session_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"created_at",
	"updated_at",
	"paid_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// Если в контексте есть транзакция, запрос выполняется в ней
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if booking.EndDate.IsZero() {
		booking.EndDate = booking.StartDate
	}

	if booking.Items == nil {
		booking.Items = []domain.LineItem{}
	}
	items, err := json.Marshal(booking.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncodeItems, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"studio",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"items",
			"subtotal_cents",
			"studio_cost_cents",
			"surcharge_cents",
			"total_cents",
			"payment_status",
			"checkout_session_id",
			"customer_name",
			"customer_email",
			"customer_phone",
		).
		Values(
			booking.ID.String(),
			booking.Studio,
			booking.StartDate,
			booking.EndDate,
			booking.StartTime,
			booking.EndTime,
			string(items),
			int64(booking.Subtotal),
			int64(booking.StudioCost),
			int64(booking.Surcharge),
			int64(booking.Total),
			string(booking.PaymentStatus),
			booking.CheckoutSessionID,
			booking.Customer.Name,
			booking.Customer.Email,
			booking.Customer.Phone,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру.
//
// Примеры:
//
//  1. Занятость студии на период (для расчета слотов):
//     filter := domain.BookingsFilter{Studio: "THE EXTENSION", From: &from, To: &to,
//     Statuses: domain.BlockingStatuses, PendingCreatedAfter: &cutoff}
//
//  2. Дашборд за июнь 2025:
//     filter := domain.BookingsFilter{Month: ptr.Ptr(6), Year: ptr.Ptr(2025)}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	// Имя студии сравнивается без учета регистра
	if filter.Studio != "" {
		selectBuilder = selectBuilder.Where(squirrel.Expr("LOWER(studio) = LOWER(?)", filter.Studio))
	}

	// Пересечение [start_date, end_date] с [From, To]
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": domain.DateOf(*filter.To)})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": domain.DateOf(*filter.From)})
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"payment_status": statuses})
	}

	// Протухшие pending не учитываются
	if filter.PendingCreatedAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.NotEq{"payment_status": string(domain.StatusPending)},
			squirrel.Gt{"created_at": *filter.PendingCreatedAfter},
		})
	}
	if filter.CreatedBefore != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"created_at": *filter.CreatedBefore})
	}

	if filter.Month != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("EXTRACT(MONTH FROM start_date) = ?", *filter.Month))
	}
	if filter.Year != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("EXTRACT(YEAR FROM start_date) = ?", *filter.Year))
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC", "created_at ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit).Offset(filter.Offset)
	}

	// В транзакции блокируем найденные строки до конца транзакции
	if dbmetrics.IsInTransaction(ctx) && filter.Studio != "" {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// LockStudio берет транзакционную advisory-блокировку на студию.
// Блокировка снимается при завершении транзакции, поэтому вызов вне транзакции - ошибка
func (r *Repository) LockStudio(ctx context.Context, studio string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(LOWER($1)))", studio); err != nil {
		return fmt.Errorf("%w: LockStudio - %w", ErrExecQuery, err)
	}
	return nil
}

// UpdateStatus переводит бронирование из статуса from в статус to.
// Если текущий статус отличается от from, возвращает ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("payment_status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String(), "payment_status": string(from)})

	if to == domain.StatusPaid {
		updateBuilder = updateBuilder.Set("paid_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "нет такой записи" и "статус уже другой"
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusConflict
	}

	return nil
}

// SetCheckoutSession сохраняет ID Stripe checkout сессии
func (r *Repository) SetCheckoutSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("checkout_session_id", sessionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetCheckoutSession - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCheckoutSession - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCheckoutSession - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ExpirePending переводит в expired перечисленные бронирования, если они все еще pending
// и созданы раньше createdBefore. Возвращает количество обновленных записей
func (r *Repository) ExpirePending(ctx context.Context, ids []uuid.UUID, createdBefore time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	query, args, err := psqlbuilder.Update(table).
		Set("payment_status", string(domain.StatusExpired)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": idStrings, "payment_status": string(domain.StatusPending)}).
		Where(squirrel.Lt{"created_at": createdBefore}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                                      domain.Booking
		items                                  []byte
		subtotal, studioCost, surcharge, total int64
		status                                 string
		sessionID                              sql.NullString
		paidAt                                 sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.Studio,
		&b.StartDate,
		&b.EndDate,
		&b.StartTime,
		&b.EndTime,
		&items,
		&subtotal,
		&studioCost,
		&surcharge,
		&total,
		&status,
		&sessionID,
		&b.Customer.Name,
		&b.Customer.Email,
		&b.Customer.Phone,
		&b.CreatedAt,
		&b.UpdatedAt,
		&paidAt,
	)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &b.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	}

	b.Subtotal = types.Cents(subtotal)
	b.StudioCost = types.Cents(studioCost)
	b.Surcharge = types.Cents(surcharge)
	b.Total = types.Cents(total)
	b.PaymentStatus = domain.PaymentStatus(status)
	b.StartDate = domain.DateOf(b.StartDate)
	b.EndDate = domain.DateOf(b.EndDate)

	if sessionID.Valid {
		b.CheckoutSessionID = &sessionID.String
	}
	if paidAt.Valid {
		b.PaidAt = &paidAt.Time
	}

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
