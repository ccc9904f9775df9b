package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/psqlbuilder"
)

const tableName = "time_slots"

var slotColumns = []string{
	"id",
	"provider_id",
	"slot_date",
	"start_time",
	"end_time",
	"max_capacity",
	"current_bookings",
	"is_available",
	"is_closed",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSlots получает слоты врача на дату, упорядоченные по времени начала
func (r *Repository) GetSlots(ctx context.Context, providerID int64, date time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"provider_id": providerID,
			"slot_date":   date.Format(domain.DateFormat),
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetSlotByID получает слот по ID
func (r *Repository) GetSlotByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// UpsertSlots вставляет слоты одним запросом
// Слоты, уже существующие по (provider_id, slot_date, start_time), пропускаются
func (r *Repository) UpsertSlots(ctx context.Context, slots []*domain.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"provider_id",
			"slot_date",
			"start_time",
			"end_time",
			"max_capacity",
			"current_bookings",
			"is_available",
			"is_closed",
		)

	for _, slot := range slots {
		insert = insert.Values(
			slot.ID,
			slot.ProviderID,
			slot.Date.Format(domain.DateFormat),
			slot.StartTime,
			slot.EndTime,
			slot.MaxCapacity,
			slot.CurrentBookings,
			slot.IsAvailable,
			slot.IsClosed,
		)
	}

	query, args, err := insert.
		Suffix("ON CONFLICT (provider_id, slot_date, start_time) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertSlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// IncrementBooking занимает одно место в слоте одним условным UPDATE
// Условие current_bookings < max_capacity AND NOT is_closed проверяется самой БД,
// поэтому параллельные запросы не могут превысить вместимость
func (r *Repository) IncrementBooking(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Set("is_available", squirrel.Expr("(current_bookings + 1 < max_capacity AND NOT is_closed)")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_closed": false}).
		Where("current_bookings < max_capacity").
		Suffix(returning()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: IncrementBooking - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Условие не прошло: слота нет, либо он заполнен или закрыт
		if _, getErr := r.GetSlotByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, storage.ErrSlotFull
	}
	if err != nil {
		return nil, fmt.Errorf("%w: IncrementBooking - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// DecrementBooking освобождает одно место, счётчик не опускается ниже нуля
func (r *Repository) DecrementBooking(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("current_bookings", squirrel.Expr("GREATEST(current_bookings - 1, 0)")).
		Set("is_available", squirrel.Expr("(GREATEST(current_bookings - 1, 0) < max_capacity AND NOT is_closed)")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DecrementBooking - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: DecrementBooking - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// SetClosed закрывает или открывает слот вручную
func (r *Repository) SetClosed(ctx context.Context, id uuid.UUID, closed bool) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_closed", closed).
		Set("is_available", squirrel.Expr("(NOT ?::boolean AND current_bookings < max_capacity)", closed)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SetClosed - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetClosed - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.ProviderID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.MaxCapacity,
		&slot.CurrentBookings,
		&slot.IsAvailable,
		&slot.IsClosed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.Date = domain.DateOnly(slot.Date)
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func returning() string {
	return "RETURNING " + strings.Join(slotColumns, ", ")
}
