package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/psqlbuilder"
)

const tableName = "reservations"

// Время и врач записи хранятся в слоте, поэтому чтение всегда идёт через JOIN
var reservationColumns = []string{
	"r.id",
	"r.client_id",
	"r.slot_id",
	"r.status",
	"s.provider_id",
	"s.slot_date",
	"s.start_time",
	"s.end_time",
	"r.medical_condition",
	"r.notes",
	"r.cancellation_reason",
	"r.cancelled_at",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись
// Партиальный уникальный индекс (client_id, slot_id) WHERE status <> 'cancelled'
// не даёт создать вторую активную запись клиента на тот же слот.
// ON CONFLICT DO NOTHING не прерывает транзакцию, и компенсация в ней ещё может выполниться
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"client_id",
			"slot_id",
			"status",
			"medical_condition",
			"notes",
		).
		Values(
			reservation.ID,
			reservation.ClientID,
			reservation.SlotID,
			reservation.Status,
			reservation.MedicalCondition,
			reservation.Notes,
		).
		Suffix("ON CONFLICT (client_id, slot_id) WHERE status <> 'cancelled' DO NOTHING").
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrDuplicateReservation
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, storage.ErrDuplicateReservation
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	created := *reservation
	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

// LockClient берёт advisory-блокировку клиента до конца текущей транзакции
// Параллельные записи одного клиента выполняют проверку конфликтов и вставку по очереди
func (r *Repository) LockClient(ctx context.Context, clientID int64) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return ErrNoTransaction
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1::bigint)", clientID); err != nil {
		return fmt.Errorf("%w: LockClient - execute: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectReservations().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// GetActiveByClientAndDate получает неотменённые записи клиента на дату
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetActiveByClientAndDate(ctx context.Context, clientID int64, date time.Time) ([]*domain.Reservation, error) {
	selectBuilder := selectReservations().
		Where(squirrel.Eq{
			"r.client_id": clientID,
			"s.slot_date": date.Format(domain.DateFormat),
		}).
		Where(squirrel.NotEq{"r.status": inactiveStatuses()}).
		OrderBy("s.start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	return r.query(ctx, "GetActiveByClientAndDate", selectBuilder)
}

// GetByClientID получает записи клиента, сначала новые
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	selectBuilder := selectReservations().
		Where(squirrel.Eq{"r.client_id": clientID}).
		OrderBy("s.slot_date DESC", "s.start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *status})
	}

	return r.query(ctx, "GetByClientID", selectBuilder)
}

// GetByProvider получает записи врача с фильтрацией
// Поддерживает фильтрацию по:
// - дате (Date) - опционально
// - статусу (Status) - опционально
// - включению отменённых записей (IncludeInactive)
func (r *Repository) GetByProvider(ctx context.Context, filter domain.ProviderReservationsFilter) ([]*domain.Reservation, error) {
	selectBuilder := selectReservations().
		Where(squirrel.Eq{"s.provider_id": filter.ProviderID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.slot_date": filter.Date.Format(domain.DateFormat)})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"r.status": inactiveStatuses()})
	}

	// Для конкретной даты - по времени приёма, иначе сначала новые
	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("s.start_time ASC", "r.created_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("s.slot_date DESC", "s.start_time DESC")
	}

	return r.query(ctx, "GetByProvider", selectBuilder)
}

// UpdateStatus переводит запись из update.From в update.To одним условным UPDATE
// Если статус уже изменился, возвращает storage.ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, update domain.StatusUpdate) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	at := update.At
	if at.IsZero() {
		at = time.Now()
	}

	updateBuilder := psqlbuilder.Update(tableName).
		Set("status", update.To).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": update.ReservationID, "status": update.From})

	if update.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *update.Notes)
	}
	if update.To == domain.StatusCancelled {
		updateBuilder = updateBuilder.
			Set("cancellation_reason", update.CancellationReason).
			Set("cancelled_at", at)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо записи нет, либо её статус уже не update.From
		if _, err := r.GetByID(ctx, update.ReservationID); err != nil {
			return nil, err
		}
		return nil, storage.ErrStatusConflict
	}

	return r.GetByID(ctx, update.ReservationID)
}

func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}

func selectReservations() squirrel.SelectBuilder {
	return psqlbuilder.Select(reservationColumns...).
		From(tableName + " r").
		Join("time_slots s ON s.id = r.slot_id")
}

func inactiveStatuses() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.ClientID,
		&reservation.SlotID,
		&reservation.Status,
		&reservation.ProviderID,
		&reservation.Date,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.MedicalCondition,
		&reservation.Notes,
		&reservation.CancellationReason,
		&reservation.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.Date = domain.DateOnly(reservation.Date)
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}
