package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// SlotStore persists time slots. IncrementBooking and DecrementBooking must be
// atomic per slot; the coordinator relies on them for capacity.
// Implementations return the sentinel errors of internal/infra/storage.
type SlotStore interface {
	GetSlots(ctx context.Context, providerID int64, date time.Time) ([]*domain.TimeSlot, error)
	GetSlotByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	// UpsertSlots inserts slots whose (provider, date, start time) does not exist yet
	UpsertSlots(ctx context.Context, slots []*domain.TimeSlot) error
	// IncrementBooking takes one place iff current_bookings < max_capacity and the slot is open
	IncrementBooking(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	// DecrementBooking releases one place, never going below zero
	DecrementBooking(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	SetClosed(ctx context.Context, id uuid.UUID, closed bool) (*domain.TimeSlot, error)
}

// ReservationStore persists reservations
type ReservationStore interface {
	// LockClient serializes bookings of one client until the enclosing
	// TransactionManager.Do returns. It must be called inside Do.
	LockClient(ctx context.Context, clientID int64) error
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	// GetActiveByClientAndDate returns the client's non-cancelled reservations on date
	GetActiveByClientAndDate(ctx context.Context, clientID int64, date time.Time) ([]*domain.Reservation, error)
	// UpdateStatus moves the reservation from -> to. It fails with ErrStatusConflict
	// if the stored status is no longer from.
	UpdateStatus(ctx context.Context, update domain.StatusUpdate) (*domain.Reservation, error)
}

// TransactionManager groups store calls into one unit of work. Stores without
// rollback keep the unit's locks but not its atomicity.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
