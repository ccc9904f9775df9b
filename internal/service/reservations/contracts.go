package reservations

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
)

// Coordinator координатор бронирования
type Coordinator interface {
	GetSlot(ctx context.Context, slotID uuid.UUID) (*domain.TimeSlot, error)
	CancelReservation(ctx context.Context, reservationID uuid.UUID, actorID int64, reason *string) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, reservationID uuid.UUID, actorID int64, status domain.ReservationStatus, notes *string) (*domain.Reservation, error)
	CheckConflict(ctx context.Context, clientID int64, candidate scheduler.Candidate) (bool, error)
}

// ReservationRepository чтение записей
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByProvider(ctx context.Context, filter domain.ProviderReservationsFilter) ([]*domain.Reservation, error)
}

// MetricsRecorder учёт результатов операций с записями
type MetricsRecorder interface {
	RecordReservation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
