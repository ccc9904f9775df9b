package create_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
)

// Coordinator координатор бронирования
type Coordinator interface {
	BookSlot(ctx context.Context, clientID int64, slotID uuid.UUID, details scheduler.BookingDetails) (*domain.Reservation, error)
}

// MetricsRecorder учёт результатов бронирования
type MetricsRecorder interface {
	RecordReservation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
