package slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Coordinator интерфейс координатора слотов
type Coordinator interface {
	ClinicHours() domain.ClinicHours
	GenerateTimeSlots(date time.Time) []domain.SlotWindow
	SetSlotAvailability(ctx context.Context, actorID int64, slotID uuid.UUID, closed bool) (*domain.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
