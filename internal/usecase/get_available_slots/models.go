package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// Request модель запроса слотов врача на дату
type Request struct {
	UserID     int64     // ID пользователя (для логирования, 0 для анонимного запроса)
	ProviderID int64     // ID врача
	Date       time.Time // Дата без времени
}

// Response модель ответа со слотами
type Response struct {
	Date       time.Time
	ProviderID int64
	Slots      []Slot
}

// Slot модель временного слота
type Slot struct {
	ID              uuid.UUID
	StartTime       types.TimeString // "08:00"
	EndTime         types.TimeString // "09:30"
	Display         string           // "8:00 AM - 9:30 AM"
	MaxCapacity     int
	CurrentBookings int
	AvailableSpots  int
	IsAvailable     bool
}
