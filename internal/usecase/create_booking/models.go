package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// Request модель запроса на запись к врачу
type Request struct {
	ClientID         int64     // ID клиента (из X-User-ID)
	SlotID           uuid.UUID // ID слота
	MedicalCondition *string   // Жалобы (опционально)
	Notes            *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID               uuid.UUID
	ClientID         int64
	ProviderID       int64
	SlotID           uuid.UUID
	Date             time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	Display          string
	Status           string
	MedicalCondition *string
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
