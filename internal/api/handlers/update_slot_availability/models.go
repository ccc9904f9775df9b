package update_slot_availability

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/slots/models"
)

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	Closed *bool `json:"closed"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(userID int64, slotID uuid.UUID) *models.SetAvailabilityRequest {
	return &models.SetAvailabilityRequest{
		UserID: userID,
		SlotID: slotID,
		Closed: *r.Closed,
	}
}
