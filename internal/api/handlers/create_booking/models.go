package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	createBooking "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID           string  `json:"slotId"`
	MedicalCondition *string `json:"medicalCondition,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID               uuid.UUID `json:"id"`
	ClientID         int64     `json:"clientId"`
	ProviderID       int64     `json:"providerId"`
	SlotID           uuid.UUID `json:"slotId"`
	Date             string    `json:"date"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	Display          string    `json:"display"`
	Status           string    `json:"status"`
	MedicalCondition *string   `json:"medicalCondition,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        string    `json:"createdAt"`
	UpdatedAt        string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	slotID, err := uuid.Parse(r.SlotID)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:         clientID,
		SlotID:           slotID,
		MedicalCondition: r.MedicalCondition,
		Notes:            r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:               resp.ID,
		ClientID:         resp.ClientID,
		ProviderID:       resp.ProviderID,
		SlotID:           resp.SlotID,
		Date:             resp.Date.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		EndTime:          resp.EndTime.String(),
		Display:          resp.Display,
		Status:           resp.Status,
		MedicalCondition: resp.MedicalCondition,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
