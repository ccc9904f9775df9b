package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date       string         `json:"date"`
	ProviderID int64          `json:"providerId"`
	Slots      []SlotResponse `json:"slots"`
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID              uuid.UUID `json:"id"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	Display         string    `json:"display"`
	MaxCapacity     int       `json:"maxCapacity"`
	CurrentBookings int       `json:"currentBookings"`
	AvailableSpots  int       `json:"availableSpots"`
	IsAvailable     bool      `json:"isAvailable"`
}

// ToUseCaseRequest формирует запрос к use case (с парсингом даты)
func ToUseCaseRequest(userID, providerID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		UserID:     userID,
		ProviderID: providerID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	result := &SlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		ProviderID: resp.ProviderID,
		Slots:      make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			ID:              s.ID,
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			Display:         s.Display,
			MaxCapacity:     s.MaxCapacity,
			CurrentBookings: s.CurrentBookings,
			AvailableSpots:  s.AvailableSpots,
			IsAvailable:     s.IsAvailable,
		})
	}

	return result
}
