package models

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модели

// SetAvailabilityRequest запрос врача на закрытие или открытие слота
type SetAvailabilityRequest struct {
	UserID int64     `json:"userId"`
	SlotID uuid.UUID `json:"slotId"`
	Closed bool      `json:"closed"`
}

// Response модели

// ClinicHoursResponse конфигурация рабочего дня и шаблон слотов
type ClinicHoursResponse struct {
	DayStart            string           `json:"dayStart"` // "08:00"
	DayEnd              string           `json:"dayEnd"`   // "17:00"
	SlotDurationMinutes int              `json:"slotDurationMinutes"`
	DefaultMaxCapacity  int              `json:"defaultMaxCapacity"`
	SlotsPerDay         int              `json:"slotsPerDay"`
	Template            []WindowResponse `json:"template"`
}

// WindowResponse окно шаблона
type WindowResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Display   string `json:"display"` // "8:00 AM - 9:30 AM"
}

// SlotResponse состояние слота
type SlotResponse struct {
	ID              uuid.UUID `json:"id"`
	ProviderID      int64     `json:"providerId"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	Display         string    `json:"display"`
	MaxCapacity     int       `json:"maxCapacity"`
	CurrentBookings int       `json:"currentBookings"`
	IsAvailable     bool      `json:"isAvailable"`
	IsClosed        bool      `json:"isClosed"`
}

// Методы конвертации

// FromClinicHours собирает ответ по конфигурации и шаблону окон
func FromClinicHours(hours domain.ClinicHours, windows []domain.SlotWindow) *ClinicHoursResponse {
	resp := &ClinicHoursResponse{
		DayStart:            hours.DayStart.String(),
		DayEnd:              hours.DayEnd.String(),
		SlotDurationMinutes: hours.SlotDurationMinutes,
		DefaultMaxCapacity:  hours.DefaultMaxCapacity,
		SlotsPerDay:         hours.SlotsPerDay(),
		Template:            make([]WindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		resp.Template = append(resp.Template, WindowResponse{
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			Display:   w.Display(),
		})
	}

	return resp
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.TimeSlot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:              s.ID,
		ProviderID:      s.ProviderID,
		Date:            s.Date.Format(domain.DateFormat),
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		Display:         s.Window().Display(),
		MaxCapacity:     s.MaxCapacity,
		CurrentBookings: s.CurrentBookings,
		IsAvailable:     s.IsAvailable,
		IsClosed:        s.IsClosed,
	}
}
