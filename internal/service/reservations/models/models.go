package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модели

// CancelReservationRequest запрос на отмену записи
type CancelReservationRequest struct {
	UserID             int64   `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса записи врачом
type UpdateStatusRequest struct {
	UserID int64   `json:"userId"`
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// GetClientReservationsRequest запрос записей клиента
type GetClientReservationsRequest struct {
	UserID   int64   `json:"userId"`
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetProviderReservationsRequest запрос записей врача
type GetProviderReservationsRequest struct {
	UserID          int64      `json:"userId"`
	ProviderID      int64      `json:"providerId"`
	Date            *time.Time `json:"date,omitempty"`            // Фильтр по дате (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProviderReservationsRequest) ToDomainFilter() (domain.ProviderReservationsFilter, error) {
	filter := domain.ProviderReservationsFilter{
		ProviderID:      r.ProviderID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CheckConflictRequest запрос проверки конфликта для слота
type CheckConflictRequest struct {
	UserID int64     `json:"userId"`
	SlotID uuid.UUID `json:"slotId"`
}

// Response модели

// ReservationResponse ответ с данными записи
type ReservationResponse struct {
	ID                 uuid.UUID `json:"id"`
	ClientID           int64     `json:"clientId"`
	ProviderID         int64     `json:"providerId"`
	SlotID             uuid.UUID `json:"slotId"`
	Date               string    `json:"date"`      // "2025-03-10"
	StartTime          string    `json:"startTime"` // "09:30"
	EndTime            string    `json:"endTime"`   // "11:00"
	Display            string    `json:"display"`   // "9:30 AM - 11:00 AM"
	Status             string    `json:"status"`
	MedicalCondition   *string   `json:"medicalCondition,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
	CancelledAt        *string   `json:"cancelledAt,omitempty"` // RFC 3339
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком записей
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// ConflictResponse результат проверки конфликта
type ConflictResponse struct {
	SlotID      uuid.UUID `json:"slotId"`
	HasConflict bool      `json:"hasConflict"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		ClientID:           r.ClientID,
		ProviderID:         r.ProviderID,
		SlotID:             r.SlotID,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		Display:            r.Window().Display(),
		Status:             string(r.Status),
		MedicalCondition:   r.MedicalCondition,
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelled := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}
