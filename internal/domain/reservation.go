package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusScheduled ReservationStatus = "scheduled"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

// ErrUnknownStatus is returned when parsing an unknown status value
var ErrUnknownStatus = errors.New("domain: unknown reservation status")

// statusTransitions lists the allowed target statuses for each status
var statusTransitions = map[ReservationStatus][]ReservationStatus{
	StatusScheduled: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// ParseReservationStatus converts a string into a known status
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	if _, ok := statusTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// CanTransition reports whether from -> to is allowed
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status has no outgoing transitions
func (s ReservationStatus) IsTerminal() bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

// Reservation represents a client's claim on one place in a time slot
type Reservation struct {
	ID         uuid.UUID
	ClientID   int64
	SlotID     uuid.UUID
	Status     ReservationStatus
	ProviderID int64

	// Denormalized from the slot for conflict checks
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	MedicalCondition   *string
	Notes              *string // provider notes
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the reserved interval
func (r *Reservation) Window() SlotWindow {
	return SlotWindow{Date: r.Date, StartTime: r.StartTime, EndTime: r.EndTime}
}

// IsActive returns true if the reservation still counts for conflicts
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// HoldsCapacity returns true if the reservation occupies a place in its slot
func (r *Reservation) HoldsCapacity() bool {
	return r.Status == StatusScheduled
}

// CanTransitionTo reports whether the reservation may move to status
func (r *Reservation) CanTransitionTo(status ReservationStatus) bool {
	return CanTransition(r.Status, status)
}

// IsParticipant returns true if the user is the reservation's client or provider
func (r *Reservation) IsParticipant(userID int64) bool {
	return r.ClientID == userID || r.ProviderID == userID
}

// StatusUpdate describes a compare-and-set status change From -> To
type StatusUpdate struct {
	ReservationID      uuid.UUID
	From               ReservationStatus
	To                 ReservationStatus
	Notes              *string // nil keeps the stored notes
	CancellationReason *string
	At                 time.Time
}

// ProviderReservationsFilter фильтр для получения записей врача
type ProviderReservationsFilter struct {
	ProviderID      int64              // Обязательный параметр
	Date            *time.Time         // Конкретная дата (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые записи
}
