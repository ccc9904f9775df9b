package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// SlotWindow is a [StartTime, EndTime) interval on a given date
type SlotWindow struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// DurationMinutes returns the window length
func (w SlotWindow) DurationMinutes() int {
	return w.EndTime.Minutes() - w.StartTime.Minutes()
}

// Display renders the window in 12-hour form, e.g. "8:00 AM - 9:30 AM"
func (w SlotWindow) Display() string {
	return w.StartTime.Format12h() + " - " + w.EndTime.Format12h()
}

// Overlaps reports whether two windows share any time on the same date.
// Windows that only touch at a boundary do not overlap.
func (w SlotWindow) Overlaps(other SlotWindow) bool {
	if !SameDate(w.Date, other.Date) {
		return false
	}
	return w.StartTime.IsBefore(other.EndTime) && w.EndTime.IsAfter(other.StartTime)
}

// TimeSlot represents a bookable window for one provider on one date
type TimeSlot struct {
	ID              uuid.UUID
	ProviderID      int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	MaxCapacity     int
	CurrentBookings int
	IsAvailable     bool
	IsClosed        bool // closed manually by the provider

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTimeSlot creates an empty open slot for a generated window
func NewTimeSlot(providerID int64, window SlotWindow, maxCapacity int) *TimeSlot {
	slot := &TimeSlot{
		ID:          uuid.New(),
		ProviderID:  providerID,
		Date:        DateOnly(window.Date),
		StartTime:   window.StartTime,
		EndTime:     window.EndTime,
		MaxCapacity: maxCapacity,
	}
	slot.RecomputeAvailability()
	return slot
}

// Window returns the slot interval
func (s *TimeSlot) Window() SlotWindow {
	return SlotWindow{Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime}
}

// HasCapacity returns true if at least one more reservation fits
func (s *TimeSlot) HasCapacity() bool {
	return s.CurrentBookings < s.MaxCapacity
}

// CanBeBooked returns true if the slot is open and not full
func (s *TimeSlot) CanBeBooked() bool {
	return s.IsAvailable && !s.IsClosed && s.HasCapacity()
}

// RemainingCapacity returns the number of free places
func (s *TimeSlot) RemainingCapacity() int {
	if s.CurrentBookings >= s.MaxCapacity {
		return 0
	}
	return s.MaxCapacity - s.CurrentBookings
}

// RecomputeAvailability restores the IsAvailable invariant after a mutation
func (s *TimeSlot) RecomputeAvailability() {
	s.IsAvailable = !s.IsClosed && s.CurrentBookings < s.MaxCapacity
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *TimeSlot) OccupancyRate() float64 {
	if s.MaxCapacity == 0 {
		return 0
	}
	return float64(s.CurrentBookings) / float64(s.MaxCapacity) * 100
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate compares calendar dates ignoring time of day and location
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
