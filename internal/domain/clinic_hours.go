package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// ErrInvalidClinicHours is returned by ClinicHours.Validate
var ErrInvalidClinicHours = errors.New("domain: invalid clinic hours")

// ClinicHours is the process-wide working-day configuration.
// It is read-only after startup.
type ClinicHours struct {
	DayStart            types.TimeString
	DayEnd              types.TimeString
	SlotDurationMinutes int
	DefaultMaxCapacity  int
}

// DefaultClinicHours returns 08:00-17:00 with 90 minute slots and 5 places per slot
func DefaultClinicHours() ClinicHours {
	return ClinicHours{
		DayStart:            types.TimeString(DefaultDayStart),
		DayEnd:              types.TimeString(DefaultDayEnd),
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		DefaultMaxCapacity:  DefaultMaxCapacity,
	}
}

// Validate checks value ranges and that the day is not empty
func (c ClinicHours) Validate() error {
	if err := c.DayStart.Validate(); err != nil {
		return fmt.Errorf("%w: day start: %v", ErrInvalidClinicHours, err)
	}
	if err := c.DayEnd.Validate(); err != nil {
		return fmt.Errorf("%w: day end: %v", ErrInvalidClinicHours, err)
	}
	if !c.DayStart.IsBefore(c.DayEnd) {
		return fmt.Errorf("%w: day start %s must be before day end %s", ErrInvalidClinicHours, c.DayStart, c.DayEnd)
	}
	if c.SlotDurationMinutes < MinSlotDurationMinutes || c.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes, got %d",
			ErrInvalidClinicHours, MinSlotDurationMinutes, MaxSlotDurationMinutes, c.SlotDurationMinutes)
	}
	if c.DefaultMaxCapacity < MinCapacity || c.DefaultMaxCapacity > MaxCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d, got %d",
			ErrInvalidClinicHours, MinCapacity, MaxCapacity, c.DefaultMaxCapacity)
	}
	return nil
}

// SlotsPerDay returns how many whole slots fit in the working day
func (c ClinicHours) SlotsPerDay() int {
	if c.SlotDurationMinutes <= 0 {
		return 0
	}
	span := c.DayEnd.Minutes() - c.DayStart.Minutes()
	if span <= 0 {
		return 0
	}
	return span / c.SlotDurationMinutes
}
