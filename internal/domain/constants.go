package domain

// Clinic defaults, used when the configuration omits a value
const (
	DefaultDayStart            = "08:00"
	DefaultDayEnd              = "17:00"
	DefaultSlotDurationMinutes = 90
	DefaultMaxCapacity         = 5
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinCapacity                 = 1
	MaxCapacity                 = 100
	MaxNotesLength              = 500
	MaxMedicalConditionLength   = 1000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses statuses that no longer hold a place in a slot and are
// ignored by conflict checks
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
}

// TerminalStatuses statuses with no outgoing transitions
var TerminalStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
