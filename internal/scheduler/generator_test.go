package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestGenerateTimeSlots_DefaultClinicHours(t *testing.T) {
	windows := GenerateTimeSlots(testDate, domain.DefaultClinicHours())

	expected := []struct {
		start, end, display string
	}{
		{"08:00", "09:30", "8:00 AM - 9:30 AM"},
		{"09:30", "11:00", "9:30 AM - 11:00 AM"},
		{"11:00", "12:30", "11:00 AM - 12:30 PM"},
		{"12:30", "14:00", "12:30 PM - 2:00 PM"},
		{"14:00", "15:30", "2:00 PM - 3:30 PM"},
		{"15:30", "17:00", "3:30 PM - 5:00 PM"},
	}

	require.Len(t, windows, len(expected))
	for i, want := range expected {
		assert.Equal(t, types.TimeString(want.start), windows[i].StartTime)
		assert.Equal(t, types.TimeString(want.end), windows[i].EndTime)
		assert.Equal(t, want.display, windows[i].Display())
		assert.Equal(t, testDate, windows[i].Date)
	}
}

func TestGenerateTimeSlots_Contiguous(t *testing.T) {
	hours := domain.ClinicHours{DayStart: "07:15", DayEnd: "19:45", SlotDurationMinutes: 25, DefaultMaxCapacity: 1}
	windows := GenerateTimeSlots(testDate, hours)

	require.NotEmpty(t, windows)
	assert.Equal(t, hours.DayStart, windows[0].StartTime)
	for i := range windows {
		assert.Equal(t, 25, windows[i].DurationMinutes())
		assert.False(t, windows[i].EndTime.IsAfter(hours.DayEnd))
		if i > 0 {
			assert.Equal(t, windows[i-1].EndTime, windows[i].StartTime)
		}
	}
}

func TestGenerateTimeSlots_DropsTrailingPartialSlot(t *testing.T) {
	hours := domain.ClinicHours{DayStart: "08:00", DayEnd: "17:00", SlotDurationMinutes: 120, DefaultMaxCapacity: 1}
	windows := GenerateTimeSlots(testDate, hours)

	require.Len(t, windows, 4)
	assert.Equal(t, types.TimeString("14:00"), windows[3].StartTime)
	assert.Equal(t, types.TimeString("16:00"), windows[3].EndTime)
}

func TestGenerateTimeSlots_DurationLongerThanDay(t *testing.T) {
	hours := domain.ClinicHours{DayStart: "08:00", DayEnd: "09:00", SlotDurationMinutes: 90, DefaultMaxCapacity: 1}
	assert.Empty(t, GenerateTimeSlots(testDate, hours))
}

func TestGenerateTimeSlots_InvalidConfig(t *testing.T) {
	assert.Empty(t, GenerateTimeSlots(testDate, domain.ClinicHours{DayStart: "08:00", DayEnd: "17:00"}))
	assert.Empty(t, GenerateTimeSlots(testDate, domain.ClinicHours{DayStart: "17:00", DayEnd: "08:00", SlotDurationMinutes: 30}))
	assert.Empty(t, GenerateTimeSlots(testDate, domain.ClinicHours{DayStart: "bad", DayEnd: "08:00", SlotDurationMinutes: 30}))
}

func TestGenerateTimeSlots_Deterministic(t *testing.T) {
	hours := domain.DefaultClinicHours()
	assert.Equal(t, GenerateTimeSlots(testDate, hours), GenerateTimeSlots(testDate, hours))
}

func TestIsValidTimeSlot(t *testing.T) {
	hours := domain.DefaultClinicHours()
	valid := domain.SlotWindow{Date: testDate, StartTime: "09:30", EndTime: "11:00"}
	misaligned := domain.SlotWindow{Date: testDate, StartTime: "09:00", EndTime: "10:30"}

	assert.True(t, IsValidTimeSlot(valid, hours))
	assert.False(t, IsValidTimeSlot(misaligned, hours))
}
