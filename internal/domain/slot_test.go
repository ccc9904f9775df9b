package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func window(start, end string) SlotWindow {
	return SlotWindow{Date: testDate, StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
}

func TestSlotWindow_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b SlotWindow
		want bool
	}{
		{name: "identical", a: window("08:00", "09:30"), b: window("08:00", "09:30"), want: true},
		{name: "partial", a: window("08:00", "09:30"), b: window("09:00", "10:30"), want: true},
		{name: "contained", a: window("08:00", "11:00"), b: window("09:00", "10:00"), want: true},
		{name: "touching end", a: window("08:00", "09:30"), b: window("09:30", "11:00"), want: false},
		{name: "touching start", a: window("09:30", "11:00"), b: window("08:00", "09:30"), want: false},
		{name: "disjoint", a: window("08:00", "09:00"), b: window("14:00", "15:30"), want: false},
		{
			name: "other date",
			a:    window("08:00", "09:30"),
			b:    SlotWindow{Date: testDate.AddDate(0, 0, 1), StartTime: "08:00", EndTime: "09:30"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestSlotWindow_Display(t *testing.T) {
	assert.Equal(t, "8:00 AM - 9:30 AM", window("08:00", "09:30").Display())
	assert.Equal(t, "3:30 PM - 5:00 PM", window("15:30", "17:00").Display())
	assert.Equal(t, 90, window("15:30", "17:00").DurationMinutes())
}

func TestTimeSlot_Availability(t *testing.T) {
	slot := NewTimeSlot(7, window("08:00", "09:30"), 2)
	assert.Equal(t, testDate, slot.Date)
	assert.True(t, slot.IsAvailable)
	assert.True(t, slot.CanBeBooked())
	assert.Equal(t, 2, slot.RemainingCapacity())

	slot.CurrentBookings = 2
	slot.RecomputeAvailability()
	assert.False(t, slot.IsAvailable)
	assert.False(t, slot.CanBeBooked())
	assert.Equal(t, 0, slot.RemainingCapacity())
	assert.Equal(t, 100.0, slot.OccupancyRate())

	slot.CurrentBookings = 1
	slot.IsClosed = true
	slot.RecomputeAvailability()
	assert.False(t, slot.IsAvailable)
	assert.False(t, slot.CanBeBooked())
}

func TestDateOnly(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	in := time.Date(2025, 3, 10, 23, 30, 0, 0, moscow)
	assert.Equal(t, testDate, DateOnly(in))
	assert.True(t, SameDate(in, testDate))
}
