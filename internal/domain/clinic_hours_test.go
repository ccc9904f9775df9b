package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClinicHours_Validate(t *testing.T) {
	valid := DefaultClinicHours()
	assert.NoError(t, valid.Validate())
	assert.Equal(t, 6, valid.SlotsPerDay())

	tests := []struct {
		name   string
		mutate func(c *ClinicHours)
	}{
		{name: "bad start", mutate: func(c *ClinicHours) { c.DayStart = "8am" }},
		{name: "start after end", mutate: func(c *ClinicHours) { c.DayStart, c.DayEnd = "17:00", "08:00" }},
		{name: "empty day", mutate: func(c *ClinicHours) { c.DayEnd = c.DayStart }},
		{name: "zero duration", mutate: func(c *ClinicHours) { c.SlotDurationMinutes = 0 }},
		{name: "zero capacity", mutate: func(c *ClinicHours) { c.DefaultMaxCapacity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultClinicHours()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidClinicHours)
		})
	}
}
