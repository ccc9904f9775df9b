package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusNoShow, true},
		{StatusScheduled, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusNoShow, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range TerminalStatuses {
		assert.True(t, s.IsTerminal(), s)
	}
	assert.False(t, StatusScheduled.IsTerminal())
	assert.False(t, ReservationStatus("unknown").IsTerminal())
}

func TestParseReservationStatus(t *testing.T) {
	status, err := ParseReservationStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, status)

	_, err = ParseReservationStatus("confirmed")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestReservation_Flags(t *testing.T) {
	r := &Reservation{ClientID: 10, ProviderID: 20, Status: StatusScheduled}
	assert.True(t, r.IsActive())
	assert.True(t, r.HoldsCapacity())
	assert.True(t, r.IsParticipant(10))
	assert.True(t, r.IsParticipant(20))
	assert.False(t, r.IsParticipant(30))

	r.Status = StatusCompleted
	assert.True(t, r.IsActive())
	assert.False(t, r.HoldsCapacity())

	r.Status = StatusCancelled
	assert.False(t, r.IsActive())
	assert.True(t, r.IsCancelled())
}
