package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservation_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			r := &Reservation{Status: tt.from}
			assert.Equal(t, tt.want, r.CanTransitionTo(tt.to))
		})
	}
}

func TestReservation_IsActive(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusPending}).IsActive())
	assert.True(t, (&Reservation{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Reservation{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Reservation{Status: StatusCompleted}).IsActive())
}

func TestReservation_Terminal(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusCancelled}).IsTerminal())
	assert.True(t, (&Reservation{Status: StatusCompleted}).IsTerminal())
	assert.False(t, (&Reservation{Status: StatusPending}).IsTerminal())
	assert.False(t, (&Reservation{Status: StatusConfirmed}).IsTerminal())
}

func TestConfirmMode_InitialStatus(t *testing.T) {
	assert.Equal(t, StatusConfirmed, ConfirmModeDirect.InitialStatus())
	assert.Equal(t, StatusPending, ConfirmModeTwoPhase.InitialStatus())
}
