package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentTransitions(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		ok       bool
	}{
		{AppointmentStatusScheduled, AppointmentStatusConfirmed, true},
		{AppointmentStatusScheduled, AppointmentStatusInProgress, true},
		{AppointmentStatusScheduled, AppointmentStatusCancelled, true},
		{AppointmentStatusScheduled, AppointmentStatusNoShow, true},
		{AppointmentStatusScheduled, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, false},
		{AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{AppointmentStatusInProgress, AppointmentStatusCancelled, false},
		{AppointmentStatusCompleted, AppointmentStatusScheduled, false},
		{AppointmentStatusCancelled, AppointmentStatusScheduled, false},
		{AppointmentStatusNoShow, AppointmentStatusScheduled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestAppointmentStatusLocked(t *testing.T) {
	assert.True(t, AppointmentStatusCompleted.Locked())
	assert.True(t, AppointmentStatusCancelled.Locked())
	assert.False(t, AppointmentStatusScheduled.Locked())
	assert.False(t, AppointmentStatusConfirmed.Locked())
	assert.False(t, AppointmentStatusInProgress.Locked())
	// no_show is terminal for transitions but not edit-locked
	assert.False(t, AppointmentStatusNoShow.Locked())
}

func TestAppointmentStatusDeleteLocked(t *testing.T) {
	// deletion blocks a visit that is underway or happened, not a
	// cancelled or missed slot
	assert.True(t, AppointmentStatusInProgress.DeleteLocked())
	assert.True(t, AppointmentStatusCompleted.DeleteLocked())
	assert.False(t, AppointmentStatusScheduled.DeleteLocked())
	assert.False(t, AppointmentStatusConfirmed.DeleteLocked())
	assert.False(t, AppointmentStatusCancelled.DeleteLocked())
	assert.False(t, AppointmentStatusNoShow.DeleteLocked())
}

func TestOccupiesCalendar(t *testing.T) {
	assert.True(t, AppointmentStatusScheduled.OccupiesCalendar())
	assert.True(t, AppointmentStatusCompleted.OccupiesCalendar())
	assert.False(t, AppointmentStatusCancelled.OccupiesCalendar())
	assert.False(t, AppointmentStatusNoShow.OccupiesCalendar())
}

func TestStartMinutes(t *testing.T) {
	apt := &Appointment{StartTime: "09:30"}
	minutes, err := apt.StartMinutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	apt.StartTime = "00:00"
	minutes, err = apt.StartMinutes()
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	apt.StartTime = "9:30am"
	_, err = apt.StartMinutes()
	assert.Error(t, err)
}
