package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// appointmentTransitions encodes the lifecycle: completed and cancelled are
// terminal, no_show has no outgoing edges either.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {
		AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCancelled, AppointmentStatusNoShow,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusInProgress, AppointmentStatusCancelled, AppointmentStatusNoShow,
	},
	AppointmentStatusInProgress: {
		AppointmentStatusCompleted,
	},
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another.
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	for _, next := range appointmentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Locked reports whether full-record edits are blocked for this status.
func (s AppointmentStatus) Locked() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// DeleteLocked reports whether deletion is blocked for this status. A visit
// that is underway or already happened cannot be removed; cancelled and
// no-show slots can.
func (s AppointmentStatus) DeleteLocked() bool {
	return s == AppointmentStatusInProgress || s == AppointmentStatusCompleted
}

// OccupiesCalendar reports whether an appointment with this status still
// counts for scheduling-conflict detection.
func (s AppointmentStatus) OccupiesCalendar() bool {
	return s != AppointmentStatusCancelled && s != AppointmentStatusNoShow
}

// Appointment has a date, a start time (HH:MM, minutes past midnight once
// parsed) and a duration in minutes. It belongs to exactly one patient and
// one doctor.
type Appointment struct {
	Base
	PatientID       uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	Date            string            `db:"appointment_date" json:"date"`
	StartTime       string            `db:"start_time" json:"start_time"`
	DurationMinutes int               `db:"duration_minutes" json:"duration_minutes"`
	Reason          string            `db:"reason" json:"reason,omitempty"`
	Notes           string            `db:"notes" json:"notes,omitempty"`
	Status          AppointmentStatus `db:"status" json:"status"`
}

// StartMinutes converts the HH:MM start time to minutes past midnight.
func (a *Appointment) StartMinutes() (int, error) {
	t, err := time.Parse("15:04", a.StartTime)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", a.StartTime, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" binding:"required"`
	DoctorID        uuid.UUID `json:"doctor_id" binding:"required"`
	Date            string    `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime       string    `json:"start_time" binding:"required,datetime=15:04"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=5,max=480"`
	Reason          string    `json:"reason" binding:"max=500"`
	Notes           string    `json:"notes" binding:"max=1000"`
}

type UpdateAppointmentRequest struct {
	PatientID       *uuid.UUID `json:"patient_id"`
	DoctorID        *uuid.UUID `json:"doctor_id"`
	Date            *string    `json:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime       *string    `json:"start_time" binding:"omitempty,datetime=15:04"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,min=5,max=480"`
	Reason          *string    `json:"reason" binding:"omitempty,max=500"`
	Notes           *string    `json:"notes" binding:"omitempty,max=1000"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}

type AppointmentFilters struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Date      string
	Status    AppointmentStatus
}

// TimeSlot is an occupied interval on a doctor's calendar.
type TimeSlot struct {
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}
