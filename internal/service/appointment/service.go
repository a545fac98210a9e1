package appointment

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Service struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	users        repository.UserRepository
	auditor      *audit.Service
}

func NewService(appointments repository.AppointmentRepository, patients repository.PatientRepository, users repository.UserRepository, auditor *audit.Service) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		users:        users,
		auditor:      auditor,
	}
}

// overlaps reports whether two appointments collide on the half-open
// interval [start, start+duration): back-to-back slots where one ends
// exactly when the other begins do not conflict.
func overlaps(start1, dur1, start2, dur2 int) bool {
	return start1 < start2+dur2 && start2 < start1+dur1
}

// checkConflict scans the doctor's calendar for the date, skipping the
// appointment being rescheduled. Cancelled and no-show appointments do not
// occupy the calendar and are excluded at the storage layer.
func (s *Service) checkConflict(ctx context.Context, apt *model.Appointment, excludeID *uuid.UUID) error {
	start, err := apt.StartMinutes()
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, "invalid start time", err)
	}

	existing, err := s.appointments.ListForConflictCheck(ctx, apt.DoctorID, apt.Date, excludeID)
	if err != nil {
		return apperror.Internal(err)
	}

	for _, other := range existing {
		otherStart, err := other.StartMinutes()
		if err != nil {
			return apperror.Internal(err)
		}
		if overlaps(start, apt.DurationMinutes, otherStart, other.DurationMinutes) {
			return apperror.Newf(apperror.KindScheduleConflict,
				"doctor already has appointment %s at %s on %s", other.ID, other.StartTime, other.Date)
		}
	}
	return nil
}

// checkDoctor resolves the doctor reference. A user id that exists but does
// not carry the medical role is rejected the same way a missing one is.
func (s *Service) checkDoctor(ctx context.Context, doctorID uuid.UUID) error {
	u, err := s.users.Get(ctx, doctorID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return apperror.New(apperror.KindReferenceNotFound, "referenced doctor does not exist")
		}
		return apperror.Internal(err)
	}
	if u.Role != authz.RoleMedicalUser {
		return apperror.New(apperror.KindReferenceNotFound, "referenced doctor is not a medical user")
	}
	return nil
}

func (s *Service) checkReferences(ctx context.Context, patientID, doctorID uuid.UUID) error {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return apperror.New(apperror.KindReferenceNotFound, "referenced patient does not exist")
		}
		return apperror.Internal(err)
	}
	return s.checkDoctor(ctx, doctorID)
}

// Create books an appointment. New appointments always start as scheduled.
func (s *Service) Create(ctx context.Context, actor *model.Identity, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := s.checkReferences(ctx, req.PatientID, req.DoctorID); err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Reason:          req.Reason,
		Notes:           req.Notes,
		Status:          model.AppointmentStatusScheduled,
	}

	if err := s.checkConflict(ctx, apt, nil); err != nil {
		return nil, err
	}

	if err := s.appointments.Create(ctx, apt); err != nil {
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "created", "appointment", apt.ID, map[string]interface{}{
		"doctor_id": apt.DoctorID,
		"date":      apt.Date,
		"start":     apt.StartTime,
	})
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	return apt, nil
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.appointments.List(ctx, filters)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return appointments, nil
}

// Update edits a live appointment. Completed and cancelled appointments are
// locked; rescheduling re-runs conflict detection excluding the appointment
// itself.
func (s *Service) Update(ctx context.Context, actor *model.Identity, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if apt.Status.Locked() {
		return nil, apperror.Newf(apperror.KindRecordLocked,
			"appointment in status %s cannot be modified", apt.Status)
	}

	if req.PatientID != nil {
		apt.PatientID = *req.PatientID
	}
	if req.DoctorID != nil {
		apt.DoctorID = *req.DoctorID
	}
	if req.PatientID != nil || req.DoctorID != nil {
		if err := s.checkReferences(ctx, apt.PatientID, apt.DoctorID); err != nil {
			return nil, err
		}
	}
	if req.Date != nil {
		apt.Date = *req.Date
	}
	if req.StartTime != nil {
		apt.StartTime = *req.StartTime
	}
	if req.DurationMinutes != nil {
		apt.DurationMinutes = *req.DurationMinutes
	}
	if req.Reason != nil {
		apt.Reason = *req.Reason
	}
	if req.Notes != nil {
		apt.Notes = *req.Notes
	}

	if err := s.checkConflict(ctx, apt, &id); err != nil {
		return nil, err
	}

	if err := s.appointments.Update(ctx, apt); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "updated", "appointment", apt.ID, nil)
	return apt, nil
}

// UpdateStatus moves the appointment through its lifecycle. Transitions are
// validated from non-terminal states.
//
// TODO: decide whether terminal statuses should also lock status-only
// changes; today a completed appointment accepts no transition because the
// lifecycle table has no outgoing edges for it, which yields the same
// rejection via a different error.
func (s *Service) UpdateStatus(ctx context.Context, actor *model.Identity, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperror.Newf(apperror.KindValidation, "invalid appointment status %q", status)
	}

	apt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !apt.Status.CanTransition(status) {
		return nil, apperror.Newf(apperror.KindValidation,
			"cannot transition appointment from %s to %s", apt.Status, status)
	}

	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	apt.Status = status

	s.auditor.Record(ctx, actor, "status_changed", "appointment", apt.ID, map[string]interface{}{
		"status": status,
	})
	return apt, nil
}

// Delete removes the appointment row outright. A visit that is underway or
// already happened stays on record; a cancelled or no-show slot can go.
// Clinical notes referencing the appointment keep their appointment id; the
// reference simply stops resolving.
func (s *Service) Delete(ctx context.Context, actor *model.Identity, id uuid.UUID) error {
	apt, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if apt.Status.DeleteLocked() {
		return apperror.Newf(apperror.KindRecordLocked,
			"appointment in status %s cannot be deleted", apt.Status)
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return apperror.Internal(err)
	}
	s.auditor.Record(ctx, actor, "deleted", "appointment", id, nil)
	return nil
}

// Availability returns the occupied slots on a doctor's calendar for one
// date, ordered by start time.
func (s *Service) Availability(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.TimeSlot, error) {
	if err := s.checkDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListForConflictCheck(ctx, doctorID, date, nil)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	slots := make([]*model.TimeSlot, 0, len(appointments))
	for _, apt := range appointments {
		slots = append(slots, &model.TimeSlot{
			StartTime:       apt.StartTime,
			DurationMinutes: apt.DurationMinutes,
		})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	return slots, nil
}
