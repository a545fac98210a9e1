package rips

import (
	"context"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Service struct {
	records      repository.RIPSRepository
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	auditor      *audit.Service
}

func NewService(records repository.RIPSRepository, patients repository.PatientRepository, appointments repository.AppointmentRepository, auditor *audit.Service) *Service {
	return &Service{
		records:      records,
		patients:     patients,
		appointments: appointments,
		auditor:      auditor,
	}
}

// Create files a billing record. New records always start pending.
func (s *Service) Create(ctx context.Context, actor *model.Identity, req *model.CreateRIPSRequest) (*model.RIPS, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.New(apperror.KindReferenceNotFound, "referenced patient does not exist")
		}
		return nil, apperror.Internal(err)
	}
	if req.AppointmentID != nil {
		if _, err := s.appointments.Get(ctx, *req.AppointmentID); err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				return nil, apperror.New(apperror.KindReferenceNotFound, "referenced appointment does not exist")
			}
			return nil, apperror.Internal(err)
		}
	}

	r := &model.RIPS{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		ServiceCode:   req.ServiceCode,
		DiagnosisCode: req.DiagnosisCode,
		InvoiceNumber: req.InvoiceNumber,
		ServiceValue:  req.ServiceValue,
		Status:        model.RIPSStatusPending,
	}
	if err := s.records.Create(ctx, r); err != nil {
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "created", "rips", r.ID, map[string]interface{}{
		"invoice_number": r.InvoiceNumber,
		"service_value":  r.ServiceValue,
	})
	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.RIPS, error) {
	r, err := s.records.Get(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, filters *model.RIPSFilters) ([]*model.RIPS, error) {
	records, err := s.records.List(ctx, filters)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return records, nil
}

// Update edits the billing fields of an unpaid record. Paid records are
// immutable.
func (s *Service) Update(ctx context.Context, actor *model.Identity, id uuid.UUID, req *model.UpdateRIPSRequest) (*model.RIPS, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.Status.Locked() {
		return nil, apperror.New(apperror.KindRecordLocked, "a paid billing record cannot be modified")
	}

	if req.ServiceCode != nil {
		r.ServiceCode = *req.ServiceCode
	}
	if req.DiagnosisCode != nil {
		r.DiagnosisCode = *req.DiagnosisCode
	}
	if req.InvoiceNumber != nil {
		r.InvoiceNumber = *req.InvoiceNumber
	}
	if req.ServiceValue != nil {
		r.ServiceValue = *req.ServiceValue
	}

	if err := s.records.Update(ctx, r); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "updated", "rips", r.ID, nil)
	return r, nil
}

// UpdateStatus moves a record along the billing flow. A paid record accepts
// no further status change.
func (s *Service) UpdateStatus(ctx context.Context, actor *model.Identity, id uuid.UUID, status model.RIPSStatus) (*model.RIPS, error) {
	if !status.Valid() {
		return nil, apperror.Newf(apperror.KindValidation, "invalid billing status %q", status)
	}

	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status.Locked() {
		return nil, apperror.New(apperror.KindRecordLocked, "a paid billing record cannot be modified")
	}

	if err := s.records.UpdateStatus(ctx, id, status); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	r.Status = status

	s.auditor.Record(ctx, actor, "status_changed", "rips", r.ID, map[string]interface{}{
		"status": status,
	})
	return r, nil
}

// Delete removes an unpaid record.
func (s *Service) Delete(ctx context.Context, actor *model.Identity, id uuid.UUID) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if r.Status.Locked() {
		return apperror.New(apperror.KindRecordLocked, "a paid billing record cannot be deleted")
	}

	if err := s.records.Delete(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return apperror.Internal(err)
	}
	s.auditor.Record(ctx, actor, "deleted", "rips", id, nil)
	return nil
}
