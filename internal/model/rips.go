package model

import (
	"github.com/google/uuid"
)

type RIPSStatus string

const (
	RIPSStatusPending  RIPSStatus = "pending"
	RIPSStatusApproved RIPSStatus = "approved"
	RIPSStatusRejected RIPSStatus = "rejected"
	RIPSStatusPaid     RIPSStatus = "paid"
)

func (s RIPSStatus) Valid() bool {
	switch s {
	case RIPSStatusPending, RIPSStatusApproved, RIPSStatusRejected, RIPSStatusPaid:
		return true
	}
	return false
}

// Locked reports whether the record is immutable. A paid RIPS record
// accepts neither update nor delete.
func (s RIPSStatus) Locked() bool {
	return s == RIPSStatusPaid
}

// RIPS is the standardized healthcare-service-usage billing record
// submitted to insurers and regulators.
type RIPS struct {
	Base
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	ServiceCode   string     `db:"service_code" json:"service_code"`
	DiagnosisCode string     `db:"diagnosis_code" json:"diagnosis_code,omitempty"`
	InvoiceNumber string     `db:"invoice_number" json:"invoice_number"`
	ServiceValue  int64      `db:"service_value" json:"service_value"`
	Status        RIPSStatus `db:"status" json:"status"`
}

type CreateRIPSRequest struct {
	PatientID     uuid.UUID  `json:"patient_id" binding:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
	ServiceCode   string     `json:"service_code" binding:"required,max=20"`
	DiagnosisCode string     `json:"diagnosis_code" binding:"max=20"`
	InvoiceNumber string     `json:"invoice_number" binding:"required,max=50"`
	ServiceValue  int64      `json:"service_value" binding:"required,min=0"`
}

type UpdateRIPSRequest struct {
	ServiceCode   *string `json:"service_code" binding:"omitempty,max=20"`
	DiagnosisCode *string `json:"diagnosis_code" binding:"omitempty,max=20"`
	InvoiceNumber *string `json:"invoice_number" binding:"omitempty,max=50"`
	ServiceValue  *int64  `json:"service_value" binding:"omitempty,min=0"`
}

type UpdateRIPSStatusRequest struct {
	Status RIPSStatus `json:"status" binding:"required"`
}

type RIPSFilters struct {
	PatientID uuid.UUID
	Status    RIPSStatus
}
