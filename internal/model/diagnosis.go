package model

// Diagnosis is a catalog entry (ICD-10 style); codes are unique.
type Diagnosis struct {
	Base
	Code        string `db:"code" json:"code"`
	Description string `db:"description" json:"description"`
}

type CreateDiagnosisRequest struct {
	Code        string `json:"code" binding:"required,max=20"`
	Description string `json:"description" binding:"required,max=500"`
}

type UpdateDiagnosisRequest struct {
	Description *string `json:"description" binding:"omitempty,max=500"`
}
