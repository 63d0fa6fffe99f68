package models

import "time"

// Admission defines the 'admissions' table, one per student
type Admission struct {
	ID                 int64      `json:"id" db:"id"`
	StudentID          int64      `json:"studentId" db:"student_id"`
	AdmissionCode      *string    `json:"admissionCode,omitempty" db:"admission_code"`
	AdmissionYear      *int       `json:"admissionYear,omitempty" db:"admission_year"`
	AdmissionDate      *time.Time `json:"admissionDate,omitempty" db:"admission_date"`
	ApplicantSignature *string    `json:"applicantSignature,omitempty" db:"applicant_signature"`
}
