package models

// Health defines the 'health' table, one per student
type Health struct {
	ID                  int64    `json:"id" db:"id"`
	StudentID           int64    `json:"studentId" db:"student_id"`
	BloodGroupID        *int64   `json:"bloodGroupId,omitempty" db:"blood_group_id"`
	Height              *float64 `json:"height,omitempty" db:"height"`
	Weight              *float64 `json:"weight,omitempty" db:"weight"`
	EyePowerLeft        *string  `json:"eyePowerLeft,omitempty" db:"eye_power_left"`
	EyePowerRight       *string  `json:"eyePowerRight,omitempty" db:"eye_power_right"`
	PastMedicalHistory  *string  `json:"pastMedicalHistory,omitempty" db:"past_medical_history"`
	PastSurgicalHistory *string  `json:"pastSurgicalHistory,omitempty" db:"past_surgical_history"`
	FamilyMedicalRecord *string  `json:"familyMedicalRecord,omitempty" db:"family_medical_record"`
	DrugAllergy         *string  `json:"drugAllergy,omitempty" db:"drug_allergy"`
}

// EmergencyContact defines the 'emergency_contacts' table, one per student
type EmergencyContact struct {
	ID               int64   `json:"id" db:"id"`
	StudentID        int64   `json:"studentId" db:"student_id"`
	PersonName       *string `json:"personName,omitempty" db:"person_name"`
	Relation         *string `json:"relation,omitempty" db:"relation"`
	Phone            *string `json:"phone,omitempty" db:"phone"`
	ResidentialPhone *string `json:"residentialPhone,omitempty" db:"residential_phone"`
	OfficePhone      *string `json:"officePhone,omitempty" db:"office_phone"`
}
