package models

// AcademicHistory defines the 'academic_histories' table, one per student
type AcademicHistory struct {
	ID                     int64   `json:"id" db:"id"`
	StudentID              int64   `json:"studentId" db:"student_id"`
	LastInstitution        *string `json:"lastInstitution,omitempty" db:"last_institution"`
	LastInstitutionAddress *string `json:"lastInstitutionAddress,omitempty" db:"last_institution_address"`
	StudiedUptoClass       *string `json:"studiedUptoClass,omitempty" db:"studied_upto_class"`
	LastBoardUniversity    *string `json:"lastBoardUniversity,omitempty" db:"last_board_university"`
	PassedYear             *int    `json:"passedYear,omitempty" db:"passed_year"`
}

// AcademicIdentifier defines the 'academic_identifiers' table, unique per student
type AcademicIdentifier struct {
	ID                   int64   `json:"id" db:"id"`
	StudentID            int64   `json:"studentId" db:"student_id"`
	RollNumber           *string `json:"rollNumber,omitempty" db:"roll_number"`
	RegistrationNumber   *string `json:"registrationNumber,omitempty" db:"registration_number"`
	UniversityRollNumber *string `json:"universityRollNumber,omitempty" db:"university_roll_number"`
	CUFormNumber         *string `json:"cuFormNumber,omitempty" db:"cu_form_number"`
	RFIDNumber           *string `json:"rfidNumber,omitempty" db:"rfid_number"`
	InstitutionalEmail   *string `json:"institutionalEmail,omitempty" db:"institutional_email"`
}

// TransportDetails defines the 'transport_details' table, one per student
type TransportDetails struct {
	ID                int64  `json:"id" db:"id"`
	StudentID         int64  `json:"studentId" db:"student_id"`
	LegacyTransportID *int64 `json:"legacyTransportId,omitempty" db:"legacy_transport_id"`
	PickupPointID     *int64 `json:"pickupPointId,omitempty" db:"pickup_point_id"`
}
