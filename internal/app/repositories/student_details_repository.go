package repositories

import (
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/db"
)

// Repositories of the tables that hold exactly one row per student.
type (
	AccommodationRepository      = StudentScopedRepository[models.Accommodation]
	AdmissionRepository          = StudentScopedRepository[models.Admission]
	ParentRepository             = StudentScopedRepository[models.Parent]
	GuardianRepository           = StudentScopedRepository[models.Guardian]
	HealthRepository             = StudentScopedRepository[models.Health]
	EmergencyContactRepository   = StudentScopedRepository[models.EmergencyContact]
	PersonalDetailsRepository    = StudentScopedRepository[models.PersonalDetails]
	AcademicHistoryRepository    = StudentScopedRepository[models.AcademicHistory]
	AcademicIdentifierRepository = StudentScopedRepository[models.AcademicIdentifier]
	TransportDetailsRepository   = StudentScopedRepository[models.TransportDetails]
)

// NewAccommodationRepository creates a new AccommodationRepository
func NewAccommodationRepository(q db.Querier) *AccommodationRepository {
	return &AccommodationRepository{newTable(q, "accommodations",
		[]string{"student_id", "place_of_stay", "address_id"},
		func(a *models.Accommodation) []interface{} {
			return []interface{}{a.StudentID, a.PlaceOfStay, a.AddressID}
		},
		func(a *models.Accommodation) []interface{} {
			return []interface{}{&a.ID, &a.StudentID, &a.PlaceOfStay, &a.AddressID}
		},
		func(a *models.Accommodation) *int64 { return &a.ID },
	)}
}

// NewAdmissionRepository creates a new AdmissionRepository
func NewAdmissionRepository(q db.Querier) *AdmissionRepository {
	return &AdmissionRepository{newTable(q, "admissions",
		[]string{"student_id", "admission_code", "admission_year", "admission_date", "applicant_signature"},
		func(a *models.Admission) []interface{} {
			return []interface{}{a.StudentID, a.AdmissionCode, a.AdmissionYear, a.AdmissionDate, a.ApplicantSignature}
		},
		func(a *models.Admission) []interface{} {
			return []interface{}{&a.ID, &a.StudentID, &a.AdmissionCode, &a.AdmissionYear, &a.AdmissionDate, &a.ApplicantSignature}
		},
		func(a *models.Admission) *int64 { return &a.ID },
	)}
}

// NewParentRepository creates a new ParentRepository
func NewParentRepository(q db.Querier) *ParentRepository {
	return &ParentRepository{newTable(q, "parents",
		[]string{"student_id", "father_id", "mother_id", "parent_type", "annual_income_id"},
		func(p *models.Parent) []interface{} {
			return []interface{}{p.StudentID, p.FatherID, p.MotherID, p.ParentType, p.AnnualIncomeID}
		},
		func(p *models.Parent) []interface{} {
			return []interface{}{&p.ID, &p.StudentID, &p.FatherID, &p.MotherID, &p.ParentType, &p.AnnualIncomeID}
		},
		func(p *models.Parent) *int64 { return &p.ID },
	)}
}

// NewGuardianRepository creates a new GuardianRepository
func NewGuardianRepository(q db.Querier) *GuardianRepository {
	return &GuardianRepository{newTable(q, "guardians",
		[]string{"student_id", "person_id", "relation"},
		func(g *models.Guardian) []interface{} {
			return []interface{}{g.StudentID, g.PersonID, g.Relation}
		},
		func(g *models.Guardian) []interface{} {
			return []interface{}{&g.ID, &g.StudentID, &g.PersonID, &g.Relation}
		},
		func(g *models.Guardian) *int64 { return &g.ID },
	)}
}

// NewHealthRepository creates a new HealthRepository
func NewHealthRepository(q db.Querier) *HealthRepository {
	return &HealthRepository{newTable(q, "health",
		[]string{"student_id", "blood_group_id", "height", "weight", "eye_power_left", "eye_power_right",
			"past_medical_history", "past_surgical_history", "family_medical_record", "drug_allergy"},
		func(h *models.Health) []interface{} {
			return []interface{}{h.StudentID, h.BloodGroupID, h.Height, h.Weight, h.EyePowerLeft, h.EyePowerRight,
				h.PastMedicalHistory, h.PastSurgicalHistory, h.FamilyMedicalRecord, h.DrugAllergy}
		},
		func(h *models.Health) []interface{} {
			return []interface{}{&h.ID, &h.StudentID, &h.BloodGroupID, &h.Height, &h.Weight, &h.EyePowerLeft, &h.EyePowerRight,
				&h.PastMedicalHistory, &h.PastSurgicalHistory, &h.FamilyMedicalRecord, &h.DrugAllergy}
		},
		func(h *models.Health) *int64 { return &h.ID },
	)}
}

// NewEmergencyContactRepository creates a new EmergencyContactRepository
func NewEmergencyContactRepository(q db.Querier) *EmergencyContactRepository {
	return &EmergencyContactRepository{newTable(q, "emergency_contacts",
		[]string{"student_id", "person_name", "relation", "phone", "residential_phone", "office_phone"},
		func(e *models.EmergencyContact) []interface{} {
			return []interface{}{e.StudentID, e.PersonName, e.Relation, e.Phone, e.ResidentialPhone, e.OfficePhone}
		},
		func(e *models.EmergencyContact) []interface{} {
			return []interface{}{&e.ID, &e.StudentID, &e.PersonName, &e.Relation, &e.Phone, &e.ResidentialPhone, &e.OfficePhone}
		},
		func(e *models.EmergencyContact) *int64 { return &e.ID },
	)}
}

// NewPersonalDetailsRepository creates a new PersonalDetailsRepository
func NewPersonalDetailsRepository(q db.Querier) *PersonalDetailsRepository {
	return &PersonalDetailsRepository{newTable(q, "personal_details",
		[]string{"student_id", "first_name", "mobile_number", "email", "date_of_birth", "gender",
			"nationality_id", "category_id", "religion_id", "mother_tongue_id", "aadhaar_card_number",
			"mailing_address_id", "residential_address_id"},
		func(p *models.PersonalDetails) []interface{} {
			return []interface{}{p.StudentID, p.FirstName, p.MobileNumber, p.Email, p.DateOfBirth, p.Gender,
				p.NationalityID, p.CategoryID, p.ReligionID, p.MotherTongueID, p.AadhaarCardNumber,
				p.MailingAddressID, p.ResidentialAddressID}
		},
		func(p *models.PersonalDetails) []interface{} {
			return []interface{}{&p.ID, &p.StudentID, &p.FirstName, &p.MobileNumber, &p.Email, &p.DateOfBirth, &p.Gender,
				&p.NationalityID, &p.CategoryID, &p.ReligionID, &p.MotherTongueID, &p.AadhaarCardNumber,
				&p.MailingAddressID, &p.ResidentialAddressID}
		},
		func(p *models.PersonalDetails) *int64 { return &p.ID },
	)}
}

// NewAcademicHistoryRepository creates a new AcademicHistoryRepository
func NewAcademicHistoryRepository(q db.Querier) *AcademicHistoryRepository {
	return &AcademicHistoryRepository{newTable(q, "academic_histories",
		[]string{"student_id", "last_institution", "last_institution_address", "studied_upto_class",
			"last_board_university", "passed_year"},
		func(a *models.AcademicHistory) []interface{} {
			return []interface{}{a.StudentID, a.LastInstitution, a.LastInstitutionAddress, a.StudiedUptoClass,
				a.LastBoardUniversity, a.PassedYear}
		},
		func(a *models.AcademicHistory) []interface{} {
			return []interface{}{&a.ID, &a.StudentID, &a.LastInstitution, &a.LastInstitutionAddress, &a.StudiedUptoClass,
				&a.LastBoardUniversity, &a.PassedYear}
		},
		func(a *models.AcademicHistory) *int64 { return &a.ID },
	)}
}

// NewAcademicIdentifierRepository creates a new AcademicIdentifierRepository
func NewAcademicIdentifierRepository(q db.Querier) *AcademicIdentifierRepository {
	return &AcademicIdentifierRepository{newTable(q, "academic_identifiers",
		[]string{"student_id", "roll_number", "registration_number", "university_roll_number",
			"cu_form_number", "rfid_number", "institutional_email"},
		func(a *models.AcademicIdentifier) []interface{} {
			return []interface{}{a.StudentID, a.RollNumber, a.RegistrationNumber, a.UniversityRollNumber,
				a.CUFormNumber, a.RFIDNumber, a.InstitutionalEmail}
		},
		func(a *models.AcademicIdentifier) []interface{} {
			return []interface{}{&a.ID, &a.StudentID, &a.RollNumber, &a.RegistrationNumber, &a.UniversityRollNumber,
				&a.CUFormNumber, &a.RFIDNumber, &a.InstitutionalEmail}
		},
		func(a *models.AcademicIdentifier) *int64 { return &a.ID },
	)}
}

// NewTransportDetailsRepository creates a new TransportDetailsRepository
func NewTransportDetailsRepository(q db.Querier) *TransportDetailsRepository {
	return &TransportDetailsRepository{newTable(q, "transport_details",
		[]string{"student_id", "legacy_transport_id", "pickup_point_id"},
		func(t *models.TransportDetails) []interface{} {
			return []interface{}{t.StudentID, t.LegacyTransportID, t.PickupPointID}
		},
		func(t *models.TransportDetails) []interface{} {
			return []interface{}{&t.ID, &t.StudentID, &t.LegacyTransportID, &t.PickupPointID}
		},
		func(t *models.TransportDetails) *int64 { return &t.ID },
	)}
}
