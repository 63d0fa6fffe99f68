package etl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/erp-migrator/internal/app/models"
	legacymodels "github.com/yigit/erp-migrator/internal/app/models/legacy"
	"github.com/yigit/erp-migrator/internal/app/repositories"
	"github.com/yigit/erp-migrator/internal/pkg/auth"
	"github.com/yigit/erp-migrator/internal/pkg/helpers"
	"github.com/yigit/erp-migrator/internal/pkg/validation"
)

// Upserters map one legacy row onto the target tables. Every method first
// looks the target row up by its idempotence key and returns it unchanged
// when it already exists.
type Upserters struct {
	lookups      LookupSource
	hashPassword auth.PasswordHasher
	emailDomain  string
}

// NewUpserters creates the per-entity upserters. lookups may be nil, in
// which case legacy lookup ids are not resolved.
func NewUpserters(lookups LookupSource, hasher auth.PasswordHasher, emailDomain string) *Upserters {
	return &Upserters{
		lookups:      lookups,
		hashPassword: hasher,
		emailDomain:  emailDomain,
	}
}

// User finds the user by derived email or creates it.
func (u *Upserters) User(ctx context.Context, s Stores, row *legacymodels.Student) (*models.User, error) {
	email, err := DeriveEmail(helpers.StringValue(row.CodeNumber), u.emailDomain)
	if err != nil {
		return nil, err
	}

	existing, err := s.Users().FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := u.hashPassword(InitialPassword(row.Code()))
	if err != nil {
		return nil, fmt.Errorf("hashing initial password: %w", err)
	}

	name := helpers.NullUpperPtr(row.Name)
	if name == nil {
		code := strings.ToUpper(row.Code())
		name = &code
	}

	user := &models.User{
		Name:           *name,
		Email:          email,
		Password:       hashed,
		Phone:          helpers.NullStringPtr(row.ContactNo),
		WhatsappNumber: helpers.NullStringPtr(row.WhatsappNo),
		Type:           models.UserTypeStudent,
		IsActive:       LegacyBool(row.Active),
	}
	if err := validation.Validate(user); err != nil {
		return nil, err
	}
	if err := s.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Student finds the student of user or creates it.
func (u *Upserters) Student(ctx context.Context, s Stores, row *legacymodels.Student, user *models.User) (*models.Student, error) {
	existing, err := s.Students().FindByUserID(ctx, user.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	student := &models.Student{
		UserID:          user.ID,
		LegacyStudentID: row.ID,
		UID:             row.Code(),
		Level:           MapLevel(row.Code()),
		Community:       MapCommunity(row.CommunityID),
		Handicapped:     IsHandicapped(row.Handicapped),
		Active:          LegacyBool(row.Active),
		Alumni:          LegacyBool(row.Alumni),
		LeavingDate:     helpers.ParseLegacyDate(row.LeavingDate),
		LeavingReason:   helpers.NullStringPtr(row.LeavingReason),
	}
	if err := validation.Validate(student); err != nil {
		return nil, err
	}
	if err := s.Students().Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// ensureForStudent is the shared upsert template of the one-row-per-student
// tables: existence check, build, validate, insert.
func ensureForStudent[T any](ctx context.Context, store StudentScoped[T], studentID int64, build func() (*T, error)) (*T, error) {
	existing, err := store.FindByStudentID(ctx, studentID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	row, err := build()
	if err != nil {
		return nil, err
	}
	if err := validation.Validate(row); err != nil {
		return nil, err
	}
	if err := store.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Accommodation creates the accommodation and, when the legacy row has one,
// its place-of-stay address.
func (u *Upserters) Accommodation(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) (*models.Accommodation, error) {
	return ensureForStudent(ctx, s.Accommodations(), student.ID, func() (*models.Accommodation, error) {
		addressID, err := createAddress(ctx, s, &models.Address{
			AddressLine: helpers.NullUpperPtr(row.PlaceOfStayAddr),
			Phone:       helpers.NullStringPtr(row.PlaceOfStayContactNo),
		})
		if err != nil {
			return nil, err
		}
		return &models.Accommodation{
			StudentID:   student.ID,
			PlaceOfStay: MapPlaceOfStay(row.PlaceOfStay),
			AddressID:   addressID,
		}, nil
	})
}

// Admission creates the admission record.
func (u *Upserters) Admission(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) (*models.Admission, error) {
	return ensureForStudent(ctx, s.Admissions(), student.ID, func() (*models.Admission, error) {
		return &models.Admission{
			StudentID:          student.ID,
			AdmissionCode:      helpers.NullStringPtr(row.AdmissionCodeNo),
			AdmissionYear:      helpers.NullIntPtr(row.AdmissionYear),
			AdmissionDate:      helpers.ParseLegacyDate(row.AdmissionDate),
			ApplicantSignature: helpers.NullStringPtr(row.ApplicantSignature),
		}, nil
	})
}

// Parent creates the father and mother persons and links them.
func (u *Upserters) Parent(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) (*models.Parent, error) {
	return ensureForStudent(ctx, s.Parents(), student.ID, func() (*models.Parent, error) {
		fatherID, err := u.createPerson(ctx, s, personColumns{
			name:          row.FatherName,
			email:         row.FatherEmail,
			phone:         row.FatherMobNo,
			aadhaar:       row.FatherAadharNo,
			image:         row.FatherPic,
			officePhone:   row.FatherOffPhone,
			officeAddress: row.FatherOffAddress,
			occupation:    row.FatherOccupation,
		})
		if err != nil {
			return nil, fmt.Errorf("father: %w", err)
		}
		motherID, err := u.createPerson(ctx, s, personColumns{
			name:          row.MotherName,
			email:         row.MotherEmail,
			phone:         row.MotherMobNo,
			aadhaar:       row.MotherAadharNo,
			image:         row.MotherPic,
			officePhone:   row.MotherOffPhone,
			officeAddress: row.MotherOffAddress,
			occupation:    row.MotherOccupation,
		})
		if err != nil {
			return nil, fmt.Errorf("mother: %w", err)
		}

		var incomeID *int64
		if income := CategorizeIncome(row.AnnualFamilyIncome); income != nil {
			l, err := s.Lookups().FindOrCreate(ctx, models.LookupAnnualIncome, *income, nil, nil)
			if err != nil {
				return nil, fmt.Errorf("annual income: %w", err)
			}
			incomeID = &l.ID
		}

		return &models.Parent{
			StudentID:      student.ID,
			FatherID:       fatherID,
			MotherID:       motherID,
			ParentType:     MapParentType(row.IsSingleParent),
			AnnualIncomeID: incomeID,
		}, nil
	})
}

// Guardian creates the guardian row and, when present, the guardian person.
func (u *Upserters) Guardian(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) (*models.Guardian, error) {
	return ensureForStudent(ctx, s.Guardians(), student.ID, func() (*models.Guardian, error) {
		personID, err := u.createPerson(ctx, s, personColumns{
			name:          row.GuardianName,
			email:         row.GuardianEmail,
			phone:         row.GuardianMobNo,
			aadhaar:       row.GuardianAadharNo,
			image:         row.GuardianPic,
			officePhone:   row.GuardianOffPhone,
			officeAddress: row.GuardianOffAddress,
			occupation:    row.GuardianOccupation,
		})
		if err != nil {
			return nil, err
		}
		return &models.Guardian{
			StudentID: student.ID,
			PersonID:  personID,
			Relation:  helpers.NullStringPtr(row.GuardianRelation),
		}, nil
	})
}

// Health creates the health record, resolving the legacy blood group.
func (u *Upserters) Health(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) (*models.Health, error) {
	return ensureForStudent(ctx, s.Health(), student.ID, func() (*models.Health, error) {
		bloodGroupID, err := u.resolveLookup(ctx, s, models.LookupBloodGroup, row.BloodGroup)
		if err != nil {
			return nil, err
		}
		return &models.Health{
			StudentID:           student.ID,
			BloodGroupID:        bloodGroupID,
			Height:              helpers.NullFloat64Ptr(row.Height),
			Weight:              helpers.NullFloat64Ptr(row.Weight),
			EyePowerLeft:        helpers.NullUpperPtr(row.EyePowerLeft),
			EyePowerRight:       helpers.NullUpperPtr(row.EyePowerRight),
			PastMedicalHistory:  helpers.NullStringPtr(row.PastMedicalHistory),
			PastSurgicalHistory: helpers.NullStringPtr(row.PastSurgicalHistory),
			FamilyMedicalRecord: helpers.NullStringPtr(row.PastFamilyHistory),
			DrugAllergy:         helpers.NullStringPtr(row.DrugAllergy),
		}, nil
	})
}

// EmergencyContact creates the emergency contact record.
func (u *Upserters) EmergencyContact(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) (*models.EmergencyContact, error) {
	return ensureForStudent(ctx, s.EmergencyContacts(), student.ID, func() (*models.EmergencyContact, error) {
		return &models.EmergencyContact{
			StudentID:        student.ID,
			PersonName:       helpers.NullUpperPtr(row.EmerContactPersonNm),
			Relation:         helpers.NullStringPtr(row.EmerPersRelToStud),
			Phone:            helpers.NullStringPtr(row.EmerContactPersonMob),
			ResidentialPhone: helpers.NullStringPtr(row.EmrgnResidentPhNo),
			OfficePhone:      helpers.NullStringPtr(row.EmrgnOfficePhNo),
		}, nil
	})
}

// PersonalDetails creates the personal details with mailing and residential
// addresses and resolves the demographic lookups.
func (u *Upserters) PersonalDetails(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) (*models.PersonalDetails, error) {
	return ensureForStudent(ctx, s.PersonalDetails(), student.ID, func() (*models.PersonalDetails, error) {
		locality := MapLocality(row.LocalityType)
		mailingID, err := createAddress(ctx, s, &models.Address{
			AddressLine:  helpers.NullUpperPtr(row.MailingAddress),
			Pincode:      helpers.NullStringPtr(row.MailingPinNo),
			LocalityType: locality,
		})
		if err != nil {
			return nil, fmt.Errorf("mailing address: %w", err)
		}
		residentialID, err := createAddress(ctx, s, &models.Address{
			AddressLine:  helpers.NullUpperPtr(row.ResidentialAddress),
			Pincode:      helpers.NullStringPtr(row.ResiPinNo),
			Phone:        helpers.NullStringPtr(row.ResiPhoneMobileNo),
			LocalityType: locality,
		})
		if err != nil {
			return nil, fmt.Errorf("residential address: %w", err)
		}

		details := &models.PersonalDetails{
			StudentID:            student.ID,
			FirstName:            strings.ToUpper(helpers.StringValue(row.Name)),
			MobileNumber:         helpers.StringValue(row.ContactNo),
			Email:                helpers.NullLowerPtr(row.Email),
			DateOfBirth:          helpers.ParseLegacyDate(row.DateOfBirth),
			Gender:               MapGender(row.SexID),
			AadhaarCardNumber:    FormatAadhaar(row.AadharCardNo),
			MailingAddressID:     mailingID,
			ResidentialAddressID: residentialID,
		}

		lookups := []struct {
			kind models.LookupKind
			id   sql.NullInt64
			dst  **int64
		}{
			{models.LookupNationality, row.NationalityID, &details.NationalityID},
			{models.LookupCategory, row.StudentCategoryID, &details.CategoryID},
			{models.LookupReligion, row.ReligionID, &details.ReligionID},
			{models.LookupMotherTongue, row.MotherTongueID, &details.MotherTongueID},
		}
		for _, l := range lookups {
			id, err := u.resolveLookup(ctx, s, l.kind, l.id)
			if err != nil {
				return nil, err
			}
			*l.dst = id
		}
		return details, nil
	})
}

// AcademicHistory creates the previous-institution record.
func (u *Upserters) AcademicHistory(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) (*models.AcademicHistory, error) {
	return ensureForStudent(ctx, s.AcademicHistories(), student.ID, func() (*models.AcademicHistory, error) {
		return &models.AcademicHistory{
			StudentID:              student.ID,
			LastInstitution:        helpers.NullUpperPtr(row.LastInstitution),
			LastInstitutionAddress: helpers.NullUpperPtr(row.LastInstitutionAddress),
			StudiedUptoClass:       helpers.NullStringPtr(row.StudiedUptoClass),
			LastBoardUniversity:    helpers.NullStringPtr(row.LastOtherBoardUniversity),
			PassedYear:             helpers.NullIntPtr(row.LastSchoolPassedYear),
		}, nil
	})
}

// AcademicIdentifier creates the roll and registration numbers.
func (u *Upserters) AcademicIdentifier(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) (*models.AcademicIdentifier, error) {
	return ensureForStudent(ctx, s.AcademicIdentifiers(), student.ID, func() (*models.AcademicIdentifier, error) {
		registration := helpers.NullStringPtr(row.UnivRegNo)
		if registration == nil {
			registration = helpers.NullStringPtr(row.UniversityRegNo)
		}
		return &models.AcademicIdentifier{
			StudentID:            student.ID,
			RollNumber:           helpers.NullStringPtr(row.RollNumber),
			RegistrationNumber:   registration,
			UniversityRollNumber: helpers.NullStringPtr(row.UnivLastExamRoll),
			CUFormNumber:         helpers.NullStringPtr(row.CUFormNo),
			RFIDNumber:           helpers.NullStringPtr(row.RFIDNo),
			InstitutionalEmail:   helpers.NullLowerPtr(row.InstitutionalEmail),
		}, nil
	})
}

// TransportDetails records the legacy transport reference. Pickup points are
// assigned after migration.
func (u *Upserters) TransportDetails(ctx context.Context, s Stores, row *legacymodels.Student, student *models.Student) (*models.TransportDetails, error) {
	return ensureForStudent(ctx, s.TransportDetails(), student.ID, func() (*models.TransportDetails, error) {
		return &models.TransportDetails{
			StudentID:         student.ID,
			LegacyTransportID: helpers.NullInt64Ptr(row.TransportID),
		}, nil
	})
}

// personColumns are the legacy columns describing a father, mother or guardian
type personColumns struct {
	name          sql.NullString
	email         sql.NullString
	phone         sql.NullString
	aadhaar       sql.NullString
	image         sql.NullString
	officePhone   sql.NullString
	officeAddress sql.NullString
	occupation    sql.NullInt64
}

// createPerson inserts a Person and its office address. A person without a
// name, phone or email is not created and a nil id is returned.
func (u *Upserters) createPerson(ctx context.Context, s Stores, c personColumns) (*int64, error) {
	person := &models.Person{
		Name:              helpers.NullUpperPtr(c.name),
		Email:             helpers.NullLowerPtr(c.email),
		Phone:             helpers.NullStringPtr(c.phone),
		AadhaarCardNumber: FormatAadhaar(c.aadhaar),
		Image:             helpers.NullStringPtr(c.image),
		OfficePhone:       helpers.NullStringPtr(c.officePhone),
	}
	if person.Name == nil && person.Phone == nil && person.Email == nil {
		return nil, nil
	}

	occupationID, err := u.resolveLookup(ctx, s, models.LookupOccupation, c.occupation)
	if err != nil {
		return nil, err
	}
	person.OccupationID = occupationID

	person.OfficeAddressID, err = createAddress(ctx, s, &models.Address{
		AddressLine: helpers.NullUpperPtr(c.officeAddress),
	})
	if err != nil {
		return nil, fmt.Errorf("office address: %w", err)
	}

	if err := validation.Validate(person); err != nil {
		return nil, err
	}
	if err := s.Persons().Create(ctx, person); err != nil {
		return nil, err
	}
	return &person.ID, nil
}

// createAddress inserts a when it carries a line, phone or pincode and
// returns its id. Locality alone does not make an address.
func createAddress(ctx context.Context, s Stores, a *models.Address) (*int64, error) {
	if a.AddressLine == nil && a.Phone == nil && a.Pincode == nil {
		return nil, nil
	}
	if err := s.Addresses().Create(ctx, a); err != nil {
		return nil, err
	}
	return &a.ID, nil
}

// resolveLookup maps a legacy lookup id onto the id of the matching target
// lookup row, creating it by name when needed. Unset ids and ids missing from
// the legacy lookup table resolve to nil.
func (u *Upserters) resolveLookup(ctx context.Context, s Stores, kind models.LookupKind, legacy sql.NullInt64) (*int64, error) {
	legacyID := helpers.NullInt64Ptr(legacy)
	if legacyID == nil || u.lookups == nil {
		return nil, nil
	}

	v, err := u.lookups.Lookup(ctx, kind, *legacyID)
	if err != nil {
		return nil, fmt.Errorf("legacy %s %d: %w", kind, *legacyID, err)
	}
	if v == nil {
		return nil, nil
	}

	name := strings.TrimSpace(v.Name)
	if kind == models.LookupBloodGroup {
		name = strings.ToUpper(name)
	}
	if name == "" {
		return nil, nil
	}

	l, err := s.Lookups().FindOrCreate(ctx, kind, name, helpers.NullStringPtr(v.Code), legacyID)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", kind, name, err)
	}
	return &l.ID, nil
}
