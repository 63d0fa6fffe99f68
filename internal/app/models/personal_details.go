package models

import "time"

// PersonalDetails defines the 'personal_details' table, one per student
type PersonalDetails struct {
	ID                   int64      `json:"id" db:"id"`
	StudentID            int64      `json:"studentId" db:"student_id"`
	FirstName            string     `json:"firstName" db:"first_name"`
	MobileNumber         string     `json:"mobileNumber" db:"mobile_number"`
	Email                *string    `json:"email,omitempty" db:"email"`
	DateOfBirth          *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Gender               *Gender    `json:"gender,omitempty" db:"gender"`
	NationalityID        *int64     `json:"nationalityId,omitempty" db:"nationality_id"`
	CategoryID           *int64     `json:"categoryId,omitempty" db:"category_id"`
	ReligionID           *int64     `json:"religionId,omitempty" db:"religion_id"`
	MotherTongueID       *int64     `json:"motherTongueId,omitempty" db:"mother_tongue_id"`
	AadhaarCardNumber    *string    `json:"aadhaarCardNumber,omitempty" db:"aadhaar_card_number" validate:"omitempty,aadhaar"`
	MailingAddressID     *int64     `json:"mailingAddressId,omitempty" db:"mailing_address_id"`
	ResidentialAddressID *int64     `json:"residentialAddressId,omitempty" db:"residential_address_id"`
}
