package models

// Person is a generic party record used for fathers, mothers and guardians
type Person struct {
	ID                int64   `json:"id" db:"id"`
	Name              *string `json:"name,omitempty" db:"name"`
	Email             *string `json:"email,omitempty" db:"email"`
	Phone             *string `json:"phone,omitempty" db:"phone"`
	AadhaarCardNumber *string `json:"aadhaarCardNumber,omitempty" db:"aadhaar_card_number" validate:"omitempty,aadhaar"`
	Image             *string `json:"image,omitempty" db:"image"`
	OccupationID      *int64  `json:"occupationId,omitempty" db:"occupation_id"`
	OfficePhone       *string `json:"officePhone,omitempty" db:"office_phone"`
	OfficeAddressID   *int64  `json:"officeAddressId,omitempty" db:"office_address_id"`
}

// Parent links a student to the father and mother Person rows
type Parent struct {
	ID             int64       `json:"id" db:"id"`
	StudentID      int64       `json:"studentId" db:"student_id"`
	FatherID       *int64      `json:"fatherId,omitempty" db:"father_id"`
	MotherID       *int64      `json:"motherId,omitempty" db:"mother_id"`
	ParentType     *ParentType `json:"parentType,omitempty" db:"parent_type"`
	AnnualIncomeID *int64      `json:"annualIncomeId,omitempty" db:"annual_income_id"`
}

// Guardian links a student to the guardian Person row
type Guardian struct {
	ID        int64   `json:"id" db:"id"`
	StudentID int64   `json:"studentId" db:"student_id"`
	PersonID  *int64  `json:"personId,omitempty" db:"person_id"`
	Relation  *string `json:"relation,omitempty" db:"relation"`
}
