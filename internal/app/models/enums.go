package models

// UserType is the kind of account a User row represents
type UserType string

const (
	UserTypeStudent UserType = "STUDENT"
	UserTypeTeacher UserType = "TEACHER"
	UserTypeAdmin   UserType = "ADMIN"
)

// StudentLevel is derived from the legacy code number
type StudentLevel string

const (
	LevelUnderGraduate StudentLevel = "UNDER_GRADUATE"
	LevelPostGraduate  StudentLevel = "POST_GRADUATE"
)

// Community of the student
type Community string

const (
	CommunityGujarati    Community = "GUJARATI"
	CommunityNonGujarati Community = "NON-GUJARATI"
)

// PlaceOfStay is where the student lives while studying
type PlaceOfStay string

const (
	PlaceOfStayOwn           PlaceOfStay = "OWN"
	PlaceOfStayHostel        PlaceOfStay = "HOSTEL"
	PlaceOfStayRelatives     PlaceOfStay = "RELATIVES"
	PlaceOfStayFamilyFriends PlaceOfStay = "FAMILY_FRIENDS"
	PlaceOfStayPayingGuest   PlaceOfStay = "PAYING_GUEST"
)

// LocalityType of an address
type LocalityType string

const (
	LocalityUrban LocalityType = "URBAN"
	LocalityRural LocalityType = "RURAL"
)

// ParentType records which parents the student lives with
type ParentType string

const (
	ParentTypeBoth       ParentType = "BOTH"
	ParentTypeFatherOnly ParentType = "FATHER_ONLY"
	ParentTypeMotherOnly ParentType = "MOTHER_ONLY"
)

// Gender as recorded in personal details
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// LookupKind identifies a target lookup table
type LookupKind string

const (
	LookupOccupation   LookupKind = "occupation"
	LookupBloodGroup   LookupKind = "blood_group"
	LookupNationality  LookupKind = "nationality"
	LookupCategory     LookupKind = "category"
	LookupReligion     LookupKind = "religion"
	LookupMotherTongue LookupKind = "mother_tongue"
	LookupAnnualIncome LookupKind = "annual_income"
)
