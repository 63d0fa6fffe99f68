// Package legacy holds row types of the pre-migration MySQL schema.
package legacy

import (
	"database/sql"
	"strings"
)

// Student is one row of the legacy studentpersonaldetails table. Only the
// columns the migration reads are mapped; the reader tolerates the rest.
type Student struct {
	ID                 int64          `db:"id"`
	CodeNumber         sql.NullString `db:"codeNumber"`
	Name               sql.NullString `db:"name"`
	Email              sql.NullString `db:"email"`
	Active             sql.NullBool   `db:"active"`
	Alumni             sql.NullBool   `db:"alumni"`
	ContactNo          sql.NullString `db:"contactNo"`
	WhatsappNo         sql.NullString `db:"whatsappno"`
	ApplicantSignature sql.NullString `db:"applicantSignature"`
	SexID              sql.NullInt64  `db:"sexId"`
	DateOfBirth        sql.NullString `db:"dateOfBirth"`
	Handicapped        sql.NullString `db:"handicapped"`
	CommunityID        sql.NullInt64  `db:"communityid"`
	LeavingDate        sql.NullString `db:"leavingdate"`
	LeavingReason      sql.NullString `db:"leavingreason"`
	AadharCardNo       sql.NullString `db:"aadharcardno"`
	InstitutionalEmail sql.NullString `db:"institutionalemail"`

	MailingAddress     sql.NullString `db:"mailingAddress"`
	MailingPinNo       sql.NullString `db:"mailingPinNo"`
	ResidentialAddress sql.NullString `db:"residentialAddress"`
	ResiPinNo          sql.NullString `db:"resiPinNo"`
	ResiPhoneMobileNo  sql.NullString `db:"resiPhoneMobileNo"`
	LocalityType       sql.NullString `db:"localitytyp"`

	ReligionID        sql.NullInt64 `db:"religionId"`
	StudentCategoryID sql.NullInt64 `db:"studentCategoryId"`
	MotherTongueID    sql.NullInt64 `db:"motherTongueId"`
	NationalityID     sql.NullInt64 `db:"nationalityId"`

	RollNumber       sql.NullString `db:"rollNumber"`
	UnivRegNo        sql.NullString `db:"univregno"`
	UniversityRegNo  sql.NullString `db:"universityRegNo"`
	UnivLastExamRoll sql.NullString `db:"univlstexmrollno"`
	CUFormNo         sql.NullString `db:"cuformno"`
	RFIDNo           sql.NullString `db:"rfidno"`

	Height              sql.NullFloat64 `db:"height"`
	Weight              sql.NullFloat64 `db:"weight"`
	BloodGroup          sql.NullInt64   `db:"bloodGroup"`
	EyePowerLeft        sql.NullString  `db:"eyePowerLeft"`
	EyePowerRight       sql.NullString  `db:"eyePowerRight"`
	PastMedicalHistory  sql.NullString  `db:"pastmedicalhistory"`
	PastSurgicalHistory sql.NullString  `db:"pastsurgicalhistory"`
	PastFamilyHistory   sql.NullString  `db:"pastfamilyhistory"`
	DrugAllergy         sql.NullString  `db:"drugallergy"`

	EmrgnResidentPhNo    sql.NullString `db:"emrgnResidentPhNo"`
	EmrgnOfficePhNo      sql.NullString `db:"emrgnOfficePhNo"`
	EmerContactPersonNm  sql.NullString `db:"emercontactpersonnm"`
	EmerPersRelToStud    sql.NullString `db:"emerpersreltostud"`
	EmerContactPersonMob sql.NullString `db:"emercontactpersonmob"`

	LastInstitution          sql.NullString `db:"lastInstitution"`
	LastInstitutionAddress   sql.NullString `db:"lastInstitutionAddress"`
	StudiedUptoClass         sql.NullString `db:"studiedUptoClass"`
	LastOtherBoardUniversity sql.NullString `db:"lastotherBoardUniversity"`
	LastSchoolPassedYear     sql.NullInt64  `db:"lspassedyr"`

	AnnualFamilyIncome sql.NullString `db:"annualFamilyIncome"`
	TransportID        sql.NullInt64  `db:"transportId"`
	IsSingleParent     sql.NullString `db:"issnglprnt"`

	FatherName       sql.NullString `db:"fatherName"`
	FatherOccupation sql.NullInt64  `db:"fatherOccupation"`
	FatherOffAddress sql.NullString `db:"fatherOffAddress"`
	FatherOffPhone   sql.NullString `db:"fatherOffPhone"`
	FatherMobNo      sql.NullString `db:"fatherMobNo"`
	FatherEmail      sql.NullString `db:"fatherEmail"`
	FatherPic        sql.NullString `db:"fatherPic"`
	FatherAadharNo   sql.NullString `db:"fatheraadharno"`

	MotherName       sql.NullString `db:"motherName"`
	MotherOccupation sql.NullInt64  `db:"motherOccupation"`
	MotherOffAddress sql.NullString `db:"motherOffAddress"`
	MotherOffPhone   sql.NullString `db:"motherOffPhone"`
	MotherMobNo      sql.NullString `db:"motherMobNo"`
	MotherEmail      sql.NullString `db:"motherEmail"`
	MotherPic        sql.NullString `db:"motherPic"`
	MotherAadharNo   sql.NullString `db:"motheraadharno"`

	GuardianName       sql.NullString `db:"guardianName"`
	GuardianOccupation sql.NullInt64  `db:"guardianOccupation"`
	GuardianOffAddress sql.NullString `db:"guardianOffAddress"`
	GuardianOffPhone   sql.NullString `db:"guardianOffPhone"`
	GuardianMobNo      sql.NullString `db:"guardianMobNo"`
	GuardianEmail      sql.NullString `db:"guardianEmail"`
	GuardianPic        sql.NullString `db:"guardianPic"`
	GuardianAadharNo   sql.NullString `db:"gurdianaadharno"`
	GuardianRelation   sql.NullString `db:"grdrelation"`

	AdmissionYear   sql.NullInt64  `db:"admissionYear"`
	AdmissionCodeNo sql.NullString `db:"admissioncodeno"`
	AdmissionDate   sql.NullString `db:"admissiondate"`

	PlaceOfStay          sql.NullString `db:"placeofstay"`
	PlaceOfStayContactNo sql.NullString `db:"placeofstaycontactno"`
	PlaceOfStayAddr      sql.NullString `db:"placeofstayaddr"`
}

// Code returns the trimmed legacy code number.
func (s *Student) Code() string {
	if !s.CodeNumber.Valid {
		return ""
	}
	return strings.TrimSpace(s.CodeNumber.String)
}
