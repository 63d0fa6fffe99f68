package etl

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
	"github.com/yigit/erp-migrator/internal/pkg/helpers"
)

// DeriveEmail builds the institutional login email from a legacy code number:
// whitespace, '-' and '/' are removed and the code is upper-cased.
func DeriveEmail(codeNumber, domain string) (string, error) {
	code := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '/' {
			return -1
		}
		return unicode.ToUpper(r)
	}, codeNumber)
	if code == "" {
		return "", fmt.Errorf("%w: empty code number", apperrors.ErrInvalidCode)
	}
	return code + "@" + strings.TrimPrefix(strings.TrimSpace(domain), "@"), nil
}

// InitialPassword is the password a migrated student first signs in with.
func InitialPassword(codeNumber string) string {
	return strings.ToUpper(strings.TrimSpace(codeNumber))
}

var placesOfStay = map[string]models.PlaceOfStay{
	"own":            models.PlaceOfStayOwn,
	"hostel":         models.PlaceOfStayHostel,
	"relatives":      models.PlaceOfStayRelatives,
	"family friends": models.PlaceOfStayFamilyFriends,
	"paying guest":   models.PlaceOfStayPayingGuest,
}

// MapPlaceOfStay maps the legacy free-text place of stay. Unknown and blank
// values map to nil.
func MapPlaceOfStay(s sql.NullString) *models.PlaceOfStay {
	if !s.Valid {
		return nil
	}
	key := strings.Join(strings.Fields(strings.ToLower(s.String)), " ")
	if p, ok := placesOfStay[key]; ok {
		return &p
	}
	return nil
}

// MapLocality maps localitytyp to URBAN or RURAL.
func MapLocality(s sql.NullString) *models.LocalityType {
	v := helpers.NullUpperPtr(s)
	if v == nil {
		return nil
	}
	switch models.LocalityType(*v) {
	case models.LocalityUrban:
		l := models.LocalityUrban
		return &l
	case models.LocalityRural:
		l := models.LocalityRural
		return &l
	}
	return nil
}

// MapParentType maps the issnglprnt code (bth, sngl_fthr, sngl_mthr).
func MapParentType(s sql.NullString) *models.ParentType {
	v := helpers.NullLowerPtr(s)
	if v == nil {
		return nil
	}
	var p models.ParentType
	switch *v {
	case "bth":
		p = models.ParentTypeBoth
	case "sngl_fthr":
		p = models.ParentTypeFatherOnly
	case "sngl_mthr":
		p = models.ParentTypeMotherOnly
	default:
		return nil
	}
	return &p
}

// MapCommunity maps communityid: 0 or null is unset, 1 is GUJARATI and any
// other id is NON-GUJARATI.
func MapCommunity(id sql.NullInt64) *models.Community {
	if !id.Valid || id.Int64 == 0 {
		return nil
	}
	c := models.CommunityNonGujarati
	if id.Int64 == 1 {
		c = models.CommunityGujarati
	}
	return &c
}

// MapLevel derives the programme level from the code number prefix.
func MapLevel(codeNumber string) *models.StudentLevel {
	code := strings.ToUpper(strings.TrimSpace(codeNumber))
	if code == "" {
		return nil
	}
	var l models.StudentLevel
	switch {
	case strings.HasPrefix(code, "11"), strings.HasPrefix(code, "14"):
		l = models.LevelPostGraduate
	case !strings.HasPrefix(code, "B"):
		l = models.LevelUnderGraduate
	default:
		return nil
	}
	return &l
}

// MapGender maps sexId: 0 or null is unset, 1 is MALE, anything else FEMALE.
func MapGender(id sql.NullInt64) *models.Gender {
	if !id.Valid || id.Int64 == 0 {
		return nil
	}
	g := models.GenderFemale
	if id.Int64 == 1 {
		g = models.GenderMale
	}
	return &g
}

// FormatAadhaar keeps the digits of an Aadhaar number and formats exactly
// twelve of them as dddd-dddd-dddd. Anything else is dropped.
func FormatAadhaar(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	var digits strings.Builder
	for _, r := range s.String {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 12 {
		return nil
	}
	formatted := d[0:4] + "-" + d[4:8] + "-" + d[8:12]
	return &formatted
}

// Annual income ranges of the target annual_incomes table
const (
	IncomeBelow3Lakh  = "Below ₹3 Lakh"
	Income3To5Lakh    = "₹3 - ₹5 Lakh"
	Income5To8Lakh    = "₹5 - ₹8 Lakh"
	Income8To10Lakh   = "₹8 - ₹10 Lakh"
	Income10LakhAbove = "₹10 Lakh and Above"
)

// incomeRules are checked in order; the first range with a matching
// substring wins.
var incomeRules = []struct {
	rangeName string
	needles   []string
}{
	{IncomeBelow3Lakh, []string{"upto 1.2", "upto rs. 1.2", "1,20,000", "1.2 to 3"}},
	{Income3To5Lakh, []string{"3 to 5", "1.2 lakh to 5", "1.2 lac to 5"}},
	{Income5To8Lakh, []string{"5 lakh and above", "5 lacs and above", "5 to 8", "rs. 5,00,000 & above"}},
	{Income8To10Lakh, []string{"8 lakhs & above", "3-10"}},
	{Income10LakhAbove, []string{"10 lacs and above"}},
}

// CategorizeIncome classifies the legacy free-text annual family income into
// one of the target ranges. Blank, "0" and unrecognised values return nil.
func CategorizeIncome(s sql.NullString) *string {
	v := helpers.NullLowerPtr(s)
	if v == nil || *v == "0" {
		return nil
	}
	for _, rule := range incomeRules {
		for _, needle := range rule.needles {
			if strings.Contains(*v, needle) {
				r := rule.rangeName
				return &r
			}
		}
	}
	return nil
}

// IsHandicapped reads the legacy free-text handicapped column.
func IsHandicapped(s sql.NullString) bool {
	v := helpers.NullLowerPtr(s)
	if v == nil {
		return false
	}
	switch *v {
	case "0", "n", "no", "false", "none", "nil", "na", "n/a":
		return false
	}
	return true
}

// LegacyBool reads a legacy tinyint flag, treating null as false.
func LegacyBool(b sql.NullBool) bool {
	return b.Valid && b.Bool
}
