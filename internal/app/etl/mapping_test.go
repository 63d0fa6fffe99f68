package etl

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
)

func TestDeriveEmail(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{" ABC123 ", "ABC123@thebges.edu.in"},
		{"abc123", "ABC123@thebges.edu.in"},
		{"B.COM 12/34-5", "B.COM12345@thebges.edu.in"},
		{"\tX 1\n", "X1@thebges.edu.in"},
	}
	for _, tt := range tests {
		got, err := DeriveEmail(tt.code, "thebges.edu.in")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "code %q", tt.code)
	}
}

func TestDeriveEmail_EmptyCode(t *testing.T) {
	_, err := DeriveEmail("  -/ ", "thebges.edu.in")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCode)
}

func TestInitialPassword(t *testing.T) {
	assert.Equal(t, "BCOM1234", InitialPassword(" bcom1234 "))
}

func TestMapPlaceOfStay_Total(t *testing.T) {
	allowed := map[models.PlaceOfStay]bool{
		models.PlaceOfStayOwn:           true,
		models.PlaceOfStayHostel:        true,
		models.PlaceOfStayRelatives:     true,
		models.PlaceOfStayFamilyFriends: true,
		models.PlaceOfStayPayingGuest:   true,
	}
	inputs := []sql.NullString{
		{String: "Own", Valid: true},
		{String: "Hostel", Valid: true},
		{String: "Relatives", Valid: true},
		{String: "Family Friends", Valid: true},
		{String: "Paying Guest", Valid: true},
		{String: "  paying   guest ", Valid: true},
		{String: "", Valid: true},
		{String: "Mess", Valid: true},
		{},
	}
	for _, in := range inputs {
		var got *models.PlaceOfStay
		assert.NotPanics(t, func() { got = MapPlaceOfStay(in) })
		if got != nil {
			assert.True(t, allowed[*got], "unexpected place of stay %q", *got)
		}
	}

	assert.Equal(t, models.PlaceOfStayFamilyFriends, *MapPlaceOfStay(sql.NullString{String: "FAMILY FRIENDS", Valid: true}))
	assert.Equal(t, models.PlaceOfStayPayingGuest, *MapPlaceOfStay(sql.NullString{String: "  paying   guest ", Valid: true}))
	assert.Nil(t, MapPlaceOfStay(sql.NullString{String: "Mess", Valid: true}))
	assert.Nil(t, MapPlaceOfStay(sql.NullString{}))
}

func TestMapParentType(t *testing.T) {
	assert.Equal(t, models.ParentTypeBoth, *MapParentType(ns("bth")))
	assert.Equal(t, models.ParentTypeFatherOnly, *MapParentType(ns("SNGL_FTHR")))
	assert.Equal(t, models.ParentTypeMotherOnly, *MapParentType(ns(" sngl_mthr ")))
	assert.Nil(t, MapParentType(ns("other")))
	assert.Nil(t, MapParentType(sql.NullString{}))
}

func TestMapLocality(t *testing.T) {
	assert.Equal(t, models.LocalityUrban, *MapLocality(ns("urban")))
	assert.Equal(t, models.LocalityRural, *MapLocality(ns("Rural ")))
	assert.Nil(t, MapLocality(ns("suburban")))
}

func TestMapCommunity(t *testing.T) {
	assert.Nil(t, MapCommunity(sql.NullInt64{}))
	assert.Nil(t, MapCommunity(ni(0)))
	assert.Equal(t, models.CommunityGujarati, *MapCommunity(ni(1)))
	assert.Equal(t, models.CommunityNonGujarati, *MapCommunity(ni(2)))
}

func TestMapLevel(t *testing.T) {
	tests := []struct {
		code string
		want *models.StudentLevel
	}{
		{"11MA002", levelPtr(models.LevelPostGraduate)},
		{"14CS100", levelPtr(models.LevelPostGraduate)},
		{"2201234", levelPtr(models.LevelUnderGraduate)},
		{"ECO123", levelPtr(models.LevelUnderGraduate)},
		{"BCOM1234", nil},
		{" bcom1234", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapLevel(tt.code), "code %q", tt.code)
	}
}

func TestMapGender(t *testing.T) {
	assert.Nil(t, MapGender(sql.NullInt64{}))
	assert.Nil(t, MapGender(ni(0)))
	assert.Equal(t, models.GenderMale, *MapGender(ni(1)))
	assert.Equal(t, models.GenderFemale, *MapGender(ni(2)))
}

func TestFormatAadhaar(t *testing.T) {
	assert.Equal(t, "1234-5678-9012", *FormatAadhaar(ns("1234 5678 9012")))
	assert.Equal(t, "1234-5678-9012", *FormatAadhaar(ns("123456789012")))
	assert.Nil(t, FormatAadhaar(ns("12345")))
	assert.Nil(t, FormatAadhaar(ns("1234 5678 9012 3")))
	assert.Nil(t, FormatAadhaar(sql.NullString{}))
}

func TestCategorizeIncome(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Upto 1.2 Lakh", IncomeBelow3Lakh},
		{"Upto Rs. 1.2 lakh", IncomeBelow3Lakh},
		{"Rs. 1,20,000", IncomeBelow3Lakh},
		{"1.2 to 3 Lakh", IncomeBelow3Lakh},
		{"Rs. 3 to 5 Lakh", Income3To5Lakh},
		{"1.2 Lakh to 5 Lakh", Income3To5Lakh},
		{"5 Lakh and above", Income5To8Lakh},
		{"Rs. 5,00,000 & Above", Income5To8Lakh},
		{"8 Lakhs & Above", Income8To10Lakh},
		{"3-10 lakh", Income8To10Lakh},
		{"10 Lacs and above", Income10LakhAbove},
	}
	for _, tt := range tests {
		got := CategorizeIncome(ns(tt.in))
		require.NotNil(t, got, "income %q", tt.in)
		assert.Equal(t, tt.want, *got, "income %q", tt.in)
	}

	assert.Nil(t, CategorizeIncome(ns("0")))
	assert.Nil(t, CategorizeIncome(ns("  ")))
	assert.Nil(t, CategorizeIncome(ns("unknown")))
	assert.Nil(t, CategorizeIncome(sql.NullString{}))
}

func TestIsHandicapped(t *testing.T) {
	assert.False(t, IsHandicapped(sql.NullString{}))
	assert.False(t, IsHandicapped(ns("No")))
	assert.False(t, IsHandicapped(ns("0")))
	assert.True(t, IsHandicapped(ns("Yes")))
	assert.True(t, IsHandicapped(ns("Visually impaired")))
}

func levelPtr(l models.StudentLevel) *models.StudentLevel {
	return &l
}
