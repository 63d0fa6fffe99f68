package helpers

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBatchSize(t *testing.T) {
	assert.Equal(t, DefaultBatchSize, NormalizeBatchSize(0))
	assert.Equal(t, DefaultBatchSize, NormalizeBatchSize(-3))
	assert.Equal(t, 50, NormalizeBatchSize(50))
	assert.Equal(t, MaxBatchSize, NormalizeBatchSize(MaxBatchSize+1))
}

func TestBatchOffsets(t *testing.T) {
	assert.Equal(t, []int{0, 500, 1000}, BatchOffsets(1234, 500, 0))
	assert.Equal(t, []int{1000}, BatchOffsets(1234, 500, 1000))
	assert.Equal(t, []int{0, 500}, BatchOffsets(1000, 500, 0))
	assert.Equal(t, []int{0, 500}, BatchOffsets(1000, 500, -10))
	assert.Empty(t, BatchOffsets(0, 500, 0))
	assert.Empty(t, BatchOffsets(1234, 500, 1500))
}

func TestBatchNumber(t *testing.T) {
	assert.Equal(t, 1, BatchNumber(0, 500))
	assert.Equal(t, 3, BatchNumber(1000, 500))
}

func TestNullStringHelpers(t *testing.T) {
	assert.Nil(t, NullStringPtr(sql.NullString{}))
	assert.Nil(t, NullStringPtr(sql.NullString{String: "  ", Valid: true}))
	assert.Equal(t, "abc", *NullStringPtr(sql.NullString{String: " abc ", Valid: true}))
	assert.Equal(t, "ABC ROAD", *NullUpperPtr(sql.NullString{String: "abc road", Valid: true}))
	assert.Equal(t, "a@b.in", *NullLowerPtr(sql.NullString{String: "A@B.in", Valid: true}))
	assert.Equal(t, "", StringValue(sql.NullString{}))
}

func TestNullNumberHelpers(t *testing.T) {
	assert.Nil(t, NullInt64Ptr(sql.NullInt64{}))
	assert.Equal(t, int64(7), *NullInt64Ptr(sql.NullInt64{Int64: 7, Valid: true}))
	assert.Equal(t, 2019, *NullIntPtr(sql.NullInt64{Int64: 2019, Valid: true}))
	assert.Nil(t, NullFloat64Ptr(sql.NullFloat64{}))
	assert.Equal(t, 162.5, *NullFloat64Ptr(sql.NullFloat64{Float64: 162.5, Valid: true}))
}

func TestParseLegacyDate(t *testing.T) {
	want := time.Date(2004, 5, 17, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2004-05-17", "2004-05-17 13:45:00", "17/05/2004", "17-05-2004", "2004-05-17T13:45:00+05:30"} {
		got := ParseLegacyDate(sql.NullString{String: in, Valid: true})
		require.NotNil(t, got, in)
		assert.True(t, want.Equal(*got), "%s parsed as %s", in, got)
	}

	for _, in := range []sql.NullString{{}, {String: "", Valid: true}, {String: "0000-00-00", Valid: true}, {String: "someday", Valid: true}} {
		assert.Nil(t, ParseLegacyDate(in), in.String)
	}
}
