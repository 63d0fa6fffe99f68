package helpers

import (
	"database/sql"
	"strings"
)

// NullStringPtr converts a legacy sql.NullString to a trimmed *string.
// Invalid or blank values become nil.
func NullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := strings.TrimSpace(s.String)
	if v == "" {
		return nil
	}
	return &v
}

// NullUpperPtr is NullStringPtr with the value upper-cased, which is how the
// target schema stores names, address lines and codes.
func NullUpperPtr(s sql.NullString) *string {
	v := NullStringPtr(s)
	if v == nil {
		return nil
	}
	u := strings.ToUpper(*v)
	return &u
}

// NullLowerPtr is NullStringPtr with the value lower-cased (emails).
func NullLowerPtr(s sql.NullString) *string {
	v := NullStringPtr(s)
	if v == nil {
		return nil
	}
	l := strings.ToLower(*v)
	return &l
}

// NullInt64Ptr converts a legacy sql.NullInt64 to *int64.
// Zero is treated as "unset" because the legacy schema uses 0 for missing foreign keys.
func NullInt64Ptr(i sql.NullInt64) *int64 {
	if !i.Valid || i.Int64 == 0 {
		return nil
	}
	v := i.Int64
	return &v
}

// NullIntPtr converts a legacy sql.NullInt64 to *int, keeping zero as unset.
func NullIntPtr(i sql.NullInt64) *int {
	if !i.Valid || i.Int64 == 0 {
		return nil
	}
	v := int(i.Int64)
	return &v
}

// NullFloat64Ptr converts a legacy sql.NullFloat64 to *float64.
func NullFloat64Ptr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// StringValue returns the trimmed value of s or "" when invalid.
func StringValue(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return strings.TrimSpace(s.String)
}

// StringPtr returns a pointer to s, or nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
