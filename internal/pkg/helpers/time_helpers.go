package helpers

import (
	"database/sql"
	"strings"
	"time"
)

// legacyDateLayouts are the formats the MySQL driver hands back for DATE,
// DATETIME and free-text date columns in the legacy schema.
var legacyDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"02/01/2006",
	"02-01-2006",
}

// ParseLegacyDate normalises a legacy date value to a date-only UTC time.
// Zero dates ("0000-00-00"), blanks and unparseable values return nil.
func ParseLegacyDate(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	v := strings.TrimSpace(s.String)
	if v == "" || strings.HasPrefix(v, "0000-00-00") {
		return nil
	}
	for _, layout := range legacyDateLayouts {
		t, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		d := DateOnlyUTC(t)
		return &d
	}
	return nil
}

// DateOnlyUTC truncates t to midnight UTC of its calendar date.
func DateOnlyUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
