package models

// Lookup is a row of one of the name-keyed target lookup tables
// (occupations, blood groups, nationalities, ...).
type Lookup struct {
	ID       int64      `json:"id" db:"id"`
	Kind     LookupKind `json:"kind" db:"-"`
	Name     string     `json:"name" db:"name"`
	Code     *string    `json:"code,omitempty" db:"code"`
	LegacyID *int64     `json:"legacyId,omitempty" db:"legacy_id"`
}
