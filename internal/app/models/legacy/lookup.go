package legacy

import "database/sql"

// LookupValue is a row of a legacy lookup table (parentoccupation,
// bloodgroup, nationality, category, religion, mothertongue).
type LookupValue struct {
	ID   int64          `db:"id"`
	Name string         `db:"name"`
	Code sql.NullString `db:"code"`
}
