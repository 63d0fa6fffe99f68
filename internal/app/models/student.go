package models

import "time"

// Student defines the student model based on the 'students' table.
// One per User.
type Student struct {
	ID              int64         `json:"id" db:"id"`
	UserID          int64         `json:"userId" db:"user_id" validate:"gt=0"`
	LegacyStudentID int64         `json:"legacyStudentId" db:"legacy_student_id"`
	UID             string        `json:"uid" db:"uid" validate:"required"`
	Level           *StudentLevel `json:"level,omitempty" db:"level"`
	Community       *Community    `json:"community,omitempty" db:"community"`
	Handicapped     bool          `json:"handicapped" db:"handicapped"`
	Active          bool          `json:"active" db:"active"`
	Alumni          bool          `json:"alumni" db:"alumni"`
	LeavingDate     *time.Time    `json:"leavingDate,omitempty" db:"leaving_date"`
	LeavingReason   *string       `json:"leavingReason,omitempty" db:"leaving_reason"`
}
