package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/db"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	*table[models.Student]
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.Querier) *StudentRepository {
	return &StudentRepository{newTable(q, "students",
		[]string{"user_id", "legacy_student_id", "uid", "level", "community", "handicapped",
			"active", "alumni", "leaving_date", "leaving_reason"},
		func(s *models.Student) []interface{} {
			return []interface{}{s.UserID, s.LegacyStudentID, s.UID, s.Level, s.Community, s.Handicapped,
				s.Active, s.Alumni, s.LeavingDate, s.LeavingReason}
		},
		func(s *models.Student) []interface{} {
			return []interface{}{&s.ID, &s.UserID, &s.LegacyStudentID, &s.UID, &s.Level, &s.Community, &s.Handicapped,
				&s.Active, &s.Alumni, &s.LeavingDate, &s.LeavingReason}
		},
		func(s *models.Student) *int64 { return &s.ID },
	)}
}

// FindByUserID retrieves the student attached to a user
func (r *StudentRepository) FindByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.findOne(ctx, squirrel.Eq{"user_id": userID})
}

// FindByLegacyID retrieves a student by the legacy studentpersonaldetails id
func (r *StudentRepository) FindByLegacyID(ctx context.Context, legacyID int64) (*models.Student, error) {
	return r.findOne(ctx, squirrel.Eq{"legacy_student_id": legacyID})
}
