package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/db"
)

// UserRepository handles database operations for users
type UserRepository struct {
	*table[models.User]
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(q db.Querier) *UserRepository {
	return &UserRepository{newTable(q, "users",
		[]string{"name", "email", "password", "phone", "whatsapp_number", "type", "is_active"},
		func(u *models.User) []interface{} {
			return []interface{}{u.Name, u.Email, u.Password, u.Phone, u.WhatsappNumber, u.Type, u.IsActive}
		},
		func(u *models.User) []interface{} {
			return []interface{}{&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.WhatsappNumber, &u.Type, &u.IsActive}
		},
		func(u *models.User) *int64 { return &u.ID },
	)}
}

// FindByEmail retrieves a user by email. Emails are compared case-insensitively
// so rows written before the upper-case convention still match.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, squirrel.Expr("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))))
}
