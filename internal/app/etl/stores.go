package etl

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/erp-migrator/internal/app/models"
	legacymodels "github.com/yigit/erp-migrator/internal/app/models/legacy"
	"github.com/yigit/erp-migrator/internal/app/repositories"
	"github.com/yigit/erp-migrator/internal/db"
)

// Source pages through the legacy student table
type Source interface {
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, limit, offset int) ([]legacymodels.Student, error)
}

// LookupSource resolves legacy lookup ids. A nil value with a nil error
// means the legacy row does not exist.
type LookupSource interface {
	Lookup(ctx context.Context, kind models.LookupKind, id int64) (*legacymodels.LookupValue, error)
}

// Creator inserts a row and sets its generated id
type Creator[T any] interface {
	Create(ctx context.Context, row *T) error
}

// StudentScoped is the capability set of a one-row-per-student table
type StudentScoped[T any] interface {
	Creator[T]
	FindByStudentID(ctx context.Context, studentID int64) (*T, error)
	Update(ctx context.Context, row *T) error
}

// UserStore reads and creates users
type UserStore interface {
	Creator[models.User]
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// StudentStore reads and creates students
type StudentStore interface {
	Creator[models.Student]
	FindByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// LookupStore finds or creates rows of the target lookup tables
type LookupStore interface {
	FindOrCreate(ctx context.Context, kind models.LookupKind, name string, code *string, legacyID *int64) (*models.Lookup, error)
}

// Stores exposes every target table to an upserter. All stores handed out by
// one Stores value share the same transaction.
type Stores interface {
	Users() UserStore
	Students() StudentStore
	Addresses() Creator[models.Address]
	Persons() Creator[models.Person]
	Lookups() LookupStore
	Accommodations() StudentScoped[models.Accommodation]
	Admissions() StudentScoped[models.Admission]
	Parents() StudentScoped[models.Parent]
	Guardians() StudentScoped[models.Guardian]
	Health() StudentScoped[models.Health]
	EmergencyContacts() StudentScoped[models.EmergencyContact]
	PersonalDetails() StudentScoped[models.PersonalDetails]
	AcademicHistories() StudentScoped[models.AcademicHistory]
	AcademicIdentifiers() StudentScoped[models.AcademicIdentifier]
	TransportDetails() StudentScoped[models.TransportDetails]
}

// Target runs fn inside one transaction of the target store. A non-nil
// error from fn discards everything fn wrote.
type Target interface {
	InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}

// PostgresTarget is the pgx implementation of Target
type PostgresTarget struct {
	db db.TxBeginner
}

// NewPostgresTarget creates a Target over a pool
func NewPostgresTarget(b db.TxBeginner) *PostgresTarget {
	return &PostgresTarget{db: b}
}

// InTx implements Target
func (t *PostgresTarget) InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error {
	return db.WithTransaction(ctx, t.db, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, pgStores{r: repositories.NewRepositories(tx)})
	})
}

type pgStores struct {
	r *repositories.Repositories
}

func (p pgStores) Users() UserStore { return p.r.Users }
func (p pgStores) Students() StudentStore { return p.r.Students }
func (p pgStores) Addresses() Creator[models.Address] { return p.r.Addresses }
func (p pgStores) Persons() Creator[models.Person] { return p.r.Persons }
func (p pgStores) Lookups() LookupStore { return p.r.Lookups }
func (p pgStores) Accommodations() StudentScoped[models.Accommodation] {
	return p.r.Accommodations
}
func (p pgStores) Admissions() StudentScoped[models.Admission] { return p.r.Admissions }
func (p pgStores) Parents() StudentScoped[models.Parent] { return p.r.Parents }
func (p pgStores) Guardians() StudentScoped[models.Guardian] { return p.r.Guardians }
func (p pgStores) Health() StudentScoped[models.Health] { return p.r.Health }
func (p pgStores) EmergencyContacts() StudentScoped[models.EmergencyContact] {
	return p.r.EmergencyContacts
}
func (p pgStores) PersonalDetails() StudentScoped[models.PersonalDetails] {
	return p.r.PersonalDetails
}
func (p pgStores) AcademicHistories() StudentScoped[models.AcademicHistory] {
	return p.r.AcademicHistories
}
func (p pgStores) AcademicIdentifiers() StudentScoped[models.AcademicIdentifier] {
	return p.r.AcademicIdentifiers
}
func (p pgStores) TransportDetails() StudentScoped[models.TransportDetails] {
	return p.r.TransportDetails
}
