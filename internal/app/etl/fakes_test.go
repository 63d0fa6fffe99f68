package etl

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/yigit/erp-migrator/internal/app/models"
	legacymodels "github.com/yigit/erp-migrator/internal/app/models/legacy"
	"github.com/yigit/erp-migrator/internal/app/repositories"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
)

// memState is the content of the in-memory target store.
type memState struct {
	nextID              int64
	users               []models.User
	students            []models.Student
	addresses           []models.Address
	persons             []models.Person
	lookups             []models.Lookup
	accommodations      []models.Accommodation
	admissions          []models.Admission
	parents             []models.Parent
	guardians           []models.Guardian
	health              []models.Health
	emergencyContacts   []models.EmergencyContact
	personalDetails     []models.PersonalDetails
	academicHistories   []models.AcademicHistory
	academicIdentifiers []models.AcademicIdentifier
	transportDetails    []models.TransportDetails
}

// memDB is a Target keeping every table in memory. Transactions are
// serialised and a failing transaction restores the previous state. Rows are
// never modified in place, so a shallow copy of memState is a snapshot.
type memDB struct {
	mu    sync.Mutex
	state memState
	// beforeCreate is called for every insert; a non-nil error fails it.
	beforeCreate func(table string, row any) error
}

func newMemDB() *memDB {
	return &memDB{}
}

func (m *memDB) InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := m.state
	if err := fn(ctx, memStores{m: m}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

func (m *memDB) counts() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]int{
		"users":                len(m.state.users),
		"students":             len(m.state.students),
		"addresses":            len(m.state.addresses),
		"persons":              len(m.state.persons),
		"lookups":              len(m.state.lookups),
		"accommodations":       len(m.state.accommodations),
		"admissions":           len(m.state.admissions),
		"parents":              len(m.state.parents),
		"guardians":            len(m.state.guardians),
		"health":               len(m.state.health),
		"emergency_contacts":   len(m.state.emergencyContacts),
		"personal_details":     len(m.state.personalDetails),
		"academic_histories":   len(m.state.academicHistories),
		"academic_identifiers": len(m.state.academicIdentifiers),
		"transport_details":    len(m.state.transportDetails),
	}
}

func (m *memDB) hook(table string, row any) error {
	if m.beforeCreate == nil {
		return nil
	}
	return m.beforeCreate(table, row)
}

type memTable[T any] struct {
	m    *memDB
	name string
	rows *[]T
	id   func(*T) *int64
	// key is the unique one-per-student (or one-per-user) column, if any.
	key func(*T) int64
}

func (t memTable[T]) Create(_ context.Context, row *T) error {
	if err := t.m.hook(t.name, row); err != nil {
		return err
	}
	if t.key != nil {
		for i := range *t.rows {
			if t.key(&(*t.rows)[i]) == t.key(row) {
				return fmt.Errorf("%w: %s", apperrors.ErrResourceAlreadyExists, t.name)
			}
		}
	}
	t.m.state.nextID++
	*t.id(row) = t.m.state.nextID
	*t.rows = append(*t.rows, *row)
	return nil
}

func (t memTable[T]) find(match func(*T) bool) (*T, error) {
	for i := range *t.rows {
		if match(&(*t.rows)[i]) {
			c := (*t.rows)[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (t memTable[T]) FindByStudentID(_ context.Context, studentID int64) (*T, error) {
	return t.find(func(r *T) bool { return t.key(r) == studentID })
}

func (t memTable[T]) Update(_ context.Context, row *T) error {
	for i := range *t.rows {
		if *t.id(&(*t.rows)[i]) == *t.id(row) {
			rows := slices.Clone(*t.rows)
			rows[i] = *row
			*t.rows = rows
			return nil
		}
	}
	return repositories.ErrNotFound
}

type memUsers struct {
	memTable[models.User]
}

func (u memUsers) Create(ctx context.Context, row *models.User) error {
	if _, err := u.FindByEmail(ctx, row.Email); err == nil {
		return fmt.Errorf("%w: users", apperrors.ErrResourceAlreadyExists)
	}
	return u.memTable.Create(ctx, row)
}

func (u memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return u.find(func(r *models.User) bool { return strings.EqualFold(r.Email, strings.TrimSpace(email)) })
}

type memStudents struct {
	memTable[models.Student]
}

func (s memStudents) FindByUserID(_ context.Context, userID int64) (*models.Student, error) {
	return s.find(func(r *models.Student) bool { return r.UserID == userID })
}

type memLookups struct {
	m *memDB
}

func (l memLookups) FindOrCreate(_ context.Context, kind models.LookupKind, name string, code *string, legacyID *int64) (*models.Lookup, error) {
	for _, row := range l.m.state.lookups {
		if row.Kind == kind && strings.EqualFold(row.Name, name) {
			c := row
			return &c, nil
		}
	}
	row := models.Lookup{Kind: kind, Name: name, Code: code, LegacyID: legacyID}
	if err := l.m.hook("lookups", &row); err != nil {
		return nil, err
	}
	l.m.state.nextID++
	row.ID = l.m.state.nextID
	l.m.state.lookups = append(l.m.state.lookups, row)
	return &row, nil
}

func scoped[T any](m *memDB, name string, rows *[]T, id func(*T) *int64, studentID func(*T) int64) memTable[T] {
	return memTable[T]{m: m, name: name, rows: rows, id: id, key: studentID}
}

type memStores struct {
	m *memDB
}

func (s memStores) Users() UserStore {
	return memUsers{memTable[models.User]{m: s.m, name: "users", rows: &s.m.state.users,
		id: func(r *models.User) *int64 { return &r.ID }}}
}

func (s memStores) Students() StudentStore {
	return memStudents{memTable[models.Student]{m: s.m, name: "students", rows: &s.m.state.students,
		id:  func(r *models.Student) *int64 { return &r.ID },
		key: func(r *models.Student) int64 { return r.UserID }}}
}

func (s memStores) Addresses() Creator[models.Address] {
	return memTable[models.Address]{m: s.m, name: "addresses", rows: &s.m.state.addresses,
		id: func(r *models.Address) *int64 { return &r.ID }}
}

func (s memStores) Persons() Creator[models.Person] {
	return memTable[models.Person]{m: s.m, name: "persons", rows: &s.m.state.persons,
		id: func(r *models.Person) *int64 { return &r.ID }}
}

func (s memStores) Lookups() LookupStore {
	return memLookups{m: s.m}
}

func (s memStores) Accommodations() StudentScoped[models.Accommodation] {
	return scoped(s.m, "accommodations", &s.m.state.accommodations,
		func(r *models.Accommodation) *int64 { return &r.ID },
		func(r *models.Accommodation) int64 { return r.StudentID })
}

func (s memStores) Admissions() StudentScoped[models.Admission] {
	return scoped(s.m, "admissions", &s.m.state.admissions,
		func(r *models.Admission) *int64 { return &r.ID },
		func(r *models.Admission) int64 { return r.StudentID })
}

func (s memStores) Parents() StudentScoped[models.Parent] {
	return scoped(s.m, "parents", &s.m.state.parents,
		func(r *models.Parent) *int64 { return &r.ID },
		func(r *models.Parent) int64 { return r.StudentID })
}

func (s memStores) Guardians() StudentScoped[models.Guardian] {
	return scoped(s.m, "guardians", &s.m.state.guardians,
		func(r *models.Guardian) *int64 { return &r.ID },
		func(r *models.Guardian) int64 { return r.StudentID })
}

func (s memStores) Health() StudentScoped[models.Health] {
	return scoped(s.m, "health", &s.m.state.health,
		func(r *models.Health) *int64 { return &r.ID },
		func(r *models.Health) int64 { return r.StudentID })
}

func (s memStores) EmergencyContacts() StudentScoped[models.EmergencyContact] {
	return scoped(s.m, "emergency_contacts", &s.m.state.emergencyContacts,
		func(r *models.EmergencyContact) *int64 { return &r.ID },
		func(r *models.EmergencyContact) int64 { return r.StudentID })
}

func (s memStores) PersonalDetails() StudentScoped[models.PersonalDetails] {
	return scoped(s.m, "personal_details", &s.m.state.personalDetails,
		func(r *models.PersonalDetails) *int64 { return &r.ID },
		func(r *models.PersonalDetails) int64 { return r.StudentID })
}

func (s memStores) AcademicHistories() StudentScoped[models.AcademicHistory] {
	return scoped(s.m, "academic_histories", &s.m.state.academicHistories,
		func(r *models.AcademicHistory) *int64 { return &r.ID },
		func(r *models.AcademicHistory) int64 { return r.StudentID })
}

func (s memStores) AcademicIdentifiers() StudentScoped[models.AcademicIdentifier] {
	return scoped(s.m, "academic_identifiers", &s.m.state.academicIdentifiers,
		func(r *models.AcademicIdentifier) *int64 { return &r.ID },
		func(r *models.AcademicIdentifier) int64 { return r.StudentID })
}

func (s memStores) TransportDetails() StudentScoped[models.TransportDetails] {
	return scoped(s.m, "transport_details", &s.m.state.transportDetails,
		func(r *models.TransportDetails) *int64 { return &r.ID },
		func(r *models.TransportDetails) int64 { return r.StudentID })
}

// memSource serves legacy rows from a slice and records every fetch.
type memSource struct {
	rows     []legacymodels.Student
	countErr error
	fetchErr error

	mu      sync.Mutex
	offsets []int
	limits  []int
}

func (s *memSource) Count(context.Context) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return len(s.rows), nil
}

func (s *memSource) Fetch(_ context.Context, limit, offset int) ([]legacymodels.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	s.offsets = append(s.offsets, offset)
	s.limits = append(s.limits, limit)
	if offset >= len(s.rows) {
		return nil, nil
	}
	end := min(offset+limit, len(s.rows))
	return slices.Clone(s.rows[offset:end]), nil
}

// memLookupSource stands in for the legacy lookup tables.
type memLookupSource map[models.LookupKind]map[int64]string

func (m memLookupSource) Lookup(_ context.Context, kind models.LookupKind, id int64) (*legacymodels.LookupValue, error) {
	name, ok := m[kind][id]
	if !ok {
		return nil, nil
	}
	return &legacymodels.LookupValue{ID: id, Name: name}, nil
}

var testLookups = memLookupSource{
	models.LookupBloodGroup: {2: "b+"},
	models.LookupReligion:   {1: "Hindu"},
	models.LookupOccupation: {3: "Service"},
}

// memCheckpoints records every save.
type memCheckpoints struct {
	mu      sync.Mutex
	current *models.Checkpoint
	saved   []int
	cleared bool
}

func (c *memCheckpoints) Load(context.Context) (*models.Checkpoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, nil
	}
	cp := *c.current
	return &cp, nil
}

func (c *memCheckpoints) Save(_ context.Context, cp *models.Checkpoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	saved := *cp
	c.current = &saved
	c.saved = append(c.saved, cp.NextOffset)
	return nil
}

func (c *memCheckpoints) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.cleared = true
	return nil
}

func fakeHasher(password string) (string, error) {
	return "hashed:" + password, nil
}

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func ni(i int64) sql.NullInt64 {
	return sql.NullInt64{Int64: i, Valid: true}
}

// legacyRow builds a fully populated legacy row with the given id.
func legacyRow(id int64) legacymodels.Student {
	return legacymodels.Student{
		ID:                   id,
		CodeNumber:           ns(fmt.Sprintf(" BCOM%04d ", id)),
		Name:                 ns(fmt.Sprintf("Student %d", id)),
		Email:                ns(fmt.Sprintf("Student%d@Example.com", id)),
		Active:               sql.NullBool{Bool: true, Valid: true},
		ContactNo:            ns(fmt.Sprintf("98300%05d", id)),
		SexID:                ni(1),
		DateOfBirth:          ns("2004-05-17"),
		CommunityID:          ni(2),
		AadharCardNo:         ns("1234 5678 9012"),
		MailingAddress:       ns("12 Park Street"),
		MailingPinNo:         ns("700016"),
		LocalityType:         ns("urban"),
		ReligionID:           ni(1),
		RollNumber:           ns(fmt.Sprintf("R%d", id)),
		BloodGroup:           ni(2),
		EyePowerLeft:         ns("-1.5d"),
		EmerContactPersonNm:  ns("Uncle"),
		EmerContactPersonMob: ns("9830099999"),
		AnnualFamilyIncome:   ns("Rs. 3 to 5 Lakh"),
		TransportID:          ni(4),
		IsSingleParent:       ns("bth"),
		FatherName:           ns(fmt.Sprintf("Father %d", id)),
		FatherOccupation:     ni(3),
		FatherOffAddress:     ns("Office Road"),
		MotherName:           ns(fmt.Sprintf("Mother %d", id)),
		GuardianName:         ns(fmt.Sprintf("Guardian %d", id)),
		GuardianOffAddress:   ns("Guardian Office"),
		GuardianRelation:     ns("Uncle"),
		AdmissionYear:        ni(2022),
		AdmissionDate:        ns("2022-07-01"),
		PlaceOfStay:          ns("Hostel"),
		PlaceOfStayAddr:      ns("Hostel Block A"),
	}
}

func legacyRows(n int) []legacymodels.Student {
	rows := make([]legacymodels.Student, n)
	for i := range rows {
		rows[i] = legacyRow(int64(i + 1))
	}
	return rows
}
