package repositories

import (
	"github.com/yigit/erp-migrator/internal/db"
)

// Repositories holds all the repository instances bound to one Querier,
// either the pool or a transaction.
type Repositories struct {
	Users               *UserRepository
	Students            *StudentRepository
	Addresses           *AddressRepository
	Persons             *PersonRepository
	Accommodations      *AccommodationRepository
	Admissions          *AdmissionRepository
	Parents             *ParentRepository
	Guardians           *GuardianRepository
	Health              *HealthRepository
	EmergencyContacts   *EmergencyContactRepository
	PersonalDetails     *PersonalDetailsRepository
	AcademicHistories   *AcademicHistoryRepository
	AcademicIdentifiers *AcademicIdentifierRepository
	TransportDetails    *TransportDetailsRepository
	Lookups             *LookupRepository
	Checkpoints         *CheckpointRepository
}

// NewRepositories initializes all repositories
func NewRepositories(q db.Querier) *Repositories {
	return &Repositories{
		Users:               NewUserRepository(q),
		Students:            NewStudentRepository(q),
		Addresses:           NewAddressRepository(q),
		Persons:             NewPersonRepository(q),
		Accommodations:      NewAccommodationRepository(q),
		Admissions:          NewAdmissionRepository(q),
		Parents:             NewParentRepository(q),
		Guardians:           NewGuardianRepository(q),
		Health:              NewHealthRepository(q),
		EmergencyContacts:   NewEmergencyContactRepository(q),
		PersonalDetails:     NewPersonalDetailsRepository(q),
		AcademicHistories:   NewAcademicHistoryRepository(q),
		AcademicIdentifiers: NewAcademicIdentifierRepository(q),
		TransportDetails:    NewTransportDetailsRepository(q),
		Lookups:             NewLookupRepository(q),
		Checkpoints:         NewCheckpointRepository(q),
	}
}
