package repositories

import (
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/db"
)

// AddressRepository handles database operations for addresses
type AddressRepository struct {
	*table[models.Address]
}

// NewAddressRepository creates a new AddressRepository
func NewAddressRepository(q db.Querier) *AddressRepository {
	return &AddressRepository{newTable(q, "addresses",
		[]string{"address_line", "locality_type", "phone", "pincode"},
		func(a *models.Address) []interface{} {
			return []interface{}{a.AddressLine, a.LocalityType, a.Phone, a.Pincode}
		},
		func(a *models.Address) []interface{} {
			return []interface{}{&a.ID, &a.AddressLine, &a.LocalityType, &a.Phone, &a.Pincode}
		},
		func(a *models.Address) *int64 { return &a.ID },
	)}
}

// PersonRepository handles database operations for persons
type PersonRepository struct {
	*table[models.Person]
}

// NewPersonRepository creates a new PersonRepository
func NewPersonRepository(q db.Querier) *PersonRepository {
	return &PersonRepository{newTable(q, "persons",
		[]string{"name", "email", "phone", "aadhaar_card_number", "image", "occupation_id",
			"office_phone", "office_address_id"},
		func(p *models.Person) []interface{} {
			return []interface{}{p.Name, p.Email, p.Phone, p.AadhaarCardNumber, p.Image, p.OccupationID,
				p.OfficePhone, p.OfficeAddressID}
		},
		func(p *models.Person) []interface{} {
			return []interface{}{&p.ID, &p.Name, &p.Email, &p.Phone, &p.AadhaarCardNumber, &p.Image, &p.OccupationID,
				&p.OfficePhone, &p.OfficeAddressID}
		},
		func(p *models.Person) *int64 { return &p.ID },
	)}
}
