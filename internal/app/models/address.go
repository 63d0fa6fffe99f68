package models

// Address is referenced by accommodations, personal details and persons
type Address struct {
	ID           int64         `json:"id" db:"id"`
	AddressLine  *string       `json:"addressLine,omitempty" db:"address_line"`
	LocalityType *LocalityType `json:"localityType,omitempty" db:"locality_type"`
	Phone        *string       `json:"phone,omitempty" db:"phone"`
	Pincode      *string       `json:"pincode,omitempty" db:"pincode"`
}

// IsEmpty reports whether no field of the address carries a value.
func (a *Address) IsEmpty() bool {
	return a.AddressLine == nil && a.LocalityType == nil && a.Phone == nil && a.Pincode == nil
}
