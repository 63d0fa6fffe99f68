package models

// Accommodation defines the 'accommodations' table, one per student
type Accommodation struct {
	ID          int64        `json:"id" db:"id"`
	StudentID   int64        `json:"studentId" db:"student_id"`
	PlaceOfStay *PlaceOfStay `json:"placeOfStay,omitempty" db:"place_of_stay"`
	AddressID   *int64       `json:"addressId,omitempty" db:"address_id"`
}
