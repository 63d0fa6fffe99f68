package models

// User defines the user model based on the 'users' table
type User struct {
	ID             int64    `json:"id" db:"id" example:"1"`
	Name           string   `json:"name" db:"name" example:"RAHUL SHARMA" validate:"required"`
	Email          string   `json:"email" db:"email" example:"BCOM1234@thebges.edu.in" validate:"required"`
	Password       string   `json:"-" db:"password"`
	Phone          *string  `json:"phone,omitempty" db:"phone"`
	WhatsappNumber *string  `json:"whatsappNumber,omitempty" db:"whatsapp_number"`
	Type           UserType `json:"type" db:"type" example:"STUDENT" validate:"oneof=STUDENT TEACHER ADMIN"`
	IsActive       bool     `json:"isActive" db:"is_active"`
}
