package model

type Customer struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name" validate:"max=256"`
	Email string `json:"email" db:"email" validate:"omitempty,email"`
	Phone string `json:"phone" db:"phone" validate:"max=32"`
}
