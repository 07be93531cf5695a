package models

import "time"

type UserType string

const (
	UserTypeClient       UserType = "client"
	UserTypeProfessional UserType = "professional"
)

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Company      *string
	Email        string
	Phone        string
	PasswordHash string
	UserType     UserType
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
