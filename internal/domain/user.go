package domain

import (
	"time"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOperator Role = "OPERATOR"
)

// User is immutable after registration; token rotation is out of scope.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	SSN       string    `json:"ssn,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type UserRepository interface {
	CreateUser(user *User) error
	GetUserByID(id int64) (*User, error)
	// GetUserByEmail and GetUserByPhone return (nil, nil) when no user
	// matches; absence is an expected outcome for recipient resolution.
	GetUserByEmail(email string) (*User, error)
	GetUserByPhone(phone string) (*User, error)
	GetUserByToken(token string) (*User, error)
}
