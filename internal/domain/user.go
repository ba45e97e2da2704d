package domain

import (
	"github.com/google/uuid"
)

// User represents a registered user of the application.
type User struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"-"` // Stored credential, never exposed in JSON
}

// NewUser builds an unpersisted User. The store assigns the ID on save.
func NewUser(name, email, password string) *User {
	return &User{
		Name:     name,
		Email:    email,
		Password: password,
	}
}

// IsPersisted reports whether the user has been assigned an ID by a store.
func (u *User) IsPersisted() bool {
	return u.ID != uuid.Nil
}
