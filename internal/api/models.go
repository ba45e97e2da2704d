package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/shopspring/decimal"
)

// UserRequest defines the payload for user registration.
// The password limit is in bytes, matching what bcrypt accepts.
type UserRequest struct {
	Name     string `json:"name"     validate:"max=150"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// LoginRequest defines the payload for the authentication endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public representation of a user; it never includes
// the stored credential.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AuthResponse defines the successful response of the authentication endpoint.
type AuthResponse struct {
	User UserResponse `json:"user"`

	// Token is the JWT used for API authorization
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt string `json:"expires_at"`
}

// EntryRequest defines the payload for creating and updating entries.
// Fields are checked by the entry service, not by struct tags, so that
// errors carry the business messages. Status is not part of the payload:
// new entries start PENDING and changes go through StatusRequest.
type EntryRequest struct {
	Description string           `json:"description"`
	Month       int              `json:"month"`
	Year        int              `json:"year"`
	Amount      *decimal.Decimal `json:"amount"`
	User        string           `json:"user"`
	Type        string           `json:"type"`
}

// StatusRequest defines the payload for the status change endpoint.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// EntryResponse is the public representation of an entry.
type EntryResponse struct {
	ID               uuid.UUID        `json:"id"`
	Description      string           `json:"description"`
	Month            int              `json:"month"`
	Year             int              `json:"year"`
	Amount           *decimal.Decimal `json:"amount"`
	User             uuid.UUID        `json:"user"`
	Type             string           `json:"type"`
	Status           string           `json:"status"`
	RegistrationDate string           `json:"registration_date"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func entryToResponse(e *domain.Entry) EntryResponse {
	resp := EntryResponse{
		ID:          e.ID,
		Description: e.Description,
		Month:       e.Month,
		Year:        e.Year,
		Amount:      e.Amount,
		User:        e.OwnerUserID,
		Type:        string(e.Type),
		Status:      string(e.Status),
	}
	if !e.RegistrationDate.IsZero() {
		resp.RegistrationDate = e.RegistrationDate.Format(time.DateOnly)
	}
	return resp
}

func entriesToResponse(entries []*domain.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToResponse(e))
	}
	return out
}
