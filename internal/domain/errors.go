// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEntryNotPersisted is returned when an entry without an ID is updated or
	// deleted. It signals a programming error in the caller and must not be turned
	// into a user-facing message.
	ErrEntryNotPersisted = errors.New("entry not yet persisted")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// Messages reported to end users for business-rule failures.
const (
	MsgUserNotFoundForEmail = "Usuário não encontrado para o e-mail informado."
	MsgInvalidPassword      = "Senha inválida."
	MsgEmailAlreadyExists   = "Já existe um usuário cadastrado com este e-mail."
)

// ValidationError reports a malformed or missing entry field.
// Error returns Message unchanged so callers can show it to the end user.
type ValidationError struct {
	Field   string // The field that failed (e.g., "description", "month")
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// BusinessRuleError reports a violation of a state-dependent rule,
// such as registering an e-mail that is already taken.
type BusinessRuleError struct {
	Message string
	Err     error // Optional underlying cause
}

// Error implements the error interface for BusinessRuleError.
func (e *BusinessRuleError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *BusinessRuleError) Unwrap() error {
	return e.Err
}

// NewBusinessRuleError creates a BusinessRuleError with the given message.
func NewBusinessRuleError(message string) *BusinessRuleError {
	return &BusinessRuleError{Message: message}
}

// AuthenticationError reports an unknown identity or a credential mismatch.
//
// The message distinguishes "unknown user" from "wrong password"; callers
// must not add anything beyond it.
type AuthenticationError struct {
	Message string
}

// Error implements the error interface for AuthenticationError.
func (e *AuthenticationError) Error() string {
	return e.Message
}

// NewAuthenticationError creates an AuthenticationError with the given message.
func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsBusinessRuleError reports whether err is or wraps a *BusinessRuleError.
func IsBusinessRuleError(err error) bool {
	var target *BusinessRuleError
	return errors.As(err, &target)
}

// IsAuthenticationError reports whether err is or wraps an *AuthenticationError.
func IsAuthenticationError(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}
