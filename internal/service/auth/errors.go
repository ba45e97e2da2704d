package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrPasswordMismatch indicates a supplied password does not match the stored credential
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrUnknownPasswordScheme indicates an unsupported password scheme was configured
	ErrUnknownPasswordScheme = errors.New("unknown password scheme")
)
