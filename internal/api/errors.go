package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/finance-api/internal/api/shared"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/service/auth"
	"github.com/phrazzld/finance-api/internal/store"
)

// Messages returned by the API for errors that carry no user-facing text.
const (
	MsgEntryNotFound     = "Lançamento não encontrado na base de dados."
	MsgUserNotFound      = "Usuário não encontrado."
	MsgOwnerNotFound     = "Usuário não encontrado para o Id informado."
	MsgSearchOwnerAbsent = "Não foi possível realizar a consulta. Usuário não encontrado para o Id informado."
	MsgInvalidStatus     = domain.MsgInvalidStatus
	MsgInvalidEntry      = "Invalid entry data"
	MsgInvalidRequest    = "Invalid request format"
	MsgUnexpected        = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Business-rule layer errors all map to 400.
func MapErrorToStatusCode(err error) int {
	switch {
	case domain.IsValidationError(err),
		domain.IsBusinessRuleError(err),
		domain.IsAuthenticationError(err):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest

	default:
		// Includes domain.ErrEntryNotPersisted, which is a caller bug.
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message that may be shown to the client.
// Business-rule errors carry their own message; anything else gets a fixed
// text so internal details never leak.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var (
		vErr *domain.ValidationError
		bErr *domain.BusinessRuleError
		aErr *domain.AuthenticationError
	)
	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.As(err, &bErr):
		return bErr.Message
	case errors.As(err, &aErr):
		return aErr.Message
	case errors.Is(err, store.ErrEntryNotFound):
		return MsgEntryNotFound
	case errors.Is(err, store.ErrUserNotFound):
		return MsgUserNotFound
	case errors.Is(err, store.ErrOwnerNotFound):
		return MsgOwnerNotFound
	case errors.Is(err, store.ErrInvalidEntity):
		return MsgInvalidEntry
	case errors.Is(err, domain.ErrInvalidID), errors.Is(err, domain.ErrInvalidFormat):
		return MsgInvalidRequest
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"
	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted cause. A non-empty fallback replaces the generic 500 message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a short message that
// names the fields without echoing submitted values.
func SanitizeValidationError(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return "Validation error"
	}

	parts := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag())))
	}
	return "Validation error: " + strings.Join(parts, ", ")
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max", "maxbytes":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
