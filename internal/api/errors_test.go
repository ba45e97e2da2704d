package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/finance-api/internal/api/shared"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/platform/logger"
	"github.com/phrazzld/finance-api/internal/platform/postgres"
	"github.com/phrazzld/finance-api/internal/service"
	"github.com/phrazzld/finance-api/internal/service/auth"
	"github.com/phrazzld/finance-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("month", domain.MsgInvalidMonth), http.StatusBadRequest},
		{"business rule", domain.NewBusinessRuleError(domain.MsgEmailAlreadyExists), http.StatusBadRequest},
		{"authentication", domain.NewAuthenticationError(domain.MsgInvalidPassword), http.StatusBadRequest},
		{"invalid id", fmt.Errorf("%w: id", domain.ErrInvalidID), http.StatusBadRequest},
		{"invalid format", domain.ErrInvalidFormat, http.StatusBadRequest},
		{"invalid entity", service.NewServiceError("entry", "create", store.ErrInvalidEntity), http.StatusBadRequest},
		{"entry not found", service.NewServiceError("entry", "update", store.ErrEntryNotFound), http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"not persisted", domain.ErrEntryNotPersisted, http.StatusInternalServerError},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	wrapped := service.NewServiceError("user", "register",
		&domain.BusinessRuleError{Message: domain.MsgEmailAlreadyExists, Err: store.ErrEmailExists})
	assert.Equal(t, domain.MsgEmailAlreadyExists, GetSafeErrorMessage(wrapped))

	assert.Equal(t, domain.MsgInvalidYear,
		GetSafeErrorMessage(domain.NewValidationError("year", domain.MsgInvalidYear)))
	assert.Equal(t, MsgEntryNotFound, GetSafeErrorMessage(store.ErrEntryNotFound))
	assert.Equal(t, MsgUnexpected, GetSafeErrorMessage(nil))

	leaky := fmt.Errorf("query failed: password=hunter2 host=db.internal: %w", errors.New("boom"))
	msg := GetSafeErrorMessage(leaky)
	assert.Equal(t, MsgUnexpected, msg)
	assert.NotContains(t, msg, "hunter2")
}

func TestGetSafeErrorMessage_InvalidEntity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"unknown owner",
			service.NewServiceError("entry", "create", fmt.Errorf("%w: user with ID x not found", store.ErrOwnerNotFound)),
			MsgOwnerNotFound,
		},
		{
			"check constraint",
			service.NewServiceError("entry", "update", postgres.MapError(&pgconn.PgError{Code: "23514", ConstraintName: "entries_status_check"})),
			MsgInvalidEntry,
		},
		{
			"not null",
			service.NewServiceError("entry", "create", postgres.MapError(&pgconn.PgError{Code: "23502", ColumnName: "amount"})),
			MsgInvalidEntry,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestHandleAPIError_LogsRedactedCause(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger(t)
	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	rr := httptest.NewRecorder()

	err := service.NewServiceError("entry", "search",
		errors.New("dial postgres://app:s3cret@db:5432/finance failed"))
	HandleAPIError(rr, req, err, "Failed to search entries")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to search entries", errorMessage(t, rr))
	assert.NotContains(t, buf.String(), "s3cret")
	logger.AssertLogContains(t, buf, "Failed to search entries")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := shared.ValidateRequest(&UserRequest{Email: "secret-value", Password: ""})
	require.Error(t, err)

	msg := SanitizeValidationError(err)
	assert.Contains(t, msg, "email: invalid email format")
	assert.Contains(t, msg, "password: required field")
	assert.NotContains(t, msg, "secret-value")

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
