package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user := NewUser("usuario", "usuario@email.com", "senha")

	assert.Equal(t, uuid.Nil, user.ID)
	assert.False(t, user.IsPersisted())
	assert.Equal(t, "usuario", user.Name)
	assert.Equal(t, "usuario@email.com", user.Email)
	assert.Equal(t, "senha", user.Password)
}

func TestUserJSONOmitsPassword(t *testing.T) {
	t.Parallel()

	user := NewUser("usuario", "usuario@email.com", "senha")
	user.ID = uuid.New()

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "senha")
	assert.Contains(t, string(data), "usuario@email.com")
}

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("register: %w", NewBusinessRuleError(MsgEmailAlreadyExists))
	assert.True(t, IsBusinessRuleError(wrapped))
	assert.False(t, IsAuthenticationError(wrapped))
	assert.False(t, IsValidationError(wrapped))

	authErr := NewAuthenticationError(MsgInvalidPassword)
	assert.Equal(t, MsgInvalidPassword, authErr.Error())
	assert.True(t, IsAuthenticationError(authErr))

	vErr := NewValidationError("month", MsgInvalidMonth)
	assert.True(t, IsValidationError(vErr))
	assert.Equal(t, MsgInvalidMonth, vErr.Error())

	cause := errors.New("unique violation")
	bErr := &BusinessRuleError{Message: MsgEmailAlreadyExists, Err: cause}
	assert.True(t, errors.Is(bErr, cause))
}
