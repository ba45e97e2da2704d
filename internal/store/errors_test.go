package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: true},
		{name: "ErrEntryNotFound", err: ErrEntryNotFound, expected: true},
		{
			name:     "wrapped ErrEntryNotFound",
			err:      fmt.Errorf("failed to find entry: %w", ErrEntryNotFound),
			expected: true,
		},
		{name: "ErrEmailExists", err: ErrEmailExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: true},
		{name: "ErrEmailExists", err: ErrEmailExists, expected: true},
		{
			name:     "wrapped ErrEmailExists",
			err:      fmt.Errorf("save user: %w", ErrEmailExists),
			expected: true,
		},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")

	withCause := NewStoreError("entry", "save", "insert failed", cause)
	assert.Equal(t, "save operation on entry failed: insert failed: connection reset", withCause.Error())
	assert.True(t, errors.Is(withCause, cause))

	withoutCause := NewStoreError("user", "get", "scan failed", nil)
	assert.Equal(t, "get operation on user failed: scan failed", withoutCause.Error())
	assert.Nil(t, withoutCause.Unwrap())

	var target *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", withCause), &target))
	assert.Equal(t, "entry", target.Entity)
}
