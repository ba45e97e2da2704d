package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_SaveAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewUserStore(nil)

	input := domain.NewUser("usuario", "usuario@email.com", "senha")
	saved, err := s.Save(ctx, input)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, uuid.Nil, input.ID, "input must not be modified")

	byID, err := s.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, byID)

	byEmail, err := s.GetByEmail(ctx, "usuario@email.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byEmail.ID)

	exists, err := s.ExistsByEmail(ctx, "usuario@email.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ExistsByEmail(ctx, "outro@email.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewUserStore(nil)

	_, err := s.Save(ctx, domain.NewUser("a", "same@email.com", "x"))
	require.NoError(t, err)

	_, err = s.Save(ctx, domain.NewUser("b", "same@email.com", "y"))
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestUserStore_UpdateEmailReleasesOldOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewUserStore(nil)

	saved, err := s.Save(ctx, domain.NewUser("a", "old@email.com", "x"))
	require.NoError(t, err)

	saved.Email = "new@email.com"
	_, err = s.Save(ctx, saved)
	require.NoError(t, err)

	exists, err := s.ExistsByEmail(ctx, "old@email.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserStore_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewUserStore(nil)

	_, err := s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = s.GetByEmail(ctx, "missing@email.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestUserStore_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewUserStore(nil).Save(ctx, domain.NewUser("a", "a@email.com", "x"))
	assert.ErrorIs(t, err, context.Canceled)
}
