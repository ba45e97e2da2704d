package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockEntryStore is a mock of store.EntryStore for use with testify/mock.
type MockEntryStore struct {
	mock.Mock
}

var _ store.EntryStore = (*MockEntryStore)(nil)

// Save is a mock implementation of store.EntryStore.Save
func (m *MockEntryStore) Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	args := m.Called(ctx, entry)
	if saved, ok := args.Get(0).(*domain.Entry); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.EntryStore.Delete
func (m *MockEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GetByID is a mock implementation of store.EntryStore.GetByID
func (m *MockEntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	args := m.Called(ctx, id)
	if entry, ok := args.Get(0).(*domain.Entry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByExample is a mock implementation of store.EntryStore.FindByExample
func (m *MockEntryStore) FindByExample(ctx context.Context, filter store.EntryFilter) ([]*domain.Entry, error) {
	args := m.Called(ctx, filter)
	if entries, ok := args.Get(0).([]*domain.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}
