package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/domain"
)

// EntryStore defines the interface for entry data persistence.
// Every method is a single atomic unit at the storage boundary.
type EntryStore interface {
	// Save inserts the entry when its ID is uuid.Nil, assigning a new ID,
	// and updates the existing record otherwise. The registration date of an
	// existing record is never changed.
	// Returns ErrEntryNotFound when updating an ID that does not exist.
	// Returns ErrOwnerNotFound (an ErrInvalidEntity) if the owner does not exist.
	Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)

	// Delete removes an entry by its ID.
	// Returns ErrEntryNotFound if the entry does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByID retrieves an entry by its unique ID.
	// Returns ErrEntryNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)

	// FindByExample returns every entry matching all predicates of the filter.
	// An empty filter matches every entry. Returns an empty slice, never
	// ErrNotFound, when nothing matches.
	FindByExample(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error)
}
