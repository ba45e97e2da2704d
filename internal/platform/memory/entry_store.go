package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/platform/logger"
	"github.com/phrazzld/finance-api/internal/store"
)

// EntryStore implements store.EntryStore in memory.
type EntryStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*domain.Entry
	users   store.UserStore // optional; when set, owners must exist
	logger  *slog.Logger
}

var _ store.EntryStore = (*EntryStore)(nil)

// NewEntryStore creates an empty EntryStore. When users is non-nil, Save
// rejects entries whose owner is unknown with store.ErrOwnerNotFound, like the
// foreign key of the SQL schema.
func NewEntryStore(users store.UserStore, logger *slog.Logger) *EntryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntryStore{
		entries: make(map[uuid.UUID]*domain.Entry),
		users:   users,
		logger:  logger.With("component", "memory_entry_store"),
	}
}

// Save implements store.EntryStore.Save
func (s *EntryStore) Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.users != nil {
		if _, err := s.users.GetByID(ctx, entry.OwnerUserID); err != nil {
			if store.IsNotFoundError(err) {
				return nil, store.NewStoreError("entry", "save", "owner does not exist", store.ErrOwnerNotFound)
			}
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := cloneEntry(entry)
	if saved.ID == uuid.Nil {
		saved.ID = uuid.New()
		if saved.RegistrationDate.IsZero() {
			saved.RegistrationDate = domain.Today()
		}
	} else {
		existing, ok := s.entries[saved.ID]
		if !ok {
			return nil, store.ErrEntryNotFound
		}
		saved.RegistrationDate = existing.RegistrationDate
	}

	s.entries[saved.ID] = saved
	log.Debug("entry saved", slog.String("entry_id", saved.ID.String()))
	return cloneEntry(saved), nil
}

// Delete implements store.EntryStore.Delete
func (s *EntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return store.ErrEntryNotFound
	}
	delete(s.entries, id)
	return nil
}

// GetByID implements store.EntryStore.GetByID
func (s *EntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, store.ErrEntryNotFound
	}
	return cloneEntry(entry), nil
}

// FindByExample implements store.EntryStore.FindByExample.
// Results are ordered by year, month and description.
func (s *EntryStore) FindByExample(ctx context.Context, filter store.EntryFilter) ([]*domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Entry, 0)
	for _, entry := range s.entries {
		if filter.Matches(entry) {
			result = append(result, cloneEntry(entry))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Description != b.Description {
			return a.Description < b.Description
		}
		return a.ID.String() < b.ID.String()
	})
	return result, nil
}

// cloneEntry copies an entry so callers never share the stored Amount.
func cloneEntry(e *domain.Entry) *domain.Entry {
	c := *e
	if e.Amount != nil {
		amount := *e.Amount
		c.Amount = &amount
	}
	return &c
}
