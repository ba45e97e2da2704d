package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/platform/logger"
	"github.com/phrazzld/finance-api/internal/store"
)

// EntryService provides entry validation and lifecycle operations.
type EntryService interface {
	// Validate checks entry fields in a fixed order and returns the first
	// failure as a *domain.ValidationError.
	Validate(entry *domain.Entry) error

	// Create validates and stores a new entry. Status is forced to PENDING and
	// the registration date defaults to today. Storage is not touched when
	// validation fails.
	Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)

	// Update validates and stores an existing entry. The status must be one of
	// the known values.
	// Returns domain.ErrEntryNotPersisted if the entry has no ID.
	Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)

	// Delete removes an existing entry.
	// Returns domain.ErrEntryNotPersisted if the entry has no ID.
	Delete(ctx context.Context, entry *domain.Entry) error

	// ChangeStatus sets the entry status and persists it through Update.
	// An unknown status is rejected before the entry is modified.
	ChangeStatus(ctx context.Context, entry *domain.Entry, status domain.EntryStatus) (*domain.Entry, error)

	// FindByID looks up an entry. The boolean is false, with a nil error,
	// when no entry has the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Entry, bool, error)

	// Search returns every entry matching all non-zero fields of the template.
	// A zero template matches every entry.
	Search(ctx context.Context, template *domain.Entry) ([]*domain.Entry, error)
}

// entryServiceImpl implements the EntryService interface
type entryServiceImpl struct {
	entryStore store.EntryStore
	logger     *slog.Logger
}

var _ EntryService = (*entryServiceImpl)(nil)

// NewEntryService creates a new EntryService.
// It returns an error if the entry store is nil.
func NewEntryService(entryStore store.EntryStore, logger *slog.Logger) (EntryService, error) {
	if entryStore == nil {
		return nil, fmt.Errorf("entry store: %w", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &entryServiceImpl{
		entryStore: entryStore,
		logger:     logger.With(slog.String("component", "entry_service")),
	}, nil
}

// Validate implements EntryService.Validate
func (s *entryServiceImpl) Validate(entry *domain.Entry) error {
	return entry.Validate()
}

// Create implements EntryService.Create
func (s *entryServiceImpl) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Debug("entry rejected by validation", slog.String("reason", err.Error()))
		return nil, err
	}

	entry.Status = domain.EntryStatusPending
	if entry.RegistrationDate.IsZero() {
		entry.RegistrationDate = domain.Today()
	}

	saved, err := s.entryStore.Save(ctx, entry)
	if err != nil {
		log.Error("failed to save new entry",
			slog.String("error", err.Error()),
			slog.String("owner_id", entry.OwnerUserID.String()))
		return nil, NewServiceError("entry", "create", err)
	}

	log.Info("entry created",
		slog.String("entry_id", saved.ID.String()),
		slog.String("owner_id", saved.OwnerUserID.String()))
	return saved, nil
}

// Update implements EntryService.Update
func (s *entryServiceImpl) Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !entry.IsPersisted() {
		return nil, domain.ErrEntryNotPersisted
	}
	if err := entry.Validate(); err != nil {
		log.Debug("entry update rejected by validation",
			slog.String("entry_id", entry.ID.String()),
			slog.String("reason", err.Error()))
		return nil, err
	}
	if err := entry.ValidateStatus(); err != nil {
		log.Debug("entry update rejected by status",
			slog.String("entry_id", entry.ID.String()),
			slog.String("status", string(entry.Status)))
		return nil, err
	}

	saved, err := s.entryStore.Save(ctx, entry)
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			log.Debug("entry to update not found", slog.String("entry_id", entry.ID.String()))
		} else {
			log.Error("failed to update entry",
				slog.String("error", err.Error()),
				slog.String("entry_id", entry.ID.String()))
		}
		return nil, NewServiceError("entry", "update", err)
	}

	log.Debug("entry updated", slog.String("entry_id", saved.ID.String()))
	return saved, nil
}

// Delete implements EntryService.Delete
func (s *entryServiceImpl) Delete(ctx context.Context, entry *domain.Entry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !entry.IsPersisted() {
		return domain.ErrEntryNotPersisted
	}

	if err := s.entryStore.Delete(ctx, entry.ID); err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			log.Debug("entry to delete not found", slog.String("entry_id", entry.ID.String()))
		} else {
			log.Error("failed to delete entry",
				slog.String("error", err.Error()),
				slog.String("entry_id", entry.ID.String()))
		}
		return NewServiceError("entry", "delete", err)
	}

	log.Info("entry deleted", slog.String("entry_id", entry.ID.String()))
	return nil
}

// ChangeStatus implements EntryService.ChangeStatus
func (s *entryServiceImpl) ChangeStatus(
	ctx context.Context,
	entry *domain.Entry,
	status domain.EntryStatus,
) (*domain.Entry, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", domain.MsgInvalidStatus)
	}
	entry.Status = status
	return s.Update(ctx, entry)
}

// FindByID implements EntryService.FindByID
func (s *entryServiceImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Entry, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := s.entryStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			return nil, false, nil
		}
		log.Error("failed to retrieve entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return nil, false, NewServiceError("entry", "find_by_id", err)
	}
	return entry, true, nil
}

// Search implements EntryService.Search
func (s *entryServiceImpl) Search(ctx context.Context, template *domain.Entry) ([]*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entries, err := s.entryStore.FindByExample(ctx, store.EntryFilterFromTemplate(template))
	if err != nil {
		log.Error("failed to search entries", slog.String("error", err.Error()))
		return nil, NewServiceError("entry", "search", err)
	}
	if entries == nil {
		entries = []*domain.Entry{}
	}

	log.Debug("entries searched", slog.Int("result_count", len(entries)))
	return entries, nil
}
