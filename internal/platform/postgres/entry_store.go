package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/platform/logger"
	"github.com/phrazzld/finance-api/internal/store"
	"github.com/shopspring/decimal"
)

const entryColumns = "id, description, month, year, amount, user_id, type, status, registration_date"

// PostgresEntryStore implements the store.EntryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEntryStore creates a new PostgreSQL implementation of the EntryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresEntryStore(db store.DBTX, logger *slog.Logger) *PostgresEntryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEntryStore{
		db:     db,
		logger: logger.With(slog.String("component", "entry_store")),
	}
}

// Ensure PostgresEntryStore implements store.EntryStore interface
var _ store.EntryStore = (*PostgresEntryStore)(nil)

// Save implements store.EntryStore.Save
func (s *PostgresEntryStore) Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if entry.Amount == nil {
		return nil, store.NewStoreError("entry", "save", "amount is required", store.ErrInvalidEntity)
	}
	if entry.ID == uuid.Nil {
		return s.insert(ctx, entry)
	}
	return s.update(ctx, entry)
}

func (s *PostgresEntryStore) insert(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	saved := *entry
	saved.ID = uuid.New()
	if saved.RegistrationDate.IsZero() {
		saved.RegistrationDate = domain.Today()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		saved.ID,
		saved.Description,
		saved.Month,
		saved.Year,
		*saved.Amount,
		saved.OwnerUserID,
		string(saved.Type),
		string(saved.Status),
		saved.RegistrationDate,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during entry creation",
				slog.String("error", err.Error()),
				slog.String("user_id", saved.OwnerUserID.String()))
			return nil, fmt.Errorf("%w: user with ID %s not found",
				store.ErrOwnerNotFound, saved.OwnerUserID)
		}
		log.Error("failed to create entry",
			slog.String("error", err.Error()),
			slog.String("user_id", saved.OwnerUserID.String()))
		return nil, store.NewStoreError("entry", "insert", "failed to create entry", MapError(err))
	}

	log.Info("entry created",
		slog.String("entry_id", saved.ID.String()),
		slog.String("user_id", saved.OwnerUserID.String()))
	return &saved, nil
}

// update never writes registration_date; the stored value is returned instead.
func (s *PostgresEntryStore) update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	saved := *entry
	err := s.db.QueryRowContext(ctx, `
		UPDATE entries
		SET description = $1, month = $2, year = $3, amount = $4,
		    user_id = $5, type = $6, status = $7
		WHERE id = $8
		RETURNING registration_date
	`,
		saved.Description,
		saved.Month,
		saved.Year,
		*saved.Amount,
		saved.OwnerUserID,
		string(saved.Type),
		string(saved.Status),
		saved.ID,
	).Scan(&saved.RegistrationDate)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			log.Debug("entry not found for update", slog.String("entry_id", saved.ID.String()))
			return nil, store.ErrEntryNotFound
		case IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: user with ID %s not found",
				store.ErrOwnerNotFound, saved.OwnerUserID)
		}
		log.Error("failed to update entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", saved.ID.String()))
		return nil, store.NewStoreError("entry", "update", "failed to update entry", MapError(err))
	}

	log.Debug("entry updated",
		slog.String("entry_id", saved.ID.String()),
		slog.String("status", string(saved.Status)))
	return &saved, nil
}

// Delete implements store.EntryStore.Delete
func (s *PostgresEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return store.NewStoreError("entry", "delete", "failed to delete entry", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrEntryNotFound); err != nil {
		log.Debug("entry not found for delete", slog.String("entry_id", id.String()))
		return err
	}

	log.Info("entry deleted", slog.String("entry_id", id.String()))
	return nil
}

// GetByID implements store.EntryStore.GetByID
func (s *PostgresEntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = $1`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("entry not found", slog.String("entry_id", id.String()))
			return nil, store.ErrEntryNotFound
		}
		log.Error("failed to get entry by ID",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return nil, fmt.Errorf("failed to get entry: %w", MapError(err))
	}
	return entry, nil
}

// FindByExample implements store.EntryStore.FindByExample
func (s *PostgresEntryStore) FindByExample(ctx context.Context, filter store.EntryFilter) ([]*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildEntryWhere(filter)
	query := `SELECT ` + entryColumns + ` FROM entries` + where +
		` ORDER BY year, month, description, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query entries",
			slog.String("error", err.Error()),
			slog.Int("predicate_count", len(args)))
		return nil, fmt.Errorf("failed to query entries: %w", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Error("failed to scan entry row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating entry rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	log.Debug("entries found", slog.Int("count", len(entries)))
	return entries, nil
}

// buildEntryWhere compiles the filter into a parameterised WHERE clause.
// An empty filter yields an empty clause.
func buildEntryWhere(f store.EntryFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if f.ID != nil {
		add("id", *f.ID)
	}
	if f.Description != nil {
		add("description", *f.Description)
	}
	if f.Month != nil {
		add("month", *f.Month)
	}
	if f.Year != nil {
		add("year", *f.Year)
	}
	if f.Amount != nil {
		add("amount", *f.Amount)
	}
	if f.OwnerUserID != nil {
		add("user_id", *f.OwnerUserID)
	}
	if f.Type != nil {
		add("type", string(*f.Type))
	}
	if f.Status != nil {
		add("status", string(*f.Status))
	}
	if f.RegistrationDate != nil {
		add("registration_date", f.RegistrationDate.Format("2006-01-02"))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var (
		entry      domain.Entry
		amount     decimal.Decimal
		entryType  string
		entryState string
	)
	if err := row.Scan(
		&entry.ID,
		&entry.Description,
		&entry.Month,
		&entry.Year,
		&amount,
		&entry.OwnerUserID,
		&entryType,
		&entryState,
		&entry.RegistrationDate,
	); err != nil {
		return nil, err
	}
	entry.Amount = &amount
	entry.Type = domain.EntryType(entryType)
	entry.Status = domain.EntryStatus(entryState)
	return &entry, nil
}
