package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/platform/logger"
	"github.com/phrazzld/finance-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Save implements store.UserStore.Save.
// A user without ID is inserted with a fresh one; otherwise the row is updated.
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	saved := *user
	var (
		result sql.Result
		err    error
	)
	if saved.ID == uuid.Nil {
		saved.ID = uuid.New()
		result, err = s.db.ExecContext(ctx, `
			INSERT INTO users (id, name, email, password)
			VALUES ($1, $2, $3, $4)
		`, saved.ID, saved.Name, saved.Email, saved.Password)
	} else {
		result, err = s.db.ExecContext(ctx, `
			UPDATE users
			SET name = $1, email = $2, password = $3
			WHERE id = $4
		`, saved.Name, saved.Email, saved.Password, saved.ID)
	}

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already exists", slog.String("email", saved.Email))
			return nil, store.ErrEmailExists
		}
		log.Error("failed to save user",
			slog.String("error", err.Error()),
			slog.String("user_id", saved.ID.String()))
		return nil, store.NewStoreError("user", "save", "failed to save user", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return nil, err
	}

	log.Debug("user saved", slog.String("user_id", saved.ID.String()))
	return &saved, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, "id", `
		SELECT id, name, email, password
		FROM users
		WHERE id = $1
	`, id)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "email", `
		SELECT id, name, email, password
		FROM users
		WHERE email = $1
	`, email)
}

func (s *PostgresUserStore) getOne(ctx context.Context, key, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("by", key))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("error", err.Error()),
			slog.String("by", key))
		return nil, fmt.Errorf("failed to get user by %s: %w", key, MapError(err))
	}
	return &user, nil
}

// ExistsByEmail implements store.UserStore.ExistsByEmail
func (s *PostgresUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check email existence",
			slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to check email existence: %w", MapError(err))
	}
	return exists, nil
}
