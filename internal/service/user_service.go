package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/platform/logger"
	"github.com/phrazzld/finance-api/internal/service/auth"
	"github.com/phrazzld/finance-api/internal/store"
)

// UserService provides authentication and registration of users.
type UserService interface {
	// Authenticate returns the user owning the e-mail when the password matches
	// the stored credential. Failures are reported as *domain.AuthenticationError.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// Register stores a new user after checking that the e-mail is free.
	// A taken e-mail is reported as *domain.BusinessRuleError.
	Register(ctx context.Context, user *domain.User) (*domain.User, error)

	// ValidateEmailUniqueness fails with *domain.BusinessRuleError when a user
	// with the e-mail already exists.
	ValidateEmailUniqueness(ctx context.Context, email string) error

	// FindByID looks up a user. The boolean is false, with a nil error, when
	// no user has the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, bool, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	hasher    auth.PasswordHasher
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService. The hasher may be nil, in which
// case passwords are stored as given.
func NewUserService(
	userStore store.UserStore,
	verifier auth.PasswordVerifier,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if userStore == nil {
		return nil, fmt.Errorf("user store: %w", ErrNilDependency)
	}
	if verifier == nil {
		return nil, fmt.Errorf("password verifier: %w", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore: userStore,
		verifier:  verifier,
		hasher:    hasher,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// Authenticate implements UserService.Authenticate
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("authentication failed: unknown email", "email", email)
			return nil, domain.NewAuthenticationError(domain.MsgUserNotFoundForEmail)
		}
		log.Error("failed to retrieve user by email",
			"error", err,
			"email", email)
		return nil, NewServiceError("user", "authenticate", err)
	}

	if err := s.verifier.Compare(user.Password, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			log.Warn("password comparison failed unexpectedly",
				"error", err,
				"user_id", user.ID)
		}
		log.Debug("authentication failed: password mismatch", "user_id", user.ID)
		return nil, domain.NewAuthenticationError(domain.MsgInvalidPassword)
	}

	log.Info("user authenticated", "user_id", user.ID)
	return user, nil
}

// Register implements UserService.Register
func (s *UserServiceImpl) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.ValidateEmailUniqueness(ctx, user.Email); err != nil {
		return nil, err
	}

	toSave := *user
	if s.hasher != nil {
		stored, err := s.hasher.Hash(user.Password)
		if err != nil {
			log.Error("failed to prepare credential", "error", err)
			return nil, NewServiceError("user", "register", err)
		}
		toSave.Password = stored
	}

	saved, err := s.userStore.Save(ctx, &toSave)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("email taken between check and save", "email", user.Email)
			return nil, &domain.BusinessRuleError{Message: domain.MsgEmailAlreadyExists, Err: err}
		}
		log.Error("failed to save user",
			"error", err,
			"email", user.Email)
		return nil, NewServiceError("user", "register", err)
	}

	log.Info("user registered",
		"user_id", saved.ID,
		"email", saved.Email)
	return saved, nil
}

// ValidateEmailUniqueness implements UserService.ValidateEmailUniqueness
func (s *UserServiceImpl) ValidateEmailUniqueness(ctx context.Context, email string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	exists, err := s.userStore.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error("failed to check email existence",
			"error", err,
			"email", email)
		return NewServiceError("user", "validate_email", err)
	}
	if exists {
		log.Debug("email already registered", "email", email)
		return domain.NewBusinessRuleError(domain.MsgEmailAlreadyExists)
	}
	return nil
}

// FindByID implements UserService.FindByID
func (s *UserServiceImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, false, nil
		}
		log.Error("failed to retrieve user",
			"error", err,
			"user_id", id)
		return nil, false, NewServiceError("user", "find_by_id", err)
	}
	return user, true, nil
}
