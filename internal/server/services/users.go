// Package services contains server-side business logic. This file implements
// UserService, which handles account registration, credential verification
// with session-token issuance, and account activation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/easylend/userservice/internal/common"
	"github.com/easylend/userservice/internal/dbx"
	"github.com/easylend/userservice/internal/server/auth"
	"github.com/easylend/userservice/internal/server/config"
	"github.com/easylend/userservice/internal/server/events"
	"github.com/easylend/userservice/internal/server/models"
	"github.com/easylend/userservice/internal/server/repositories/repomanager"
	"github.com/easylend/userservice/internal/server/security"
)

// RegisterInput carries a registration request into the service.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	UserType models.UserType
	// BaseURL is the caller-visible origin used to build the confirmation
	// link carried by the registration event.
	BaseURL string
}

// RegisterResult describes the created account. No tokens are issued at
// registration time; activation and login are separate steps.
type RegisterResult struct {
	UserID    string
	FullName  string
	Email     string
	UserType  models.UserType
	Activated bool
	CreatedAt time.Time
}

// LoginResult is the explicit value a successful login returns. It carries
// the authenticated principal for the caller to thread into downstream
// request-scoped checks; no ambient security context is mutated.
type LoginResult struct {
	UserID       string
	FullName     string
	Email        string
	Activated    bool
	AccessToken  string
	RefreshToken string
}

// UserService provides the account flows:
// - Register: uniqueness check, account creation, registration event
// - Login: credential verification and session-token issuance
// - Activate: confirmation-token validation and status transition
type UserService struct {
	db                                *sql.DB
	repomanager                       repomanager.RepositoryManager
	publisher                         events.Publisher
	jwtSecret                         []byte
	accessTokenValidityDuration       time.Duration
	refreshTokenValidityDuration      time.Duration
	sessionTokenValidityDuration      time.Duration
	confirmationTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories, the event
// publisher, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, p events.Publisher, cfg *config.Config) *UserService {
	return &UserService{
		db:                                db,
		repomanager:                       m,
		publisher:                         p,
		jwtSecret:                         []byte(cfg.SecretKey),
		accessTokenValidityDuration:       cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration:      cfg.RefreshTokenValidityDuration,
		sessionTokenValidityDuration:      cfg.SessionTokenValidityDuration,
		confirmationTokenValidityDuration: cfg.ConfirmationTokenValidityDuration,
	}
}

// Register creates a new pending account and publishes a registration event
// for the out-of-band confirmation mechanism. A duplicate email yields
// common.ErrUserAlreadyExists. An event-publish failure after the account
// row is written is surfaced but the row is not rolled back.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	repo := s.repomanager.Users(s.db)

	exists, err := repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, common.ErrUserAlreadyExists
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		UserType:     in.UserType,
		Activated:    false,
	})
	if err != nil {
		if errors.Is(err, common.ErrUserAlreadyExists) {
			return nil, common.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	confirmToken, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.confirmationTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	event := events.UserRegistered{
		User:            user,
		ConfirmationURL: in.BaseURL + "/api/v1/auth/confirm?token=" + confirmToken,
		OccurredAt:      time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		return nil, fmt.Errorf("error publishing registration event: %w", err)
	}

	return &RegisterResult{
		UserID:    user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		UserType:  user.UserType,
		Activated: user.Activated,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login verifies the password for the account identified by email and, on
// success, supersedes any stored session token with a fresh pair.
//
// A pending (not yet activated) account short-circuits to a nil result with
// a nil error: no credential check runs and no token row is touched. Callers
// must treat the nil result as "not activated", not as success.
//
// An unknown email yields common.ErrUserNotFound and a wrong password yields
// common.ErrInvalidCredentials; the two remain distinguishable to callers.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, common.ErrorInternal
	}

	if !user.Activated {
		return nil, nil
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	accessToken, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshToken, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	now := time.Now()
	token := &models.SessionToken{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		IssuedAt:     now,
		ExpiresAt:    now.Add(s.sessionTokenValidityDuration),
	}

	// The previous row is always removed before the insert so that at most
	// one stored token per user is ever observable; running both inside one
	// transaction over the UNIQUE (user_id) constraint closes the window
	// between concurrent logins.
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Tokens(tx)
		if _, err := repoTx.FindByUser(ctx, user.ID); err == nil {
			if err := repoTx.DeleteByUser(ctx, user.ID); err != nil {
				return fmt.Errorf("error deleting session token: %w", err)
			}
		} else if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching session token: %w", err)
		}
		if err := repoTx.Create(ctx, token); err != nil {
			return fmt.Errorf("error saving session token: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return &LoginResult{
		UserID:       user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		Activated:    user.Activated,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Activate validates a confirmation token and marks the bound account as
// active. Invalid or expired tokens yield common.ErrInvalidToken; a token
// for a vanished account yields common.ErrUserNotFound.
func (s *UserService) Activate(ctx context.Context, confirmationToken string) error {
	claims, err := auth.GetClaimsFromToken(confirmationToken, s.jwtSecret)
	if err != nil {
		return common.ErrInvalidToken
	}

	repo := s.repomanager.Users(s.db)
	if err := repo.Activate(ctx, claims.UserID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error activating user: %w", err)
	}
	return nil
}
