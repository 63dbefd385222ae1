// Package users provides the repository for account records.
package users

import (
	"context"

	"github.com/easylend/userservice/internal/server/models"
)

// Repository is the credential-store contract for user accounts.
type Repository interface {
	// Create inserts a new account and returns the persisted form with its
	// generated identifier and creation timestamp filled in.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the account for the given email or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ExistsByEmail reports whether an account with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Activate flips the account's registration status to active.
	Activate(ctx context.Context, userID string) error
}
