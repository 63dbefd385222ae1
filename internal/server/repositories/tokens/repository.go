// Package tokens provides the repository for stored session-token rows.
package tokens

import (
	"context"

	"github.com/easylend/userservice/internal/server/models"
)

// Repository is the credential-store contract for session tokens. The login
// flow owns the full create/delete lifecycle of these rows.
type Repository interface {
	// FindByUser returns the user's live token row or common.ErrorNotFound.
	FindByUser(ctx context.Context, userID string) (*models.SessionToken, error)

	// DeleteByUser removes the user's token row if one exists.
	DeleteByUser(ctx context.Context, userID string) error

	// Create inserts a fresh token row for the owning user.
	Create(ctx context.Context, token *models.SessionToken) error
}
