package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/easylend/userservice/internal/common"
	"github.com/easylend/userservice/internal/dbx"
	"github.com/easylend/userservice/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByUser returns the token row owned by userID.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) FindByUser(ctx context.Context, userID string) (*models.SessionToken, error) {
	query := `
		SELECT id, user_id, access_token, refresh_token, issued_at, expires_at
		FROM session_tokens
		WHERE user_id = $1
	`

	token := &models.SessionToken{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&token.ID, &token.UserID, &token.AccessToken, &token.RefreshToken,
		&token.IssuedAt, &token.ExpiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

// DeleteByUser removes the token row owned by userID. Deleting an absent row
// is not an error.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `
		DELETE FROM session_tokens
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Create inserts a new token row for token.UserID. The UNIQUE (user_id)
// constraint rejects a second live row for the same user.
func (r *PostgresRepository) Create(ctx context.Context, token *models.SessionToken) error {
	query := `
		INSERT INTO session_tokens (user_id, access_token, refresh_token, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		token.UserID, token.AccessToken, token.RefreshToken,
		token.IssuedAt, token.ExpiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
