package repomanager

import (
	"context"
	"database/sql"

	"github.com/easylend/userservice/internal/dbx"
	"github.com/easylend/userservice/internal/server/repositories/tokens"
	"github.com/easylend/userservice/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook. Passing a *sql.Tx yields transactional
// repositories.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
}
