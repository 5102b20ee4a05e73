// Package repomanager vends repository implementations bound to a DBTX,
// so services can compose repositories over either the pool or a
// transaction, and exposes the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/chemhub/chemforum/internal/dbx"
	"github.com/chemhub/chemforum/internal/server/repositories/answers"
	"github.com/chemhub/chemforum/internal/server/repositories/categories"
	"github.com/chemhub/chemforum/internal/server/repositories/reports"
	"github.com/chemhub/chemforum/internal/server/repositories/threads"
	"github.com/chemhub/chemforum/internal/server/repositories/users"
	"github.com/chemhub/chemforum/internal/server/repositories/votes"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Categories(db dbx.DBTX) categories.Repository
	Threads(db dbx.DBTX) threads.Repository
	Answers(db dbx.DBTX) answers.Repository
	Votes(db dbx.DBTX) votes.Repository
	Reports(db dbx.DBTX) reports.Repository

	RunMigrations(ctx context.Context, db *sql.DB) error
}
