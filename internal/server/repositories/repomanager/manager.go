// Package repomanager vends repository implementations bound to a database
// handle, plus schema migrations and transaction scoping for the backend
// in use (PostgreSQL or in-memory).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/files"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Contacts(db dbx.DBTX) contacts.Repository
	Files(db dbx.DBTX) files.Repository

	// WithTx runs fn inside a transaction on db. Repositories obtained from
	// the manager with the tx handle take part in it.
	WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error
}
