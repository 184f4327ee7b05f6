// Package store persists captured leads. Two backends exist: SQLite for
// single-binary deployments and Postgres for shared ones; both upsert on
// the (email, query) pair so re-subscribing refreshes activity instead
// of duplicating.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// ErrNotFound is returned when a lead does not exist.
var ErrNotFound = eris.New("store: lead not found")

// Store is the lead persistence interface.
type Store interface {
	// Migrate creates or updates the schema.
	Migrate(ctx context.Context) error
	// UpsertLead records a subscription. An existing (email, query) pair
	// has its request count bumped and last-active refreshed; created
	// reports whether a new row was inserted.
	UpsertLead(ctx context.Context, email, query, source string) (lead *model.Lead, created bool, err error)
	// ListLeads returns the most recently active leads, newest first.
	ListLeads(ctx context.Context, limit int) ([]model.Lead, error)
	// Stats aggregates lead counts for the admin view.
	Stats(ctx context.Context) (*model.LeadStats, error)
	// Unsubscribe marks every lead for an email as unsubscribed.
	Unsubscribe(ctx context.Context, email string) error
	Close() error
}

const topQueriesLimit = 10
