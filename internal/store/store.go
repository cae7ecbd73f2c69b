// Package store persists the entry collection as a single whole document.
//
// Every implementation reads and writes the complete collection; there is
// no incremental update path. Callers that mutate must serialize the
// load→mutate→save sequence themselves (see internal/ledger).
package store

import (
	"context"

	"github.com/coinop-logan/personal-finance-display/internal/core"
)

// Store is the whole-document persistence contract.
type Store interface {
	// Load returns the current collection. A missing or unreadable
	// document is an empty collection, never an error.
	Load(ctx context.Context) (core.Collection, error)

	// Save overwrites the document with the full collection.
	Save(ctx context.Context, c core.Collection) error
}
