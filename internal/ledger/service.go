// Package ledger applies mutations to the entry collection. Every
// mutating call runs a full load→mutate→sort→save cycle against the
// store; a process-wide mutex keeps two such cycles from interleaving.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/coinop-logan/personal-finance-display/internal/core"
	"github.com/coinop-logan/personal-finance-display/internal/events"
	"github.com/coinop-logan/personal-finance-display/internal/store"
)

// ErrNotFound reports a delete for an id the collection does not hold.
var ErrNotFound = errors.New("entry not found")

// EventPublisher is satisfied by events.Client. A nil publisher disables
// eventing entirely.
type EventPublisher interface {
	PublishEntryEvent(ctx context.Context, id int, action, date string) error
}

type Service struct {
	mu     sync.Mutex
	store  store.Store
	events EventPublisher
}

func NewService(s store.Store, publisher EventPublisher) *Service {
	return &Service{store: s, events: publisher}
}

// List returns the current collection. Reads skip the mutation lock: the
// store always exposes a complete document.
func (s *Service) List(ctx context.Context) (core.Collection, error) {
	return s.store.Load(ctx)
}

// Append assigns the next id, inserts the entry, restores date order, and
// persists the whole collection. The returned entry carries its id.
func (s *Service) Append(ctx context.Context, e core.Entry) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return core.Entry{}, fmt.Errorf("load collection: %w", err)
	}

	e.ID = c.NextID()
	c = append(c, e)
	c.SortByDate()

	if err := s.store.Save(ctx, c); err != nil {
		return core.Entry{}, fmt.Errorf("save collection: %w", err)
	}

	s.publish(ctx, e.ID, events.ActionCreated, e.Date)
	return e, nil
}

// Delete removes the entry with the given id. ErrNotFound leaves the
// store untouched.
func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}

	c, removed := c.RemoveByID(id)
	if !removed {
		return ErrNotFound
	}

	if err := s.store.Save(ctx, c); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}

	s.publish(ctx, id, events.ActionDeleted, "")
	return nil
}

func (s *Service) publish(ctx context.Context, id int, action, date string) {
	if s.events == nil {
		return
	}
	// The mutation already persisted; eventing is best effort.
	if err := s.events.PublishEntryEvent(ctx, id, action, date); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entry event",
			"id", id, "action", action, "error", err)
	}
}
