// Package store owns the in-memory list of the current host's opportunities
// and coordinates the two asynchronous operations against it: full refresh
// and single-item update. It is the client's authoritative cache; views read
// snapshots, never the live state.
package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mkhera/voluntree-cli/pkg/core/model"
)

// State is a point-in-time snapshot of the store.
type State struct {
	Opportunities []model.Opportunity
	Loading       bool
	Updating      bool
	LastFetched   time.Time
	LastError     string
	OwnerID       string
}

// Store holds the host's opportunity list. Mutations go through FetchAll,
// UpdateOne, Replace and Clear; reads go through Snapshot. State changes are
// serialized by a mutex but overlapping fetches are not prevented —
// last-resolved-wins, matching the refresh semantics the views rely on.
type Store struct {
	lister Lister
	cache  CacheBackend
	logger *zap.Logger

	mu    sync.Mutex
	state State
}

// New creates a store. cache may be nil for a purely in-memory store (tests).
func New(lister Lister, cache CacheBackend, logger *zap.Logger) *Store {
	return &Store{
		lister: lister,
		cache:  cache,
		logger: logger,
	}
}

// Hydrate loads the persisted cache into memory. Busy flags always start
// false. A missing or unreadable cache is logged and treated as empty rather
// than failing startup.
func (s *Store) Hydrate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	cached, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to load opportunity cache, starting empty", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.state.Opportunities = cached.Opportunities
	s.state.LastFetched = cached.LastFetched
	s.state.OwnerID = cached.OwnerID
	s.mu.Unlock()

	s.logger.Debug("Opportunity cache hydrated",
		zap.Int("count", len(cached.Opportunities)),
		zap.String("owner_id", cached.OwnerID),
		zap.Time("last_fetched", cached.LastFetched))
}

// Snapshot returns a copy of the current state. The opportunities slice is
// copied so callers can't mutate the store through it.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Opportunities = make([]model.Opportunity, len(s.state.Opportunities))
	copy(snap.Opportunities, s.state.Opportunities)
	return snap
}

// FetchAll refreshes the full list for the given owner. The visible list is
// cleared before the call goes out (no stale-while-revalidate); on success it
// is replaced wholesale with the server's result and the fetch timestamp is
// stamped; on failure the error is recorded and the list stays empty.
func (s *Store) FetchAll(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	s.state.Opportunities = nil
	s.state.Loading = true
	s.state.LastError = ""
	s.state.OwnerID = ownerID
	s.mu.Unlock()

	opportunities, err := s.lister.ListMine(ctx)

	s.mu.Lock()
	s.state.Loading = false
	if err != nil {
		s.state.LastError = err.Error()
		s.mu.Unlock()
		s.logger.Warn("Opportunity fetch failed", zap.Error(err))
		return err
	}
	s.state.Opportunities = opportunities
	s.state.LastFetched = time.Now().UTC()
	s.mu.Unlock()

	s.logger.Info("Opportunities fetched", zap.Int("count", len(opportunities)))
	s.persist(ctx)
	return nil
}

// UpdateOne runs a single-item mutation and reconciles the result into the
// list. While the mutation is in flight the updating flag is set. A response
// without an identifier is dropped with a diagnostic log rather than
// corrupting the list; the next full refresh picks the change up.
func (s *Store) UpdateOne(ctx context.Context, mutate func(ctx context.Context) (*model.Opportunity, error)) (*model.Opportunity, error) {
	s.mu.Lock()
	s.state.Updating = true
	s.state.LastError = ""
	s.mu.Unlock()

	updated, err := mutate(ctx)

	s.mu.Lock()
	s.state.Updating = false
	if err != nil {
		s.state.LastError = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	if updated == nil || updated.ID == "" {
		s.mu.Unlock()
		s.logger.Warn("Update response has no identifier, leaving list untouched")
		return updated, nil
	}

	replaced := false
	for i := range s.state.Opportunities {
		if s.state.Opportunities[i].ID == updated.ID {
			s.state.Opportunities[i] = *updated
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if !replaced {
		s.logger.Debug("Updated opportunity not in cached list", zap.String("id", updated.ID))
	}
	s.persist(ctx)
	return updated, nil
}

// Replace swaps a single cached entry by identifier without touching the busy
// flags. Used for optimistic updates and their rollbacks; unknown identifiers
// are ignored.
func (s *Store) Replace(ctx context.Context, opportunity model.Opportunity) {
	if opportunity.ID == "" {
		return
	}

	s.mu.Lock()
	for i := range s.state.Opportunities {
		if s.state.Opportunities[i].ID == opportunity.ID {
			s.state.Opportunities[i] = opportunity
			break
		}
	}
	s.mu.Unlock()
	s.persist(ctx)
}

// Find returns the cached entry with the given identifier.
func (s *Store) Find(id string) (model.Opportunity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, opp := range s.state.Opportunities {
		if opp.ID == id {
			return opp, true
		}
	}
	return model.Opportunity{}, false
}

// Clear empties the store and its persisted cache. Callers must invoke it
// when the authenticated identity changes, before any new fetch, so one
// account's listings can never leak into another's session.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			s.logger.Warn("Failed to clear persisted opportunity cache", zap.Error(err))
		}
	}
	s.logger.Info("Opportunity cache cleared")
}

// persist writes the whitelisted state to the cache backend.
func (s *Store) persist(ctx context.Context) {
	if s.cache == nil {
		return
	}

	s.mu.Lock()
	cached := &CachedState{
		OwnerID:       s.state.OwnerID,
		LastFetched:   s.state.LastFetched,
		Opportunities: make([]model.Opportunity, len(s.state.Opportunities)),
	}
	copy(cached.Opportunities, s.state.Opportunities)
	s.mu.Unlock()

	if err := s.cache.Save(ctx, cached); err != nil {
		s.logger.Warn("Failed to persist opportunity cache", zap.Error(err))
	}
}
