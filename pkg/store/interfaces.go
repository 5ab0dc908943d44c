package store

import (
	"context"
	"time"

	"github.com/mkhera/voluntree-cli/pkg/core/model"
)

// Lister fetches the authenticated host's own listings from the API.
type Lister interface {
	ListMine(ctx context.Context) ([]model.Opportunity, error)
}

// CachedState is the persistence whitelist: only the listings, the fetch
// timestamp, and the owning host survive between runs. Busy flags never do,
// so a restart always starts non-busy no matter what was in flight.
type CachedState struct {
	OwnerID       string              `json:"ownerId"`
	LastFetched   time.Time           `json:"lastFetched"`
	Opportunities []model.Opportunity `json:"opportunities"`
}

// CacheBackend persists CachedState between runs. The file and postgres
// implementations both satisfy it; the store doesn't care which is wired in.
type CacheBackend interface {
	Load(ctx context.Context) (*CachedState, error)
	Save(ctx context.Context, state *CachedState) error
	Clear(ctx context.Context) error
}
