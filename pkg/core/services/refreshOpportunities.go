package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mkhera/voluntree-cli/pkg/session"
	"github.com/mkhera/voluntree-cli/pkg/store"
)

// TokenSource exposes the stored bearer token for identity checks.
type TokenSource interface {
	BearerToken() (string, bool)
}

// RefreshResult represents the result of refreshing the opportunity list
type RefreshResult struct {
	Count           int
	LastFetched     time.Time
	IdentityChanged bool
}

// RefreshOpportunities replaces the cached list with the server's current one.
// It first compares the token's subject against the cache owner: a cache left
// behind by a different account is cleared before the fetch, so one host's
// listings never show under another's login.
func RefreshOpportunities(ctx context.Context, opportunities *store.Store, tokens TokenSource, logger *zap.Logger) (*RefreshResult, error) {
	accessToken, ok := tokens.BearerToken()
	if !ok {
		return nil, fmt.Errorf("not logged in")
	}

	ownerID, err := session.SubjectFromToken(accessToken)
	if err != nil {
		return nil, err
	}

	identityChanged := false
	snapshot := opportunities.Snapshot()
	if snapshot.OwnerID != "" && snapshot.OwnerID != ownerID {
		logger.Info("Cache belongs to a different account, clearing",
			zap.String("cached_owner", snapshot.OwnerID),
			zap.String("current_owner", ownerID))
		opportunities.Clear(ctx)
		identityChanged = true
	}

	logger.Debug("Fetching opportunity list", zap.String("owner_id", ownerID))
	if err := opportunities.FetchAll(ctx, ownerID); err != nil {
		return nil, err
	}

	refreshed := opportunities.Snapshot()
	logger.Debug("Opportunity list refreshed",
		zap.Int("count", len(refreshed.Opportunities)),
		zap.Time("last_fetched", refreshed.LastFetched))

	return &RefreshResult{
		Count:           len(refreshed.Opportunities),
		LastFetched:     refreshed.LastFetched,
		IdentityChanged: identityChanged,
	}, nil
}
