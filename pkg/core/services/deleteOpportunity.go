package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mkhera/voluntree-cli/pkg/store"
)

// OpportunityDeleter removes a listing from the server.
type OpportunityDeleter interface {
	Delete(ctx context.Context, id string) error
}

// DeleteOpportunity removes a listing server-side and refreshes the cached
// list so it reflects the deletion. The cache is never mutated before the
// server confirms.
func DeleteOpportunity(ctx context.Context, opportunities *store.Store, deleter OpportunityDeleter, logger *zap.Logger, id string) error {
	if _, ok := opportunities.Find(id); !ok {
		return fmt.Errorf("no cached opportunity with id %s, refresh the list first", id)
	}

	logger.Debug("Deleting opportunity", zap.String("id", id))
	if err := deleter.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Opportunity deleted", zap.String("id", id))

	ownerID := opportunities.Snapshot().OwnerID
	if err := opportunities.FetchAll(ctx, ownerID); err != nil {
		logger.Warn("Failed to refresh list after deletion", zap.Error(err))
	}
	return nil
}
