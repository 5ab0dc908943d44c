package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mkhera/voluntree-cli/pkg/core/model"
	"github.com/mkhera/voluntree-cli/pkg/store"
)

// StatusSetter changes a listing's status on the server.
type StatusSetter interface {
	SetStatus(ctx context.Context, id string, status model.Status) (*model.Opportunity, error)
}

// ToggleResult represents the result of toggling a listing's status
type ToggleResult struct {
	Opportunity *model.Opportunity
	From        model.Status
	To          model.Status
}

// ToggleOpportunityStatus flips a listing between active and inactive. The
// cached entry is swapped to the target status before the request goes out and
// swapped back if the server rejects it, so the list reflects the toggle
// immediately but never ends up disagreeing with the server.
func ToggleOpportunityStatus(ctx context.Context, opportunities *store.Store, setter StatusSetter, logger *zap.Logger, id string) (*ToggleResult, error) {
	current, ok := opportunities.Find(id)
	if !ok {
		return nil, fmt.Errorf("no cached opportunity with id %s, refresh the list first", id)
	}

	from := current.Status
	to := current.ToggledStatus()
	logger.Debug("Toggling opportunity status",
		zap.String("id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	optimistic := current
	optimistic.Status = to
	opportunities.Replace(ctx, optimistic)

	updated, err := setter.SetStatus(ctx, id, to)
	if err != nil {
		logger.Warn("Status change rejected, rolling back", zap.String("id", id), zap.Error(err))
		opportunities.Replace(ctx, current)
		return nil, err
	}

	if updated != nil && updated.ID != "" {
		opportunities.Replace(ctx, *updated)
	}

	logger.Info("Opportunity status changed",
		zap.String("id", id),
		zap.String("status", string(to)))

	return &ToggleResult{
		Opportunity: updated,
		From:        from,
		To:          to,
	}, nil
}
