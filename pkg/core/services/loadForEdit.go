package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mkhera/voluntree-cli/pkg/core/form"
	"github.com/mkhera/voluntree-cli/pkg/core/model"
)

// OpportunityFetcher retrieves a single listing from the API.
type OpportunityFetcher interface {
	FetchByID(ctx context.Context, id string) (*model.Opportunity, error)
}

// LoadOpportunityForEdit fetches a listing and builds an edit-mode form
// pre-filled with it. The listing's stored photos become the form's
// existing-image list.
func LoadOpportunityForEdit(ctx context.Context, fetcher OpportunityFetcher, logger *zap.Logger, id string) (*form.Form, error) {
	if id == "" {
		return nil, fmt.Errorf("opportunity id is required")
	}

	logger.Debug("Fetching opportunity for editing", zap.String("id", id))
	opportunity, err := fetcher.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Debug("Opportunity loaded",
		zap.String("id", opportunity.ID),
		zap.String("property", opportunity.PropertyName),
		zap.Int("stored_images", len(opportunity.Images)))

	return form.NewEdit(opportunity), nil
}
