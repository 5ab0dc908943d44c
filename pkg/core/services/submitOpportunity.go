package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mkhera/voluntree-cli/pkg/core/form"
	"github.com/mkhera/voluntree-cli/pkg/core/model"
	"github.com/mkhera/voluntree-cli/pkg/store"
)

// OpportunitySubmitter sends a finished listing to the API.
type OpportunitySubmitter interface {
	Create(ctx context.Context, payload *model.OpportunityPayload) (*model.Opportunity, error)
	Update(ctx context.Context, id string, payload *model.OpportunityPayload) (*model.Opportunity, error)
}

// SubmitResult represents the result of submitting an opportunity listing
type SubmitResult struct {
	Opportunity *model.Opportunity
	Created     bool
}

// SubmitOpportunity validates the form and sends it to the API, creating or
// replacing depending on the mode the form was built with. Validation failures
// and rejected submissions leave the form untouched so the host can fix and
// resubmit; on success the cached list is reconciled with the server's entity.
func SubmitOpportunity(ctx context.Context, submitter OpportunitySubmitter, opportunities *store.Store, logger *zap.Logger, f *form.Form) (*SubmitResult, error) {
	logger.Debug("Validating opportunity form")
	if err := f.Validate(); err != nil {
		return nil, err
	}

	payload := f.Payload()
	logger.Debug("Form validated",
		zap.String("property", payload.PropertyName),
		zap.Int("existing_images", len(payload.ExistingImages)),
		zap.Int("new_images", len(payload.NewImages)))

	var (
		opportunity *model.Opportunity
		err         error
		created     bool
	)

	switch f.Mode() {
	case form.ModeCreate:
		logger.Debug("Submitting new opportunity")
		opportunity, err = opportunities.UpdateOne(ctx, func(ctx context.Context) (*model.Opportunity, error) {
			return submitter.Create(ctx, payload)
		})
		created = true
	case form.ModeEdit:
		logger.Debug("Submitting opportunity edit", zap.String("id", f.EditID()))
		opportunity, err = opportunities.UpdateOne(ctx, func(ctx context.Context) (*model.Opportunity, error) {
			return submitter.Update(ctx, f.EditID(), payload)
		})
	default:
		return nil, fmt.Errorf("unknown form mode %d", f.Mode())
	}
	if err != nil {
		return nil, err
	}

	if opportunity != nil {
		logger.Info("Opportunity submitted",
			zap.String("id", opportunity.ID),
			zap.Bool("created", created))
	}

	return &SubmitResult{
		Opportunity: opportunity,
		Created:     created,
	}, nil
}
