// Package opportunityclient holds the typed API operations for opportunity
// listings: multipart create/edit plus the JSON fetch, list, status and
// delete calls. It owns the wire format; callers work with model types.
package opportunityclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mkhera/voluntree-cli/pkg/clients/apiclient"
	"github.com/mkhera/voluntree-cli/pkg/core/model"
)

// Client performs opportunity API operations through the shared API client.
type Client struct {
	api *apiclient.Client
}

// NewClient creates an opportunity operations client.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

type opportunityResponse struct {
	Opportunity model.Opportunity `json:"opportunity"`
}

type opportunitiesResponse struct {
	Opportunities []model.Opportunity `json:"opportunities"`
}

// Create submits a new listing as multipart/form-data and returns the
// server's created entity, identifier included.
func (c *Client) Create(ctx context.Context, payload *model.OpportunityPayload) (*model.Opportunity, error) {
	body, contentType, err := encodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode opportunity: %w", err)
	}

	var resp opportunityResponse
	if err := c.api.Do(ctx, http.MethodPost, "/opportunities", body, contentType, &resp); err != nil {
		return nil, err
	}
	return &resp.Opportunity, nil
}

// Update re-submits the full payload as a replacement for the listing with
// the given identifier. The serialization contract matches Create.
func (c *Client) Update(ctx context.Context, id string, payload *model.OpportunityPayload) (*model.Opportunity, error) {
	body, contentType, err := encodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode opportunity: %w", err)
	}
	return c.UpdateMultipart(ctx, id, body, contentType)
}

// UpdateMultipart sends a pre-built multipart body, for callers that have
// already serialized to the transport format.
func (c *Client) UpdateMultipart(ctx context.Context, id string, body *bytes.Buffer, contentType string) (*model.Opportunity, error) {
	var resp opportunityResponse
	if err := c.api.Do(ctx, http.MethodPut, "/opportunities/"+url.PathEscape(id), body, contentType, &resp); err != nil {
		return nil, err
	}
	return &resp.Opportunity, nil
}

// SetStatus changes only the listing's status; every other field is left out
// of the request so the server touches nothing else.
func (c *Client) SetStatus(ctx context.Context, id string, status model.Status) (*model.Opportunity, error) {
	patch := struct {
		Status model.Status `json:"status"`
	}{Status: status}

	var resp opportunityResponse
	if err := c.api.PatchJSON(ctx, "/opportunities/"+url.PathEscape(id)+"/status", patch, &resp); err != nil {
		return nil, err
	}
	return &resp.Opportunity, nil
}

// FetchByID retrieves a single listing.
func (c *Client) FetchByID(ctx context.Context, id string) (*model.Opportunity, error) {
	var resp opportunityResponse
	if err := c.api.GetJSON(ctx, "/opportunities/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp.Opportunity, nil
}

// ListMine retrieves the authenticated host's own listings.
func (c *Client) ListMine(ctx context.Context) ([]model.Opportunity, error) {
	var resp opportunitiesResponse
	if err := c.api.GetJSON(ctx, "/opportunities/mine", &resp); err != nil {
		return nil, err
	}
	return resp.Opportunities, nil
}

// Delete removes a listing server-side. The client never drops a listing
// locally without this round trip succeeding.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.api.Delete(ctx, "/opportunities/"+url.PathEscape(id), nil)
}
