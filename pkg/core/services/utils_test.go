package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkhera/voluntree-cli/pkg/core/model"
	"github.com/mkhera/voluntree-cli/pkg/store"
)

// mockOpportunityAPI implements the per-service client interfaces with
// overridable function fields.
type mockOpportunityAPI struct {
	createFn    func(ctx context.Context, payload *model.OpportunityPayload) (*model.Opportunity, error)
	updateFn    func(ctx context.Context, id string, payload *model.OpportunityPayload) (*model.Opportunity, error)
	setStatusFn func(ctx context.Context, id string, status model.Status) (*model.Opportunity, error)
	fetchFn     func(ctx context.Context, id string) (*model.Opportunity, error)
	deleteFn    func(ctx context.Context, id string) error
	listFn      func(ctx context.Context) ([]model.Opportunity, error)
}

func (m *mockOpportunityAPI) Create(ctx context.Context, payload *model.OpportunityPayload) (*model.Opportunity, error) {
	return m.createFn(ctx, payload)
}

func (m *mockOpportunityAPI) Update(ctx context.Context, id string, payload *model.OpportunityPayload) (*model.Opportunity, error) {
	return m.updateFn(ctx, id, payload)
}

func (m *mockOpportunityAPI) SetStatus(ctx context.Context, id string, status model.Status) (*model.Opportunity, error) {
	return m.setStatusFn(ctx, id, status)
}

func (m *mockOpportunityAPI) FetchByID(ctx context.Context, id string) (*model.Opportunity, error) {
	return m.fetchFn(ctx, id)
}

func (m *mockOpportunityAPI) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockOpportunityAPI) ListMine(ctx context.Context) ([]model.Opportunity, error) {
	return m.listFn(ctx)
}

// mockTokens implements TokenSource.
type mockTokens struct {
	token string
	ok    bool
}

func (m *mockTokens) BearerToken() (string, bool) {
	return m.token, m.ok
}

// signedToken builds a JWT carrying the given subject claim.
func signedToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// newTestStore builds an in-memory store backed by the mock's list function.
func newTestStore(api *mockOpportunityAPI) *store.Store {
	return store.New(api, nil, zap.NewNop())
}
