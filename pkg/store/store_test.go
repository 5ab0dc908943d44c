package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkhera/voluntree-cli/pkg/core/model"
)

type fakeLister struct {
	opportunities []model.Opportunity
	err           error
	calls         int
}

func (f *fakeLister) ListMine(ctx context.Context) ([]model.Opportunity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.opportunities, nil
}

type fakeCache struct {
	saved   *CachedState
	cleared bool
	loadErr error
}

func (f *fakeCache) Load(ctx context.Context) (*CachedState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.saved == nil {
		return &CachedState{}, nil
	}
	return f.saved, nil
}

func (f *fakeCache) Save(ctx context.Context, state *CachedState) error {
	f.saved = state
	return nil
}

func (f *fakeCache) Clear(ctx context.Context) error {
	f.saved = nil
	f.cleared = true
	return nil
}

func TestFetchAll_ReplacesListAndStampsLastFetched(t *testing.T) {
	lister := &fakeLister{opportunities: []model.Opportunity{
		{ID: "opp-1", PropertyName: "Hilltop"},
		{ID: "opp-2", PropertyName: "Riverside"},
	}}
	s := New(lister, nil, zap.NewNop())

	err := s.FetchAll(context.Background(), "host-1")
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Len(t, snap.Opportunities, 2)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.LastError)
	assert.Equal(t, "host-1", snap.OwnerID)
	assert.WithinDuration(t, time.Now().UTC(), snap.LastFetched, 5*time.Second)
}

func TestFetchAll_FailureLeavesListEmptyAndRecordsError(t *testing.T) {
	lister := &fakeLister{err: errors.New("server unavailable")}
	s := New(lister, nil, zap.NewNop())

	err := s.FetchAll(context.Background(), "host-1")
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Empty(t, snap.Opportunities)
	assert.False(t, snap.Loading)
	assert.Contains(t, snap.LastError, "server unavailable")
}

func TestFetchAll_SuccessAfterFailureClearsError(t *testing.T) {
	lister := &fakeLister{err: errors.New("server unavailable")}
	s := New(lister, nil, zap.NewNop())

	require.Error(t, s.FetchAll(context.Background(), "host-1"))

	lister.err = nil
	lister.opportunities = []model.Opportunity{{ID: "opp-1"}}
	require.NoError(t, s.FetchAll(context.Background(), "host-1"))

	snap := s.Snapshot()
	assert.Empty(t, snap.LastError)
	require.Len(t, snap.Opportunities, 1)
	assert.Equal(t, "opp-1", snap.Opportunities[0].ID)
}

func TestFetchAll_ClearsVisibleListBeforeTheCallGoesOut(t *testing.T) {
	s := New(&fakeLister{}, nil, zap.NewNop())

	// Seed, then fetch with a lister that observes the mid-flight state.
	seed := &fakeLister{opportunities: []model.Opportunity{{ID: "opp-old"}}}
	s.lister = seed
	require.NoError(t, s.FetchAll(context.Background(), "host-1"))

	observer := &observingLister{store: s}
	s.lister = observer
	require.NoError(t, s.FetchAll(context.Background(), "host-1"))

	assert.Empty(t, observer.midFlight.Opportunities, "list must be cleared while the fetch is pending")
	assert.True(t, observer.midFlight.Loading)
}

type observingLister struct {
	store     *Store
	midFlight State
}

func (o *observingLister) ListMine(ctx context.Context) ([]model.Opportunity, error) {
	o.midFlight = o.store.Snapshot()
	return []model.Opportunity{{ID: "opp-new"}}, nil
}

func TestUpdateOne_ReplacesMatchingItemInPlace(t *testing.T) {
	lister := &fakeLister{opportunities: []model.Opportunity{
		{ID: "opp-1", PropertyName: "Hilltop", Status: model.StatusActive},
		{ID: "opp-2", PropertyName: "Riverside", Status: model.StatusActive},
	}}
	s := New(lister, nil, zap.NewNop())
	require.NoError(t, s.FetchAll(context.Background(), "host-1"))

	updated, err := s.UpdateOne(context.Background(), func(ctx context.Context) (*model.Opportunity, error) {
		return &model.Opportunity{ID: "opp-2", PropertyName: "Riverside Renamed", Status: model.StatusInactive}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "opp-2", updated.ID)

	snap := s.Snapshot()
	assert.False(t, snap.Updating)
	require.Len(t, snap.Opportunities, 2)
	assert.Equal(t, "Hilltop", snap.Opportunities[0].PropertyName)
	assert.Equal(t, "Riverside Renamed", snap.Opportunities[1].PropertyName)
	assert.Equal(t, model.StatusInactive, snap.Opportunities[1].Status)
}

func TestUpdateOne_ResponseWithoutIdentifierLeavesListUntouched(t *testing.T) {
	lister := &fakeLister{opportunities: []model.Opportunity{
		{ID: "opp-1", PropertyName: "Hilltop"},
		{ID: "opp-2", PropertyName: "Riverside"},
	}}
	s := New(lister, nil, zap.NewNop())
	require.NoError(t, s.FetchAll(context.Background(), "host-1"))
	before := s.Snapshot()

	_, err := s.UpdateOne(context.Background(), func(ctx context.Context) (*model.Opportunity, error) {
		return &model.Opportunity{PropertyName: "No identifier"}, nil
	})
	require.NoError(t, err)

	after := s.Snapshot()
	assert.Equal(t, before.Opportunities, after.Opportunities)
	assert.False(t, after.Updating)
}

func TestUpdateOne_FailureRecordsErrorAndLeavesListAlone(t *testing.T) {
	lister := &fakeLister{opportunities: []model.Opportunity{{ID: "opp-1", PropertyName: "Hilltop"}}}
	s := New(lister, nil, zap.NewNop())
	require.NoError(t, s.FetchAll(context.Background(), "host-1"))

	_, err := s.UpdateOne(context.Background(), func(ctx context.Context) (*model.Opportunity, error) {
		return nil, errors.New("rejected")
	})
	require.Error(t, err)

	snap := s.Snapshot()
	assert.False(t, snap.Updating)
	assert.Contains(t, snap.LastError, "rejected")
	require.Len(t, snap.Opportunities, 1)
	assert.Equal(t, "Hilltop", snap.Opportunities[0].PropertyName)
}

func TestClear_EmptiesStateAndPersistedCache(t *testing.T) {
	cache := &fakeCache{}
	lister := &fakeLister{opportunities: []model.Opportunity{{ID: "opp-1"}}}
	s := New(lister, cache, zap.NewNop())
	require.NoError(t, s.FetchAll(context.Background(), "host-1"))
	require.NotNil(t, cache.saved)

	s.Clear(context.Background())

	snap := s.Snapshot()
	assert.Empty(t, snap.Opportunities)
	assert.Empty(t, snap.OwnerID)
	assert.True(t, snap.LastFetched.IsZero())
	assert.True(t, cache.cleared)
	assert.Nil(t, cache.saved)
}

func TestHydrate_LoadsWhitelistedStateOnly(t *testing.T) {
	fetched := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	cache := &fakeCache{saved: &CachedState{
		OwnerID:       "host-1",
		LastFetched:   fetched,
		Opportunities: []model.Opportunity{{ID: "opp-1"}},
	}}
	s := New(&fakeLister{}, cache, zap.NewNop())

	s.Hydrate(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, "host-1", snap.OwnerID)
	assert.Equal(t, fetched, snap.LastFetched)
	require.Len(t, snap.Opportunities, 1)
	// Busy flags always start false after hydration.
	assert.False(t, snap.Loading)
	assert.False(t, snap.Updating)
}

func TestHydrate_CorruptCacheStartsEmpty(t *testing.T) {
	cache := &fakeCache{loadErr: errors.New("corrupt")}
	s := New(&fakeLister{}, cache, zap.NewNop())

	s.Hydrate(context.Background())

	snap := s.Snapshot()
	assert.Empty(t, snap.Opportunities)
}

func TestFetchAll_PersistsWhitelistToCache(t *testing.T) {
	cache := &fakeCache{}
	lister := &fakeLister{opportunities: []model.Opportunity{{ID: "opp-1"}}}
	s := New(lister, cache, zap.NewNop())

	require.NoError(t, s.FetchAll(context.Background(), "host-1"))

	require.NotNil(t, cache.saved)
	assert.Equal(t, "host-1", cache.saved.OwnerID)
	assert.Len(t, cache.saved.Opportunities, 1)
	assert.False(t, cache.saved.LastFetched.IsZero())
}
