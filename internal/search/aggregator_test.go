package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tophits/internal/models"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Search(ctx context.Context, query string) ([]models.CandidateTrack, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CandidateTrack), args.Error(1)
}

func track(id string) models.CandidateTrack {
	return models.CandidateTrack{ID: id, Title: "Track " + id}
}

func testCascade() []TierQuery {
	cascade := make([]TierQuery, 0, len(AllTiers))
	for _, tier := range AllTiers {
		cascade = append(cascade, TierQuery{Tier: tier, Query: tier.String()})
	}
	return cascade
}

func trackIDs(tracks []models.CandidateTrack) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}

func TestAggregator_TierIsMemoized(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("Search", mock.Anything, "EXACT_MATCH").Return([]models.CandidateTrack{track("a")}, nil)

	agg := NewAggregator(catalog, testCascade(), AggregatorOptions{})
	ctx := context.Background()

	first := agg.Tier(ctx, TierExactMatch)
	second := agg.Tier(ctx, TierExactMatch)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a"}, trackIDs(first.Tracks))
	assert.Equal(t, "EXACT_MATCH", first.Query)
	catalog.AssertNumberOfCalls(t, "Search", 1)
}

func TestAggregator_TierIsMemoizedUnderConcurrency(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("Search", mock.Anything, "EXACT_MATCH").
		After(20*time.Millisecond).
		Return([]models.CandidateTrack{track("a")}, nil)

	agg := NewAggregator(catalog, testCascade(), AggregatorOptions{})

	var wg sync.WaitGroup
	results := make([]TierResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = agg.Tier(context.Background(), TierExactMatch)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, []string{"a"}, trackIDs(r.Tracks))
	}
	catalog.AssertNumberOfCalls(t, "Search", 1)
}

func TestAggregator_NotFoundIsEmptyTier(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("Search", mock.Anything, "EXACT_MATCH").Return(nil, ErrNotFound)

	agg := NewAggregator(catalog, testCascade(), AggregatorOptions{})
	result := agg.Tier(context.Background(), TierExactMatch)

	assert.True(t, result.NotFound)
	assert.NoError(t, result.Err)
	assert.Empty(t, result.Tracks)
}

func TestAggregator_WrappedNotFoundIsEmptyTier(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("Search", mock.Anything, "EXACT_MATCH").Return(nil, errors.Join(errors.New("spotify: 0 items"), ErrNotFound))

	agg := NewAggregator(catalog, testCascade(), AggregatorOptions{})
	result := agg.Tier(context.Background(), TierExactMatch)

	assert.True(t, result.NotFound)
	assert.NoError(t, result.Err)
}

func TestAggregator_UnknownTier(t *testing.T) {
	agg := NewAggregator(new(mockCatalog), testCascade(), AggregatorOptions{})

	result := agg.Tier(context.Background(), SearchTier(99))

	assert.Error(t, result.Err)
}

func TestAggregator_MergedPoolKeepsTierOrderAndDeduplicates(t *testing.T) {
	for _, concurrent := range []bool{false, true} {
		catalog := new(mockCatalog)
		catalog.On("Search", mock.Anything, "EXACT_MATCH").Return([]models.CandidateTrack{track("a"), track("b")}, nil)
		catalog.On("Search", mock.Anything, "MATCH_WITHOUT_ARTIST_TAGS").Return(nil, ErrNotFound)
		catalog.On("Search", mock.Anything, "MATCH_WITHOUT_YEAR_TAG").Return([]models.CandidateTrack{track("b"), track("c")}, nil)
		catalog.On("Search", mock.Anything, "MATCH_WITHOUT_YEAR_AND_ARTIST_TAGS").
			After(5*time.Millisecond).
			Return([]models.CandidateTrack{track("d")}, nil)
		catalog.On("Search", mock.Anything, "MATCH_WITHOUT_TRACK_AND_ARTIST_TAGS").Return([]models.CandidateTrack{}, nil)
		catalog.On("Search", mock.Anything, "MATCH_WITHOUT_TAGS").Return([]models.CandidateTrack{track("a"), track("e")}, nil)

		agg := NewAggregator(catalog, testCascade(), AggregatorOptions{Concurrent: concurrent})

		pool, err := agg.MergedPool(context.Background())

		require.NoError(t, err, "concurrent=%v", concurrent)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, trackIDs(pool), "concurrent=%v", concurrent)
		catalog.AssertNumberOfCalls(t, "Search", len(AllTiers))

		summary := agg.Summary()
		assert.Len(t, summary, len(AllTiers))
		assert.Equal(t, 2, summary["EXACT_MATCH"])
		assert.Equal(t, 0, summary["MATCH_WITHOUT_ARTIST_TAGS"])
	}
}

func TestAggregator_MergedPoolTransportErrorIsFatal(t *testing.T) {
	transportErr := errors.New("connection reset")

	catalog := new(mockCatalog)
	catalog.On("Search", mock.Anything, "EXACT_MATCH").Return([]models.CandidateTrack{track("a")}, nil)
	catalog.On("Search", mock.Anything, "MATCH_WITHOUT_ARTIST_TAGS").Return(nil, transportErr)

	agg := NewAggregator(catalog, testCascade(), AggregatorOptions{})

	pool, err := agg.MergedPool(context.Background())

	require.Error(t, err)
	assert.Nil(t, pool)
	assert.ErrorIs(t, err, transportErr)
	assert.Contains(t, err.Error(), "MATCH_WITHOUT_ARTIST_TAGS")
	// later tiers are never queried after a fatal error
	catalog.AssertNumberOfCalls(t, "Search", 2)
}

func TestAggregator_SummaryOnlyCoversFetchedTiers(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("Search", mock.Anything, "MATCH_WITHOUT_TAGS").Return([]models.CandidateTrack{track("a")}, nil)

	agg := NewAggregator(catalog, testCascade(), AggregatorOptions{})
	assert.Empty(t, agg.Summary())

	agg.Tier(context.Background(), TierWithoutTags)

	assert.Equal(t, map[string]int{"MATCH_WITHOUT_TAGS": 1}, agg.Summary())
}
