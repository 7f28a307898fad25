package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
	"github.com/oksasatya/travel-story-api/internal/testutil/memory"
	"github.com/oksasatya/travel-story-api/pkg/cache"
)

func currentGen(t *testing.T, c cache.Cache, userID string) string {
	t.Helper()
	var gen string
	hit, err := c.Get(context.Background(), genKey(userID), &gen)
	require.NoError(t, err)
	require.True(t, hit)
	return gen
}

// slowStories runs during once, in the middle of the next ListByUser.
type slowStories struct {
	*memory.StoryRepository
	during func()
}

func (r *slowStories) ListByUser(ctx context.Context, userID string) ([]entity.Story, error) {
	out, err := r.StoryRepository.ListByUser(ctx, userID)
	if f := r.during; f != nil {
		r.during = nil
		f()
	}
	return out, err
}

func TestAnalyticsCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	stories := newMemoryStories()
	c := cache.NewLRU(16, time.Minute)
	analytics := NewAnalyticsService(stories, c, nil)
	svc := NewStoryService(stories, nil, nil, analytics, placeholder, nil)

	spent := 40.0
	in := input("Hanoi", "Vietnam")
	in.Spending = &spent
	_, err := svc.Create(ctx, "u1", in)
	require.NoError(t, err)

	stats, err := analytics.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalTrips)
	gen := currentGen(t, c, "u1")
	assert.True(t, c.Has(ctx, statsKey("u1", gen)))

	spending, err := analytics.Spending(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, spending.TotalSpending)
	assert.True(t, c.Has(ctx, spendingKey("u1", gen)))

	// a write through the story service drops both views
	_, err = svc.Create(ctx, "u1", input("Hue", "Vietnam"))
	require.NoError(t, err)
	assert.False(t, c.Has(ctx, statsKey("u1", gen)))
	assert.False(t, c.Has(ctx, spendingKey("u1", gen)))
	assert.NotEqual(t, gen, currentGen(t, c, "u1"))

	stats, err = analytics.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalTrips)
	spending, err = analytics.Spending(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 20.0, spending.AvgPerTrip)
}

func TestAnalyticsServesFromCache(t *testing.T) {
	ctx := context.Background()
	stories := newMemoryStories()
	c := cache.NewLRU(16, time.Minute)
	analytics := NewAnalyticsService(stories, c, nil)

	require.NoError(t, c.Set(ctx, genKey("u1"), "g1"))
	require.NoError(t, c.Set(ctx, statsKey("u1", "g1"), Stats{TotalTrips: 42}))
	stats, err := analytics.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 42, stats.TotalTrips)

	// other users are not affected
	stats, err = analytics.Stats(ctx, "u2")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTrips)
}

func TestAnalyticsBuildRacingAWriteIsNotServedLater(t *testing.T) {
	ctx := context.Background()
	stories := &slowStories{StoryRepository: newMemoryStories()}
	c := cache.NewLRU(16, time.Minute)
	analytics := NewAnalyticsService(stories, c, nil)
	svc := NewStoryService(stories, nil, nil, analytics, placeholder, nil)

	_, err := svc.Create(ctx, "u1", input("Hanoi", "Vietnam"))
	require.NoError(t, err)

	// the story lands after the build has read the list
	stories.during = func() {
		_, err := svc.Create(ctx, "u1", input("Hue", "Vietnam"))
		require.NoError(t, err)
	}
	stats, err := analytics.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalTrips)

	stats, err = analytics.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalTrips)
}

func TestAnalyticsWithoutCache(t *testing.T) {
	ctx := context.Background()
	stories := newMemoryStories()
	require.NoError(t, stories.Create(ctx, &entity.Story{UserID: "u1", Title: "x", TripDuration: 3}))

	analytics := NewAnalyticsService(stories, nil, nil)
	stats, err := analytics.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.AvgTripDuration)
	analytics.Invalidate(ctx, "u1")
}
