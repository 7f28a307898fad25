package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/travel-story-api/internal/domain/repository"
	"github.com/oksasatya/travel-story-api/pkg/cache"
	"github.com/oksasatya/travel-story-api/pkg/metrics"
)

// Views are cached under a per-user generation. Invalidate moves the user to a
// new generation, so a build that started before a write stores its result
// under a key nobody reads any more.
func genKey(userID string) string           { return "analytics:gen:" + userID }
func statsKey(userID, gen string) string    { return "analytics:stats:" + userID + ":" + gen }
func spendingKey(userID, gen string) string { return "analytics:spending:" + userID + ":" + gen }

// AnalyticsService serves the stats and spending views, cached per user.
type AnalyticsService struct {
	Stories repo.StoryRepository
	Cache   cache.Cache
	Logger  *logrus.Logger
}

func NewAnalyticsService(stories repo.StoryRepository, c cache.Cache, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{Stories: stories, Cache: c, Logger: logger}
}

// generation returns the current cache generation of userID, starting a new
// one when none is stored. ok is false when the cache cannot be used.
func (s *AnalyticsService) generation(ctx context.Context, userID string) (gen string, ok bool) {
	hit, err := s.Cache.Get(ctx, genKey(userID), &gen)
	if err == nil && hit && gen != "" {
		return gen, true
	}
	if err != nil {
		s.warn(err, userID, "analytics cache read failed")
	}
	gen = uuid.NewString()
	if err := s.Cache.Set(ctx, genKey(userID), gen); err != nil {
		s.warn(err, userID, "analytics cache write failed")
		return "", false
	}
	return gen, true
}

func (s *AnalyticsService) warn(err error, userID, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn(msg)
	}
}

// cached loads the view named by key(userID, gen), or computes it with build
// and stores the result. Cache errors only cost a recomputation.
func cached[T any](ctx context.Context, s *AnalyticsService, userID string, key func(string, string) string, build func() (T, error)) (T, error) {
	if s.Cache == nil {
		return build()
	}
	gen, ok := s.generation(ctx, userID)
	if !ok {
		return build()
	}
	k := key(userID, gen)

	var out T
	hit, err := s.Cache.Get(ctx, k, &out)
	if err != nil {
		s.warn(err, userID, "analytics cache read failed")
	}
	metrics.RecordCacheLookup(hit && err == nil)
	if hit && err == nil {
		return out, nil
	}
	out, err = build()
	if err != nil {
		return out, err
	}
	if err := s.Cache.Set(ctx, k, out); err != nil {
		s.warn(err, userID, "analytics cache write failed")
	}
	return out, nil
}

func (s *AnalyticsService) Stats(ctx context.Context, userID string) (Stats, error) {
	return cached(ctx, s, userID, statsKey, func() (Stats, error) {
		stories, err := s.Stories.ListByUser(ctx, userID)
		if err != nil {
			return Stats{}, err
		}
		return BuildStats(stories), nil
	})
}

func (s *AnalyticsService) Spending(ctx context.Context, userID string) (Spending, error) {
	return cached(ctx, s, userID, spendingKey, func() (Spending, error) {
		stories, err := s.Stories.ListByUser(ctx, userID)
		if err != nil {
			return Spending{}, err
		}
		return BuildSpending(stories), nil
	})
}

// Invalidate moves userID to a new generation and drops the views of the old one.
func (s *AnalyticsService) Invalidate(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	var old string
	hit, _ := s.Cache.Get(ctx, genKey(userID), &old)
	if err := s.Cache.Set(ctx, genKey(userID), uuid.NewString()); err != nil {
		s.warn(err, userID, "analytics cache invalidation failed")
	}
	if hit && old != "" {
		if err := s.Cache.Delete(ctx, statsKey(userID, old), spendingKey(userID, old)); err != nil {
			s.warn(err, userID, "analytics cache invalidation failed")
		}
	}
}

var _ Invalidator = (*AnalyticsService)(nil)
