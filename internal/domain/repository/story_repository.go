package repository

import (
	"context"
	"time"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
)

// StoryRepository defines story persistence. Every lookup is scoped by owner;
// a story that exists but belongs to someone else yields ErrNotFound.
type StoryRepository interface {
	Create(ctx context.Context, s *entity.Story) error
	GetByID(ctx context.Context, userID, id string) (*entity.Story, error)
	// ListByUser returns stories in storage (creation) order.
	ListByUser(ctx context.Context, userID string) ([]entity.Story, error)
	// ListFavouriteFirst returns favourites first, then newest first.
	ListFavouriteFirst(ctx context.Context, userID string) ([]entity.Story, error)
	ListByIDs(ctx context.Context, userID string, ids []string) ([]entity.Story, error)
	Search(ctx context.Context, userID, query string) ([]entity.Story, error)
	// FilterByVisitedDate matches start <= visited_date <= end.
	FilterByVisitedDate(ctx context.Context, userID string, start, end time.Time) ([]entity.Story, error)
	Update(ctx context.Context, s *entity.Story) error
	SetFavourite(ctx context.Context, userID, id string, fav bool) (*entity.Story, error)
	Delete(ctx context.Context, userID, id string) error
}
