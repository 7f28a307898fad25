package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
	"github.com/oksasatya/travel-story-api/internal/domain/repository"
)

// StoryRepository keeps stories in insertion order, which is created_on order.
type StoryRepository struct {
	mu      sync.Mutex
	stories []entity.Story
	last    time.Time
	now     func() time.Time
}

func NewStoryRepository() *StoryRepository {
	return &StoryRepository{now: time.Now}
}

// createdOn is strictly increasing so ordering by it is total.
func (m *StoryRepository) createdOn() time.Time {
	t := m.now().UTC()
	if !t.After(m.last) {
		t = m.last.Add(time.Microsecond)
	}
	m.last = t
	return t
}

func (m *StoryRepository) Create(_ context.Context, s *entity.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.NewString()
	s.CreatedOn = m.createdOn()
	if s.VisitedLocation == nil {
		s.VisitedLocation = []string{}
	}
	m.stories = append(m.stories, *s)
	return nil
}

func (m *StoryRepository) GetByID(_ context.Context, userID, id string) (*entity.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.stories {
		if s.ID == id && s.UserID == userID {
			cp := s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *StoryRepository) filter(userID string, match func(entity.Story) bool) []entity.Story {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Story, 0)
	for _, s := range m.stories {
		if s.UserID == userID && match(s) {
			out = append(out, s)
		}
	}
	return out
}

func favouriteFirst(list []entity.Story) []entity.Story {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsFavourite != list[j].IsFavourite {
			return list[i].IsFavourite
		}
		return list[i].CreatedOn.After(list[j].CreatedOn)
	})
	return list
}

func all(entity.Story) bool { return true }

func (m *StoryRepository) ListByUser(_ context.Context, userID string) ([]entity.Story, error) {
	return m.filter(userID, all), nil
}

func (m *StoryRepository) ListFavouriteFirst(_ context.Context, userID string) ([]entity.Story, error) {
	return favouriteFirst(m.filter(userID, all)), nil
}

func (m *StoryRepository) ListByIDs(_ context.Context, userID string, ids []string) ([]entity.Story, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return favouriteFirst(m.filter(userID, func(s entity.Story) bool { return want[s.ID] })), nil
}

func (m *StoryRepository) Search(_ context.Context, userID, query string) ([]entity.Story, error) {
	q := strings.ToLower(query)
	return favouriteFirst(m.filter(userID, func(s entity.Story) bool {
		if strings.Contains(strings.ToLower(s.Title), q) || strings.Contains(strings.ToLower(s.Story), q) {
			return true
		}
		for _, l := range s.VisitedLocation {
			if strings.Contains(strings.ToLower(l), q) {
				return true
			}
		}
		return false
	})), nil
}

func (m *StoryRepository) FilterByVisitedDate(_ context.Context, userID string, start, end time.Time) ([]entity.Story, error) {
	return favouriteFirst(m.filter(userID, func(s entity.Story) bool {
		return !s.VisitedDate.Before(start) && !s.VisitedDate.After(end)
	})), nil
}

func (m *StoryRepository) Update(_ context.Context, s *entity.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.stories {
		if m.stories[i].ID == s.ID && m.stories[i].UserID == s.UserID {
			s.CreatedOn = m.stories[i].CreatedOn
			s.IsFavourite = m.stories[i].IsFavourite
			m.stories[i] = *s
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *StoryRepository) SetFavourite(_ context.Context, userID, id string, fav bool) (*entity.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.stories {
		if m.stories[i].ID == id && m.stories[i].UserID == userID {
			m.stories[i].IsFavourite = fav
			cp := m.stories[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *StoryRepository) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.stories {
		if m.stories[i].ID == id && m.stories[i].UserID == userID {
			m.stories = append(m.stories[:i], m.stories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var _ repository.StoryRepository = (*StoryRepository)(nil)
