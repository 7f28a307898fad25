package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
	repo "github.com/oksasatya/travel-story-api/internal/domain/repository"
)

// StoryInput is the writable part of a story. Nil optional fields keep the
// stored value on update and take the default on create.
type StoryInput struct {
	Title            string
	Story            string
	VisitedLocation  []string
	ImageURL         string
	VisitedDate      time.Time
	Spending         *float64
	SpendingCategory entity.SpendingCategory
	TripDuration     *int
}

func (in *StoryInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case strings.TrimSpace(in.Story) == "":
		return fmt.Errorf("%w: story is required", ErrValidation)
	case in.VisitedDate.IsZero():
		return fmt.Errorf("%w: visitedDate is required", ErrValidation)
	case in.Spending != nil && *in.Spending < 0:
		return fmt.Errorf("%w: spending must not be negative", ErrValidation)
	case in.SpendingCategory != "" && !in.SpendingCategory.Valid():
		return fmt.Errorf("%w: unknown spending category %q", ErrValidation, in.SpendingCategory)
	case in.TripDuration != nil && *in.TripDuration < 1:
		return fmt.Errorf("%w: tripDuration must be at least 1", ErrValidation)
	}
	return nil
}

func cleanLocations(locs []string) []string {
	out := make([]string, 0, len(locs))
	for _, l := range locs {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// StoryService implements the story CRUD, search and image operations.
type StoryService struct {
	Stories     repo.StoryRepository
	Images      ImageStore
	Index       StoryIndex
	Invalidator Invalidator
	Placeholder string
	Logger      *logrus.Logger
}

func NewStoryService(stories repo.StoryRepository, images ImageStore, index StoryIndex, inv Invalidator, placeholder string, logger *logrus.Logger) *StoryService {
	return &StoryService{
		Stories:     stories,
		Images:      images,
		Index:       index,
		Invalidator: inv,
		Placeholder: placeholder,
		Logger:      logger,
	}
}

func (s *StoryService) warn(err error, msg string, fields logrus.Fields) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithFields(fields).Warn(msg)
	}
}

// validID keeps malformed ids away from the uuid column.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *StoryService) imageOrPlaceholder(url string) string {
	if strings.TrimSpace(url) == "" {
		return s.Placeholder
	}
	return url
}

// afterWrite keeps derived data in line with the table. Failures are logged only.
func (s *StoryService) afterWrite(ctx context.Context, userID string, st *entity.Story, deletedID string) {
	if s.Invalidator != nil {
		s.Invalidator.Invalidate(ctx, userID)
	}
	if s.Index == nil {
		return
	}
	if deletedID != "" {
		if err := s.Index.Delete(ctx, deletedID); err != nil {
			s.warn(err, "search index delete failed", logrus.Fields{"story_id": deletedID})
		}
		return
	}
	if err := s.Index.Index(ctx, st); err != nil {
		s.warn(err, "search index update failed", logrus.Fields{"story_id": st.ID})
	}
}

func (s *StoryService) Create(ctx context.Context, userID string, in StoryInput) (*entity.Story, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	st := &entity.Story{
		UserID:           userID,
		Title:            strings.TrimSpace(in.Title),
		Story:            in.Story,
		VisitedLocation:  cleanLocations(in.VisitedLocation),
		ImageURL:         s.imageOrPlaceholder(in.ImageURL),
		VisitedDate:      in.VisitedDate.UTC(),
		SpendingCategory: in.SpendingCategory.OrDefault(),
		TripDuration:     entity.DefaultTripDuration,
	}
	if in.Spending != nil {
		st.Spending = *in.Spending
	}
	if in.TripDuration != nil {
		st.TripDuration = *in.TripDuration
	}
	if err := s.Stories.Create(ctx, st); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, userID, st, "")
	return st, nil
}

// List returns favourites first, then the most recently created.
func (s *StoryService) List(ctx context.Context, userID string) ([]entity.Story, error) {
	return s.Stories.ListFavouriteFirst(ctx, userID)
}

func (s *StoryService) get(ctx context.Context, userID, id string) (*entity.Story, error) {
	if !validID(id) {
		return nil, ErrStoryNotFound
	}
	st, err := s.Stories.GetByID(ctx, userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrStoryNotFound
	}
	return st, err
}

func (s *StoryService) Update(ctx context.Context, userID, id string, in StoryInput) (*entity.Story, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	st, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	st.Title = strings.TrimSpace(in.Title)
	st.Story = in.Story
	st.VisitedLocation = cleanLocations(in.VisitedLocation)
	st.ImageURL = s.imageOrPlaceholder(in.ImageURL)
	st.VisitedDate = in.VisitedDate.UTC()
	if in.Spending != nil {
		st.Spending = *in.Spending
	}
	if in.SpendingCategory != "" {
		st.SpendingCategory = in.SpendingCategory
	}
	if in.TripDuration != nil {
		st.TripDuration = *in.TripDuration
	}
	st.SpendingCategory = st.SpendingCategory.OrDefault()
	st.TripDuration = st.Duration()

	if err := s.Stories.Update(ctx, st); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	s.afterWrite(ctx, userID, st, "")
	return st, nil
}

func (s *StoryService) SetFavourite(ctx context.Context, userID, id string, fav bool) (*entity.Story, error) {
	if !validID(id) {
		return nil, ErrStoryNotFound
	}
	st, err := s.Stories.SetFavourite(ctx, userID, id, fav)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrStoryNotFound
	}
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, userID, st, "")
	return st, nil
}

// Delete removes the story, then its image on a best-effort basis.
func (s *StoryService) Delete(ctx context.Context, userID, id string) error {
	st, err := s.get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.Stories.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrStoryNotFound
		}
		return err
	}
	if s.Images != nil && st.ImageURL != "" && st.ImageURL != s.Placeholder {
		if err := s.Images.Delete(ctx, st.ImageURL); err != nil {
			s.warn(err, "image removal failed", logrus.Fields{"story_id": id})
		}
	}
	s.afterWrite(ctx, userID, nil, id)
	return nil
}

// Search matches query case-insensitively against title, text and locations.
// The search index is preferred; the database answers when it is missing or failing.
func (s *StoryService) Search(ctx context.Context, userID, query string) ([]entity.Story, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	if s.Index != nil {
		ids, err := s.Index.Search(ctx, userID, query)
		if err == nil {
			return s.Stories.ListByIDs(ctx, userID, ids)
		}
		s.warn(err, "search index query failed, using database", logrus.Fields{"user_id": userID})
	}
	return s.Stories.Search(ctx, userID, query)
}

// FilterByDate returns stories visited within [start, end], both inclusive.
func (s *StoryService) FilterByDate(ctx context.Context, userID string, start, end time.Time) ([]entity.Story, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrValidation)
	}
	if end.Before(start) {
		return []entity.Story{}, nil
	}
	return s.Stories.FilterByVisitedDate(ctx, userID, start.UTC(), end.UTC())
}

// UploadImage stores an image for userID and returns its URL.
func (s *StoryService) UploadImage(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error) {
	if s.Images == nil {
		return "", errors.New("image storage not configured")
	}
	return s.Images.Save(ctx, userID, filename, contentType, r)
}

// DeleteImage removes an uploaded image of userID. Images of other users are not found.
func (s *StoryService) DeleteImage(ctx context.Context, userID, url string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("%w: imageUrl is required", ErrValidation)
	}
	if s.Images == nil || !strings.Contains(url, "/stories/"+userID+"/") {
		return ErrImageNotFound
	}
	return s.Images.Delete(ctx, url)
}
