package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
	"github.com/oksasatya/travel-story-api/internal/domain/repository"
)

const storyColumns = `id, user_id, title, story, visited_location, is_favourite, image_url,
	visited_date, spending, spending_category, trip_duration, created_on`

const favouriteFirst = ` ORDER BY is_favourite DESC, created_on DESC`

type StoryRepository struct {
	db DB
}

func NewStoryRepository(db DB) *StoryRepository {
	return &StoryRepository{db: db}
}

func scanStory(row pgx.Row) (*entity.Story, error) {
	s := &entity.Story{}
	var category string
	if err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.Story, &s.VisitedLocation, &s.IsFavourite,
		&s.ImageURL, &s.VisitedDate, &s.Spending, &category, &s.TripDuration, &s.CreatedOn); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	s.SpendingCategory = entity.SpendingCategory(category)
	if s.VisitedLocation == nil {
		s.VisitedLocation = []string{}
	}
	return s, nil
}

func (r *StoryRepository) query(ctx context.Context, sql string, args ...any) ([]entity.Story, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Story, 0)
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *StoryRepository) Create(ctx context.Context, s *entity.Story) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO travel_stories (user_id, title, story, visited_location, is_favourite, image_url,
			visited_date, spending, spending_category, trip_duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_on
	`, s.UserID, s.Title, s.Story, s.VisitedLocation, s.IsFavourite, s.ImageURL,
		s.VisitedDate, s.Spending, string(s.SpendingCategory), s.TripDuration)
	return row.Scan(&s.ID, &s.CreatedOn)
}

func (r *StoryRepository) GetByID(ctx context.Context, userID, id string) (*entity.Story, error) {
	return scanStory(r.db.QueryRow(ctx,
		`SELECT `+storyColumns+` FROM travel_stories WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *StoryRepository) ListByUser(ctx context.Context, userID string) ([]entity.Story, error) {
	return r.query(ctx, `SELECT `+storyColumns+` FROM travel_stories WHERE user_id = $1 ORDER BY created_on ASC`, userID)
}

func (r *StoryRepository) ListFavouriteFirst(ctx context.Context, userID string) ([]entity.Story, error) {
	return r.query(ctx, `SELECT `+storyColumns+` FROM travel_stories WHERE user_id = $1`+favouriteFirst, userID)
}

func (r *StoryRepository) ListByIDs(ctx context.Context, userID string, ids []string) ([]entity.Story, error) {
	if len(ids) == 0 {
		return []entity.Story{}, nil
	}
	return r.query(ctx, `SELECT `+storyColumns+` FROM travel_stories
		WHERE user_id = $1 AND id = ANY($2::uuid[])`+favouriteFirst, userID, ids)
}

// escapeLike makes the user query literal inside an ILIKE pattern.
func escapeLike(q string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
}

func (r *StoryRepository) Search(ctx context.Context, userID, query string) ([]entity.Story, error) {
	pattern := "%" + escapeLike(query) + "%"
	return r.query(ctx, `SELECT `+storyColumns+` FROM travel_stories
		WHERE user_id = $1 AND (
			title ILIKE $2
			OR story ILIKE $2
			OR EXISTS (SELECT 1 FROM unnest(visited_location) AS loc WHERE loc ILIKE $2)
		)`+favouriteFirst, userID, pattern)
}

func (r *StoryRepository) FilterByVisitedDate(ctx context.Context, userID string, start, end time.Time) ([]entity.Story, error) {
	return r.query(ctx, `SELECT `+storyColumns+` FROM travel_stories
		WHERE user_id = $1 AND visited_date >= $2 AND visited_date <= $3`+favouriteFirst, userID, start, end)
}

func (r *StoryRepository) Update(ctx context.Context, s *entity.Story) error {
	res, err := r.db.Exec(ctx, `
		UPDATE travel_stories
		SET title = $3, story = $4, visited_location = $5, image_url = $6, visited_date = $7,
			spending = $8, spending_category = $9, trip_duration = $10
		WHERE id = $1 AND user_id = $2
	`, s.ID, s.UserID, s.Title, s.Story, s.VisitedLocation, s.ImageURL, s.VisitedDate,
		s.Spending, string(s.SpendingCategory), s.TripDuration)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *StoryRepository) SetFavourite(ctx context.Context, userID, id string, fav bool) (*entity.Story, error) {
	return scanStory(r.db.QueryRow(ctx, `
		UPDATE travel_stories SET is_favourite = $3
		WHERE id = $1 AND user_id = $2
		RETURNING `+storyColumns, id, userID, fav))
}

func (r *StoryRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM travel_stories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.StoryRepository = (*StoryRepository)(nil)
