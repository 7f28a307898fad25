package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
	"github.com/oksasatya/travel-story-api/internal/domain/repository"
)

func TestUserRepositoryUniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	u := &entity.User{Email: "ana@example.com", GoogleID: "g-1"}
	require.NoError(t, r.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	assert.ErrorIs(t, r.Create(ctx, &entity.User{Email: "ana@example.com"}), repository.ErrDuplicate)
	assert.ErrorIs(t, r.Create(ctx, &entity.User{Email: "bo@example.com", GoogleID: "g-1"}), repository.ErrDuplicate)

	_, err := r.GetByGoogleID(ctx, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryTokens(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	u := &entity.User{Email: "ana@example.com", EmailVerificationToken: "v-1"}
	require.NoError(t, r.Create(ctx, u))

	got, err := r.GetByVerificationToken(ctx, "v-1")
	require.NoError(t, err)
	require.NoError(t, r.MarkVerified(ctx, got.ID))
	_, err = r.GetByVerificationToken(ctx, "v-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, r.SetResetToken(ctx, u.ID, "r-1", time.Now().Add(time.Hour)))
	got, err = r.GetByResetToken(ctx, "r-1")
	require.NoError(t, err)
	assert.True(t, got.IsEmailVerified)

	require.NoError(t, r.UpdatePassword(ctx, u.ID, "hash"))
	got, err = r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", got.Password)
	assert.Empty(t, got.ResetPasswordToken)
	assert.Nil(t, got.ResetPasswordExpires)

	assert.ErrorIs(t, r.MarkVerified(ctx, "missing"), repository.ErrNotFound)
}

func TestStoryRepositoryOrdering(t *testing.T) {
	ctx := context.Background()
	r := NewStoryRepository()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		s := &entity.Story{UserID: "u1", Title: title}
		require.NoError(t, r.Create(ctx, s))
		ids = append(ids, s.ID)
	}
	require.NoError(t, r.Create(ctx, &entity.Story{UserID: "u2", Title: "other"}))

	_, err := r.SetFavourite(ctx, "u1", ids[0], true)
	require.NoError(t, err)

	list, err := r.ListFavouriteFirst(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{ids[0], ids[2], ids[1]}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.True(t, list[1].CreatedOn.After(list[2].CreatedOn), "same clock reading still orders")

	plain, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, ids[0], plain[0].ID)
}

func TestStoryRepositoryOwnership(t *testing.T) {
	ctx := context.Background()
	r := NewStoryRepository()
	s := &entity.Story{UserID: "u1", Title: "Oslo", VisitedLocation: []string{"Norway"}}
	require.NoError(t, r.Create(ctx, s))

	_, err := r.GetByID(ctx, "u2", s.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, "u2", s.ID), repository.ErrNotFound)
	assert.ErrorIs(t, r.Update(ctx, &entity.Story{ID: s.ID, UserID: "u2"}), repository.ErrNotFound)

	found, err := r.Search(ctx, "u1", "NORWAY")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, r.Delete(ctx, "u1", s.ID))
	empty, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
