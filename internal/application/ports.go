package application

import (
	"context"
	"io"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
)

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error)
	// Delete is a no-op for URLs the store does not own.
	Delete(ctx context.Context, url string) error
}

// StoryIndex is an optional full-text mirror of the stories table.
type StoryIndex interface {
	Index(ctx context.Context, s *entity.Story) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, userID, q string) ([]string, error)
}

// TextGenerator turns a prompt into model text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GoogleIdentity is what a verified Google ID token tells us about the user.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
}

// GoogleVerifier checks a Google ID token issued for our client id.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// Invalidator drops per-user derived data after a story write.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string)
}
