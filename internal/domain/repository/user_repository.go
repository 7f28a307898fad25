package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*entity.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*entity.User, error)
	GetByResetToken(ctx context.Context, token string) (*entity.User, error)

	// MarkVerified sets the verified flag and clears the verification token.
	MarkVerified(ctx context.Context, id string) error
	// SetResetToken replaces any outstanding reset token of the user.
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	// UpdatePassword stores a new hash and clears the reset token in the same write.
	UpdatePassword(ctx context.Context, id, hash string) error
	LinkGoogleID(ctx context.Context, id, googleID string) error
}
