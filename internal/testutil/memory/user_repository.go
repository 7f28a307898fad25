// Package memory provides map-backed repositories for service and handler
// tests. The server never imports it.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
	"github.com/oksasatya/travel-story-api/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]*entity.User{}}
}

func (m *UserRepository) find(match func(*entity.User) bool) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *UserRepository) update(id string, fn func(*entity.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now()
	return nil
}

func (m *UserRepository) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email || (u.GoogleID != "" && existing.GoogleID == u.GoogleID) {
			return repository.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.ID == id })
}

func (m *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email })
}

func (m *UserRepository) GetByGoogleID(_ context.Context, googleID string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return googleID != "" && u.GoogleID == googleID })
}

func (m *UserRepository) GetByVerificationToken(_ context.Context, token string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return token != "" && u.EmailVerificationToken == token })
}

func (m *UserRepository) GetByResetToken(_ context.Context, token string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return token != "" && u.ResetPasswordToken == token })
}

func (m *UserRepository) MarkVerified(_ context.Context, id string) error {
	return m.update(id, func(u *entity.User) {
		u.IsEmailVerified = true
		u.EmailVerificationToken = ""
	})
}

func (m *UserRepository) SetResetToken(_ context.Context, id, token string, expires time.Time) error {
	return m.update(id, func(u *entity.User) {
		u.ResetPasswordToken = token
		u.ResetPasswordExpires = &expires
	})
}

func (m *UserRepository) ClearResetToken(_ context.Context, id string) error {
	return m.update(id, func(u *entity.User) {
		u.ResetPasswordToken = ""
		u.ResetPasswordExpires = nil
	})
}

func (m *UserRepository) UpdatePassword(_ context.Context, id, hash string) error {
	return m.update(id, func(u *entity.User) {
		u.Password = hash
		u.ResetPasswordToken = ""
		u.ResetPasswordExpires = nil
	})
}

func (m *UserRepository) LinkGoogleID(_ context.Context, id, googleID string) error {
	return m.update(id, func(u *entity.User) {
		u.GoogleID = googleID
		u.IsEmailVerified = true
	})
}

var _ repository.UserRepository = (*UserRepository)(nil)
