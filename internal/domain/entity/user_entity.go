package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash and is empty for accounts created through Google sign-in.
type User struct {
	ID                     string
	Email                  string
	Password               string
	FullName               string
	GoogleID               string
	ProfilePicture         string
	IsEmailVerified        bool
	EmailVerificationToken string
	ResetPasswordToken     string
	ResetPasswordExpires   *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// HasPassword reports whether the account can sign in with a password.
func (u *User) HasPassword() bool { return u.Password != "" }
