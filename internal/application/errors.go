package application

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrGoogleDisabled     = errors.New("google sign-in is not configured")
	ErrStoryNotFound      = errors.New("travel story not found")
	ErrImageNotFound      = errors.New("image not found")
	ErrUpstream           = errors.New("upstream service failed")
)
