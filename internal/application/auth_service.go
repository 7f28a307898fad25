package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
	repo "github.com/oksasatya/travel-story-api/internal/domain/repository"
	"github.com/oksasatya/travel-story-api/pkg/helpers"
	"github.com/oksasatya/travel-story-api/pkg/mailer"
	mailtpl "github.com/oksasatya/travel-story-api/pkg/mailer/templates"
)

// AuthConfig carries the settings of the account flows.
type AuthConfig struct {
	AppName                  string
	FrontendURL              string
	ResetTokenTTL            time.Duration
	ExposeTokenOnMailFailure bool
}

// AuthService owns registration, verification, password reset and sign-in.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Mail   mailer.Sender
	Google GoogleVerifier
	Cfg    AuthConfig
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, mail mailer.Sender, google GoogleVerifier, cfg AuthConfig, logger *logrus.Logger) *AuthService {
	if mail == nil {
		mail = mailer.Noop{}
	}
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = time.Hour
	}
	return &AuthService{
		Users:  users,
		JWT:    jwt,
		Mail:   mail,
		Google: google,
		Cfg:    cfg,
		Logger: logger,
		Now:    time.Now,
	}
}

// normalizeEmail trims surrounding space. Emails are case-sensitive keys.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// RegisterResult reports whether the verification mail went out. When it did
// not and exposure is enabled, VerificationToken carries the token instead.
type RegisterResult struct {
	User              *entity.User
	MailDelivered     bool
	VerificationToken string
}

// Register creates an unverified account and mails its verification link.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.FullName)
	if email == "" || name == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	token, err := helpers.GenOneTimeToken()
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:                  email,
		Password:               hash,
		FullName:               name,
		EmailVerificationToken: token,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	res := &RegisterResult{User: u}
	link := s.Cfg.FrontendURL + "/verify-email/" + token
	res.MailDelivered = s.sendMail(ctx, mailtpl.VerifyEmail, u, link, 0)
	if !res.MailDelivered && s.Cfg.ExposeTokenOnMailFailure {
		res.VerificationToken = token
	}
	return res, nil
}

// VerifyEmail consumes a verification token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	u, err := s.Users.GetByVerificationToken(ctx, token)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	if err := s.Users.MarkVerified(ctx, u.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// ResetRequestResult mirrors RegisterResult for the reset flow.
type ResetRequestResult struct {
	MailDelivered bool
	ResetToken    string
	ExpiresAt     time.Time
}

// RequestPasswordReset issues a new reset token, replacing any outstanding one.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*ResetRequestResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	token, err := helpers.GenOneTimeToken()
	if err != nil {
		return nil, err
	}
	expires := s.Now().Add(s.Cfg.ResetTokenTTL)
	if err := s.Users.SetResetToken(ctx, u.ID, token, expires); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "expires_at": expires}).Info("password reset requested")
	}

	res := &ResetRequestResult{ExpiresAt: expires}
	link := s.Cfg.FrontendURL + "/reset-password/" + token
	res.MailDelivered = s.sendMail(ctx, mailtpl.ResetPassword, u, link, s.Cfg.ResetTokenTTL)
	if !res.MailDelivered && s.Cfg.ExposeTokenOnMailFailure {
		res.ResetToken = token
	}
	return res, nil
}

// ConsumePasswordReset sets a new password if token is known and not expired.
// An expired token is cleared so a retry reports it as unknown.
func (s *AuthService) ConsumePasswordReset(ctx context.Context, token, newPassword string) error {
	token = helpers.NormalizeToken(token)
	if token == "" {
		return ErrInvalidToken
	}
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	u, err := s.Users.GetByResetToken(ctx, token)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}

	if u.ResetPasswordExpires == nil || u.ResetPasswordExpires.Before(s.Now()) {
		if err := s.Users.ClearResetToken(ctx, u.ID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("clear expired reset token failed")
		}
		return ErrExpiredToken
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, u.ID, hash)
}

// LoginResult carries the bearer token handed to the client.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *entity.User
}

// Login checks email and password and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !u.HasPassword() || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

// GoogleLogin signs in with a Google ID token, linking or creating the account.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*LoginResult, error) {
	if s.Google == nil {
		return nil, ErrGoogleDisabled
	}
	if strings.TrimSpace(idToken) == "" {
		return nil, fmt.Errorf("%w: credential is required", ErrValidation)
	}
	id, err := s.Google.Verify(ctx, idToken)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("google token rejected")
		}
		return nil, ErrInvalidCredentials
	}

	u, err := s.Users.GetByGoogleID(ctx, id.Subject)
	if err == nil {
		return s.issue(u)
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	email := normalizeEmail(id.Email)
	if email == "" || !id.EmailVerified {
		return nil, ErrInvalidCredentials
	}
	u, err = s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.Users.LinkGoogleID(ctx, u.ID, id.Subject); err != nil {
			return nil, err
		}
		u.GoogleID = id.Subject
		u.IsEmailVerified = true
	case errors.Is(err, repo.ErrNotFound):
		u = &entity.User{
			Email:           email,
			FullName:        nameFromEmail(email),
			GoogleID:        id.Subject,
			IsEmailVerified: true,
		}
		if err := s.Users.Create(ctx, u); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return nil, ErrEmailTaken
			}
			return nil, err
		}
	default:
		return nil, err
	}
	return s.issue(u)
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func (s *AuthService) issue(u *entity.User) (*LoginResult, error) {
	tok, exp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, err
	}
	return &LoginResult{AccessToken: tok, ExpiresAt: exp, User: u}, nil
}

// Authenticate resolves a bearer token to the user id it was issued for.
func (s *AuthService) Authenticate(token string) (string, error) {
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return claims.UserID, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// sendMail renders and sends one account mail. It reports delivery and never fails the caller.
func (s *AuthService) sendMail(ctx context.Context, tpl string, u *entity.User, link string, expiresIn time.Duration) bool {
	subject, body, err := mailtpl.Render(tpl, mailtpl.EmailData{
		Name:      u.FullName,
		AppName:   s.Cfg.AppName,
		ActionURL: link,
		ExpiresIn: expiresIn,
	})
	if err == nil {
		err = s.Mail.Send(ctx, u.Email, subject, body)
	}
	if err != nil {
		if s.Logger != nil && !errors.Is(err, mailer.ErrMailDisabled) {
			helpers.LogError(s.Logger, "email delivery failed", err, logrus.Fields{"template": tpl, "user_id": u.ID})
		}
		return false
	}
	return true
}
