// Package google verifies Google sign-in ID tokens through the tokeninfo endpoint.
package google

import (
	"context"
	"errors"
	"net/http"
	"time"

	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/oksasatya/travel-story-api/internal/application"
)

var ErrInvalidAudience = errors.New("invalid google audience")

// Verifier checks ID tokens issued for ClientID.
type Verifier struct {
	svc      *oauth2.Service
	clientID string
}

// NewVerifier builds a verifier. Extra options let tests point it at a local endpoint.
func NewVerifier(ctx context.Context, clientID string, extra ...option.ClientOption) (*Verifier, error) {
	opts := append([]option.ClientOption{
		option.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
	}, extra...)
	svc, err := oauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Verifier{svc: svc, clientID: clientID}, nil
}

func (v *Verifier) Verify(ctx context.Context, idToken string) (*application.GoogleIdentity, error) {
	info, err := v.svc.Tokeninfo().IdToken(idToken).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if info.Audience != v.clientID {
		return nil, ErrInvalidAudience
	}
	if info.UserId == "" {
		return nil, errors.New("google token has no subject")
	}
	return &application.GoogleIdentity{
		Subject:       info.UserId,
		Email:         info.Email,
		EmailVerified: info.VerifiedEmail,
	}, nil
}

var _ application.GoogleVerifier = (*Verifier)(nil)
