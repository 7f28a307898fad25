package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVerifyEmail(t *testing.T) {
	subject, html, err := Render(VerifyEmail, EmailData{
		Name:      "Ana",
		AppName:   "Travel Story",
		ActionURL: "http://localhost:5173/verify-email/abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "Verify your email for Travel Story", subject)
	assert.Contains(t, html, "Welcome, Ana!")
	assert.Contains(t, html, "http://localhost:5173/verify-email/abc")
}

func TestRenderResetPasswordExpiry(t *testing.T) {
	subject, html, err := Render(ResetPassword, EmailData{
		ActionURL: "http://localhost:5173/reset-password/xyz",
		ExpiresIn: time.Hour,
	})
	require.NoError(t, err)
	assert.Equal(t, "Reset your Travel Story password", subject)
	assert.Contains(t, html, "expires in 1 hour")
	assert.Contains(t, html, "Hi traveler")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("nope", EmailData{})
	assert.Error(t, err)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "1 hour", humanize(time.Hour))
	assert.Equal(t, "3 hours", humanize(3*time.Hour))
	assert.Equal(t, "30 minutes", humanize(30*time.Minute))
	assert.Equal(t, "", humanize(0))
}
