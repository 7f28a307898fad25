package google

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newVerifier(t *testing.T, body string, status int) *Verifier {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.URL.Query().Get("id_token"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	v, err := NewVerifier(t.Context(), "client-1", option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return v
}

func TestVerifyAcceptsOwnAudience(t *testing.T) {
	v := newVerifier(t, `{"audience":"client-1","user_id":"g-42","email":"ana@example.com","verified_email":true}`, http.StatusOK)
	id, err := v.Verify(t.Context(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "g-42", id.Subject)
	assert.Equal(t, "ana@example.com", id.Email)
	assert.True(t, id.EmailVerified)
}

func TestVerifyRejectsForeignAudience(t *testing.T) {
	v := newVerifier(t, `{"audience":"someone-else","user_id":"g-42"}`, http.StatusOK)
	_, err := v.Verify(t.Context(), "tok-123")
	assert.ErrorIs(t, err, ErrInvalidAudience)
}

func TestVerifyPropagatesHTTPError(t *testing.T) {
	v := newVerifier(t, `{"error":"invalid_token"}`, http.StatusBadRequest)
	_, err := v.Verify(t.Context(), "tok-123")
	assert.Error(t, err)
}
