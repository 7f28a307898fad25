package genai

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g, err := NewGemini(t.Context(), "test-key", "gemini-test", option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return g
}

func TestGenerateReturnsCandidateText(t *testing.T) {
	var gotPath, gotPrompt string
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		gotPrompt = body.Contents[0].Parts[0].Text
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"  Visit Kyoto "},{"text":"in spring."}]}}]}`)
	})

	out, err := g.Generate(t.Context(), "where next?")
	require.NoError(t, err)
	assert.Equal(t, "Visit Kyoto in spring.", out)
	assert.True(t, strings.HasSuffix(gotPath, "models/gemini-test:generateContent"), gotPath)
	assert.Equal(t, "where next?", gotPrompt)
}

func TestGenerateEmptyResponse(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	})
	_, err := g.Generate(t.Context(), "x")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateUpstreamError(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"code":429,"message":"quota"}}`)
	})
	_, err := g.Generate(t.Context(), "x")
	assert.Error(t, err)
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(t.Context(), "", "gemini-1.5-flash")
	assert.ErrorIs(t, err, ErrNotConfigured)

	var g *Gemini
	_, err = g.Generate(t.Context(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
