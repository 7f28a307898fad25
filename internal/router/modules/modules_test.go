package modules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handlers "github.com/oksasatya/travel-story-api/internal/interface/http"
)

func denyAll(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }

func newEngine(t *testing.T, uploads string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := &Guard{Auth: denyAll}
	r := gin.New()
	root := r.Group("/")
	NewAuthModule(&handlers.AuthHandler{}, g).Register(root)
	NewStoryModule(&handlers.StoryHandler{}, g).Register(root)
	NewAnalyticsModule(&handlers.AnalyticsHandler{}, g).Register(root)
	NewAssistantModule(&handlers.AssistantHandler{}, g).Register(root)
	health := handlers.NewHealthHandler(map[string]handlers.Check{"postgres": func(context.Context) error { return nil }})
	NewDebugModule(health, true, uploads).Register(root)
	return r
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := newEngine(t, "")
	routes := []struct{ method, path string }{
		{http.MethodGet, "/get-user"},
		{http.MethodPost, "/add-travel-story"},
		{http.MethodGet, "/get-all-stories"},
		{http.MethodPut, "/edit-story/1"},
		{http.MethodPut, "/update-is-favourite/1"},
		{http.MethodDelete, "/delete-story/1"},
		{http.MethodGet, "/search"},
		{http.MethodGet, "/travel-stories/filter"},
		{http.MethodPost, "/image-upload"},
		{http.MethodDelete, "/delete-image"},
		{http.MethodGet, "/analytics/stats"},
		{http.MethodGet, "/analytics/spending"},
		{http.MethodPost, "/travel-assistant"},
		{http.MethodPost, "/enhance-story"},
		{http.MethodPost, "/generate-titles"},
	}
	for _, rt := range routes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.method+" "+rt.path)
	}
}

func TestPublicRoutesAreRegistered(t *testing.T) {
	r := newEngine(t, "")
	registered := map[string]bool{}
	for _, ri := range r.Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}
	for _, p := range []string{"/create-account", "/login", "/google-login", "/verify-email", "/forgot-password", "/reset-password"} {
		assert.True(t, registered["POST "+p], p)
	}
	assert.True(t, registered["GET /healthz"])
	assert.True(t, registered["GET /metrics"])
}

func TestDebugModuleServesUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "stories", "u1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stories", "u1", "a.png"), []byte("png"), 0o644))
	r := newEngine(t, dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/stories/u1/a.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
