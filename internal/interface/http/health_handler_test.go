package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthz(t *testing.T, checks map[string]Check) (int, map[string]any) {
	t.Helper()
	r := gin.New()
	r.GET("/healthz", NewHealthHandler(checks).Health)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthReportsEachCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	code, body := healthz(t, map[string]Check{"postgres": ok, "redis": ok})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "up", body["checks"].(map[string]any)["redis"])

	code, body = healthz(t, map[string]Check{"postgres": ok, "redis": down})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body["message"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "up", details["postgres"])
	assert.Equal(t, "down", details["redis"])
}
