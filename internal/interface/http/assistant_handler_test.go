package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistantEndpoints(t *testing.T) {
	s := newServer(t)
	token := s.signUp(t, "ana@example.com")

	s.gen.out = "Try Lofoten."
	code, out := s.do(t, http.MethodPost, "/travel-assistant", token, gin.H{"question": "Where next?"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Try Lofoten.", out["answer"])

	s.gen.out = "A better story."
	_, out = s.do(t, http.MethodPost, "/enhance-story", token, gin.H{"story": "a story"})
	assert.Equal(t, "A better story.", out["enhancedStory"])

	s.gen.out = "1. Fjord Days\n2. Northern Light\n3. Cold Coffee\n4. Extra"
	_, out = s.do(t, http.MethodPost, "/generate-titles", token, gin.H{"story": "a story", "locations": []string{"Norway"}})
	assert.Len(t, out["titles"], 3)

	code, _ = s.do(t, http.MethodPost, "/enhance-story", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAssistantUpstreamFailure(t *testing.T) {
	s := newServer(t)
	token := s.signUp(t, "ana@example.com")
	s.gen.err = errors.New("quota")

	code, out := s.do(t, http.MethodPost, "/enhance-story", token, gin.H{"story": "a story"})
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "The assistant is unavailable right now", out["message"])
}
