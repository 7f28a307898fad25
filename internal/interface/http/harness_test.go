package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/travel-story-api/internal/application"
	"github.com/oksasatya/travel-story-api/internal/infrastructure/storage"
	"github.com/oksasatya/travel-story-api/internal/interface/middleware"
	"github.com/oksasatya/travel-story-api/internal/testutil/memory"
	"github.com/oksasatya/travel-story-api/pkg/cache"
	"github.com/oksasatya/travel-story-api/pkg/helpers"
	"github.com/oksasatya/travel-story-api/pkg/mailer"
	"github.com/oksasatya/travel-story-api/pkg/validation"
)

const placeholderURL = "http://localhost:8000/assets/placeholder.png"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	helpers.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type stubGenerator struct {
	out string
	err error
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) { return g.out, g.err }

// server is the full route table backed by in-memory repositories.
type server struct {
	engine  *gin.Engine
	users   *memory.UserRepository
	stories *memory.StoryRepository
	auth    *application.AuthService
	gen     *stubGenerator
}

func newServer(t *testing.T) *server {
	t.Helper()
	s := &server{
		users:   memory.NewUserRepository(),
		stories: memory.NewStoryRepository(),
		gen:     &stubGenerator{},
	}
	s.auth = application.NewAuthService(s.users, helpers.NewJWTManager("test-secret", time.Hour), mailer.Noop{}, nil,
		application.AuthConfig{AppName: "Travel Story", FrontendURL: "http://localhost:5173", ExposeTokenOnMailFailure: true}, nil)

	images, err := storage.NewLocal(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)
	analytics := application.NewAnalyticsService(s.stories, cache.NewLRU(16, time.Minute), nil)
	stories := application.NewStoryService(s.stories, images, nil, analytics, placeholderURL, nil)
	assistant := application.NewAssistantService(s.gen, s.stories, nil)

	authH := NewAuthHandler(s.auth, nil)
	storyH := NewStoryHandler(stories, nil)
	analyticsH := NewAnalyticsHandler(analytics, nil)
	assistantH := NewAssistantHandler(assistant, nil)

	r := gin.New()
	r.POST("/create-account", authH.CreateAccount)
	r.POST("/verify-email", authH.VerifyEmail)
	r.POST("/forgot-password", authH.ForgotPassword)
	r.POST("/reset-password", authH.ResetPassword)
	r.POST("/login", authH.Login)
	r.POST("/google-login", authH.GoogleLogin)

	p := r.Group("/", middleware.Auth(s.auth))
	p.GET("/get-user", authH.GetUser)
	p.POST("/add-travel-story", storyH.AddStory)
	p.GET("/get-all-stories", storyH.GetAllStories)
	p.PUT("/edit-story/:id", storyH.EditStory)
	p.PUT("/update-is-favourite/:id", storyH.UpdateFavourite)
	p.DELETE("/delete-story/:id", storyH.DeleteStory)
	p.GET("/search", storyH.Search)
	p.GET("/travel-stories/filter", storyH.FilterByDate)
	p.POST("/image-upload", storyH.UploadImage)
	p.DELETE("/delete-image", storyH.DeleteImage)
	p.GET("/analytics/stats", analyticsH.Stats)
	p.GET("/analytics/spending", analyticsH.Spending)
	p.POST("/travel-assistant", assistantH.Ask)
	p.POST("/enhance-story", assistantH.EnhanceStory)
	p.POST("/generate-titles", assistantH.GenerateTitles)

	s.engine = r
	return s
}

func (s *server) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.serve(t, req)
}

func (s *server) serve(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

// signUp registers and logs in a verified user, returning its access token.
func (s *server) signUp(t *testing.T, email string) string {
	t.Helper()
	code, _ := s.do(t, http.MethodPost, "/create-account", "", gin.H{"fullName": "Ana", "email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, code)
	code, body := s.do(t, http.MethodPost, "/login", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, code)
	return body["accessToken"].(string)
}
