package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestServer builds a Server against an in-memory database with routes
// registered. Metrics middleware is left out so repeated test runs do not
// fight over the global Prometheus registry.
func newTestServer(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db := testutil.NewTestDB(t)
	cache.SetClient(nil)

	cfg := &config.Config{
		Port:          "8080",
		Env:           "test",
		JWTSecret:     "test-secret-used-only-in-handler-tests",
		AdminEmail:    "admin@example.com",
		AdminPassword: "correct horse battery staple",
	}

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:           cfg,
		db:               db,
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		authService:      service.NewAuthService(cfg),
		postService:      service.NewPostService(postRepo),
		commentService:   service.NewCommentService(commentRepo, postRepo),
		dashboardService: service.NewDashboardService(postRepo, commentRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)

	return app, s, db
}

// authToken logs in with the configured admin credentials and returns a
// bearer token for protected routes.
func authToken(t *testing.T, s *Server) string {
	t.Helper()
	token, err := s.authService.Login(s.config.AdminEmail, s.config.AdminPassword)
	require.NoError(t, err)
	return token
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody unmarshals a response body into dest.
func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// itoa formats a record ID for use in a request path.
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// uploaderStub satisfies imagekit.Uploader with a function field.
type uploaderStub struct {
	storeFn func(ctx context.Context, data []byte, fileName string) (string, error)
}

func (u *uploaderStub) Store(ctx context.Context, data []byte, fileName string) (string, error) {
	return u.storeFn(ctx, data, fileName)
}

// generatorStub satisfies genai.Generator with a function field.
type generatorStub struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
}

func (g *generatorStub) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generateFn(ctx, prompt)
}
