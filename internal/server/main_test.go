package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"savora/internal/config"
	"savora/internal/database"
	"savora/internal/repository"
	"savora/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeMediaStore records uploads and deletes in memory.
type fakeMediaStore struct {
	uploads int
	deleted []string
	fail    bool
}

func (f *fakeMediaStore) Upload(_ context.Context, _ []byte, _ string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("bucket unavailable")
	}
	f.uploads++
	return fmt.Sprintf("https://media.example.com/recipes/%d.jpg", f.uploads), nil
}

func (f *fakeMediaStore) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

// newTestServer wires a Server against in-memory SQLite and miniredis.
// Prometheus middleware is deliberately left out so tests do not fight over
// the default registry.
func newTestServer(t *testing.T) (*Server, *fiber.App, *fakeMediaStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := &fakeMediaStore{}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	s := &Server{
		config:           &config.Config{JWTSecret: "test-secret-key-for-local-testing-only", Env: "test"},
		db:               db,
		redis:            rdb,
		userRepo:         userRepo,
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
		mediaStore:       store,
	}
	s.postService = service.NewPostService(postRepo, commentRepo, userRepo, notificationRepo, store, nil)
	s.feedService = service.NewFeedService(postRepo, userRepo)
	s.userService = service.NewUserService(userRepo, postRepo, store)
	s.notificationService = service.NewNotificationService(notificationRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, store
}

// doJSON performs a request with a JSON body and optional bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
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

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// signupUser registers a user through the API and returns its token and ID.
func signupUser(t *testing.T, app *fiber.App, username string) (string, uint) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token, body.User.ID
}

// createRecipe posts a valid recipe and returns its ID.
func createRecipe(t *testing.T, app *fiber.App, token, title string) uint {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/posts/", token, map[string]any{
		"title":            title,
		"ingredients":      []string{"flour", "water"},
		"categories":       []string{"baking"},
		"description":      "a test recipe",
		"servings":         "4",
		"instructions":     []string{"mix", "bake"},
		"preparation_time": "15m",
		"cooking_time":     "45m",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &post)
	require.NotZero(t, post.ID)
	return post.ID
}
