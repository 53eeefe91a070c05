package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	_, app, store := newTestServer(t)
	token, userID := signupUser(t, app, "alice")

	t.Run("Success", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/", token, map[string]any{
			"title":            "Shakshuka",
			"ingredients":      []string{"eggs", "tomatoes"},
			"categories":       []string{"breakfast"},
			"description":      "eggs poached in tomato sauce",
			"servings":         "2",
			"instructions":     []string{"simmer sauce", "crack eggs"},
			"preparation_time": "10m",
			"cooking_time":     "20m",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var post struct {
			ID     uint   `json:"id"`
			UserID uint   `json:"user_id"`
			Title  string `json:"title"`
			Likes  []uint `json:"likes"`
		}
		decodeBody(t, resp, &post)
		assert.Equal(t, userID, post.UserID)
		assert.Equal(t, "Shakshuka", post.Title)
		assert.NotNil(t, post.Likes)
	})

	t.Run("Missing field reports first gap", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/", token, map[string]any{
			"title":       "Incomplete",
			"ingredients": []string{"eggs"},
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "categories is required", body.Error)
	})

	t.Run("With image uploads to media store", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/", token, map[string]any{
			"title":            "Pancakes",
			"image":            "data:image/jpeg;base64,aGVsbG8=",
			"ingredients":      []string{"flour", "milk"},
			"categories":       []string{"breakfast"},
			"description":      "fluffy pancakes",
			"servings":         "4",
			"instructions":     []string{"whisk", "fry"},
			"preparation_time": "5m",
			"cooking_time":     "15m",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var post struct {
			Image *string `json:"image"`
		}
		decodeBody(t, resp, &post)
		require.NotNil(t, post.Image)
		assert.Equal(t, 1, store.uploads)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/", "", map[string]any{"title": "x"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestDeletePost(t *testing.T) {
	_, app, _ := newTestServer(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")
	postID := createRecipe(t, app, aliceToken, "Alice's Pie")

	t.Run("Non-owner forbidden", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), bobToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Owner deletes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), aliceToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Already gone", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), aliceToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/posts/abc", aliceToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestToggleLike(t *testing.T) {
	_, app, _ := newTestServer(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, bobID := signupUser(t, app, "bob")
	postID := createRecipe(t, app, aliceToken, "Alice's Pie")

	path := fmt.Sprintf("/api/posts/%d/like", postID)

	t.Run("Like returns liker set", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, path, bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Likes []uint `json:"likes"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, []uint{bobID}, body.Likes)
	})

	t.Run("Second toggle removes the like", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, path, bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Likes []uint `json:"likes"`
		}
		decodeBody(t, resp, &body)
		assert.Empty(t, body.Likes)
	})

	t.Run("Unknown post", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/9999/like", bobToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateComment(t *testing.T) {
	_, app, _ := newTestServer(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, bobID := signupUser(t, app, "bob")
	postID := createRecipe(t, app, aliceToken, "Alice's Pie")

	path := fmt.Sprintf("/api/posts/%d/comment", postID)

	t.Run("Returns post with the new comment", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, path, bobToken, map[string]string{
			"text": "looks delicious",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var post struct {
			ID       uint `json:"id"`
			Comments []struct {
				Text   string `json:"text"`
				UserID uint   `json:"user_id"`
				User   struct {
					Username string `json:"username"`
				} `json:"user"`
			} `json:"comments"`
		}
		decodeBody(t, resp, &post)
		require.Len(t, post.Comments, 1)
		assert.Equal(t, "looks delicious", post.Comments[0].Text)
		assert.Equal(t, bobID, post.Comments[0].UserID)
		assert.Equal(t, "bob", post.Comments[0].User.Username)
	})

	t.Run("Empty text rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, path, bobToken, map[string]string{"text": "  "})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestFeeds(t *testing.T) {
	_, app, _ := newTestServer(t)
	aliceToken, aliceID := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")
	caraToken, caraID := signupUser(t, app, "cara")

	alicePost := createRecipe(t, app, aliceToken, "Alice's Pie")
	caraPost := createRecipe(t, app, caraToken, "Cara's Stew")

	t.Run("Global feed newest first", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts/", bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []struct {
			ID uint `json:"id"`
		}
		decodeBody(t, resp, &posts)
		require.Len(t, posts, 2)
		assert.Equal(t, caraPost, posts[0].ID)
		assert.Equal(t, alicePost, posts[1].ID)
	})

	t.Run("Following feed only shows followed authors", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", aliceID), bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, "/api/posts/following", bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []struct {
			ID uint `json:"id"`
		}
		decodeBody(t, resp, &posts)
		require.Len(t, posts, 1)
		assert.Equal(t, alicePost, posts[0].ID)
	})

	t.Run("Following feed empty for loner", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts/following", caraToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []any
		decodeBody(t, resp, &posts)
		assert.Empty(t, posts)
	})

	t.Run("User feed by username", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts/user/cara", bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []struct {
			ID uint `json:"id"`
		}
		decodeBody(t, resp, &posts)
		require.Len(t, posts, 1)
		assert.Equal(t, caraPost, posts[0].ID)
	})

	t.Run("User feed unknown username", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts/user/ghost", bobToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Liked feed returns liked set", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", alicePost), caraToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/liked/%d", caraID), bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []struct {
			ID uint `json:"id"`
		}
		decodeBody(t, resp, &posts)
		require.Len(t, posts, 1)
		assert.Equal(t, alicePost, posts[0].ID)
	})

	t.Run("Liked feed empty without likes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/liked/%d", aliceID), bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []any
		decodeBody(t, resp, &posts)
		assert.Empty(t, posts)
	})
}
