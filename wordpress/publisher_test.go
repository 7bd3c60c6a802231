package wordpress_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkorzen/draftpipe"
	"github.com/pkorzen/draftpipe/wordpress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArticle() *draftpipe.GeneratedArticle {
	return &draftpipe.GeneratedArticle{
		Title:           "Growing Tomatoes",
		Slug:            "growing-tomatoes",
		MetaDescription: "Everything about tomatoes.",
		HTML:            `<h2>Intro</h2><p>Body.</p><script>bad()</script>`,
	}
}

func testConfig(baseURL string) wordpress.Config {
	return wordpress.Config{
		BaseURL:     baseURL,
		Username:    "editor",
		AppPassword: "abcd efgh",
	}
}

func TestNewPublisher(t *testing.T) {
	t.Parallel()

	t.Run("rejects missing configuration", func(t *testing.T) {
		t.Parallel()

		_, err := wordpress.NewPublisher(wordpress.Config{Username: "editor"})
		require.Error(t, err)
		assert.Equal(t, draftpipe.EINVALID, draftpipe.ErrorCode(err))
		assert.Contains(t, draftpipe.ErrorMessage(err), "base URL")
		assert.Contains(t, draftpipe.ErrorMessage(err), "application password")
	})

	t.Run("accepts a complete configuration", func(t *testing.T) {
		t.Parallel()

		p, err := wordpress.NewPublisher(testConfig("https://blog.example.com/"))
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	t.Run("creates a draft post", func(t *testing.T) {
		t.Parallel()

		var path string
		var payload map[string]string
		var user, pass string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			user, pass, _ = r.BasicAuth()
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id": 123, "link": "https://blog.example.com/?p=123"}`))
		}))
		defer server.Close()

		p, err := wordpress.NewPublisher(testConfig(server.URL))
		require.NoError(t, err)

		result, err := p.Publish(context.Background(), testArticle())
		require.NoError(t, err)

		assert.Equal(t, 123, result.PostID)
		assert.Equal(t, "https://blog.example.com/?p=123", result.PostURL)
		assert.Equal(t, "/wp-json/wp/v2/posts", path)
		assert.Equal(t, "editor", user)
		assert.Equal(t, "abcd efgh", pass)
		assert.Equal(t, "Growing Tomatoes", payload["title"])
		assert.Equal(t, "draft", payload["status"])
		assert.Equal(t, "growing-tomatoes", payload["slug"])
		assert.Equal(t, "Everything about tomatoes.", payload["excerpt"])
		assert.NotContains(t, payload["content"], "script")
	})

	t.Run("does not retry authentication failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		p, err := wordpress.NewPublisher(testConfig(server.URL))
		require.NoError(t, err)

		_, err = p.Publish(context.Background(), testArticle())
		require.Error(t, err)
		assert.Equal(t, draftpipe.EUNAUTHORIZED, draftpipe.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("retries a transient server error once", func(t *testing.T) {
		t.Parallel()

		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"id": 7, "link": "https://blog.example.com/?p=7"}`))
		}))
		defer server.Close()

		p, err := wordpress.NewPublisher(testConfig(server.URL))
		require.NoError(t, err)

		result, err := p.Publish(context.Background(), testArticle())
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, 7, result.PostID)
	})

	t.Run("surfaces persistent server errors with detail", func(t *testing.T) {
		t.Parallel()

		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code":"internal_server_error"}`))
		}))
		defer server.Close()

		p, err := wordpress.NewPublisher(testConfig(server.URL))
		require.NoError(t, err)

		_, err = p.Publish(context.Background(), testArticle())
		require.Error(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, draftpipe.EUNAVAILABLE, draftpipe.ErrorCode(err))
		assert.Contains(t, err.Error(), "internal_server_error")
	})

	t.Run("rejects incomplete articles without calling the API", func(t *testing.T) {
		t.Parallel()

		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		p, err := wordpress.NewPublisher(testConfig(server.URL))
		require.NoError(t, err)

		_, err = p.Publish(context.Background(), &draftpipe.GeneratedArticle{Title: "no body"})
		require.Error(t, err)
		assert.Equal(t, draftpipe.EINVALID, draftpipe.ErrorCode(err))
		assert.Equal(t, 0, calls)
	})

	t.Run("fails on a response without a post ID", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		p, err := wordpress.NewPublisher(testConfig(server.URL))
		require.NoError(t, err)

		_, err = p.Publish(context.Background(), testArticle())
		require.Error(t, err)
		assert.Equal(t, draftpipe.EINTERNAL, draftpipe.ErrorCode(err))
	})
}
