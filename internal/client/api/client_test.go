package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/postkeeper/internal/client/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.Config{ServerEndpointAddr: srv.URL, RequestTimeout: time.Second})
}

func TestLogin_StoresToken(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/account/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req["nickname"])
		assert.Equal(t, "password1", req["password"])

		json.NewEncoder(w).Encode(map[string]string{"status": "OK", "token": "tok-1"})
	}))

	require.NoError(t, c.Login(context.Background(), "alice", []byte("password1")))
	assert.True(t, c.IsLoggedIn())
	assert.Equal(t, "tok-1", c.Token())
}

func TestAuthenticatedCall_SendsBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/account/login" {
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
			return
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"status": "OK", "id": 7})
	}))

	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "alice", []byte("password1")))

	id, err := c.CreatePost(ctx, "hello", "content")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestCall_NonOKBecomesStatusError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"status": "USER_EXISTS"})
	}))

	err := c.SignUp(context.Background(), "alice", []byte("password1"))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.Code)
	assert.Equal(t, "USER_EXISTS", statusErr.Status)
	assert.False(t, c.IsLoggedIn())
}

func TestCall_TransportFailure(t *testing.T) {
	t.Parallel()

	c := NewClient(&config.Config{ServerEndpointAddr: "http://127.0.0.1:1", RequestTimeout: time.Second})

	err := c.Login(context.Background(), "alice", []byte("password1"))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestAuthenticatedCalls_RequireLogin(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should reach the server")
	}))

	ctx := context.Background()
	_, err := c.CreatePost(ctx, "hello", "content")
	require.ErrorIs(t, err, ErrNotLoggedIn)
	require.ErrorIs(t, c.Like(ctx, 1), ErrNotLoggedIn)
	require.ErrorIs(t, c.Logout(ctx), ErrNotLoggedIn)
}

func TestPublicReads_WorkWithoutLogin(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"posts":  []map[string]any{{"id": 1, "author": "alice", "title": "hello"}},
			"post":   map[string]any{"id": 1, "author": "alice", "title": "hello"},
		})
	}))

	ctx := context.Background()

	posts, err := c.ListPosts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post, err := c.GetPost(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", post.Author)
}

func TestLogout_DropsTokenEvenOnServerError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/account/login" {
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"status": "TOKEN_EXPIRED"})
	}))

	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "alice", []byte("password1")))

	err := c.Logout(ctx)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.False(t, c.IsLoggedIn())
}

func TestGetPost_DecodesPayload(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/account/login" {
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
			return
		}
		require.Equal(t, "5", r.URL.Query().Get("id"))
		json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"post": map[string]any{
				"id": 5, "author": "alice", "title": "hello", "content": "body",
				"likes": []string{"bobby"}, "dislikes": []string{},
			},
		})
	}))

	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "alice", []byte("password1")))

	post, err := c.GetPost(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), post.ID)
	assert.Equal(t, "alice", post.Author)
	assert.Equal(t, []string{"bobby"}, post.Likes)
}
