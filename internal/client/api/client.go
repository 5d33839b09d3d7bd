// Package api implements the HTTP client for the PostKeeper server API.
// It keeps the session token acquired at signup/login and attaches it to
// every authenticated request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/postkeeper/internal/client/config"
	"github.com/dmitrijs2005/postkeeper/internal/client/models"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.ServerEndpointAddr,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string {
	return c.token
}

// IsLoggedIn reports whether a session token is held.
func (c *Client) IsLoggedIn() bool {
	return c.token != ""
}

type credentialsRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type postRequest struct {
	ID      int64  `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

type postIDResponse struct {
	ID int64 `json:"id"`
}

type postResponse struct {
	Post *models.Post `json:"post"`
}

type postListResponse struct {
	Posts []*models.Post `json:"posts"`
}

// call performs one API request. A non-2xx response is decoded into a
// StatusError; a transport failure maps to ErrUnavailable. When out is
// non-nil the response body is decoded into it.
func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var sr statusResponse
		_ = json.NewDecoder(resp.Body).Decode(&sr)
		return &StatusError{Code: resp.StatusCode, Status: sr.Status}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) authenticated() error {
	if c.token == "" {
		return ErrNotLoggedIn
	}
	return nil
}

// SignUp registers a new account and stores the returned session token.
func (c *Client) SignUp(ctx context.Context, nickname string, password []byte) error {
	var resp tokenResponse
	err := c.call(ctx, http.MethodPost, "/account/signup",
		credentialsRequest{Nickname: nickname, Password: string(password)}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, nickname string, password []byte) error {
	var resp tokenResponse
	err := c.call(ctx, http.MethodPost, "/account/login",
		credentialsRequest{Nickname: nickname, Password: string(password)}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// Logout revokes the session token. The local token is dropped even when the
// server rejects the call, so a stale client can always start over.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.authenticated(); err != nil {
		return err
	}
	err := c.call(ctx, http.MethodGet, "/account/logout", nil, nil)
	c.token = ""
	return err
}

// Renew swaps the session token for a fresh one.
func (c *Client) Renew(ctx context.Context) error {
	if err := c.authenticated(); err != nil {
		return err
	}
	var resp tokenResponse
	if err := c.call(ctx, http.MethodGet, "/account/renew_token", nil, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// CreatePost publishes a post and returns its id.
func (c *Client) CreatePost(ctx context.Context, title, content string) (int64, error) {
	if err := c.authenticated(); err != nil {
		return 0, err
	}
	var resp postIDResponse
	err := c.call(ctx, http.MethodPost, "/posts/new", postRequest{Title: title, Content: content}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// GetPost fetches a single post with its rating sets. Posts are public, so
// no session is required.
func (c *Client) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var resp postResponse
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/posts/get?id=%d", id), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Post, nil
}

// ListPosts fetches up to limit posts, newest first. Posts are public, so
// no session is required.
func (c *Client) ListPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	var resp postListResponse
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/posts/get_all?limit=%d", limit), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// EditPost updates the given fields of the caller's own post. Empty fields
// are left unchanged.
func (c *Client) EditPost(ctx context.Context, id int64, title, content string) error {
	if err := c.authenticated(); err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, "/posts/edit", postRequest{ID: id, Title: title, Content: content}, nil)
}

// DeletePost removes the caller's own post.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	if err := c.authenticated(); err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, "/posts/delete", postRequest{ID: id}, nil)
}

// Like records a like on someone else's post.
func (c *Client) Like(ctx context.Context, id int64) error {
	if err := c.authenticated(); err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, "/posts/like", postRequest{ID: id}, nil)
}

// Dislike records a dislike on someone else's post.
func (c *Client) Dislike(ctx context.Context, id int64) error {
	if err := c.authenticated(); err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, "/posts/dislike", postRequest{ID: id}, nil)
}

// RemoveRate withdraws the caller's vote from a post.
func (c *Client) RemoveRate(ctx context.Context, id int64) error {
	if err := c.authenticated(); err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, "/posts/remove_rate", postRequest{ID: id}, nil)
}
