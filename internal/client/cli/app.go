// Package cli implements the interactive PostKeeper command-line client.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/postkeeper/internal/client/api"
	"github.com/dmitrijs2005/postkeeper/internal/client/config"
	"github.com/dmitrijs2005/postkeeper/internal/client/models"
)

// apiClient is the command surface the CLI needs from the API client.
// The real api.Client satisfies it; tests can provide a lightweight stub.
type apiClient interface {
	IsLoggedIn() bool
	SignUp(ctx context.Context, nickname string, password []byte) error
	Login(ctx context.Context, nickname string, password []byte) error
	Logout(ctx context.Context) error
	Renew(ctx context.Context) error
	CreatePost(ctx context.Context, title, content string) (int64, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	ListPosts(ctx context.Context, limit int) ([]*models.Post, error)
	EditPost(ctx context.Context, id int64, title, content string) error
	DeletePost(ctx context.Context, id int64) error
	Like(ctx context.Context, id int64) error
	Dislike(ctx context.Context, id int64) error
	RemoveRate(ctx context.Context, id int64) error
}

type App struct {
	config   *config.Config
	api      apiClient
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.NewClient(c),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.IsLoggedIn()
}
