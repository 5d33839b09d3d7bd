// Package httpapi exposes the account and post services over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/postkeeper/internal/logging"
	"github.com/dmitrijs2005/postkeeper/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	logger   logging.Logger
	accounts *services.AccountService
	posts    *services.PostService
}

func NewServer(a string, l logging.Logger, as *services.AccountService, ps *services.PostService) *Server {
	return &Server{
		address:  a,
		logger:   l.With("module", "http_server"),
		accounts: as,
		posts:    ps,
	}
}

// Handler builds the route table. Split out from Run so tests can exercise
// the full middleware chain with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /account/signup", s.handleSignUp)
	mux.HandleFunc("POST /account/login", s.handleLogin)
	mux.HandleFunc("GET /account/logout", s.handleLogout)
	mux.HandleFunc("GET /account/renew_token", s.handleRenew)

	mux.HandleFunc("POST /posts/new", s.handlePostCreate)
	mux.HandleFunc("GET /posts/get", s.handlePostGet)
	mux.HandleFunc("GET /posts/get_all", s.handlePostList)
	mux.HandleFunc("POST /posts/edit", s.handlePostEdit)
	mux.HandleFunc("POST /posts/delete", s.handlePostDelete)
	mux.HandleFunc("POST /posts/like", s.rateHandler(true))
	mux.HandleFunc("POST /posts/dislike", s.rateHandler(false))
	mux.HandleFunc("POST /posts/remove_rate", s.handleRemoveRate)

	return s.requestIDMiddleware(s.loggingMiddleware(mux))
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
