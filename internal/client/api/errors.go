package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")
	// ErrNotLoggedIn means an authenticated call was made without a token.
	ErrNotLoggedIn = errors.New("not logged in")
)

// StatusError is a non-OK status returned by the server API.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %s (HTTP %d)", e.Status, e.Code)
}
