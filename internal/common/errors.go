// Package common defines shared constants and sentinel errors used across
// PostKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Signing key lifecycle errors.
	ErrCorruptKeyFile = errors.New("corrupt key file")
)
