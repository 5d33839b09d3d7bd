// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered user. The nickname is the natural key; the
// password digest and salt are fixed-size byte strings (see cryptox).
// Accounts are created on signup and never mutated afterwards.
type Account struct {
	Nickname     string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}
