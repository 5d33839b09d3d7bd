// Package validate contains shared input-shape checks for nicknames, posts,
// ids and list limits. The bounds mirror the stored schema and are part of
// the client-visible contract.
package validate

import (
	"regexp"
	"unicode/utf8"
)

const (
	MinNicknameLength = 4
	MaxNicknameLength = 16

	MinTitleLength   = 3
	MaxTitleLength   = 50
	MaxContentLength = 500

	// MaxReceiveLimit caps how many posts a single list request may fetch.
	MaxReceiveLimit = 400
)

// Alphanumeric runs separated by single underscores; no leading/trailing
// underscore, no doubled underscores. Length is checked separately since
// RE2 has no lookahead.
var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+(?:_[a-zA-Z0-9]+)*$`)

// CheckNickname reports whether nickname is well-formed.
func CheckNickname(nickname string) bool {
	if len(nickname) < MinNicknameLength || len(nickname) > MaxNicknameLength {
		return false
	}
	return nicknamePattern.MatchString(nickname)
}

// CheckPost reports whether a title/content pair is acceptable. An empty
// field counts as absent; at least one of the two must be present, and each
// present field must satisfy its length bounds.
func CheckPost(title, content string) bool {
	if title == "" && content == "" {
		return false
	}
	if title != "" {
		n := utf8.RuneCountInString(title)
		if n < MinTitleLength || n > MaxTitleLength {
			return false
		}
	}
	if content != "" {
		if utf8.RuneCountInString(content) > MaxContentLength {
			return false
		}
	}
	return true
}

// CheckID reports whether id is a valid post identifier.
func CheckID(id int64) bool {
	return id >= 1
}

// CheckLimit reports whether limit is a valid post list limit.
func CheckLimit(limit int) bool {
	return limit >= 1 && limit <= MaxReceiveLimit
}
