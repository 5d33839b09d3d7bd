package models

import "time"

// RevokedToken is a server-side invalidation record for an otherwise
// stateless session token. Expires is the token's own expiry when known;
// entries past it are eligible for lazy garbage collection.
type RevokedToken struct {
	Token   string
	Expires time.Time
}
