// Package cryptox implements credential hashing: salted SHA-512 digests and
// constant-time verification.
//
// The digest layout (SHA-512 over password||salt, 32-byte random salt) is a
// compatibility contract with already-stored account rows; do not change it
// without a data migration.
package cryptox

import (
	"crypto/sha512"
	"crypto/subtle"

	"github.com/dmitrijs2005/postkeeper/internal/common"
)

// SaltSize is the number of random bytes in a password salt.
const SaltSize = 32

// HashSize is the size of a password digest.
const HashSize = sha512.Size

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashPassword returns the SHA-512 digest of password||salt.
func HashPassword(password string, salt []byte) []byte {
	h := sha512.New()
	h.Write([]byte(password))
	h.Write(salt)
	return h.Sum(nil)
}

// VerifyPassword reports whether candidate hashes to the stored digest under
// the given salt. The comparison is constant-time.
func VerifyPassword(candidate string, salt, digest []byte) bool {
	sum := HashPassword(candidate, salt)
	return subtle.ConstantTimeCompare(sum, digest) == 1
}
