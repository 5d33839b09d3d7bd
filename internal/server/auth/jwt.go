// Package auth implements the token service: it owns the process signing key
// and issues and verifies RS256 session tokens. RS256 is used instead of an
// HMAC so a separate verifier service could validate tokens with only the
// public key.
package auth

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeStatus is the outcome of verifying a presented token.
type DecodeStatus int

const (
	// DecodeOK means the signature is valid and the token is not expired.
	DecodeOK DecodeStatus = iota
	// DecodeSignatureExpired means the token is past its exp claim.
	DecodeSignatureExpired
	// DecodeInvalid covers malformed tokens and signature failures. The two
	// are deliberately collapsed so the caller cannot be used as an oracle
	// for which check failed.
	DecodeInvalid
)

// NicknameClaim is the claim key carrying the authenticated identity.
const NicknameClaim = "nickname"

var signingMethods = []string{jwt.SigningMethodRS256.Alg()}

// TokenService issues and verifies session tokens with the process keypair.
type TokenService struct {
	key      *rsa.PrivateKey
	lifespan time.Duration

	// now is a test seam.
	now func() time.Time
}

// NewTokenService loads the signing key from keyFile, generating and
// persisting a keySize-bit keypair on first run. A lifespan of zero means
// issued tokens never expire on their own.
func NewTokenService(keyFile string, keySize int, lifespan time.Duration) (*TokenService, error) {
	key, err := loadOrCreateKey(keyFile, keySize)
	if err != nil {
		return nil, err
	}
	return &TokenService{key: key, lifespan: lifespan, now: time.Now}, nil
}

// Lifespan returns the configured session lifespan (zero means unlimited).
func (s *TokenService) Lifespan() time.Duration {
	return s.lifespan
}

// Issue signs the given claims, adding iat and, if a lifespan is configured,
// exp. The provided map is not modified.
func (s *TokenService) Issue(claims map[string]any) (string, error) {
	now := s.now()

	payload := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		payload[k] = v
	}
	payload["iat"] = now.Unix()
	if s.lifespan != 0 {
		payload["exp"] = now.Add(s.lifespan).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, payload)
	return token.SignedString(s.key)
}

// IssueForNickname issues a token whose only identity claim is the nickname.
func (s *TokenService) IssueForNickname(nickname string) (string, error) {
	return s.Issue(map[string]any{NicknameClaim: nickname})
}

// Decode verifies a token's signature and expiry and returns its claims.
// Only the signature and exp are authenticated; the caller must revalidate
// that the nickname still denotes a real account where that matters.
func (s *TokenService) Decode(tokenString string) (jwt.MapClaims, DecodeStatus) {
	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return &s.key.PublicKey, nil
	}, jwt.WithValidMethods(signingMethods))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, DecodeSignatureExpired
		}
		return nil, DecodeInvalid
	}
	if !token.Valid {
		return nil, DecodeInvalid
	}

	return claims, DecodeOK
}

// Nickname extracts the nickname claim from decoded claims.
func Nickname(claims jwt.MapClaims) (string, bool) {
	nickname, ok := claims[NicknameClaim].(string)
	return nickname, ok && nickname != ""
}

// ExpiryTime returns the exp claim as a time, if present.
func ExpiryTime(claims jwt.MapClaims) (time.Time, bool) {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
