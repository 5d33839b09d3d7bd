// Package services contains server-side business logic. This file implements
// AccountService: signup, login, logout, token renewal and the session
// validation pipeline that gates every authenticated operation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/cryptox"
	"github.com/dmitrijs2005/postkeeper/internal/server/auth"
	"github.com/dmitrijs2005/postkeeper/internal/server/config"
	"github.com/dmitrijs2005/postkeeper/internal/server/models"
	"github.com/dmitrijs2005/postkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/postkeeper/internal/server/session"
	"github.com/dmitrijs2005/postkeeper/internal/server/validate"
)

// unboundedRetention is how long a revocation entry is kept for tokens that
// carry no exp claim; such tokens never expire on their own, so their entries
// must never become eligible for the lazy purge.
const unboundedRetention = 100 * 365 * 24 * time.Hour

// AccountService provides authentication-related operations:
//   - SignUp: create an account and open its first session
//   - Login: verify credentials and mint a token
//   - Logout: revoke a token so the stateless credential stops working
//   - Renew: rotate a token before it expires
//   - Validate: the full token validation pipeline
type AccountService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	tokens     *auth.TokenService
	registry   *session.Registry
	ips        *session.IPBindings
	validateIP bool
}

// NewAccountService constructs an AccountService from its collaborators and
// server config.
func NewAccountService(db *sql.DB, repos repomanager.RepositoryManager, tokens *auth.TokenService,
	registry *session.Registry, ips *session.IPBindings, cfg *config.Config) *AccountService {
	return &AccountService{
		db:         db,
		repos:      repos,
		tokens:     tokens,
		registry:   registry,
		ips:        ips,
		validateIP: cfg.ValidateSessionIP,
	}
}

// SignUp registers a new account and returns its first session token.
func (s *AccountService) SignUp(ctx context.Context, nickname, password string) (string, Status) {
	if !validate.CheckNickname(nickname) {
		return "", StatusInvalidNickname
	}

	repo := s.repos.Accounts(s.db)

	if _, err := repo.GetByNickname(ctx, nickname); err == nil {
		return "", StatusUserExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return "", StatusUnknownError
	}
	if s.registry.ActiveCount(nickname) > 0 {
		return "", StatusUserExists
	}

	salt := cryptox.NewSalt()
	account := &models.Account{
		Nickname:     nickname,
		PasswordHash: cryptox.HashPassword(password, salt),
		Salt:         salt,
	}
	if err := repo.Create(ctx, account); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", StatusUserExists
		}
		return "", StatusUnknownError
	}

	return s.openSession(nickname)
}

// Login verifies the nickname/password pair and opens a new session. The
// session cap is checked before the credentials, so a capped nickname is
// rejected with StatusMaxSessions even for a wrong password.
func (s *AccountService) Login(ctx context.Context, nickname, password string) (string, Status) {
	if !validate.CheckNickname(nickname) {
		return "", StatusInvalidNickname
	}
	if !s.registry.CanOpen(nickname) {
		return "", StatusMaxSessions
	}

	account, err := s.repos.Accounts(s.db).GetByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", StatusInvalidCredentials
		}
		return "", StatusUnknownError
	}

	if !cryptox.VerifyPassword(password, account.Salt, account.PasswordHash) {
		return "", StatusInvalidCredentials
	}

	return s.openSession(nickname)
}

// Logout revokes the presented token and retires it from the registry.
func (s *AccountService) Logout(ctx context.Context, token, origin string) Status {
	nickname, claims, st := s.validate(ctx, token, origin)
	if st != StatusOK {
		return st
	}

	if err := s.repos.RevokedTokens(s.db).Revoke(ctx, token, s.revocationExpiry(claims)); err != nil {
		return StatusUnknownError
	}
	s.registry.Remove(nickname, token)
	s.ips.Forget(token)

	return StatusOK
}

// Renew issues a fresh token for the identity carried by the presented one
// and revokes the old token, keeping the session count unchanged.
func (s *AccountService) Renew(ctx context.Context, token, origin string) (string, Status) {
	nickname, claims, st := s.validate(ctx, token, origin)
	if st != StatusOK {
		return "", st
	}

	newToken, err := s.tokens.IssueForNickname(nickname)
	if err != nil {
		return "", StatusUnknownError
	}
	if err := s.repos.RevokedTokens(s.db).Revoke(ctx, token, s.revocationExpiry(claims)); err != nil {
		return "", StatusUnknownError
	}

	s.registry.Remove(nickname, token)
	s.ips.Forget(token)
	s.registry.Record(nickname, newToken)

	return newToken, StatusOK
}

// Validate runs the token validation pipeline and returns the authenticated
// nickname.
func (s *AccountService) Validate(ctx context.Context, token, origin string) (string, Status) {
	nickname, _, st := s.validate(ctx, token, origin)
	return nickname, st
}

// validate is the pipeline behind every authenticated call:
//
//  1. revocation list lookup — revocation always wins, even over a token
//     that would still verify cryptographically;
//  2. signature/expiry verification, with the revocation list lazily purged
//     when an expired signature is detected;
//  3. optional IP pinning — a token seen from a second origin is treated as
//     leaked and revoked on the spot.
func (s *AccountService) validate(ctx context.Context, token, origin string) (string, jwt.MapClaims, Status) {
	revokedRepo := s.repos.RevokedTokens(s.db)

	revoked, err := revokedRepo.IsRevoked(ctx, token)
	if err != nil {
		return "", nil, StatusUnknownError
	}
	if revoked {
		return "", nil, StatusTokenExpired
	}

	claims, decodeStatus := s.tokens.Decode(token)
	switch decodeStatus {
	case auth.DecodeSignatureExpired:
		// The request is already rejected; use the occasion to garbage
		// collect stale revocation entries. Best effort.
		_ = revokedRepo.PurgeExpired(ctx)
		return "", nil, StatusTokenExpired
	case auth.DecodeInvalid:
		return "", nil, StatusInvalidToken
	}

	nickname, ok := auth.Nickname(claims)
	if !ok {
		return "", nil, StatusInvalidToken
	}

	if s.validateIP {
		bound, _ := s.ips.Bind(token, origin)
		if bound != origin {
			_ = revokedRepo.Revoke(ctx, token, s.revocationExpiry(claims))
			s.registry.Remove(nickname, token)
			return "", nil, StatusIPMismatch
		}
	}

	return nickname, claims, StatusOK
}

func (s *AccountService) openSession(nickname string) (string, Status) {
	token, err := s.tokens.IssueForNickname(nickname)
	if err != nil {
		return "", StatusUnknownError
	}
	s.registry.Record(nickname, token)
	return token, StatusOK
}

// revocationExpiry picks how long a revocation entry must be retained: until
// the token's own expiry when it has one, effectively forever otherwise.
func (s *AccountService) revocationExpiry(claims jwt.MapClaims) time.Time {
	if exp, ok := auth.ExpiryTime(claims); ok {
		return exp
	}
	return time.Now().Add(unboundedRetention)
}
