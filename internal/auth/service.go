// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/crypto"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
)

// UserRepository is the admin account storage used by Service.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	RecordLoginSuccess(ctx context.Context, id uuid.UUID, at time.Time) error
	RecordLoginFailure(ctx context.Context, id uuid.UUID, lockedUntil *time.Time) error
}

// RevocationStore remembers revoked token IDs until they would expire anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Config configures token issuance.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	Issuer    string
}

const minSecretLen = 32

// Claims are the access token claims.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Service verifies admin credentials and issues and validates access tokens.
type Service struct {
	users       UserRepository
	revocations RevocationStore
	cfg         Config
	log         *logger.Logger
	now         func() time.Time
}

// NewService creates the auth service.
func NewService(users UserRepository, revocations RevocationStore, cfg Config, log *logger.Logger) (*Service, error) {
	if len(cfg.JWTSecret) < minSecretLen {
		return nil, fmt.Errorf("auth: jwt secret must be at least %d bytes", minSecretLen)
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "ozanparquet"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		users:       users,
		revocations: revocations,
		cfg:         cfg,
		log:         log.Named("auth"),
		now:         time.Now,
	}, nil
}

// TokenTTL returns the access token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.cfg.TokenTTL
}

// Authenticate checks an email and password. Unknown emails and wrong
// passwords both yield InvalidCredentials. Consecutive failures lock the
// account for models.LockoutDuration.
func (s *Service) Authenticate(ctx context.Context, cred Credential) (*models.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(cred.Email))
	if email == "" || cred.Password == "" {
		return nil, apperrors.InvalidCredentials()
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, err
	}

	now := s.now()
	if user.IsLocked(now) {
		return nil, apperrors.Forbidden("account is temporarily locked")
	}

	if !crypto.CheckPassword(cred.Password, user.PasswordHash) {
		var lockedUntil *time.Time
		if user.FailedLoginAttempts+1 >= models.MaxFailedLogins {
			t := now.Add(models.LockoutDuration)
			lockedUntil = &t
			s.log.Warn("admin account locked", "user_id", user.ID)
		}
		if err := s.users.RecordLoginFailure(ctx, user.ID, lockedUntil); err != nil {
			s.log.Error("failed to record login failure", "user_id", user.ID, "error", err)
		}
		return nil, apperrors.InvalidCredentials()
	}

	if !user.IsAdmin() {
		return nil, apperrors.Forbidden("account has no admin access")
	}

	if err := s.users.RecordLoginSuccess(ctx, user.ID, now); err != nil {
		s.log.Error("failed to record login", "user_id", user.ID, "error", err)
	}
	return user, nil
}

// IssueToken signs an access token for user.
func (s *Service) IssueToken(user *models.AdminUser) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		Email: user.Email,
		Name:  user.FullName,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to sign token")
	}
	return signed, claims, nil
}

// ParseToken validates signature, issuer, expiry and revocation.
func (s *Service) ParseToken(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return []byte(s.cfg.JWTSecret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewWithStatus(apperrors.CodeSessionExpired, "session expired", http.StatusUnauthorized)
		}
		return nil, apperrors.WrapWithStatus(err, apperrors.CodeUnauthorized, "invalid token", http.StatusUnauthorized)
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeServiceUnavailable, "failed to check token revocation")
	}
	if revoked {
		return nil, apperrors.Unauthorized("token revoked")
	}
	return claims, nil
}

// RevokeToken blocks the token until its natural expiry.
func (s *Service) RevokeToken(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Sub(s.now()); remaining > 0 {
			ttl = remaining
		}
	}
	return s.revocations.Revoke(ctx, claims.ID, ttl)
}

// AdminFromClaims reloads the account named by claims and confirms it still
// has admin access.
func (s *Service) AdminFromClaims(ctx context.Context, claims *Claims) (*Admin, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token subject")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.Unauthorized("account no longer exists")
		}
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, apperrors.Forbidden("account has no admin access")
	}
	return ToAdmin(user), nil
}

// ToAdmin converts an account to the view-facing Admin.
func ToAdmin(u *models.AdminUser) *Admin {
	return &Admin{ID: u.ID, Email: u.Email, FullName: u.FullName}
}
