package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/cargo-quote/config"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/service/cache"
)

var (
	// ErrInvalidCredentials is returned when the operator name or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid operator or password")
	// ErrInvalidToken is returned when token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenBlacklisted is returned when token was revoked.
	ErrTokenBlacklisted = errors.New("token is blacklisted")
)

// TokenPair and Claims live in the dto package to avoid import cycles.
type TokenPair = dto.TokenPair
type Claims = dto.Claims

// AuthService provides operator authentication.
type AuthService interface {
	Login(ctx context.Context, operator, password string) (*dto.TokenPair, *dto.Claims, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// AuthServiceImpl implements AuthService over the configured operator list.
// It delegates token operations to TokenService.
type AuthServiceImpl struct {
	operators    map[string]config.Operator
	tokenService TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(authConfig config.AuthConfig, store cache.TokenStore) AuthService {
	return NewAuthServiceWithTokenService(authConfig.Operators, NewTokenService(store, NewTokenConfigFromAuthConfig(authConfig)))
}

// NewAuthServiceWithTokenService creates a new authentication service with an existing TokenService.
func NewAuthServiceWithTokenService(operators []config.Operator, tokenService TokenService) AuthService {
	byName := make(map[string]config.Operator, len(operators))
	for _, op := range operators {
		byName[strings.ToLower(op.Name)] = op
	}
	return &AuthServiceImpl{
		operators:    byName,
		tokenService: tokenService,
	}
}

// unknownOperatorHash is compared against when the operator does not exist,
// so both failure paths cost one bcrypt comparison.
var unknownOperatorHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("cargo-quote"), bcrypt.DefaultCost)
	return hash
})

func (s *AuthServiceImpl) lookup(name string) (config.Operator, bool) {
	op, ok := s.operators[strings.ToLower(strings.TrimSpace(name))]
	return op, ok
}

// Login verifies the operator's password and returns JWT tokens.
func (s *AuthServiceImpl) Login(ctx context.Context, operator, password string) (*dto.TokenPair, *dto.Claims, error) {
	op, ok := s.lookup(operator)
	if !ok {
		_ = bcrypt.CompareHashAndPassword(unknownOperatorHash(), []byte(password))
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		log.Info().Str("operator", op.Name).Msg("operator login rejected")
		return nil, nil, ErrInvalidCredentials
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, op.Name, op.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token pair: %w", err)
	}
	return tokenPair, &dto.Claims{Operator: op.Name, Role: op.Role}, nil
}

// RefreshToken exchanges a refresh token for a new pair. The role is taken
// from the current configuration, so a removed operator cannot refresh.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := s.tokenService.ConsumeRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	op, ok := s.lookup(claims.Operator)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return s.tokenService.GenerateTokenPair(ctx, op.Name, op.Role)
}

func (s *AuthServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	return s.tokenService.ValidateAccessToken(ctx, tokenString)
}

// Logout revokes whichever of the two tokens is given. Both revocations are
// attempted even if the first one fails.
func (s *AuthServiceImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	steps := []struct {
		token  string
		what   string
		revoke func(context.Context, string) error
	}{
		{accessToken, "access token", s.tokenService.InvalidateAccessToken},
		{refreshToken, "refresh token", s.tokenService.DeleteRefreshToken},
	}

	var errs []error
	for _, step := range steps {
		if step.token == "" {
			continue
		}
		if err := step.revoke(ctx, step.token); err != nil {
			log.Warn().Err(err).Str("token", step.what).Msg("logout: revoke failed")
			errs = append(errs, fmt.Errorf("revoke %s: %w", step.what, err))
		}
	}
	return errors.Join(errs...)
}
