package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/guttosm/cargo-quote/config"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/service/cache"
)

const (
	refreshKeyPrefix = "refresh:"
	revokedKeyPrefix = "revoked:"
)

// TokenService provides token-related operations.
type TokenService interface {
	// GenerateTokenPair issues an access and a refresh token for an operator.
	GenerateTokenPair(ctx context.Context, operator, role string) (*dto.TokenPair, error)
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	// ConsumeRefreshToken validates a refresh token and marks it used.
	ConsumeRefreshToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	// InvalidateAccessToken revokes an access token until it expires.
	InvalidateAccessToken(ctx context.Context, tokenString string) error
	// DeleteRefreshToken revokes a refresh token.
	DeleteRefreshToken(ctx context.Context, tokenString string) error
}

// ClaimsWithJWT extends dto.Claims with JWT RegisteredClaims for token generation.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// TokenConfig holds configuration for the token service.
type TokenConfig struct {
	SecretKey        string
	RefreshSecretKey string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
}

// NewTokenConfigFromAuthConfig creates TokenConfig from config.AuthConfig.
func NewTokenConfigFromAuthConfig(authConfig config.AuthConfig) TokenConfig {
	return TokenConfig{
		SecretKey:        authConfig.JWTSecretKey,
		RefreshSecretKey: authConfig.JWTRefreshSecret,
		AccessTokenTTL:   authConfig.AccessTokenTTL,
		RefreshTokenTTL:  authConfig.RefreshTokenTTL,
	}
}

// TokenServiceImpl implements TokenService with HS256 tokens. Refresh token
// IDs and revoked access token IDs live in a TokenStore.
type TokenServiceImpl struct {
	secretKey        []byte
	refreshSecretKey []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	store            cache.TokenStore
	now              func() time.Time
}

// NewTokenService creates a new token service.
func NewTokenService(store cache.TokenStore, cfg TokenConfig) *TokenServiceImpl {
	return &TokenServiceImpl{
		secretKey:        []byte(cfg.SecretKey),
		refreshSecretKey: []byte(cfg.RefreshSecretKey),
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
		store:            store,
		now:              time.Now,
	}
}

// GenerateTokenPair issues an access and a refresh token for an operator.
func (s *TokenServiceImpl) GenerateTokenPair(ctx context.Context, operator, role string) (*dto.TokenPair, error) {
	if operator == "" {
		return nil, errors.New("operator is empty, cannot create token")
	}
	claims := dto.Claims{Operator: operator, Role: role}

	accessToken, _, err := s.sign(claims, s.accessTokenTTL, s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshID, err := s.sign(claims, s.refreshTokenTTL, s.refreshSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := s.store.Put(ctx, refreshKeyPrefix+refreshID, s.refreshTokenTTL); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *TokenServiceImpl) ValidateAccessToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	claims, err := s.parse(tokenString, s.secretKey)
	if err != nil {
		return nil, err
	}

	revoked, err := s.store.Exists(ctx, revokedKeyPrefix+claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenBlacklisted
	}
	return &claims.Claims, nil
}

// ConsumeRefreshToken validates a refresh token and removes it from the
// store, so every refresh token can be used once.
func (s *TokenServiceImpl) ConsumeRefreshToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	claims, err := s.parse(tokenString, s.refreshSecretKey)
	if err != nil {
		return nil, err
	}

	found, err := s.store.Take(ctx, refreshKeyPrefix+claims.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvalidToken
	}
	return &claims.Claims, nil
}

// InvalidateAccessToken revokes an access token until it expires.
func (s *TokenServiceImpl) InvalidateAccessToken(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString, s.secretKey)
	if err != nil {
		return err
	}

	ttl := s.accessTokenTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	return s.store.Put(ctx, revokedKeyPrefix+claims.ID, ttl)
}

// DeleteRefreshToken revokes a refresh token.
func (s *TokenServiceImpl) DeleteRefreshToken(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString, s.refreshSecretKey)
	if err != nil {
		return err
	}
	_, err = s.store.Take(ctx, refreshKeyPrefix+claims.ID)
	return err
}

func (s *TokenServiceImpl) sign(claims dto.Claims, ttl time.Duration, key []byte) (string, string, error) {
	now := s.now()
	id := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsWithJWT{
		Claims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   claims.Operator,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString(key)
	if err != nil {
		return "", "", err
	}
	return signed, id, nil
}

func (s *TokenServiceImpl) parse(tokenString string, key []byte) (*ClaimsWithJWT, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ClaimsWithJWT{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return key, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ClaimsWithJWT)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
