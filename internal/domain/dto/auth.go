// Package dto defines Data Transfer Objects for authentication.
package dto

import "strings"

// LoginRequest represents the JSON request body for the operator login endpoint.
//
// @Description Request to authenticate an operator
// @Example {"operator": "anna", "password": "secret123"}
type LoginRequest struct {
	// Operator is the configured operator name.
	Operator string `json:"operator" binding:"required" example:"anna"`
	// Password is the operator's password.
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
} // @name LoginRequest

// LoginResponse represents the JSON response body for the login endpoint.
//
// @Description Successful authentication response with JWT tokens
type LoginResponse struct {
	// Token is the JWT access token.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// RefreshToken is the single-use JWT refresh token.
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in" example:"900"`
	// Operator contains the authenticated operator.
	Operator OperatorResponse `json:"operator"`
} // @name LoginResponse

// RefreshTokenRequest carries a refresh token. The X-Refresh-Token header
// takes precedence over the body.
//
// @Description Request to exchange a refresh token for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
} // @name RefreshTokenRequest

// TokenPair represents access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// Claims are the operator claims carried by a token.
type Claims struct {
	Operator string `json:"operator"`
	Role     string `json:"role"`
}

// HasRole reports whether the claims grant role. Admins hold every role.
func (c *Claims) HasRole(role string) bool {
	if c == nil {
		return false
	}
	return c.Role == role || c.Role == RoleAdmin
}

const (
	// RoleAdmin may import tariffs, record rates and read history.
	RoleAdmin = "admin"
	// RoleViewer may only request quotes and read reference data.
	RoleViewer = "viewer"
)

// OperatorResponse represents operator information in API responses.
type OperatorResponse struct {
	Name string `json:"name" example:"anna"`
	Role string `json:"role" example:"admin"`
} // @name OperatorResponse

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Operator) == "" {
		return &ValidationError{
			Field:   "operator",
			Message: "operator is required",
		}
	}
	if len(r.Password) < 6 {
		return &ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters",
		}
	}
	return nil
}
