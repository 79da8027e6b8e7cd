package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/i18n"
	"github.com/guttosm/cargo-quote/internal/middleware"
	"github.com/guttosm/cargo-quote/internal/service"
)

// AuthHandler provides HTTP handlers for operator authentication routes.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Token handles POST /api/auth/token requests.
//
// @Summary      Issue operator tokens
// @Description  Authenticates a configured operator and returns a JWT access and refresh token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Operator credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.LoginRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	tokenPair, claims, err := h.authService.Login(c.Request.Context(), req.Operator, req.Password)
	if err != nil {
		auditError(c, model.ActionLogin, "Failed login attempt", err, map[string]interface{}{
			"operator": req.Operator,
		})
		if errors.Is(err, service.ErrInvalidCredentials) {
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	c.Set(middleware.ContextKeyOperator, claims.Operator)
	c.Set(middleware.ContextKeyRole, claims.Role)
	audit(c, model.ActionLogin, "Operator logged in", nil)

	builder.SuccessOK(dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		Operator: dto.OperatorResponse{
			Name: claims.Operator,
			Role: claims.Role,
		},
	})
}

// RefreshToken handles POST /api/auth/refresh requests.
//
// @Summary      Refresh access token
// @Description  Exchanges a single-use refresh token for a new token pair. The token is read from the X-Refresh-Token header or the request body.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        X-Refresh-Token header string false "Refresh token"
// @Param        request body dto.RefreshTokenRequest false "Refresh token"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful token refresh"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid refresh token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	builder := NewResponseBuilder(c)

	refreshToken := refreshTokenFrom(c)
	if refreshToken == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyTokenRequired, nil)
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenBlacklisted) {
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidToken, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

// Logout handles POST /api/auth/logout requests.
//
// @Summary      Logout operator
// @Description  Revokes the access token from the Authorization header and, when given, the refresh token from X-Refresh-Token
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization header string true "Bearer token" default(Bearer )
// @Param        X-Refresh-Token header string false "Refresh token"
// @Success      200 {object} dto.SuccessResponse "Successful logout"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	accessToken, ok := middleware.BearerToken(c)
	if !ok {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyTokenRequired, nil)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), accessToken, c.GetHeader(middleware.RefreshTokenHeader)); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidToken, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	audit(c, model.ActionLogout, "Operator logged out", nil)

	builder.SuccessOK(map[string]string{"message": "Logged out successfully"})
}

// Me handles GET /api/auth/me requests.
//
// @Summary      Current operator
// @Description  Returns the operator and role of the presented access token
// @Tags         Auth
// @Produce      json
// @Param        Authorization header string true "Bearer token" default(Bearer )
// @Success      200 {object} dto.SuccessResponse{data=dto.OperatorResponse} "Authenticated operator"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	builder := NewResponseBuilder(c)

	operator, role := middleware.OperatorFromContext(c)
	if operator == "" {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyUnauthorized, nil)
		return
	}
	builder.SuccessOK(dto.OperatorResponse{Name: operator, Role: role})
}

// refreshTokenFrom reads the refresh token from the header, then the body.
func refreshTokenFrom(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(middleware.RefreshTokenHeader)); token != "" {
		return token
	}
	var req dto.RefreshTokenRequest
	if c.Request.ContentLength != 0 && c.ShouldBindJSON(&req) == nil {
		return strings.TrimSpace(req.RefreshToken)
	}
	return ""
}
