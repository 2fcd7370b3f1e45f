package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrsuite/hr-backend/internal/api/metrics"
	"github.com/hrsuite/hr-backend/internal/core/domain"
	"github.com/hrsuite/hr-backend/internal/core/ports"
)

// AuditSink is the interface the handlers use to enqueue audit events.
// Recording is best effort and must never block the request path.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}

// AuthHandler handles login, refresh and logout.
type AuthHandler struct {
	authService ports.AuthService
	audit       AuditSink
}

func NewAuthHandler(authService ports.AuthService, audit AuditSink) *AuthHandler {
	return &AuthHandler{authService: authService, audit: audit}
}

// Login authenticates a user and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.audit.Enqueue(domain.AuditEvent{
		Action:    domain.AuditLogin,
		ActorID:   pair.UserID,
		SubjectID: pair.UserID,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, tokenResponse{
		UserID:       pair.UserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh rotates the caller's refresh token and returns a new pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "User id and current refresh token"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.UserID, req.RefreshToken)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidRefreshToken) {
			result = "invalid_token"
		}
		metrics.TokenRefreshTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	h.audit.Enqueue(domain.AuditEvent{
		Action:    domain.AuditTokenRefresh,
		ActorID:   pair.UserID,
		SubjectID: pair.UserID,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, tokenResponse{
		UserID:       pair.UserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout terminates the caller's session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  successResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), principal); err != nil {
		return err
	}

	h.audit.Enqueue(domain.AuditEvent{
		Action:    domain.AuditLogout,
		ActorID:   principal.UserID,
		SubjectID: principal.UserID,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
