package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hrsuite/hr-backend/internal/api/middleware"
	"github.com/hrsuite/hr-backend/internal/core/domain"
)

// ctxPrincipal turns the claims injected by the Auth middleware into a
// resolved caller identity. A missing subject or one that does not parse as
// a user id means the caller is not authenticated — fail with 401 before any
// service call.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	sub, _ := c.Get(middleware.ContextSubject).(string)
	if sub == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id, err := strconv.Atoi(sub)
	if err != nil || id <= 0 {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "malformed subject claim")
	}

	email, _ := c.Get(middleware.ContextEmail).(string)
	role, _ := c.Get(middleware.ContextRole).(string)

	return domain.Principal{UserID: id, Email: email, Role: domain.Role(role)}, nil
}
