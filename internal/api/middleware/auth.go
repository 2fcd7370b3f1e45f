package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys under which the auth middleware stores verified claims.
const (
	ContextSubject = "sub"
	ContextEmail   = "email"
	ContextRole    = "role"
)

// TokenVerifier holds the settings needed to validate access tokens. It
// mirrors the issuing side's configuration.
type TokenVerifier struct {
	Secret   string
	Issuer   string
	Audience string
}

// Auth validates the bearer JWT and injects its claims into context. The
// subject is stored as the raw claim string; resolving it into a user id is
// the handler layer's job.
func Auth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(v.Secret), nil
			}, jwt.WithIssuer(v.Issuer), jwt.WithAudience(v.Audience), jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextSubject, claims["sub"])
			c.Set(ContextEmail, claims["email"])
			c.Set(ContextRole, claims["role"])

			return next(c)
		}
	}
}
