package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
)

const AccessCookie = "accessToken"

func tokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(AccessCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireAdmin admits requests carrying a valid access token with the admin role.
func RequireAdmin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "require_admin")

			raw := tokenFromRequest(c)
			if raw == "" {
				l.Warn("auth_error", "status", 401, "reason", "missing token")
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			claims, err := AccessClaimsFromToken(raw, secret)
			if err != nil {
				l.Warn("auth_error", "status", 401, "reason", "invalid token", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			if claims.Role != RoleAdmin {
				l.Warn("auth_error", "status", 403, "reason", "not admin", "sub", claims.Subject)
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}

			c.Set("user_id", claims.Subject)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
