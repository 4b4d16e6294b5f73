package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accountd/account-api/internal/api/metrics"
	"github.com/accountd/account-api/internal/core/domain"
)

// Messages emitted by the authorization gates.
const (
	msgAuthRequired = "Authentication required"
	msgInsufficient = "Insufficient permissions"
	msgUserOnly     = "Only for current user. Data protected"
)

type messageResponse struct {
	Message string `json:"message"`
}

// Each gate terminates the chain itself on failure: it writes the error
// response and never invokes the downstream handler.

// IsAuthenticated passes when the session loader resolved a user id.
func IsAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if userID, _ := c.Get(CtxUserID).(string); userID == "" {
			metrics.AccessDeniedTotal.WithLabelValues("is_authenticated").Inc()
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: msgAuthRequired})
		}
		return next(c)
	}
}

// IsAdmin passes only for the admin role. It assumes IsAuthenticated ran
// earlier in the chain; a missing role is a denial, never a pass.
func IsAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if role, _ := c.Get(CtxRole).(string); role != domain.RoleAdmin {
			metrics.AccessDeniedTotal.WithLabelValues("is_admin").Inc()
			return c.JSON(http.StatusForbidden, messageResponse{Message: msgInsufficient})
		}
		return next(c)
	}
}

// IsNotAdmin passes for any non-admin role. Like IsAdmin it assumes an
// earlier IsAuthenticated; an empty role still denies, so an
// authenticated-but-roleless session cannot slip through either gate.
func IsNotAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get(CtxRole).(string)
		if role == "" || role == domain.RoleAdmin {
			metrics.AccessDeniedTotal.WithLabelValues("is_not_admin").Inc()
			return c.JSON(http.StatusForbidden, messageResponse{Message: msgUserOnly})
		}
		return next(c)
	}
}

// HasRole passes when the session role matches expected, with admin
// satisfying every role. It re-checks authentication so it can be composed
// without IsAuthenticated.
func HasRole(expected string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, _ := c.Get(CtxUserID).(string); userID == "" {
				metrics.AccessDeniedTotal.WithLabelValues("has_role").Inc()
				return c.JSON(http.StatusUnauthorized, messageResponse{Message: msgAuthRequired})
			}
			role, _ := c.Get(CtxRole).(string)
			if role != expected && role != domain.RoleAdmin {
				metrics.AccessDeniedTotal.WithLabelValues("has_role").Inc()
				return c.JSON(http.StatusForbidden, messageResponse{Message: msgInsufficient})
			}
			return next(c)
		}
	}
}
