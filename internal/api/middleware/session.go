package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/accountd/account-api/internal/core/domain"
	"github.com/accountd/account-api/internal/core/ports"
)

// Context keys populated by Session and consumed by the gates and handlers.
const (
	CtxUserID    = "user_id"
	CtxRole      = "role"
	CtxSessionID = "session_id"
)

// Session resolves the session cookie and injects the session payload into
// the echo context. Requests without a resolvable session pass through
// unauthenticated; rejection is the gates' job, not this loader's.
func Session(manager ports.SessionManager, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			data, err := manager.Validate(c.Request().Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, domain.ErrNoSession) {
					// Store outage: log it, treat the request as
					// unauthenticated rather than failing every route.
					log.Warn().Err(err).Msg("session lookup failed")
				}
				return next(c)
			}

			c.Set(CtxUserID, data.UserID)
			c.Set(CtxRole, data.Role)
			c.Set(CtxSessionID, cookie.Value)

			return next(c)
		}
	}
}
