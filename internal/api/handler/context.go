package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accountd/account-api/internal/api/middleware"
)

// ctxIdentity extracts the session identity injected by the Session
// middleware and performs a fast-fail check before any service call:
// a missing user id means the route was registered without its
// IsAuthenticated gate; reject rather than pass an empty actor down.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	role, _ = c.Get(middleware.CtxRole).(string)
	return userID, role, nil
}

// ctxSessionID returns the cookie session id for the current request, empty
// when the request is unauthenticated.
func ctxSessionID(c echo.Context) string {
	sid, _ := c.Get(middleware.CtxSessionID).(string)
	return sid
}
