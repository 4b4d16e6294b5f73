package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accountd/account-api/internal/core/domain"
	"github.com/accountd/account-api/internal/core/ports"
)

// AccountHandler exposes self-service operations on the logged-in user's
// own record. Unlike the /users routes there is no target id; the actor is
// always the target.
type AccountHandler struct {
	authService ports.AuthService
	userService ports.UserService
	cookie      CookieSettings
}

func NewAccountHandler(authService ports.AuthService, userService ports.UserService, cookie CookieSettings) *AccountHandler {
	return &AccountHandler{authService: authService, userService: userService, cookie: cookie}
}

// Get returns the caller's own account.
//
// @Summary      Get own account
// @Tags         account
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  messageResponse
// @Router       /account [get]
func (h *AccountHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrStaleSession) {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "User not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Message: "Account retrieved successfully", User: user})
}

// Update modifies the caller's own account. Role changes are rejected for
// non-admins by the service layer.
//
// @Summary      Update own account
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /account [put]
func (h *AccountHandler) Update(c echo.Context) error {
	actorID, actorRole, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	user, err := h.userService.Update(c.Request().Context(), ports.UpdateUserInput{
		ActorID:   actorID,
		ActorRole: actorRole,
		TargetID:  actorID,
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		return mapUserError(c, err)
	}
	return c.JSON(http.StatusOK, userResponse{Message: "Account updated successfully", User: user})
}

// Delete removes the caller's account and terminates the session.
//
// @Summary      Delete own account
// @Tags         account
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /account [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	// Destroy the session first so a half-failed delete cannot leave a
	// live session pointing at a removed record.
	if err := h.authService.Logout(c.Request().Context(), ctxSessionID(c)); err != nil && !errors.Is(err, domain.ErrNoSession) {
		return err
	}
	if err := h.userService.Delete(c.Request().Context(), userID); err != nil {
		return mapUserError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, messageResponse{Message: "Account deleted successfully"})
}
