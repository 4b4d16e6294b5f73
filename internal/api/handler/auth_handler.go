package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/accountd/account-api/internal/api/metrics"
	"github.com/accountd/account-api/internal/core/domain"
	"github.com/accountd/account-api/internal/core/ports"
)

// CookieSettings controls how the session cookie is issued.
type CookieSettings struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieSettings
}

func NewAuthHandler(authService ports.AuthService, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Register creates a new account and logs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	user, sid, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return c.JSON(http.StatusConflict, messageResponse{Message: "User with this email already exists"})
		case errors.Is(err, domain.ErrValidation):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()
	h.setSessionCookie(c, sid)

	return c.JSON(http.StatusCreated, userResponse{Message: "Registration successful", User: user})
}

// Login authenticates a user and establishes a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	user, sid, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid email or password"})
		case errors.Is(err, domain.ErrPasswordIncorrect):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Password incorrect"})
		case errors.Is(err, domain.ErrValidation):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()
	h.setSessionCookie(c, sid)

	return c.JSON(http.StatusOK, userResponse{Message: "Login successful", User: user})
}

// Logout destroys the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), ctxSessionID(c)); err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "No active session"})
		}
		// A store failure during destroy is not logout success.
		return err
	}

	metrics.LogoutsTotal.Inc()
	metrics.SessionsActive.Dec()
	h.clearSessionCookie(c)

	return c.JSON(http.StatusOK, messageResponse{Message: "Logout successful"})
}

// Me returns the account of the logged-in, non-admin user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return h.currentUser(c)
}

// Admin returns the account of the logged-in admin.
//
// @Summary      Admin identity check
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /auth/admin [get]
func (h *AuthHandler) Admin(c echo.Context) error {
	return h.currentUser(c)
}

func (h *AuthHandler) currentUser(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	// Fetched fresh from the store; a user deleted after login surfaces
	// as a stale session here, not as an internal error.
	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrStaleSession) {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "User not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, userResponse{Message: "User retrieved successfully", User: user})
}

// Sessions lists the audit session records of the current user.
//
// @Summary      List own sessions
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionsResponse
// @Failure      401  {object}  messageResponse
// @Router       /auth/sessions [get]
func (h *AuthHandler) Sessions(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	sessions, err := h.authService.Sessions(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionsResponse{Message: "Sessions retrieved successfully", Sessions: sessions})
}

// Session returns one of the current user's audit session records.
//
// @Summary      Get own session by id
// @Tags         auth
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /auth/sessions/{id} [get]
func (h *AuthHandler) Session(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	session, err := h.authService.Session(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Session not found"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, messageResponse{Message: "Insufficient permissions"})
		}
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Message: "Session retrieved successfully", Session: session})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, sid string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    sid,
		Path:     "/",
		Expires:  time.Now().Add(h.cookie.TTL),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
