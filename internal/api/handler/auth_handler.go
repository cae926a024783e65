package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/swiftpark/parking-portal/internal/api/metrics"
	"github.com/swiftpark/parking-portal/internal/api/middleware"
	"github.com/swiftpark/parking-portal/internal/core/domain"
	"github.com/swiftpark/parking-portal/internal/core/ports"
)

// AuthHandler serves the login, registration and logout flows.
type AuthHandler struct {
	authService  ports.AuthService
	sessions     ports.Sessions
	render       *PageRenderer
	cookieSecure bool
	logger       zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessions ports.Sessions, render *PageRenderer, cookieSecure bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		render:       render,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// authPage is the form state rendered back on the login and register pages.
type authPage struct {
	Email  string
	Errors []string
	Notice string
}

func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return h.render.Render(c, http.StatusOK, "login", "Log in", authPage{})
}

// Login authenticates the submitted credentials and starts a session. An
// unknown email and a wrong password produce the identical generic message.
func (h *AuthHandler) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	principal, err := h.authService.Login(c.Request().Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return h.render.Render(c, http.StatusUnauthorized, "login", "Log in", authPage{
				Email:  email,
				Errors: []string{"invalid credentials"},
			})
		}
		return err
	}

	token, err := h.sessions.Start(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsStartedTotal.Inc()
	h.logger.Info().Str("user_id", principal.UserID).Msg("login")

	middleware.SetSessionCookie(c, token, h.cookieSecure)

	target := middleware.ConsumeReturnTo(c)
	if target == "" {
		target = "/"
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return h.render.Render(c, http.StatusOK, "register", "Register", authPage{})
}

// Register creates an account with the base role. Validation failures come
// back with every violated rule; a duplicate email gets the same generic
// retry message as any other refusal, so the form does not confirm which
// addresses hold accounts.
func (h *AuthHandler) Register(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	password2 := c.FormValue("password2")

	user, err := h.authService.Register(c.Request().Context(), email, password, password2)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return h.render.Render(c, http.StatusBadRequest, "register", "Register", authPage{
				Email:  email,
				Errors: ve.Causes,
			})
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return h.render.Render(c, http.StatusBadRequest, "register", "Register", authPage{
				Email:  email,
				Errors: []string{"could not complete registration, please try again"},
			})
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return h.render.Render(c, http.StatusOK, "login", "Log in", authPage{
		Notice: user.Email + " registered successfully, log in now",
	})
}

// Logout invalidates the server-side session and clears the cookie. Safe to
// repeat: an already-dead token is a no-op.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Invalidate(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	middleware.ClearSessionCookie(c, h.cookieSecure)
	return c.Redirect(http.StatusSeeOther, "/")
}
