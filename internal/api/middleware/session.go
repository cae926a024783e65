package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftpark/parking-portal/internal/core/domain"
	"github.com/swiftpark/parking-portal/internal/core/ports"
)

const (
	// SessionCookieName carries the opaque session token. HttpOnly: the
	// token must never be readable by client script.
	SessionCookieName = "portal_session"

	// returnToCookieName remembers the path an anonymous visitor asked for,
	// so login can send them back. Short-lived on purpose.
	returnToCookieName   = "return_to"
	returnToCookieMaxAge = 300

	principalKey = "principal"
	sessionIDKey = "session_id"
)

// Session restores the principal from the session cookie on every request and
// stores it in the echo context. Anonymous requests pass through untouched;
// restore failures degrade to anonymous rather than erroring.
func Session(mgr ports.Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			principal, sessionID, err := mgr.Restore(c.Request().Context(), cookie.Value)
			if err != nil {
				return err
			}
			if principal != nil {
				c.Set(principalKey, principal)
				c.Set(sessionIDKey, sessionID)
			}
			return next(c)
		}
	}
}

// RequireAuthenticated short-circuits anonymous requests with a redirect to
// the login page, capturing the originally requested path for the post-login
// return.
func RequireAuthenticated(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if PrincipalFrom(c) != nil {
				return next(c)
			}

			c.SetCookie(&http.Cookie{
				Name:     returnToCookieName,
				Value:    c.Request().URL.RequestURI(),
				Path:     "/",
				HttpOnly: true,
				MaxAge:   returnToCookieMaxAge,
			})
			return c.Redirect(http.StatusSeeOther, loginPath)
		}
	}
}

// RequireAnonymous guards the login and register pages: an already
// authenticated visitor is sent home instead.
func RequireAnonymous(homePath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if PrincipalFrom(c) != nil {
				return c.Redirect(http.StatusSeeOther, homePath)
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the request's resolved principal, or nil when the
// request is anonymous.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

// SessionIDFrom returns the server-side session ID for the request, or "".
func SessionIDFrom(c echo.Context) string {
	id, _ := c.Get(sessionIDKey).(string)
	return id
}

// SetSessionCookie writes the session token to the response.
func SetSessionCookie(c echo.Context, token string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// ConsumeReturnTo pops the captured return path, if any. Only local paths are
// honoured so the cookie cannot be used as an open redirect.
func ConsumeReturnTo(c echo.Context) string {
	cookie, err := c.Cookie(returnToCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	c.SetCookie(&http.Cookie{
		Name:     returnToCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	path := cookie.Value
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return ""
	}
	return path
}
