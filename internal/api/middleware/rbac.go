package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/swiftpark/parking-portal/internal/api/metrics"
	"github.com/swiftpark/parking-portal/internal/core/domain"
	"github.com/swiftpark/parking-portal/internal/core/ports"
)

// RequireRole enforces role-based access for one route group. It must run
// after RequireAuthenticated. The policy decision itself lives in
// domain.Allowed; a denial queues a warning flash against the session and
// redirects home — an authorization miss is recovered locally, never surfaced
// as an error.
func RequireRole(group string, allowed []domain.Role, flashes ports.FlashStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := PrincipalFrom(c)
			if principal == nil {
				// RequireAuthenticated was skipped or misordered.
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			if domain.Allowed(principal.Role, allowed) {
				return next(c)
			}

			metrics.AccessDeniedTotal.WithLabelValues(group).Inc()
			log.Warn().
				Str("route_group", group).
				Str("role", string(principal.Role)).
				Str("user_id", principal.UserID).
				Msg("access denied")

			if sid := SessionIDFrom(c); sid != "" {
				flash := domain.Flash{Category: domain.FlashWarning, Text: "you are not authorized to see this page"}
				if err := flashes.Push(c.Request().Context(), sid, flash); err != nil {
					log.Warn().Err(err).Msg("queue denial flash failed")
				}
			}
			return c.Redirect(http.StatusSeeOther, "/")
		}
	}
}
