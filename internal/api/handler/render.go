package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/swiftpark/parking-portal/internal/api/middleware"
	"github.com/swiftpark/parking-portal/internal/core/domain"
	"github.com/swiftpark/parking-portal/internal/core/ports"
	"github.com/swiftpark/parking-portal/internal/web"
)

// PageRenderer assembles the render context for every page exactly once:
// the request's principal, the session's flash messages (consumed here, so a
// message renders at most once), and the page data.
type PageRenderer struct {
	flashes ports.FlashStore
	logger  zerolog.Logger
}

func NewPageRenderer(flashes ports.FlashStore, logger zerolog.Logger) *PageRenderer {
	return &PageRenderer{flashes: flashes, logger: logger}
}

func (pr *PageRenderer) Render(c echo.Context, status int, name, title string, data any) error {
	page := web.Page{
		Title:     title,
		Principal: middleware.PrincipalFrom(c),
		Data:      data,
	}

	if sid := middleware.SessionIDFrom(c); sid != "" {
		flashes, err := pr.flashes.Consume(c.Request().Context(), sid)
		if err != nil {
			pr.logger.Warn().Err(err).Msg("consume flashes failed")
		}
		page.Flashes = flashes
	}

	return c.Render(status, name, page)
}

// Flash queues a message against the request's session, if there is one.
func (pr *PageRenderer) Flash(c echo.Context, category, text string) {
	sid := middleware.SessionIDFrom(c)
	if sid == "" {
		return
	}
	if err := pr.flashes.Push(c.Request().Context(), sid, domain.Flash{Category: category, Text: text}); err != nil {
		pr.logger.Warn().Err(err).Msg("queue flash failed")
	}
}

// categoryTitle turns a category slug into a heading ("tyre_clinic" → "Tyre clinic").
func categoryTitle(cat domain.Category) string {
	s := strings.ReplaceAll(string(cat), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
