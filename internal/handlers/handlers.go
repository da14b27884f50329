// Package handlers contains the HTTP handlers for every page and form in
// the application. Handlers follow a common shape: GET handlers fetch
// fresh data, build the page component and render it inside the base
// layout; POST handlers validate input, perform exactly one mutation and
// redirect back so the page re-fetches its data.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"

	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/internal/view"
	"github.com/remitflow/remitflow/web/src/templates/layouts"
)

// logger returns the request-scoped logger, tagged with the request ID.
func logger(c echo.Context) *slog.Logger {
	return middleware.FromContext(c.Request().Context())
}

// render writes a gomponents node as the full HTML response.
func render(c echo.Context, node cmp.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/html; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return node.Render(c.Response().Writer)
}

// pageData assembles the layout data every page needs: the title, the
// authenticated user (nil on guest pages), and any flash messages queued
// by the previous request. The live stream script is only injected for
// signed-in users.
func pageData(c echo.Context, title string) layouts.PageData {
	user := middleware.CurrentUser(c)
	return layouts.PageData{
		Title:   title,
		User:    user,
		Flashes: view.GetFlashData(c),
		Stream:  user != nil,
	}
}

// setAuthCookie creates or clears the authentication cookie.
func setAuthCookie(c echo.Context, token string) {
	cookie := new(http.Cookie)
	cookie.Name = middleware.AuthCookieName
	cookie.Value = token
	cookie.Path = "/"
	if token == "" {
		// An empty token means logout; expire the cookie immediately.
		cookie.MaxAge = -1
	} else {
		cookie.Expires = time.Now().UTC().Add(24 * time.Hour)
	}
	// HttpOnly keeps the token away from page scripts; Secure only applies
	// when the request itself arrived over TLS so local development works.
	cookie.HttpOnly = true
	cookie.Secure = c.Request().TLS != nil
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)
}
