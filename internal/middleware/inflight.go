package middleware

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

// Inflight rejects a second mutating submission for the same user and
// action while the first is still being processed. The browser disables
// submit buttons for the same window; this guard holds when the client
// script is bypassed. Reads pass through untouched.
func Inflight() echo.MiddlewareFunc {
	var mu sync.Mutex
	inflight := make(map[string]struct{})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
				return next(c)
			}

			key := actionKey(c)
			mu.Lock()
			if _, busy := inflight[key]; busy {
				mu.Unlock()
				return c.String(http.StatusConflict, "This action is already being processed. Please wait.")
			}
			inflight[key] = struct{}{}
			mu.Unlock()

			defer func() {
				mu.Lock()
				delete(inflight, key)
				mu.Unlock()
			}()
			return next(c)
		}
	}
}

// actionKey scopes the guard to one user performing one action. Guests
// fall back to the client address.
func actionKey(c echo.Context) string {
	actor := c.RealIP()
	if user := CurrentUser(c); user != nil {
		actor = user.ID.String()
	}
	return actor + " " + c.Request().Method + " " + c.Path()
}
