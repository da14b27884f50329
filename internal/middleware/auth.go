package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/remitflow/remitflow/internal/domain"
)

const (
	// UserContextKey is where Auth stores the authenticated user.
	UserContextKey = "user"
	// AuthCookieName carries the session token.
	AuthCookieName = "auth_token"
)

// Authenticator validates a session token. Satisfied by the platform client.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth creates a middleware that protects routes requiring authentication.
// Requests without a valid session are redirected to the login page before
// any page data is fetched.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/auth/login")
			}
			token := cookie.Value

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil || user == nil {
				// Clear the invalid cookie so the browser stops sending it.
				c.SetCookie(&http.Cookie{
					Name:   AuthCookieName,
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
				return c.Redirect(http.StatusSeeOther, "/auth/login")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user stored by Auth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	if user, ok := c.Get(UserContextKey).(*domain.User); ok {
		return user
	}
	return nil
}

// RequireAdmin restricts a route to administrator accounts. It must run
// after Auth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Redirect(http.StatusSeeOther, "/auth/login")
		}
		if !user.IsAdmin {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}
		return next(c)
	}
}
