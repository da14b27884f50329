package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/remitflow/remitflow/internal/domain"
)

// ProfileContextKey is where RequireProfile stores the loaded profile.
const ProfileContextKey = "profile"

// RequireProfile loads the user's profile and gates page access on it.
// Users without a profile are sent to onboarding; users whose profile is
// not approved are sent to the pending-review notice. Must run after Auth.
func RequireProfile(profiles domain.ProfileRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return c.Redirect(http.StatusSeeOther, "/auth/login")
			}

			profile, err := profiles.GetByUser(c.Request().Context(), user.ID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to load profile")
			}
			if profile == nil {
				return c.Redirect(http.StatusSeeOther, "/onboarding")
			}
			if !profile.Approved() {
				return c.Redirect(http.StatusSeeOther, "/account/pending")
			}

			c.Set(ProfileContextKey, profile)
			return next(c)
		}
	}
}

// CurrentProfile returns the profile stored by RequireProfile, or nil.
func CurrentProfile(c echo.Context) *domain.Profile {
	if profile, ok := c.Get(ProfileContextKey).(*domain.Profile); ok {
		return profile
	}
	return nil
}
