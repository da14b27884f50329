package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/security"
	"github.com/remitflow/remitflow/internal/view"
	"github.com/remitflow/remitflow/web/src/templates/pages"
)

// AdminHandler serves the user review pages. All routes are behind the
// admin gate.
type AdminHandler struct {
	profiles domain.ProfileRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(profiles domain.ProfileRepository) *AdminHandler {
	return &AdminHandler{profiles: profiles}
}

// Users renders the profile review list, filtered by status.
func (h *AdminHandler) Users(c echo.Context) error {
	filter := c.QueryParam("status")
	if filter == "" {
		filter = string(domain.ProfilePending)
	}

	profiles, err := h.profiles.List(c.Request().Context(), filter)
	if err != nil {
		logger(c).Error("Failed to list profiles", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load users")
	}

	return render(c, pages.AdminUsers(pageData(c, "User reviews"), profiles, filter))
}

// decisionStatus maps the review form's decision buttons to profile
// statuses. Anything else is rejected outright.
var decisionStatus = map[string]domain.ProfileStatus{
	"approve": domain.ProfileApproved,
	"reject":  domain.ProfileRejected,
	"suspend": domain.ProfileSuspended,
}

// Review records an approval decision with optional notes.
func (h *AdminHandler) Review(c echo.Context) error {
	profileID := c.FormValue("profile_id")
	decision := c.FormValue("decision")
	notes := security.SanitizeInput(c.FormValue("notes"))

	status, ok := decisionStatus[decision]
	if !ok {
		view.SetFlashError(c, "Unknown review decision.")
		return c.Redirect(http.StatusSeeOther, "/admin/users")
	}

	profile, err := h.profiles.UpdateStatus(c.Request().Context(), profileID, status, notes)
	if err != nil {
		logger(c).Error("Profile review failed", "profile", profileID, "decision", decision, "error", err)
		view.SetFlashError(c, "This profile could not be updated. It may have been removed.")
		return c.Redirect(http.StatusSeeOther, "/admin/users")
	}

	logger(c).Info("Profile reviewed", "profile", profileID, "status", status)
	view.SetFlashSuccess(c, profile.FullName()+" is now "+string(status)+".")
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}
