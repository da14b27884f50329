package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/handlers"
)

func adminUser() *domain.User {
	id := surrealmodels.NewRecordID("user", "admin")
	return &domain.User{ID: &id, Email: "admin@example.com", IsAdmin: true}
}

func pendingProfile() *domain.Profile {
	id := surrealmodels.NewRecordID("profile", "p1")
	userID := surrealmodels.NewRecordID("user", "u1")
	return &domain.Profile{
		ID:        &id,
		UserID:    &userID,
		Email:     "applicant@example.com",
		FirstName: "Applicant",
		LastName:  "One",
		Status:    domain.ProfilePending,
		KYCStatus: domain.KYCPending,
	}
}

func setupAdminTest(profiles *mockProfileRepo) *echo.Echo {
	e := setupEcho()
	e.Use(asUser(adminUser()))
	h := handlers.NewAdminHandler(profiles)
	e.GET("/admin/users", h.Users)
	e.POST("/admin/users/review", h.Review)
	return e
}

func TestAdminUsers(t *testing.T) {
	profiles := &mockProfileRepo{profile: pendingProfile()}
	e := setupAdminTest(profiles)

	rec := get(e, "/admin/users")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "applicant@example.com")
}

func TestAdminReview(t *testing.T) {
	t.Run("approve records the decision with notes", func(t *testing.T) {
		profiles := &mockProfileRepo{profile: pendingProfile()}
		e := setupAdminTest(profiles)

		form := url.Values{}
		form.Set("profile_id", "profile:p1")
		form.Set("decision", "approve")
		form.Set("notes", "Documents verified")
		rec := postForm(e, "/admin/users/review", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/users", rec.Header().Get("Location"))
		assert.Equal(t, 1, profiles.updates)
		assert.Equal(t, domain.ProfileApproved, profiles.lastStatus)
		assert.Equal(t, "Documents verified", profiles.lastNotes)
	})

	t.Run("suspend and reject map to their statuses", func(t *testing.T) {
		for decision, want := range map[string]domain.ProfileStatus{
			"reject":  domain.ProfileRejected,
			"suspend": domain.ProfileSuspended,
		} {
			profiles := &mockProfileRepo{profile: pendingProfile()}
			e := setupAdminTest(profiles)

			form := url.Values{}
			form.Set("profile_id", "profile:p1")
			form.Set("decision", decision)
			postForm(e, "/admin/users/review", form)

			assert.Equal(t, want, profiles.lastStatus, "decision %q", decision)
		}
	})

	t.Run("unknown decision never reaches the repository", func(t *testing.T) {
		profiles := &mockProfileRepo{profile: pendingProfile()}
		e := setupAdminTest(profiles)

		form := url.Values{}
		form.Set("profile_id", "profile:p1")
		form.Set("decision", "promote")
		rec := postForm(e, "/admin/users/review", form)

		assert.Equal(t, "/admin/users", rec.Header().Get("Location"))
		assert.Equal(t, 0, profiles.updates)
	})
}
