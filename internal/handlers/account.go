package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/internal/platform"
	"github.com/remitflow/remitflow/internal/security"
	"github.com/remitflow/remitflow/internal/view"
	"github.com/remitflow/remitflow/web/src/templates/pages"
)

// profilePictureType tags uploads from the account page in the document
// collection.
const profilePictureType = "profile-picture"

// AccountHandler serves the account settings page. Each card on the page
// posts to its own endpoint, so every method here performs exactly one
// mutation and redirects back.
type AccountHandler struct {
	auth     domain.AuthService
	profiles domain.ProfileRepository
	docs     domain.DocumentRepository
	uploader platform.Uploader
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(auth domain.AuthService, profiles domain.ProfileRepository, docs domain.DocumentRepository, uploader platform.Uploader) *AccountHandler {
	return &AccountHandler{auth: auth, profiles: profiles, docs: docs, uploader: uploader}
}

// Show renders the settings page. The account page is reachable while the
// profile is still under review, so the profile is loaded here rather
// than taken from the approval gate.
func (h *AccountHandler) Show(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	profile, err := h.profiles.GetByUser(ctx, user.ID)
	if err != nil {
		logger(c).Error("Failed to load profile", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load account")
	}
	if profile == nil {
		return c.Redirect(http.StatusSeeOther, "/onboarding")
	}

	pictureURL := ""
	if picture, err := h.docs.FindLatestByUser(ctx, user.ID, profilePictureType); err == nil && picture != nil {
		pictureURL = picture.DocumentURL
	}

	return render(c, pages.Account(pageData(c, "Account settings"), profile, pictureURL))
}

// Pending renders the under-review notice shown in place of the gated
// pages.
func (h *AccountHandler) Pending(c echo.Context) error {
	user := middleware.CurrentUser(c)

	profile, err := h.profiles.GetByUser(c.Request().Context(), user.ID)
	if err != nil {
		logger(c).Error("Failed to load profile", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load account")
	}
	if profile != nil && profile.Approved() {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	return render(c, pages.PendingReview(pageData(c, "Account under review"), profile))
}

// UpdateProfile patches the contact details card.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	profile, err := h.currentProfile(c)
	if err != nil || profile == nil {
		return err
	}

	phone := security.SanitizeInput(c.FormValue("phone_number"))
	if !security.ValidatePhone(phone) {
		view.SetFlashError(c, "Please enter a valid phone number.")
		return c.Redirect(http.StatusSeeOther, "/account")
	}

	patch := map[string]any{
		"first_name":   security.SanitizeInput(c.FormValue("first_name")),
		"last_name":    security.SanitizeInput(c.FormValue("last_name")),
		"phone_number": phone,
		"address":      security.SanitizeInput(c.FormValue("address")),
		"city":         security.SanitizeInput(c.FormValue("city")),
		"country":      c.FormValue("country"),
		"postal_code":  security.SanitizeInput(c.FormValue("postal_code")),
	}

	if _, err := h.profiles.Update(c.Request().Context(), profile.ID.String(), patch); err != nil {
		logger(c).Error("Failed to update profile", "error", err)
		view.SetFlashError(c, "We couldn't save your details. Please try again.")
		return c.Redirect(http.StatusSeeOther, "/account")
	}

	view.SetFlashSuccess(c, "Profile updated.")
	return c.Redirect(http.StatusSeeOther, "/account")
}

// UpdatePreferences patches the notification opt-ins. Unchecked boxes are
// absent from the form body, so every flag is read explicitly.
func (h *AccountHandler) UpdatePreferences(c echo.Context) error {
	profile, err := h.currentProfile(c)
	if err != nil || profile == nil {
		return err
	}

	patch := map[string]any{
		"preferences": domain.Preferences{
			EmailNotifications: c.FormValue("email_notifications") == "true",
			SMSNotifications:   c.FormValue("sms_notifications") == "true",
			PushNotifications:  c.FormValue("push_notifications") == "true",
		},
	}

	if _, err := h.profiles.Update(c.Request().Context(), profile.ID.String(), patch); err != nil {
		logger(c).Error("Failed to update preferences", "error", err)
		view.SetFlashError(c, "We couldn't save your preferences. Please try again.")
		return c.Redirect(http.StatusSeeOther, "/account")
	}

	view.SetFlashSuccess(c, "Preferences saved.")
	return c.Redirect(http.StatusSeeOther, "/account")
}

// ChangePassword verifies the current password, then sets the new one.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	current := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")

	if result := security.ValidatePassword(newPassword); !result.Valid {
		view.SetFlashError(c, "New password is too weak: "+strings.Join(result.Messages, ", "))
		return c.Redirect(http.StatusSeeOther, "/account")
	}

	// Re-authenticating with the current password proves the caller knows
	// it; a stolen session alone is not enough to change it.
	if _, err := h.auth.SignIn(ctx, user.Email, current); err != nil {
		view.SetFlashError(c, "Your current password is incorrect.")
		return c.Redirect(http.StatusSeeOther, "/account")
	}

	cookie, err := c.Cookie(middleware.AuthCookieName)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}

	if err := h.auth.UpdatePassword(ctx, cookie.Value, newPassword); err != nil {
		logger(c).Error("Failed to change password", "error", err)
		view.SetFlashError(c, "We couldn't change your password. Please try again.")
		return c.Redirect(http.StatusSeeOther, "/account")
	}

	view.SetFlashSuccess(c, "Password changed.")
	return c.Redirect(http.StatusSeeOther, "/account")
}

// UploadPicture stores a new profile picture and records its metadata.
func (h *AccountHandler) UploadPicture(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		view.SetFlashError(c, "Please choose an image to upload.")
		return c.Redirect(http.StatusSeeOther, "/account")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger(c).Error("Failed to open uploaded picture", "error", err)
		view.SetFlashError(c, "We couldn't read that file. Please try again.")
		return c.Redirect(http.StatusSeeOther, "/account")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	// Sanitize the filename to prevent path traversal attacks.
	filename := filepath.Base(fileHeader.Filename)
	key := user.ID.String() + "/" + filename

	result, err := h.uploader.Upload(ctx, "profile-pictures", key, mimeType, fileHeader.Size, file)
	if err != nil {
		if errors.Is(err, domain.ErrUpload) {
			view.SetFlashError(c, "We couldn't accept that file: "+err.Error())
		} else {
			logger(c).Error("Picture upload failed", "error", err)
			view.SetFlashError(c, "We couldn't store your picture. Please try again.")
		}
		return c.Redirect(http.StatusSeeOther, "/account")
	}

	if _, err := h.docs.Create(ctx, &domain.Document{
		UserID:       user.ID,
		DocumentType: profilePictureType,
		Filename:     filename,
		MIMEType:     result.MIMEType,
		Size:         result.Size,
		DocumentURL:  result.PublicURL,
	}); err != nil {
		logger(c).Error("Failed to record picture metadata", "error", err)
	}

	view.SetFlashSuccess(c, "Profile picture updated.")
	return c.Redirect(http.StatusSeeOther, "/account")
}

// ToggleTwoFactor patches the 2FA flag.
func (h *AccountHandler) ToggleTwoFactor(c echo.Context) error {
	profile, err := h.currentProfile(c)
	if err != nil || profile == nil {
		return err
	}

	enabled := c.FormValue("two_factor_enabled") == "true"
	patch := map[string]any{"two_factor_enabled": enabled}

	if _, err := h.profiles.Update(c.Request().Context(), profile.ID.String(), patch); err != nil {
		logger(c).Error("Failed to update 2FA flag", "error", err)
		view.SetFlashError(c, "We couldn't update two-factor authentication. Please try again.")
		return c.Redirect(http.StatusSeeOther, "/account")
	}

	if enabled {
		view.SetFlashSuccess(c, "Two-factor authentication enabled.")
	} else {
		view.SetFlashWarning(c, "Two-factor authentication disabled.")
	}
	return c.Redirect(http.StatusSeeOther, "/account")
}

// currentProfile loads the caller's profile for the mutation endpoints.
// When the profile is missing it writes the onboarding redirect and
// returns nil, nil; callers must treat a nil profile as handled.
func (h *AccountHandler) currentProfile(c echo.Context) (*domain.Profile, error) {
	user := middleware.CurrentUser(c)

	profile, err := h.profiles.GetByUser(c.Request().Context(), user.ID)
	if err != nil {
		logger(c).Error("Failed to load profile", "error", err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to load account")
	}
	if profile == nil {
		return nil, c.Redirect(http.StatusSeeOther, "/onboarding")
	}
	return profile, nil
}
