package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/internal/platform"
	"github.com/remitflow/remitflow/internal/security"
	"github.com/remitflow/remitflow/internal/view"
	"github.com/remitflow/remitflow/web/src/templates/pages"
)

// OnboardingHandler serves the profile completion flow: the form, the
// identity document upload, and the pending-review notice.
type OnboardingHandler struct {
	profiles domain.ProfileRepository
	docs     domain.DocumentRepository
	uploader platform.Uploader
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(profiles domain.ProfileRepository, docs domain.DocumentRepository, uploader platform.Uploader) *OnboardingHandler {
	return &OnboardingHandler{profiles: profiles, docs: docs, uploader: uploader}
}

// Show renders the onboarding form. Users with an approved profile have
// nothing to do here and go to the dashboard.
func (h *OnboardingHandler) Show(c echo.Context) error {
	user := middleware.CurrentUser(c)

	profile, err := h.profiles.GetByUser(c.Request().Context(), user.ID)
	if err != nil {
		logger(c).Error("Failed to load profile", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load profile")
	}
	if profile != nil && profile.Approved() {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	return render(c, pages.Onboarding(pageData(c, "Complete your profile"), profile))
}

// Submit handles the onboarding form: upload the identity document, record
// its metadata, then save the profile for review.
func (h *OnboardingHandler) Submit(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	profile := &domain.Profile{
		UserID:           user.ID,
		Email:            user.Email,
		FirstName:        security.SanitizeInput(c.FormValue("first_name")),
		LastName:         security.SanitizeInput(c.FormValue("last_name")),
		PhoneNumber:      security.SanitizeInput(c.FormValue("phone_number")),
		Address:          security.SanitizeInput(c.FormValue("address")),
		City:             security.SanitizeInput(c.FormValue("city")),
		Country:          c.FormValue("country"),
		PostalCode:       security.SanitizeInput(c.FormValue("postal_code")),
		DateOfBirth:      c.FormValue("date_of_birth"),
		IDDocumentType:   c.FormValue("id_document_type"),
		IDDocumentNumber: security.SanitizeInput(c.FormValue("id_document_number")),
	}

	fail := func(message string) error {
		view.SetFlashError(c, message)
		return c.Redirect(http.StatusSeeOther, "/onboarding")
	}

	// Validate before touching the upload so a bad form never stores a file.
	if err := profile.Validate(); err != nil {
		logger(c).Info("Onboarding validation failed", "error", err)
		return fail("Please fill in all required fields correctly.")
	}

	fileHeader, err := c.FormFile("id_document")
	if err != nil {
		return fail("Please attach your identity document.")
	}

	doc, err := h.storeDocument(c, fileHeader, "id-documents", profile.IDDocumentType)
	if err != nil {
		if errors.Is(err, domain.ErrUpload) {
			return fail("We couldn't accept that file: " + err.Error())
		}
		logger(c).Error("Document upload failed", "error", err)
		return fail("We couldn't store your document. Please try again.")
	}

	if _, err := h.profiles.Upsert(ctx, profile); err != nil {
		logger(c).Error("Failed to save profile", "error", err)
		return fail("We couldn't save your profile. Please try again.")
	}

	logger(c).Info("Onboarding submitted", "user", user.ID, "document", doc.Filename)
	view.SetFlashSuccess(c, "Thanks! Your profile is now under review.")
	return c.Redirect(http.StatusSeeOther, "/account/pending")
}

// storeDocument uploads a form file and records its metadata. Shared with
// the account page's picture upload.
func (h *OnboardingHandler) storeDocument(c echo.Context, fileHeader *multipart.FileHeader, bucket, documentType string) (*domain.Document, error) {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	filename := filepath.Base(fileHeader.Filename)
	key := user.ID.String() + "/" + filename

	result, err := h.uploader.Upload(ctx, bucket, key, mimeType, fileHeader.Size, file)
	if err != nil {
		return nil, err
	}

	return h.docs.Create(ctx, &domain.Document{
		UserID:       user.ID,
		DocumentType: documentType,
		Filename:     filename,
		MIMEType:     result.MIMEType,
		Size:         result.Size,
		DocumentURL:  result.PublicURL,
	})
}
