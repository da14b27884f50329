package domain

import (
	"context"
	"regexp"

	"github.com/go-playground/validator/v10"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// phonePattern accepts digits with optional spaces, dashes, parentheses and
// a leading plus sign, eight characters minimum.
var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{8,}$`)

// ProfileStatus gates dashboard access: only approved profiles may use the
// transfer pages.
type ProfileStatus string

const (
	ProfilePending   ProfileStatus = "pending"
	ProfileApproved  ProfileStatus = "approved"
	ProfileRejected  ProfileStatus = "rejected"
	ProfileSuspended ProfileStatus = "suspended"
)

// KYCStatus tracks identity verification separately from account approval.
type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCVerified KYCStatus = "verified"
	KYCRejected KYCStatus = "rejected"
)

// Preferences holds the user's notification channel opt-ins.
type Preferences struct {
	EmailNotifications bool `json:"email_notifications"`
	SMSNotifications   bool `json:"sms_notifications"`
	PushNotifications  bool `json:"push_notifications"`
}

// Profile is the one-per-user identity record. It is created during
// onboarding and mutated only through explicit update calls; approval
// status changes are an admin action.
type Profile struct {
	ID               *surrealmodels.RecordID       `json:"id,omitempty"`
	UserID           *surrealmodels.RecordID       `json:"user_id,omitempty"`
	Email            string                        `json:"email" validate:"required,email"`
	FirstName        string                        `json:"first_name" validate:"required,min=1,max=100"`
	LastName         string                        `json:"last_name" validate:"required,min=1,max=100"`
	PhoneNumber      string                        `json:"phone_number" validate:"required,phone"`
	Address          string                        `json:"address" validate:"required,max=255"`
	City             string                        `json:"city" validate:"required,max=100"`
	Country          string                        `json:"country" validate:"required,max=100"`
	PostalCode       string                        `json:"postal_code" validate:"required,max=20"`
	DateOfBirth      string                        `json:"date_of_birth" validate:"required"`
	IDDocumentType   string                        `json:"id_document_type,omitempty"`
	IDDocumentNumber string                        `json:"id_document_number,omitempty"`
	Status           ProfileStatus                 `json:"status"`
	KYCStatus        KYCStatus                     `json:"kyc_status"`
	TwoFactorEnabled bool                          `json:"two_factor_enabled"`
	Preferences      Preferences                   `json:"preferences"`
	ReviewNotes      string                        `json:"review_notes,omitempty"`
	LastLogin        *surrealmodels.CustomDateTime `json:"last_login,omitempty"`
	CreatedAt        *surrealmodels.CustomDateTime `json:"created_at,omitempty"`
	UpdatedAt        *surrealmodels.CustomDateTime `json:"updated_at,omitempty"`
}

// Approved reports whether this profile may access the transfer pages.
func (p *Profile) Approved() bool {
	return p.Status == ProfileApproved
}

// FullName joins the name parts for display.
func (p *Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

func init() {
	// "phone" mirrors the client-side phone check: digits with optional
	// punctuation, at least eight characters.
	_ = validatorInstance.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// Validate runs validation checks on the Profile struct using the defined
// tags. A failure here is a ValidationError: it is handled locally and the
// profile is never sent to the remote service.
func (p *Profile) Validate() error {
	return validatorInstance.Struct(p)
}

// ProfileRepository defines the contract for profile storage operations.
type ProfileRepository interface {
	// GetByUser returns the profile owned by the given user, or nil when
	// the user has not completed onboarding yet.
	GetByUser(ctx context.Context, userID *surrealmodels.RecordID) (*Profile, error)

	// Upsert creates or replaces the caller's profile.
	Upsert(ctx context.Context, profile *Profile) (*Profile, error)

	// Update applies a partial patch to the profile with the given ID.
	Update(ctx context.Context, id string, patch map[string]any) (*Profile, error)

	// List returns profiles filtered by status ("all" for no filter),
	// newest first.
	List(ctx context.Context, statusFilter string) ([]Profile, error)

	// UpdateStatus records an admin review decision with optional notes.
	UpdateStatus(ctx context.Context, id string, status ProfileStatus, notes string) (*Profile, error)
}
