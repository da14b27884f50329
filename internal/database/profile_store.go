// Package database implements the domain repositories on SurrealDB through
// the platform query helpers.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/platform"
)

// SurrealProfileStore encapsulates database operations for user profiles.
type SurrealProfileStore struct {
	client *platform.SurrealClient
}

// NewSurrealProfileStore creates a new SurrealProfileStore.
func NewSurrealProfileStore(client *platform.SurrealClient) *SurrealProfileStore {
	return &SurrealProfileStore{client: client}
}

// GetByUser returns the profile owned by userID, or nil when onboarding has
// not been completed.
func (s *SurrealProfileStore) GetByUser(ctx context.Context, userID *surrealmodels.RecordID) (*domain.Profile, error) {
	query := "SELECT * FROM profile WHERE user_id = $user_id"
	params := map[string]any{"user_id": userID}

	profile, err := platform.QueryOne[domain.Profile](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return profile, nil
}

// Upsert creates or replaces the user's profile. New profiles start in
// pending review with KYC pending.
func (s *SurrealProfileStore) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if profile.Status == "" {
		profile.Status = domain.ProfilePending
	}
	if profile.KYCStatus == "" {
		profile.KYCStatus = domain.KYCPending
	}

	query := `
		UPSERT profile SET
			user_id = $user_id,
			email = $email,
			first_name = $first_name,
			last_name = $last_name,
			phone_number = $phone_number,
			address = $address,
			city = $city,
			country = $country,
			postal_code = $postal_code,
			date_of_birth = $date_of_birth,
			id_document_type = $id_document_type,
			id_document_number = $id_document_number,
			status = $status,
			kyc_status = $kyc_status,
			two_factor_enabled = $two_factor_enabled,
			preferences = $preferences,
			updated_at = time::now(),
			created_at = created_at ?? time::now()
		WHERE user_id = $user_id`

	params := map[string]any{
		"user_id":            profile.UserID,
		"email":              profile.Email,
		"first_name":         profile.FirstName,
		"last_name":          profile.LastName,
		"phone_number":       profile.PhoneNumber,
		"address":            profile.Address,
		"city":               profile.City,
		"country":            profile.Country,
		"postal_code":        profile.PostalCode,
		"date_of_birth":      profile.DateOfBirth,
		"id_document_type":   profile.IDDocumentType,
		"id_document_number": profile.IDDocumentNumber,
		"status":             profile.Status,
		"kyc_status":         profile.KYCStatus,
		"two_factor_enabled": profile.TwoFactorEnabled,
		"preferences":        profile.Preferences,
	}

	saved, err := platform.QueryOne[domain.Profile](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	if saved == nil {
		return nil, fmt.Errorf("upsert returned no profile")
	}

	slog.Info("Profile saved", "email", saved.Email, "status", saved.Status)
	return saved, nil
}

// Update applies a partial patch to the profile with the given ID. The
// patch keys must be column names; updated_at is always refreshed.
func (s *SurrealProfileStore) Update(ctx context.Context, id string, patch map[string]any) (*domain.Profile, error) {
	query := "UPDATE type::thing('profile', $id) MERGE $patch"
	params := map[string]any{
		"id":    recordKey(id),
		"patch": withUpdatedAt(patch),
	}

	profile, err := platform.QueryOne[domain.Profile](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}

// List returns profiles filtered by status, newest first. Pass "all" to
// disable the filter.
func (s *SurrealProfileStore) List(ctx context.Context, statusFilter string) ([]domain.Profile, error) {
	query := "SELECT * FROM profile ORDER BY created_at DESC"
	params := map[string]any{}

	if statusFilter != "" && statusFilter != "all" {
		query = "SELECT * FROM profile WHERE status = $status ORDER BY created_at DESC"
		params["status"] = statusFilter
	}

	profiles, err := platform.Query[domain.Profile](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return profiles, nil
}

// UpdateStatus records an admin review decision with optional notes.
func (s *SurrealProfileStore) UpdateStatus(ctx context.Context, id string, status domain.ProfileStatus, notes string) (*domain.Profile, error) {
	patch := map[string]any{
		"status":       status,
		"review_notes": notes,
	}
	// Approval implies the identity documents passed review.
	if status == domain.ProfileApproved {
		patch["kyc_status"] = domain.KYCVerified
	}

	profile, err := s.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	slog.Info("Profile status updated", "profile", id, "status", status)
	return profile, nil
}

// withUpdatedAt copies the patch and stamps updated_at so callers can't
// forget it.
func withUpdatedAt(patch map[string]any) map[string]any {
	out := make(map[string]any, len(patch)+1)
	for k, v := range patch {
		out[k] = v
	}
	out["updated_at"] = &surrealmodels.CustomDateTime{Time: time.Now().UTC()}
	return out
}
