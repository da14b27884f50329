package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/remitflow/remitflow/internal/domain"
)

// mockProfileRepo implements domain.ProfileRepository for middleware tests.
type mockProfileRepo struct {
	profile *domain.Profile
	err     error
	calls   int
}

func (m *mockProfileRepo) GetByUser(ctx context.Context, userID *surrealmodels.RecordID) (*domain.Profile, error) {
	m.calls++
	return m.profile, m.err
}

func (m *mockProfileRepo) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	return p, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, id string, patch map[string]any) (*domain.Profile, error) {
	return m.profile, nil
}

func (m *mockProfileRepo) List(ctx context.Context, statusFilter string) ([]domain.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepo) UpdateStatus(ctx context.Context, id string, status domain.ProfileStatus, notes string) (*domain.Profile, error) {
	return m.profile, nil
}

func runRequireProfile(t *testing.T, repo *mockProfileRepo, user *domain.User) (*httptest.ResponseRecorder, int) {
	t.Helper()
	e := echo.New()
	handlerCalls := 0

	h := RequireProfile(repo)(func(c echo.Context) error {
		handlerCalls++
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(UserContextKey, user)
	}
	require.NoError(t, h(c))
	return rec, handlerCalls
}

func TestRequireProfileRedirectsToOnboarding(t *testing.T) {
	repo := &mockProfileRepo{profile: nil}

	rec, handlerCalls := runRequireProfile(t, repo, testUser(false))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/onboarding", rec.Header().Get("Location"))
	assert.Equal(t, 0, handlerCalls)
}

func TestRequireProfileBlocksUnapproved(t *testing.T) {
	for _, status := range []domain.ProfileStatus{domain.ProfilePending, domain.ProfileRejected, domain.ProfileSuspended} {
		repo := &mockProfileRepo{profile: &domain.Profile{Status: status}}

		rec, handlerCalls := runRequireProfile(t, repo, testUser(false))

		assert.Equal(t, http.StatusSeeOther, rec.Code, "status %s", status)
		assert.Equal(t, "/account/pending", rec.Header().Get("Location"))
		assert.Equal(t, 0, handlerCalls)
	}
}

func TestRequireProfileAllowsApproved(t *testing.T) {
	repo := &mockProfileRepo{profile: &domain.Profile{Status: domain.ProfileApproved}}

	rec, handlerCalls := runRequireProfile(t, repo, testUser(false))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, handlerCalls)
}

func TestRequireProfileWithoutUserRedirectsToLogin(t *testing.T) {
	repo := &mockProfileRepo{}

	rec, handlerCalls := runRequireProfile(t, repo, nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
	assert.Equal(t, 0, repo.calls, "profile must not be fetched without a session")
	assert.Equal(t, 0, handlerCalls)
}
