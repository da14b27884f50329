package handlers_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/internal/platform"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func testUser() *domain.User {
	id := surrealmodels.NewRecordID("user", "u1")
	name := "Test User"
	return &domain.User{ID: &id, Email: "test@example.com", FullName: &name}
}

// setupEcho creates an echo instance with the session middleware the flash
// and handoff helpers need.
func setupEcho() *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	return e
}

// asUser injects a signed-in user the way the auth middleware would.
func asUser(user *domain.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.UserContextKey, user)
			return next(c)
		}
	}
}

// postForm drives a form submission through the full router.
func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// assertFlash checks that a flash message was queued for the next request.
func assertFlash(t *testing.T, req *http.Request, key, contains string) {
	t.Helper()
	store := sessions.NewCookieStore([]byte(testSessionSecret))
	sess, _ := store.Get(req, "flash-session")
	flashes := sess.Flashes(key)
	if len(flashes) == 0 {
		t.Fatalf("expected a %q flash but found none", key)
	}
	if msg, ok := flashes[0].(string); !ok || !strings.Contains(msg, contains) {
		t.Fatalf("flash %q = %v, want it to contain %q", key, flashes[0], contains)
	}
}

// assertHandoff checks that a one-shot handoff value was queued for the
// next page load.
func assertHandoff(t *testing.T, req *http.Request, key, want string) {
	t.Helper()
	store := sessions.NewCookieStore([]byte(testSessionSecret))
	sess, _ := store.Get(req, "handoff-session")
	values := sess.Flashes(key)
	if len(values) == 0 {
		t.Fatalf("expected a %q handoff but found none", key)
	}
	if v, ok := values[len(values)-1].(string); !ok || v != want {
		t.Fatalf("handoff %q = %v, want %q", key, values[len(values)-1], want)
	}
}

// mockAuthService records calls and returns canned sessions.
type mockAuthService struct {
	signUpErr  error
	signInErr  error
	signUps    int
	signIns    int
	lastSignUp string
}

func (m *mockAuthService) SignUp(ctx context.Context, email, password, fullName string) (*domain.Session, error) {
	m.signUps++
	m.lastSignUp = email
	if m.signUpErr != nil {
		return nil, m.signUpErr
	}
	return &domain.Session{User: testUser(), Token: "test-token"}, nil
}

func (m *mockAuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	m.signIns++
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	return &domain.Session{User: testUser(), Token: "test-token"}, nil
}

func (m *mockAuthService) SignOut(ctx context.Context, token string) error { return nil }

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "valid" {
		return testUser(), nil
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *mockAuthService) GenerateResetToken(ctx context.Context, email string) (string, error) {
	return "reset-token", nil
}

func (m *mockAuthService) ResetPassword(ctx context.Context, token, newPassword string) (*domain.User, error) {
	if token != "reset-token" {
		return nil, domain.ErrNotFound
	}
	return testUser(), nil
}

func (m *mockAuthService) UpdatePassword(ctx context.Context, token, newPassword string) error {
	return nil
}

// mockTransactionRepo is an in-memory TransactionRepository.
type mockTransactionRepo struct {
	txs     []domain.Transaction
	creates int
	updates int
	lastRef string
}

func (m *mockTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	m.creates++
	if tx.ReferenceNumber == "" {
		tx.ReferenceNumber = fmt.Sprintf("TXN-TEST-%06d", m.creates)
	}
	if tx.Status == "" {
		tx.Status = domain.TxPending
	}
	m.txs = append([]domain.Transaction{*tx}, m.txs...)
	return tx, nil
}

func (m *mockTransactionRepo) ListByUser(ctx context.Context, userID *surrealmodels.RecordID) ([]domain.Transaction, error) {
	return m.txs, nil
}

func (m *mockTransactionRepo) List(ctx context.Context, statusFilter string) ([]domain.Transaction, error) {
	if statusFilter == "" || statusFilter == "all" {
		return m.txs, nil
	}
	var out []domain.Transaction
	for _, tx := range m.txs {
		if string(tx.Status) == statusFilter {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *mockTransactionRepo) ListByRecipient(ctx context.Context, email string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range m.txs {
		if tx.RecipientEmail == email {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *mockTransactionRepo) GetByReference(ctx context.Context, ref string) (*domain.Transaction, error) {
	for i := range m.txs {
		if m.txs[i].ReferenceNumber == ref {
			return &m.txs[i], nil
		}
	}
	return nil, nil
}

func (m *mockTransactionRepo) UpdateStatusByReference(ctx context.Context, ref string, status domain.TransactionStatus, processedBy *surrealmodels.RecordID) (*domain.Transaction, error) {
	m.updates++
	m.lastRef = ref
	for i := range m.txs {
		if m.txs[i].ReferenceNumber == ref {
			m.txs[i].Status = status
			return &m.txs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockTransactionRepo) Stats(ctx context.Context, userID *surrealmodels.RecordID) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{TotalSent: decimal.Zero}, nil
}

// mockRates returns a fixed exchange rate.
type mockRates struct {
	rate decimal.Decimal
	err  error
}

func (m *mockRates) Rate(ctx context.Context, source, target string) (decimal.Decimal, error) {
	if m.err != nil {
		return decimal.Zero, m.err
	}
	return m.rate, nil
}

// mockTransferRequestRepo is an in-memory TransferRequestRepository.
type mockTransferRequestRepo struct {
	reqs    []domain.TransferRequest
	creates int
}

func (m *mockTransferRequestRepo) Create(ctx context.Context, req *domain.TransferRequest) (*domain.TransferRequest, error) {
	m.creates++
	if req.ReferenceNumber == "" {
		req.ReferenceNumber = fmt.Sprintf("TXN-REQ-%06d", m.creates)
	}
	m.reqs = append(m.reqs, *req)
	return req, nil
}

func (m *mockTransferRequestRepo) ListByUser(ctx context.Context, userID *surrealmodels.RecordID) ([]domain.TransferRequest, error) {
	return m.reqs, nil
}

func (m *mockTransferRequestRepo) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) (*domain.TransferRequest, error) {
	for i := range m.reqs {
		if m.reqs[i].ID != nil && m.reqs[i].ID.String() == id {
			m.reqs[i].Status = status
			return &m.reqs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockProfileRepo is an in-memory ProfileRepository keyed by user.
type mockProfileRepo struct {
	profile *domain.Profile
	upserts int
	updates int

	lastStatus domain.ProfileStatus
	lastNotes  string
	lastID     string
}

func (m *mockProfileRepo) GetByUser(ctx context.Context, userID *surrealmodels.RecordID) (*domain.Profile, error) {
	return m.profile, nil
}

func (m *mockProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	m.upserts++
	m.profile = profile
	return profile, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, id string, patch map[string]any) (*domain.Profile, error) {
	m.updates++
	m.lastID = id
	if m.profile == nil {
		return nil, domain.ErrNotFound
	}
	return m.profile, nil
}

func (m *mockProfileRepo) List(ctx context.Context, statusFilter string) ([]domain.Profile, error) {
	if m.profile == nil {
		return nil, nil
	}
	return []domain.Profile{*m.profile}, nil
}

func (m *mockProfileRepo) UpdateStatus(ctx context.Context, id string, status domain.ProfileStatus, notes string) (*domain.Profile, error) {
	m.updates++
	m.lastID = id
	m.lastStatus = status
	m.lastNotes = notes
	if m.profile == nil {
		return nil, domain.ErrNotFound
	}
	m.profile.Status = status
	m.profile.ReviewNotes = notes
	return m.profile, nil
}

// mockDocumentRepo records created documents.
type mockDocumentRepo struct {
	docs []domain.Document
}

func (m *mockDocumentRepo) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	m.docs = append(m.docs, *doc)
	return doc, nil
}

func (m *mockDocumentRepo) ListByUser(ctx context.Context, userID *surrealmodels.RecordID) ([]domain.Document, error) {
	return m.docs, nil
}

func (m *mockDocumentRepo) FindLatestByUser(ctx context.Context, userID *surrealmodels.RecordID, documentType string) (*domain.Document, error) {
	for i := len(m.docs) - 1; i >= 0; i-- {
		if m.docs[i].DocumentType == documentType {
			return &m.docs[i], nil
		}
	}
	return nil, nil
}

// mockUploader counts uploads without storing anything.
type mockUploader struct {
	uploads int
	lastKey string
}

func (m *mockUploader) Upload(ctx context.Context, bucket, path, mimeType string, size int64, r io.Reader) (*platform.UploadResult, error) {
	m.uploads++
	m.lastKey = path
	return &platform.UploadResult{
		Path:      path,
		PublicURL: "http://localhost:8080/uploads/" + bucket + "/" + path,
		Size:      size,
		MIMEType:  mimeType,
	}, nil
}
