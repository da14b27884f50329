package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/handlers"
)

func setupRequestTransferTest(reqs *mockTransferRequestRepo, txs *mockTransactionRepo) *echo.Echo {
	e := setupEcho()
	e.Use(asUser(testUser()))
	h := handlers.NewRequestTransferHandler(reqs, txs)
	e.GET("/request-transfer", h.Show)
	e.POST("/request-transfer", h.Create)
	e.POST("/request-transfer/accept", h.Accept)
	e.POST("/request-transfer/decline", h.Decline)
	return e
}

func TestRequestTransferCreate(t *testing.T) {
	t.Run("creates a pending request with the country's currency", func(t *testing.T) {
		reqs := &mockTransferRequestRepo{}
		e := setupRequestTransferTest(reqs, &mockTransactionRepo{})

		form := url.Values{}
		form.Set("recipient_email", "payer@example.com")
		form.Set("amount", "50.00")
		form.Set("country", "Germany")
		rec := postForm(e, "/request-transfer", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, 1, reqs.creates)
		assert.Equal(t, domain.TxPending, reqs.reqs[0].Status)
		assert.Equal(t, "EUR", reqs.reqs[0].Currency)
		assert.NotEmpty(t, reqs.reqs[0].ReferenceNumber)
	})

	t.Run("invalid email creates nothing", func(t *testing.T) {
		reqs := &mockTransferRequestRepo{}
		e := setupRequestTransferTest(reqs, &mockTransactionRepo{})

		form := url.Values{}
		form.Set("recipient_email", "nope")
		form.Set("amount", "50.00")
		rec := postForm(e, "/request-transfer", form)

		assert.Equal(t, "/request-transfer", rec.Header().Get("Location"))
		assert.Equal(t, 0, reqs.creates)
	})
}

func acceptTransaction() domain.Transaction {
	return domain.Transaction{
		ReferenceNumber: "TXN-ACCEPT-1",
		RecipientName:   "Test User",
		RecipientEmail:  "test@example.com",
		SendToCountry:   "India",
		TargetCurrency:  "INR",
		TotalToPay:      decimal.RequireFromString("75.00"),
		ExpireDate:      "2026-09-28",
		Status:          domain.TxPending,
	}
}

func acceptForm() url.Values {
	form := url.Values{}
	form.Set("reference", "TXN-ACCEPT-1")
	form.Set("financial_institution", "rbc")
	form.Set("province_territory", "on")
	form.Set("credit_union", "vancity")
	return form
}

func TestRequestTransferAccept(t *testing.T) {
	t.Run("accepting hands off to the prefilled send-money form", func(t *testing.T) {
		txs := &mockTransactionRepo{txs: []domain.Transaction{acceptTransaction()}}
		e := setupRequestTransferTest(&mockTransferRequestRepo{}, txs)

		req := httptest.NewRequest(http.MethodPost, "/request-transfer/accept", strings.NewReader(acceptForm().Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/send-money", rec.Header().Get("Location"))
		assert.Equal(t, "TXN-ACCEPT-1", txs.lastRef)
		assert.Equal(t, domain.TxAccepted, txs.txs[0].Status)

		// Every prefill value travels, currency and expiry included.
		assertHandoff(t, req, "send_recipient_email", "test@example.com")
		assertHandoff(t, req, "send_amount", "75")
		assertHandoff(t, req, "send_currency", "INR")
		assertHandoff(t, req, "send_country", "India")
		assertHandoff(t, req, "send_reference", "TXN-ACCEPT-1")
		assertHandoff(t, req, "send_expiry", "2026-09-28")
	})

	t.Run("missing settlement selection never mutates", func(t *testing.T) {
		txs := &mockTransactionRepo{txs: []domain.Transaction{acceptTransaction()}}
		e := setupRequestTransferTest(&mockTransferRequestRepo{}, txs)

		form := url.Values{}
		form.Set("reference", "TXN-ACCEPT-1")
		rec := postForm(e, "/request-transfer/accept", form)

		assert.Equal(t, "/request-transfer", rec.Header().Get("Location"))
		assert.Empty(t, txs.lastRef)
		assert.Equal(t, domain.TxPending, txs.txs[0].Status)
	})

	t.Run("unknown bank id never mutates", func(t *testing.T) {
		txs := &mockTransactionRepo{txs: []domain.Transaction{acceptTransaction()}}
		e := setupRequestTransferTest(&mockTransferRequestRepo{}, txs)

		form := acceptForm()
		form.Set("financial_institution", "not-a-bank")
		rec := postForm(e, "/request-transfer/accept", form)

		assert.Equal(t, "/request-transfer", rec.Header().Get("Location"))
		assert.Equal(t, domain.TxPending, txs.txs[0].Status)
	})
}

func TestRequestTransferDecline(t *testing.T) {
	t.Run("declines by reference", func(t *testing.T) {
		txs := &mockTransactionRepo{
			txs: []domain.Transaction{{ReferenceNumber: "TXN-DECLINE-1", Status: domain.TxPending}},
		}
		e := setupRequestTransferTest(&mockTransferRequestRepo{}, txs)

		form := url.Values{}
		form.Set("reference", "TXN-DECLINE-1")
		rec := postForm(e, "/request-transfer/decline", form)

		assert.Equal(t, "/request-transfer", rec.Header().Get("Location"))
		assert.Equal(t, domain.TxDeclined, txs.txs[0].Status)
	})

	t.Run("unknown reference reports an error without mutating", func(t *testing.T) {
		txs := &mockTransactionRepo{}
		e := setupRequestTransferTest(&mockTransferRequestRepo{}, txs)

		form := url.Values{}
		form.Set("reference", "TXN-MISSING")
		rec := postForm(e, "/request-transfer/decline", form)

		assert.Equal(t, "/request-transfer", rec.Header().Get("Location"))
	})
}

func TestRequestTransferShowListsIncoming(t *testing.T) {
	txs := &mockTransactionRepo{
		txs: []domain.Transaction{
			{ReferenceNumber: "TXN-IN-1", RecipientEmail: "test@example.com", Status: domain.TxPending},
			{ReferenceNumber: "TXN-OTHER", RecipientEmail: "someone@example.com", Status: domain.TxPending},
		},
	}
	e := setupRequestTransferTest(&mockTransferRequestRepo{}, txs)

	rec := get(e, "/request-transfer")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "TXN-IN-1")
	assert.NotContains(t, body, "TXN-OTHER", "transfers for other recipients must not appear")
}
