package handlers_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remitflow/remitflow/internal/handlers"
)

func setupSendMoneyTest(txs *mockTransactionRepo, rates *mockRates) *echo.Echo {
	e := setupEcho()
	e.Use(asUser(testUser()))
	h := handlers.NewSendMoneyHandler(txs, rates)
	e.GET("/send-money", h.Show)
	e.POST("/send-money", h.Create)
	return e
}

func sendMoneyForm() url.Values {
	form := url.Values{}
	form.Set("recipient_name", "Jane Doe")
	form.Set("recipient_email", "jane@example.com")
	form.Set("send_from_country", "United States")
	form.Set("send_to_country", "India")
	form.Set("amount", "100.00")
	form.Set("description", "Rent")
	return form
}

func TestSendMoneyCreate(t *testing.T) {
	t.Run("creates the transfer with the quoted rate", func(t *testing.T) {
		txs := &mockTransactionRepo{}
		e := setupSendMoneyTest(txs, &mockRates{rate: decimal.RequireFromString("129.50")})

		rec := postForm(e, "/send-money", sendMoneyForm())

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/send-money", rec.Header().Get("Location"))
		require.Equal(t, 1, txs.creates)

		created := txs.txs[0]
		assert.Equal(t, "USD", created.SourceCurrency)
		assert.Equal(t, "INR", created.TargetCurrency)
		assert.True(t, created.ReceivingAmount.Equal(decimal.RequireFromString("12950.00")),
			"receiving amount = %s", created.ReceivingAmount)
		assert.NotEmpty(t, created.ExpireDate, "new transfers carry an expiry date")
	})

	t.Run("the page after creating shows the new reference", func(t *testing.T) {
		txs := &mockTransactionRepo{}
		e := setupSendMoneyTest(txs, &mockRates{rate: decimal.NewFromInt(1)})

		rec := postForm(e, "/send-money", sendMoneyForm())
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, 1, txs.creates)
		reference := txs.txs[0].ReferenceNumber

		page := get(e, "/send-money")
		assert.Equal(t, http.StatusOK, page.Code)
		assert.Contains(t, page.Body.String(), reference,
			"the re-fetched list must contain the transfer that was just created")
	})

	t.Run("rate failure creates nothing", func(t *testing.T) {
		txs := &mockTransactionRepo{}
		e := setupSendMoneyTest(txs, &mockRates{err: errors.New("both providers down")})

		rec := postForm(e, "/send-money", sendMoneyForm())

		assert.Equal(t, "/send-money", rec.Header().Get("Location"))
		assert.Equal(t, 0, txs.creates)
	})

	t.Run("invalid amount creates nothing", func(t *testing.T) {
		txs := &mockTransactionRepo{}
		e := setupSendMoneyTest(txs, &mockRates{rate: decimal.NewFromInt(1)})

		form := sendMoneyForm()
		form.Set("amount", "-5")
		rec := postForm(e, "/send-money", form)

		assert.Equal(t, "/send-money", rec.Header().Get("Location"))
		assert.Equal(t, 0, txs.creates)
	})

	t.Run("bad recipient email creates nothing", func(t *testing.T) {
		txs := &mockTransactionRepo{}
		e := setupSendMoneyTest(txs, &mockRates{rate: decimal.NewFromInt(1)})

		form := sendMoneyForm()
		form.Set("recipient_email", "not-an-email")
		rec := postForm(e, "/send-money", form)

		assert.Equal(t, "/send-money", rec.Header().Get("Location"))
		assert.Equal(t, 0, txs.creates)
	})
}
