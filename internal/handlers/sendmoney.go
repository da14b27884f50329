package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/format"
	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/internal/rates"
	"github.com/remitflow/remitflow/internal/security"
	"github.com/remitflow/remitflow/internal/view"
	"github.com/remitflow/remitflow/web/src/templates/pages"
)

// Handoff keys used when an accepted transfer request prefills the
// send-money form. Each value survives exactly one page load.
const (
	handoffRecipientName  = "send_recipient_name"
	handoffRecipientEmail = "send_recipient_email"
	handoffAmount         = "send_amount"
	handoffCurrency       = "send_currency"
	handoffCountry        = "send_country"
	handoffReference      = "send_reference"
	handoffExpiry         = "send_expiry"
)

// transferValidity is how long a created transfer stays acceptable.
const transferValidity = 30 * 24 * time.Hour

// SendMoneyHandler serves the transfer creation page.
type SendMoneyHandler struct {
	transactions domain.TransactionRepository
	rates        rates.Service
}

// NewSendMoneyHandler creates a new SendMoneyHandler.
func NewSendMoneyHandler(transactions domain.TransactionRepository, rateService rates.Service) *SendMoneyHandler {
	return &SendMoneyHandler{transactions: transactions, rates: rateService}
}

// Show renders the send-money form next to the user's recent transfers.
// Accepting a transfer request hands field values off through the session;
// they prefill the form once and are gone on the next load.
func (h *SendMoneyHandler) Show(c echo.Context) error {
	user := middleware.CurrentUser(c)

	prefill := pages.SendMoneyPrefill{
		RecipientName:  view.ConsumeHandoff(c, handoffRecipientName),
		RecipientEmail: view.ConsumeHandoff(c, handoffRecipientEmail),
		Amount:         view.ConsumeHandoff(c, handoffAmount),
		Currency:       view.ConsumeHandoff(c, handoffCurrency),
		Country:        view.ConsumeHandoff(c, handoffCountry),
		Reference:      view.ConsumeHandoff(c, handoffReference),
		Expiry:         view.ConsumeHandoff(c, handoffExpiry),
	}

	recent, err := h.transactions.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		logger(c).Error("Failed to list transactions", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load transfers")
	}

	return render(c, pages.SendMoney(pageData(c, "Send money"), prefill, recent))
}

// Create handles the transfer form submission: validate, quote the
// exchange rate, create the transaction, then redirect back so the page
// re-fetches the list with the new transfer in it.
func (h *SendMoneyHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	recipientName := security.SanitizeInput(c.FormValue("recipient_name"))
	recipientEmail := c.FormValue("recipient_email")
	fromCountry := c.FormValue("send_from_country")
	toCountry := c.FormValue("send_to_country")
	description := security.SanitizeInput(c.FormValue("description"))
	requestRef := c.FormValue("request_reference")

	fail := func(message string) error {
		view.SetFlashError(c, message)
		return c.Redirect(http.StatusSeeOther, "/send-money")
	}

	if recipientName == "" {
		return fail("Please enter the recipient's name.")
	}
	if !security.ValidateEmail(recipientEmail) {
		return fail("Please enter a valid recipient email address.")
	}

	amount, err := decimal.NewFromString(c.FormValue("amount"))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return fail("Please enter an amount greater than zero.")
	}

	sourceCurrency, ok := format.CurrencyForCountry(fromCountry)
	if !ok {
		return fail("We don't support sending from that country yet.")
	}
	targetCurrency, ok := format.CurrencyForCountry(toCountry)
	if !ok {
		return fail("We don't support sending to that country yet.")
	}

	rate, err := h.rates.Rate(ctx, sourceCurrency, targetCurrency)
	if err != nil {
		logger(c).Error("Exchange rate lookup failed", "source", sourceCurrency, "target", targetCurrency, "error", err)
		return fail("Exchange rates are unavailable right now. Please try again in a moment.")
	}

	tx := &domain.Transaction{
		UserID:          user.ID,
		RecipientName:   recipientName,
		RecipientEmail:  recipientEmail,
		SendFromCountry: fromCountry,
		SendToCountry:   toCountry,
		SourceCurrency:  sourceCurrency,
		TargetCurrency:  targetCurrency,
		TotalToPay:      amount,
		ReceivingAmount: amount.Mul(rate).Round(2),
		ExchangeRate:    rate,
		Description:     description,
		ExpireDate:      time.Now().UTC().Add(transferValidity).Format("2006-01-02"),
	}

	created, err := h.transactions.Create(ctx, tx)
	if err != nil {
		logger(c).Error("Failed to create transaction", "error", err)
		return fail("We couldn't create your transfer. Please try again.")
	}

	// A transfer created from an accepted request settles that request.
	if requestRef != "" {
		if _, err := h.transactions.UpdateStatusByReference(ctx, requestRef, domain.TxCompleted, user.ID); err != nil {
			logger(c).Warn("Failed to settle accepted request", "reference", requestRef, "error", err)
		}
	}

	view.SetFlashSuccess(c, "Transfer "+created.ReferenceNumber+" created.")
	return c.Redirect(http.StatusSeeOther, "/send-money")
}
