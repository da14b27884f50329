package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/format"
	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/internal/security"
	"github.com/remitflow/remitflow/internal/view"
	"github.com/remitflow/remitflow/web/src/templates/pages"
)

// RequestTransferHandler serves the transfer-request page: outbound
// requests the user has made, and inbound transfers awaiting their
// accept or decline.
type RequestTransferHandler struct {
	requests     domain.TransferRequestRepository
	transactions domain.TransactionRepository
}

// NewRequestTransferHandler creates a new RequestTransferHandler.
func NewRequestTransferHandler(requests domain.TransferRequestRepository, transactions domain.TransactionRepository) *RequestTransferHandler {
	return &RequestTransferHandler{requests: requests, transactions: transactions}
}

// Show renders the page with both lists fetched fresh.
func (h *RequestTransferHandler) Show(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	outbound, err := h.requests.ListByUser(ctx, user.ID)
	if err != nil {
		logger(c).Error("Failed to list transfer requests", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load requests")
	}

	incoming, err := h.transactions.ListByRecipient(ctx, user.Email)
	if err != nil {
		logger(c).Error("Failed to list incoming transfers", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load requests")
	}

	return render(c, pages.RequestTransfer(pageData(c, "Transfer requests"), outbound, incoming))
}

// Create handles the new-request form submission.
func (h *RequestTransferHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)

	recipientEmail := c.FormValue("recipient_email")
	country := c.FormValue("country")

	fail := func(message string) error {
		view.SetFlashError(c, message)
		return c.Redirect(http.StatusSeeOther, "/request-transfer")
	}

	if !security.ValidateEmail(recipientEmail) {
		return fail("Please enter a valid email address to request from.")
	}
	amount, err := decimal.NewFromString(c.FormValue("amount"))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return fail("Please enter an amount greater than zero.")
	}
	currency, ok := format.CurrencyForCountry(country)
	if !ok {
		currency = "USD"
	}

	req := &domain.TransferRequest{
		RequesterID:    user.ID,
		RecipientEmail: recipientEmail,
		Amount:         amount,
		Currency:       currency,
		Country:        country,
		Status:         domain.TxPending,
	}

	created, err := h.requests.Create(c.Request().Context(), req)
	if err != nil {
		logger(c).Error("Failed to create transfer request", "error", err)
		return fail("We couldn't send your request. Please try again.")
	}

	view.SetFlashSuccess(c, "Request "+created.ReferenceNumber+" sent.")
	return c.Redirect(http.StatusSeeOther, "/request-transfer")
}

// Accept marks an incoming transfer accepted and hands its details off to
// the send-money form, prefilled for one page load. Accepting requires a
// settlement selection: bank, province and credit union must all be
// chosen before the status changes.
func (h *RequestTransferHandler) Accept(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ref := c.FormValue("reference")

	if !format.KnownBank(c.FormValue("financial_institution")) ||
		!format.KnownProvince(c.FormValue("province_territory")) ||
		!format.KnownCreditUnion(c.FormValue("credit_union")) {
		view.SetFlashError(c, "Select your financial institution, province and credit union to accept.")
		return c.Redirect(http.StatusSeeOther, "/request-transfer")
	}

	tx, err := h.transactions.UpdateStatusByReference(c.Request().Context(), ref, domain.TxAccepted, user.ID)
	if err != nil {
		logger(c).Warn("Failed to accept transfer", "reference", ref, "error", err)
		view.SetFlashError(c, "This transfer could not be accepted. It may have been withdrawn.")
		return c.Redirect(http.StatusSeeOther, "/request-transfer")
	}

	view.SetHandoff(c, handoffRecipientName, tx.RecipientName)
	view.SetHandoff(c, handoffRecipientEmail, tx.RecipientEmail)
	view.SetHandoff(c, handoffAmount, tx.TotalToPay.String())
	view.SetHandoff(c, handoffCurrency, tx.TargetCurrency)
	view.SetHandoff(c, handoffCountry, tx.SendToCountry)
	view.SetHandoff(c, handoffReference, tx.ReferenceNumber)
	view.SetHandoff(c, handoffExpiry, tx.ExpireDate)

	view.SetFlashInfo(c, "Request accepted. Review the prefilled transfer below.")
	return c.Redirect(http.StatusSeeOther, "/send-money")
}

// Decline marks an incoming transfer declined.
func (h *RequestTransferHandler) Decline(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ref := c.FormValue("reference")

	if _, err := h.transactions.UpdateStatusByReference(c.Request().Context(), ref, domain.TxDeclined, user.ID); err != nil {
		logger(c).Warn("Failed to decline transfer", "reference", ref, "error", err)
		view.SetFlashError(c, "This transfer could not be declined. It may have been withdrawn.")
		return c.Redirect(http.StatusSeeOther, "/request-transfer")
	}

	view.SetFlashSuccess(c, "Transfer declined.")
	return c.Redirect(http.StatusSeeOther, "/request-transfer")
}
