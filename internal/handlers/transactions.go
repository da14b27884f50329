package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/internal/view"
	"github.com/remitflow/remitflow/web/src/templates/pages"
)

// TransactionsHandler serves the transaction history page. Regular users
// see their own transfers; administrators see every transfer with
// approve and decline actions.
type TransactionsHandler struct {
	transactions domain.TransactionRepository
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(transactions domain.TransactionRepository) *TransactionsHandler {
	return &TransactionsHandler{transactions: transactions}
}

// Show renders the filtered transaction list.
func (h *TransactionsHandler) Show(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	filter := c.QueryParam("status")
	if filter == "" {
		filter = "all"
	}

	var (
		txs []domain.Transaction
		err error
	)
	if user.IsAdmin {
		txs, err = h.transactions.List(ctx, filter)
	} else {
		txs, err = h.transactions.ListByUser(ctx, user.ID)
		if filter != "all" {
			txs = filterByStatus(txs, domain.TransactionStatus(filter))
		}
	}
	if err != nil {
		logger(c).Error("Failed to list transactions", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load transactions")
	}

	return render(c, pages.Transactions(pageData(c, "Transactions"), txs, filter, user.IsAdmin))
}

// Approve marks a transfer approved. Admin only.
func (h *TransactionsHandler) Approve(c echo.Context) error {
	return h.review(c, domain.TxApproved, "Transfer approved.")
}

// Decline marks a transfer declined. Admin only.
func (h *TransactionsHandler) Decline(c echo.Context) error {
	return h.review(c, domain.TxDeclined, "Transfer declined.")
}

func (h *TransactionsHandler) review(c echo.Context, status domain.TransactionStatus, message string) error {
	user := middleware.CurrentUser(c)
	ref := c.FormValue("reference")

	if _, err := h.transactions.UpdateStatusByReference(c.Request().Context(), ref, status, user.ID); err != nil {
		logger(c).Warn("Transaction review failed", "reference", ref, "status", status, "error", err)
		view.SetFlashError(c, "This transfer could not be updated. It may have changed since the page loaded.")
		return c.Redirect(http.StatusSeeOther, "/transactions")
	}

	view.SetFlashSuccess(c, message)
	return c.Redirect(http.StatusSeeOther, "/transactions")
}

func filterByStatus(txs []domain.Transaction, status domain.TransactionStatus) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range txs {
		if tx.Status == status {
			out = append(out, tx)
		}
	}
	return out
}
