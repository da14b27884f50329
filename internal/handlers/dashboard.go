package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/format"
	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/web/src/templates/components"
	"github.com/remitflow/remitflow/web/src/templates/pages"
)

// DashboardHandler serves the dashboard page and its refreshable
// transaction fragment.
type DashboardHandler struct {
	transactions domain.TransactionRepository
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(transactions domain.TransactionRepository) *DashboardHandler {
	return &DashboardHandler{transactions: transactions}
}

// Show renders the dashboard: stat cards plus the recent transaction list.
// Everything is fetched fresh on every request.
func (h *DashboardHandler) Show(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	stats, err := h.transactions.Stats(ctx, user.ID)
	if err != nil {
		logger(c).Error("Failed to compute dashboard stats", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load dashboard")
	}

	txs, err := h.transactions.ListByUser(ctx, user.ID)
	if err != nil {
		logger(c).Error("Failed to list transactions", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load dashboard")
	}

	return render(c, pages.Dashboard(pageData(c, "Dashboard"), stats, txs, h.displayCurrency(c)))
}

// TransactionsFragment re-renders just the transaction table. The refresh
// button on the dashboard swaps it in without a full page load.
func (h *DashboardHandler) TransactionsFragment(c echo.Context) error {
	user := middleware.CurrentUser(c)

	txs, err := h.transactions.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		logger(c).Error("Failed to list transactions", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load transactions")
	}

	return render(c, components.TransactionsTable("dashboard-transactions", txs, nil))
}

// displayCurrency picks the currency for the stat cards from the user's
// profile country, defaulting to USD.
func (h *DashboardHandler) displayCurrency(c echo.Context) string {
	profile := middleware.CurrentProfile(c)
	if profile != nil {
		if code, ok := format.CurrencyForCountry(profile.Country); ok {
			return code
		}
	}
	return "USD"
}
