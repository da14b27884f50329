package pages

import (
	"strconv"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/format"
	"github.com/remitflow/remitflow/web/src/templates/components"
	"github.com/remitflow/remitflow/web/src/templates/layouts"
)

// Dashboard renders the stats cards and the latest transactions. The
// transaction list fragment is replaced in place by both the refresh
// action and websocket pushes.
func Dashboard(data layouts.PageData, stats *domain.DashboardStats, txs []domain.Transaction, currency string) cmp.Node {
	return layouts.Base(data,
		g.Div(
			g.Class("flex items-center justify-between mb-6"),
			g.H1(g.Class("text-2xl font-bold"), cmp.Text("Dashboard")),
			g.Button(
				hx.Get("/dashboard/transactions"),
				hx.Target("#dashboard-transactions"),
				hx.Swap("outerHTML"),
				g.Class("rounded-md bg-white px-4 py-2 text-sm font-medium shadow hover:bg-gray-50"),
				cmp.Text("Refresh"),
			),
		),
		g.Div(
			g.Class("grid grid-cols-1 gap-4 sm:grid-cols-2 lg:grid-cols-4 mb-8"),
			components.StatCard("Total sent", format.Currency(stats.TotalSent, currency)),
			components.StatCard("Completed transfers", strconv.Itoa(stats.CompletedTransfers)),
			components.StatCard("Pending transfers", strconv.Itoa(stats.PendingTransfers)),
			components.StatCard("Recipients", strconv.Itoa(stats.TotalRecipients)),
		),
		g.H2(g.Class("text-lg font-semibold mb-4"), cmp.Text("Latest transactions")),
		components.TransactionsTable("dashboard-transactions", txs, nil),
	)
}
