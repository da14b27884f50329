package pages

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/web/src/templates/components"
	"github.com/remitflow/remitflow/web/src/templates/layouts"
)

var txStatusFilters = []string{"all", "pending", "processing", "accepted", "approved", "declined", "failed", "completed"}

// Transactions renders the review table. Admins get approve/decline
// actions on pending rows.
func Transactions(data layouts.PageData, txs []domain.Transaction, filter string, isAdmin bool) cmp.Node {
	var actions func(domain.Transaction) cmp.Node
	if isAdmin {
		actions = adminTxActions
	}

	return layouts.Base(data,
		g.Div(
			g.Class("flex items-center justify-between mb-6"),
			g.H1(g.Class("text-2xl font-bold"), cmp.Text("Transactions")),
			filterTabs(filter),
		),
		components.TransactionsTable("transactions-table", txs, actions),
	)
}

func filterTabs(active string) cmp.Node {
	var tabs []cmp.Node
	for _, status := range txStatusFilters {
		classes := "rounded-full px-3 py-1 text-xs font-medium "
		if status == active {
			classes += "bg-indigo-600 text-white"
		} else {
			classes += "bg-white text-gray-600 shadow hover:bg-gray-50"
		}
		tabs = append(tabs, g.A(
			g.Href("/transactions?status="+status),
			hx.Boost("true"),
			g.Class(classes),
			cmp.Text(status),
		))
	}
	return g.Div(g.Class("flex flex-wrap gap-2"), cmp.Group(tabs))
}

func adminTxActions(tx domain.Transaction) cmp.Node {
	if tx.Status != domain.TxPending && tx.Status != domain.TxAccepted {
		return cmp.Text("")
	}
	return g.Div(
		g.Class("flex gap-2"),
		g.Form(
			g.Action("/transactions/approve"), g.Method("post"), g.Class("inline"),
			g.Input(g.Type("hidden"), g.Name("reference"), g.Value(tx.ReferenceNumber)),
			g.Button(
				g.Type("submit"),
				g.Class("disable-on-submit rounded bg-green-600 px-3 py-1 text-xs font-medium text-white hover:bg-green-700"),
				cmp.Text("Approve"),
			),
		),
		g.Form(
			g.Action("/transactions/decline"), g.Method("post"), g.Class("inline"),
			g.Input(g.Type("hidden"), g.Name("reference"), g.Value(tx.ReferenceNumber)),
			g.Button(
				g.Type("submit"),
				g.Class("disable-on-submit rounded bg-red-600 px-3 py-1 text-xs font-medium text-white hover:bg-red-700"),
				cmp.Text("Decline"),
			),
		),
	)
}
