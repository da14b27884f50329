package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/format"
)

// DedupeByReference removes transactions whose reference number was already
// seen, keeping the first occurrence. A subscription-driven refresh can
// race a resync, so every list render passes through here before hitting
// the page.
func DedupeByReference(txs []domain.Transaction) []domain.Transaction {
	seen := make(map[string]struct{}, len(txs))
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if _, dup := seen[tx.ReferenceNumber]; dup {
			continue
		}
		seen[tx.ReferenceNumber] = struct{}{}
		out = append(out, tx)
	}
	return out
}

// StatusBadge renders a transaction or profile status pill.
func StatusBadge(status string) cmp.Node {
	return g.Span(
		g.Class(format.StatusBadgeClass(status)),
		cmp.Text(format.Capitalize(status)),
	)
}

// TransactionsTable renders the transaction list. The id makes the table a
// replaceable fragment for websocket pushes; rows deduplicate on reference
// number.
func TransactionsTable(id string, txs []domain.Transaction, actions func(domain.Transaction) cmp.Node) cmp.Node {
	txs = DedupeByReference(txs)

	var rows []cmp.Node
	for _, tx := range txs {
		rows = append(rows, transactionRow(tx, actions))
	}

	return g.Div(
		g.ID(id),
		g.Class("overflow-x-auto bg-white rounded-lg shadow"),
		g.Table(
			g.Class("min-w-full divide-y divide-gray-200 text-sm"),
			g.THead(
				g.Tr(
					headerCell("Reference"),
					headerCell("Recipient"),
					headerCell("Amount"),
					headerCell("Receives"),
					headerCell("Status"),
					headerCell("Date"),
					cmp.If(actions != nil, headerCell("")),
				),
			),
			g.TBody(
				g.Class("divide-y divide-gray-100"),
				cmp.If(len(rows) == 0, emptyRow(actions != nil)),
				cmp.Group(rows),
			),
		),
	)
}

func transactionRow(tx domain.Transaction, actions func(domain.Transaction) cmp.Node) cmp.Node {
	date := ""
	if tx.CreatedAt != nil {
		date = format.Date(tx.CreatedAt.Time)
	}
	return g.Tr(
		g.Data("reference", tx.ReferenceNumber),
		cell(g.Span(g.Class("font-mono text-xs"), cmp.Text(tx.ReferenceNumber))),
		cell(cmp.Text(tx.RecipientName)),
		cell(cmp.Text(format.Currency(tx.TotalToPay, tx.SourceCurrency))),
		cell(cmp.Text(format.Currency(tx.ReceivingAmount, tx.TargetCurrency))),
		cell(StatusBadge(string(tx.Status))),
		cell(cmp.Text(date)),
		cmp.Iff(actions != nil, func() cmp.Node { return cell(actions(tx)) }),
	)
}

func headerCell(label string) cmp.Node {
	return g.Th(
		g.Class("px-4 py-3 text-left text-xs font-semibold uppercase tracking-wide text-gray-500"),
		cmp.Text(label),
	)
}

func cell(child cmp.Node) cmp.Node {
	return g.Td(g.Class("px-4 py-3"), child)
}

func emptyRow(hasActions bool) cmp.Node {
	span := "6"
	if hasActions {
		span = "7"
	}
	return g.Tr(
		g.Td(
			g.ColSpan(span),
			g.Class("px-4 py-8 text-center text-gray-400"),
			cmp.Text("No transactions yet."),
		),
	)
}
