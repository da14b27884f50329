package pages

import (
	"strings"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/format"
	"github.com/remitflow/remitflow/web/src/templates/components"
	"github.com/remitflow/remitflow/web/src/templates/layouts"
)

// RequestTransfer renders the inbound-request form and the caller's open
// requests with accept/decline actions on the matching transactions.
func RequestTransfer(data layouts.PageData, requests []domain.TransferRequest, incoming []domain.Transaction) cmp.Node {
	countries := format.Countries()
	countryOptions := make(map[string]string, len(countries))
	for _, c := range countries {
		countryOptions[c] = c
	}

	return layouts.Base(data,
		g.H1(g.Class("text-2xl font-bold mb-6"), cmp.Text("Transfer requests")),
		g.Div(
			g.Class("grid grid-cols-1 gap-8 lg:grid-cols-2"),
			components.Card("Request a transfer",
				g.Form(
					g.Action("/request-transfer"), g.Method("post"),
					components.Field("recipient_email", "Request from (email)", "email", "", g.Required()),
					components.Field("amount", "Amount", "number", "", g.Required(), g.Step("0.01"), g.Min("0.01")),
					components.SelectField("country", "Country", "", countries, countryOptions),
					components.SubmitButton("Send request"),
				),
			),
			g.Div(
				g.H2(g.Class("text-lg font-semibold mb-4"), cmp.Text("Incoming transfers")),
				components.TransactionsTable("incoming-transactions", incoming, acceptDeclineActions),
				g.H2(g.Class("text-lg font-semibold my-4"), cmp.Text("My requests")),
				requestList(requests),
			),
		),
	)
}

// acceptDeclineActions renders the acceptance form keyed by the
// transaction's reference number. Accepting requires choosing the
// settling bank, province and credit union first.
func acceptDeclineActions(tx domain.Transaction) cmp.Node {
	if tx.Status != domain.TxPending && tx.Status != domain.TxProcessing {
		return cmp.Text("")
	}
	return g.Div(
		g.Class("flex flex-col gap-2"),
		g.Form(
			g.Action("/request-transfer/accept"), g.Method("post"),
			g.Input(g.Type("hidden"), g.Name("reference"), g.Value(tx.ReferenceNumber)),
			institutionSelect("financial_institution", "Financial institution", format.Banks()),
			institutionSelect("province_territory", "Province / territory", format.Provinces()),
			institutionSelect("credit_union", "Credit union", format.CreditUnions()),
			g.Button(
				g.Type("submit"),
				g.Class("disable-on-submit rounded bg-green-600 px-3 py-1 text-xs font-medium text-white hover:bg-green-700"),
				cmp.Text("Accept"),
			),
		),
		g.Form(
			g.Action("/request-transfer/decline"), g.Method("post"), g.Class("inline"),
			g.Input(g.Type("hidden"), g.Name("reference"), g.Value(tx.ReferenceNumber)),
			g.Button(
				g.Type("submit"),
				g.Class("disable-on-submit rounded bg-red-600 px-3 py-1 text-xs font-medium text-white hover:bg-red-700"),
				cmp.Text("Decline"),
			),
		),
	)
}

// institutionSelect renders one settlement dropdown with an empty
// placeholder so nothing is chosen by default.
func institutionSelect(name, label string, list []format.Institution) cmp.Node {
	order := []string{""}
	options := map[string]string{"": "Select " + strings.ToLower(label)}
	for _, inst := range list {
		order = append(order, inst.ID)
		options[inst.ID] = inst.Name
	}
	return components.SelectField(name, label, "", order, options)
}

func requestList(requests []domain.TransferRequest) cmp.Node {
	if len(requests) == 0 {
		return g.P(g.Class("text-gray-400"), cmp.Text("No requests yet."))
	}

	var items []cmp.Node
	for _, req := range requests {
		items = append(items, g.Li(
			g.Class("flex items-center justify-between bg-white rounded-lg shadow px-4 py-3"),
			g.Div(
				g.P(g.Class("font-medium"), cmp.Text(req.RecipientEmail)),
				g.P(g.Class("text-sm text-gray-500 font-mono"), cmp.Text(req.ReferenceNumber)),
			),
			g.Div(
				g.Class("text-right"),
				g.P(g.Class("font-semibold"), cmp.Text(format.Currency(req.Amount, req.Currency))),
				components.StatusBadge(string(req.Status)),
			),
		))
	}
	return g.Ul(g.Class("space-y-2"), cmp.Group(items))
}
