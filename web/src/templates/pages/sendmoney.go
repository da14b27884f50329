package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/format"
	"github.com/remitflow/remitflow/web/src/templates/components"
	"github.com/remitflow/remitflow/web/src/templates/layouts"
)

// SendMoneyPrefill carries handoff values consumed from a transfer
// request, prefilling the form once.
type SendMoneyPrefill struct {
	RecipientName  string
	RecipientEmail string
	Amount         string
	Currency       string
	Country        string
	Reference      string
	Expiry         string
}

// SendMoney renders the create-transaction form next to the sender's
// recent transfers.
func SendMoney(data layouts.PageData, prefill SendMoneyPrefill, recent []domain.Transaction) cmp.Node {
	countries := format.Countries()
	countryOptions := make(map[string]string, len(countries))
	for _, c := range countries {
		label := c
		if code, ok := format.CurrencyForCountry(c); ok {
			label = c + " (" + code + ")"
		}
		countryOptions[c] = label
	}

	return layouts.Base(data,
		g.H1(g.Class("text-2xl font-bold mb-6"), cmp.Text("Send money")),
		g.Div(
			g.Class("grid grid-cols-1 gap-8 lg:grid-cols-2"),
			components.Card("New transfer",
				g.Form(
					g.Action("/send-money"), g.Method("post"),
					cmp.If(prefill.Reference != "", g.Input(g.Type("hidden"), g.Name("request_reference"), g.Value(prefill.Reference))),
					cmp.If(prefill.Reference != "", acceptedRequestNote(prefill)),
					components.Field("recipient_name", "Recipient name", "text", prefill.RecipientName, g.Required()),
					components.Field("recipient_email", "Recipient email", "email", prefill.RecipientEmail, g.Required()),
					components.SelectField("send_from_country", "Sending from", "United States", countries, countryOptions),
					components.SelectField("send_to_country", "Sending to", prefill.Country, countries, countryOptions),
					components.Field("amount", "Amount to send", "number", prefill.Amount, g.Required(), g.Step("0.01"), g.Min("0.01")),
					components.Field("description", "Description (optional)", "text", ""),
					components.SubmitButton("Send transfer"),
				),
			),
			g.Div(
				g.H2(g.Class("text-lg font-semibold mb-4"), cmp.Text("Recent transfers")),
				components.TransactionsTable("recent-transactions", recent, nil),
			),
		),
	)
}

// acceptedRequestNote summarizes the accepted request feeding the form:
// its reference, the currency the recipient receives, and how long the
// transfer stays valid.
func acceptedRequestNote(prefill SendMoneyPrefill) cmp.Node {
	text := "Prefilled from accepted request " + prefill.Reference
	if prefill.Currency != "" {
		text += ", paid out in " + prefill.Currency
	}
	if prefill.Expiry != "" {
		text += ", valid until " + prefill.Expiry
	}
	return g.P(g.Class("mb-4 rounded bg-indigo-50 px-3 py-2 text-sm text-indigo-700"), cmp.Text(text+"."))
}
