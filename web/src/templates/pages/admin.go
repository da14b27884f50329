package pages

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/format"
	"github.com/remitflow/remitflow/web/src/templates/components"
	"github.com/remitflow/remitflow/web/src/templates/layouts"
)

var profileStatusFilters = []string{"all", "pending", "approved", "rejected", "suspended"}

// AdminUsers renders the user review page: profile list with status and
// KYC badges, plus approve/reject/suspend actions with review notes.
func AdminUsers(data layouts.PageData, profiles []domain.Profile, filter string) cmp.Node {
	return layouts.Base(data,
		g.Div(
			g.Class("flex items-center justify-between mb-6"),
			g.H1(g.Class("text-2xl font-bold"), cmp.Text("User review")),
			profileFilterTabs(filter),
		),
		ProfileList(profiles),
	)
}

// ProfileList is the replaceable fragment pushed over the websocket when a
// profile changes.
func ProfileList(profiles []domain.Profile) cmp.Node {
	var cards []cmp.Node
	for _, p := range profiles {
		cards = append(cards, profileCard(p))
	}
	if len(cards) == 0 {
		cards = append(cards, g.P(g.Class("text-gray-400"), cmp.Text("No users match this filter.")))
	}

	return g.Div(
		g.ID("profile-list"),
		g.Class("space-y-4"),
		cmp.Group(cards),
	)
}

func profileFilterTabs(active string) cmp.Node {
	var tabs []cmp.Node
	for _, status := range profileStatusFilters {
		classes := "rounded-full px-3 py-1 text-xs font-medium "
		if status == active {
			classes += "bg-indigo-600 text-white"
		} else {
			classes += "bg-white text-gray-600 shadow hover:bg-gray-50"
		}
		tabs = append(tabs, g.A(
			g.Href("/admin/users?status="+status),
			hx.Boost("true"),
			g.Class(classes),
			cmp.Text(status),
		))
	}
	return g.Div(g.Class("flex flex-wrap gap-2"), cmp.Group(tabs))
}

func profileCard(p domain.Profile) cmp.Node {
	profileID := ""
	if p.ID != nil {
		profileID = p.ID.String()
	}

	created := ""
	if p.CreatedAt != nil {
		created = format.Date(p.CreatedAt.Time)
	}

	return g.Div(
		g.Class("bg-white rounded-lg shadow p-6"),
		g.Div(
			g.Class("flex items-start justify-between"),
			g.Div(
				g.P(g.Class("font-semibold"), cmp.Text(p.FullName())),
				g.P(g.Class("text-sm text-gray-500"), cmp.Text(p.Email)),
				g.P(g.Class("text-sm text-gray-500"), cmp.Text(p.Country+" · joined "+created)),
			),
			g.Div(
				g.Class("flex flex-col items-end gap-2"),
				components.StatusBadge(string(p.Status)),
				g.Span(g.Class("text-xs text-gray-500"), cmp.Text("KYC: "+string(p.KYCStatus))),
			),
		),
		cmp.If(p.ReviewNotes != "", g.P(
			g.Class("mt-3 rounded bg-gray-50 p-2 text-sm text-gray-600"),
			cmp.Text("Notes: "+p.ReviewNotes),
		)),
		reviewForm(profileID, p.Status),
	)
}

// reviewForm renders the decision controls. One submit per decision; the
// notes field travels with whichever button is pressed.
func reviewForm(profileID string, status domain.ProfileStatus) cmp.Node {
	return g.Form(
		g.Action("/admin/users/review"), g.Method("post"),
		g.Class("mt-4 flex flex-wrap items-end gap-2"),
		g.Input(g.Type("hidden"), g.Name("profile_id"), g.Value(profileID)),
		g.Div(
			g.Class("grow"),
			g.Input(
				g.Type("text"),
				g.Name("notes"),
				g.Placeholder("Review notes (optional)"),
				g.Class("block w-full rounded-md border-gray-300 text-sm shadow-sm"),
			),
		),
		cmp.If(status != domain.ProfileApproved, decisionButton("approve", "Approve", "bg-green-600 hover:bg-green-700")),
		cmp.If(status != domain.ProfileRejected, decisionButton("reject", "Reject", "bg-red-600 hover:bg-red-700")),
		cmp.If(status != domain.ProfileSuspended, decisionButton("suspend", "Suspend", "bg-yellow-600 hover:bg-yellow-700")),
	)
}

func decisionButton(value, label, colors string) cmp.Node {
	return g.Button(
		g.Type("submit"),
		g.Name("decision"),
		g.Value(value),
		g.Class("disable-on-submit rounded px-3 py-2 text-xs font-medium text-white "+colors),
		cmp.Text(label),
	)
}
