package layouts

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/view"
	"github.com/remitflow/remitflow/web/src/templates/components"
)

// PageData carries everything the base layout needs besides the page body.
type PageData struct {
	Title   string
	User    *domain.User
	Flashes view.FlashData
	// Stream enables the push-update websocket for pages with a realtime
	// subscription.
	Stream bool
}

// Base is the outer HTML document every page renders into. It carries the
// toast stack, the loader overlay and, when requested, the websocket
// stream hookup.
func Base(data PageData, children ...cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(CalculateTitle(data.Title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/dist/css/app.min.css")),
				g.Script(g.Src("https://unpkg.com/htmx.org@1.9.12")),
			),
			g.Body(
				g.Class("min-h-screen bg-gray-50 text-gray-900"),
				navBar(data.User),
				components.ToastStack(data.Flashes),
				components.Loader(),
				g.Main(
					g.Class("container mx-auto px-4 py-8"),
					cmp.Group(children),
				),
				g.Script(g.Src("/static/dist/js/app.min.js")),
				cmp.If(data.Stream, streamScript()),
			),
		),
	)
}

func navBar(user *domain.User) cmp.Node {
	return g.Nav(
		g.Class("bg-white border-b shadow-sm"),
		g.Div(
			g.Class("container mx-auto px-4 py-3 flex items-center justify-between"),
			g.A(g.Href("/"), g.Class("text-xl font-bold text-indigo-700"), cmp.Text("RemitFlow")),
			cmp.Iff(user != nil, func() cmp.Node { return authedLinks(user) }),
			cmp.If(user == nil, guestLinks()),
		),
	)
}

func authedLinks(user *domain.User) cmp.Node {
	return g.Div(
		g.Class("flex items-center gap-4"),
		navLink("/", "Dashboard"),
		navLink("/send-money", "Send Money"),
		navLink("/request-transfer", "Requests"),
		navLink("/transactions", "Transactions"),
		cmp.If(user.IsAdmin, navLink("/admin/users", "Users")),
		navLink("/account", "Account"),
		g.Form(
			g.Action("/auth/logout"), g.Method("post"), g.Class("inline"),
			g.Button(
				g.Type("submit"),
				g.Class("text-sm text-gray-500 hover:text-gray-900"),
				cmp.Text("Sign out"),
			),
		),
	)
}

func guestLinks() cmp.Node {
	return g.Div(
		g.Class("flex items-center gap-4"),
		navLink("/auth/login", "Sign in"),
		navLink("/auth/register", "Create account"),
	)
}

func navLink(href, label string) cmp.Node {
	return g.A(
		g.Href(href),
		g.Class("text-sm font-medium text-gray-600 hover:text-indigo-700"),
		cmp.Text(label),
	)
}

// streamScript connects to the push-update endpoint. Incoming messages are
// HTML fragments swapped in by element id.
func streamScript() cmp.Node {
	return g.Script(cmp.Raw(`
(function () {
	var proto = location.protocol === "https:" ? "wss://" : "ws://";
	var ws = new WebSocket(proto + location.host + "/ws/stream");
	ws.onmessage = function (evt) {
		var tpl = document.createElement("template");
		tpl.innerHTML = evt.data.trim();
		var incoming = tpl.content.firstElementChild;
		if (!incoming || !incoming.id) return;
		var target = document.getElementById(incoming.id);
		if (target) target.replaceWith(incoming);
		else if (incoming.dataset.toast) document.getElementById("toast-stack").appendChild(incoming);
	};
})();
`))
}
