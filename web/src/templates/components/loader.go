package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Loader is the full-page spinner overlay. It doubles as the htmx request
// indicator: htmx toggles the htmx-request class on it for every outbound
// call, and the client script enforces a minimum visible delay so quick
// round-trips don't flicker.
func Loader() cmp.Node {
	return g.Div(
		g.ID("loader-overlay"),
		g.Class("loader-overlay fixed inset-0 z-40 hidden items-center justify-center bg-white/70"),
		g.Data("min-visible", "300"),
		g.Div(
			g.Class("h-12 w-12 animate-spin rounded-full border-4 border-indigo-600 border-t-transparent"),
			g.Aria("label", "Loading"),
		),
	)
}
