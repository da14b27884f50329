package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/remitflow/remitflow/internal/view"
)

var toastClasses = map[string]string{
	"success": "bg-green-50 border-green-400 text-green-800",
	"error":   "bg-red-50 border-red-400 text-red-800",
	"warning": "bg-yellow-50 border-yellow-400 text-yellow-800",
	"info":    "bg-blue-50 border-blue-400 text-blue-800",
}

// Toast renders a single dismissible message. The data-ttl attribute drives
// the client-side auto-dismiss timer.
func Toast(level, message string) cmp.Node {
	classes, ok := toastClasses[level]
	if !ok {
		classes = toastClasses["info"]
	}
	return g.Div(
		g.Class("toast border-l-4 rounded shadow px-4 py-3 flex items-start justify-between gap-3 "+classes),
		g.Data("toast", level),
		g.Data("ttl", "5000"),
		g.Span(cmp.Text(message)),
		g.Button(
			g.Type("button"),
			g.Class("toast-dismiss font-bold opacity-60 hover:opacity-100"),
			g.Aria("label", "Dismiss"),
			cmp.Text("×"),
		),
	)
}

// ToastStack renders the fixed-position toast container seeded with the
// request's flash messages. The stack keeps at most five toasts visible;
// the client script drops the oldest beyond that.
func ToastStack(flashes view.FlashData) cmp.Node {
	var toasts []cmp.Node
	for _, m := range flashes.Success {
		toasts = append(toasts, Toast("success", m))
	}
	for _, m := range flashes.Error {
		toasts = append(toasts, Toast("error", m))
	}
	for _, m := range flashes.Warning {
		toasts = append(toasts, Toast("warning", m))
	}
	for _, m := range flashes.Info {
		toasts = append(toasts, Toast("info", m))
	}

	return g.Div(
		g.ID("toast-stack"),
		g.Class("fixed top-4 right-4 z-50 flex flex-col gap-2 w-80"),
		g.Data("max-visible", "5"),
		cmp.Group(toasts),
	)
}
