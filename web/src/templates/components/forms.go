package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Field renders a labeled input with the shared form styling.
func Field(name, label, inputType, value string, attrs ...cmp.Node) cmp.Node {
	nodes := []cmp.Node{
		g.Type(inputType),
		g.Name(name),
		g.ID(name),
		g.Class("mt-1 block w-full rounded-md border-gray-300 shadow-sm focus:border-indigo-500 focus:ring-indigo-500"),
	}
	if value != "" {
		nodes = append(nodes, g.Value(value))
	}
	nodes = append(nodes, attrs...)

	return g.Div(
		g.Class("mb-4"),
		g.Label(
			g.For(name),
			g.Class("block text-sm font-medium text-gray-700"),
			cmp.Text(label),
		),
		g.Input(nodes...),
	)
}

// SelectField renders a labeled select. options maps value to label;
// order preserves the given value ordering.
func SelectField(name, label, selected string, order []string, options map[string]string) cmp.Node {
	var opts []cmp.Node
	for _, value := range order {
		optNodes := []cmp.Node{g.Value(value), cmp.Text(options[value])}
		if value == selected {
			optNodes = append(optNodes, g.Selected())
		}
		opts = append(opts, g.Option(optNodes...))
	}

	return g.Div(
		g.Class("mb-4"),
		g.Label(
			g.For(name),
			g.Class("block text-sm font-medium text-gray-700"),
			cmp.Text(label),
		),
		g.Select(
			g.Name(name),
			g.ID(name),
			g.Class("mt-1 block w-full rounded-md border-gray-300 shadow-sm focus:border-indigo-500 focus:ring-indigo-500"),
			cmp.Group(opts),
		),
	)
}

// SubmitButton renders the primary form action. The disable-on-submit
// class lets the client script prevent duplicate submissions while a
// mutation is in flight.
func SubmitButton(label string) cmp.Node {
	return g.Button(
		g.Type("submit"),
		g.Class("disable-on-submit w-full rounded-md bg-indigo-600 px-4 py-2 font-medium text-white shadow hover:bg-indigo-700 disabled:opacity-50"),
		cmp.Text(label),
	)
}

// Card wraps content in the shared white panel styling.
func Card(title string, children ...cmp.Node) cmp.Node {
	nodes := []cmp.Node{g.Class("bg-white rounded-lg shadow p-6")}
	if title != "" {
		nodes = append(nodes, g.H2(g.Class("text-lg font-semibold mb-4"), cmp.Text(title)))
	}
	nodes = append(nodes, children...)
	return g.Div(nodes...)
}

// StatCard renders one dashboard aggregate.
func StatCard(label, value string) cmp.Node {
	return g.Div(
		g.Class("bg-white rounded-lg shadow p-6"),
		g.P(g.Class("text-sm text-gray-500"), cmp.Text(label)),
		g.P(g.Class("mt-1 text-2xl font-bold text-gray-900"), cmp.Text(value)),
	)
}
