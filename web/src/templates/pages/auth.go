package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/remitflow/remitflow/web/src/templates/components"
	"github.com/remitflow/remitflow/web/src/templates/layouts"
)

func authShell(data layouts.PageData, heading string, children ...cmp.Node) cmp.Node {
	return layouts.Base(data,
		g.Div(
			g.Class("mx-auto max-w-md"),
			components.Card("",
				g.H1(g.Class("text-2xl font-bold mb-6 text-center"), cmp.Text(heading)),
				cmp.Group(children),
			),
		),
	)
}

// Login renders the sign-in form. lastEmail prefills the address from the
// remember-me preference cookie.
func Login(data layouts.PageData, lastEmail string, rememberMe bool) cmp.Node {
	rememberAttrs := []cmp.Node{
		g.Type("checkbox"),
		g.Name("remember_me"),
		g.ID("remember_me"),
		g.Class("rounded border-gray-300"),
	}
	if rememberMe {
		rememberAttrs = append(rememberAttrs, g.Checked())
	}

	return authShell(data, "Sign in",
		g.Form(
			g.Action("/auth/login"), g.Method("post"),
			components.Field("email", "Email address", "email", lastEmail, g.Required()),
			components.Field("password", "Password", "password", "", g.Required()),
			g.Div(
				g.Class("mb-4 flex items-center gap-2"),
				g.Input(rememberAttrs...),
				g.Label(g.For("remember_me"), g.Class("text-sm text-gray-600"), cmp.Text("Remember me")),
			),
			components.SubmitButton("Sign in"),
		),
		g.Div(
			g.Class("mt-4 flex justify-between text-sm"),
			g.A(g.Href("/auth/forgot-password"), g.Class("text-indigo-600 hover:underline"), cmp.Text("Forgot password?")),
			g.A(g.Href("/auth/register"), g.Class("text-indigo-600 hover:underline"), cmp.Text("Create account")),
		),
	)
}

// Register renders the sign-up form with the client-side password strength
// meter hook.
func Register(data layouts.PageData) cmp.Node {
	return authShell(data, "Create your account",
		g.Form(
			g.Action("/auth/register"), g.Method("post"),
			components.Field("full_name", "Full name", "text", "", g.Required()),
			components.Field("email", "Email address", "email", "", g.Required()),
			components.Field("password", "Password", "password", "", g.Required()),
			g.Div(g.ID("password-strength"), g.Class("mb-4 text-sm text-gray-500")),
			g.Div(
				g.Class("mb-4 flex items-center gap-2"),
				g.Input(g.Type("checkbox"), g.Name("accept_terms"), g.ID("accept_terms"), g.Required(), g.Class("rounded border-gray-300")),
				g.Label(g.For("accept_terms"), g.Class("text-sm text-gray-600"), cmp.Text("I agree to the terms of service")),
			),
			components.SubmitButton("Create account"),
		),
		g.P(
			g.Class("mt-4 text-center text-sm text-gray-600"),
			cmp.Text("Already have an account? "),
			g.A(g.Href("/auth/login"), g.Class("text-indigo-600 hover:underline"), cmp.Text("Sign in")),
		),
	)
}

// ForgotPassword renders the reset-email request form.
func ForgotPassword(data layouts.PageData) cmp.Node {
	return authShell(data, "Reset your password",
		g.P(
			g.Class("mb-4 text-sm text-gray-600"),
			cmp.Text("Enter your email address and we'll send you a link to reset your password."),
		),
		g.Form(
			g.Action("/auth/forgot-password"), g.Method("post"),
			components.Field("email", "Email address", "email", "", g.Required()),
			components.SubmitButton("Send reset link"),
		),
	)
}

// ResetPassword renders the new-password form for a reset token.
func ResetPassword(data layouts.PageData, token string) cmp.Node {
	return authShell(data, "Choose a new password",
		g.Form(
			g.Action("/auth/reset-password"), g.Method("post"),
			g.Input(g.Type("hidden"), g.Name("token"), g.Value(token)),
			components.Field("password", "New password", "password", "", g.Required()),
			g.Div(g.ID("password-strength"), g.Class("mb-4 text-sm text-gray-500")),
			components.Field("password_confirm", "Confirm new password", "password", "", g.Required()),
			components.SubmitButton("Update password"),
		),
	)
}
