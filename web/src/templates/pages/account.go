package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/format"
	"github.com/remitflow/remitflow/web/src/templates/components"
	"github.com/remitflow/remitflow/web/src/templates/layouts"
)

// Account renders the settings page: profile details, notification
// preferences, password change, profile picture and the 2FA flag. Each
// card posts to its own endpoint so one mutation maps to one action.
func Account(data layouts.PageData, profile *domain.Profile, pictureURL string) cmp.Node {
	countries := format.Countries()
	countryOptions := make(map[string]string, len(countries))
	for _, c := range countries {
		countryOptions[c] = c
	}

	return layouts.Base(data,
		g.H1(g.Class("text-2xl font-bold mb-6"), cmp.Text("Account settings")),
		g.Div(
			g.Class("grid grid-cols-1 gap-8 lg:grid-cols-2"),

			components.Card("Profile details",
				g.Form(
					g.Action("/account/profile"), g.Method("post"),
					g.Div(
						g.Class("grid grid-cols-1 gap-x-4 sm:grid-cols-2"),
						components.Field("first_name", "First name", "text", profile.FirstName, g.Required()),
						components.Field("last_name", "Last name", "text", profile.LastName, g.Required()),
					),
					components.Field("phone_number", "Phone number", "tel", profile.PhoneNumber, g.Required()),
					components.Field("address", "Street address", "text", profile.Address, g.Required()),
					g.Div(
						g.Class("grid grid-cols-1 gap-x-4 sm:grid-cols-3"),
						components.Field("city", "City", "text", profile.City, g.Required()),
						components.SelectField("country", "Country", profile.Country, countries, countryOptions),
						components.Field("postal_code", "Postal code", "text", profile.PostalCode, g.Required()),
					),
					components.SubmitButton("Save profile"),
				),
			),

			g.Div(
				g.Class("space-y-8"),

				components.Card("Profile picture",
					cmp.If(pictureURL != "", g.Img(
						g.Src(pictureURL),
						g.Alt("Profile picture"),
						g.Class("mb-4 h-24 w-24 rounded-full object-cover"),
					)),
					g.Form(
						g.Action("/account/picture"), g.Method("post"), g.EncType("multipart/form-data"),
						g.Input(
							g.Type("file"),
							g.Name("picture"),
							g.Accept("image/jpeg,image/png,image/gif"),
							g.Required(),
							g.Class("mb-4 block w-full text-sm"),
						),
						components.SubmitButton("Upload picture"),
					),
				),

				components.Card("Notifications",
					g.Form(
						g.Action("/account/preferences"), g.Method("post"),
						preferenceToggle("email_notifications", "Email notifications", profile.Preferences.EmailNotifications),
						preferenceToggle("sms_notifications", "SMS notifications", profile.Preferences.SMSNotifications),
						preferenceToggle("push_notifications", "Push notifications", profile.Preferences.PushNotifications),
						components.SubmitButton("Save preferences"),
					),
				),

				components.Card("Security",
					g.Form(
						g.Action("/account/password"), g.Method("post"),
						components.Field("current_password", "Current password", "password", "", g.Required()),
						components.Field("new_password", "New password", "password", "", g.Required()),
						g.Div(g.ID("password-strength"), g.Class("mb-4 text-sm text-gray-500")),
						components.SubmitButton("Change password"),
					),
					g.Form(
						g.Action("/account/two-factor"), g.Method("post"), g.Class("mt-6"),
						preferenceToggle("two_factor_enabled", "Two-factor authentication", profile.TwoFactorEnabled),
						components.SubmitButton("Save"),
					),
				),
			),
		),
	)
}

func preferenceToggle(name, label string, checked bool) cmp.Node {
	attrs := []cmp.Node{
		g.Type("checkbox"),
		g.Name(name),
		g.ID(name),
		g.Value("true"),
		g.Class("rounded border-gray-300"),
	}
	if checked {
		attrs = append(attrs, g.Checked())
	}
	return g.Div(
		g.Class("mb-4 flex items-center gap-2"),
		g.Input(attrs...),
		g.Label(g.For(name), g.Class("text-sm text-gray-700"), cmp.Text(label)),
	)
}
