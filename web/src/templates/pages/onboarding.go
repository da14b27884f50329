package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/format"
	"github.com/remitflow/remitflow/web/src/templates/components"
	"github.com/remitflow/remitflow/web/src/templates/layouts"
)

var idDocumentTypes = []string{"passport", "national_id", "drivers_license"}

var idDocumentLabels = map[string]string{
	"passport":        "Passport",
	"national_id":     "National ID card",
	"drivers_license": "Driver's license",
}

// Onboarding renders the profile completion form with the identity
// document upload. Field values come from the partially saved profile so
// a failed submission doesn't lose input.
func Onboarding(data layouts.PageData, profile *domain.Profile) cmp.Node {
	if profile == nil {
		profile = &domain.Profile{}
	}

	countries := format.Countries()
	countryOptions := make(map[string]string, len(countries))
	for _, c := range countries {
		countryOptions[c] = c
	}

	return layouts.Base(data,
		g.Div(
			g.Class("mx-auto max-w-2xl"),
			g.H1(g.Class("text-2xl font-bold mb-2"), cmp.Text("Complete your profile")),
			g.P(
				g.Class("mb-6 text-sm text-gray-600"),
				cmp.Text("We need a few details and an identity document before you can send money. Your account will be reviewed once submitted."),
			),
			components.Card("",
				g.Form(
					g.Action("/onboarding"), g.Method("post"), g.EncType("multipart/form-data"),
					g.Div(
						g.Class("grid grid-cols-1 gap-x-4 sm:grid-cols-2"),
						components.Field("first_name", "First name", "text", profile.FirstName, g.Required()),
						components.Field("last_name", "Last name", "text", profile.LastName, g.Required()),
					),
					components.Field("phone_number", "Phone number", "tel", profile.PhoneNumber, g.Required()),
					components.Field("date_of_birth", "Date of birth", "date", profile.DateOfBirth, g.Required()),
					components.Field("address", "Street address", "text", profile.Address, g.Required()),
					g.Div(
						g.Class("grid grid-cols-1 gap-x-4 sm:grid-cols-3"),
						components.Field("city", "City", "text", profile.City, g.Required()),
						components.SelectField("country", "Country", profile.Country, countries, countryOptions),
						components.Field("postal_code", "Postal code", "text", profile.PostalCode, g.Required()),
					),
					g.Div(
						g.Class("grid grid-cols-1 gap-x-4 sm:grid-cols-2"),
						components.SelectField("id_document_type", "ID document type", profile.IDDocumentType, idDocumentTypes, idDocumentLabels),
						components.Field("id_document_number", "ID document number", "text", profile.IDDocumentNumber, g.Required()),
					),
					g.Div(
						g.Class("mb-4"),
						g.Label(
							g.For("id_document"),
							g.Class("block text-sm font-medium text-gray-700"),
							cmp.Text("Identity document (jpeg, png, gif or pdf, max 5 MB)"),
						),
						g.Input(
							g.Type("file"),
							g.Name("id_document"),
							g.ID("id_document"),
							g.Accept("image/jpeg,image/png,image/gif,application/pdf"),
							g.Required(),
							g.Class("mt-1 block w-full text-sm"),
						),
					),
					components.SubmitButton("Submit for review"),
				),
			),
		),
	)
}

// PendingReview is the blocking notice shown in place of gated pages while
// the profile awaits (or failed) review.
func PendingReview(data layouts.PageData, profile *domain.Profile) cmp.Node {
	heading := "Your account is under review"
	body := "We're reviewing your details and documents. You'll be able to send money as soon as your account is approved."

	if profile != nil {
		switch profile.Status {
		case domain.ProfileRejected:
			heading = "Your account was not approved"
			body = "Your submitted details could not be verified. Please update your profile and documents and resubmit."
		case domain.ProfileSuspended:
			heading = "Your account is suspended"
			body = "Your account has been suspended. Contact support for more information."
		}
	}

	return layouts.Base(data,
		g.Div(
			g.Class("mx-auto max-w-lg text-center"),
			components.Card("",
				g.H1(g.Class("text-2xl font-bold mb-4"), cmp.Text(heading)),
				g.P(g.Class("text-gray-600 mb-6"), cmp.Text(body)),
				cmp.Iff(profile != nil && profile.ReviewNotes != "", func() cmp.Node {
					return g.P(
						g.Class("rounded bg-yellow-50 border border-yellow-200 p-3 text-sm text-yellow-800 mb-6"),
						cmp.Text(profile.ReviewNotes),
					)
				}),
				g.A(
					g.Href("/account"),
					g.Class("text-indigo-600 hover:underline"),
					cmp.Text("Review your account details"),
				),
			),
		),
	)
}
