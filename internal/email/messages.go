package email

import (
	"fmt"

	"github.com/remitflow/remitflow/internal/domain"
)

// PasswordResetSubject is the subject line on reset-link emails.
const PasswordResetSubject = "Reset your RemitFlow password"

// PasswordResetBody builds the HTML body for a reset-link email. The link
// opens the reset form with the one-time token attached.
func PasswordResetBody(baseURL, token string) string {
	link := baseURL + "/auth/reset-password?token=" + token
	return fmt.Sprintf(
		`<p>We received a request to reset the password for your RemitFlow account.</p>`+
			`<p><a href="%s">Reset your password</a></p>`+
			`<p>The link expires in one hour. If you didn't ask for this, you can ignore this email.</p>`,
		link,
	)
}

// SendPasswordReset emails a one-time reset link to the address.
func SendPasswordReset(sender domain.EmailSender, to, baseURL, token string) error {
	return sender.Send(to, PasswordResetSubject, PasswordResetBody(baseURL, token))
}
