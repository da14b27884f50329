package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/remitflow/remitflow/internal/domain"
	mail "github.com/remitflow/remitflow/internal/email"
	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/internal/security"
	"github.com/remitflow/remitflow/internal/view"
	"github.com/remitflow/remitflow/web/src/templates/pages"
)

// rememberEmailCookie stores the last signed-in email when the user ticks
// "remember me" on the login form.
const rememberEmailCookie = "remembered_email"

// AuthHandler holds the dependencies for the authentication pages.
type AuthHandler struct {
	auth    domain.AuthService
	emailer domain.EmailSender
	baseURL string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth domain.AuthService, emailer domain.EmailSender, baseURL string) *AuthHandler {
	return &AuthHandler{auth: auth, emailer: emailer, baseURL: baseURL}
}

// LoginGet renders the login page. Signed-in users are sent straight to
// the dashboard instead.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	if h.alreadySignedIn(c) {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	// A failed POST preserves the submitted email in a flash; otherwise the
	// remember-me cookie prefills the field.
	lastEmail := consumeFormEmail(c)
	rememberMe := false
	if lastEmail == "" {
		if cookie, err := c.Cookie(rememberEmailCookie); err == nil && cookie.Value != "" {
			lastEmail = cookie.Value
			rememberMe = true
		}
	}

	return render(c, pages.Login(pageData(c, "Log in"), lastEmail, rememberMe))
}

// LoginPost handles the login form submission.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	rememberMe := c.FormValue("remember_me") != ""

	sess, err := h.auth.SignIn(c.Request().Context(), email, password)
	if err != nil {
		logger(c).Warn("Failed login attempt", "email", email, "error", err)
		view.SetFlashError(c, "Invalid email or password.")
		stashFormEmail(c, email)
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}

	if rememberMe {
		c.SetCookie(&http.Cookie{
			Name:     rememberEmailCookie,
			Value:    email,
			Path:     "/auth",
			Expires:  time.Now().UTC().Add(30 * 24 * time.Hour),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	} else {
		c.SetCookie(&http.Cookie{Name: rememberEmailCookie, Value: "", Path: "/auth", MaxAge: -1})
	}

	setAuthCookie(c, sess.Token)
	view.SetFlashSuccess(c, "Logged in successfully!")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// RegisterGet renders the registration page.
func (h *AuthHandler) RegisterGet(c echo.Context) error {
	if h.alreadySignedIn(c) {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return render(c, pages.Register(pageData(c, "Create account")))
}

// RegisterPost handles the registration form submission. Validation runs
// locally; the account service is only called once the input is sound.
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	passwordConfirm := c.FormValue("password_confirm")
	fullName := security.SanitizeInput(c.FormValue("full_name"))

	fail := func(message string) error {
		view.SetFlashError(c, message)
		stashFormEmail(c, email)
		return c.Redirect(http.StatusSeeOther, "/auth/register")
	}

	if !security.ValidateEmail(email) {
		return fail("Please enter a valid email address.")
	}
	if fullName == "" {
		return fail("Please enter your full name.")
	}
	if result := security.ValidatePassword(password); !result.Valid {
		return fail("Password is too weak: " + strings.Join(result.Messages, ", "))
	}
	if password != passwordConfirm {
		return fail("Passwords do not match.")
	}
	if c.FormValue("accept_terms") == "" {
		return fail("You must accept the terms of service.")
	}

	sess, err := h.auth.SignUp(c.Request().Context(), email, password, fullName)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return fail("An account with this email already exists. Try logging in instead.")
		}
		logger(c).Error("Registration failed", "email", email, "error", err)
		return fail("We couldn't create your account right now. Please try again.")
	}

	setAuthCookie(c, sess.Token)
	view.SetFlashSuccess(c, "Welcome! Complete your profile to start sending money.")
	return c.Redirect(http.StatusSeeOther, "/onboarding")
}

// Logout clears the session cookie and returns the user to the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.AuthCookieName); err == nil && cookie.Value != "" {
		if err := h.auth.SignOut(c.Request().Context(), cookie.Value); err != nil {
			logger(c).Warn("Sign-out failed, clearing cookie anyway", "error", err)
		}
	}
	setAuthCookie(c, "")
	view.SetFlashSuccess(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/auth/login")
}

// ForgotPasswordGet renders the forgot-password page.
func (h *AuthHandler) ForgotPasswordGet(c echo.Context) error {
	return render(c, pages.ForgotPassword(pageData(c, "Forgot password")))
}

// ForgotPasswordPost handles the reset-link request. The response is the
// same whether or not the account exists, to avoid email enumeration.
func (h *AuthHandler) ForgotPasswordPost(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))

	token, err := h.auth.GenerateResetToken(c.Request().Context(), email)
	if err != nil {
		logger(c).Info("Reset token not generated, hiding from user", "email", email, "error", err)
	}

	if token != "" && h.emailer != nil {
		if err := mail.SendPasswordReset(h.emailer, email, h.baseURL, token); err != nil {
			logger(c).Error("Failed to send password reset email", "email", email, "error", err)
		}
	}

	view.SetFlashSuccess(c, "If an account with that email exists, a password reset link has been sent.")
	return c.Redirect(http.StatusSeeOther, "/auth/forgot-password")
}

// ResetPasswordGet renders the password reset form for a token link.
func (h *AuthHandler) ResetPasswordGet(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		view.SetFlashError(c, "A valid reset token is required to change your password.")
		return c.Redirect(http.StatusSeeOther, "/auth/forgot-password")
	}
	return render(c, pages.ResetPassword(pageData(c, "Reset password"), token))
}

// ResetPasswordPost sets the new password and signs the user in.
func (h *AuthHandler) ResetPasswordPost(c echo.Context) error {
	token := c.FormValue("token")
	password := c.FormValue("password")
	passwordConfirm := c.FormValue("password_confirm")

	if password != passwordConfirm {
		view.SetFlashError(c, "Passwords do not match.")
		return c.Redirect(http.StatusSeeOther, "/auth/reset-password?token="+token)
	}
	if result := security.ValidatePassword(password); !result.Valid {
		view.SetFlashError(c, "Password is too weak: "+strings.Join(result.Messages, ", "))
		return c.Redirect(http.StatusSeeOther, "/auth/reset-password?token="+token)
	}

	user, err := h.auth.ResetPassword(c.Request().Context(), token, password)
	if err != nil {
		logger(c).Warn("Password reset failed", "error", err)
		view.SetFlashError(c, "This reset link is invalid or has expired. Please request a new one.")
		return c.Redirect(http.StatusSeeOther, "/auth/forgot-password")
	}

	sess, err := h.auth.SignIn(c.Request().Context(), user.Email, password)
	if err != nil {
		logger(c).Error("Sign-in after password reset failed", "error", err)
		view.SetFlashError(c, "Password reset successful, but automatic login failed. Please log in manually.")
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}

	setAuthCookie(c, sess.Token)
	view.SetFlashSuccess(c, "Your password has been reset. You are now logged in.")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// alreadySignedIn reports whether the request carries a valid session.
// Auth pages are public routes, so the check happens in the handler.
func (h *AuthHandler) alreadySignedIn(c echo.Context) bool {
	cookie, err := c.Cookie(middleware.AuthCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	user, err := h.auth.Authenticate(c.Request().Context(), cookie.Value)
	return err == nil && user != nil
}

// stashFormEmail keeps a submitted email across the redirect so the form
// can be re-rendered with the value filled in.
func stashFormEmail(c echo.Context, email string) {
	sess, _ := session.Get("flash-session", c)
	sess.AddFlash(email, "form_email")
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		logger(c).Error("Failed to save session", "error", err)
	}
}

// consumeFormEmail pops a stashed form email, if any.
func consumeFormEmail(c echo.Context) string {
	sess, err := session.Get("flash-session", c)
	if err != nil {
		return ""
	}
	flashes := sess.Flashes("form_email")
	_ = sess.Save(c.Request(), c.Response())
	if len(flashes) > 0 {
		if email, ok := flashes[0].(string); ok {
			return email
		}
	}
	return ""
}
