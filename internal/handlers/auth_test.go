package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/email"
	"github.com/remitflow/remitflow/internal/handlers"
)

func setupAuthTest(auth *mockAuthService) *echo.Echo {
	e := setupEcho()
	h := handlers.NewAuthHandler(auth, &email.LogSender{}, "http://localhost:8080")
	e.GET("/auth/login", h.LoginGet)
	e.POST("/auth/login", h.LoginPost)
	e.POST("/auth/register", h.RegisterPost)
	e.POST("/auth/forgot-password", h.ForgotPasswordPost)
	e.POST("/auth/reset-password", h.ResetPasswordPost)
	e.POST("/auth/logout", h.Logout)
	return e
}

func registerForm() url.Values {
	form := url.Values{}
	form.Set("email", "new@example.com")
	form.Set("full_name", "New User")
	form.Set("password", "Str0ng!pass")
	form.Set("password_confirm", "Str0ng!pass")
	form.Set("accept_terms", "on")
	return form
}

func TestRegisterPost(t *testing.T) {
	t.Run("valid registration signs in and redirects to onboarding", func(t *testing.T) {
		auth := &mockAuthService{}
		e := setupAuthTest(auth)

		rec := postForm(e, "/auth/register", registerForm())

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/onboarding", rec.Header().Get("Location"))
		assert.Equal(t, 1, auth.signUps)

		cookies := rec.Result().Cookies()
		var authCookie *http.Cookie
		for _, cookie := range cookies {
			if cookie.Name == "auth_token" {
				authCookie = cookie
			}
		}
		require.NotNil(t, authCookie, "expected the auth cookie to be set")
		assert.Equal(t, "test-token", authCookie.Value)
		assert.True(t, authCookie.HttpOnly)
	})

	t.Run("weak password never reaches the auth service", func(t *testing.T) {
		auth := &mockAuthService{}
		e := setupAuthTest(auth)

		form := registerForm()
		form.Set("password", "weak")
		form.Set("password_confirm", "weak")
		rec := postForm(e, "/auth/register", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/register", rec.Header().Get("Location"))
		assert.Equal(t, 0, auth.signUps)
	})

	t.Run("password mismatch redirects back with an error", func(t *testing.T) {
		auth := &mockAuthService{}
		e := setupAuthTest(auth)

		form := registerForm()
		form.Set("password_confirm", "Different1!")
		rec := postForm(e, "/auth/register", form)

		assert.Equal(t, "/auth/register", rec.Header().Get("Location"))
		assert.Equal(t, 0, auth.signUps)
	})

	t.Run("duplicate email maps to a friendly message", func(t *testing.T) {
		auth := &mockAuthService{signUpErr: domain.ErrUserAlreadyExists}
		e := setupAuthTest(auth)

		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerForm().Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "/auth/register", rec.Header().Get("Location"))
		assertFlash(t, req, "error", "already exists")
	})
}

func TestLoginPost(t *testing.T) {
	t.Run("successful login sets the auth cookie", func(t *testing.T) {
		auth := &mockAuthService{}
		e := setupAuthTest(auth)

		form := url.Values{}
		form.Set("email", "test@example.com")
		form.Set("password", "Str0ng!pass")
		rec := postForm(e, "/auth/login", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

		found := false
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == "auth_token" && cookie.Value == "test-token" {
				found = true
			}
		}
		assert.True(t, found, "expected the auth cookie to be set")
	})

	t.Run("remember me stores the email for the next visit", func(t *testing.T) {
		auth := &mockAuthService{}
		e := setupAuthTest(auth)

		form := url.Values{}
		form.Set("email", "test@example.com")
		form.Set("password", "Str0ng!pass")
		form.Set("remember_me", "on")
		rec := postForm(e, "/auth/login", form)

		found := false
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == "remembered_email" && cookie.Value == "test@example.com" {
				found = true
			}
		}
		assert.True(t, found, "expected the remembered email cookie to be set")
	})

	t.Run("invalid credentials redirect back to login", func(t *testing.T) {
		auth := &mockAuthService{signInErr: domain.ErrInvalidCredentials}
		e := setupAuthTest(auth)

		form := url.Values{}
		form.Set("email", "test@example.com")
		form.Set("password", "nope")
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
		assertFlash(t, req, "error", "Invalid email or password")
	})
}

func TestLogout(t *testing.T) {
	auth := &mockAuthService{}
	e := setupAuthTest(auth)

	// The navbar sign-out form posts; the handler must clear the cookie.
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "valid"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "auth_token" && cookie.Value == "" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the auth cookie to be expired")
}

func TestForgotPasswordPost(t *testing.T) {
	auth := &mockAuthService{}
	e := setupAuthTest(auth)

	form := url.Values{}
	form.Set("email", "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// The response is identical whether or not the account exists.
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assertFlash(t, req, "success", "password reset link has been sent")
}

func TestResetPasswordPost(t *testing.T) {
	t.Run("valid token resets and signs in", func(t *testing.T) {
		auth := &mockAuthService{}
		e := setupAuthTest(auth)

		form := url.Values{}
		form.Set("token", "reset-token")
		form.Set("password", "Str0ng!pass")
		form.Set("password_confirm", "Str0ng!pass")
		rec := postForm(e, "/auth/reset-password", form)

		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
		assert.Equal(t, 1, auth.signIns)
	})

	t.Run("invalid token redirects to forgot password", func(t *testing.T) {
		auth := &mockAuthService{}
		e := setupAuthTest(auth)

		form := url.Values{}
		form.Set("token", "bogus")
		form.Set("password", "Str0ng!pass")
		form.Set("password_confirm", "Str0ng!pass")
		rec := postForm(e, "/auth/reset-password", form)

		assert.Equal(t, "/auth/forgot-password", rec.Header().Get("Location"))
		assert.Equal(t, 0, auth.signIns)
	})
}
