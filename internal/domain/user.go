package domain

import (
	"context"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// User represents the authenticated account identity. Profile data lives
// separately in Profile; User carries only what the auth scope returns.
type User struct {
	ID       *surrealmodels.RecordID `json:"id,omitempty"`
	Email    string                  `json:"email"`
	Password string                  `json:"password,omitempty"`
	FullName *string                 `json:"full_name,omitempty"`
	IsAdmin  bool                    `json:"is_admin,omitempty"`
}

// Session is the authenticated-user identity plus its bearer token.
// Lifetime is the browser session: created on sign-in, destroyed on
// sign-out or expiry.
type Session struct {
	User  *User
	Token string
}

// AuthService defines the contract for authentication operations.
// It lives in the domain because it's a requirement OF the domain, not
// of the platform implementation.
type AuthService interface {
	SignUp(ctx context.Context, email, password, fullName string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*User, error)
	GenerateResetToken(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*User, error)
	UpdatePassword(ctx context.Context, token, newPassword string) error
}

// EmailSender defines the interface for sending emails. This allows for
// different implementations (e.g., for logging, Resend, Mailgun).
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}
