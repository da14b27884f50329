package platform

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"

	"github.com/remitflow/remitflow/internal/config"
	"github.com/remitflow/remitflow/internal/domain"
)

// NewDB creates and configures a new SurrealDB connection using the root
// credentials from configuration.
func NewDB(ctx context.Context, cfg config.Provider) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.GetDBUrl())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to surrealdb: %w", err)
	}

	authData := &surrealdb.Auth{
		Username: cfg.GetDBUser(),
		Password: cfg.GetDBPass(),
	}

	if _, err = db.SignIn(ctx, authData); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	if err = db.Use(ctx, cfg.GetDBNs(), cfg.GetDBDb()); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/db: %w", err)
	}

	slog.Info("Successfully signed in to SurrealDB")
	return db, nil
}

// SurrealClient implements the platform capabilities on SurrealDB: scoped
// record access sign-up/sign-in, token authentication, and the password
// reset flow. It also carries the namespace and database names so every
// operation runs in the correct scope.
type SurrealClient struct {
	db     *surrealdb.DB
	ns     string
	dbName string
}

// NewSurrealClient wraps an established connection.
func NewSurrealClient(db *surrealdb.DB, ns, dbName string) *SurrealClient {
	return &SurrealClient{db: db, ns: ns, dbName: dbName}
}

// DB exposes the underlying connection for the generic query helpers.
func (c *SurrealClient) DB() *surrealdb.DB { return c.db }

// use ensures the correct namespace and database are selected before an
// operation runs.
func (c *SurrealClient) use(ctx context.Context) error {
	if err := c.db.Use(ctx, c.ns, c.dbName); err != nil {
		return fmt.Errorf("failed to set database scope: %w", err)
	}
	return nil
}

// SignUp registers a new account through the record access scope and
// returns the authenticated session. The payload shape matches the
// JavaScript SDK so the same access definition serves both.
func (c *SurrealClient) SignUp(ctx context.Context, email, password, fullName string) (*domain.Session, error) {
	token, err := c.db.SignUp(ctx, map[string]interface{}{
		"ns":        c.ns,
		"db":        c.dbName,
		"ac":        "account",
		"email":     email,
		"password":  password,
		"full_name": fullName,
	})
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("sign up failed: %w", err)
	}

	user, err := c.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	slog.Info("Successfully signed up user", "email", email)
	return &domain.Session{User: user, Token: token}, nil
}

// SignIn authenticates existing credentials through the record access scope.
func (c *SurrealClient) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	token, err := c.db.SignIn(ctx, map[string]interface{}{
		"ns":       c.ns,
		"db":       c.dbName,
		"ac":       "account",
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := c.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	slog.Info("Successfully signed in user", "email", email)
	return &domain.Session{User: user, Token: token}, nil
}

// SignOut discards the session. Token invalidation happens client-side by
// clearing the cookie; the server has nothing to revoke.
func (c *SurrealClient) SignOut(ctx context.Context, token string) error {
	return nil
}

// Authenticate validates a session token and returns the associated user.
func (c *SurrealClient) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	// This validates the token against the 'account' scope and sets the
	// auth context for subsequent queries on this connection.
	if err := c.db.Authenticate(ctx, token); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	users, err := Query[domain.User](ctx, c, "SELECT * FROM $auth", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated user: %w", err)
	}
	if len(users) == 0 || users[0].ID == nil {
		return nil, domain.ErrInvalidCredentials
	}

	user := &users[0]
	user.Password = ""
	return user, nil
}

// generateSecureToken creates a cryptographically secure random token.
func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateResetToken creates a password reset token for the given email and
// stores it with a 24 hour expiry. The expiration is written as an RFC3339
// string to sidestep the database's datetime parsing quirks.
func (c *SurrealClient) GenerateResetToken(ctx context.Context, email string) (string, error) {
	if err := c.use(ctx); err != nil {
		return "", err
	}

	user, err := QueryOne[domain.User](ctx, c, "SELECT * FROM user WHERE email = $email", map[string]any{"email": email})
	if err != nil {
		return "", fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return "", domain.ErrNotFound
	}

	token, err := generateSecureToken(32)
	if err != nil {
		return "", err
	}

	expires := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	err = Execute(ctx, c,
		"UPDATE user SET reset_token = $token, reset_token_expires = $expires WHERE email = $email",
		map[string]any{"token": token, "expires": expires, "email": email})
	if err != nil {
		return "", fmt.Errorf("error storing reset token: %w", err)
	}

	return token, nil
}

// ResetPassword consumes a reset token and sets the new password. Returns
// the user whose password changed so the caller can notify them.
func (c *SurrealClient) ResetPassword(ctx context.Context, token, newPassword string) (*domain.User, error) {
	if err := c.use(ctx); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user, err := QueryOne[domain.User](ctx, c,
		"SELECT * FROM user WHERE reset_token = $token AND reset_token_expires > $now",
		map[string]any{"token": token, "now": now})
	if err != nil {
		return nil, fmt.Errorf("error finding user by reset token: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	err = Execute(ctx, c,
		"UPDATE $id SET password = crypto::argon2::generate($password), reset_token = NONE, reset_token_expires = NONE",
		map[string]any{"id": user.ID, "password": newPassword})
	if err != nil {
		return nil, fmt.Errorf("error updating password: %w", err)
	}

	slog.Info("Password reset completed", "email", user.Email)
	user.Password = ""
	return user, nil
}

// UpdatePassword changes the password of the user the token belongs to.
func (c *SurrealClient) UpdatePassword(ctx context.Context, token, newPassword string) error {
	user, err := c.Authenticate(ctx, token)
	if err != nil {
		return err
	}

	err = Execute(ctx, c,
		"UPDATE $id SET password = crypto::argon2::generate($password)",
		map[string]any{"id": user.ID, "password": newPassword})
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	slog.Info("Password updated", "email", user.Email)
	return nil
}
