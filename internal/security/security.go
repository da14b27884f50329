// Package security holds the pure validation and sanitization helpers
// shared by every page controller. All functions are stateless; a failed
// check here is a ValidationError and never results in a remote call.
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{8,}$`)

	digitPattern   = regexp.MustCompile(`\d`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidateEmail reports whether the address matches the conventional
// local@domain.tld shape. A missing TLD fails.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.ToLower(email))
}

// ValidatePhone reports whether the number looks like a phone number:
// digits with optional punctuation, eight characters minimum.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// PasswordMinLength is the minimum acceptable password length.
const PasswordMinLength = 8

// PasswordResult is the verdict of ValidatePassword. Score counts the
// satisfied rules; Messages holds one entry per failed rule, in rule order.
type PasswordResult struct {
	Valid    bool
	Score    int
	Messages []string
}

// ValidatePassword scores a password 0-5 against the five fixed rules:
// length, digit, lowercase, uppercase, special character. A password is
// valid when at least four rules pass.
func ValidatePassword(password string) PasswordResult {
	var res PasswordResult

	checks := []struct {
		ok      bool
		message string
	}{
		{len(password) >= PasswordMinLength, fmt.Sprintf("Password must be at least %d characters long", PasswordMinLength)},
		{digitPattern.MatchString(password), "Password must contain at least one number"},
		{lowerPattern.MatchString(password), "Password must contain at least one lowercase letter"},
		{upperPattern.MatchString(password), "Password must contain at least one uppercase letter"},
		{specialPattern.MatchString(password), "Password must contain at least one special character"},
	}

	for _, c := range checks {
		if c.ok {
			res.Score++
		} else {
			res.Messages = append(res.Messages, c.message)
		}
	}

	res.Valid = res.Score >= 4
	return res
}

// FileOptions configures ValidateFile. Zero values fall back to the
// defaults: 5 MB and the jpeg/png/gif/pdf allow-list.
type FileOptions struct {
	MaxSize      int64
	AllowedTypes []string
}

// DefaultMaxFileSize is the upload ceiling applied when FileOptions does
// not override it.
const DefaultMaxFileSize = 5 * 1024 * 1024

// DefaultAllowedTypes is the MIME allow-list applied when FileOptions does
// not override it.
var DefaultAllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "application/pdf"}

// FileResult is the verdict of ValidateFile; Errors lists every violated
// rule.
type FileResult struct {
	Valid  bool
	Errors []string
}

// ValidateFile checks an upload's size and MIME type against the options.
func ValidateFile(size int64, mimeType string, opts FileOptions) FileResult {
	maxSize := opts.MaxSize
	if maxSize == 0 {
		maxSize = DefaultMaxFileSize
	}
	allowed := opts.AllowedTypes
	if len(allowed) == 0 {
		allowed = DefaultAllowedTypes
	}

	var errs []string
	if size > maxSize {
		errs = append(errs, fmt.Sprintf("File size must not exceed %dMB", maxSize/(1024*1024)))
	}

	permitted := false
	for _, t := range allowed {
		if t == mimeType {
			permitted = true
			break
		}
	}
	if !permitted {
		errs = append(errs, fmt.Sprintf("File type %s is not allowed. Allowed types: %s", mimeType, strings.Join(allowed, ", ")))
	}

	return FileResult{Valid: len(errs) == 0, Errors: errs}
}

// htmlReplacer escapes the characters that matter for HTML injection.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// SanitizeHTML escapes a string for safe inclusion in HTML output.
func SanitizeHTML(s string) string {
	if s == "" {
		return ""
	}
	return htmlReplacer.Replace(s)
}

// SanitizeInput trims whitespace and strips angle brackets from user input.
func SanitizeInput(s string) string {
	if s == "" {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return s
}

// RandomString returns a hex-encoded string of n random bytes.
func RandomString(n int) (string, error) {
	if n <= 0 {
		n = 32
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashString returns the hex-encoded SHA-256 digest of s.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
