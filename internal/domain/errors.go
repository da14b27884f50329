package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the failure taxonomy the controllers map to user-facing
// messages: authentication failures, remote-service failures, and local
// validation failures.
var (
	// Authentication failures.
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials provided")
	ErrEmailNotVerified   = errors.New("email address has not been verified")
	ErrRateLimited        = errors.New("too many attempts, try again later")

	// Remote-service failures.
	ErrNotFound         = errors.New("requested resource not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("record already exists")

	// Local failures. Requests failing validation never reach the remote
	// service.
	ErrValidation = errors.New("validation failed")
	ErrUpload     = errors.New("file upload failed")
)
