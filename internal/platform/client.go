// Package platform provides the client for the backend platform: scoped
// authentication, record queries, file uploads, and live change
// subscriptions. Repositories and handlers build on this package instead of
// talking to the database driver directly.
package platform

import (
	"context"
	"io"
	"time"
)

// ChangeAction classifies a live change event.
type ChangeAction string

const (
	ActionCreate ChangeAction = "CREATE"
	ActionUpdate ChangeAction = "UPDATE"
	ActionDelete ChangeAction = "DELETE"
)

// ChangeEvent describes a single record change observed on a watched table.
type ChangeEvent struct {
	Action ChangeAction
	Table  string
	// Data holds the record as decoded by the driver (a map for live
	// queries). Consumers re-fetch through their repository when they need
	// typed data.
	Data any
}

// ChangeHandler is called for every change event on a subscription. Handlers
// run on their own goroutine and must not block indefinitely.
type ChangeHandler func(ctx context.Context, event ChangeEvent)

// SubscribeFilter narrows a table subscription with a WHERE clause.
type SubscribeFilter struct {
	Where  string
	Params map[string]any
}

// Subscription represents an active live change subscription.
type Subscription struct {
	ID    string
	Table string
}

// UploadResult describes a stored file.
type UploadResult struct {
	// Path is the storage key within the bucket.
	Path string
	// PublicURL is the absolute URL the file is served from.
	PublicURL string
	Size      int64
	MIMEType  string
	StoredAt  time.Time
}

// Uploader stores user files and returns their public location.
type Uploader interface {
	// Upload validates and persists the file under bucket/path.
	Upload(ctx context.Context, bucket, path, mimeType string, size int64, r io.Reader) (*UploadResult, error)
}

// ChangeFeed exposes live change subscriptions on platform tables.
type ChangeFeed interface {
	Subscribe(ctx context.Context, table string, filter *SubscribeFilter, handler ChangeHandler) (*Subscription, error)
	Unsubscribe(subID string) error
}
