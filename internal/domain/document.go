package domain

import (
	"context"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Document is upload metadata linked to a user: ID documents from
// onboarding, profile pictures from account settings. Append-only from the
// client's perspective.
type Document struct {
	ID           *surrealmodels.RecordID       `json:"id,omitempty"`
	UserID       *surrealmodels.RecordID       `json:"user_id,omitempty"`
	DocumentType string                        `json:"document_type"`
	Filename     string                        `json:"filename"`
	MIMEType     string                        `json:"mime_type"`
	Size         int64                         `json:"size"`
	DocumentURL  string                        `json:"document_url"`
	UploadedAt   *surrealmodels.CustomDateTime `json:"uploaded_at,omitempty"`
}

// DocumentRepository defines the contract for document metadata storage.
type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) (*Document, error)
	ListByUser(ctx context.Context, userID *surrealmodels.RecordID) ([]Document, error)
	FindLatestByUser(ctx context.Context, userID *surrealmodels.RecordID, documentType string) (*Document, error)
}
