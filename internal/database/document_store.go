package database

import (
	"context"
	"fmt"
	"log/slog"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/platform"
)

// SurrealDocumentStore encapsulates database operations for upload metadata.
type SurrealDocumentStore struct {
	client *platform.SurrealClient
}

// NewSurrealDocumentStore creates a new SurrealDocumentStore.
func NewSurrealDocumentStore(client *platform.SurrealClient) *SurrealDocumentStore {
	return &SurrealDocumentStore{client: client}
}

// Create records an uploaded file against its owner.
func (s *SurrealDocumentStore) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	query := `
		CREATE document SET
			user_id = $user_id,
			document_type = $document_type,
			filename = $filename,
			mime_type = $mime_type,
			size = $size,
			document_url = $document_url,
			uploaded_at = time::now()`

	params := map[string]any{
		"user_id":       doc.UserID,
		"document_type": doc.DocumentType,
		"filename":      doc.Filename,
		"mime_type":     doc.MIMEType,
		"size":          doc.Size,
		"document_url":  doc.DocumentURL,
	}

	created, err := platform.QueryOne[domain.Document](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("create returned no document")
	}

	slog.Info("Document recorded", "type", created.DocumentType, "filename", created.Filename)
	return created, nil
}

// ListByUser returns the user's documents, newest first.
func (s *SurrealDocumentStore) ListByUser(ctx context.Context, userID *surrealmodels.RecordID) ([]domain.Document, error) {
	query := "SELECT * FROM document WHERE user_id = $user_id ORDER BY uploaded_at DESC"
	params := map[string]any{"user_id": userID}

	docs, err := platform.Query[domain.Document](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return docs, nil
}

// FindLatestByUser returns the newest document of the given type, or nil
// when the user has never uploaded one.
func (s *SurrealDocumentStore) FindLatestByUser(ctx context.Context, userID *surrealmodels.RecordID, documentType string) (*domain.Document, error) {
	query := "SELECT * FROM document WHERE user_id = $user_id AND document_type = $document_type ORDER BY uploaded_at DESC"
	params := map[string]any{"user_id": userID, "document_type": documentType}

	doc, err := platform.QueryOne[domain.Document](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return doc, nil
}
