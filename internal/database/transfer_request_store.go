package database

import (
	"context"
	"fmt"
	"log/slog"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/platform"
)

// SurrealTransferRequestStore encapsulates database operations for inbound
// transfer requests.
type SurrealTransferRequestStore struct {
	client *platform.SurrealClient
}

// NewSurrealTransferRequestStore creates a new SurrealTransferRequestStore.
func NewSurrealTransferRequestStore(client *platform.SurrealClient) *SurrealTransferRequestStore {
	return &SurrealTransferRequestStore{client: client}
}

// Create inserts a new transfer request in pending state.
func (s *SurrealTransferRequestStore) Create(ctx context.Context, req *domain.TransferRequest) (*domain.TransferRequest, error) {
	if req.ReferenceNumber == "" {
		req.ReferenceNumber = GenerateReference()
	}
	if req.Status == "" {
		req.Status = domain.TxPending
	}

	query := `
		CREATE transfer_request SET
			reference_number = $reference_number,
			requester_id = $requester_id,
			recipient_email = $recipient_email,
			amount = $amount,
			currency = $currency,
			country = $country,
			status = $status,
			expire_date = $expire_date,
			created_at = time::now(),
			updated_at = time::now()`

	params := map[string]any{
		"reference_number": req.ReferenceNumber,
		"requester_id":     req.RequesterID,
		"recipient_email":  req.RecipientEmail,
		"amount":           req.Amount.String(),
		"currency":         req.Currency,
		"country":          req.Country,
		"status":           req.Status,
		"expire_date":      req.ExpireDate,
	}

	created, err := platform.QueryOne[domain.TransferRequest](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create transfer request: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("create returned no transfer request")
	}

	slog.Info("Transfer request created", "reference", created.ReferenceNumber)
	return created, nil
}

// ListByUser returns the requests created by the user, newest first.
func (s *SurrealTransferRequestStore) ListByUser(ctx context.Context, userID *surrealmodels.RecordID) ([]domain.TransferRequest, error) {
	query := "SELECT * FROM transfer_request WHERE requester_id = $requester_id ORDER BY created_at DESC"
	params := map[string]any{"requester_id": userID}

	reqs, err := platform.Query[domain.TransferRequest](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return reqs, nil
}

// UpdateStatus transitions a transfer request.
func (s *SurrealTransferRequestStore) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) (*domain.TransferRequest, error) {
	query := "UPDATE type::thing('transfer_request', $id) SET status = $status, updated_at = time::now()"
	params := map[string]any{"id": recordKey(id), "status": status}

	req, err := platform.QueryOne[domain.TransferRequest](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update transfer request: %w", err)
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}

	slog.Info("Transfer request status updated", "request", id, "status", status)
	return req, nil
}
