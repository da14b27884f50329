package database

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/platform"
)

// SurrealTransactionStore encapsulates database operations for transactions.
type SurrealTransactionStore struct {
	client *platform.SurrealClient
}

// NewSurrealTransactionStore creates a new SurrealTransactionStore.
func NewSurrealTransactionStore(client *platform.SurrealClient) *SurrealTransactionStore {
	return &SurrealTransactionStore{client: client}
}

// GenerateReference produces a unique transfer reference like
// "TXN-1724900000-483921". Uniqueness comes from the millisecond timestamp
// plus a random suffix; the database additionally enforces a unique index.
func GenerateReference() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		n = big.NewInt(time.Now().UnixNano() % 1000000)
	}
	return fmt.Sprintf("TXN-%d-%06d", time.Now().UnixMilli(), n.Int64())
}

// Create inserts a new transaction. A missing reference number is generated
// here so callers never persist a transaction without its natural key.
func (s *SurrealTransactionStore) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx.ReferenceNumber == "" {
		tx.ReferenceNumber = GenerateReference()
	}
	if tx.Status == "" {
		tx.Status = domain.TxPending
	}
	if tx.PaymentStatus == "" {
		tx.PaymentStatus = domain.PaymentUnpaid
	}

	query := `
		CREATE transaction SET
			reference_number = $reference_number,
			user_id = $user_id,
			recipient_name = $recipient_name,
			recipient_email = $recipient_email,
			send_from_country = $send_from_country,
			send_to_country = $send_to_country,
			source_currency = $source_currency,
			target_currency = $target_currency,
			total_to_pay = $total_to_pay,
			receiving_amount = $receiving_amount,
			exchange_rate = $exchange_rate,
			description = $description,
			status = $status,
			payment_status = $payment_status,
			expire_date = $expire_date,
			created_at = time::now(),
			updated_at = time::now()`

	params := map[string]any{
		"reference_number":  tx.ReferenceNumber,
		"user_id":           tx.UserID,
		"recipient_name":    tx.RecipientName,
		"recipient_email":   tx.RecipientEmail,
		"send_from_country": tx.SendFromCountry,
		"send_to_country":   tx.SendToCountry,
		"source_currency":   tx.SourceCurrency,
		"target_currency":   tx.TargetCurrency,
		"total_to_pay":      tx.TotalToPay.String(),
		"receiving_amount":  tx.ReceivingAmount.String(),
		"exchange_rate":     tx.ExchangeRate.String(),
		"description":       tx.Description,
		"status":            tx.Status,
		"payment_status":    tx.PaymentStatus,
		"expire_date":       tx.ExpireDate,
	}

	created, err := platform.QueryOne[domain.Transaction](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("create returned no transaction")
	}

	slog.Info("Transaction created", "reference", created.ReferenceNumber, "status", created.Status)
	return created, nil
}

// ListByUser returns the user's transactions, newest first.
func (s *SurrealTransactionStore) ListByUser(ctx context.Context, userID *surrealmodels.RecordID) ([]domain.Transaction, error) {
	query := "SELECT * FROM transaction WHERE user_id = $user_id ORDER BY created_at DESC"
	params := map[string]any{"user_id": userID}

	txs, err := platform.Query[domain.Transaction](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return txs, nil
}

// List returns all transactions, optionally filtered by status.
func (s *SurrealTransactionStore) List(ctx context.Context, statusFilter string) ([]domain.Transaction, error) {
	query := "SELECT * FROM transaction ORDER BY created_at DESC"
	params := map[string]any{}

	if statusFilter != "" && statusFilter != "all" {
		query = "SELECT * FROM transaction WHERE status = $status ORDER BY created_at DESC"
		params["status"] = statusFilter
	}

	txs, err := platform.Query[domain.Transaction](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return txs, nil
}

// ListByRecipient returns transfers addressed to the given email, newest
// first.
func (s *SurrealTransactionStore) ListByRecipient(ctx context.Context, email string) ([]domain.Transaction, error) {
	query := "SELECT * FROM transaction WHERE recipient_email = $email ORDER BY created_at DESC"
	params := map[string]any{"email": email}

	txs, err := platform.Query[domain.Transaction](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return txs, nil
}

// GetByReference looks a transaction up by its natural key.
func (s *SurrealTransactionStore) GetByReference(ctx context.Context, ref string) (*domain.Transaction, error) {
	query := "SELECT * FROM transaction WHERE reference_number = $ref"
	params := map[string]any{"ref": ref}

	tx, err := platform.QueryOne[domain.Transaction](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return tx, nil
}

// UpdateStatusByReference transitions the transaction identified by ref.
// The acting user is recorded as processed_by when present.
func (s *SurrealTransactionStore) UpdateStatusByReference(ctx context.Context, ref string, status domain.TransactionStatus, processedBy *surrealmodels.RecordID) (*domain.Transaction, error) {
	query := `
		UPDATE transaction SET
			status = $status,
			processed_by = $processed_by,
			updated_at = time::now()
		WHERE reference_number = $ref`
	params := map[string]any{
		"ref":          ref,
		"status":       status,
		"processed_by": processedBy,
	}

	tx, err := platform.QueryOne[domain.Transaction](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}

	slog.Info("Transaction status updated", "reference", ref, "status", status)
	return tx, nil
}

// Stats computes the dashboard aggregates for one user. Sums are done in Go
// on decimal values rather than as database aggregates, so currency math
// never passes through binary floats.
func (s *SurrealTransactionStore) Stats(ctx context.Context, userID *surrealmodels.RecordID) (*domain.DashboardStats, error) {
	txs, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return computeStats(txs), nil
}

func computeStats(txs []domain.Transaction) *domain.DashboardStats {
	stats := &domain.DashboardStats{TotalSent: decimal.Zero}
	recipients := make(map[string]struct{})

	for _, tx := range txs {
		switch tx.Status {
		case domain.TxCompleted, domain.TxApproved:
			stats.CompletedTransfers++
			stats.TotalSent = stats.TotalSent.Add(tx.TotalToPay)
		case domain.TxPending, domain.TxProcessing:
			stats.PendingTransfers++
		}
		if tx.RecipientEmail != "" {
			recipients[tx.RecipientEmail] = struct{}{}
		}
	}
	stats.TotalRecipients = len(recipients)

	return stats
}
