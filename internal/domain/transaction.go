package domain

import (
	"context"

	"github.com/shopspring/decimal"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// TransactionStatus is the lifecycle of a money transfer. Transitions are
// driven by the send-money, request-transfer and review pages; the client
// never deletes a transaction.
type TransactionStatus string

const (
	TxPending    TransactionStatus = "pending"
	TxProcessing TransactionStatus = "processing"
	TxAccepted   TransactionStatus = "accepted"
	TxApproved   TransactionStatus = "approved"
	TxDeclined   TransactionStatus = "declined"
	TxFailed     TransactionStatus = "failed"
	TxCompleted  TransactionStatus = "completed"
)

// PaymentStatus tracks settlement separately from the transfer decision.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPending PaymentStatus = "pending_payment"
	PaymentPaid    PaymentStatus = "paid"
)

// Transaction is a money transfer. ReferenceNumber is unique and is the
// natural key used by the accept/decline flows; list rendering also
// deduplicates rows on it when a subscription refresh races a resync.
type Transaction struct {
	ID              *surrealmodels.RecordID       `json:"id,omitempty"`
	ReferenceNumber string                        `json:"reference_number"`
	UserID          *surrealmodels.RecordID       `json:"user_id,omitempty"`
	RecipientName   string                        `json:"recipient_name"`
	RecipientEmail  string                        `json:"recipient_email"`
	SendFromCountry string                        `json:"send_from_country"`
	SendToCountry   string                        `json:"send_to_country"`
	SourceCurrency  string                        `json:"source_currency"`
	TargetCurrency  string                        `json:"target_currency"`
	TotalToPay      decimal.Decimal               `json:"total_to_pay"`
	ReceivingAmount decimal.Decimal               `json:"receiving_amount"`
	ExchangeRate    decimal.Decimal               `json:"exchange_rate"`
	Description     string                        `json:"description,omitempty"`
	Status          TransactionStatus             `json:"status"`
	PaymentStatus   PaymentStatus                 `json:"payment_status"`
	ProcessedBy     *surrealmodels.RecordID       `json:"processed_by,omitempty"`
	ExpireDate      string                        `json:"expire_date,omitempty"`
	CreatedAt       *surrealmodels.CustomDateTime `json:"created_at,omitempty"`
	UpdatedAt       *surrealmodels.CustomDateTime `json:"updated_at,omitempty"`
}

// TransferRequest represents an inbound request awaiting accept/decline.
// It shares the transaction shape but lives in its own collection.
type TransferRequest struct {
	ID              *surrealmodels.RecordID       `json:"id,omitempty"`
	ReferenceNumber string                        `json:"reference_number"`
	RequesterID     *surrealmodels.RecordID       `json:"requester_id,omitempty"`
	RecipientEmail  string                        `json:"recipient_email"`
	Amount          decimal.Decimal               `json:"amount"`
	Currency        string                        `json:"currency"`
	Country         string                        `json:"country,omitempty"`
	Status          TransactionStatus             `json:"status"`
	ExpireDate      string                        `json:"expire_date,omitempty"`
	CreatedAt       *surrealmodels.CustomDateTime `json:"created_at,omitempty"`
	UpdatedAt       *surrealmodels.CustomDateTime `json:"updated_at,omitempty"`
}

// DashboardStats are the aggregates shown on the dashboard cards.
type DashboardStats struct {
	TotalSent          decimal.Decimal
	CompletedTransfers int
	PendingTransfers   int
	TotalRecipients    int
}

// TransactionRepository defines the contract for transaction storage.
// Every mutation is followed by a re-fetch; the remote store is the single
// source of truth and nothing is cached across page views.
type TransactionRepository interface {
	// Create inserts a new transaction and returns it with server fields
	// populated.
	Create(ctx context.Context, tx *Transaction) (*Transaction, error)

	// ListByUser returns the user's transactions, newest first.
	ListByUser(ctx context.Context, userID *surrealmodels.RecordID) ([]Transaction, error)

	// List returns all transactions filtered by status ("all" for no
	// filter), newest first.
	List(ctx context.Context, statusFilter string) ([]Transaction, error)

	// ListByRecipient returns transfers addressed to the given email,
	// newest first. The request-transfer page shows these as incoming.
	ListByRecipient(ctx context.Context, email string) ([]Transaction, error)

	// GetByReference looks a transaction up by its natural key.
	GetByReference(ctx context.Context, ref string) (*Transaction, error)

	// UpdateStatusByReference transitions the transaction identified by
	// ref, optionally recording the acting user.
	UpdateStatusByReference(ctx context.Context, ref string, status TransactionStatus, processedBy *surrealmodels.RecordID) (*Transaction, error)

	// Stats computes the dashboard aggregates for one user.
	Stats(ctx context.Context, userID *surrealmodels.RecordID) (*DashboardStats, error)
}

// TransferRequestRepository defines the contract for transfer requests.
type TransferRequestRepository interface {
	Create(ctx context.Context, req *TransferRequest) (*TransferRequest, error)
	ListByUser(ctx context.Context, userID *surrealmodels.RecordID) ([]TransferRequest, error)
	UpdateStatus(ctx context.Context, id string, status TransactionStatus) (*TransferRequest, error)
}
