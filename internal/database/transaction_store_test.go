package database

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remitflow/remitflow/internal/domain"
)

func TestGenerateReferenceFormat(t *testing.T) {
	ref := GenerateReference()
	assert.True(t, strings.HasPrefix(ref, "TXN-"), "reference should carry the TXN prefix: %s", ref)

	parts := strings.Split(ref, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 6, "random suffix should be zero-padded to six digits")
}

func TestGenerateReferenceUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ref := GenerateReference()
		_, dup := seen[ref]
		require.False(t, dup, "duplicate reference generated: %s", ref)
		seen[ref] = struct{}{}
	}
}

func TestComputeStats(t *testing.T) {
	txs := []domain.Transaction{
		{Status: domain.TxCompleted, TotalToPay: decimal.NewFromInt(100), RecipientEmail: "a@example.com"},
		{Status: domain.TxApproved, TotalToPay: decimal.NewFromInt(50), RecipientEmail: "b@example.com"},
		{Status: domain.TxPending, TotalToPay: decimal.NewFromInt(25), RecipientEmail: "a@example.com"},
		{Status: domain.TxProcessing, TotalToPay: decimal.NewFromInt(10), RecipientEmail: "c@example.com"},
		{Status: domain.TxDeclined, TotalToPay: decimal.NewFromInt(99), RecipientEmail: "d@example.com"},
	}

	stats := computeStats(txs)

	assert.True(t, stats.TotalSent.Equal(decimal.NewFromInt(150)), "only completed and approved count toward total sent, got %s", stats.TotalSent)
	assert.Equal(t, 2, stats.CompletedTransfers)
	assert.Equal(t, 2, stats.PendingTransfers)
	assert.Equal(t, 4, stats.TotalRecipients, "recipients deduplicate on email")
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := computeStats(nil)
	assert.True(t, stats.TotalSent.IsZero())
	assert.Equal(t, 0, stats.CompletedTransfers)
	assert.Equal(t, 0, stats.PendingTransfers)
	assert.Equal(t, 0, stats.TotalRecipients)
}
