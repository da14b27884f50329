package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	cmp "maragu.dev/gomponents"

	"github.com/remitflow/remitflow/internal/domain"
	"github.com/remitflow/remitflow/internal/hub"
	"github.com/remitflow/remitflow/internal/notify"
	"github.com/remitflow/remitflow/internal/platform"
	"github.com/remitflow/remitflow/internal/pubsub"
	"github.com/remitflow/remitflow/web/src/templates/components"
)

// Bus topics for record changes.
const (
	TopicTransactionsChanged = "transactions.changed"
	TopicProfilesChanged     = "profiles.changed"
)

// changeNotice is the bus payload for a record change. Only plain fields
// travel on the bus; consumers re-fetch typed data through repositories.
type changeNotice struct {
	Action    string `json:"action"`
	Table     string `json:"table"`
	Reference string `json:"reference,omitempty"`
	Status    string `json:"status,omitempty"`
	Owner     string `json:"owner,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}

// Bridge wires the database change feed to the push stream: table changes
// are published on the bus, consumed, rendered to HTML fragments, and
// delivered to the affected user's connections.
type Bridge struct {
	feed         platform.ChangeFeed
	publisher    pubsub.Publisher
	subscriber   pubsub.Subscriber
	hub          *hub.Hub
	transactions domain.TransactionRepository
	toasts       *ToastLog
}

// NewBridge creates a new Bridge.
func NewBridge(feed platform.ChangeFeed, publisher pubsub.Publisher, subscriber pubsub.Subscriber, h *hub.Hub, transactions domain.TransactionRepository, toasts *ToastLog) *Bridge {
	return &Bridge{
		feed:         feed,
		publisher:    publisher,
		subscriber:   subscriber,
		hub:          h,
		transactions: transactions,
		toasts:       toasts,
	}
}

// Start opens the live subscriptions and the bus consumers. It returns
// once everything is wired; delivery happens on background goroutines
// until ctx is canceled.
func (b *Bridge) Start(ctx context.Context) error {
	if _, err := b.feed.Subscribe(ctx, "transaction", nil, b.publishChange(TopicTransactionsChanged)); err != nil {
		return fmt.Errorf("failed to watch transactions: %w", err)
	}
	if _, err := b.feed.Subscribe(ctx, "profile", nil, b.publishChange(TopicProfilesChanged)); err != nil {
		return fmt.Errorf("failed to watch profiles: %w", err)
	}

	if err := b.subscriber.Subscribe(ctx, TopicTransactionsChanged, b.onTransactionChanged); err != nil {
		return err
	}
	if err := b.subscriber.Subscribe(ctx, TopicProfilesChanged, b.onProfileChanged); err != nil {
		return err
	}

	slog.Info("Realtime bridge started")
	return nil
}

// publishChange turns a live change event into a bus message.
func (b *Bridge) publishChange(topic string) platform.ChangeHandler {
	return func(ctx context.Context, event platform.ChangeEvent) {
		fields, _ := event.Data.(map[string]any)

		notice := changeNotice{
			Action:    string(event.Action),
			Table:     event.Table,
			Reference: fieldString(fields, "reference_number"),
			Status:    fieldString(fields, "status"),
			Recipient: fieldString(fields, "recipient_email"),
			Owner:     fieldString(fields, "user_id"),
		}

		payload, err := json.Marshal(notice)
		if err != nil {
			slog.Error("Failed to encode change notice", "error", err)
			return
		}

		err = b.publisher.Publish(ctx, pubsub.Message{
			Topic:    topic,
			Payload:  payload,
			Metadata: map[string]string{"action": notice.Action},
		})
		if err != nil {
			slog.Error("Failed to publish change notice", "topic", topic, "error", err)
		}
	}
}

// onTransactionChanged notifies the transfer's owner: a toast describing
// the change plus a freshly rendered transaction list for the dashboard.
func (b *Bridge) onTransactionChanged(ctx context.Context, msg pubsub.Message) error {
	var notice changeNotice
	if err := json.Unmarshal(msg.Payload, &notice); err != nil {
		return err
	}
	if notice.Owner == "" {
		return nil
	}

	if text, level := transactionToast(notice); text != "" {
		b.pushToast(notice.Owner, level, text)
	}

	ownerID := parseRecordID(notice.Owner)
	if ownerID == nil {
		return nil
	}
	txs, err := b.transactions.ListByUser(ctx, ownerID)
	if err != nil {
		slog.Warn("Failed to refresh transaction list", "owner", notice.Owner, "error", err)
		return nil
	}
	b.direct(notice.Owner, components.TransactionsTable("dashboard-transactions", txs, nil))
	return nil
}

// onProfileChanged tells the profile's owner about review decisions.
func (b *Bridge) onProfileChanged(ctx context.Context, msg pubsub.Message) error {
	var notice changeNotice
	if err := json.Unmarshal(msg.Payload, &notice); err != nil {
		return err
	}
	if notice.Owner == "" {
		return nil
	}

	if text, level := profileToast(notice); text != "" {
		b.pushToast(notice.Owner, level, text)
	}
	return nil
}

// pushToast delivers a toast to the user's live connections and records it
// for replay on the next connect.
func (b *Bridge) pushToast(userID, level, text string) {
	if b.toasts != nil {
		b.toasts.Record(userID, notify.Level(level), text)
	}
	b.direct(userID, components.Toast(level, text))
}

// direct renders a fragment and queues it for one user's connections.
func (b *Bridge) direct(userID string, node cmp.Node) {
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		slog.Error("Failed to render push fragment", "error", err)
		return
	}
	b.hub.Direct <- hub.DirectMessage{UserID: userID, Payload: buf.Bytes()}
}

// transactionToast maps a transaction change to a toast message and level.
func transactionToast(notice changeNotice) (string, string) {
	if notice.Reference == "" {
		return "", ""
	}
	switch domain.TransactionStatus(notice.Status) {
	case domain.TxCompleted, domain.TxApproved:
		return "Transfer " + notice.Reference + " was " + notice.Status + ".", "success"
	case domain.TxDeclined, domain.TxFailed:
		return "Transfer " + notice.Reference + " was " + notice.Status + ".", "error"
	case domain.TxAccepted:
		return "Transfer " + notice.Reference + " was accepted.", "info"
	case domain.TxPending:
		if notice.Action == string(platform.ActionCreate) {
			return "Transfer " + notice.Reference + " created.", "info"
		}
	}
	return "", ""
}

// profileToast maps a profile change to a toast message and level.
func profileToast(notice changeNotice) (string, string) {
	switch domain.ProfileStatus(notice.Status) {
	case domain.ProfileApproved:
		return "Your account has been approved. You can now send money.", "success"
	case domain.ProfileRejected:
		return "Your account review was not successful. Check your account page for details.", "error"
	case domain.ProfileSuspended:
		return "Your account has been suspended.", "warning"
	}
	return "", ""
}

// fieldString extracts a printable field from a decoded live query record.
// Record links arrive as RecordID values, everything else as plain types.
func fieldString(fields map[string]any, key string) string {
	if fields == nil {
		return ""
	}
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case surrealmodels.RecordID:
		return v.String()
	case *surrealmodels.RecordID:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseRecordID turns "table:key" back into a record id.
func parseRecordID(s string) *surrealmodels.RecordID {
	table, key, found := strings.Cut(s, ":")
	if !found || table == "" || key == "" {
		return nil
	}
	rid := surrealmodels.NewRecordID(table, key)
	return &rid
}
