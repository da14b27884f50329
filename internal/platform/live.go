package platform

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// LiveFeed implements ChangeFeed using SurrealDB live queries. Each
// subscription issues a LIVE SELECT, listens on the driver's notification
// channel, and fans events out to the registered handler.
type LiveFeed struct {
	client        *SurrealClient
	subscriptions sync.Map // map[string]*liveSubscription
}

type liveSubscription struct {
	id          string
	table       string
	handler     ChangeHandler
	cancel      context.CancelFunc
	liveQueryID string
}

// NewLiveFeed creates a change feed on the given client.
func NewLiveFeed(client *SurrealClient) *LiveFeed {
	return &LiveFeed{client: client}
}

// Subscribe starts a live query on the table and invokes handler for every
// change until Unsubscribe is called or the context is canceled.
func (f *LiveFeed) Subscribe(ctx context.Context, table string, filter *SubscribeFilter, handler ChangeHandler) (*Subscription, error) {
	if handler == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}

	query := fmt.Sprintf("LIVE SELECT * FROM %s", table)
	params := map[string]any{}
	if filter != nil {
		if filter.Where != "" {
			query = fmt.Sprintf("%s WHERE %s", query, filter.Where)
		}
		if filter.Params != nil {
			params = filter.Params
		}
	}

	subID := uuid.New().String()
	subCtx, cancel := context.WithCancel(context.Background())
	sub := &liveSubscription{
		id:      subID,
		table:   table,
		handler: handler,
		cancel:  cancel,
	}
	f.subscriptions.Store(subID, sub)

	db := f.client.DB()

	results, err := surrealdb.Query[interface{}](ctx, db, query, params)
	if err != nil {
		cancel()
		f.subscriptions.Delete(subID)
		return nil, fmt.Errorf("failed to execute live query: %w", err)
	}
	if results == nil || len(*results) == 0 {
		cancel()
		f.subscriptions.Delete(subID)
		return nil, fmt.Errorf("live query returned no results")
	}

	result := (*results)[0]
	if result.Status != "OK" {
		cancel()
		f.subscriptions.Delete(subID)
		return nil, fmt.Errorf("live query failed with status: %s", result.Status)
	}

	liveQueryID, err := extractLiveQueryID(result.Result)
	if err != nil {
		cancel()
		f.subscriptions.Delete(subID)
		return nil, err
	}
	sub.liveQueryID = liveQueryID

	notificationChan, err := db.LiveNotifications(liveQueryID)
	if err != nil {
		cancel()
		f.subscriptions.Delete(subID)
		return nil, fmt.Errorf("failed to get notification channel: %w", err)
	}

	slog.Info("Live query established", "subID", subID, "table", table, "liveQueryID", liveQueryID)

	go f.listen(subCtx, sub, notificationChan)
	go f.cleanupOnCancel(subCtx, db, sub)

	return &Subscription{ID: subID, Table: table}, nil
}

// Unsubscribe stops a subscription and kills the live query.
func (f *LiveFeed) Unsubscribe(subID string) error {
	if state, ok := f.subscriptions.Load(subID); ok {
		sub := state.(*liveSubscription)
		sub.cancel()
		f.subscriptions.Delete(subID)
		slog.Info("Live query subscription removed", "subID", subID)
	}
	return nil
}

// extractLiveQueryID pulls the live query UUID out of the driver's result.
// Depending on the server version it can be a string, a models.UUID, or a
// map with an "id" field.
func extractLiveQueryID(result any) (string, error) {
	switch v := result.(type) {
	case string:
		return v, nil
	case models.UUID:
		return v.String(), nil
	case map[string]interface{}:
		if id, ok := v["id"].(string); ok {
			return id, nil
		}
		if id, ok := v["id"].(models.UUID); ok {
			return id.String(), nil
		}
		return "", fmt.Errorf("live query result map does not contain 'id' field: %+v", v)
	case nil:
		return "", fmt.Errorf("live query returned nil result")
	default:
		return "", fmt.Errorf("unexpected live query result type: %T", result)
	}
}

func (f *LiveFeed) listen(ctx context.Context, sub *liveSubscription, notifications <-chan connection.Notification) {
	defer f.subscriptions.Delete(sub.id)

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Live query listener context cancelled", "subID", sub.id)
			return

		case notification, ok := <-notifications:
			if !ok {
				slog.Debug("Live query notification channel closed", "subID", sub.id)
				return
			}

			var action ChangeAction
			switch notification.Action {
			case connection.CreateAction:
				action = ActionCreate
			case connection.UpdateAction:
				action = ActionUpdate
			case connection.DeleteAction:
				action = ActionDelete
			default:
				slog.Warn("Unknown notification action", "subID", sub.id, "action", notification.Action)
				continue
			}

			event := ChangeEvent{Action: action, Table: sub.table, Data: notification.Result}

			// Run the handler off the listener goroutine so a slow handler
			// cannot stall notification delivery.
			go func() {
				defer func() {
					if r := recover(); r != nil {
						slog.Error("Panic in change handler", "subID", sub.id, "panic", r)
					}
				}()
				sub.handler(ctx, event)
			}()
		}
	}
}

func (f *LiveFeed) cleanupOnCancel(ctx context.Context, db *surrealdb.DB, sub *liveSubscription) {
	<-ctx.Done()
	if sub.liveQueryID == "" {
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.CloseLiveNotifications(sub.liveQueryID); err != nil {
		slog.Warn("Failed to close live notifications", "error", err, "liveQueryID", sub.liveQueryID)
	}

	_, err := surrealdb.Query[interface{}](cleanupCtx, db, "KILL $liveQueryID", map[string]any{
		"liveQueryID": sub.liveQueryID,
	})
	if err != nil {
		slog.Warn("Failed to kill live query", "error", err, "liveQueryID", sub.liveQueryID)
	} else {
		slog.Debug("Killed live query", "liveQueryID", sub.liveQueryID)
	}
}
