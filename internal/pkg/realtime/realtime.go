package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/campuscare-app/CampusCare/internal/pkg/cache"
)

const channelPrefix = "realtime:"

// Watchable tables. Clients subscribe per table and re-fetch the full
// collection on any event; deltas are deliberately not applied client-side.
const (
	TableReports       = "reports"
	TableComments      = "report_comments"
	TableNotifications = "notifications"
)

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ChangeEvent describes a single write against a watched table.
type ChangeEvent struct {
	Table  string    `json:"table"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}

// IsWatchable reports whether the table has a realtime channel.
func IsWatchable(table string) bool {
	switch table {
	case TableReports, TableComments, TableNotifications:
		return true
	}
	return false
}

// Publish emits a change event on the table's channel. Best-effort: failures
// are logged and never affect the write that triggered them.
func Publish(table, action, id string) {
	client := cache.GetClient()
	if client == nil {
		return
	}

	event := ChangeEvent{Table: table, Action: action, ID: id, At: time.Now()}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Errorf("[Realtime] marshal event: %v", err)
		return
	}

	if err := client.Publish(context.Background(), channelPrefix+table, payload).Err(); err != nil {
		log.Warnf("[Realtime] publish %s/%s: %v", table, action, err)
	}
}

// Subscribe opens a change feed for one table. The returned channel closes
// when ctx is cancelled or the returned stop function is called.
func Subscribe(ctx context.Context, table string) (<-chan ChangeEvent, func()) {
	events := make(chan ChangeEvent)

	client := cache.GetClient()
	if client == nil {
		close(events)
		return events, func() {}
	}

	pubsub := client.Subscribe(ctx, channelPrefix+table)

	go func() {
		defer close(events)
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Warnf("[Realtime] bad event payload: %v", err)
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	stop := func() {
		if err := pubsub.Close(); err != nil {
			log.Debugf("[Realtime] close subscription: %v", err)
		}
	}
	return events, stop
}
