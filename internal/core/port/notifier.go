package port

import (
	"context"
)

// FeedEvent is pushed to connected back-office clients.
type FeedEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NotifierPort delivers real-time events to subscribers.
type NotifierPort interface {
	Notify(ctx context.Context, audience string, event FeedEvent)
}
