package port

import "context"

// EventListenerPort is a long-running broker consumer.
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
