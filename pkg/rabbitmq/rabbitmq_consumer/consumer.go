package rabbitmq_consumer

import "context"

// Consumer is implemented by every consumer flavour of this package.
type Consumer interface {
	StartConsuming(ctx context.Context) error
	Close() error
}
