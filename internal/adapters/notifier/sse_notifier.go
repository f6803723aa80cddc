package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

// ClientChannel carries pre-formatted SSE frames to one connection.
type ClientChannel chan []byte

type eventWithContext struct {
	ctx      context.Context
	audience string
	event    port.FeedEvent
}

// SSENotifier fans feed events out to every connection of an audience
// (one admin may keep several tabs open).
type SSENotifier struct {
	clients map[string][]ClientChannel
	mu      sync.RWMutex

	eventChan chan eventWithContext
	done      chan struct{}
	stopOnce  sync.Once

	logger port.LoggerPort
}

func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	n := &SSENotifier{
		clients:   make(map[string][]ClientChannel),
		eventChan: make(chan eventWithContext, 100),
		done:      make(chan struct{}),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}
	go n.dispatcher()
	return n
}

var _ port.NotifierPort = (*SSENotifier)(nil)

// FormatSSE renders one frame of the text/event-stream protocol.
func FormatSSE(eventType string, data []byte) []byte {
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", eventType, data))
}

func (n *SSENotifier) dispatcher() {
	n.logger.Debug("Notifier dispatcher started.", nil)
	for {
		select {
		case <-n.done:
			n.logger.Debug("Notifier dispatcher stopped.", nil)
			return
		case pkg := <-n.eventChan:
			n.dispatch(pkg)
		}
	}
}

func (n *SSENotifier) dispatch(pkg eventWithContext) {
	eventLogger := contextkeys.LoggerFromContext(pkg.ctx).WithFields(port.Fields{
		"component":  "SSENotifier.dispatcher",
		"event_type": pkg.event.Type,
		"audience":   pkg.audience,
	})

	payload, err := json.Marshal(pkg.event.Data)
	if err != nil {
		eventLogger.Error("Failed to marshal event", err, nil)
		return
	}
	frame := FormatSSE(pkg.event.Type, payload)

	n.mu.RLock()
	defer n.mu.RUnlock()

	channels := n.clients[pkg.audience]
	if len(channels) == 0 {
		eventLogger.Debug("No active clients, event dropped.", nil)
		return
	}
	for _, ch := range channels {
		select {
		case ch <- frame:
		default:
			eventLogger.Warn("Client channel is full, skipping.", nil)
		}
	}
	eventLogger.Debug("Event dispatched.", port.Fields{"channels_count": len(channels)})
}

// Notify queues the event; it never blocks the caller after Stop.
func (n *SSENotifier) Notify(ctx context.Context, audience string, event port.FeedEvent) {
	select {
	case n.eventChan <- eventWithContext{ctx: ctx, audience: audience, event: event}:
	case <-n.done:
	}
}

// AddClient registers a new SSE connection.
func (n *SSENotifier) AddClient(audience string) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, 100)
	n.clients[audience] = append(n.clients[audience], ch)
	n.logger.Info("Client connected", port.Fields{
		"audience":          audience,
		"total_connections": len(n.clients[audience]),
	})
	return ch
}

// RemoveClient unregisters a connection when the client goes away.
func (n *SSENotifier) RemoveClient(audience string, ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels, found := n.clients[audience]
	if !found {
		return
	}
	remaining := make([]ClientChannel, 0, len(channels))
	for _, c := range channels {
		if c != ch {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(n.clients, audience)
	} else {
		n.clients[audience] = remaining
	}
	n.logger.Info("Client disconnected", port.Fields{
		"audience":              audience,
		"remaining_connections": len(remaining),
	})
}

// ClientCount reports open connections for an audience.
func (n *SSENotifier) ClientCount(audience string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.clients[audience])
}

// Stop terminates the dispatcher.
func (n *SSENotifier) Stop() {
	n.stopOnce.Do(func() { close(n.done) })
}

// Done is closed once Stop has been called.
func (n *SSENotifier) Done() <-chan struct{} {
	return n.done
}
