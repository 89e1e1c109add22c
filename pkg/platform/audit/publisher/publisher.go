// Package publisher emits audit events to a Store, either synchronously or
// through a buffered background worker.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	audit "pharmafinder/pkg/platform/audit"
)

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("audit publisher closed")

// DefaultAppendTimeout bounds a single append to the store.
const DefaultAppendTimeout = 5 * time.Second

// Publisher stamps events and hands them to the store.
type Publisher struct {
	store         audit.Store
	logger        *slog.Logger
	appendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	inbox  chan audit.Event
	done   chan struct{}

	// base parents every background append; Close cancels it when the
	// caller stops waiting.
	base   context.Context
	cancel context.CancelFunc
}

type Option func(*Publisher)

// WithAsyncBuffer makes Emit non-blocking: events are queued and appended by
// a background worker. When the buffer is full Emit writes synchronously.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.inbox = make(chan audit.Event, size)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithAppendTimeout caps each store append, queued or synchronous.
func WithAppendTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.appendTimeout = d
		}
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, appendTimeout: DefaultAppendTimeout}
	for _, opt := range opts {
		opt(p)
	}
	p.base, p.cancel = context.WithCancel(context.Background())
	if p.inbox != nil {
		p.done = make(chan struct{})
		go p.run()
	}
	return p
}

// Emit stamps Timestamp and Category when unset and persists the event.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	if p.inbox != nil {
		select {
		case p.inbox <- event:
			return nil
		default:
		}
	}
	ctx, cancel := context.WithTimeout(ctx, p.appendTimeout)
	defer cancel()
	return p.store.Append(ctx, event)
}

// Close stops accepting events and waits for queued ones to be appended.
// When ctx ends first, in-flight appends are cancelled, the rest of the
// queue is dropped and ctx's error is returned.
func (p *Publisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	if p.inbox != nil {
		close(p.inbox)
	}
	p.mu.Unlock()

	if p.done == nil {
		p.cancel()
		return nil
	}
	select {
	case <-p.done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}

// run drains the inbox. Queued events outlive the request that produced them,
// so appends hang off the publisher's own context.
func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.inbox {
		if p.base.Err() != nil {
			continue
		}
		p.appendQueued(event)
	}
}

func (p *Publisher) appendQueued(event audit.Event) {
	ctx, cancel := context.WithTimeout(p.base, p.appendTimeout)
	defer cancel()
	if err := p.store.Append(ctx, event); err != nil && p.logger != nil {
		p.logger.Error("audit append failed",
			"action", event.Action,
			"request_id", event.RequestID,
			"error", err,
		)
	}
}
