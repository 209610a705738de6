// Package publisher decouples audit emission from storage. In sync mode an
// Emit writes through immediately; with an async buffer, events are handed
// to a single worker and dropped when the buffer is full.
package publisher

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"handmadepixel/pkg/platform/audit"
)

// appendTimeout bounds a single store append in async mode, where the
// originating request context is already gone.
const appendTimeout = 5 * time.Second

// Publisher emits audit events to a store.
type Publisher struct {
	store audit.Store

	buffer  chan audit.Event
	done    chan struct{}
	wg      sync.WaitGroup
	closing sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with the given
// buffer size. Events that arrive while the buffer is full are dropped.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.buffer = make(chan audit.Event, size)
		}
	}
}

// NewPublisher builds a Publisher over store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.buffer != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records event, stamping an ID and timestamp when absent. In async
// mode a full buffer drops the event rather than blocking the caller.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if p.buffer == nil {
		return p.store.Append(ctx, event)
	}

	select {
	case p.buffer <- event:
		return nil
	default:
		// Audit must not apply backpressure to user-facing requests.
		return nil
	}
}

// Close stops the async worker after draining buffered events. Safe to call
// multiple times.
func (p *Publisher) Close() {
	p.closing.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for {
		select {
		case event := <-p.buffer:
			p.append(event)
		case <-p.done:
			for {
				select {
				case event := <-p.buffer:
					p.append(event)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) append(event audit.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()
	_ = p.store.Append(ctx, event)
}
