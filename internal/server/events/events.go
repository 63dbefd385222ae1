// Package events carries messages produced by the registration flow for an
// out-of-process notification mechanism. The flow publishes an explicit
// message; delivery (email, queue, webhook) is a consumer concern.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/easylend/userservice/internal/server/models"
)

// ErrPublisherClosed is returned when publishing to a closed publisher.
var ErrPublisherClosed = errors.New("publisher closed")

// UserRegistered is published once per successful registration. The
// confirmation URL embeds a signed token the confirmation endpoint accepts.
type UserRegistered struct {
	User            *models.User
	ConfirmationURL string
	OccurredAt      time.Time
}

// Publisher delivers registration events to a consumer.
type Publisher interface {
	Publish(ctx context.Context, event UserRegistered) error
}

// ChanPublisher is an in-process Publisher over a buffered channel. It is the
// seam where a broker client would slot in.
type ChanPublisher struct {
	ch     chan UserRegistered
	closed chan struct{}
}

// NewChanPublisher creates a publisher with the given buffer size.
func NewChanPublisher(size int) *ChanPublisher {
	return &ChanPublisher{
		ch:     make(chan UserRegistered, size),
		closed: make(chan struct{}),
	}
}

// Publish enqueues the event, blocking until there is room, the context is
// cancelled, or the publisher is closed.
func (p *ChanPublisher) Publish(ctx context.Context, event UserRegistered) error {
	select {
	case <-p.closed:
		return ErrPublisherClosed
	default:
	}

	select {
	case p.ch <- event:
		return nil
	case <-p.closed:
		return ErrPublisherClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events exposes the consumer side of the queue.
func (p *ChanPublisher) Events() <-chan UserRegistered {
	return p.ch
}

// Close stops accepting events and closes the consumer channel.
func (p *ChanPublisher) Close() {
	close(p.closed)
	close(p.ch)
}
