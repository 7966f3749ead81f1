// Package mail provides fire-and-forget delivery of transactional email.
// Messages are enqueued on a buffered channel and sent by a background
// worker; callers never wait on the provider.
package mail

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mvillagran/securedocs/pkg/logger"
)

// ErrQueueFull is returned when the dispatch queue cannot accept another
// message. The message is dropped rather than blocking the request path.
var ErrQueueFull = errors.New("mail queue is full")

// Message is an outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers a single message to the mail provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher owns the queue and the delivery worker. Delivery failures are
// logged and absorbed; they are never surfaced to the producer.
type Dispatcher struct {
	sender      Sender
	logger      *slog.Logger
	queue       chan Message
	sendTimeout time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
}

func NewDispatcher(sender Sender, logger *slog.Logger, queueSize int, sendTimeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{
		sender:      sender,
		logger:      logger,
		queue:       make(chan Message, queueSize),
		sendTimeout: sendTimeout,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Enqueue submits a message for delivery and returns immediately.
func (d *Dispatcher) Enqueue(msg Message) error {
	select {
	case d.queue <- msg:
		return nil
	default:
		d.logger.Error("mail queue full, dropping message",
			slog.String("to", logger.SanitizedEmail(msg.To)))
		return ErrQueueFull
	}
}

// Start runs the delivery worker until Stop is called or ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	defer close(d.doneCh)

	for {
		select {
		case msg := <-d.queue:
			d.deliver(ctx, msg)
		case <-d.stopCh:
			d.drain(ctx)
			d.logger.Info("mail dispatcher stopped")
			return
		case <-ctx.Done():
			d.logger.Info("mail dispatcher context cancelled")
			return
		}
	}
}

// Stop signals the worker to deliver whatever is queued and exit, and waits
// for it to finish.
func (d *Dispatcher) Stop() {
	close(d.stopCh)
	<-d.doneCh
}

// drain delivers already-queued messages before shutdown.
func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case msg := <-d.queue:
			d.deliver(ctx, msg)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	if err := d.sender.Send(sendCtx, msg); err != nil {
		// Best effort: log and move on, no retry
		d.logger.Error("failed to send email",
			slog.String("to", logger.SanitizedEmail(msg.To)),
			slog.Any("error", err))
		return
	}

	d.logger.Info("email sent",
		slog.String("to", logger.SanitizedEmail(msg.To)),
		slog.String("subject", msg.Subject))
}
