package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/acctflow/voucher_approval_app/internal/core/ports/services"
)

// Store persists notifications, one row per recipient.
type Store interface {
	SaveNotifications(ctx context.Context, userIDs []string, title, message, link string) error
}

// envelope is one queued fan-out request.
type envelope struct {
	userIDs []string
	title   string
	message string
	link    string
}

// Dispatcher is a best-effort, asynchronous notification fan-out. Notify
// enqueues and returns immediately; a background worker persists the
// notifications. A full queue or a failing store drops the message with a log
// line — workflow transitions are never blocked or rolled back by
// notification trouble.
type Dispatcher struct {
	store  Store
	logger *slog.Logger

	queue chan envelope
	once  sync.Once
	done  chan struct{}
	wg    sync.WaitGroup
}

// Ensure Dispatcher implements the portssvc.NotifierSvc interface
var _ portssvc.NotifierSvc = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher with the given queue capacity.
func NewDispatcher(store Store, logger *slog.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{
		store:  store,
		logger: logger,
		queue:  make(chan envelope, queueSize),
		done:   make(chan struct{}),
	}
}

// Start launches the background delivery worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case env := <-d.queue:
			d.deliver(env)
		case <-d.done:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case env := <-d.queue:
					d.deliver(env)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(env envelope) {
	// The request context is long gone by delivery time; bound the store call
	// on its own.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := d.store.SaveNotifications(ctx, env.userIDs, env.title, env.message, env.link); err != nil {
		d.logger.Warn("Failed to deliver notifications",
			slog.Int("recipients", len(env.userIDs)),
			slog.String("title", env.title),
			slog.String("error", err.Error()))
	}
}

// Notify enqueues a fan-out without blocking. When the queue is full the
// message is dropped and logged; lost notifications are tolerable, blocked
// transitions are not.
func (d *Dispatcher) Notify(_ context.Context, userIDs []string, title, message, link string) error {
	if len(userIDs) == 0 {
		return nil
	}
	env := envelope{userIDs: userIDs, title: title, message: message, link: link}
	select {
	case d.queue <- env:
	default:
		d.logger.Warn("Notification queue full, dropping message",
			slog.Int("recipients", len(userIDs)),
			slog.String("title", title))
	}
	return nil
}

// Close stops the worker after draining the queue.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.done) })
	d.wg.Wait()
}
