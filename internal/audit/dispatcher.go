package audit

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	ActionUserRegistered         = "user_registered"
	ActionCatererRegistered      = "caterer_registered"
	ActionCatererApproved        = "caterer_approved"
	ActionPhotographerRegistered = "photographer_registered"

	queueSize    = 100
	writeTimeout = 5 * time.Second
)

type Event struct {
	UserID   string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Dispatcher writes audit events from a single background worker so
// request handlers never wait on the audit store.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.logger.Log(ctx, ev); err != nil {
			log.Println("audit error:", err)
		}
		cancel()
	}
}

// Dispatch queues ev. A full queue drops the event; auditing never fails
// a request.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Println("audit dispatcher closed, dropping event", ev.Action)
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event", ev.Action)
	}
}

// Close stops accepting events and waits until the queued ones are
// written or ctx expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
