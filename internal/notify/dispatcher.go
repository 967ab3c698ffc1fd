package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rxtech-lab/crossover-trader/internal/logger"
	"go.uber.org/zap"
)

// DispatcherConfig tunes the delivery queue.
type DispatcherConfig struct {
	// QueueSize is the number of pending messages kept before new ones are dropped
	QueueSize int
	// SendTimeout bounds a single delivery attempt
	SendTimeout time.Duration
}

// DefaultDispatcherConfig returns the queue defaults.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		QueueSize:   64,
		SendTimeout: 10 * time.Second,
	}
}

// Dispatcher queues messages and delivers them to a Sink on its own goroutine.
// Delivery failures are logged and otherwise ignored.
type Dispatcher struct {
	sink   Sink
	config DispatcherConfig
	queue  chan Message
	logger *logger.Logger
	now    func() time.Time

	wg        sync.WaitGroup
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

var _ Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher and starts its delivery goroutine.
func NewDispatcher(sink Sink, config DispatcherConfig, log *logger.Logger) *Dispatcher {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultDispatcherConfig().QueueSize
	}

	if config.SendTimeout <= 0 {
		config.SendTimeout = DefaultDispatcherConfig().SendTimeout
	}

	d := &Dispatcher{
		sink:      sink,
		config:    config,
		queue:     make(chan Message, config.QueueSize),
		logger:    log,
		now:       time.Now,
		wg:        sync.WaitGroup{},
		closeOnce: sync.Once{},
		mu:        sync.RWMutex{},
		closed:    false,
	}

	d.wg.Add(1)

	go d.run()

	return d
}

// Notify enqueues a message. When the queue is full or the dispatcher is closed
// the message is dropped.
func (d *Dispatcher) Notify(event Event, text string) {
	msg := Message{Event: event, Text: text, Time: d.now()}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Debug("Notification dropped after close", zap.String("event", string(event)))

		return
	}

	select {
	case d.queue <- msg:
	default:
		d.logger.Warn("Notification queue full, dropping message",
			zap.String("event", string(event)),
			zap.String("text", text),
		)
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.config.SendTimeout)
		err := d.sink.Send(ctx, msg)

		cancel()

		if err != nil {
			d.logger.Warn("Failed to deliver notification",
				zap.String("event", string(msg.Event)),
				zap.Error(err),
			)
		}
	}
}

// Close stops accepting messages and waits until the queued ones are delivered.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})

	d.wg.Wait()
}
