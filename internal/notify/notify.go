// Package notify delivers operator notifications without ever blocking the trading loop.
package notify

import (
	"context"
	"fmt"
	"time"
)

// Event classifies a notification.
type Event string

const (
	EventAlert Event = "ALERT"
	EventError Event = "ERROR"
	EventFatal Event = "FATAL"
	EventBuy   Event = "BUY"
	EventSell  Event = "SELL"
)

// Message is an immutable notification.
type Message struct {
	Event Event
	Text  string
	Time  time.Time
}

// String renders the message the way it is shown to the operator.
func (m Message) String() string {
	return fmt.Sprintf("[%s] %s", m.Event, m.Text)
}

// Sink delivers a message to an external channel.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier is the fire-and-forget side used by the control loop.
// Implementations must not block and must not report delivery failures to the caller.
type Notifier interface {
	Notify(event Event, text string)
}

// NoopNotifier drops every notification.
type NoopNotifier struct{}

// Notify implements Notifier.
func (NoopNotifier) Notify(Event, string) {}
