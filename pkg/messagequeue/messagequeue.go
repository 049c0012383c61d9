// Package messagequeue provides a thin publishing abstraction over a message
// broker. The application publishes reminder lifecycle events for downstream
// consumers (notification workers, audit sinks); it consumes nothing itself.
package messagequeue

import "log"

// MessageQueue defines the interface for message queue services.
type MessageQueue interface {
	Publish(queueName string, body []byte) error
	Close() error
}

// Noop is a MessageQueue that drops all messages. Used when no broker is
// configured.
type Noop struct{}

// NewNoop creates a no-op message queue.
func NewNoop() MessageQueue { return Noop{} }

func (Noop) Publish(queueName string, body []byte) error {
	log.Printf("Message queue disabled: dropping message for queue %s", queueName)
	return nil
}

func (Noop) Close() error { return nil }
