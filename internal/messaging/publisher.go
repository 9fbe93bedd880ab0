package messaging

import (
	"context"
)

// Publisher defines the interface for publishing check-in notifications to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishAttendanceRecorded publishes a notification for a newly created attendance entry
	PublishAttendanceRecorded(ctx context.Context, n *Notification) error
	// Close closes the connection
	Close()
}

// NewNopPublisher returns a publisher that discards notifications; used when no broker is configured
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

type nopPublisher struct{}

func (nopPublisher) PublishAttendanceRecorded(context.Context, *Notification) error { return nil }

func (nopPublisher) Close() {}
