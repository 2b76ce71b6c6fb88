package audit

import (
	"time"
)

// EventType represents the type of audit event.
type EventType string

const (
	EventSubscriberSubscribed   EventType = "subscriber.subscribed"
	EventSubscriberUnsubscribed EventType = "subscriber.unsubscribed"

	EventNotificationCompleted EventType = "notification.completed"
)

// Event is one audit record.
type Event struct {
	// ID is a unique identifier for this event
	ID string `json:"id"`

	// Type is the type of event
	Type EventType `json:"type"`

	// Timestamp is when the event occurred
	Timestamp time.Time `json:"timestamp"`

	// Actor is who triggered the event
	Actor Actor `json:"actor"`

	// Target is what was affected by the event
	Target Target `json:"target"`

	// Details contains event-specific information
	Details map[string]interface{} `json:"details,omitempty"`
}

// Actor represents who triggered an audit event
type Actor struct {
	// SourceIP is the IP address of the request origin
	SourceIP string `json:"sourceIP,omitempty"`

	// UserAgent from the request
	UserAgent string `json:"userAgent,omitempty"`
}

// Target represents what was affected by an audit event
type Target struct {
	// Kind is "subscriber" or "notification"
	Kind string `json:"kind"`

	// Name is the subscriber email or the notification subject
	Name string `json:"name"`
}
