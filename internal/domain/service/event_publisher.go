package service

import (
	"context"
	"time"
)

// Event types published after state transitions.
const (
	EventCouponRedeemed     = "coupon.redeemed"
	EventCouponPurchased    = "coupon.purchased"
	EventApplicationDecided = "creator_application.decided"
	EventDesignDecided      = "design.decided"
)

// DomainEvent is a notification that a transition has been committed.
type DomainEvent struct {
	RequestID  string            `json:"request_id,omitempty"` // For distributed tracing
	Type       string            `json:"type"`
	SubjectID  int64             `json:"subject_id"`
	UserID     int64             `json:"user_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishEvent publishes an event for downstream consumers.
	PublishEvent(ctx context.Context, event *DomainEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
