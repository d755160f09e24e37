package model

import "time"

const (
	AggregateSubscription    = "Subscription"
	EventSubscriptionCreated = "subscription.created"
)

type OutboxEvent struct {
	ID          uint64    `gorm:"primaryKey"`
	Aggregate   string    `gorm:"size:64;not null"`
	AggregateID string    `gorm:"size:64;not null"`
	EventType   string    `gorm:"size:64;not null"`
	Payload     string    `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	Processed   bool      `gorm:"not null;default:false"`
	ProcessedAt *time.Time
}

func (OutboxEvent) TableName() string { return "event_outbox" }

// All lists every table the service migrates at start.
func All() []interface{} {
	return []interface{}{&Subscription{}, &SubscriptionToken{}, &OutboxEvent{}}
}
