package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	StatusPendingConfirmation SubscriptionStatus = "pending_confirmation"
	StatusConfirmed           SubscriptionStatus = "confirmed"
)

type Subscription struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Email        string             `gorm:"type:text;not null;uniqueIndex"`
	Name         string             `gorm:"type:text;not null"`
	SubscribedAt time.Time          `gorm:"not null"`
	Status       SubscriptionStatus `gorm:"type:text;not null"`
}

func (Subscription) TableName() string { return "subscriptions" }
