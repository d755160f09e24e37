package model

import "github.com/google/uuid"

// SubscriptionToken is written once alongside its subscriber and only read afterwards.
type SubscriptionToken struct {
	Token        string    `gorm:"column:sub_token;type:text;primaryKey"`
	SubscriberID uuid.UUID `gorm:"column:sub_id;type:uuid;not null;index"`

	Subscription Subscription `gorm:"foreignKey:SubscriberID;references:ID"`
}

func (SubscriptionToken) TableName() string { return "subscription_tokens" }
