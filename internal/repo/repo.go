package repo

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/richardliu001/newsletter-service/internal/domain"
	"github.com/richardliu001/newsletter-service/internal/model"
	"github.com/richardliu001/newsletter-service/internal/token"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubscriptionStore creates a pending subscriber together with its confirmation token.
type SubscriptionStore interface {
	CreatePendingSubscriber(ctx context.Context, ns domain.NewSubscriber) (uuid.UUID, string, error)
}

// ConfirmationResolver redeems confirmation tokens.
type ConfirmationResolver interface {
	FindSubscriberIDByToken(ctx context.Context, tok string) (uuid.UUID, bool, error)
	ConfirmSubscriber(ctx context.Context, id uuid.UUID) error
}

// RepositoryInterface restricts Repo methods so tests can swap the implementation.
type RepositoryInterface interface {
	SubscriptionStore
	ConfirmationResolver
	GetSubscription(ctx context.Context, id uuid.UUID) (*model.Subscription, error)
	PollOutbox(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkOutboxProcessed(ctx context.Context, id uint64) error
	PublishEvent(ctx context.Context, evt model.OutboxEvent) error
}

// MessageWriter is the part of *kafka.Writer the outbox relay needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

var _ RepositoryInterface = (*Repository)(nil)

// Repository implements RepositoryInterface.
type Repository struct {
	db       *gorm.DB
	cache    *TokenCache
	writer   MessageWriter
	log      *zap.SugaredLogger
	newToken func() string
	now      func() time.Time
}

// NewRepository constructs repo. rdb and w may be nil when the caller does not
// need the token cache or the outbox relay.
func NewRepository(db *gorm.DB, rdb *redis.Client, w MessageWriter, logger *zap.SugaredLogger) *Repository {
	return &Repository{
		db:       db,
		cache:    NewTokenCache(rdb, time.Hour, logger),
		writer:   w,
		log:      logger,
		newToken: token.Generate,
		now:      time.Now,
	}
}

// WithTokenTTL changes how long token lookups stay cached.
func (r *Repository) WithTokenTTL(ttl time.Duration) *Repository {
	if ttl > 0 {
		r.cache.ttl = ttl
	}
	return r
}

// Migrate creates or updates every table the service owns.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(model.All()...)
}
