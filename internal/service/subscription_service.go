package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/richardliu001/newsletter-service/internal/domain"
	"github.com/richardliu001/newsletter-service/internal/email"
	"github.com/richardliu001/newsletter-service/internal/metrics"
	"github.com/richardliu001/newsletter-service/internal/repo"
	"github.com/richardliu001/newsletter-service/internal/token"
	"go.uber.org/zap"
)

// SubscriptionService glues validation, persistence and the confirmation email.
type SubscriptionService struct {
	store     repo.SubscriptionStore
	resolver  repo.ConfirmationResolver
	sender    email.Sender
	templates *email.Templates
	baseURL   string
	metrics   *metrics.Metrics
	log       *zap.SugaredLogger
}

// Store is what SubscriptionService needs from the repository.
type Store interface {
	repo.SubscriptionStore
	repo.ConfirmationResolver
}

// NewSubscriptionService returns SubscriptionService. baseURL is the public
// address confirmation links point at.
func NewSubscriptionService(s Store, sender email.Sender, templates *email.Templates, baseURL string, logger *zap.SugaredLogger) *SubscriptionService {
	return &SubscriptionService{
		store:     s,
		resolver:  s,
		sender:    sender,
		templates: templates,
		baseURL:   baseURL,
		log:       logger,
	}
}

// WithMetrics records request outcomes on m.
func (s *SubscriptionService) WithMetrics(m *metrics.Metrics) *SubscriptionService {
	s.metrics = m
	return s
}

// ConfirmationLink is the URL a subscriber visits to confirm.
func ConfirmationLink(baseURL, tok string) string {
	return fmt.Sprintf("%s/subscriptions/confirm?sub_token=%s", strings.TrimRight(baseURL, "/"), tok)
}

// Subscribe validates the form, stores a pending subscriber with a fresh token
// and emails the confirmation link. The email is sent only after the commit;
// a send failure leaves the stored subscriber pending.
func (s *SubscriptionService) Subscribe(ctx context.Context, rawName, rawEmail string) error {
	err := s.subscribe(ctx, rawName, rawEmail)
	if err != nil {
		s.metrics.ObserveSubscribe(err.Kind.String())
		return err
	}
	s.metrics.ObserveSubscribe(metrics.OutcomeOK)
	return nil
}

func (s *SubscriptionService) subscribe(ctx context.Context, rawName, rawEmail string) *SubscribeError {
	ns, err := domain.NewSubscriberFromForm(rawName, rawEmail)
	if err != nil {
		return &SubscribeError{Kind: SubscribeValidation, Err: err}
	}

	id, tok, err := s.store.CreatePendingSubscriber(ctx, ns)
	if err != nil {
		return &SubscribeError{Kind: subscribeKindForStep(err), Err: err}
	}
	s.log.Infow("subscriber stored", "subscriber_id", id)

	msg, err := s.templates.Confirmation(ns.Email.String(), ConfirmationLink(s.baseURL, tok))
	if err != nil {
		return &SubscribeError{Kind: SubscribeSendEmail, Err: err}
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return &SubscribeError{Kind: SubscribeSendEmail, Err: fmt.Errorf("subscriber %s: %w", id, err)}
	}
	return nil
}

// Confirm marks the subscriber owning tok as confirmed. Confirming twice is
// not an error.
func (s *SubscriptionService) Confirm(ctx context.Context, tok string) error {
	err := s.confirm(ctx, tok)
	if err != nil {
		s.metrics.ObserveConfirm(err.Kind.String())
		return err
	}
	s.metrics.ObserveConfirm(metrics.OutcomeOK)
	return nil
}

func (s *SubscriptionService) confirm(ctx context.Context, tok string) *ConfirmError {
	if tok == "" {
		return &ConfirmError{Kind: ConfirmMissingToken}
	}
	// Tokens of the wrong shape can never match a stored row.
	if !token.Valid(tok) {
		return &ConfirmError{Kind: ConfirmTokenNotFound}
	}

	id, found, err := s.resolver.FindSubscriberIDByToken(ctx, tok)
	if err != nil {
		return &ConfirmError{Kind: ConfirmLookup, Err: err}
	}
	if !found {
		return &ConfirmError{Kind: ConfirmTokenNotFound}
	}
	if err := s.resolver.ConfirmSubscriber(ctx, id); err != nil {
		return &ConfirmError{Kind: ConfirmUpdate, Err: fmt.Errorf("subscriber %s: %w", id, err)}
	}
	s.log.Infow("subscriber confirmed", "subscriber_id", id)
	return nil
}
