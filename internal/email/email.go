// Package email sends subscription confirmation emails through a pluggable provider.
package email

import (
	"context"
	"fmt"

	"github.com/richardliu001/newsletter-service/internal/config"
	"go.uber.org/zap"
)

// Message is one outbound email. Both bodies are always set.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers a message. Implementations make a single attempt.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the Sender selected by cfg.Provider.
func New(ctx context.Context, cfg config.EmailClientConfig, logger *zap.SugaredLogger) (Sender, error) {
	switch cfg.Provider {
	case "", "postmark":
		return NewPostmarkClient(cfg.BaseURL, cfg.SenderEmail, cfg.AuthorizationToken, cfg.Timeout(), logger), nil
	case "ses":
		return NewSESSender(ctx, cfg.SESRegion, cfg.SESAccessKey, cfg.SESSecretKey, cfg.SenderEmail, logger)
	case "log":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

// LogSender logs the email instead of sending it.
type LogSender struct {
	log *zap.SugaredLogger
}

func NewLogSender(logger *zap.SugaredLogger) *LogSender {
	return &LogSender{log: logger}
}

func (l *LogSender) Send(_ context.Context, msg Message) error {
	l.log.Infow("MOCK EMAIL",
		"to", msg.To,
		"subject", msg.Subject,
		"text_body", msg.TextBody)
	return nil
}
