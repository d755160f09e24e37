package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PostmarkClient sends through a Postmark-compatible HTTP API.
type PostmarkClient struct {
	baseURL string
	from    string
	token   string
	client  *http.Client
	log     *zap.SugaredLogger
}

func NewPostmarkClient(baseURL, from, token string, timeout time.Duration, logger *zap.SugaredLogger) *PostmarkClient {
	return &PostmarkClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		from:    from,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		log:     logger,
	}
}

type sendEmailRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// Send posts the message to {baseURL}/email.
func (p *PostmarkClient) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(sendEmailRequest{
		From:     p.from,
		To:       msg.To,
		Subject:  msg.Subject,
		HtmlBody: msg.HTMLBody,
		TextBody: msg.TextBody,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", p.token)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.log.Warnw("close email response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send email: HTTP %d", resp.StatusCode)
	}

	p.log.Infow("email api request completed",
		"to", msg.To,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}
