package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nestora/storefront/internal/ports"
)

// HTTPMailer submits transactional mail to an HTTP mail provider API.
type HTTPMailer struct {
	logger  *slog.Logger
	client  *http.Client
	apiURL  string
	apiKey  string
	from    string
	timeout time.Duration
}

// NewHTTPMailer creates a mail adapter for the configured provider endpoint.
func NewHTTPMailer(logger *slog.Logger, apiURL, apiKey, from string, timeout time.Duration) *HTTPMailer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPMailer{
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
		apiURL:  apiURL,
		apiKey:  apiKey,
		from:    from,
		timeout: timeout,
	}
}

type mailRequestBody struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

func (m *HTTPMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	body, err := json.Marshal(mailRequestBody{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Body,
	})
	if err != nil {
		return fmt.Errorf("encode mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("call mail provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		m.logger.WarnContext(ctx, "mail provider rejected message",
			"module", "notify.mailer",
			"layer", "adapter",
			"operation", "send_mail",
			"outcome", "failure",
			"status_code", resp.StatusCode,
		)
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, string(snippet))
	}

	m.logger.InfoContext(ctx, "mail submitted",
		"module", "notify.mailer",
		"layer", "adapter",
		"operation", "send_mail",
		"outcome", "success",
		"subject", msg.Subject,
	)
	return nil
}
