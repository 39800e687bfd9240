package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"inventory/config"
	"inventory/internal/domain/service"
	"inventory/internal/errors"
)

const maxErrorBody = 512

// httpMailer posts messages to a SendGrid v3 compatible mail/send endpoint.
type httpMailer struct {
	endpoint   string
	apiKey     string
	from       string
	httpClient *http.Client
	logger     *slog.Logger
}

type address struct {
	Email string `json:"email"`
}

type personalization struct {
	To []address `json:"to"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// sendRequest is the mail/send request body.
type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

// NewHTTPMailer creates a mailer from the mail config section.
func NewHTTPMailer(cfg *config.MailConfig, logger *slog.Logger) service.Mailer {
	return &httpMailer{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		from:     cfg.From,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

func (m *httpMailer) Send(ctx context.Context, msg *service.MailMessage) error {
	body, err := json.Marshal(sendRequest{
		Personalizations: []personalization{{To: []address{{Email: msg.To}}}},
		From:             address{Email: m.from},
		Subject:          msg.Subject,
		Content:          []content{{Type: "text/plain", Value: msg.Text}},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "mail request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return errors.Errorf("mail provider returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	m.logger.DebugContext(ctx, "[HTTPMailer] Email sent",
		slog.String("to", msg.To),
		slog.Int("status", resp.StatusCode),
	)

	return nil
}
