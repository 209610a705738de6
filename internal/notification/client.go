// Package notification delivers transactional email through an external
// HTTP provider. Network I/O is the only side effect; the client holds no
// state beyond its configuration.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"handmadepixel/internal/signup/domain"
	"handmadepixel/pkg/platform/sentinel"
)

var tracer = otel.Tracer("handmadepixel/notification")

// authHeader carries the provider secret. The secret must never be logged
// or included in error messages.
const authHeader = "X-Postmark-Server-Token"

// Client posts send-email requests to {baseURL}/email.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sender     domain.Email
	authToken  string
}

// sendEmailRequest is the provider wire format. The PascalCase field names
// are part of the provider contract.
type sendEmailRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HTMLBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// NewClient builds a Client. baseURL is expected to be HTTPS in production;
// timeout bounds every Send call end to end.
func NewClient(baseURL string, sender domain.Email, authToken string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		sender:     sender,
		authToken:  authToken,
	}
}

// Sender returns the configured From address.
func (c *Client) Sender() domain.Email {
	return c.sender
}

// Send delivers one email. A non-2xx provider response and a timeout both
// count as delivery failure and wrap sentinel.ErrUnavailable.
func (c *Client) Send(ctx context.Context, recipient domain.Email, subject, htmlBody, textBody string) error {
	ctx, span := tracer.Start(ctx, "notification.Send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	payload := sendEmailRequest{
		From:     c.sender.String(),
		To:       recipient.String(),
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authHeader, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Covers timeouts and transport failures alike.
		return fmt.Errorf("send email: %w", sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send email: provider returned %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}
	return nil
}
