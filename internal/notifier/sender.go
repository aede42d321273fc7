// Package notifier delivers booking lifecycle emails through a Brevo-style
// transactional template API and records every attempt in notification_logs.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agora-concertations/backend/config"
	"github.com/agora-concertations/backend/internal/models"
	"github.com/agora-concertations/backend/pkg/queue"
)

// ErrDisabled is returned when no API key is configured. Delivery is skipped
// and never retried.
var ErrDisabled = errors.New("email delivery disabled: no api key configured")

// Sender posts template emails to the provider API.
type Sender struct {
	cfg    config.EmailConfig
	client *http.Client
}

// NewSender creates a sender over the given provider settings.
func NewSender(cfg config.EmailConfig) *Sender {
	return &Sender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	Sender     emailAddress      `json:"sender"`
	To         []emailAddress    `json:"to"`
	TemplateID int               `json:"templateId"`
	Params     map[string]string `json:"params"`
}

type emailAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// templateFor maps a notification kind to the configured provider template.
func (s *Sender) templateFor(kind string) (int, error) {
	switch kind {
	case models.NotificationRegistrationReceived:
		return s.cfg.RegistrationReceivedTemplate, nil
	case models.NotificationParticipationAccepted:
		return s.cfg.ParticipationAcceptedTemplate, nil
	case models.NotificationParticipationDeclined:
		return s.cfg.ParticipationDeclinedTemplate, nil
	}
	return 0, fmt.Errorf("unknown notification kind %q", kind)
}

// Send delivers one notification. A non-2xx provider response is an error so
// the caller can retry.
func (s *Sender) Send(ctx context.Context, p queue.NotificationPayload) error {
	if s.cfg.APIKey == "" {
		return ErrDisabled
	}
	templateID, err := s.templateFor(p.Kind)
	if err != nil {
		return err
	}

	body, err := json.Marshal(sendRequest{
		Sender:     emailAddress{Name: s.cfg.FromName, Email: s.cfg.FromAddress},
		To:         []emailAddress{{Name: p.RecipientName, Email: p.RecipientEmail}},
		TemplateID: templateID,
		Params: map[string]string{
			"RECIPIENT_NAME": p.RecipientName,
			"EVENT_SUBJECT":  p.EventSubject,
		},
	})
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email api status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
