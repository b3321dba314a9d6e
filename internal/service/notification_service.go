package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/maplorix/jobboard-service/internal/config"
	"github.com/maplorix/jobboard-service/internal/events"
)

// NotificationService reacts to domain events. Emails are logged through the
// configured sender identity; when a webhook URL is configured the event is
// also POSTed there as JSON.
type NotificationService struct {
	cfg    config.NotificationConfig
	client *http.Client
	logger *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(cfg config.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// HandleJobCreated announces a new posting.
func (s *NotificationService) HandleJobCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.JobCreatedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("job posted",
		zap.String("job_id", payload.JobID),
		zap.String("title", payload.Title),
		zap.String("company", payload.Company))
	s.postWebhook(ctx, event)
	return nil
}

// HandleApplicationSubmitted notifies the team about a new application.
func (s *NotificationService) HandleApplicationSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationSubmittedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("application received",
		zap.String("application_id", payload.ApplicationID),
		zap.String("from", s.cfg.EmailFrom),
		zap.String("to", payload.Email),
		zap.String("job_role", payload.JobRole))
	s.postWebhook(ctx, event)
	return nil
}

// HandleApplicationStatusChanged notifies the candidate about a decision.
func (s *NotificationService) HandleApplicationStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationStatusChangedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("application status changed",
		zap.String("application_id", payload.ApplicationID),
		zap.String("from", s.cfg.EmailFrom),
		zap.String("to", payload.Email),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)))
	s.postWebhook(ctx, event)
	return nil
}

// HandleContactSubmitted notifies the team about a new inquiry.
func (s *NotificationService) HandleContactSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactSubmittedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("contact inquiry received",
		zap.String("contact_id", payload.ContactID),
		zap.String("subject", payload.Subject),
		zap.String("category", string(payload.Category)))
	s.postWebhook(ctx, event)
	return nil
}

func (s *NotificationService) postWebhook(ctx context.Context, event events.Event) {
	if s.cfg.WebhookURL == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("failed to encode webhook payload", zap.Error(err))
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		s.logger.Warn("failed to build webhook request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("webhook delivery failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		s.logger.Warn("webhook returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("event_type", string(event.Type)))
	}
}
