package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// ChatService mirrors reservation events into the front-desk chat channel
// via an incoming webhook.
type ChatService interface {
	PostNotification(ctx context.Context, notification *Notification) error
	PostMessage(ctx context.Context, text string) error
}

// ChatWebhookConfig holds webhook configuration for the staff chat.
type ChatWebhookConfig struct {
	WebhookURL string
	Channel    string
	Timeout    time.Duration
}

type chatWebhookService struct {
	config *ChatWebhookConfig
	client *http.Client
}

// NewChatWebhookService creates a chat service posting to an incoming
// webhook. Returns an error when no webhook URL is configured.
func NewChatWebhookService(config *ChatWebhookConfig) (ChatService, error) {
	if config == nil || config.WebhookURL == "" {
		return nil, fmt.Errorf("chat webhook URL is required")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &chatWebhookService{
		config: config,
		client: &http.Client{Timeout: timeout},
	}, nil
}

type chatPayload struct {
	Channel string `json:"channel,omitempty"`
	Text    string `json:"text"`
}

func (s *chatWebhookService) PostNotification(ctx context.Context, notification *Notification) error {
	return s.PostMessage(ctx, s.formatMessage(notification))
}

func (s *chatWebhookService) PostMessage(ctx context.Context, text string) error {
	payload := chatPayload{
		Channel: s.config.Channel,
		Text:    text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to chat webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("chat webhook returned status %d", resp.StatusCode)
	}

	log.Printf("💬 Chat message posted for channel %s", s.config.Channel)
	return nil
}

func (s *chatWebhookService) formatMessage(notification *Notification) string {
	data := notification.TemplateData

	switch notification.Type {
	case NotificationTypeReservationConfirmed:
		return fmt.Sprintf("✅ New booking: %v room for %s (%v → %v)",
			data["room_category"], notification.RecipientName, data["check_in"], data["check_out"])
	case NotificationTypeReservationCancelled:
		return fmt.Sprintf("❌ Cancelled: %v room for %s (%v → %v)",
			data["room_category"], notification.RecipientName, data["check_in"], data["check_out"])
	default:
		return fmt.Sprintf("📧 %s for %s", notification.Subject, notification.RecipientName)
	}
}

// MockChatService logs instead of posting; used when no webhook is set.
type MockChatService struct{}

func NewMockChatService() *MockChatService {
	return &MockChatService{}
}

func (s *MockChatService) PostNotification(ctx context.Context, notification *Notification) error {
	log.Printf("💬 [MOCK] %s notification for %s", notification.Type, notification.RecipientName)
	return nil
}

func (s *MockChatService) PostMessage(ctx context.Context, text string) error {
	log.Printf("💬 [MOCK] %s", text)
	return nil
}
