package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeReservationConfirmed NotificationType = "RESERVATION_CONFIRMED"
	NotificationTypeReservationCancelled NotificationType = "RESERVATION_CANCELLED"
)

// Guests get email; the front-desk chat channel mirrors every event so
// staff see bookings land in real time.
type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "EMAIL"
	NotificationChannelChat  NotificationChannel = "CHAT"
)

type NotificationPriority string

const (
	NotificationPriorityLow      NotificationPriority = "LOW"
	NotificationPriorityMedium   NotificationPriority = "MEDIUM"
	NotificationPriorityHigh     NotificationPriority = "HIGH"
	NotificationPriorityCritical NotificationPriority = "CRITICAL"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "PENDING"
	NotificationStatusQueued   NotificationStatus = "QUEUED"
	NotificationStatusSending  NotificationStatus = "SENDING"
	NotificationStatusSent     NotificationStatus = "SENT"
	NotificationStatusFailed   NotificationStatus = "FAILED"
	NotificationStatusRetrying NotificationStatus = "RETRYING"
	NotificationStatusExpired  NotificationStatus = "EXPIRED"
)

// Notification is the message published to Kafka and fanned out to the
// configured channels by the consumer workers.
type Notification struct {
	ID       uuid.UUID             `json:"id"`
	Type     NotificationType      `json:"type"`
	Priority NotificationPriority  `json:"priority"`
	Channels []NotificationChannel `json:"channels"`

	// Recipient info. Guests never have accounts, so the email is the
	// identity here.
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	// Content
	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	// Context
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	RoomCategory  string     `json:"room_category,omitempty"`

	// Timing
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// Status tracking
	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

type NotificationBuilder struct {
	notification *Notification
}

func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{
		notification: &Notification{
			ID:           uuid.New(),
			Status:       NotificationStatusPending,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
			MaxRetries:   3,
			TemplateData: make(map[string]interface{}),
		},
	}
}

func (nb *NotificationBuilder) WithType(notType NotificationType) *NotificationBuilder {
	nb.notification.Type = notType
	nb.notification.Priority = GetDefaultPriority(notType)
	nb.notification.Channels = GetDefaultChannels(notType)
	return nb
}

func (nb *NotificationBuilder) WithRecipient(email, name string) *NotificationBuilder {
	nb.notification.RecipientEmail = email
	nb.notification.RecipientName = name
	return nb
}

func (nb *NotificationBuilder) WithChannels(channels ...NotificationChannel) *NotificationBuilder {
	nb.notification.Channels = channels
	return nb
}

func (nb *NotificationBuilder) WithPriority(priority NotificationPriority) *NotificationBuilder {
	nb.notification.Priority = priority
	return nb
}

func (nb *NotificationBuilder) WithSubject(subject string) *NotificationBuilder {
	nb.notification.Subject = subject
	return nb
}

func (nb *NotificationBuilder) WithTemplateData(data map[string]interface{}) *NotificationBuilder {
	nb.notification.TemplateData = data
	return nb
}

func (nb *NotificationBuilder) WithReservationContext(reservationID uuid.UUID, roomCategory string) *NotificationBuilder {
	nb.notification.ReservationID = &reservationID
	nb.notification.RoomCategory = roomCategory
	return nb
}

func (nb *NotificationBuilder) WithExpiration(expiresAt *time.Time) *NotificationBuilder {
	nb.notification.ExpiresAt = expiresAt
	return nb
}

func (nb *NotificationBuilder) WithMaxRetries(maxRetries int) *NotificationBuilder {
	nb.notification.MaxRetries = maxRetries
	return nb
}

func (nb *NotificationBuilder) Build() *Notification {
	return nb.notification
}

func GetDefaultPriority(notType NotificationType) NotificationPriority {
	switch notType {
	case NotificationTypeReservationConfirmed:
		return NotificationPriorityHigh
	case NotificationTypeReservationCancelled:
		return NotificationPriorityMedium
	default:
		return NotificationPriorityMedium
	}
}

func GetDefaultChannels(notType NotificationType) []NotificationChannel {
	switch notType {
	case NotificationTypeReservationConfirmed, NotificationTypeReservationCancelled:
		return []NotificationChannel{NotificationChannelEmail, NotificationChannelChat}
	default:
		return []NotificationChannel{NotificationChannelEmail}
	}
}

// GetPartitionKey keeps all of a guest's notifications on one partition
// so they are delivered in order.
func (n *Notification) GetPartitionKey() string {
	return n.RecipientEmail
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) HasChannel(channel NotificationChannel) bool {
	for _, c := range n.Channels {
		if c == channel {
			return true
		}
	}
	return false
}

func (n *Notification) IsExpired() bool {
	return n.ExpiresAt != nil && time.Now().After(*n.ExpiresAt)
}

func (n *Notification) ShouldRetry() bool {
	return n.RetryCount < n.MaxRetries &&
		n.Status == NotificationStatusFailed &&
		!n.IsExpired()
}

func (n *Notification) MarkSent() {
	now := time.Now()
	n.Status = NotificationStatusSent
	n.SentAt = &now
	n.UpdatedAt = now
}

func (n *Notification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	n.UpdatedAt = time.Now()

	errorStr := err.Error()
	n.LastError = &errorStr
}

func (n *Notification) IncrementRetry() {
	n.RetryCount++
	n.UpdatedAt = time.Now()
	if n.ShouldRetry() {
		n.Status = NotificationStatusRetrying
	} else {
		n.Status = NotificationStatusExpired
	}
}
