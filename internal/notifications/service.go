package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"roomly/internal/shared/config"
)

type NotificationService interface {
	SendNotification(ctx context.Context, notification *Notification) error
	SendBatchNotifications(ctx context.Context, notifications []*Notification) error

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ServiceConfig struct {
	KafkaBrokers       []string
	NotificationTopic  string
	DeadLetterTopic    string
	ConsumerGroupID    string
	NumConsumerWorkers int
	SMTP               *SMTPConfig
	Chat               *ChatWebhookConfig
}

// NewServiceConfig maps application config onto the notification pipeline.
func NewServiceConfig(cfg *config.Config) *ServiceConfig {
	return &ServiceConfig{
		KafkaBrokers:       cfg.Kafka.Brokers,
		NotificationTopic:  cfg.Kafka.NotificationTopic,
		DeadLetterTopic:    cfg.Kafka.DeadLetterTopic,
		ConsumerGroupID:    cfg.Kafka.ConsumerGroupID,
		NumConsumerWorkers: cfg.Kafka.ConsumerWorkers,
		SMTP: &SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			UseTLS:    true,
		},
		Chat: &ChatWebhookConfig{
			WebhookURL: cfg.Chat.WebhookURL,
			Channel:    cfg.Chat.Channel,
			Timeout:    cfg.Chat.Timeout,
		},
	}
}

type kafkaNotificationService struct {
	config       *ServiceConfig
	producer     NotificationProducer
	consumer     NotificationConsumer
	emailService EmailService
	chatService  ChatService

	isRunning bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewNotificationService wires producer, consumer and delivery channels.
// Missing SMTP credentials fall back to the mock email sender so local
// environments work without a mail account; a missing chat webhook simply
// disables the chat mirror.
func NewNotificationService(config *ServiceConfig) (NotificationService, error) {
	if config == nil {
		return nil, fmt.Errorf("notification service config is required")
	}

	var emailService EmailService
	smtpService, err := NewSMTPEmailService(config.SMTP)
	if err != nil {
		log.Printf("📧 SMTP not configured (%v), using mock email sender", err)
		emailService = NewMockEmailService()
	} else {
		emailService = smtpService
	}

	chatService, err := NewChatWebhookService(config.Chat)
	if err != nil {
		log.Printf("💬 Chat webhook not configured (%v), using mock chat sender", err)
		chatService = NewMockChatService()
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = config.KafkaBrokers
	producerConfig.NotificationTopic = config.NotificationTopic
	producerConfig.DeadLetterTopic = config.DeadLetterTopic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = config.KafkaBrokers
	consumerConfig.Topics = []string{config.NotificationTopic}
	consumerConfig.GroupID = config.ConsumerGroupID

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService, chatService, producer)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	log.Printf("📧 Notification service initialized (brokers: %v, topic: %s)",
		config.KafkaBrokers, config.NotificationTopic)

	return &kafkaNotificationService{
		config:       config,
		producer:     producer,
		consumer:     consumer,
		emailService: emailService,
		chatService:  chatService,
		isRunning:    false,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

func (kns *kafkaNotificationService) Start(ctx context.Context) error {
	kns.mu.Lock()
	defer kns.mu.Unlock()

	if kns.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	log.Printf("🚀 Starting notification service...")

	workers := kns.config.NumConsumerWorkers
	if workers <= 0 {
		workers = 3
	}

	err := kns.consumer.StartConsumers(kns.ctx, workers)
	if err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	kns.isRunning = true
	log.Printf("✅ Notification service started successfully")

	return nil
}

func (kns *kafkaNotificationService) Stop() error {
	kns.mu.Lock()
	defer kns.mu.Unlock()

	if !kns.isRunning {
		return fmt.Errorf("notification service is not running")
	}

	log.Printf("🛑 Stopping notification service...")

	kns.cancel()

	if err := kns.consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}

	if err := kns.producer.Close(); err != nil {
		log.Printf("Error closing producer: %v", err)
	}

	kns.isRunning = false
	log.Printf("✅ Notification service stopped")

	return nil
}

func (kns *kafkaNotificationService) SendNotification(ctx context.Context, notification *Notification) error {
	return kns.producer.PublishNotification(ctx, notification)
}

func (kns *kafkaNotificationService) SendBatchNotifications(ctx context.Context, notifications []*Notification) error {
	return kns.producer.PublishBatchNotifications(ctx, notifications)
}

func (kns *kafkaNotificationService) HealthCheck(ctx context.Context) error {
	kns.mu.RLock()
	isRunning := kns.isRunning
	kns.mu.RUnlock()

	if !isRunning {
		return fmt.Errorf("notification service is not running")
	}

	if err := kns.producer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("producer health check failed: %w", err)
	}

	if err := kns.consumer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("consumer health check failed: %w", err)
	}

	return nil
}
