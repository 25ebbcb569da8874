package service

import (
	"context"
	"sync"
	"time"

	"beast-tins/internal/model"
	"beast-tins/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// notificationListLimit bounds the polling response; older rows stay in
// the table but are not served.
const notificationListLimit = 100

// notificationService implements NotificationService with an in-process
// fan-out hub for push subscribers.
type notificationService struct {
	repo   repository.NotificationRepository
	logger zerolog.Logger

	mu          sync.Mutex
	subscribers map[chan model.Notification]struct{}
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:        repo,
		logger:      logger.With().Str("service", "notification").Logger(),
		subscribers: make(map[chan model.Notification]struct{}),
	}
}

// Notify appends an event and fans it out to subscribers. Best-effort on
// both sides: a failed insert is logged and dropped, and a subscriber
// that cannot keep up misses the event (the poll endpoint remains the
// authoritative record).
func (s *notificationService) Notify(ctx context.Context, typ model.NotificationType, title, message string, orderID *uuid.UUID) {
	n := model.Notification{
		ID:        uuid.New(),
		Type:      typ,
		Title:     title,
		Message:   message,
		OrderID:   orderID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, &n); err != nil {
		s.logger.Error().Err(err).Str("type", string(typ)).Msg("failed to record notification")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- n:
		default:
			s.logger.Warn().Str("type", string(typ)).Msg("subscriber slow, notification dropped from push channel")
		}
	}
}

// List returns the event log newest-first with the unread count.
func (s *notificationService) List(ctx context.Context) (*model.NotificationList, error) {
	notifications, err := s.repo.List(ctx, notificationListLimit)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.UnreadCount(ctx)
	if err != nil {
		return nil, err
	}

	return &model.NotificationList{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkRead flips one notification to read.
func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead flips every unread notification to read.
func (s *notificationService) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}

// Subscribe registers a push subscriber.
func (s *notificationService) Subscribe() (<-chan model.Notification, func()) {
	ch := make(chan model.Notification, 16)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subscribers, ch)
		s.mu.Unlock()
	}

	return ch, cancel
}
