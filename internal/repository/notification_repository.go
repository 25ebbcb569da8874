package repository

import (
	"context"
	"fmt"

	"beast-tins/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// notificationRepository implements the NotificationRepository interface
// using PostgreSQL.
type notificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "notification").Logger(),
	}
}

// Create appends a notification row.
func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_notifications (id, type, title, message, order_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, n.ID, n.Type, n.Title, n.Message, n.OrderID, n.Read, n.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("type", string(n.Type)).Msg("failed to create notification")
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// List retrieves notifications newest-first.
func (r *notificationRepository) List(ctx context.Context, limit int) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, type, title, message, order_id, read, created_at
		FROM admin_notifications
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query notifications")
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.OrderID, &n.Read, &n.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan notification row")
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating notification rows")
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// UnreadCount returns the number of unread notifications.
func (r *notificationRepository) UnreadCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM admin_notifications WHERE NOT read
	`).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query unread count")
		return 0, fmt.Errorf("failed to query unread count: %w", err)
	}

	return count, nil
}

// MarkRead flips a single notification to read.
func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE admin_notifications SET read = TRUE WHERE id = $1
	`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to mark notification read")
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}

// MarkAllRead flips every unread notification to read.
func (r *notificationRepository) MarkAllRead(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE admin_notifications SET read = TRUE WHERE NOT read
	`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to mark all notifications read")
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return nil
}
