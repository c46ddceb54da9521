package postgres

import (
	"assetflow/models"
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type NotificationRepository struct {
	q sqlx.ExtContext
}

func (r *NotificationRepository) Append(ctx context.Context, username, message string) (models.Notification, error) {
	var n models.Notification
	err := sqlx.GetContext(ctx, r.q, &n, `
		INSERT INTO notifications (id, username, message)
		VALUES ($1, $2, $3)
		RETURNING id, username, message, created_at`,
		uuid.New(), username, message)
	if err != nil {
		return models.Notification{}, mapError(err, "notification not found", "failed to insert notification")
	}
	return n, nil
}

func (r *NotificationRepository) ListFor(ctx context.Context, username string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := sqlx.SelectContext(ctx, r.q, &notifications, `
		SELECT id, username, message, created_at
		FROM notifications
		WHERE username = $1
		ORDER BY seq DESC`, username)
	if err != nil {
		return nil, mapError(err, "notification not found", "failed to fetch notifications")
	}
	return notifications, nil
}

func (r *NotificationRepository) DeleteFor(ctx context.Context, username string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM notifications WHERE username = $1`, username); err != nil {
		return mapError(err, "", "failed to delete notifications")
	}
	return nil
}
