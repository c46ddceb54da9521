package notificationservice

import (
	"assetflow/models"
	"assetflow/providers"
	"assetflow/repository"
	"assetflow/services/policy"
	"context"
	"strings"

	"go.uber.org/zap"
)

type NotificationService interface {
	// NotifyWithin appends inside the caller's transaction so the message commits with the transition.
	NotifyWithin(ctx context.Context, tx repository.Store, username, message string) error
	// Broadcast is best effort: every recipient is attempted and failures are only logged.
	Broadcast(ctx context.Context, usernames []string, message string)
	ListFor(ctx context.Context, caller models.Identity) ([]models.Notification, error)
	Send(ctx context.Context, caller models.Identity, username, message string) (models.Notification, error)
}

type notificationService struct {
	store  repository.Store
	logger providers.ZapLoggerProvider
}

func NewNotificationService(store repository.Store, logger providers.ZapLoggerProvider) NotificationService {
	return &notificationService{store: store, logger: logger}
}

func (s *notificationService) NotifyWithin(ctx context.Context, tx repository.Store, username, message string) error {
	_, err := tx.Notifications().Append(ctx, username, message)
	return err
}

func (s *notificationService) Broadcast(ctx context.Context, usernames []string, message string) {
	for _, username := range usernames {
		if _, err := s.store.Notifications().Append(ctx, username, message); err != nil {
			s.logger.GetLogger().Warn("failed to deliver notification",
				zap.String("recipient", username),
				zap.Error(err))
		}
	}
}

func (s *notificationService) ListFor(ctx context.Context, caller models.Identity) ([]models.Notification, error) {
	if caller.Username == "" {
		return nil, models.NewAuthenticationError("missing caller identity")
	}
	return s.store.Notifications().ListFor(ctx, caller.Username)
}

func (s *notificationService) Send(ctx context.Context, caller models.Identity, username, message string) (models.Notification, error) {
	if err := policy.Authorize(caller, policy.SendNotification); err != nil {
		return models.Notification{}, err
	}
	username, message = strings.TrimSpace(username), strings.TrimSpace(message)
	if username == "" || message == "" {
		return models.Notification{}, models.NewValidationError("username and message are required")
	}
	if _, err := s.store.Users().GetByUsername(ctx, username); err != nil {
		return models.Notification{}, err
	}

	notification, err := s.store.Notifications().Append(ctx, username, message)
	if err != nil {
		return models.Notification{}, err
	}
	s.logger.GetLogger().Info("notification sent",
		zap.String("sender", caller.Username),
		zap.String("recipient", username))
	return notification, nil
}
