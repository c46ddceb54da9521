package memory

import (
	"assetflow/models"
	"context"

	"github.com/google/uuid"
)

type notificationRepo struct {
	s *Store
}

func (r *notificationRepo) Append(ctx context.Context, username, message string) (models.Notification, error) {
	defer r.s.lock()()

	n := models.Notification{
		ID:        uuid.New(),
		Username:  username,
		Message:   message,
		CreatedAt: r.s.now(),
	}
	r.s.st.notifications = append(r.s.st.notifications, n)
	return n, nil
}

func (r *notificationRepo) ListFor(ctx context.Context, username string) ([]models.Notification, error) {
	defer r.s.rlock()()

	out := make([]models.Notification, 0)
	for i := len(r.s.st.notifications) - 1; i >= 0; i-- {
		if r.s.st.notifications[i].Username == username {
			out = append(out, r.s.st.notifications[i])
		}
	}
	return out, nil
}

func (r *notificationRepo) DeleteFor(ctx context.Context, username string) error {
	defer r.s.lock()()

	kept := r.s.st.notifications[:0:0]
	for _, n := range r.s.st.notifications {
		if n.Username != username {
			kept = append(kept, n)
		}
	}
	r.s.st.notifications = kept
	return nil
}
