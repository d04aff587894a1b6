package mysql

import (
	"context"

	notificationDomain "equipmart-backend/internal/domain/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository persists notifications as the delivery channel.
// Real transports (email, webhooks) would fan out from these rows.
type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Notify(ctx context.Context, userID string, kind notificationDomain.Kind, title, message string, metadata map[string]string) error {
	n := &notificationDomain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Kind:           kind,
		Title:          title,
		Message:        message,
		Metadata:       metadata,
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]notificationDomain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []notificationDomain.Notification
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}
