package notification

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationRepository defines the interface for notification data
// operations.
type NotificationRepository interface {
	Upsert(n *Notification) error
	MarkDismissed(kind string, sourceEntityID uint) error
	MarkDismissedByID(id, recipientID uint) (bool, error)
	ListUndismissed(recipientID uint, page, limit int) ([]Notification, int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of
// NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Upsert inserts the notification, silently keeping the existing row when one
// with the same (kind, source_entity_id) is already present. Duplicate UI
// triggers and client retries therefore never produce a second entry.
func (r *notificationRepository) Upsert(n *Notification) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "source_entity_id"}},
		DoNothing: true,
	}).Create(n).Error
}

// MarkDismissed stamps DismissedAt on the matching undismissed row. Zero rows
// affected (absent or already dismissed) is not an error.
func (r *notificationRepository) MarkDismissed(kind string, sourceEntityID uint) error {
	now := time.Now()
	return r.db.Model(&Notification{}).
		Where("kind = ? AND source_entity_id = ? AND dismissed_at IS NULL", kind, sourceEntityID).
		Update("dismissed_at", &now).Error
}

// MarkDismissedByID dismisses a single notification on behalf of its
// recipient. Returns false when no undismissed row matched.
func (r *notificationRepository) MarkDismissedByID(id, recipientID uint) (bool, error) {
	now := time.Now()
	result := r.db.Model(&Notification{}).
		Where("id = ? AND recipient_id = ? AND dismissed_at IS NULL", id, recipientID).
		Update("dismissed_at", &now)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *notificationRepository) ListUndismissed(recipientID uint, page, limit int) ([]Notification, int64, error) {
	var notifications []Notification
	var total int64

	// Session makes the builder safe to reuse for the count and the page
	// fetch.
	query := r.db.Model(&Notification{}).
		Where("recipient_id = ? AND dismissed_at IS NULL", recipientID).
		Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}
