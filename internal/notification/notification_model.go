package notification

import (
	"time"

	"gorm.io/gorm"
)

// Notification kinds emitted by the application.
const (
	KindReferenceRequestReceived = "reference_request_received"
	KindFriendRequestReceived    = "friend_request_received"
)

// Notification is one entry in a recipient's unread list. The (kind,
// source_entity_id) pair is unique so duplicate emits collapse into one row
// and dismissal can be keyed without knowing the row id.
type Notification struct {
	gorm.Model
	Kind           string     `json:"kind" gorm:"not null;uniqueIndex:idx_notification_source"`
	SourceEntityID uint       `json:"source_entity_id" gorm:"not null;uniqueIndex:idx_notification_source"`
	RecipientID    uint       `json:"recipient_id" gorm:"index;not null"`
	DismissedAt    *time.Time `json:"dismissed_at"`
}
