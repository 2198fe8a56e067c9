package notification

import "github.com/sportlink/refnet/pkg/logger"

// Service is the bridge other features call to emit and dismiss
// notifications. Both operations are best-effort: failures are logged and
// swallowed so a notification problem can never roll back the state change
// that triggered it.
type Service struct {
	repo NotificationRepository
}

// NewService creates a notification service on top of the given repository.
func NewService(repo NotificationRepository) *Service {
	return &Service{repo: repo}
}

// Emit records a notification for the recipient. Re-emitting for the same
// (kind, sourceEntityID) is a no-op.
func (s *Service) Emit(kind string, sourceEntityID, recipientID uint) {
	n := &Notification{
		Kind:           kind,
		SourceEntityID: sourceEntityID,
		RecipientID:    recipientID,
	}
	if err := s.repo.Upsert(n); err != nil {
		logger.Error("failed to emit notification",
			"kind", kind,
			"source_entity_id", sourceEntityID,
			"recipient_id", recipientID,
			"error", err,
		)
	}
}

// Dismiss clears the notification keyed by (kind, sourceEntityID).
// Dismissing an absent or already-dismissed notification is a no-op.
func (s *Service) Dismiss(kind string, sourceEntityID uint) {
	if err := s.repo.MarkDismissed(kind, sourceEntityID); err != nil {
		logger.Error("failed to dismiss notification",
			"kind", kind,
			"source_entity_id", sourceEntityID,
			"error", err,
		)
	}
}
