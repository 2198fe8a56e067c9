package friendship

import "gorm.io/gorm"

// Friendship statuses. An edge is stored once, in the direction it was
// created; all lookups treat it as symmetric.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusBlocked   = "blocked"
)

// ActiveEdgeIndexSQL creates the partial unique index guaranteeing at most
// one live edge per unordered profile pair, while leaving rejected and
// cancelled edges free to be superseded. AutoMigrate cannot express a
// predicate index, so main runs this after migration.
const ActiveEdgeIndexSQL = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_friendship_active_edge
ON friendship_edges (LEAST(requester_id, addressee_id), GREATEST(requester_id, addressee_id))
WHERE status IN ('pending', 'accepted', 'blocked') AND deleted_at IS NULL`

// Edge represents the relationship between two profiles.
type Edge struct {
	gorm.Model
	RequesterID uint   `json:"requester_id" gorm:"index;not null"`
	AddresseeID uint   `json:"addressee_id" gorm:"index;not null"`
	Status      string `json:"status" gorm:"index;not null;default:'pending'"`
}

func (Edge) TableName() string {
	return "friendship_edges"
}
