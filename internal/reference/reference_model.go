package reference

import (
	"time"

	"gorm.io/gorm"

	"github.com/sportlink/refnet/internal/profile"
)

// Reference relationship statuses. A relationship is created pending, the
// giver moves it to accepted or declined, and an accepted one can later be
// removed (by the requester) or withdrawn (by the giver). declined, withdrawn
// and removed are terminal.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusWithdrawn = "withdrawn"
	StatusRemoved   = "removed"
)

const (
	// MaxAcceptedReferences is the number of accepted references a requester
	// may hold at once.
	MaxAcceptedReferences = 5

	MaxRequestNoteLen = 600
	MaxEndorsementLen = 800
)

// relationshipTypes is the closed set of labels a requester can pick from.
var relationshipTypes = []string{
	"Teammate",
	"Head Coach",
	"Assistant Coach",
	"Club Manager",
	"Training Partner",
	"Scout",
	"Brand Partner",
}

// ValidRelationshipType reports whether t is one of the allowed labels.
func ValidRelationshipType(t string) bool {
	for _, rt := range relationshipTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// RelationshipTypes returns a copy of the allowed labels for presentation.
func RelationshipTypes() []string {
	out := make([]string, len(relationshipTypes))
	copy(out, relationshipTypes)
	return out
}

// IsActiveStatus reports whether s counts against pair uniqueness.
func IsActiveStatus(s string) bool {
	return s == StatusPending || s == StatusAccepted
}

// IsTerminalStatus reports whether s permits no further transitions.
func IsTerminalStatus(s string) bool {
	return s == StatusDeclined || s == StatusWithdrawn || s == StatusRemoved
}

// Relationship is one reference between a requester (the profile being
// vouched for) and a giver. RequestNote is written once at creation;
// EndorsementText belongs to the giver and is only meaningful while the
// relationship is accepted.
type Relationship struct {
	gorm.Model
	RequesterID          uint       `json:"requester_id" gorm:"index:idx_reference_pair;not null"`
	GiverID              uint       `json:"giver_id" gorm:"index:idx_reference_pair;not null"`
	Status               string     `json:"status" gorm:"index;not null;default:'pending'"`
	RelationshipType     string     `json:"relationship_type" gorm:"not null"`
	RequestNote          string     `json:"request_note" gorm:"size:600"`
	EndorsementText      string     `json:"endorsement_text" gorm:"size:800"`
	CancelledByRequester bool       `json:"cancelled_by_requester" gorm:"default:false"`
	AcceptedAt           *time.Time `json:"accepted_at"`
}

func (Relationship) TableName() string {
	return "reference_relationships"
}

// View decorates a relationship with the counterpart profile summaries for
// the presentation layer.
type View struct {
	Relationship
	Requester *profile.Summary `json:"requester,omitempty"`
	Giver     *profile.Summary `json:"giver,omitempty"`
}

// ListResult is the four-way projection returned by the list operation.
type ListResult struct {
	Accepted         []View `json:"accepted"`
	Pending          []View `json:"pending"`
	IncomingRequests []View `json:"incoming_requests"`
	GivenReferences  []View `json:"given_references"`
}
