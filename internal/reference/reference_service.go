package reference

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/sportlink/refnet/internal/notification"
	"github.com/sportlink/refnet/internal/profile"
	"github.com/sportlink/refnet/pkg/apperrors"
	"github.com/sportlink/refnet/pkg/logger"
)

// FriendshipReader is the slice of the friendship feature the workflow
// consumes. The check is symmetric: argument order never matters.
type FriendshipReader interface {
	IsAcceptedFriend(a, b uint) (bool, error)
}

// ProfileReader supplies role lookups and the summaries used to decorate
// list responses.
type ProfileReader interface {
	GetSummary(id uint) (*profile.Summary, error)
	GetSummaries(ids []uint) (map[uint]profile.Summary, error)
}

// NotificationBridge is the fire-and-forget notification sink. Dismiss must
// be idempotent; both methods are called strictly after the surrounding
// transaction commits.
type NotificationBridge interface {
	Emit(kind string, sourceEntityID, recipientID uint)
	Dismiss(kind string, sourceEntityID uint)
}

// maxTxAttempts bounds retries of a transaction aborted by a transient
// serialization or deadlock failure.
const maxTxAttempts = 3

// Service executes the reference workflow transitions. Every mutating
// operation runs its checks and its write inside a single transaction so a
// concurrent caller cannot slip between a check and the commit.
type Service struct {
	repo     ReferenceRepository
	friends  FriendshipReader
	profiles ProfileReader
	notifier NotificationBridge
}

// NewService wires the workflow service.
func NewService(repo ReferenceRepository, friends FriendshipReader, profiles ProfileReader, notifier NotificationBridge) *Service {
	return &Service{
		repo:     repo,
		friends:  friends,
		profiles: profiles,
		notifier: notifier,
	}
}

// runInTx executes txFunc transactionally, retrying bounded times on
// transient serialization failures. Typed workflow failures pass through
// untouched.
func (s *Service) runInTx(txFunc func(ReferenceRepository) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.repo.WithTransaction(txFunc)
		if err == nil || !IsSerializationFailure(err) {
			return err
		}
		logger.Warn("retrying reference transaction after serialization failure",
			"attempt", attempt, "error", err)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeTransientFailure,
		fmt.Sprintf("transaction did not complete after %d attempts", maxTxAttempts))
}

// Request creates a pending reference relationship from requesterID towards
// giverID and notifies the giver.
func (s *Service) Request(requesterID, giverID uint, relationshipType, requestNote string) (*Relationship, error) {
	if requesterID == giverID {
		return nil, apperrors.New(apperrors.ErrCodeSelfReference, "cannot request a reference from yourself")
	}

	requester, err := s.profiles.GetSummary(requesterID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load requester profile")
	}
	if requester == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "requester profile not found")
	}
	if requester.Role != profile.RolePlayer && requester.Role != profile.RoleCoach {
		return nil, apperrors.New(apperrors.ErrCodeNotEligibleRole,
			"only players and coaches can collect references")
	}

	giver, err := s.profiles.GetSummary(giverID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load giver profile")
	}
	if giver == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "giver profile not found")
	}

	if !ValidRelationshipType(relationshipType) {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "unknown relationship type")
	}
	if utf8.RuneCountInString(requestNote) > MaxRequestNoteLen {
		return nil, apperrors.New(apperrors.ErrCodeValidation,
			fmt.Sprintf("request note exceeds %d characters", MaxRequestNoteLen))
	}

	rel := &Relationship{
		RequesterID:      requesterID,
		GiverID:          giverID,
		Status:           StatusPending,
		RelationshipType: relationshipType,
		RequestNote:      requestNote,
	}

	err = s.runInTx(func(repo ReferenceRepository) error {
		accepted, err := s.friends.IsAcceptedFriend(requesterID, giverID)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to check friendship")
		}
		if !accepted {
			return apperrors.New(apperrors.ErrCodeNotFriends,
				"a reference can only be requested from an accepted friend")
		}

		active, err := repo.HasActiveRelationship(requesterID, giverID)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to check existing relationships")
		}
		if active {
			return apperrors.New(apperrors.ErrCodeDuplicateActive,
				"an active reference relationship already exists for this pair")
		}

		count, err := repo.CountAcceptedLocked(requesterID)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to count accepted references")
		}
		if count >= MaxAcceptedReferences {
			return apperrors.New(apperrors.ErrCodeCapacityExceeded,
				fmt.Sprintf("requester already holds %d accepted references", MaxAcceptedReferences))
		}

		if err := repo.Create(rel); err != nil {
			// The active-pair partial index backstops the pre-check above
			// when two requests for the same pair race.
			if IsUniqueViolation(err) {
				return apperrors.New(apperrors.ErrCodeDuplicateActive,
					"an active reference relationship already exists for this pair")
			}
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to create reference request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Emit(notification.KindReferenceRequestReceived, rel.ID, giverID)
	return rel, nil
}

// Respond lets the giver accept or decline a pending request. The accept
// path re-validates the requester's capacity under lock; concurrent accepts
// of separate pending requests for the same requester cannot both land in the
// last free slot.
func (s *Service) Respond(relationshipID, callerID uint, accept bool, endorsementText string) (*Relationship, error) {
	if utf8.RuneCountInString(endorsementText) > MaxEndorsementLen {
		return nil, apperrors.New(apperrors.ErrCodeValidation,
			fmt.Sprintf("endorsement exceeds %d characters", MaxEndorsementLen))
	}

	var rel *Relationship
	err := s.runInTx(func(repo ReferenceRepository) error {
		var err error
		rel, err = repo.GetByIDLocked(relationshipID)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load relationship")
		}
		if rel == nil {
			return apperrors.New(apperrors.ErrCodeNotFound, "reference relationship not found")
		}
		if rel.GiverID != callerID {
			return apperrors.New(apperrors.ErrCodeNotAuthorized, "only the giver can respond to this request")
		}
		if rel.Status != StatusPending {
			return apperrors.New(apperrors.ErrCodeInvalidState, "relationship is not pending")
		}

		if accept {
			count, err := repo.CountAcceptedLocked(rel.RequesterID)
			if err != nil {
				return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to count accepted references")
			}
			if count >= MaxAcceptedReferences {
				return apperrors.New(apperrors.ErrCodeCapacityExceeded,
					fmt.Sprintf("requester already holds %d accepted references", MaxAcceptedReferences))
			}
			now := time.Now()
			rel.Status = StatusAccepted
			rel.AcceptedAt = &now
			if endorsementText != "" {
				rel.EndorsementText = endorsementText
			}
		} else {
			rel.Status = StatusDeclined
		}

		if err := repo.Save(rel); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to update relationship")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dismiss(notification.KindReferenceRequestReceived, rel.ID)
	return rel, nil
}

// Remove lets the requester drop one of their accepted references.
func (s *Service) Remove(relationshipID, callerID uint) error {
	return s.terminate(relationshipID, callerID, false, StatusRemoved)
}

// Withdraw lets the giver retract a reference they previously accepted.
func (s *Service) Withdraw(relationshipID, callerID uint) error {
	return s.terminate(relationshipID, callerID, true, StatusWithdrawn)
}

// terminate moves an accepted relationship to its terminal state, checking
// that the caller is the right side of the relationship.
func (s *Service) terminate(relationshipID, callerID uint, callerIsGiver bool, terminalStatus string) error {
	return s.runInTx(func(repo ReferenceRepository) error {
		rel, err := repo.GetByIDLocked(relationshipID)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load relationship")
		}
		if rel == nil {
			return apperrors.New(apperrors.ErrCodeNotFound, "reference relationship not found")
		}
		if callerIsGiver && rel.GiverID != callerID {
			return apperrors.New(apperrors.ErrCodeNotAuthorized, "only the giver can withdraw this reference")
		}
		if !callerIsGiver && rel.RequesterID != callerID {
			return apperrors.New(apperrors.ErrCodeNotAuthorized, "only the requester can remove this reference")
		}
		if rel.Status != StatusAccepted {
			return apperrors.New(apperrors.ErrCodeInvalidState, "relationship is not accepted")
		}

		rel.Status = terminalStatus
		if err := repo.Save(rel); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to update relationship")
		}
		return nil
	})
}

// Cancel lets the requester retract a still-pending request. The row lands
// in the declined terminal state, attributed to the requester, and the
// giver's notification is cleared.
func (s *Service) Cancel(relationshipID, callerID uint) error {
	err := s.runInTx(func(repo ReferenceRepository) error {
		rel, err := repo.GetByIDLocked(relationshipID)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load relationship")
		}
		if rel == nil {
			return apperrors.New(apperrors.ErrCodeNotFound, "reference relationship not found")
		}
		if rel.RequesterID != callerID {
			return apperrors.New(apperrors.ErrCodeNotAuthorized, "only the requester can cancel this request")
		}
		if rel.Status != StatusPending {
			return apperrors.New(apperrors.ErrCodeInvalidState, "relationship is not pending")
		}

		rel.Status = StatusDeclined
		rel.CancelledByRequester = true
		if err := repo.Save(rel); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to update relationship")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Dismiss(notification.KindReferenceRequestReceived, relationshipID)
	return nil
}

// EditEndorsement replaces the endorsement text of an accepted relationship.
// A nil text clears it. Giver-only.
func (s *Service) EditEndorsement(relationshipID, callerID uint, text *string) (*Relationship, error) {
	if text != nil && utf8.RuneCountInString(*text) > MaxEndorsementLen {
		return nil, apperrors.New(apperrors.ErrCodeValidation,
			fmt.Sprintf("endorsement exceeds %d characters", MaxEndorsementLen))
	}

	var rel *Relationship
	err := s.runInTx(func(repo ReferenceRepository) error {
		var err error
		rel, err = repo.GetByIDLocked(relationshipID)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load relationship")
		}
		if rel == nil {
			return apperrors.New(apperrors.ErrCodeNotFound, "reference relationship not found")
		}
		if rel.GiverID != callerID {
			return apperrors.New(apperrors.ErrCodeNotAuthorized, "only the giver can edit the endorsement")
		}
		if rel.Status != StatusAccepted {
			return apperrors.New(apperrors.ErrCodeInvalidState, "relationship is not accepted")
		}

		if text == nil {
			rel.EndorsementText = ""
		} else {
			rel.EndorsementText = *text
		}
		if err := repo.Save(rel); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to update endorsement")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rel, nil
}

// List returns the four projections for a profile: references they hold,
// requests they are waiting on, requests waiting on them, and references
// they have given.
func (s *Service) List(profileID uint) (*ListResult, error) {
	accepted, err := s.repo.ListByRequester(profileID, StatusAccepted)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to list accepted references")
	}
	pending, err := s.repo.ListByRequester(profileID, StatusPending)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to list pending references")
	}
	incoming, err := s.repo.ListByGiver(profileID, StatusPending)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to list incoming requests")
	}
	given, err := s.repo.ListByGiver(profileID, StatusAccepted)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to list given references")
	}

	ids := make([]uint, 0, len(accepted)+len(pending)+len(incoming)+len(given))
	for _, rel := range accepted {
		ids = append(ids, rel.GiverID)
	}
	for _, rel := range pending {
		ids = append(ids, rel.GiverID)
	}
	for _, rel := range incoming {
		ids = append(ids, rel.RequesterID)
	}
	for _, rel := range given {
		ids = append(ids, rel.RequesterID)
	}

	summaries, err := s.profiles.GetSummaries(ids)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load profile summaries")
	}

	return &ListResult{
		Accepted:         decorate(accepted, summaries),
		Pending:          decorate(pending, summaries),
		IncomingRequests: decorate(incoming, summaries),
		GivenReferences:  decorate(given, summaries),
	}, nil
}

func decorate(rels []Relationship, summaries map[uint]profile.Summary) []View {
	views := make([]View, 0, len(rels))
	for _, rel := range rels {
		view := View{Relationship: rel}
		if s, ok := summaries[rel.RequesterID]; ok {
			view.Requester = &s
		}
		if s, ok := summaries[rel.GiverID]; ok {
			view.Giver = &s
		}
		views = append(views, view)
	}
	return views
}
