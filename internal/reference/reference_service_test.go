package reference

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sportlink/refnet/internal/notification"
	"github.com/sportlink/refnet/internal/profile"
	"github.com/sportlink/refnet/pkg/apperrors"
)

// --- In-memory fakes ---

type fakeRepo struct {
	nextID uint
	rels   map[uint]*Relationship

	// txFailures makes the next n transactions abort with a serialization
	// failure before running, the way a serializable conflict surfaces.
	txFailures int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rels: make(map[uint]*Relationship)}
}

func (f *fakeRepo) Create(rel *Relationship) error {
	f.nextID++
	rel.ID = f.nextID
	rel.CreatedAt = time.Now()
	cp := *rel
	f.rels[rel.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(id uint) (*Relationship, error) {
	rel, ok := f.rels[id]
	if !ok {
		return nil, nil
	}
	cp := *rel
	return &cp, nil
}

func (f *fakeRepo) GetByIDLocked(id uint) (*Relationship, error) {
	return f.GetByID(id)
}

func (f *fakeRepo) Save(rel *Relationship) error {
	cp := *rel
	f.rels[rel.ID] = &cp
	return nil
}

func (f *fakeRepo) CountAcceptedLocked(requesterID uint) (int64, error) {
	var count int64
	for _, rel := range f.rels {
		if rel.RequesterID == requesterID && rel.Status == StatusAccepted {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) HasActiveRelationship(a, b uint) (bool, error) {
	for _, rel := range f.rels {
		samePair := (rel.RequesterID == a && rel.GiverID == b) || (rel.RequesterID == b && rel.GiverID == a)
		if samePair && IsActiveStatus(rel.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ListByRequester(requesterID uint, status string) ([]Relationship, error) {
	var out []Relationship
	for _, rel := range f.rels {
		if rel.RequesterID == requesterID && rel.Status == status {
			out = append(out, *rel)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByGiver(giverID uint, status string) ([]Relationship, error) {
	var out []Relationship
	for _, rel := range f.rels {
		if rel.GiverID == giverID && rel.Status == status {
			out = append(out, *rel)
		}
	}
	return out, nil
}

func (f *fakeRepo) WithTransaction(txFunc func(ReferenceRepository) error) error {
	if f.txFailures > 0 {
		f.txFailures--
		return &pgconn.PgError{Code: "40001"}
	}
	return txFunc(f)
}

type fakeFriends struct {
	pairs map[[2]uint]bool
}

func pairKey(a, b uint) [2]uint {
	if a > b {
		a, b = b, a
	}
	return [2]uint{a, b}
}

func (f *fakeFriends) IsAcceptedFriend(a, b uint) (bool, error) {
	return f.pairs[pairKey(a, b)], nil
}

type fakeProfiles struct {
	profiles map[uint]profile.Summary
}

func (f *fakeProfiles) GetSummary(id uint) (*profile.Summary, error) {
	s, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeProfiles) GetSummaries(ids []uint) (map[uint]profile.Summary, error) {
	out := make(map[uint]profile.Summary)
	for _, id := range ids {
		if s, ok := f.profiles[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

type notifEvent struct {
	kind           string
	sourceEntityID uint
	recipientID    uint
}

type fakeNotifier struct {
	emitted   []notifEvent
	dismissed []notifEvent
}

func (f *fakeNotifier) Emit(kind string, sourceEntityID, recipientID uint) {
	f.emitted = append(f.emitted, notifEvent{kind, sourceEntityID, recipientID})
}

func (f *fakeNotifier) Dismiss(kind string, sourceEntityID uint) {
	f.dismissed = append(f.dismissed, notifEvent{kind: kind, sourceEntityID: sourceEntityID})
}

// --- Test fixture ---

type fixture struct {
	repo     *fakeRepo
	friends  *fakeFriends
	profiles *fakeProfiles
	notifier *fakeNotifier
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newFakeRepo(),
		friends:  &fakeFriends{pairs: make(map[[2]uint]bool)},
		profiles: &fakeProfiles{profiles: make(map[uint]profile.Summary)},
		notifier: &fakeNotifier{},
	}
	f.svc = NewService(f.repo, f.friends, f.profiles, f.notifier)
	return f
}

func (f *fixture) addProfile(id uint, role string) {
	f.profiles.profiles[id] = profile.Summary{
		ID:          id,
		DisplayName: fmt.Sprintf("profile-%d", id),
		Role:        role,
	}
}

func (f *fixture) befriend(a, b uint) {
	f.friends.pairs[pairKey(a, b)] = true
}

func (f *fixture) seedRelationship(requester, giver uint, status string) *Relationship {
	rel := &Relationship{
		RequesterID:      requester,
		GiverID:          giver,
		Status:           status,
		RelationshipType: "Teammate",
	}
	if status == StatusAccepted {
		now := time.Now()
		rel.AcceptedAt = &now
	}
	_ = f.repo.Create(rel)
	return rel
}

const (
	playerID = 1
	clubID   = 2
	coachID  = 3
	brandID  = 4
)

// standardFixture returns a fixture with a player, coach, club and brand who
// are all mutual accepted friends.
func standardFixture() *fixture {
	f := newFixture()
	f.addProfile(playerID, profile.RolePlayer)
	f.addProfile(clubID, profile.RoleClub)
	f.addProfile(coachID, profile.RoleCoach)
	f.addProfile(brandID, profile.RoleBrand)
	for _, a := range []uint{playerID, clubID, coachID, brandID} {
		for _, b := range []uint{playerID, clubID, coachID, brandID} {
			if a != b {
				f.befriend(a, b)
			}
		}
	}
	return f
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	if !apperrors.Is(err, code) {
		t.Fatalf("expected error code %s, got %v", code, err)
	}
}

// --- Request ---

func TestRequestCreatesPendingRelationship(t *testing.T) {
	f := standardFixture()

	rel, err := f.svc.Request(playerID, clubID, "Club Manager", "Please vouch for me")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if rel.Status != StatusPending {
		t.Errorf("status = %q, want %q", rel.Status, StatusPending)
	}
	if rel.RequestNote != "Please vouch for me" {
		t.Errorf("request note = %q, want %q", rel.RequestNote, "Please vouch for me")
	}
	if rel.AcceptedAt != nil {
		t.Errorf("accepted_at should be nil on a pending relationship")
	}

	if len(f.notifier.emitted) != 1 {
		t.Fatalf("emitted %d notifications, want 1", len(f.notifier.emitted))
	}
	e := f.notifier.emitted[0]
	if e.kind != notification.KindReferenceRequestReceived || e.sourceEntityID != rel.ID || e.recipientID != clubID {
		t.Errorf("unexpected notification event: %+v", e)
	}
}

func TestRequestCoachIsEligible(t *testing.T) {
	f := standardFixture()
	if _, err := f.svc.Request(coachID, playerID, "Teammate", ""); err != nil {
		t.Fatalf("Request() by coach error = %v", err)
	}
}

func TestRequestRejectsSelfReference(t *testing.T) {
	f := standardFixture()
	_, err := f.svc.Request(playerID, playerID, "Teammate", "")
	assertCode(t, err, apperrors.ErrCodeSelfReference)
}

func TestRequestRejectsIneligibleRoles(t *testing.T) {
	f := standardFixture()
	for _, requester := range []uint{clubID, brandID} {
		_, err := f.svc.Request(requester, playerID, "Teammate", "")
		assertCode(t, err, apperrors.ErrCodeNotEligibleRole)
	}
}

func TestRequestRejectsNonFriends(t *testing.T) {
	f := newFixture()
	f.addProfile(playerID, profile.RolePlayer)
	f.addProfile(clubID, profile.RoleClub)

	_, err := f.svc.Request(playerID, clubID, "Club Manager", "")
	assertCode(t, err, apperrors.ErrCodeNotFriends)

	if len(f.repo.rels) != 0 {
		t.Errorf("no row should be created on failure, found %d", len(f.repo.rels))
	}
}

func TestRequestRejectsUnknownRelationshipType(t *testing.T) {
	f := standardFixture()
	_, err := f.svc.Request(playerID, clubID, "Arch Nemesis", "")
	assertCode(t, err, apperrors.ErrCodeValidation)
}

func TestRequestRejectsOverlongNote(t *testing.T) {
	f := standardFixture()
	note := make([]byte, MaxRequestNoteLen+1)
	for i := range note {
		note[i] = 'x'
	}
	_, err := f.svc.Request(playerID, clubID, "Teammate", string(note))
	assertCode(t, err, apperrors.ErrCodeValidation)
}

func TestRequestNoteLimitCountsCharacters(t *testing.T) {
	f := standardFixture()

	// 600 multibyte characters is twice that many bytes and still valid.
	note := strings.Repeat("é", MaxRequestNoteLen)
	if _, err := f.svc.Request(playerID, clubID, "Teammate", note); err != nil {
		t.Fatalf("Request() with a %d character multibyte note error = %v", MaxRequestNoteLen, err)
	}

	f = standardFixture()
	_, err := f.svc.Request(playerID, clubID, "Teammate", note+"é")
	assertCode(t, err, apperrors.ErrCodeValidation)
}

func TestRequestRetriesSerializationFailure(t *testing.T) {
	f := standardFixture()
	f.repo.txFailures = maxTxAttempts - 1

	rel, err := f.svc.Request(playerID, clubID, "Teammate", "")
	if err != nil {
		t.Fatalf("Request() should succeed after retrying, error = %v", err)
	}
	if rel.Status != StatusPending {
		t.Errorf("status = %q, want %q", rel.Status, StatusPending)
	}
}

func TestRequestSurfacesExhaustedRetries(t *testing.T) {
	f := standardFixture()
	f.repo.txFailures = maxTxAttempts

	_, err := f.svc.Request(playerID, clubID, "Teammate", "")
	assertCode(t, err, apperrors.ErrCodeTransientFailure)
	if len(f.repo.rels) != 0 {
		t.Errorf("no row should be created on failure, found %d", len(f.repo.rels))
	}
}

func TestRequestRejectsDuplicateActivePair(t *testing.T) {
	f := standardFixture()
	f.seedRelationship(playerID, clubID, StatusPending)

	_, err := f.svc.Request(playerID, clubID, "Teammate", "")
	assertCode(t, err, apperrors.ErrCodeDuplicateActive)

	// A different pair is unaffected.
	_, err = f.svc.Request(coachID, playerID, "Teammate", "")
	if err != nil {
		t.Fatalf("unrelated pair should be unaffected: %v", err)
	}
}

func TestRequestRejectsDuplicateReversedPair(t *testing.T) {
	f := standardFixture()
	f.seedRelationship(playerID, coachID, StatusAccepted)

	_, err := f.svc.Request(coachID, playerID, "Teammate", "")
	assertCode(t, err, apperrors.ErrCodeDuplicateActive)
}

func TestRequestAtCapacityFails(t *testing.T) {
	f := standardFixture()
	for i := 0; i < MaxAcceptedReferences; i++ {
		giverID := uint(100 + i)
		f.addProfile(giverID, profile.RoleClub)
		f.befriend(playerID, giverID)
		f.seedRelationship(playerID, giverID, StatusAccepted)
	}
	before := len(f.repo.rels)

	_, err := f.svc.Request(playerID, clubID, "Club Manager", "")
	assertCode(t, err, apperrors.ErrCodeCapacityExceeded)

	if len(f.repo.rels) != before {
		t.Errorf("no row should be created when capacity is exceeded")
	}
}

func TestRequestAllowedAgainAfterTerminalStates(t *testing.T) {
	f := standardFixture()
	for _, status := range []string{StatusDeclined, StatusRemoved, StatusWithdrawn} {
		t.Run(status, func(t *testing.T) {
			f.repo.rels = make(map[uint]*Relationship)
			f.seedRelationship(playerID, clubID, status)

			if _, err := f.svc.Request(playerID, clubID, "Teammate", ""); err != nil {
				t.Fatalf("re-request after %s should succeed, got %v", status, err)
			}
		})
	}
}

// --- Respond ---

func TestRespondAcceptSetsStatusAndEndorsement(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusPending)

	before, _ := f.repo.CountAcceptedLocked(playerID)

	updated, err := f.svc.Respond(rel.ID, clubID, true, "Great player")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if updated.Status != StatusAccepted {
		t.Errorf("status = %q, want %q", updated.Status, StatusAccepted)
	}
	if updated.AcceptedAt == nil {
		t.Errorf("accepted_at should be set on accept")
	}
	if updated.EndorsementText != "Great player" {
		t.Errorf("endorsement = %q, want %q", updated.EndorsementText, "Great player")
	}

	after, _ := f.repo.CountAcceptedLocked(playerID)
	if after != before+1 {
		t.Errorf("accepted count = %d, want %d", after, before+1)
	}

	if len(f.notifier.dismissed) != 1 {
		t.Fatalf("dismissed %d notifications, want 1", len(f.notifier.dismissed))
	}
	d := f.notifier.dismissed[0]
	if d.kind != notification.KindReferenceRequestReceived || d.sourceEntityID != rel.ID {
		t.Errorf("unexpected dismissal event: %+v", d)
	}
}

func TestRespondDeclineDismissesNotification(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusPending)

	updated, err := f.svc.Respond(rel.ID, clubID, false, "")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if updated.Status != StatusDeclined {
		t.Errorf("status = %q, want %q", updated.Status, StatusDeclined)
	}
	if updated.AcceptedAt != nil {
		t.Errorf("accepted_at should stay nil on decline")
	}
	if len(f.notifier.dismissed) != 1 {
		t.Errorf("dismissed %d notifications, want 1", len(f.notifier.dismissed))
	}
}

func TestRespondUnknownRelationship(t *testing.T) {
	f := standardFixture()
	_, err := f.svc.Respond(9999, clubID, true, "")
	assertCode(t, err, apperrors.ErrCodeNotFound)
}

func TestRespondOnlyGiverMayAct(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusPending)

	_, err := f.svc.Respond(rel.ID, playerID, true, "")
	assertCode(t, err, apperrors.ErrCodeNotAuthorized)

	_, err = f.svc.Respond(rel.ID, coachID, true, "")
	assertCode(t, err, apperrors.ErrCodeNotAuthorized)
}

func TestRespondAcceptReValidatesCapacity(t *testing.T) {
	f := standardFixture()

	// Four slots filled, two pending requests racing for the last one.
	for i := 0; i < MaxAcceptedReferences-1; i++ {
		giverID := uint(100 + i)
		f.addProfile(giverID, profile.RoleClub)
		f.befriend(playerID, giverID)
		f.seedRelationship(playerID, giverID, StatusAccepted)
	}
	first := f.seedRelationship(playerID, clubID, StatusPending)
	second := f.seedRelationship(playerID, brandID, StatusPending)

	if _, err := f.svc.Respond(first.ID, clubID, true, ""); err != nil {
		t.Fatalf("first accept should succeed: %v", err)
	}

	_, err := f.svc.Respond(second.ID, brandID, true, "")
	assertCode(t, err, apperrors.ErrCodeCapacityExceeded)

	count, _ := f.repo.CountAcceptedLocked(playerID)
	if count != MaxAcceptedReferences {
		t.Errorf("accepted count = %d, want %d", count, MaxAcceptedReferences)
	}

	// Declining the stuck request still works; capacity only guards accepts.
	if _, err := f.svc.Respond(second.ID, brandID, false, ""); err != nil {
		t.Fatalf("decline at capacity should succeed: %v", err)
	}
}

func TestRespondRejectsOverlongEndorsement(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusPending)

	long := make([]byte, MaxEndorsementLen+1)
	for i := range long {
		long[i] = 'y'
	}
	_, err := f.svc.Respond(rel.ID, clubID, true, string(long))
	assertCode(t, err, apperrors.ErrCodeValidation)
}

func TestEndorsementLimitCountsCharacters(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusPending)

	text := strings.Repeat("ü", MaxEndorsementLen)
	updated, err := f.svc.Respond(rel.ID, clubID, true, text)
	if err != nil {
		t.Fatalf("Respond() with a %d character multibyte endorsement error = %v", MaxEndorsementLen, err)
	}
	if updated.EndorsementText != text {
		t.Errorf("endorsement was not stored intact")
	}

	over := text + "ü"
	_, err = f.svc.EditEndorsement(rel.ID, clubID, &over)
	assertCode(t, err, apperrors.ErrCodeValidation)
}

// --- Terminal transitions ---

func TestRemoveByRequester(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusAccepted)

	if err := f.svc.Remove(rel.ID, playerID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	stored, _ := f.repo.GetByID(rel.ID)
	if stored.Status != StatusRemoved {
		t.Errorf("status = %q, want %q", stored.Status, StatusRemoved)
	}
}

func TestRemoveRejectsNonRequester(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusAccepted)

	err := f.svc.Remove(rel.ID, clubID)
	assertCode(t, err, apperrors.ErrCodeNotAuthorized)
}

func TestWithdrawByGiverHidesFromRequesterList(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusAccepted)

	if err := f.svc.Withdraw(rel.ID, clubID); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}
	stored, _ := f.repo.GetByID(rel.ID)
	if stored.Status != StatusWithdrawn {
		t.Errorf("status = %q, want %q", stored.Status, StatusWithdrawn)
	}

	result, err := f.svc.List(playerID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(result.Accepted) != 0 {
		t.Errorf("withdrawn reference still appears in accepted list")
	}
}

func TestWithdrawRejectsNonGiver(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusAccepted)

	err := f.svc.Withdraw(rel.ID, playerID)
	assertCode(t, err, apperrors.ErrCodeNotAuthorized)
}

func TestTerminalStatesAdmitNoTransitions(t *testing.T) {
	f := standardFixture()
	for _, status := range []string{StatusDeclined, StatusWithdrawn, StatusRemoved} {
		t.Run(status, func(t *testing.T) {
			rel := f.seedRelationship(playerID, clubID, status)

			_, err := f.svc.Respond(rel.ID, clubID, true, "")
			assertCode(t, err, apperrors.ErrCodeInvalidState)

			err = f.svc.Remove(rel.ID, playerID)
			assertCode(t, err, apperrors.ErrCodeInvalidState)

			err = f.svc.Withdraw(rel.ID, clubID)
			assertCode(t, err, apperrors.ErrCodeInvalidState)

			err = f.svc.Cancel(rel.ID, playerID)
			assertCode(t, err, apperrors.ErrCodeInvalidState)

			_, err = f.svc.EditEndorsement(rel.ID, clubID, nil)
			assertCode(t, err, apperrors.ErrCodeInvalidState)

			stored, _ := f.repo.GetByID(rel.ID)
			if stored.Status != status {
				t.Errorf("terminal status mutated: %q -> %q", status, stored.Status)
			}
			f.repo.rels = make(map[uint]*Relationship)
		})
	}
}

// --- Cancel ---

func TestCancelPendingRequest(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusPending)

	if err := f.svc.Cancel(rel.ID, playerID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	stored, _ := f.repo.GetByID(rel.ID)
	if stored.Status != StatusDeclined {
		t.Errorf("status = %q, want %q", stored.Status, StatusDeclined)
	}
	if !stored.CancelledByRequester {
		t.Errorf("cancelled relationship should be attributed to the requester")
	}
	if len(f.notifier.dismissed) != 1 {
		t.Errorf("dismissed %d notifications, want 1", len(f.notifier.dismissed))
	}
}

func TestCancelRejectsGiver(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusPending)

	err := f.svc.Cancel(rel.ID, clubID)
	assertCode(t, err, apperrors.ErrCodeNotAuthorized)
}

// --- EditEndorsement ---

func TestEditEndorsementReplacesAndClears(t *testing.T) {
	f := standardFixture()
	rel := f.seedRelationship(playerID, clubID, StatusAccepted)

	text := "Reliable teammate for three seasons"
	updated, err := f.svc.EditEndorsement(rel.ID, clubID, &text)
	if err != nil {
		t.Fatalf("EditEndorsement() error = %v", err)
	}
	if updated.EndorsementText != text {
		t.Errorf("endorsement = %q, want %q", updated.EndorsementText, text)
	}

	updated, err = f.svc.EditEndorsement(rel.ID, clubID, nil)
	if err != nil {
		t.Fatalf("EditEndorsement(nil) error = %v", err)
	}
	if updated.EndorsementText != "" {
		t.Errorf("endorsement should be cleared, got %q", updated.EndorsementText)
	}
}

func TestEditEndorsementGiverOnlyAcceptedOnly(t *testing.T) {
	f := standardFixture()
	accepted := f.seedRelationship(playerID, clubID, StatusAccepted)
	pending := f.seedRelationship(coachID, clubID, StatusPending)

	text := "text"
	_, err := f.svc.EditEndorsement(accepted.ID, playerID, &text)
	assertCode(t, err, apperrors.ErrCodeNotAuthorized)

	_, err = f.svc.EditEndorsement(pending.ID, clubID, &text)
	assertCode(t, err, apperrors.ErrCodeInvalidState)
}

// --- List ---

func TestListProjections(t *testing.T) {
	f := standardFixture()
	f.seedRelationship(playerID, clubID, StatusAccepted)
	f.seedRelationship(playerID, coachID, StatusPending)
	f.seedRelationship(coachID, playerID, StatusPending)  // incoming for player
	f.seedRelationship(brandID, playerID, StatusAccepted) // given by player
	f.seedRelationship(playerID, brandID, StatusDeclined) // terminal, must not appear

	result, err := f.svc.List(playerID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(result.Accepted) != 1 || result.Accepted[0].GiverID != clubID {
		t.Errorf("accepted projection wrong: %+v", result.Accepted)
	}
	if len(result.Pending) != 1 || result.Pending[0].GiverID != coachID {
		t.Errorf("pending projection wrong: %+v", result.Pending)
	}
	if len(result.IncomingRequests) != 1 || result.IncomingRequests[0].RequesterID != coachID {
		t.Errorf("incoming projection wrong: %+v", result.IncomingRequests)
	}
	if len(result.GivenReferences) != 1 || result.GivenReferences[0].RequesterID != brandID {
		t.Errorf("given projection wrong: %+v", result.GivenReferences)
	}

	if result.Accepted[0].Giver == nil || result.Accepted[0].Giver.ID != clubID {
		t.Errorf("accepted entry should be decorated with the giver summary")
	}
	if result.IncomingRequests[0].Requester == nil || result.IncomingRequests[0].Requester.ID != coachID {
		t.Errorf("incoming entry should be decorated with the requester summary")
	}
}

// --- Capacity invariant across a workload ---

func TestAcceptedCountNeverExceedsCap(t *testing.T) {
	f := standardFixture()

	// Ten friends, ten requests, ten eager accepts.
	for i := 0; i < 10; i++ {
		giverID := uint(200 + i)
		f.addProfile(giverID, profile.RoleClub)
		f.befriend(playerID, giverID)
	}
	var created []uint
	for i := 0; i < 10; i++ {
		giverID := uint(200 + i)
		rel, err := f.svc.Request(playerID, giverID, "Club Manager", "")
		if err != nil {
			t.Fatalf("Request() for giver %d error = %v", giverID, err)
		}
		created = append(created, rel.ID)
	}

	accepted := 0
	for i, relID := range created {
		giverID := uint(200 + i)
		_, err := f.svc.Respond(relID, giverID, true, "")
		if err == nil {
			accepted++
			continue
		}
		assertCode(t, err, apperrors.ErrCodeCapacityExceeded)
	}

	if accepted != MaxAcceptedReferences {
		t.Errorf("accepted %d requests, want exactly %d", accepted, MaxAcceptedReferences)
	}
	count, _ := f.repo.CountAcceptedLocked(playerID)
	if count > MaxAcceptedReferences {
		t.Errorf("capacity invariant violated: count = %d", count)
	}
}
