package friendship

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FriendshipRepository defines the interface for friendship data operations.
// The reference workflow only consumes the read side (GetStatus,
// IsAcceptedFriend); the mutating operations back the friend add/accept flows.
type FriendshipRepository interface {
	Create(edge *Edge) error
	GetByID(id uint) (*Edge, error)
	GetBetween(a, b uint) (*Edge, error)
	GetStatus(a, b uint) (string, error)
	IsAcceptedFriend(a, b uint) (bool, error)
	UpdateStatus(id uint, status string) error
	ListFriendIDs(profileID uint) ([]uint, error)
	ListIncomingPending(profileID uint) ([]Edge, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository creates a new instance of FriendshipRepository.
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) Create(edge *Edge) error {
	return r.db.Create(edge).Error
}

func (r *friendshipRepository) GetByID(id uint) (*Edge, error) {
	var edge Edge
	if err := r.db.First(&edge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &edge, nil
}

// GetBetween finds the latest edge for a pair regardless of which side
// created it. A rejected or cancelled edge may be superseded by a newer one.
func (r *friendshipRepository) GetBetween(a, b uint) (*Edge, error) {
	var edge Edge
	err := r.db.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		a, b, b, a,
	).Order("created_at desc").First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &edge, nil
}

// GetStatus returns the status of the edge between a and b, or the empty
// string when no edge exists.
func (r *friendshipRepository) GetStatus(a, b uint) (string, error) {
	edge, err := r.GetBetween(a, b)
	if err != nil {
		return "", err
	}
	if edge == nil {
		return "", nil
	}
	return edge.Status, nil
}

// IsAcceptedFriend reports whether the latest edge between a and b is
// accepted. Deriving it from GetBetween keeps it consistent with GetStatus
// when superseded edges exist for the pair.
func (r *friendshipRepository) IsAcceptedFriend(a, b uint) (bool, error) {
	edge, err := r.GetBetween(a, b)
	if err != nil {
		return false, err
	}
	return edge != nil && edge.Status == StatusAccepted, nil
}

func (r *friendshipRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&Edge{}).Where("id = ?", id).Update("status", status).Error
}

func (r *friendshipRepository) ListFriendIDs(profileID uint) ([]uint, error) {
	var edges []Edge
	err := r.db.Where(
		"(requester_id = ? OR addressee_id = ?) AND status = ?",
		profileID, profileID, StatusAccepted,
	).Find(&edges).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		if e.RequesterID == profileID {
			ids = append(ids, e.AddresseeID)
		} else {
			ids = append(ids, e.RequesterID)
		}
	}
	return ids, nil
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505), e.g. from the active-edge partial index.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *friendshipRepository) ListIncomingPending(profileID uint) ([]Edge, error) {
	var edges []Edge
	err := r.db.Where("addressee_id = ? AND status = ?", profileID, StatusPending).
		Order("created_at desc").Find(&edges).Error
	if err != nil {
		return nil, err
	}
	return edges, nil
}
