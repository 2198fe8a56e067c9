package reference

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivePairIndexSQL creates the partial unique index guaranteeing at most
// one active relationship per unordered profile pair. AutoMigrate cannot
// express a predicate index, so main runs this after migration.
const ActivePairIndexSQL = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_reference_active_pair
ON reference_relationships (LEAST(requester_id, giver_id), GREATEST(requester_id, giver_id))
WHERE status IN ('pending', 'accepted') AND deleted_at IS NULL`

// ReferenceRepository defines the interface for reference relationship data
// operations. The locked variants must be called inside WithTransaction.
type ReferenceRepository interface {
	Create(rel *Relationship) error
	GetByID(id uint) (*Relationship, error)
	GetByIDLocked(id uint) (*Relationship, error)
	Save(rel *Relationship) error
	CountAcceptedLocked(requesterID uint) (int64, error)
	HasActiveRelationship(a, b uint) (bool, error)
	ListByRequester(requesterID uint, status string) ([]Relationship, error)
	ListByGiver(giverID uint, status string) ([]Relationship, error)
	WithTransaction(txFunc func(ReferenceRepository) error) error
}

type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository creates a new instance of ReferenceRepository.
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) Create(rel *Relationship) error {
	return r.db.Create(rel).Error
}

func (r *referenceRepository) GetByID(id uint) (*Relationship, error) {
	var rel Relationship
	if err := r.db.First(&rel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

// GetByIDLocked fetches the relationship row FOR UPDATE so concurrent
// responses against the same row serialize.
func (r *referenceRepository) GetByIDLocked(id uint) (*Relationship, error) {
	var rel Relationship
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

func (r *referenceRepository) Save(rel *Relationship) error {
	return r.db.Save(rel).Error
}

// CountAcceptedLocked counts the requester's accepted references while
// locking the counted rows. The locks order racing transactions that touch
// the same accepted rows; newly accepted rows the scan cannot see are caught
// by the serializable isolation of WithTransaction, which aborts one side
// with a retryable serialization failure.
func (r *referenceRepository) CountAcceptedLocked(requesterID uint) (int64, error) {
	var ids []uint
	err := r.db.Model(&Relationship{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("requester_id = ? AND status = ?", requesterID, StatusAccepted).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (r *referenceRepository) HasActiveRelationship(a, b uint) (bool, error) {
	var count int64
	err := r.db.Model(&Relationship{}).
		Where(
			"((requester_id = ? AND giver_id = ?) OR (requester_id = ? AND giver_id = ?)) AND status IN ?",
			a, b, b, a, []string{StatusPending, StatusAccepted},
		).Count(&count).Error
	return count > 0, err
}

func (r *referenceRepository) ListByRequester(requesterID uint, status string) ([]Relationship, error) {
	var rels []Relationship
	err := r.db.Where("requester_id = ? AND status = ?", requesterID, status).
		Order("created_at desc").Find(&rels).Error
	if err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *referenceRepository) ListByGiver(giverID uint, status string) ([]Relationship, error) {
	var rels []Relationship
	err := r.db.Where("giver_id = ? AND status = ?", giverID, status).
		Order("created_at desc").Find(&rels).Error
	if err != nil {
		return nil, err
	}
	return rels, nil
}

// WithTransaction runs txFunc in a SERIALIZABLE transaction. The capacity
// check is a count over rows a concurrent transaction may be inserting, so
// READ COMMITTED row locks alone cannot close the race; serializable
// isolation turns the conflict into SQLSTATE 40001, which the caller retries.
func (r *referenceRepository) WithTransaction(txFunc func(ReferenceRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &referenceRepository{db: tx}
		return txFunc(txRepo)
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505), e.g. from the active-pair partial index.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsSerializationFailure reports whether err is a transient Postgres
// serialization or deadlock failure worth retrying (SQLSTATE 40001/40P01).
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
