package profile

import (
	"errors"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations.
// Everything outside the auth flows is read-only.
type ProfileRepository interface {
	Create(p *Profile) error
	GetByID(id uint) (*Profile, error)
	GetByEmail(email string) (*Profile, error)
	GetSummary(id uint) (*Summary, error)
	GetSummaries(ids []uint) (map[uint]Summary, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(p *Profile) error {
	return r.db.Create(p).Error
}

func (r *profileRepository) GetByID(id uint) (*Profile, error) {
	var p Profile
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetByEmail(email string) (*Profile, error) {
	var p Profile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetSummary(id uint) (*Summary, error) {
	p, err := r.GetByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	s := p.Summary()
	return &s, nil
}

func (r *profileRepository) GetSummaries(ids []uint) (map[uint]Summary, error) {
	summaries := make(map[uint]Summary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}
	var profiles []Profile
	if err := r.db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		summaries[profiles[i].ID] = profiles[i].Summary()
	}
	return summaries, nil
}
