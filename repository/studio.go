package repository

import (
	"github.com/tnqbao/gau-movie-service/entity"
	"gorm.io/gorm"
)

type StudioRepository struct {
	db *gorm.DB
}

func NewStudioRepository(db *gorm.DB) *StudioRepository {
	return &StudioRepository{db: db}
}

func (r *StudioRepository) Create(studio *entity.Studio) error {
	return r.db.Create(studio).Error
}

// FindFirstByName returns the studio with the given name, lowest id first
// so duplicate rows in the store resolve deterministically. Returns nil
// when no studio matches.
func (r *StudioRepository) FindFirstByName(name string) (*entity.Studio, error) {
	var studios []entity.Studio
	err := r.db.Where("name = ?", name).Order("id ASC").Limit(1).Find(&studios).Error
	if err != nil {
		return nil, err
	}
	if len(studios) == 0 {
		return nil, nil
	}
	return &studios[0], nil
}

func (r *StudioRepository) FindByID(id uint) (*entity.Studio, error) {
	var studio entity.Studio
	if err := r.db.First(&studio, id).Error; err != nil {
		return nil, err
	}
	return &studio, nil
}

func (r *StudioRepository) List() ([]entity.Studio, error) {
	var studios []entity.Studio
	err := r.db.Order("name ASC").Find(&studios).Error
	if err != nil {
		return nil, err
	}
	return studios, nil
}
