package repository

import (
	"github.com/google/uuid"
	"github.com/tnqbao/gau-movie-service/entity"
	"gorm.io/gorm"
)

type ImportJobRepository struct {
	db *gorm.DB
}

func NewImportJobRepository(db *gorm.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

func (r *ImportJobRepository) Create(job *entity.ImportJob) error {
	return r.db.Create(job).Error
}

func (r *ImportJobRepository) Save(job *entity.ImportJob) error {
	return r.db.Save(job).Error
}

func (r *ImportJobRepository) FindByID(id uuid.UUID) (*entity.ImportJob, error) {
	var job entity.ImportJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *ImportJobRepository) List(limit int) ([]entity.ImportJob, error) {
	var jobs []entity.ImportJob
	err := r.db.Order("created_at DESC").Limit(limit).Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}
