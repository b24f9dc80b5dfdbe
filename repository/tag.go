package repository

import (
	"github.com/tnqbao/gau-movie-service/entity"
	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(tag *entity.Tag) error {
	return r.db.Create(tag).Error
}

func (r *TagRepository) FindFirstByName(name string) (*entity.Tag, error) {
	var tags []entity.Tag
	err := r.db.Where("name = ?", name).Order("id ASC").Limit(1).Find(&tags).Error
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return &tags[0], nil
}

func (r *TagRepository) List() ([]entity.Tag, error) {
	var tags []entity.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
