package repository

import (
	"github.com/tnqbao/gau-movie-service/entity"
	"gorm.io/gorm"
)

type DirectorRepository struct {
	db *gorm.DB
}

func NewDirectorRepository(db *gorm.DB) *DirectorRepository {
	return &DirectorRepository{db: db}
}

func (r *DirectorRepository) Create(director *entity.Director) error {
	return r.db.Create(director).Error
}

// FindFirstByName resolves the (first name, last name) natural key to the
// lowest-id match, tolerating duplicate rows. Returns nil when absent.
func (r *DirectorRepository) FindFirstByName(firstName, lastName string) (*entity.Director, error) {
	var directors []entity.Director
	err := r.db.
		Where("first_name = ? AND last_name = ?", firstName, lastName).
		Order("id ASC").
		Limit(1).
		Find(&directors).Error
	if err != nil {
		return nil, err
	}
	if len(directors) == 0 {
		return nil, nil
	}
	return &directors[0], nil
}

func (r *DirectorRepository) List() ([]entity.Director, error) {
	var directors []entity.Director
	err := r.db.Order("last_name ASC, first_name ASC").Find(&directors).Error
	if err != nil {
		return nil, err
	}
	return directors, nil
}

type ActorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

func (r *ActorRepository) Create(actor *entity.Actor) error {
	return r.db.Create(actor).Error
}

func (r *ActorRepository) FindFirstByName(firstName, lastName string) (*entity.Actor, error) {
	var actors []entity.Actor
	err := r.db.
		Where("first_name = ? AND last_name = ?", firstName, lastName).
		Order("id ASC").
		Limit(1).
		Find(&actors).Error
	if err != nil {
		return nil, err
	}
	if len(actors) == 0 {
		return nil, nil
	}
	return &actors[0], nil
}

func (r *ActorRepository) List() ([]entity.Actor, error) {
	var actors []entity.Actor
	err := r.db.Order("last_name ASC, first_name ASC").Find(&actors).Error
	if err != nil {
		return nil, err
	}
	return actors, nil
}
