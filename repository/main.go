package repository

import (
	"github.com/tnqbao/gau-movie-service/infra"
	"gorm.io/gorm"
)

type Repository struct {
	MovieRepo     *MovieRepository
	StudioRepo    *StudioRepository
	DirectorRepo  *DirectorRepository
	ActorRepo     *ActorRepository
	TagRepo       *TagRepository
	ImportJobRepo *ImportJobRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = NewRepository(infra.Postgres.DB)
	return repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		MovieRepo:     NewMovieRepository(db),
		StudioRepo:    NewStudioRepository(db),
		DirectorRepo:  NewDirectorRepository(db),
		ActorRepo:     NewActorRepository(db),
		TagRepo:       NewTagRepository(db),
		ImportJobRepo: NewImportJobRepository(db),
	}
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

func (r *Repository) BeginTransaction(db *gorm.DB) *gorm.DB {
	return db.Begin()
}

func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}
