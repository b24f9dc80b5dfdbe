package repository

import (
	"github.com/tnqbao/gau-movie-service/entity"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Create(movie *entity.Movie) error {
	return r.db.Create(movie).Error
}

func (r *MovieRepository) Save(movie *entity.Movie) error {
	return r.db.Save(movie).Error
}

func (r *MovieRepository) FindByID(id uint) (*entity.Movie, error) {
	var movie entity.Movie
	err := r.db.
		Preload("Studio").
		Preload("Director").
		Preload("Actors").
		Preload("Tags").
		First(&movie, id).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// FindByDedupKey looks up a movie by its import identity triple
// (title, studio name, format). A nil studioName or format matches the
// IS NULL case. Pre-existing duplicates are tolerated: the query orders by
// ascending id and the first match wins deterministically.
func (r *MovieRepository) FindByDedupKey(title string, studioName, format *string) (*entity.Movie, error) {
	q := r.dedupQuery(title, studioName, format)

	var movies []entity.Movie
	if err := q.Order("movies.id ASC").Limit(1).Find(&movies).Error; err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, nil
	}
	return &movies[0], nil
}

// CountByDedupKey reports how many movies share the same dedup triple, so
// the importer can surface duplicate rows already present in the store.
func (r *MovieRepository) CountByDedupKey(title string, studioName, format *string) (int64, error) {
	var count int64
	err := r.dedupQuery(title, studioName, format).Count(&count).Error
	return count, err
}

func (r *MovieRepository) dedupQuery(title string, studioName, format *string) *gorm.DB {
	q := r.db.Model(&entity.Movie{}).
		Joins("LEFT JOIN studios ON studios.id = movies.studio_id").
		Where("movies.title = ?", title)
	if studioName != nil {
		q = q.Where("studios.name = ?", *studioName)
	} else {
		q = q.Where("movies.studio_id IS NULL")
	}
	if format != nil {
		q = q.Where("movies.format = ?", *format)
	} else {
		q = q.Where("movies.format IS NULL")
	}
	return q
}

type MovieFilter struct {
	StudioID   uint
	DirectorID uint
	ActorID    uint
	TagID      uint
	Page       int
	PerPage    int
}

// List returns one page of the catalog ordered by added_at descending,
// newest first, with studio and director preloaded.
func (r *MovieRepository) List(filter MovieFilter) ([]entity.Movie, int64, error) {
	q := r.db.Model(&entity.Movie{})
	if filter.StudioID != 0 {
		q = q.Where("movies.studio_id = ?", filter.StudioID)
	}
	if filter.DirectorID != 0 {
		q = q.Where("movies.director_id = ?", filter.DirectorID)
	}
	if filter.ActorID != 0 {
		q = q.Joins("JOIN movie_actors ON movie_actors.movie_id = movies.id AND movie_actors.actor_id = ?", filter.ActorID)
	}
	if filter.TagID != 0 {
		q = q.Joins("JOIN movie_tags ON movie_tags.movie_id = movies.id AND movie_tags.tag_id = ?", filter.TagID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movies []entity.Movie
	err := q.
		Preload("Studio").
		Preload("Director").
		Order("movies.added_at DESC").
		Limit(filter.PerPage).
		Offset((filter.Page - 1) * filter.PerPage).
		Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

// Search matches the query against movie titles, studio names and
// director/actor full names.
func (r *MovieRepository) Search(query string, limit int) ([]entity.Movie, error) {
	like := "%" + query + "%"
	var movies []entity.Movie
	err := r.db.
		Distinct("movies.*").
		Joins("LEFT JOIN studios ON studios.id = movies.studio_id").
		Joins("LEFT JOIN directors ON directors.id = movies.director_id").
		Joins("LEFT JOIN movie_actors ON movie_actors.movie_id = movies.id").
		Joins("LEFT JOIN actors ON actors.id = movie_actors.actor_id").
		Where(
			r.db.Where("movies.title ILIKE ?", like).
				Or("studios.name ILIKE ?", like).
				Or("(directors.first_name || ' ' || directors.last_name) ILIKE ?", like).
				Or("(actors.first_name || ' ' || actors.last_name) ILIKE ?", like),
		).
		Order("movies.added_at DESC").
		Limit(limit).
		Preload("Studio").
		Preload("Director").
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// ReplaceActors swaps the movie's actor set for the given one. An update
// fully replaces relations, it does not merge.
func (r *MovieRepository) ReplaceActors(movie *entity.Movie, actors []entity.Actor) error {
	return r.db.Model(movie).Association("Actors").Replace(&actors)
}

func (r *MovieRepository) ReplaceTags(movie *entity.Movie, tags []entity.Tag) error {
	return r.db.Model(movie).Association("Tags").Replace(&tags)
}
