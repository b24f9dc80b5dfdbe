package importer

import (
	"math/rand"

	"github.com/tnqbao/gau-movie-service/entity"
	"github.com/tnqbao/gau-movie-service/repository"
)

// New tags get a random color from this palette.
var tagPalette = []string{
	"#dc3545", "#198754", "#0d6efd", "#fd7e14", "#6f42c1", "#20c997", "#ffc107",
}

type nameKey struct {
	first string
	last  string
}

// resolver turns natural keys (studio name, person full name, tag name) into
// persisted entities. Lookups go lowest-id-first so duplicate rows already in
// the store resolve deterministically; misses create the entity immediately.
// Resolutions are memoized for the lifetime of one import run, which also
// guarantees read-your-writes inside the run.
type resolver struct {
	repo      *repository.Repository
	studios   map[string]*entity.Studio
	directors map[nameKey]*entity.Director
	actors    map[nameKey]*entity.Actor
	tags      map[string]*entity.Tag
}

func newResolver(repo *repository.Repository) *resolver {
	return &resolver{
		repo:      repo,
		studios:   make(map[string]*entity.Studio),
		directors: make(map[nameKey]*entity.Director),
		actors:    make(map[nameKey]*entity.Actor),
		tags:      make(map[string]*entity.Tag),
	}
}

func (rv *resolver) studio(name string, logo *string) (*entity.Studio, error) {
	if s, ok := rv.studios[name]; ok {
		return s, nil
	}
	s, err := rv.repo.StudioRepo.FindFirstByName(name)
	if err != nil {
		return nil, &PersistenceError{Op: "find studio", Err: err}
	}
	if s == nil {
		s = &entity.Studio{Name: name, Logo: logo}
		if err := rv.repo.StudioRepo.Create(s); err != nil {
			return nil, &PersistenceError{Op: "create studio", Err: err}
		}
	}
	rv.studios[name] = s
	return s, nil
}

func (rv *resolver) director(firstName, lastName string) (*entity.Director, error) {
	key := nameKey{first: firstName, last: lastName}
	if d, ok := rv.directors[key]; ok {
		return d, nil
	}
	d, err := rv.repo.DirectorRepo.FindFirstByName(firstName, lastName)
	if err != nil {
		return nil, &PersistenceError{Op: "find director", Err: err}
	}
	if d == nil {
		d = &entity.Director{FirstName: firstName, LastName: lastName}
		if err := rv.repo.DirectorRepo.Create(d); err != nil {
			return nil, &PersistenceError{Op: "create director", Err: err}
		}
	}
	rv.directors[key] = d
	return d, nil
}

func (rv *resolver) actor(firstName, lastName string) (*entity.Actor, error) {
	key := nameKey{first: firstName, last: lastName}
	if a, ok := rv.actors[key]; ok {
		return a, nil
	}
	a, err := rv.repo.ActorRepo.FindFirstByName(firstName, lastName)
	if err != nil {
		return nil, &PersistenceError{Op: "find actor", Err: err}
	}
	if a == nil {
		a = &entity.Actor{FirstName: firstName, LastName: lastName}
		if err := rv.repo.ActorRepo.Create(a); err != nil {
			return nil, &PersistenceError{Op: "create actor", Err: err}
		}
	}
	rv.actors[key] = a
	return a, nil
}

func (rv *resolver) tag(name string) (*entity.Tag, error) {
	if t, ok := rv.tags[name]; ok {
		return t, nil
	}
	t, err := rv.repo.TagRepo.FindFirstByName(name)
	if err != nil {
		return nil, &PersistenceError{Op: "find tag", Err: err}
	}
	if t == nil {
		t = &entity.Tag{Name: name, Color: tagPalette[rand.Intn(len(tagPalette))]}
		if err := rv.repo.TagRepo.Create(t); err != nil {
			return nil, &PersistenceError{Op: "create tag", Err: err}
		}
	}
	rv.tags[name] = t
	return t, nil
}
