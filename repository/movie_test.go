package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-movie-service/entity"
	"github.com/tnqbao/gau-movie-service/repository/testutil"
)

func seedMovie(t *testing.T, repo *MovieRepository, title string, studioID *uint, format *string) *entity.Movie {
	t.Helper()
	movie := &entity.Movie{
		Title:    title,
		StudioID: studioID,
		Format:   format,
		AddedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(movie))
	return movie
}

func TestFindByDedupKeyNullBranches(t *testing.T) {
	db := testutil.DB(t)
	repo := NewRepository(db)

	studio := &entity.Studio{Name: "Warner Bros"}
	require.NoError(t, repo.StudioRepo.Create(studio))

	format := "Blu-ray"
	full := seedMovie(t, repo.MovieRepo, "Inception", &studio.ID, &format)
	noStudio := seedMovie(t, repo.MovieRepo, "Inception", nil, &format)
	noFormat := seedMovie(t, repo.MovieRepo, "Inception", &studio.ID, nil)
	bare := seedMovie(t, repo.MovieRepo, "Inception", nil, nil)

	studioName := "Warner Bros"

	got, err := repo.MovieRepo.FindByDedupKey("Inception", &studioName, &format)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, full.ID, got.ID)

	got, err = repo.MovieRepo.FindByDedupKey("Inception", nil, &format)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, noStudio.ID, got.ID)

	got, err = repo.MovieRepo.FindByDedupKey("Inception", &studioName, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, noFormat.ID, got.ID)

	got, err = repo.MovieRepo.FindByDedupKey("Inception", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, bare.ID, got.ID)

	got, err = repo.MovieRepo.FindByDedupKey("Tenet", nil, nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestFindByDedupKeyLowestIDWins(t *testing.T) {
	db := testutil.DB(t)
	repo := NewRepository(db)

	first := seedMovie(t, repo.MovieRepo, "Heat", nil, nil)
	seedMovie(t, repo.MovieRepo, "Heat", nil, nil)

	got, err := repo.MovieRepo.FindByDedupKey("Heat", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, first.ID, got.ID)

	count, err := repo.MovieRepo.CountByDedupKey("Heat", nil, nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestReplaceActorsSwapsSet(t *testing.T) {
	db := testutil.DB(t)
	repo := NewRepository(db)

	movie := seedMovie(t, repo.MovieRepo, "Heat", nil, nil)

	pacino := &entity.Actor{FirstName: "Al", LastName: "Pacino"}
	require.NoError(t, repo.ActorRepo.Create(pacino))
	deNiro := &entity.Actor{FirstName: "Robert", LastName: "De Niro"}
	require.NoError(t, repo.ActorRepo.Create(deNiro))

	require.NoError(t, repo.MovieRepo.ReplaceActors(movie, []entity.Actor{*pacino, *deNiro}))

	reloaded, err := repo.MovieRepo.FindByID(movie.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Actors, 2)

	kilmer := &entity.Actor{FirstName: "Val", LastName: "Kilmer"}
	require.NoError(t, repo.ActorRepo.Create(kilmer))

	require.NoError(t, repo.MovieRepo.ReplaceActors(movie, []entity.Actor{*kilmer}))

	reloaded, err = repo.MovieRepo.FindByID(movie.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Actors, 1)
	require.Equal(t, "Kilmer", reloaded.Actors[0].LastName)

	// De Niro and Pacino still exist, only the join rows changed.
	actors, err := repo.ActorRepo.List()
	require.NoError(t, err)
	require.Len(t, actors, 3)
}
