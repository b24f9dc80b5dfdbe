package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-movie-service/entity"
	"github.com/tnqbao/gau-movie-service/repository"
	"github.com/tnqbao/gau-movie-service/repository/testutil"
	"gorm.io/gorm"
)

const movieHeader = "title,year,studio_name,director_firstname,director_lastname,actors,tags,format,download_link,file_size,duration,added_at,poster_url\n"

func newTestService(t *testing.T, opts Options) (*Service, *repository.Repository, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	repo := repository.NewRepository(db)
	return NewService(repo, opts), repo, db
}

func strPtr(s string) *string { return &s }

func TestImportMoviesBuildsFullGraph(t *testing.T) {
	service, repo, _ := newTestService(t, Options{})

	path := writeCSV(t, movieHeader+
		"Inception,2010,Warner Bros,Christopher,Nolan,Leonardo DiCaprio|Joseph Gordon-Levitt,Sci-Fi|Thriller,Blu-ray,https://example.com/inception,4.2 GB,2h28,2023-06-15 10:30:00,https://example.com/inception.jpg\n")

	result, err := service.ImportMovies(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, Stats{Imported: 1}, result.Stats)
	require.Empty(t, result.Errors)

	found, err := repo.MovieRepo.FindByDedupKey("Inception", strPtr("Warner Bros"), strPtr("Blu-ray"))
	require.NoError(t, err)
	require.NotNil(t, found)

	movie, err := repo.MovieRepo.FindByID(found.ID)
	require.NoError(t, err)
	require.Equal(t, 2010, movie.Year)
	require.NotNil(t, movie.Studio)
	require.Equal(t, "Warner Bros", movie.Studio.Name)
	require.NotNil(t, movie.Director)
	require.Equal(t, "Christopher", movie.Director.FirstName)
	require.Equal(t, "Nolan", movie.Director.LastName)
	require.Equal(t, "2023-06-15 10:30:00", movie.AddedAt.UTC().Format("2006-01-02 15:04:05"))

	require.Len(t, movie.Actors, 2)
	names := []string{
		movie.Actors[0].FirstName + " " + movie.Actors[0].LastName,
		movie.Actors[1].FirstName + " " + movie.Actors[1].LastName,
	}
	require.ElementsMatch(t, []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt"}, names)

	require.Len(t, movie.Tags, 2)
	for _, tag := range movie.Tags {
		require.Contains(t, tagPalette, tag.Color)
	}
}

func TestImportMoviesRerunUpdatesInPlace(t *testing.T) {
	service, repo, _ := newTestService(t, Options{})

	row := "Inception,2010,Warner Bros,Christopher,Nolan,Leonardo DiCaprio|Joseph Gordon-Levitt,Sci-Fi,Blu-ray,,,,,\n"
	path := writeCSV(t, movieHeader+row)

	first, err := service.ImportMovies(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, Stats{Imported: 1}, first.Stats)

	second, err := service.ImportMovies(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, Stats{Updated: 1}, second.Stats)

	count, err := repo.MovieRepo.CountByDedupKey("Inception", strPtr("Warner Bros"), strPtr("Blu-ray"))
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	actors, err := repo.ActorRepo.List()
	require.NoError(t, err)
	require.Len(t, actors, 2)
}

func TestImportMoviesReplacesAssociations(t *testing.T) {
	service, repo, _ := newTestService(t, Options{})

	path1 := writeCSV(t, movieHeader+
		"Heat,1995,Warner Bros,Michael,Mann,Al Pacino|Robert De Niro,Crime,DVD,,,,,\n")
	_, err := service.ImportMovies(context.Background(), path1)
	require.NoError(t, err)

	path2 := writeCSV(t, movieHeader+
		"Heat,1995,Warner Bros,Michael,Mann,Val Kilmer,Heist|Drama,DVD,,,,,\n")
	result, err := service.ImportMovies(context.Background(), path2)
	require.NoError(t, err)
	require.Equal(t, Stats{Updated: 1}, result.Stats)

	found, err := repo.MovieRepo.FindByDedupKey("Heat", strPtr("Warner Bros"), strPtr("DVD"))
	require.NoError(t, err)
	require.NotNil(t, found)

	movie, err := repo.MovieRepo.FindByID(found.ID)
	require.NoError(t, err)
	require.Len(t, movie.Actors, 1)
	require.Equal(t, "Val", movie.Actors[0].FirstName)
	require.Equal(t, "Kilmer", movie.Actors[0].LastName)
	require.Len(t, movie.Tags, 2)
}

func TestImportMoviesBlankTitleRecorded(t *testing.T) {
	service, repo, _ := newTestService(t, Options{})

	path := writeCSV(t, movieHeader+
		",2010,Warner Bros,,,,,,,,,,\n"+
		"Heat,1995,,,,,,,,,,,\n")

	result, err := service.ImportMovies(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, Stats{Imported: 1, Errors: 1}, result.Stats)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "line 2")
	require.Contains(t, result.Errors[0], "UNKNOWN")

	found, err := repo.MovieRepo.FindByDedupKey("Heat", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestImportMoviesOversizedLinkSkipped(t *testing.T) {
	service, repo, _ := newTestService(t, Options{})

	link := strings.Repeat("a", 2049)
	path := writeCSV(t, movieHeader+
		"Heat,1995,,,,,,,"+link+",,,,\n")

	result, err := service.ImportMovies(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, Stats{Errors: 1, Skipped: 1}, result.Stats)

	found, err := repo.MovieRepo.FindByDedupKey("Heat", nil, nil)
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestImportMoviesDuplicateStudioLowestIDWins(t *testing.T) {
	service, repo, _ := newTestService(t, Options{})

	older := &entity.Studio{Name: "Orion"}
	require.NoError(t, repo.StudioRepo.Create(older))
	newer := &entity.Studio{Name: "Orion"}
	require.NoError(t, repo.StudioRepo.Create(newer))
	require.Less(t, older.ID, newer.ID)

	path := writeCSV(t, movieHeader+
		"RoboCop,1987,Orion,,,,,VHS,,,,,\n")

	result, err := service.ImportMovies(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, Stats{Imported: 1}, result.Stats)

	found, err := repo.MovieRepo.FindByDedupKey("RoboCop", strPtr("Orion"), strPtr("VHS"))
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.StudioID)
	require.Equal(t, older.ID, *found.StudioID)

	// No third studio row appeared.
	studios, err := repo.StudioRepo.List()
	require.NoError(t, err)
	orion := 0
	for _, s := range studios {
		if s.Name == "Orion" {
			orion++
		}
	}
	require.Equal(t, 2, orion)
}

func TestImportMoviesSharedStudioCreatedOnce(t *testing.T) {
	service, repo, _ := newTestService(t, Options{})

	path := writeCSV(t, movieHeader+
		"Alien,1979,20th Century,,,,,VHS,,,,,\n"+
		"Aliens,1986,20th Century,,,,,VHS,,,,,\n")

	result, err := service.ImportMovies(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, Stats{Imported: 2}, result.Stats)

	studios, err := repo.StudioRepo.List()
	require.NoError(t, err)
	require.Len(t, studios, 1)
}

func TestImportStudiosSkipsExisting(t *testing.T) {
	service, repo, _ := newTestService(t, Options{})

	require.NoError(t, repo.StudioRepo.Create(&entity.Studio{Name: "A24"}))

	path := writeCSV(t, "name,logo_url\nA24,\nNeon,https://example.com/neon.png\n")

	result, err := service.ImportStudios(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, Stats{Imported: 1, Skipped: 1}, result.Stats)

	neon, err := repo.StudioRepo.FindFirstByName("Neon")
	require.NoError(t, err)
	require.NotNil(t, neon)
	require.NotNil(t, neon.Logo)
	require.Equal(t, "https://example.com/neon.png", *neon.Logo)
}
