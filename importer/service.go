package importer

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tnqbao/gau-movie-service/entity"
	"github.com/tnqbao/gau-movie-service/repository"
)

const maxDownloadLinkLen = 2048

// Stats counts row outcomes for one run. A row that is skipped for an
// oversized download link counts in both Skipped and Errors.
type Stats struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Errors   int `json:"errors"`
	Skipped  int `json:"skipped"`
}

// Result is the summary of one import run. Errors holds one human-readable
// message per failed row, in file order.
type Result struct {
	Stats  Stats    `json:"stats"`
	Errors []string `json:"errors"`
}

type Options struct {
	// StrictYear rejects rows whose year cell is not an integer instead of
	// coercing them to 0.
	StrictYear bool
	// Output receives per-row error reports and duplicate warnings.
	// Defaults to io.Discard.
	Output io.Writer
	// Progress, when set, is called after every row with the number of rows
	// handled so far and the total.
	Progress func(done, total int)
}

// Service runs CSV imports against the movie store. Each run reads the whole
// file up front, then handles rows one by one: a bad row is recorded and the
// run moves on, so rows already applied stay applied.
type Service struct {
	repo *repository.Repository
	opts Options
	out  io.Writer
}

func NewService(repo *repository.Repository, opts Options) *Service {
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	return &Service{repo: repo, opts: opts, out: out}
}

// ImportMovies imports the movie CSV at path. Rows are matched against
// existing movies by the (title, studio name, format) triple: a match is
// updated in place with its actor and tag sets replaced, a miss creates a new
// movie. Only a missing file or a cancelled context fails the whole run.
func (s *Service) ImportMovies(ctx context.Context, path string) (*Result, error) {
	records, err := ReadRecords(path)
	if err != nil {
		return nil, err
	}

	rv := newResolver(s.repo)
	result := &Result{}

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.processMovieRecord(rv, rec, &result.Stats); err != nil {
			result.Stats.Errors++
			s.reportRowError(result, i+2, rec, err)
		}
		if s.opts.Progress != nil {
			s.opts.Progress(i+1, len(records))
		}
	}
	return result, nil
}

func (s *Service) processMovieRecord(rv *resolver, rec Record, stats *Stats) error {
	title := strings.TrimSpace(rec.Get("title"))
	if title == "" {
		return validationErrorf("movie title is required")
	}

	link := strings.TrimSpace(rec.Get("download_link"))
	if len(link) > maxDownloadLinkLen {
		stats.Skipped++
		return validationErrorf("movie %q skipped: download_link too long (%d characters, limit %d)",
			title, len(link), maxDownloadLinkLen)
	}

	studioName := optional(rec.Get("studio_name"))
	format := optional(rec.Get("format"))

	existing, err := s.repo.MovieRepo.FindByDedupKey(title, studioName, format)
	if err != nil {
		return &PersistenceError{Op: "find movie", Err: err}
	}
	if err := s.warnDuplicates(title, studioName, format); err != nil {
		return err
	}

	var studio *entity.Studio
	if studioName != nil {
		studio, err = rv.studio(*studioName, optional(rec.Get("studio_logo_url")))
		if err != nil {
			return err
		}
	}

	movie := existing
	if movie == nil {
		movie = &entity.Movie{}
		stats.Imported++
	} else {
		stats.Updated++
	}

	var director *entity.Director
	directorFirst := strings.TrimSpace(rec.Get("director_firstname"))
	directorLast := strings.TrimSpace(rec.Get("director_lastname"))
	if directorFirst != "" && directorLast != "" {
		director, err = rv.director(directorFirst, directorLast)
		if err != nil {
			return err
		}
	}

	year, err := s.parseYear(rec.Get("year"))
	if err != nil {
		return err
	}

	poster := optional(rec.Get("poster_url"))
	if poster == nil {
		poster = optional(rec.Get("poster"))
	}

	movie.Title = title
	movie.Year = year
	movie.Poster = poster
	movie.DownloadLink = optional(link)
	movie.Format = format
	movie.FileSize = optional(rec.Get("file_size"))
	movie.Duration = optional(rec.Get("duration"))
	if studio != nil {
		movie.StudioID = &studio.ID
		movie.Studio = studio
	} else {
		movie.StudioID = nil
		movie.Studio = nil
	}
	if director != nil {
		movie.DirectorID = &director.ID
		movie.Director = director
	} else {
		movie.DirectorID = nil
		movie.Director = nil
	}

	if raw := strings.TrimSpace(rec.Get("added_at")); raw != "" {
		addedAt, err := parseAddedAt(raw)
		if err != nil {
			return err
		}
		movie.AddedAt = addedAt
	} else if movie.AddedAt.IsZero() {
		movie.AddedAt = time.Now()
	}

	actors, err := s.resolveActors(rv, rec.Get("actors"))
	if err != nil {
		return err
	}
	tags, err := s.resolveTags(rv, rec.Get("tags"))
	if err != nil {
		return err
	}

	if existing == nil {
		if err := s.repo.MovieRepo.Create(movie); err != nil {
			return &PersistenceError{Op: "create movie", Err: err}
		}
	} else {
		movie.Actors = nil
		movie.Tags = nil
		if err := s.repo.MovieRepo.Save(movie); err != nil {
			return &PersistenceError{Op: "update movie", Err: err}
		}
	}

	// The row's actor and tag lists are authoritative: on update the old
	// sets are dropped, not merged.
	if err := s.repo.MovieRepo.ReplaceActors(movie, actors); err != nil {
		return &PersistenceError{Op: "replace actors", Err: err}
	}
	if err := s.repo.MovieRepo.ReplaceTags(movie, tags); err != nil {
		return &PersistenceError{Op: "replace tags", Err: err}
	}
	return nil
}

// resolveActors parses the pipe-separated actors cell. Each entry splits on
// the first space into first and last name; entries that do not yield exactly
// two parts are dropped without an error.
func (s *Service) resolveActors(rv *resolver, cell string) ([]entity.Actor, error) {
	actors := []entity.Actor{}
	if strings.TrimSpace(cell) == "" {
		return actors, nil
	}
	seen := make(map[uint]bool)
	for _, name := range strings.Split(cell, "|") {
		parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
		if len(parts) != 2 {
			continue
		}
		actor, err := rv.actor(parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		if !seen[actor.ID] {
			seen[actor.ID] = true
			actors = append(actors, *actor)
		}
	}
	return actors, nil
}

func (s *Service) resolveTags(rv *resolver, cell string) ([]entity.Tag, error) {
	tags := []entity.Tag{}
	if strings.TrimSpace(cell) == "" {
		return tags, nil
	}
	seen := make(map[uint]bool)
	for _, name := range strings.Split(cell, "|") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := rv.tag(name)
		if err != nil {
			return nil, err
		}
		if !seen[tag.ID] {
			seen[tag.ID] = true
			tags = append(tags, *tag)
		}
	}
	return tags, nil
}

func (s *Service) parseYear(cell string) (int, error) {
	raw := strings.TrimSpace(cell)
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		if s.opts.StrictYear {
			return 0, validationErrorf("invalid year %q", raw)
		}
		return 0, nil
	}
	return year, nil
}

var addedAtLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

func parseAddedAt(raw string) (time.Time, error) {
	for _, layout := range addedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, validationErrorf("invalid added_at %q", raw)
}

func (s *Service) warnDuplicates(title string, studioName, format *string) error {
	count, err := s.repo.MovieRepo.CountByDedupKey(title, studioName, format)
	if err != nil {
		return &PersistenceError{Op: "count duplicates", Err: err}
	}
	if count > 1 {
		fmt.Fprintf(s.out, "[DUPLICATE DETECTED] movie %q (studio %q, format %q): %d copies in store\n",
			title, deref(studioName), deref(format), count)
	}
	return nil
}

func (s *Service) reportRowError(result *Result, line int, rec Record, err error) {
	title := rec.Get("title")
	if title == "" {
		title = "UNKNOWN"
	}
	studio := rec.Get("studio_name")
	if studio == "" {
		studio = "UNKNOWN"
	}
	msg := fmt.Sprintf("line %d - movie %q (studio %q): %v", line, title, studio, err)
	result.Errors = append(result.Errors, msg)

	fmt.Fprintf(s.out, "\n[ERROR] %s\n", msg)
	fmt.Fprintln(s.out, "row data:")
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := rec[k]
		if v == "" {
			v = "NULL"
		}
		if len(v) > 80 {
			v = v[:80] + "..."
		}
		fmt.Fprintf(s.out, "  %s: %s\n", k, v)
	}
	fmt.Fprintln(s.out)
}

// ImportStudios imports the studio CSV at path. Unlike movies, studios are
// never updated: a name that already exists counts as skipped.
func (s *Service) ImportStudios(ctx context.Context, path string) (*Result, error) {
	records, err := ReadRecords(path)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.processStudioRecord(rec, &result.Stats); err != nil {
			result.Stats.Errors++
			msg := fmt.Sprintf("line %d: %v", i+2, err)
			result.Errors = append(result.Errors, msg)
			fmt.Fprintf(s.out, "\n[ERROR] %s\n", msg)
		}
		if s.opts.Progress != nil {
			s.opts.Progress(i+1, len(records))
		}
	}
	return result, nil
}

func (s *Service) processStudioRecord(rec Record, stats *Stats) error {
	name := strings.TrimSpace(rec.Get("name"))
	if name == "" {
		return validationErrorf("studio name is required")
	}

	existing, err := s.repo.StudioRepo.FindFirstByName(name)
	if err != nil {
		return &PersistenceError{Op: "find studio", Err: err}
	}
	if existing != nil {
		stats.Skipped++
		return nil
	}

	studio := &entity.Studio{Name: name, Logo: optional(rec.Get("logo_url"))}
	if err := s.repo.StudioRepo.Create(studio); err != nil {
		return &PersistenceError{Op: "create studio", Err: err}
	}
	stats.Imported++
	return nil
}

func optional(cell string) *string {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
