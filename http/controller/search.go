package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-movie-service/entity"
	"github.com/tnqbao/gau-movie-service/infra"
	"github.com/tnqbao/gau-movie-service/utils"
)

const searchResultLimit = 50

// SearchMovies matches the query against titles, studio names and person
// names. Results are cached in Redis for a short TTL keyed by the
// normalized query.
func (ctrl *Controller) SearchMovies(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.JSON400(c, "Query parameter 'q' is required")
		return
	}

	ctx := c.Request.Context()
	cacheKey := "search:movies:" + strings.ToLower(query)

	var cached []entity.Movie
	err := ctrl.Infra.Redis.Get(ctx, cacheKey, &cached)
	if err == nil {
		utils.JSON200(c, gin.H{
			"query":  query,
			"movies": cached,
			"cached": true,
		})
		return
	}
	if !errors.Is(err, infra.ErrCacheMiss) {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "Search cache read failed: %v", err)
	}

	movies, err := ctrl.Repository.MovieRepo.Search(query, searchResultLimit)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "Search failed for query %q", query)
		utils.JSON500(c, "Search failed")
		return
	}

	ttl := time.Duration(ctrl.Config.EnvConfig.Search.CacheTTLSeconds) * time.Second
	if err := ctrl.Infra.Redis.Set(ctx, cacheKey, movies, ttl); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "Search cache write failed: %v", err)
	}

	utils.JSON200(c, gin.H{
		"query":  query,
		"movies": movies,
		"cached": false,
	})
}
