package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tnqbao/gau-movie-service/http/controller/dto"
	"github.com/tnqbao/gau-movie-service/repository"
	"github.com/tnqbao/gau-movie-service/utils"
	"gorm.io/gorm"
)

// ListMovies returns one catalog page, newest additions first. Filters by
// studio, director, actor and tag combine.
func (ctrl *Controller) ListMovies(c *gin.Context) {
	var req dto.ListMoviesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.JSON400(c, "Invalid query parameters: "+err.Error())
		return
	}

	movies, total, err := ctrl.Repository.MovieRepo.List(repository.MovieFilter{
		StudioID:   req.StudioID,
		DirectorID: req.DirectorID,
		ActorID:    req.ActorID,
		TagID:      req.TagID,
		Page:       req.Page,
		PerPage:    req.PerPage,
	})
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to list movies")
		utils.JSON500(c, "Failed to list movies")
		return
	}

	utils.JSON200(c, gin.H{
		"movies":   movies,
		"total":    total,
		"page":     req.Page,
		"per_page": req.PerPage,
	})
}

func (ctrl *Controller) GetMovieByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSON400(c, "Invalid movie id")
		return
	}

	movie, err := ctrl.Repository.MovieRepo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSON404(c, "Movie not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to get movie %d", id)
		utils.JSON500(c, "Failed to get movie")
		return
	}

	utils.JSON200(c, gin.H{"movie": movie})
}

// UploadPoster stores the uploaded image in the poster bucket and points the
// movie's poster URL at it.
func (ctrl *Controller) UploadPoster(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSON400(c, "Invalid movie id")
		return
	}

	movie, err := ctrl.Repository.MovieRepo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSON404(c, "Movie not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to get movie %d", id)
		utils.JSON500(c, "Failed to get movie")
		return
	}

	fileHeader, err := c.FormFile("poster")
	if err != nil {
		utils.JSON400(c, "Failed to get file: "+err.Error())
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.JSON400(c, "Poster must be an image")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.JSON500(c, "Failed to open uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	bucket := ctrl.Config.EnvConfig.Minio.PosterBucket
	objectKey := fmt.Sprintf("%d/%s%s", movie.ID, uuid.NewString(), filepath.Ext(fileHeader.Filename))

	ctx := c.Request.Context()
	if err := ctrl.Infra.Minio.UploadObject(ctx, bucket, objectKey, file, fileHeader.Size, contentType); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "Failed to upload poster for movie %d", movie.ID)
		utils.JSON500(c, "Failed to upload poster")
		return
	}

	posterURL := ctrl.Infra.Minio.ObjectURL(bucket, objectKey)
	movie.Poster = &posterURL
	if err := ctrl.Repository.MovieRepo.Save(movie); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "Failed to save poster URL for movie %d", movie.ID)
		utils.JSON500(c, "Failed to save poster URL")
		return
	}

	utils.JSON200(c, gin.H{
		"movie_id": movie.ID,
		"poster":   posterURL,
	})
}
