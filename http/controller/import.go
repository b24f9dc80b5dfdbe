package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tnqbao/gau-movie-service/entity"
	"github.com/tnqbao/gau-movie-service/http/controller/dto"
	"github.com/tnqbao/gau-movie-service/infra/produce"
	"github.com/tnqbao/gau-movie-service/utils"
	"gorm.io/gorm"
)

// CreateImport records an import job and hands it to the consumer through
// the import queue. The CSV must already be in the import bucket.
func (ctrl *Controller) CreateImport(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	var req dto.CreateImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request body: "+err.Error())
		return
	}

	bucket := req.Bucket
	if bucket == "" {
		bucket = ctrl.Config.EnvConfig.Minio.ImportBucket
	}

	ctx := c.Request.Context()

	exists, err := ctrl.Infra.Minio.BucketExists(ctx, bucket)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "Failed to check import bucket %s", bucket)
		utils.JSON500(c, "Failed to check import bucket")
		return
	}
	if !exists {
		utils.JSON404(c, "Import bucket not found")
		return
	}

	job := &entity.ImportJob{
		ID:          uuid.New(),
		Kind:        req.Kind,
		Bucket:      bucket,
		ObjectKey:   req.ObjectKey,
		Status:      entity.ImportStatusPending,
		InitiatorID: userID.String(),
	}
	if err := ctrl.Repository.ImportJobRepo.Create(job); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "Failed to create import job")
		utils.JSON500(c, "Failed to create import job")
		return
	}

	msg := produce.ImportJobMessage{
		JobID:     job.ID.String(),
		Kind:      job.Kind,
		Bucket:    job.Bucket,
		ObjectKey: job.ObjectKey,
	}
	if err := ctrl.Infra.Produce.ImportService.PublishImportJob(ctx, msg); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "Failed to publish import job %s", job.ID)
		job.Status = entity.ImportStatusFailed
		job.Message = "Failed to enqueue import job"
		_ = ctrl.Repository.ImportJobRepo.Save(job)
		utils.JSON500(c, "Failed to enqueue import job")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "Import job %s queued (%s %s/%s)", job.ID, job.Kind, job.Bucket, job.ObjectKey)

	utils.JSON202(c, gin.H{"job": job})
}

func (ctrl *Controller) GetImportByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid import job id")
		return
	}

	job, err := ctrl.Repository.ImportJobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSON404(c, "Import job not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to get import job %s", id)
		utils.JSON500(c, "Failed to get import job")
		return
	}

	utils.JSON200(c, gin.H{"job": job})
}

func (ctrl *Controller) ListImports(c *gin.Context) {
	jobs, err := ctrl.Repository.ImportJobRepo.List(50)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to list import jobs")
		utils.JSON500(c, "Failed to list import jobs")
		return
	}
	utils.JSON200(c, gin.H{"jobs": jobs})
}
