package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-movie-service/utils"
)

func (ctrl *Controller) ListTags(c *gin.Context) {
	tags, err := ctrl.Repository.TagRepo.List()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to list tags")
		utils.JSON500(c, "Failed to list tags")
		return
	}
	utils.JSON200(c, gin.H{"tags": tags})
}
