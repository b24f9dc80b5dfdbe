package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-movie-service/utils"
)

func (ctrl *Controller) ListStudios(c *gin.Context) {
	studios, err := ctrl.Repository.StudioRepo.List()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to list studios")
		utils.JSON500(c, "Failed to list studios")
		return
	}
	utils.JSON200(c, gin.H{"studios": studios})
}
