package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-movie-service/utils"
)

func (ctrl *Controller) ListDirectors(c *gin.Context) {
	directors, err := ctrl.Repository.DirectorRepo.List()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to list directors")
		utils.JSON500(c, "Failed to list directors")
		return
	}
	utils.JSON200(c, gin.H{"directors": directors})
}

func (ctrl *Controller) ListActors(c *gin.Context) {
	actors, err := ctrl.Repository.ActorRepo.List()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to list actors")
		utils.JSON500(c, "Failed to list actors")
		return
	}
	utils.JSON200(c, gin.H{"actors": actors})
}
