package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-movie-service/http/controller"
	middlewares "github.com/tnqbao/gau-movie-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	apiRoutes := r.Group("/api/v1/catalog")
	{
		movieRoutes := apiRoutes.Group("/movies")
		{
			movieRoutes.GET("/", ctrl.ListMovies)
			movieRoutes.GET("/:id", ctrl.GetMovieByID)
			movieRoutes.POST("/:id/poster", middles.AuthMiddleware, ctrl.UploadPoster)
		}

		apiRoutes.GET("/search", ctrl.SearchMovies)
		apiRoutes.GET("/studios", ctrl.ListStudios)
		apiRoutes.GET("/directors", ctrl.ListDirectors)
		apiRoutes.GET("/actors", ctrl.ListActors)
		apiRoutes.GET("/tags", ctrl.ListTags)

		importRoutes := apiRoutes.Group("/imports")
		{
			importRoutes.Use(middles.AuthMiddleware)

			importRoutes.POST("/", ctrl.CreateImport)
			importRoutes.GET("/", ctrl.ListImports)
			importRoutes.GET("/:id", ctrl.GetImportByID)
		}
	}
	return r
}
