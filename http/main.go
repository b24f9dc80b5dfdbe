package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-movie-service/config"
	"github.com/tnqbao/gau-movie-service/http/controller"
	routes "github.com/tnqbao/gau-movie-service/http/route"
	infraPkg "github.com/tnqbao/gau-movie-service/infra"
	"github.com/tnqbao/gau-movie-service/repository"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()

	shutdownTelemetry := infraPkg.InitTelemetry(cfg.EnvConfig)
	defer shutdownTelemetry(context.Background())

	infra := infraPkg.InitInfra(cfg)

	ctx := context.Background()
	if err := infra.Minio.EnsureBucket(ctx, cfg.EnvConfig.Minio.PosterBucket); err != nil {
		log.Fatalf("Failed to prepare poster bucket: %v", err)
	}
	if err := infra.Minio.SetBucketPublicRead(ctx, cfg.EnvConfig.Minio.PosterBucket); err != nil {
		log.Printf("Warning: failed to set poster bucket policy: %v", err)
	}
	if err := infra.Minio.EnsureBucket(ctx, cfg.EnvConfig.Minio.ImportBucket); err != nil {
		log.Fatalf("Failed to prepare import bucket: %v", err)
	}

	repo := repository.InitRepository(infra)

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
