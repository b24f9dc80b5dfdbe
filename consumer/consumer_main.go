package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-movie-service/config"
	"github.com/tnqbao/gau-movie-service/consumer/worker"
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
	repo := repository.InitRepository(infra)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	importConsumer := worker.NewImportConsumer(infra.RabbitMQ.Channel, infra, repo)
	if err := importConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start Import consumer: %v", err)
		log.Fatalf("Failed to start Import consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()

	infra.Logger.InfoWithContextf(ctx, "Consumer exited properly")
}
