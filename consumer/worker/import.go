package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tnqbao/gau-movie-service/entity"
	"github.com/tnqbao/gau-movie-service/importer"
	"github.com/tnqbao/gau-movie-service/infra"
	"github.com/tnqbao/gau-movie-service/infra/produce"
	"github.com/tnqbao/gau-movie-service/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ImportConsumer struct {
	channel    *amqp.Channel
	infra      *infra.Infra
	repository *repository.Repository
}

func NewImportConsumer(channel *amqp.Channel, infra *infra.Infra, repo *repository.Repository) *ImportConsumer {
	return &ImportConsumer{
		channel:    channel,
		infra:      infra,
		repository: repo,
	}
}

func (c *ImportConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.ImportJobsQueue,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register import consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Import Consumer] Started listening for import jobs on queue: %s", produce.ImportJobsQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Import Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Import Consumer] Channel closed")
					return
				}
				c.handleImportJob(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *ImportConsumer) handleImportJob(ctx context.Context, msg amqp.Delivery) {
	c.infra.Logger.InfoWithContextf(ctx, "[Import Consumer] Received message")

	var payload produce.ImportJobMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Failed to unmarshal message")
		_ = msg.Nack(false, false)
		return
	}

	jobID, err := uuid.Parse(payload.JobID)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Invalid job ID")
		_ = msg.Nack(false, false)
		return
	}

	job, err := c.repository.ImportJobRepo.FindByID(jobID)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Job %s not found", jobID)
		_ = msg.Nack(false, false)
		return
	}

	// The HTTP request context is long gone; runs are bounded only by the
	// consumer's own lifetime.
	bgCtx, span := otel.Tracer("consumer/import").Start(context.Background(), "import.job",
		trace.WithAttributes(
			attribute.String("import.job_id", job.ID.String()),
			attribute.String("import.kind", job.Kind),
		))
	defer span.End()

	now := time.Now()
	job.Status = entity.ImportStatusRunning
	job.StartedAt = &now
	if err := c.repository.ImportJobRepo.Save(job); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Failed to mark job %s running", job.ID)
		_ = msg.Nack(false, true) // Requeue
		return
	}

	tempFile, err := os.CreateTemp("", "import-*.csv")
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Failed to create temp file")
		_ = msg.Nack(false, true) // Requeue
		return
	}
	tempPath := tempFile.Name()
	_ = tempFile.Close()
	defer func() { _ = os.Remove(tempPath) }()

	if err := c.infra.Minio.FetchToFile(bgCtx, job.Bucket, job.ObjectKey, tempPath); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Failed to fetch %s/%s", job.Bucket, job.ObjectKey)
		c.failJob(ctx, job, fmt.Sprintf("Failed to fetch CSV: %v", err))
		_ = msg.Ack(false)
		return
	}

	var runLog bytes.Buffer
	service := importer.NewService(c.repository, importer.Options{Output: &runLog})

	var result *importer.Result
	switch job.Kind {
	case entity.ImportKindMovies:
		result, err = service.ImportMovies(bgCtx, tempPath)
	case entity.ImportKindStudios:
		result, err = service.ImportStudios(bgCtx, tempPath)
	default:
		err = fmt.Errorf("unknown import kind: %s", job.Kind)
	}

	if runLog.Len() > 0 {
		c.infra.Logger.WarningWithContextf(ctx, "[Import Consumer] Job %s report:\n%s", job.ID, runLog.String())
	}

	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Job %s failed", job.ID)
		c.failJob(ctx, job, err.Error())
		_ = msg.Ack(false)
		return
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Failed to marshal result for job %s", job.ID)
		c.failJob(ctx, job, "Failed to record result")
		_ = msg.Ack(false)
		return
	}

	finished := time.Now()
	job.Status = entity.ImportStatusCompleted
	job.Result = resultJSON
	job.FinishedAt = &finished
	if err := c.repository.ImportJobRepo.Save(job); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Failed to complete job %s", job.ID)
		_ = msg.Nack(false, true) // Requeue
		return
	}

	c.invalidateSearchCache(bgCtx)

	c.infra.Logger.InfoWithContextf(ctx,
		"[Import Consumer] Job %s completed: imported=%d updated=%d errors=%d skipped=%d",
		job.ID, result.Stats.Imported, result.Stats.Updated, result.Stats.Errors, result.Stats.Skipped)

	_ = msg.Ack(false)
}

func (c *ImportConsumer) failJob(ctx context.Context, job *entity.ImportJob, message string) {
	finished := time.Now()
	job.Status = entity.ImportStatusFailed
	job.Message = message
	job.FinishedAt = &finished
	if err := c.repository.ImportJobRepo.Save(job); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Failed to mark job %s failed", job.ID)
	}
}

// invalidateSearchCache drops cached search results after an import changed
// the catalog.
func (c *ImportConsumer) invalidateSearchCache(ctx context.Context) {
	keys, err := c.infra.Redis.Keys(ctx, "search:movies:*")
	if err != nil {
		c.infra.Logger.WarningWithContextf(ctx, "[Import Consumer] Failed to list search cache keys: %v", err)
		return
	}
	if err := c.infra.Redis.Delete(ctx, keys...); err != nil {
		c.infra.Logger.WarningWithContextf(ctx, "[Import Consumer] Failed to invalidate search cache: %v", err)
	}
}
