package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ImportJobsQueue      = "import.jobs"
	ImportExchange       = "import.exchange"
	ImportJobsRoutingKey = "import.jobs"
)

// ImportJobMessage tells the consumer which CSV object to import. The job
// row itself lives in Postgres; the message only carries the pointer.
type ImportJobMessage struct {
	JobID     string `json:"job_id"`
	Kind      string `json:"kind"`
	Bucket    string `json:"bucket"`
	ObjectKey string `json:"object_key"`
	Timestamp int64  `json:"timestamp"`
}

// ImportProduceService handles publishing import jobs for the consumer
type ImportProduceService struct {
	channel *amqp.Channel
}

func InitImportProduceService(channel *amqp.Channel) *ImportProduceService {
	service := &ImportProduceService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		ImportExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Import exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		ImportJobsQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare Import Jobs queue: " + err.Error())
	}

	err = channel.QueueBind(
		ImportJobsQueue,
		ImportJobsRoutingKey,
		ImportExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Import Jobs queue: " + err.Error())
	}

	return service
}

// PublishImportJob publishes an import job message to the queue
func (s *ImportProduceService) PublishImportJob(ctx context.Context, msg ImportJobMessage) error {
	msg.Timestamp = time.Now().Unix()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		ImportExchange,
		ImportJobsRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
