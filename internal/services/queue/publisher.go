package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phambaophuc/image-autocrop/internal/models"
	"github.com/phambaophuc/image-autocrop/pkg/utils"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// PublishJob assigns an ID to job when it has none, marks it pending and
// puts it on the queue.
func (q *QueueService) PublishJob(ctx context.Context, job *models.CropJob) error {
	if job.ID == "" {
		job.ID = utils.NewJobID()
	}
	job.Status = models.StatusPending
	job.CreatedAt = time.Now()

	jobBytes, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	err = q.channel.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         jobBytes,
			DeliveryMode: amqp.Persistent,
			Timestamp:    job.CreatedAt,
			MessageId:    job.ID,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}

	q.storeJobResult(ctx, job)
	q.logger.Info("Job published to queue", zap.String("job_id", job.ID), zap.String("path", job.Path))
	return nil
}
