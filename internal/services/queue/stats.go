package queue

import (
	"fmt"

	"github.com/phambaophuc/image-autocrop/internal/models"
)

// GetQueueStats reports pending crop jobs and attached workers.
func (q *QueueService) GetQueueStats() (*models.QueueStats, error) {
	info, err := q.channel.QueueInspect(q.queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect queue %q: %w", q.queueName, err)
	}

	return &models.QueueStats{
		Name:      info.Name,
		Messages:  info.Messages,
		Consumers: info.Consumers,
	}, nil
}

// HealthCheck reports whether the broker connection and channel are usable.
func (q *QueueService) HealthCheck() string {
	switch {
	case q.conn == nil || q.conn.IsClosed():
		return "unhealthy: connection closed"
	case q.channel == nil:
		return "unhealthy: channel not available"
	}
	return "healthy"
}
