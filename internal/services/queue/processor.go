package queue

import (
	"context"
	"fmt"

	"github.com/phambaophuc/image-autocrop/internal/models"
	"github.com/phambaophuc/image-autocrop/pkg/utils"
)

// processJob crops the stored object named by job in place.
func (q *QueueService) processJob(ctx context.Context, job *models.CropJob) (*models.CropReport, error) {
	data, err := q.store.Download(ctx, job.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	buffer, report, err := q.processor.CropBytes(data, &job.Request)
	if report != nil {
		report.Path = job.Path
	}
	if err != nil {
		return report, fmt.Errorf("failed to crop image: %w", err)
	}
	if !report.Changed {
		return report, nil
	}

	if err := q.store.Replace(ctx, job.Path, buffer.Bytes(), utils.ContentTypeForFormat(report.Format)); err != nil {
		return report, fmt.Errorf("failed to save cropped image: %w", err)
	}
	return report, nil
}
