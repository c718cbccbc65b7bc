package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-autocrop/internal/config"
	"github.com/phambaophuc/image-autocrop/internal/models"
	"github.com/phambaophuc/image-autocrop/internal/services/processor"
	"github.com/phambaophuc/image-autocrop/internal/services/storage"
	"go.uber.org/zap"
)

const (
	imageParamKey  = "image"
	modeParamKey   = "mode"
	policyParamKey = "policy"
)

// Cache holds cropped results and job states.
type Cache interface {
	GetCrop(ctx context.Context, cacheKey string) (*storage.CachedCrop, error)
	SetCrop(ctx context.Context, cacheKey string, cached *storage.CachedCrop) error
	GetJob(ctx context.Context, id string) (*models.CropJob, error)
	HealthCheck(ctx context.Context) map[string]string
}

// Queue accepts crop jobs for the workers.
type Queue interface {
	PublishJob(ctx context.Context, job *models.CropJob) error
	GetQueueStats() (*models.QueueStats, error)
	HealthCheck() string
}

type enqueueRequest struct {
	Path   string        `json:"path" binding:"required"`
	Mode   models.Mode   `json:"mode" binding:"omitempty,oneof=static animated auto"`
	Policy models.Policy `json:"policy" binding:"omitempty,oneof=bounds bottom"`
}

type ImageHandler struct {
	processor *processor.ImageProcessor
	cache     Cache
	queue     Queue
	logger    *zap.Logger
	config    *config.Config
}

// NewImageHandler wires the handler. cache and queue may be nil.
func NewImageHandler(
	processor *processor.ImageProcessor,
	cache Cache,
	queue Queue,
	logger *zap.Logger,
	config *config.Config,
) *ImageHandler {
	return &ImageHandler{
		processor: processor,
		cache:     cache,
		queue:     queue,
		logger:    logger,
		config:    config,
	}
}

// === MAIN API ENDPOINTS ===

// CropImage responds with the cropped image bytes.
func (h *ImageHandler) CropImage(c *gin.Context) {
	data, req, ok := h.readCropInput(c)
	if !ok {
		return
	}

	result, hit, err := h.crop(c.Request.Context(), data, req)
	if err != nil {
		h.respondCropError(c, err)
		return
	}

	h.respondWithImage(c, result, hit)
}

// CropReport responds with the crop report only.
func (h *ImageHandler) CropReport(c *gin.Context) {
	data, req, ok := h.readCropInput(c)
	if !ok {
		return
	}

	result, _, err := h.crop(c.Request.Context(), data, req)
	if err != nil {
		h.respondCropError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    result.Report,
	})
}

// EnqueueJob publishes a crop job for an object in remote storage.
func (h *ImageHandler) EnqueueJob(c *gin.Context) {
	if h.queue == nil {
		h.respondError(c, http.StatusServiceUnavailable, "job queue not configured")
		return
	}

	var body enqueueRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid job: "+err.Error())
		return
	}

	job := models.CropJob{
		Path:    body.Path,
		Request: models.CropRequest{Mode: body.Mode, Policy: body.Policy},
	}
	if err := h.queue.PublishJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to publish job", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to enqueue job")
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

// GetJob reports the last recorded state of a job.
func (h *ImageHandler) GetJob(c *gin.Context) {
	if h.cache == nil {
		h.respondError(c, http.StatusServiceUnavailable, "job store not configured")
		return
	}

	job, err := h.cache.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to load job", zap.String("job_id", c.Param("id")), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to load job")
		return
	}
	if job == nil {
		h.respondError(c, http.StatusNotFound, "job not found")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

// QueueStats reports the depth and consumer count of the job queue.
func (h *ImageHandler) QueueStats(c *gin.Context) {
	if h.queue == nil {
		h.respondError(c, http.StatusServiceUnavailable, "job queue not configured")
		return
	}

	stats, err := h.queue.GetQueueStats()
	if err != nil {
		h.logger.Error("Failed to inspect queue", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to inspect queue")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    stats,
	})
}

// HealthCheck
func (h *ImageHandler) HealthCheck(c *gin.Context) {
	services := map[string]string{}
	if h.cache != nil {
		for name, status := range h.cache.HealthCheck(c.Request.Context()) {
			services[name] = status
		}
	}
	if h.queue != nil {
		services["rabbitmq"] = h.queue.HealthCheck()
	} else {
		services["rabbitmq"] = "not configured"
	}
	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}
