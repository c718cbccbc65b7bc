package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-autocrop/internal/models"
	"github.com/phambaophuc/image-autocrop/internal/services/processor"
	"github.com/phambaophuc/image-autocrop/internal/services/storage"
	"github.com/phambaophuc/image-autocrop/pkg/utils"
	"go.uber.org/zap"
)

// === REQUEST PARSING ===

func (h *ImageHandler) parseCropParams(c *gin.Context) (*models.CropRequest, error) {
	req := &models.CropRequest{
		Mode:   models.Mode(c.PostForm(modeParamKey)),
		Policy: models.Policy(c.PostForm(policyParamKey)),
	}
	if !req.Mode.Valid() {
		return nil, fmt.Errorf("invalid mode %q", req.Mode)
	}
	if !req.Policy.Valid() {
		return nil, fmt.Errorf("invalid policy %q", req.Policy)
	}
	return req, nil
}

// readCropInput reads and validates the uploaded image. It writes the error
// response itself and returns ok=false when the request cannot proceed.
func (h *ImageHandler) readCropInput(c *gin.Context) ([]byte, *models.CropRequest, bool) {
	file, _, err := c.Request.FormFile(imageParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No image file provided")
		return nil, nil, false
	}
	defer file.Close()

	req, err := h.parseCropParams(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	maxSize := h.config.Storage.MaxFileSize
	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		h.logger.Error("Failed to read upload", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Internal file error")
		return nil, nil, false
	}

	if err := h.processor.ValidateImage(data, maxSize); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, processor.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.respondError(c, status, fmt.Sprintf("Invalid image: %v", err))
		return nil, nil, false
	}
	if contentType := utils.DetectContentType(data); !utils.IsValidImageType(contentType) {
		h.respondError(c, http.StatusUnsupportedMediaType, "unsupported image type "+contentType)
		return nil, nil, false
	}

	return data, req, true
}

// === PROCESSING LOGIC ===

func (h *ImageHandler) crop(ctx context.Context, data []byte, req *models.CropRequest) (*storage.CachedCrop, bool, error) {
	cacheKey := storage.GenerateCacheKey(data, req)
	if cached, found := h.tryGetFromCache(ctx, cacheKey); found {
		return cached, true, nil
	}

	buffer, report, err := h.processor.CropBytes(data, req)
	if err != nil {
		return nil, false, err
	}

	result := &storage.CachedCrop{Report: report, Data: buffer.Bytes()}
	h.setCacheData(ctx, cacheKey, result)
	return result, false, nil
}

// === RESPONSE HANDLING ===

func (h *ImageHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func (h *ImageHandler) respondCropError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, processor.ErrEmptyContent):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, processor.ErrDecode):
		status = http.StatusBadRequest
	case errors.Is(err, processor.ErrEncode):
		h.logger.Error("Encoding failed", zap.Error(err))
	default:
		h.logger.Error("Processing failed", zap.Error(err))
	}

	c.JSON(status, models.APIResponse{
		Success: false,
		Error:   err.Error(),
		Kind:    processor.Kind(err),
	})
}

func (h *ImageHandler) respondWithImage(c *gin.Context, result *storage.CachedCrop, cacheHit bool) {
	report := result.Report
	cacheStatus := "MISS"
	if cacheHit {
		cacheStatus = "HIT"
	}

	c.Header("X-Crop-Box", report.Box.String())
	c.Header("X-Crop-Frames", strconv.Itoa(report.Frames))
	c.Header("X-Crop-Changed", strconv.FormatBool(report.Changed))
	c.Header("X-Cache", cacheStatus)
	c.Data(http.StatusOK, utils.ContentTypeForFormat(report.Format), result.Data)
}

// === UTILITY METHODS ===

func (h *ImageHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}

// === CACHE OPERATIONS ===

func (h *ImageHandler) tryGetFromCache(ctx context.Context, cacheKey string) (*storage.CachedCrop, bool) {
	if h.cache == nil {
		return nil, false
	}
	cached, err := h.cache.GetCrop(ctx, cacheKey)
	if err != nil {
		h.logger.Warn("Cache lookup failed", zap.String("cache_key", cacheKey), zap.Error(err))
		return nil, false
	}
	if cached == nil || cached.Report == nil {
		return nil, false
	}

	h.logger.Debug("Cache hit", zap.String("cache_key", cacheKey))
	return cached, true
}

func (h *ImageHandler) setCacheData(ctx context.Context, cacheKey string, result *storage.CachedCrop) {
	if h.cache == nil {
		return
	}
	if err := h.cache.SetCrop(ctx, cacheKey, result); err != nil {
		h.logger.Warn("Failed to cache data", zap.String("cache_key", cacheKey), zap.Error(err))
	}
}
