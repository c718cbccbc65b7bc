package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-autocrop/internal/http/handlers"
	"github.com/phambaophuc/image-autocrop/internal/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	imageHandler *handlers.ImageHandler
	logger       *zap.Logger
}

func NewRouter(
	imageHandler *handlers.ImageHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		imageHandler: imageHandler,
		logger:       logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.SecurityHeaders())

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.imageHandler.HealthCheck)

		crop := v1.Group("/crop", middleware.ValidateContentType())
		{
			crop.POST("", r.imageHandler.CropImage)
			crop.POST("/report", r.imageHandler.CropReport)
		}

		jobs := v1.Group("/jobs")
		{
			jobs.POST("", r.imageHandler.EnqueueJob)
			jobs.GET("/stats", r.imageHandler.QueueStats)
			jobs.GET("/:id", r.imageHandler.GetJob)
		}
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Image autocrop is running",
		})
	})

	return router
}
