package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/phambaophuc/image-autocrop/internal/http/handlers"
	"github.com/phambaophuc/image-autocrop/internal/http/routes"
	"github.com/phambaophuc/image-autocrop/internal/services/processor"
	"github.com/phambaophuc/image-autocrop/internal/services/queue"
	"github.com/phambaophuc/image-autocrop/internal/services/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the crop HTTP API",
		Long: `Starts the HTTP API. Uploaded images are cropped in memory and the
result is cached in Redis. When RabbitMQ is reachable, crop jobs for
objects in remote storage can be enqueued through the API as well.`,
		Example: `  # Listen on PORT (default 8080)
  autocrop serve

  # Listen on a custom port
  autocrop serve --port 3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := a.cfg, a.logger
			if port != "" {
				cfg.Server.Port = port
			}

			imageProcessor := processor.NewImageProcessor()

			store, err := storage.NewStorageService(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			// A nil *QueueService must not reach the handler as a non-nil interface.
			var jobQueue handlers.Queue
			qs, err := queue.NewQueueService(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, imageProcessor, store, logger)
			if err != nil {
				logger.Warn("Failed to initialize queue service", zap.Error(err))
			} else {
				defer qs.Close()
				jobQueue = qs
			}

			imageHandler := handlers.NewImageHandler(imageProcessor, store, jobQueue, logger, cfg)
			router := routes.NewRouter(imageHandler, logger)

			server := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				Handler:      router.SetupRoutes(),
			}

			serverErr := make(chan error, 1)
			go func() {
				logger.Info("Starting server", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				logger.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Error("Server forced to shutdown", zap.Error(err))
					return err
				}
				logger.Info("Server exited")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default PORT)")

	return cmd
}
