package cmd

import (
	"errors"
	"fmt"

	"github.com/phambaophuc/image-autocrop/internal/services/processor"
	"github.com/phambaophuc/image-autocrop/internal/services/queue"
	"github.com/phambaophuc/image-autocrop/internal/services/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoStorage = errors.New("object storage not configured: set SUPABASE_URL and SUPABASE_BUCKET")

func newWorkerCmd(a *app) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume crop jobs from RabbitMQ",
		Long: `Consumes crop jobs from RABBITMQ_QUEUE. Each job downloads an object
from the Supabase bucket, crops it and uploads the result over the
original. Job states are recorded in Redis.`,
		Example: `  autocrop worker --concurrency 8`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := a.cfg, a.logger
			if !cfg.Supabase.Enabled() {
				return errNoStorage
			}
			if concurrency < 1 {
				concurrency = cfg.Crop.Workers
			}

			store, err := storage.NewStorageService(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			qs, err := queue.NewQueueService(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, processor.NewImageProcessor(), store, logger)
			if err != nil {
				return err
			}
			defer qs.Close()

			closed := qs.NotifyClose()
			ctx := cmd.Context()
			for i := 1; i <= concurrency; i++ {
				if err := qs.StartWorker(ctx, i); err != nil {
					return err
				}
			}
			logger.Info("Workers running",
				zap.Int("concurrency", concurrency),
				zap.String("queue", cfg.RabbitMQ.Queue))

			select {
			case <-ctx.Done():
				logger.Info("Stopping workers")
				return nil
			case amqpErr := <-closed:
				if amqpErr == nil {
					return nil
				}
				return fmt.Errorf("broker connection lost: %w", amqpErr)
			}
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Number of consumers (default CROP_WORKERS)")

	return cmd
}
