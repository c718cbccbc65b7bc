package cmd

import (
	"fmt"

	"github.com/phambaophuc/image-autocrop/internal/models"
	"github.com/phambaophuc/image-autocrop/internal/services/processor"
	"github.com/phambaophuc/image-autocrop/internal/services/queue"
	"github.com/phambaophuc/image-autocrop/internal/services/storage"
	"github.com/spf13/cobra"
)

func newEnqueueCmd(a *app) *cobra.Command {
	var (
		mode   string
		policy string
	)

	cmd := &cobra.Command{
		Use:   "enqueue OBJECT...",
		Short: "Publish crop jobs for objects in remote storage",
		Long: `Publishes one crop job per OBJECT path in the Supabase bucket. A running
worker crops the object and replaces it in place.`,
		Example: `  autocrop enqueue --mode animated sprites/walk.gif sprites/run.gif`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := a.cfg, a.logger
			req := models.CropRequest{Mode: models.Mode(mode), Policy: models.Policy(policy)}
			if !req.Mode.Valid() {
				return fmt.Errorf("invalid mode %q: want static, animated or auto", mode)
			}
			if !req.Policy.Valid() {
				return fmt.Errorf("invalid policy %q: want bounds or bottom", policy)
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

			for _, path := range args {
				job := &models.CropJob{Path: path, Request: req}
				if err := qs.PublishJob(cmd.Context(), job); err != nil {
					return fmt.Errorf("enqueue %s: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), job.ID, path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(models.ModeAuto), "Cropper: static, animated or auto")
	cmd.Flags().StringVar(&policy, "policy", "", "Edges to trim: bounds or bottom (default depends on the cropper)")

	return cmd
}
