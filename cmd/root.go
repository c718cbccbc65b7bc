package cmd

import (
	"github.com/phambaophuc/image-autocrop/internal/config"
	"github.com/phambaophuc/image-autocrop/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newLogger is replaced in tests.
var newLogger = logging.New

// app carries what PersistentPreRunE builds for the subcommands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "autocrop",
		Short: "Trim transparent margins from still and animated images",
		Long: `Autocrop removes fully transparent margins from images in place.

Still images are cropped to the bounding box of their visible pixels.
Animated GIFs are cropped to one box shared by every frame so the
animation keeps its alignment. Besides the file commands it can serve
an HTTP API and run queue workers over remote object storage.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}

	// Finalizers run even when RunE fails, unlike post-run hooks.
	cobra.OnFinalize(a.sync)

	cmd.AddCommand(newStaticCmd(a))
	cmd.AddCommand(newAnimatedCmd(a))
	cmd.AddCommand(newAutoCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newWorkerCmd(a))
	cmd.AddCommand(newEnqueueCmd(a))

	return cmd
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
