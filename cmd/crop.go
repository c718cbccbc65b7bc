package cmd

import (
	"fmt"

	"github.com/phambaophuc/image-autocrop/internal/models"
	"github.com/phambaophuc/image-autocrop/internal/services/processor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newStaticCmd(a *app) *cobra.Command {
	return newCropCmd(a, models.ModeStatic,
		"Crop still images to the bounding box of their content",
		`Crops each PATH to the smallest box holding every pixel with non-zero
alpha and writes it back in its original format. GIFs are treated as a
single still frame.`,
		`  # Trim a sprite
  autocrop static sprite.png

  # Keep the top edge and width, only trim the bottom
  autocrop static --policy bottom *.png`)
}

func newAnimatedCmd(a *app) *cobra.Command {
	return newCropCmd(a, models.ModeAnimated,
		"Crop animated GIFs with one box shared by all frames",
		`Composites every frame of each GIF PATH, honoring frame disposal, and
crops all frames with the same box. By default only the bottom edge is
trimmed, down to the lowest visible row of any frame. Frame order,
per-frame delays and the loop count are preserved.`,
		`  # Trim empty rows below an animation
  autocrop animated walk.gif

  # Tight crop on all four edges
  autocrop animated --policy bounds walk.gif`)
}

func newAutoCmd(a *app) *cobra.Command {
	return newCropCmd(a, models.ModeAuto,
		"Crop images, picking the animated cropper for multi-frame GIFs",
		`Uses the animated cropper for GIFs with more than one frame and the
static cropper for everything else.`,
		`  autocrop auto assets/*.png assets/*.gif`)
}

func newCropCmd(a *app, mode models.Mode, short, long, example string) *cobra.Command {
	var (
		policy  string
		workers int
	)

	cmd := &cobra.Command{
		Use:     string(mode) + " PATH...",
		Short:   short,
		Long:    long,
		Example: example,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &models.CropRequest{Mode: mode, Policy: models.Policy(policy)}
			if !req.Policy.Valid() {
				return fmt.Errorf("invalid policy %q: want bounds or bottom", policy)
			}
			if workers < 1 {
				workers = a.cfg.Crop.Workers
			}

			results := processor.NewImageProcessor().CropFiles(args, req, workers)
			return reportResults(a.logger, results)
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "Edges to trim: bounds or bottom (default depends on the cropper)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Files cropped in parallel (default CROP_WORKERS)")

	return cmd
}

// reportResults logs one line per result and returns the first failure.
func reportResults(logger *zap.Logger, results []models.CropResult) error {
	var first error
	for _, res := range results {
		fields := []zap.Field{zap.String("path", res.Path)}
		if r := res.Report; r != nil {
			fields = append(fields,
				zap.String("mode", string(r.Mode)),
				zap.Int("frames", r.Frames),
				zap.Stringer("original", r.Original),
			)
		}

		if res.Err != nil {
			fields = append(fields, zap.String("kind", processor.Kind(res.Err)), zap.Error(res.Err))
			logger.Error("Crop failed", fields...)
			if first == nil {
				first = res.Err
			}
			continue
		}

		r := res.Report
		fields = append(fields, zap.Stringer("box", r.Box), zap.Stringer("cropped", r.Cropped))
		if !r.Changed {
			logger.Info("Already tight, left unchanged", fields...)
			continue
		}
		logger.Info("Cropped", fields...)
	}

	if first != nil && len(results) > 1 {
		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
			}
		}
		return fmt.Errorf("%d of %d files failed: %w", failed, len(results), first)
	}
	return first
}
