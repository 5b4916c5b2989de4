package commands

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/pion/screencapture/internal/logging"
	"github.com/pion/screencapture/pkg/io/video"
	"github.com/spf13/cobra"
)

func newRecordCommand(o *options) *cobra.Command {
	var (
		frames int
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Capture a numbered series of frames",
		Long: `Capture frames at the configured rate and write each one as a PNG
file. A rate of zero captures as fast as possible.`,
		Example: `  # Write 10 frames, 2 per second
  screengrab record --rate 2 --frames 10 --out-dir frames`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger("screengrab")
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			c, err := o.capturer()
			if err != nil {
				return err
			}
			defer c.Close()

			r := video.Merge(
				video.Throttle(c.Config().Rate),
				video.Limit(frames),
			)(c.Reader(cmd.Context()))

			for n := 1; ; n++ {
				img, release, err := r.Read()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("failed to capture frame %d: %w", n, err)
				}

				path := filepath.Join(outDir, fmt.Sprintf("frame-%05d.png", n))
				err = writePNG(path, img)
				release()
				if err != nil {
					return err
				}
				log.Debugf("wrote %s", path)
			}
		},
	}

	cmd.Flags().IntVarP(&frames, "frames", "n", 10, "number of frames to write, 0 for no limit")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory the frames are written to")
	return cmd
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
