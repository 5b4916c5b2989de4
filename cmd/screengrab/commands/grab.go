package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pion/screencapture/internal/logging"
	"github.com/pion/screencapture/pkg/raster"
	"github.com/spf13/cobra"
)

func newGrabCommand(o *options) *cobra.Command {
	var (
		output  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "grab",
		Short: "Capture a single frame",
		Long: `Capture a single frame of the selected display and write it to a file.
The image format follows the file extension.`,
		Example: `  # Capture the first display as PNG
  screengrab grab -o screen.png

  # Capture the second display as PPM
  screengrab grab --display 1 -o screen.ppm`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			encode, err := encoderFor(output)
			if err != nil {
				return err
			}

			c, err := o.capturer()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			img, err := c.Capture(ctx)
			if err != nil {
				return fmt.Errorf("failed to capture: %w", err)
			}

			if err := writeFile(output, img, encode); err != nil {
				return err
			}
			logging.NewLogger("screengrab").Infof("wrote %dx%d frame to %s", img.Width(), img.Height(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "screen.png", "output file (.png, .bmp or .ppm)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "maximum time to wait for the frame")
	return cmd
}

type encodeFunc func(io.Writer, raster.Image) error

func encoderFor(path string) (encodeFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return raster.WritePNG, nil
	case ".bmp":
		return raster.WriteBMP, nil
	case ".ppm":
		return raster.WritePPM, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use .png, .bmp or .ppm)", ext)
	}
}

func writeFile(path string, img raster.Image, encode encodeFunc) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
