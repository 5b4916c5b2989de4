package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/pion/screencapture/internal/logging"
	"github.com/pion/screencapture/pkg/capture"
	"github.com/spf13/cobra"
)

func newWatchCommand(o *options) *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Capture periodically and report timings",
		Long: `Capture in the background at the configured rate and log how long each
capture took, until the duration elapsed or the command is interrupted.`,
		Example: `  # Capture 30 frames per second for 10 seconds
  screengrab watch --rate 30 --duration 10s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger("screengrab")

			c, err := o.capturer()
			if err != nil {
				return err
			}
			config := c.Config()
			if config.Rate <= 0 {
				log.Warn("rate is not positive, capturing once per second")
				config.Rate = 1
				c.SetConfig(config)
			}

			var (
				mu       sync.Mutex
				count    int
				failures int
				total    time.Duration
			)
			t := capture.NewThreaded(c)
			t.SetPostCallback(func(info capture.Info) {
				mu.Lock()
				defer mu.Unlock()
				count++
				total += info.Duration
				if info.Err != nil {
					failures++
					return
				}
				log.Infof("frame %d: %dx%d in %v", info.Counter,
					info.Image.Rect.Dx(), info.Image.Rect.Dy(), info.Duration)
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, duration)
			defer cancel()
			<-ctx.Done()

			if err := t.Close(); err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			var avg time.Duration
			if count > 0 {
				avg = total / time.Duration(count)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d captures, %d failed, %v on average\n", count, failures, avg)
			return nil
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", 5*time.Second, "how long to capture")
	return cmd
}
