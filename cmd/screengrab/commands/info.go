package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/pion/screencapture/pkg/driver"
	"github.com/pion/screencapture/pkg/frame"
	"github.com/spf13/cobra"
)

func newInfoCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "List the available screen drivers",
		Long: `List every registered screen driver with its current resolution,
and the pixel conversion path in use on this machine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "conversion: %s\n\n", frame.CurrentAcceleration())

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tPRIORITY\tRESOLUTION\tID")
			for _, s := range driver.GetManager().QueryScreens() {
				fmt.Fprintf(w, "%s\t%.1f\t%s\t%s\n", s.Info().Label, s.Info().Priority, resolution(s), s.ID())
			}
			return w.Flush()
		},
	}
}

func resolution(s driver.ScreenDriver) string {
	if s.Status() == driver.StateClosed {
		if err := s.Open(); err != nil {
			return fmt.Sprintf("unavailable (%v)", err)
		}
		defer s.Close()
	}
	res, err := s.Resolution()
	if err != nil {
		return fmt.Sprintf("unavailable (%v)", err)
	}
	return res.String()
}
