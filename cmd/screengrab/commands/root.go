package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pion/screencapture"
	"github.com/pion/screencapture/internal/logging"
	"github.com/pion/screencapture/pkg/capture"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	// Registers the platform screen drivers.
	_ "github.com/pion/screencapture/pkg/driver/screen"
)

type options struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand builds the screengrab command tree.
func NewRootCommand() *cobra.Command {
	o := &options{v: viper.New()}
	cmd := &cobra.Command{
		Use:   "screengrab",
		Short: "screengrab - capture the screen into image files",
		Long: `screengrab captures the contents of a display, either once or
periodically, and writes the frames as PNG, BMP or PPM images.

The captured region is chosen by the first capture specification of the
config file matching the display resolution. Without a match the whole
display is captured.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.init()
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/screengrab/config.yaml)")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("driver", "", "label of the screen driver to use, see 'screengrab info'")
	flags.Int("display", 0, "index of the display among the available screens")
	flags.Float64("rate", 0, "captures per second, overrides the config file")

	// Bind flags to viper
	o.v.BindPFlag("log_level", flags.Lookup("log-level"))
	o.v.BindPFlag("driver", flags.Lookup("driver"))
	o.v.BindPFlag("display", flags.Lookup("display"))
	o.v.BindPFlag("rate", flags.Lookup("rate"))

	cmd.AddCommand(
		newGrabCommand(o),
		newInfoCommand(o),
		newRecordCommand(o),
		newWatchCommand(o),
		newConfigCommand(o),
	)
	return cmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (o *options) init() error {
	o.v.SetEnvPrefix("SCREENGRAB")
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	o.v.SetConfigType("yaml")
	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			o.v.AddConfigPath(filepath.Join(dir, "screengrab"))
		}
		o.v.SetConfigName("config")
	}
	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if level := o.v.GetString("log_level"); level != "" {
		return logging.SetLevel(level)
	}
	return nil
}

func (o *options) captureConfig() (capture.Config, error) {
	var c capture.Config
	if err := o.v.Unmarshal(&c); err != nil {
		return capture.Config{}, fmt.Errorf("invalid capture config: %w", err)
	}
	return c, nil
}

func (o *options) capturer() (*capture.Capturer, error) {
	d, err := screencapture.FindScreen(o.v.GetString("driver"), o.v.GetInt("display"))
	if err != nil {
		return nil, err
	}
	config, err := o.captureConfig()
	if err != nil {
		return nil, err
	}
	return capture.NewCapturer(d, config, capture.WithDisplay(o.v.GetInt("display"))), nil
}
