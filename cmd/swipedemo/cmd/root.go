// Package cmd implements the swipedemo CLI commands.
//
// The root command loads the demo configuration and sets up logging; each
// subcommand then builds the card list and renders, snapshots or drives it.
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/swipeactions/internal/config"
	swipeerrors "github.com/go-drift/swipeactions/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// app is the state shared by every subcommand once the root has run.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewRootCmd creates the root command.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{}
	var (
		configPath string
		locale     string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:          "swipedemo",
		Short:        "Swipe actions demo",
		Long:         "swipedemo renders and drives a list of cards whose rows swipe open to reveal actions.",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOptional(configPath)
			if err != nil {
				return err
			}
			if locale != "" {
				cfg.Locale = locale
			}
			if debug {
				cfg.Logging.Level = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return swipeerrors.Wrap("swipedemo", swipeerrors.KindConfig, err)
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			swipeerrors.SetHandler(swipeerrors.NewLogHandler(&logger))
			logger.Debug().Str("config", configPath).Str("locale", cfg.Locale).Msg("configuration loaded")
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().StringVar(&locale, "locale", "", "override the configured locale")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.AddCommand(newRenderCmd(a), newSnapshotCmd(a), newSimulateCmd(a), newVersionCmd())
	return cmd
}

const rootCmdExample = `  # Render the list with the purple card swiped open
  swipedemo render --open purple -o list.png

  # Print the render tree as JSON
  swipedemo snapshot --open black

  # Play the default bookmark-then-delete scenario in real time
  swipedemo simulate

  # Use a custom configuration
  swipedemo render -c demo.toml`

func newLogger(w io.Writer, cfg *config.Config) (zerolog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return zerolog.Nop(), err
	}
	out := w
	if cfg.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "swipedemo version %s (built %s)\n", Version, BuildTime)
			return err
		},
	}
}
