// Package cli provides the command-line interface for dlpick.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dlpick/internal/config"
	"dlpick/internal/logging"
	"dlpick/internal/selection"
	"dlpick/internal/source"
	"dlpick/internal/transfer"
)

// Version information, overridden at build time with -ldflags
var (
	Version   = "v0.1.0-dev"
	BuildTime = "unknown"
)

// ErrNoSource is returned when neither a manifest nor a URL is configured
var ErrNoSource = errors.New("no file list: pass a manifest path, --url, or set source.path in the config")

// options holds the flags of one invocation
type options struct {
	configPath string
	url        string
	spoolDir   string
	print      bool
	debug      bool
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "dlpick [manifest]",
		Short: "Pick remote files to download",
		Long: `dlpick ` + Version + ` - Built: ` + BuildTime + `
Lists the files offered by a device and lets you check the ones to download.
Submitting hands the checked files to the transfer queue as one batch.

The file list comes from a TOML or JSON manifest, or from --url.

Keys:
  space/x  toggle the file under the cursor
  a        check or uncheck every available file
  enter/d  queue the checked files
  r        reload the file list
  ?        full help`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, configSvc, err := loadConfig(opts, args)
			if err != nil {
				return err
			}

			level := cfg.Log.Level
			if opts.debug {
				level = "debug"
			}

			if opts.print {
				// stdout carries the batch, so only --debug logs (to stderr)
				log := logging.Nop()
				if opts.debug {
					log = logging.NewWithWriter(cmd.ErrOrStderr(), level)
				}
				return runPrint(cmd, cfg, log)
			}

			log, err := logging.New(cfg.Log.File, level)
			if err != nil {
				return err
			}
			defer log.Close()

			return runInteractive(cmd.Context(), cfg, configSvc, log)
		},
	}

	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVar(&opts.url, "url", "", "Load the file list from a JSON endpoint")
	rootCmd.Flags().StringVar(&opts.spoolDir, "spool", "", "Write queued batches to this directory")
	rootCmd.Flags().BoolVar(&opts.print, "print", false, "Check every available file and print the batch without the UI")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.Version = Version + " (" + BuildTime + ")"

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dlpick %s (%s)\n", Version, BuildTime)
		},
	})
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the root command until it finishes or a signal arrives.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}

// loadConfig reads the config file and applies command-line overrides
func loadConfig(opts *options, args []string) (*config.Config, config.ConfigService, error) {
	configSvc := config.NewConfigService(opts.configPath)

	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = configSvc.LoadFromPath(opts.configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		return nil, nil, err
	}

	if len(args) == 1 {
		cfg.Source.Path = args[0]
		cfg.Source.URL = ""
	}
	if opts.url != "" {
		cfg.Source.URL = opts.url
		cfg.Source.Path = ""
	}
	if opts.spoolDir != "" {
		cfg.Transfer.SpoolDir = opts.spoolDir
	}
	return cfg, configSvc, nil
}

// newSource picks the file list source from the config
func newSource(cfg *config.Config, log *logging.Logger) (source.Source, error) {
	switch {
	case cfg.Source.URL != "":
		return source.NewHTTPSource(cfg.Source.URL, cfg.Source.RetryMax, log), nil
	case cfg.Source.Path != "":
		return source.NewFileSource(cfg.Source.Path), nil
	default:
		return nil, ErrNoSource
	}
}

// newController builds a selection controller honoring the config
func newController(cfg *config.Config) *selection.Controller {
	var opts []selection.Option
	if cfg.Selection.AllowDuplicates {
		opts = append(opts, selection.AllowDuplicates())
	}
	return selection.NewController(opts...)
}

// withSpool adds the spool sink when a spool directory is configured
func withSpool(cfg *config.Config, sinks ...transfer.Sink) transfer.Sink {
	if cfg.Transfer.SpoolDir != "" {
		sinks = append(sinks, transfer.NewSpoolSink(cfg.Transfer.SpoolDir))
	}
	if len(sinks) == 1 {
		return sinks[0]
	}
	return transfer.MultiSink(sinks)
}
