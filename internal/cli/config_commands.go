package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"dlpick/internal/config"
	"dlpick/internal/domain"
	"dlpick/internal/eventbus"
	"dlpick/internal/logging"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dlpick configuration",
		Long: `Configuration management commands for dlpick.

Commands:
  init  - Write a configuration file with the defaults
  show  - Display the effective configuration
  path  - Show the configuration file path`,
	}

	configCmd.PersistentFlags().StringP("config", "c", "", "Configuration file path")

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' command.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")

			bus := eventbus.New(logging.Nop())
			defer bus.Close()

			saved := make(chan string, 1)
			bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
				if event, ok := e.(domain.ConfigSavedEvent); ok {
					saved <- event.Path
				}
			})

			configSvc := config.NewConfigServiceWithBus(path, bus)
			if !force {
				if _, err := os.Stat(configSvc.Path()); err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Configuration already exists at: %s\n", configSvc.Path())
					fmt.Fprintln(cmd.OutOrStdout(), "Use --force to overwrite or run 'config show' to view it.")
					return nil
				}
			}

			if err := configSvc.Save(config.DefaultConfig()); err != nil {
				return err
			}

			select {
			case p := <-saved:
				fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", p)
			case <-time.After(2 * time.Second):
				fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configSvc.Path())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")
	return cmd
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, _, err := loadConfig(&options{configPath: path}, nil)
			if err != nil {
				return err
			}

			data, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// newConfigPathCmd creates the 'config path' command.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			path, _ := cmd.Flags().GetString("config")
			fmt.Fprintln(cmd.OutOrStdout(), config.NewConfigService(path).Path())
		},
	}
}
