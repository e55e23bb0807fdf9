package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SafeGiantJacket/renewaldesk/config"
)

// Config command flags.
var (
	configSetOutput  string
	configSetBackend string
	configSetListen  string
)

// ConfigCommandDeps holds the dependencies for config commands.
type ConfigCommandDeps struct {
	LoadConfig func() (*config.CLIConfig, error)
	SaveConfig func(cfg *config.CLIConfig) error
}

// DefaultConfigDeps returns the default dependencies for production use.
func DefaultConfigDeps() *ConfigCommandDeps {
	return &ConfigCommandDeps{
		LoadConfig: config.LoadConfig,
		SaveConfig: config.SaveConfig,
	}
}

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand(deps *ConfigCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultConfigDeps()
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update the CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand(deps))
	cmd.AddCommand(newConfigSetCommand(deps))

	return cmd
}

func newConfigShowCommand(deps *ConfigCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return err
			}
			format, err := resolveOutputFormat(cfg)
			if err != nil {
				return err
			}
			if format == config.OutputFormatJSON {
				return writeFormatted(os.Stdout, format, cfg)
			}
			return writeFormatted(os.Stdout, config.OutputFormatYAML, cfg)
		},
	}
}

func newConfigSetCommand(deps *ConfigCommandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update configuration values and save them",
		Long: `Update configuration values and save them to the config file.

Examples:
  renew config set --output-format json
  renew config set --store-backend redis
  renew config set --listen 0.0.0.0:9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(deps)
		},
	}

	cmd.Flags().StringVar(&configSetOutput, "output-format", "", "Default output format: text, json, yaml")
	cmd.Flags().StringVar(&configSetBackend, "store-backend", "", "Store backend: memory, postgres, redis")
	cmd.Flags().StringVar(&configSetListen, "listen", "", "Default serve listen address")

	return cmd
}

func runConfigSet(deps *ConfigCommandDeps) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}

	changed := false
	if configSetOutput != "" {
		cfg.OutputFormat = config.OutputFormat(configSetOutput)
		changed = true
	}
	if configSetBackend != "" {
		cfg.StoreBackend = config.StoreBackend(configSetBackend)
		changed = true
	}
	if configSetListen != "" {
		cfg.ListenAddr = configSetListen
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to set; see renew config set --help")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := deps.SaveConfig(cfg); err != nil {
		return err
	}

	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	fmt.Println("Configuration saved to", path)
	return nil
}
