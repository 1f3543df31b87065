package cmd

import (
	"github.com/spf13/cobra"

	"exposure/pkg/config"
	"exposure/pkg/logging"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configFile string
	logLevel   string
	locale     string
}

// load resolves the configuration: defaults, file, environment, then flags.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.App.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("locale") {
		cfg.App.Locale = o.locale
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Setup(cfg.App.LogLevel)
	return cfg, nil
}

// NewRootCmd builds the exposure command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "exposure",
		Short:        "Exposure renders security exposure scan reports",
		Long:         `Exposure submits targets to a scan service and presents the returned report as an executive summary and a technical detail view.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warning, error)")
	rootCmd.PersistentFlags().StringVar(&opts.locale, "locale", "en", "Language of user messages (en, it)")

	rootCmd.AddCommand(createScanCmd(opts))
	rootCmd.AddCommand(createRenderCmd(opts))
	rootCmd.AddCommand(createServeCmd(opts))

	return rootCmd
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}
