package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mtgmcp/internal/adapters/render"
	"mtgmcp/internal/config"
	"mtgmcp/internal/logging"
	"mtgmcp/internal/wiring"
)

var (
	cfg      *config.Config
	logger   *zap.Logger
	services *wiring.Services
	asJSON   bool
)

var rootCmd = &cobra.Command{
	Use:   "mtgmcp-cli",
	Short: "Look up Magic: The Gathering cards and decks from the terminal",
	Long: `mtgmcp-cli runs the same lookups as the mtgmcp server from the command line.

It shares the server's cache directory and configuration, so cards fetched
here are served from cache by the server and the other way round.`,
	Version:       config.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		services = wiring.New(cfg, logger)
		return services.Cache.Ensure()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		render.Error(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}

// addJSONFlag adds the shared --json flag to cmd
func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON, as returned by the MCP tools")
}
