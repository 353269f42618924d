package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpadapter "mtgmcp/internal/adapters/mcp"
	"mtgmcp/internal/config"
	"mtgmcp/internal/logging"
	"mtgmcp/internal/wiring"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mtgmcp",
		Short: "MCP server for Magic: The Gathering card and deck data",
		Long: `mtgmcp serves Scryfall card data, EDHREC recommendations and Archidekt decks
as MCP tools over stdio. Card data is cached under the cache directory.`,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			services := wiring.New(cfg, logger)
			if err := services.Cache.Ensure(); err != nil {
				logger.Warn("cache directory unavailable", zap.Error(err))
			}

			s := mcpadapter.NewServer(config.AppName, config.Version, services.ToolDeps(), logger)

			logger.Info("serving on stdio",
				zap.String("cache_dir", cfg.CacheDir),
				zap.Duration("fetch_interval", cfg.FetchInterval),
			)
			return server.ServeStdio(s, server.WithErrorLogger(logging.StdLog(logger)))
		},
	}
	config.RegisterFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mtgmcp: %v\n", err)
		os.Exit(1)
	}
}
