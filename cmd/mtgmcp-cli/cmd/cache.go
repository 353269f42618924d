package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mtgmcp/internal/adapters/render"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the local card cache",
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), services.Cache.Dir())
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count cached cards and similar-card lists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := services.Cache.Stats()
		if err != nil {
			return err
		}
		if asJSON {
			return render.JSON(cmd.OutOrStdout(), stats)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cards:   %d\nsimilar: %d\n", stats.Cards, stats.Similar)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry",
	Long: `Remove every cached card and similar-card list. The next lookup for
each card goes back to the upstream API.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := services.Cache.Clear()
		if err != nil {
			return err
		}
		render.Done(cmd.OutOrStdout(), fmt.Sprintf("Removed %d cards and %d similar-card lists", removed.Cards, removed.Similar))
		return nil
	},
}

func init() {
	addJSONFlag(cacheStatsCmd)
	cacheCmd.AddCommand(cachePathCmd, cacheStatsCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
