package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"mtgmcp/internal/adapters/render"
	"mtgmcp/internal/application/commands"
)

var similarCmd = &cobra.Command{
	Use:   "similar <name>",
	Short: "List EDHREC's similar cards",
	Long: `List cards EDHREC considers similar to the given card.

The name must match EDHREC's card page, so use the full card name.
Results are cached for a year.

Examples:
  mtgmcp-cli similar "Sol Ring"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := commands.NewSimilarCardsCommand(services.EDHREC, strings.Join(args, " ")).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON {
			return render.JSON(cmd.OutOrStdout(), cards)
		}
		render.SimilarCards(cmd.OutOrStdout(), cards)
		return nil
	},
}

func init() {
	addJSONFlag(similarCmd)
	rootCmd.AddCommand(similarCmd)
}
