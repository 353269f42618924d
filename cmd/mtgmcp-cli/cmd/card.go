package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mtgmcp/internal/adapters/render"
	"mtgmcp/internal/application/commands"
)

var (
	withRulings bool
	withSimilar bool
)

var cardCmd = &cobra.Command{
	Use:   "card <name>...",
	Short: "Look up cards by name",
	Long: `Look up one or more cards by name. Names are fuzzy matched, so
"bolt" finds Lightning Bolt. Quote names that contain spaces.

Examples:
  mtgmcp-cli card "Lightning Bolt"
  mtgmcp-cli card "Sol Ring" "Arcane Signet" --rulings
  mtgmcp-cli card "Omnath, Locus of Rage" --similar --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		getCards := commands.NewGetCardsCommand(services.Scryfall, services.EDHREC, args)
		getCards.IncludeRulings = withRulings
		getCards.IncludeSimilar = withSimilar

		cards, err := getCards.Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return render.JSON(out, cards)
		}
		for i, c := range cards {
			if i > 0 {
				fmt.Fprintln(out)
			}
			render.Card(out, c)
		}
		return nil
	},
}

func init() {
	cardCmd.Flags().BoolVar(&withRulings, "rulings", false, "include official rulings")
	cardCmd.Flags().BoolVar(&withSimilar, "similar", false, "include similar-card recommendations")
	addJSONFlag(cardCmd)
	rootCmd.AddCommand(cardCmd)
}
