package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"mtgmcp/internal/adapters/render"
	"mtgmcp/internal/application/commands"
)

var copyDeck bool

var deckCmd = &cobra.Command{
	Use:   "deck <id>",
	Short: "Fetch an Archidekt deck",
	Long: `Fetch an Archidekt deck by id and resolve every card in it.

With --copy the decklist ("quantity name" per line, cards outside the deck
such as the maybeboard left out) is also placed on the clipboard.

Examples:
  mtgmcp-cli deck 1234567
  mtgmcp-cli deck 1234567 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, err := commands.NewGetDeckCommand(services.Archidekt, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			if err := render.JSON(out, deck); err != nil {
				return err
			}
		} else {
			render.Deck(out, deck)
		}

		if copyDeck {
			if err := clipboard.WriteAll(render.DeckList(deck)); err != nil {
				return fmt.Errorf("copying decklist: %w", err)
			}
			render.Done(cmd.ErrOrStderr(), "Decklist copied to clipboard")
		}
		return nil
	},
}

func init() {
	deckCmd.Flags().BoolVar(&copyDeck, "copy", false, "copy the decklist to the clipboard")
	addJSONFlag(deckCmd)
	rootCmd.AddCommand(deckCmd)
}
