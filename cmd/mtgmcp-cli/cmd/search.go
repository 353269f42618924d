package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mtgmcp/internal/adapters/render"
	"mtgmcp/internal/application/commands"
	"mtgmcp/internal/domain"
)

var searchOpts domain.SearchOptions

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search cards with Scryfall syntax",
	Long: fmt.Sprintf(`Search for cards using Scryfall's query syntax.

Only the first page of results is read, up to --max cards (at most %d).

Examples:
  mtgmcp-cli search "t:goblin c:r cmc<=2"
  mtgmcp-cli search "o:\"draw a card\" t:instant" --order cmc --max 10
  mtgmcp-cli search "!\"Lightning Bolt\"" --unique prints`, domain.MaxResultsCeiling),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := searchOpts
		opts.Query = strings.Join(args, " ")

		result, err := commands.NewSearchCardsCommand(services.Scryfall, opts).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON {
			return render.JSON(cmd.OutOrStdout(), result)
		}
		render.SearchResult(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	flags := searchCmd.Flags()
	flags.IntVar(&searchOpts.MaxResults, "max", domain.DefaultMaxResults, "maximum cards to return")
	flags.StringVar((*string)(&searchOpts.Unique), "unique", string(domain.UniqueCards), "duplicate handling: "+strings.Join(domain.UniqueModes, ", "))
	flags.StringVar(&searchOpts.Order, "order", domain.DefaultOrder, "sort order")
	flags.BoolVar(&searchOpts.IncludeExtras, "extras", false, "include tokens, emblems and other extras")
	addJSONFlag(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
