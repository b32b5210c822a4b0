package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/parse"
)

var listPatterns bool

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [card-id...]",
	Short: "Compile card texts into abilities",
	Long: `Compile the texts of every catalog card, or only the cards named by id,
and print the resulting abilities. Texts that did not compile are logged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if listPatterns {
			tables := parse.Tables()
			names := make([]string, 0, len(tables))
			for name := range tables {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				for _, p := range tables[name].Names() {
					fmt.Fprintf(out, "%s\t%s\n", name, p)
				}
			}
			return nil
		}

		cards, err := catalog(args)
		if err != nil {
			return err
		}
		comp := parse.New(parse.WithLogger(logger))
		for _, c := range cards {
			fmt.Fprintf(out, "%s (%s)\n", c.Name, c.ID)
			for _, def := range comp.Compile(cmd.Context(), c) {
				fmt.Fprintf(out, "  %s: %s\n", def.ID, def)
			}
		}
		return nil
	},
}

// catalog loads the configured catalog, keeping only the given ids when any
// are passed.
func catalog(ids []string) ([]*card.Card, error) {
	if cfg.Catalog == "" {
		return nil, errNoCatalog
	}
	cards, err := card.LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return cards, nil
	}
	return pick(cards, ids)
}

func pick(cards []*card.Card, ids []string) ([]*card.Card, error) {
	byID := make(map[string]*card.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	out := make([]*card.Card, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("card %q is not in %s", id, cfg.Catalog)
		}
		out = append(out, c)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVar(&listPatterns, "patterns", false, "list the text patterns in match order and exit")
}
