package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/choice"
	"github.com/SvenDH/inkwell/engine"
	"github.com/SvenDH/inkwell/game"
	"github.com/SvenDH/inkwell/observe"
	"github.com/SvenDH/inkwell/parse"
)

var (
	playSeed  int64
	playBot   bool
	boardSize int
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <card-id>",
	Short: "Play one card on a sandbox board",
	Long: `Deal both players a shuffled copy of the catalog, put a few characters in
play on each side and play the given card for the first player. Choices are
asked on the terminal; the second player is a bot.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := catalog(nil)
		if err != nil {
			return err
		}
		played, err := pick(cards, args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		var p1 choice.Requester = choice.NewConsole(cmd.InOrStdin(), out)
		if playBot {
			p1 = choice.Bot
		}
		eng := engine.New(
			engine.WithLogger(logger),
			engine.WithMetrics(observe.Default()),
			engine.WithRequester(choice.Router{"p1": p1, "p2": choice.Bot}),
		)
		comp := parse.New(parse.WithLogger(logger), parse.WithMetrics(observe.Default()))
		ctx := cmd.Context()
		s, err := sandbox(ctx, cards, comp, eng)
		if err != nil {
			return err
		}

		c := game.NewCard(played[0], s.Players[0], ability.ZoneHand)
		c.Abilities = comp.Compile(ctx, played[0])
		s.Put(c, ability.ZoneHand)
		fmt.Fprintf(out, "p1 plays %s\n", c.Def.FullName())

		if err := eng.PlayCard(ctx, s, c); err != nil {
			return err
		}
		printState(out, s)
		return nil
	},
}

// sandbox deals each player the whole catalog, five ink, a seven card hand and
// up to boardSize characters in play.
func sandbox(ctx context.Context, cards []*card.Card, comp *parse.Compiler, eng *engine.Engine) (*game.State, error) {
	abilities := make(map[string][]ability.Definition, len(cards))
	for _, def := range cards {
		abilities[def.ID] = comp.Compile(ctx, def)
	}
	p1, p2 := game.NewPlayer("p1", cards...), game.NewPlayer("p2", cards...)
	s := game.NewState(playSeed, p1, p2)
	for _, p := range s.Players {
		for _, c := range p.Deck.Cards() {
			c.Abilities = abilities[c.Def.ID]
		}
		p.Deck.Shuffle(s.Rand())

		onBoard := 0
		for _, c := range append([]*game.Card(nil), p.Deck.Cards()...) {
			if onBoard == boardSize {
				break
			}
			if c.IsCharacter() {
				if err := eng.EnterPlay(ctx, s, c); err != nil {
					return nil, err
				}
				onBoard++
			}
		}
		for i := 0; i < 5; i++ {
			if c := p.Deck.Pop(); c != nil {
				s.Put(c, ability.ZoneInkwell)
			}
		}
		p.Draw(7)
	}
	return s, nil
}

func printState(w io.Writer, s *game.State) {
	for _, p := range s.Players {
		fmt.Fprintf(w, "%s lore %d, hand %d, deck %d, ink %d/%d, discard %d\n",
			p.Name, p.Lore, p.Hand.Len(), p.Deck.Len(), p.AvailableInk(), p.Inkwell.Len(), p.Discard.Len())
		for _, c := range p.Play.Cards() {
			state := ""
			if c.Exerted {
				state = " exerted"
			}
			fmt.Fprintf(w, "  %s %d/%d damage %d%s\n", c.Def.FullName(), c.Strength, c.Willpower, c.Damage, state)
		}
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Int64Var(&playSeed, "seed", 1, "shuffle seed")
	playCmd.Flags().BoolVar(&playBot, "bot", false, "let a bot answer the first player's choices")
	playCmd.Flags().IntVar(&boardSize, "board", 2, "characters in play per player")
}
