package engine

import (
	"context"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/choice"
	"github.com/SvenDH/inkwell/game"
)

type opponentFamily struct{ e *Engine }

func (f opponentFamily) handle(ctx context.Context, eff ability.Effect, gc *Context) (bool, error) {
	e := f.e
	s := gc.State
	switch eff := eff.(type) {
	case ability.OpponentChoiceBanish:
		return true, e.eachOpponentPicks(ctx, gc, eff.Filter, eff.Amount, "Choose a card to banish", func(c *game.Card) error {
			return e.banish(gc, c)
		})
	case ability.OpponentChoiceReturn:
		return true, e.eachOpponentPicks(ctx, gc, eff.Filter, eff.Amount, "Choose a card to return to your hand", func(c *game.Card) error {
			return s.Move(c, ability.ZoneHand)
		})
	case ability.OpponentChoiceDamage:
		return true, e.eachOpponentPicks(ctx, gc, eff.Filter, eff.Amount, "Choose a character to damage", func(c *game.Card) error {
			e.deal(gc, c, eff.Damage)
			return nil
		})
	case ability.OpponentChoiceExert:
		return true, e.eachOpponentPicks(ctx, gc, eff.Filter, eff.Amount, "Choose a character to exert", func(c *game.Card) error {
			c.Exerted = true
			return nil
		})
	case ability.OpponentChoiceDiscard:
		for _, opp := range s.Opponents(gc.Player) {
			hand := append([]*game.Card(nil), opp.Hand.Cards()...)
			n := min(max(eff.Amount, 1), len(hand))
			picked, err := e.pick(ctx, gc, selection{
				player:   opp,
				kind:     choice.KindOpponent,
				prompt:   "Choose cards to discard",
				cards:    hand,
				min:      n,
				max:      n,
				fallback: e.lowestValue(gc, hand),
			})
			if err != nil {
				return true, err
			}
			for _, c := range picked {
				if err := s.Move(c, ability.ZoneDiscard); err != nil {
					return true, err
				}
			}
		}
	case ability.RevealHand:
		scope := eff.Player
		if scope == "" {
			scope = ability.PlayerEachOpponent
		}
		players, err := e.players(ctx, scope, gc)
		if err != nil {
			return true, err
		}
		for _, p := range players {
			hand := append([]*game.Card(nil), p.Hand.Cards()...)
			if err := e.reveal(ctx, &Context{State: s, Player: p, Source: gc.Source}, hand); err != nil {
				return true, err
			}
			if eff.Discard == nil {
				continue
			}
			filter := *eff.Discard
			picked, err := e.pick(ctx, gc, selection{
				player: gc.Player,
				kind:   choice.KindTarget,
				prompt: "Choose a card to discard",
				cards:  hand,
				min:    1,
				max:    1,
				invalid: func(c *game.Card) string {
					if !filter.MatchStatic(c.Def) {
						return "does not match"
					}
					return ""
				},
			})
			if err != nil {
				return true, err
			}
			for _, c := range picked {
				if err := s.Move(c, ability.ZoneDiscard); err != nil {
					return true, err
				}
			}
		}
	case ability.RevealTopConditional:
		top := gc.Player.Deck.Top(1)
		if len(top) == 0 {
			return true, nil
		}
		c := top[0]
		if err := e.reveal(ctx, gc, top); err != nil {
			return true, err
		}
		if eff.Filter.MatchStatic(c.Def) {
			return true, e.place(ctx, gc, c, destination(eff.Destination))
		}
		return true, s.MoveToBottom(c, ability.ZoneDeck)
	default:
		return false, nil
	}
	return true, nil
}

// eachOpponentPicks has every opponent choose amount of their own cards in
// play matching filter and applies do to each. Without a response the
// opponent gives up its lowest-value cards.
func (e *Engine) eachOpponentPicks(ctx context.Context, gc *Context, filter ability.Filter, amount int, prompt string, do func(*game.Card) error) error {
	s := gc.State
	amount = max(amount, 1)
	filter.Owner = ability.OwnerAny
	for _, opp := range s.Opponents(gc.Player) {
		var candidates []*game.Card
		for _, c := range opp.Play.Cards() {
			if e.stats.Matches(filter, c, s, opp, gc.Source) {
				candidates = append(candidates, c)
			}
		}
		picked, err := e.pick(ctx, gc, selection{
			player:   opp,
			kind:     choice.KindOpponent,
			prompt:   prompt,
			cards:    candidates,
			min:      amount,
			max:      amount,
			fallback: e.lowestValue(gc, candidates),
		})
		if err != nil {
			return err
		}
		for _, c := range picked {
			if err := do(c); err != nil {
				return err
			}
		}
	}
	return nil
}
