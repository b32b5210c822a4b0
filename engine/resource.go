package engine

import (
	"context"

	"github.com/SvenDH/inkwell/ability"
)

type resourceFamily struct{ e *Engine }

func (f resourceFamily) handle(ctx context.Context, eff ability.Effect, gc *Context) (bool, error) {
	e := f.e
	var scope ability.PlayerScope
	switch eff := eff.(type) {
	case ability.Draw:
		scope = eff.Player
	case ability.GainLore:
		scope = eff.Player
	case ability.LoseLore:
		scope = eff.Player
	case ability.LoreEqualToCount:
		scope = eff.Player
	case ability.DrawUntil:
		scope = eff.Player
	default:
		return false, nil
	}
	players, err := e.players(ctx, scope, gc)
	if err != nil {
		return true, err
	}
	for _, p := range players {
		switch eff := eff.(type) {
		case ability.Draw:
			p.Draw(max(eff.Amount, 1))
		case ability.GainLore:
			p.GainLore(eff.Amount)
		case ability.LoseLore:
			p.LoseLore(eff.Amount)
		case ability.LoreEqualToCount:
			p.GainLore(e.stats.Count(eff.Count, gc.State, gc.Player, gc.Source))
		case ability.DrawUntil:
			if n := eff.HandSize - p.Hand.Len(); n > 0 {
				p.Draw(n)
			}
		}
	}
	return true, nil
}
