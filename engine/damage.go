package engine

import (
	"context"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/game"
)

type damageFamily struct{ e *Engine }

func (f damageFamily) handle(ctx context.Context, eff ability.Effect, gc *Context) (bool, error) {
	e := f.e
	switch eff := eff.(type) {
	case ability.Damage:
		targets, err := e.ResolveTargets(ctx, eff.Target, gc)
		if err != nil {
			return true, err
		}
		for _, c := range targets {
			e.deal(gc, c, eff.Amount)
		}
	case ability.DamageEqualToCount:
		n := e.stats.Count(eff.Count, gc.State, gc.Player, gc.Source)
		targets, err := e.ResolveTargets(ctx, eff.Target, gc)
		if err != nil {
			return true, err
		}
		for _, c := range targets {
			e.deal(gc, c, n)
		}
	case ability.RemoveDamage:
		targets, err := e.ResolveTargets(ctx, eff.Target, gc)
		if err != nil {
			return true, err
		}
		for _, c := range targets {
			if eff.All {
				c.Damage = 0
				continue
			}
			heal(c, eff.Amount)
		}
	case ability.HealAndDraw:
		targets, err := e.ResolveTargets(ctx, eff.Target, gc)
		if err != nil {
			return true, err
		}
		for _, c := range targets {
			hi := c.Damage
			if eff.Max > 0 && eff.Max < hi {
				hi = eff.Max
			}
			if hi < 1 {
				continue
			}
			n, err := e.amount(ctx, gc, gc.Player, "Remove how much damage?", 1, hi)
			if err != nil {
				return true, err
			}
			heal(c, n)
			gc.Player.Draw(n)
		}
	case ability.MoveDamage:
		from, err := e.ResolveTargets(ctx, eff.From, gc)
		if err != nil {
			return true, err
		}
		to, err := e.ResolveTargets(ctx, eff.To, gc)
		if err != nil {
			return true, err
		}
		if len(from) == 0 || len(to) == 0 {
			return true, nil
		}
		n := eff.Amount
		if from[0].Damage < n {
			n = from[0].Damage
		}
		if n <= 0 {
			return true, nil
		}
		from[0].Damage -= n
		to[0].Damage += n
		gc.State.Emit(ability.EventDamaged, to[0])
		e.checkBanished(gc, to[0])
	case ability.Banish:
		targets, err := e.ResolveTargets(ctx, eff.Target, gc)
		if err != nil {
			return true, err
		}
		for _, c := range targets {
			if err := e.banish(gc, c); err != nil {
				return true, err
			}
		}
	default:
		return false, nil
	}
	return true, nil
}

// deal adds damage to a card in play, reduced by Resist. Damage is additive
// and has no cap; a card whose damage reaches its willpower is banished.
func (e *Engine) deal(gc *Context, c *game.Card, amount int) {
	if !c.InPlay() || amount <= 0 {
		return
	}
	s := gc.State
	if e.stats.HasRestriction(c, ability.CantBeDealtDamage, s) {
		return
	}
	if resist, ok := e.stats.KeywordValue(c, ability.Resist, s); ok {
		amount -= resist
	}
	if amount <= 0 {
		return
	}
	c.Damage += amount
	s.Emit(ability.EventDamaged, c)
	e.checkBanished(gc, c)
}

func heal(c *game.Card, amount int) {
	c.Damage -= amount
	if c.Damage < 0 {
		c.Damage = 0
	}
}

func (e *Engine) checkBanished(gc *Context, c *game.Card) {
	if !c.IsCharacter() && c.Type() != card.TypeLocation {
		return
	}
	if w := e.stats.Willpower(c, gc.State); c.Damage >= w {
		if err := e.banish(gc, c); err != nil {
			e.log.Warn("banish failed", "card", c.ID, "err", err)
		}
	}
}

func (e *Engine) banish(gc *Context, c *game.Card) error {
	if !c.InPlay() {
		return nil
	}
	if err := gc.State.Move(c, ability.ZoneDiscard); err != nil {
		return err
	}
	gc.State.Emit(ability.EventBanished, c)
	return nil
}
