package engine

import (
	"context"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/effects"
	"github.com/SvenDH/inkwell/game"
)

type statusFamily struct{ e *Engine }

func (f statusFamily) handle(ctx context.Context, eff ability.Effect, gc *Context) (bool, error) {
	e := f.e
	s := gc.State
	switch eff := eff.(type) {
	case ability.Ready:
		targets, err := e.ResolveTargets(ctx, eff.Target, gc)
		if err != nil {
			return true, err
		}
		for _, c := range targets {
			if !c.Exerted || e.stats.HasRestriction(c, ability.CantReady, s) {
				continue
			}
			c.Exerted = false
			s.Emit(ability.EventReadied, c)
		}
	case ability.Exert:
		targets, err := e.ResolveTargets(ctx, eff.Target, gc)
		if err != nil {
			return true, err
		}
		for _, c := range targets {
			c.Exerted = true
		}
	case ability.ModifyStats:
		return true, e.register(ctx, gc, eff.Target, effects.Record{
			Kind:     effects.KindStat,
			Stat:     eff.Stat,
			Amount:   eff.Amount,
			Duration: eff.Duration,
		})
	case ability.ModifyStatsPerCount:
		count := eff.Count
		return true, e.register(ctx, gc, eff.Target, effects.Record{
			Kind:     effects.KindStat,
			Stat:     eff.Stat,
			Amount:   eff.Per,
			PerCount: &count,
			Duration: eff.Duration,
		})
	case ability.GrantKeyword:
		return true, e.register(ctx, gc, eff.Target, effects.Record{
			Kind:         effects.KindKeyword,
			Keyword:      eff.Keyword,
			KeywordValue: eff.Value,
			Duration:     eff.Duration,
		})
	case ability.Restriction:
		return true, e.register(ctx, gc, eff.Target, effects.Record{
			Kind:        effects.KindRestriction,
			Restriction: eff.Restriction,
			Duration:    eff.Duration,
		})
	case ability.EntersExerted:
		if eff.Filter == nil {
			// The printed ability is read when the card enters play.
			return true, nil
		}
		filter := *eff.Filter
		s.Effects.Add(effects.Record{
			Source:     gc.sourceID(),
			Controller: gc.Player.ID,
			Kind:       effects.KindEntersExerted,
			Filter:     &filter,
			Duration:   e.duration(gc, ""),
		})
	default:
		return false, nil
	}
	return true, nil
}

// register stores a continuous effect. Static abilities that cover all
// matching cards keep the filter so later arrivals are affected too; every
// other target is resolved now and recorded by id.
func (e *Engine) register(ctx context.Context, gc *Context, target ability.Target, r effects.Record) error {
	s := gc.State
	r.Source = gc.sourceID()
	if gc.Player != nil {
		r.Controller = gc.Player.ID
	}
	r.Duration = e.duration(gc, r.Duration)
	if gc.static() && gc.Ability.Condition != nil {
		cond := *gc.Ability.Condition
		r.Condition = &cond
	}
	var affected []*game.Card
	if all, ok := target.(ability.AllCards); ok && gc.static() {
		filter := all.Filter
		r.Filter = &filter
		affected = s.InPlay()
	} else {
		targets, err := e.ResolveTargets(ctx, target, gc)
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return nil
		}
		for _, c := range targets {
			r.Targets = append(r.Targets, c.ID)
		}
		affected = targets
	}
	s.Effects.Add(r)
	for _, c := range affected {
		e.stats.Refresh(c, s)
	}
	return nil
}

// duration falls back to the ability's duration, then permanent.
func (e *Engine) duration(gc *Context, d ability.Duration) ability.Duration {
	if d != "" {
		return d
	}
	if gc.Ability != nil && gc.Ability.Duration != "" {
		return gc.Ability.Duration
	}
	return ability.Permanent
}
