package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/SvenDH/inkwell/ability"
)

type metaFamily struct{ e *Engine }

func (f metaFamily) handle(ctx context.Context, eff ability.Effect, gc *Context) (bool, error) {
	e := f.e
	switch eff := eff.(type) {
	case ability.Conditional:
		cond := eff.Condition
		next := eff.Else
		if e.stats.Conditions().Holds(&cond, gc.State, gc.Player, gc.Source) {
			next = eff.Then
		}
		if next != nil {
			return true, e.Execute(ctx, next, gc)
		}
	case ability.PayToResolve:
		ok, err := e.confirm(ctx, gc, gc.Player, fmt.Sprintf("Pay %s?", eff.Cost))
		if err != nil || !ok {
			return true, err
		}
		paid, err := e.pay(ctx, gc, []ability.Cost{eff.Cost})
		if err != nil || !paid {
			return true, err
		}
		return true, e.Execute(ctx, eff.Inner, gc)
	case ability.May:
		if eff.Inner == nil {
			return true, nil
		}
		ok, err := e.confirm(ctx, gc, gc.Player, fmt.Sprintf("Use %s?", eff.Inner.Type()))
		if err != nil || !ok {
			return true, err
		}
		if err := e.Execute(ctx, eff.Inner, gc); err != nil {
			return true, err
		}
		if eff.Then != nil {
			return true, e.Execute(ctx, eff.Then, gc)
		}
	case ability.Sequence:
		for _, inner := range eff.Effects {
			if err := e.Execute(ctx, inner, gc); err != nil {
				return true, err
			}
		}
	case ability.ChooseOne:
		if len(eff.Options) == 0 {
			return true, nil
		}
		labels := make([]string, len(eff.Options))
		for i, o := range eff.Options {
			if i < len(eff.Labels) && eff.Labels[i] != "" {
				labels[i] = eff.Labels[i]
			} else {
				labels[i] = strings.ReplaceAll(string(o.Type()), "_", " ")
			}
		}
		i, err := e.mode(ctx, gc, labels)
		if err != nil {
			return true, err
		}
		return true, e.Execute(ctx, eff.Options[i], gc)
	default:
		return false, nil
	}
	return true, nil
}
