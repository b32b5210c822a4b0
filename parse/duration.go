package parse

import (
	"strings"

	"github.com/SvenDH/inkwell/ability"
)

// inferDuration fills in the duration of a definition and its continuous
// effects from the source text when no clause set one.
func inferDuration(def *ability.Definition) {
	if def.Duration == "" {
		lower := strings.ToLower(def.Text)
		switch {
		case strings.Contains(lower, "until the start of your next turn"):
			def.Duration = ability.UntilStartOfNextTurn
		case strings.Contains(lower, "this turn"):
			def.Duration = ability.ThisTurn
		case def.Condition != nil && def.Kind == ability.Static:
			def.Duration = ability.WhileCondition
		default:
			def.Duration = ability.Permanent
		}
	}
	for i, e := range def.Effects {
		def.Effects[i] = withDuration(e, def.Duration)
	}
}

// withDuration sets d on e and its nested effects where they have none.
func withDuration(e ability.Effect, d ability.Duration) ability.Effect {
	switch e := e.(type) {
	case ability.ModifyStats:
		if e.Duration == "" {
			e.Duration = d
		}
		return e
	case ability.ModifyStatsPerCount:
		if e.Duration == "" {
			e.Duration = d
		}
		return e
	case ability.GrantKeyword:
		if e.Duration == "" {
			e.Duration = d
		}
		return e
	case ability.Restriction:
		if e.Duration == "" {
			e.Duration = d
		}
		return e
	case ability.CostReduction:
		if e.Duration == "" {
			e.Duration = d
		}
		return e
	case ability.CostIncrease:
		if e.Duration == "" {
			e.Duration = d
		}
		return e
	case ability.Sequence:
		out := make([]ability.Effect, len(e.Effects))
		for i, inner := range e.Effects {
			out[i] = withDuration(inner, d)
		}
		e.Effects = out
		return e
	case ability.May:
		e.Inner = withDuration(e.Inner, d)
		if e.Then != nil {
			e.Then = withDuration(e.Then, d)
		}
		return e
	case ability.Conditional:
		e.Then = withDuration(e.Then, d)
		if e.Else != nil {
			e.Else = withDuration(e.Else, d)
		}
		return e
	case ability.PayToResolve:
		e.Inner = withDuration(e.Inner, d)
		return e
	case ability.ChooseOne:
		out := make([]ability.Effect, len(e.Options))
		for i, inner := range e.Options {
			out[i] = withDuration(inner, d)
		}
		e.Options = out
		return e
	}
	return e
}
