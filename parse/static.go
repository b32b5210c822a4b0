package parse

import (
	"strings"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
)

func static(effects ...ability.Effect) *ability.Definition {
	return &ability.Definition{Kind: ability.Static, Effects: effects}
}

// staticEffect parses a continuous statement like "your other characters
// get +1 {S}". Statements that pick targets or last for a turn are one-shot
// effects and are rejected.
func staticEffect(text string) ability.Effect {
	if strings.Contains(strings.ToLower(text), "this turn") {
		return nil
	}
	st := &clauseState{}
	e := st.clause(text)
	if e == nil || chooses(e) {
		return nil
	}
	switch e.(type) {
	case ability.ModifyStats, ability.ModifyStatsPerCount, ability.GrantKeyword, ability.Restriction, ability.Sequence:
		return e
	}
	return nil
}

// chooses reports whether an effect asks for a chosen target.
func chooses(e ability.Effect) bool {
	var t ability.Target
	switch e := e.(type) {
	case ability.ModifyStats:
		t = e.Target
	case ability.ModifyStatsPerCount:
		t = e.Target
	case ability.GrantKeyword:
		t = e.Target
	case ability.Restriction:
		t = e.Target
	case ability.Sequence:
		for _, inner := range e.Effects {
			if chooses(inner) {
				return true
			}
		}
		return false
	}
	_, ok := t.(ability.Chosen)
	return ok
}

var staticTable Table

func init() {
	staticTable = newTable(
		Pattern{Name: "sing_cost", Priority: 0, Re: singRe, Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			if m[2] != "" {
				return nil
			}
			return static(ability.SingCost{Value: mustNumber(m[1])})
		}},
		Pattern{Name: "enters_exerted_self", Priority: 10, Re: re(`^this (?:character|item|location) enters play exerted\.?$`), Build: func([]string, *card.Card, string) *ability.Definition {
			return static(ability.EntersExerted{})
		}},
		Pattern{Name: "enters_exerted_opposing", Priority: 11, Re: re(`^(opposing .+?) enters? play exerted\.?$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			f, ok := parseFilter(m[1])
			if !ok {
				return nil
			}
			return static(ability.EntersExerted{Filter: &f})
		}},
		Pattern{Name: "cost_reduction", Priority: 20, Re: re(`^you pay (\w+) \{i\} less to play (.+?)\.?$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			if strings.Contains(strings.ToLower(m[2]), "this turn") {
				return nil
			}
			f, ok := parseFilter(m[2])
			if !ok {
				return nil
			}
			return static(ability.CostReduction{Amount: mustNumber(m[1]), Filter: f})
		}},
		Pattern{Name: "cost_reduction_played", Priority: 21, Re: re(`^(.+?) you play costs? (\w+) (?:\{i\} )?less(?: to play)?\.?$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			f, ok := parseFilter(m[1])
			if !ok {
				return nil
			}
			return static(ability.CostReduction{Amount: mustNumber(m[2]), Filter: f})
		}},
		Pattern{Name: "cost_increase", Priority: 25, Re: re(`^opponents pay (\w+) \{i\} more to play (.+?)\.?$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			f, ok := parseFilter(m[2])
			if !ok {
				return nil
			}
			return static(ability.CostIncrease{Amount: mustNumber(m[1]), Filter: f})
		}},
		Pattern{Name: "extra_ink", Priority: 30, Re: re(`^(?:once )?(?:during your turn, )?you may put an additional card from your hand into your inkwell(?: each turn)?\.?$`), Build: func([]string, *card.Card, string) *ability.Definition {
			return static(ability.ExtraInkPlay{Amount: 1})
		}},
		Pattern{Name: "while_condition", Priority: 40, Re: re(`^((?:while|during) [^,]+), (.+?)\.?$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			cond, ok := parseCondition(m[1])
			if !ok {
				return nil
			}
			e := staticEffect(m[2])
			if e == nil {
				return nil
			}
			def := static(e)
			def.Condition = &cond
			def.Duration = ability.WhileCondition
			return def
		}},
		Pattern{Name: "subject", Priority: 90, Re: re(`^(.+?) (?:gets?|gains?|has|can't|cannot) (.+?)\.?$`), Build: func(_ []string, _ *card.Card, text string) *ability.Definition {
			e := staticEffect(text)
			if e == nil {
				return nil
			}
			return static(e)
		}},
	)
}
