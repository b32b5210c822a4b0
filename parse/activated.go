package parse

import (
	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
)

var activatedTable = newTable(
	Pattern{Name: "cost_dash_effect", Priority: 0, Re: re(`^(.+?) — (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
		costs, err := parseCosts(m[1])
		if err != nil || len(costs) == 0 {
			return nil
		}
		effects := parseBody(m[2])
		if len(effects) == 0 {
			return nil
		}
		return &ability.Definition{Kind: ability.Activated, Costs: costs, Effects: effects}
	}},
)
