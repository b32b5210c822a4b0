// Package stats answers what a card currently looks like: its strength,
// willpower and lore, its keywords and restrictions. Every query folds the
// printed value with the active effects that apply right now; nothing is
// cached between queries.
package stats

import (
	"sync"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/condition"
	"github.com/SvenDH/inkwell/effects"
	"github.com/SvenDH/inkwell/game"
)

type Calculator struct {
	cond *condition.Evaluator
}

func New(cond *condition.Evaluator) *Calculator {
	if cond == nil {
		cond = condition.Default()
	}
	return &Calculator{cond: cond}
}

func (k *Calculator) Conditions() *condition.Evaluator { return k.cond }

func base(c *game.Card, stat ability.Stat) int {
	switch stat {
	case ability.Strength:
		return c.Def.Strength
	case ability.Willpower:
		return c.Def.Willpower
	case ability.Lore:
		return c.Def.Lore
	}
	return 0
}

func (k *Calculator) Strength(c *game.Card, s *game.State) int {
	return k.Stat(c, ability.Strength, s)
}

func (k *Calculator) Willpower(c *game.Card, s *game.State) int {
	return k.Stat(c, ability.Willpower, s)
}

func (k *Calculator) Lore(c *game.Card, s *game.State) int {
	return k.Stat(c, ability.Lore, s)
}

// Stat is the printed value plus every applicable modifier, floored at 0.
func (k *Calculator) Stat(c *game.Card, stat ability.Stat, s *game.State) int {
	return k.fold(c, stat, s, true)
}

func (k *Calculator) fold(c *game.Card, stat ability.Stat, s *game.State, perCount bool) int {
	v := base(c, stat)
	for _, r := range k.Applicable(c, s) {
		if r.Kind != effects.KindStat || r.Stat != stat {
			continue
		}
		if r.PerCount == nil {
			v += r.Amount
		} else if perCount {
			v += r.Amount * k.count(*r.PerCount, s, s.Player(r.Controller), s.Card(r.Source), false)
		}
	}
	if v < 0 {
		return 0
	}
	return v
}

// Refresh writes the folded stats into the card's displayed fields.
func (k *Calculator) Refresh(c *game.Card, s *game.State) {
	c.Strength = k.Strength(c, s)
	c.Willpower = k.Willpower(c, s)
	c.Lore = k.Lore(c, s)
}

// Applicable returns the records that modify c right now, oldest first.
func (k *Calculator) Applicable(c *game.Card, s *game.State) []effects.Record {
	if s == nil || s.Effects == nil {
		return nil
	}
	return s.Effects.Query(func(r effects.Record) bool {
		return k.applies(r, c, s)
	})
}

func (k *Calculator) applies(r effects.Record, c *game.Card, s *game.State) bool {
	controller := s.Player(r.Controller)
	source := s.Card(r.Source)
	if r.Filter != nil {
		if !c.InPlay() || !k.matches(*r.Filter, c, s, controller, source, false) {
			return false
		}
	} else if !r.TargetsCard(c.ID) {
		return false
	}
	if r.Condition != nil {
		return k.cond.Holds(r.Condition, s, controller, source)
	}
	return true
}

// HasKeyword reports printed keywords and granted ones.
func (k *Calculator) HasKeyword(c *game.Card, kw ability.Keyword, s *game.State) bool {
	if printedKeyword(c, kw) {
		return true
	}
	for _, r := range k.Applicable(c, s) {
		if r.Kind == effects.KindKeyword && r.Keyword == kw {
			return true
		}
	}
	return false
}

// KeywordValue sums the numeric values of a keyword, e.g. two Challenger +2
// sources give 4.
func (k *Calculator) KeywordValue(c *game.Card, kw ability.Keyword, s *game.State) (int, bool) {
	total, found := 0, false
	for _, a := range c.Abilities {
		if a.Keyword == kw {
			found = true
			if a.KeywordValue != nil {
				total += *a.KeywordValue
			}
		}
	}
	for _, r := range k.Applicable(c, s) {
		if r.Kind == effects.KindKeyword && r.Keyword == kw {
			found = true
			if r.KeywordValue != nil {
				total += *r.KeywordValue
			}
		}
	}
	return total, found
}

// ActiveKeywords lists printed keywords first, then granted ones, without
// duplicates.
func (k *Calculator) ActiveKeywords(c *game.Card, s *game.State) []ability.Keyword {
	var kws []ability.Keyword
	seen := map[ability.Keyword]bool{}
	add := func(kw ability.Keyword) {
		if kw != "" && !seen[kw] {
			seen[kw] = true
			kws = append(kws, kw)
		}
	}
	for _, a := range c.Abilities {
		add(a.Keyword)
	}
	for _, r := range k.Applicable(c, s) {
		if r.Kind == effects.KindKeyword {
			add(r.Keyword)
		}
	}
	return kws
}

func (k *Calculator) HasRestriction(c *game.Card, kind ability.RestrictionKind, s *game.State) bool {
	for _, r := range k.Applicable(c, s) {
		if r.Kind == effects.KindRestriction && r.Restriction == kind {
			return true
		}
	}
	return false
}

// EntersExerted reports whether some effect makes c enter play exerted.
func (k *Calculator) EntersExerted(c *game.Card, s *game.State) bool {
	for _, a := range c.Abilities {
		for _, e := range a.Effects {
			if ee, ok := e.(ability.EntersExerted); ok && ee.Filter == nil {
				return true
			}
		}
	}
	return len(s.Effects.Query(func(r effects.Record) bool {
		if r.Kind != effects.KindEntersExerted || r.Filter == nil {
			return false
		}
		return r.Filter.MatchStatic(c.Def) && ownerMatches(r.Filter.Owner, c, s.Player(r.Controller))
	})) > 0
}

func printedKeyword(c *game.Card, kw ability.Keyword) bool {
	for _, a := range c.Abilities {
		if a.Keyword == kw {
			return true
		}
	}
	return false
}

var (
	defaultOnce sync.Once
	defaultCalc *Calculator
)

func calc() *Calculator {
	defaultOnce.Do(func() { defaultCalc = New(nil) })
	return defaultCalc
}

func CurrentStrength(c *game.Card, s *game.State) int { return calc().Strength(c, s) }

func CurrentWillpower(c *game.Card, s *game.State) int { return calc().Willpower(c, s) }

func CurrentLore(c *game.Card, s *game.State) int { return calc().Lore(c, s) }

func HasKeyword(c *game.Card, kw ability.Keyword, s *game.State) bool {
	return calc().HasKeyword(c, kw, s)
}

func ActiveKeywords(c *game.Card, s *game.State) []ability.Keyword {
	return calc().ActiveKeywords(c, s)
}
