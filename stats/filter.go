package stats

import (
	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/game"
)

// Matches checks f against c using current stats and keywords. Owner is
// relative to controller and ExcludeSelf to source.
func (k *Calculator) Matches(f ability.Filter, c *game.Card, s *game.State, controller *game.Player, source *game.Card) bool {
	return k.matches(f, c, s, controller, source, true)
}

// matches with current false compares printed stats and printed keywords,
// which is what record targeting uses so a filter cannot depend on the
// records it selects.
func (k *Calculator) matches(f ability.Filter, c *game.Card, s *game.State, controller *game.Player, source *game.Card, current bool) bool {
	if c == nil || !f.MatchStatic(c.Def) {
		return false
	}
	if f.ExcludeSelf && source != nil && c.ID == source.ID {
		return false
	}
	if !ownerMatches(f.Owner, c, controller) {
		return false
	}
	if f.Damaged != nil && *f.Damaged != c.Damaged() {
		return false
	}
	if f.Exerted != nil && *f.Exerted != c.Exerted {
		return false
	}
	str, will := c.Def.Strength, c.Def.Willpower
	if current {
		str, will = k.Strength(c, s), k.Willpower(c, s)
	}
	if !f.Strength.Match(str) || !f.Willpower.Match(will) {
		return false
	}
	if f.Keyword != "" {
		if current {
			return k.HasKeyword(c, f.Keyword, s)
		}
		return printedKeyword(c, f.Keyword)
	}
	return true
}

func ownerMatches(owner ability.Owner, c *game.Card, controller *game.Player) bool {
	switch owner {
	case ability.OwnerYou:
		return controller == nil || c.Owner == controller
	case ability.OwnerOpponent:
		return controller == nil || c.Owner != controller
	}
	return true
}

// Count evaluates a count for an ability controlled by controller.
func (k *Calculator) Count(cnt ability.Count, s *game.State, controller *game.Player, source *game.Card) int {
	return k.count(cnt, s, controller, source, true)
}

func (k *Calculator) count(cnt ability.Count, s *game.State, controller *game.Player, source *game.Card, current bool) int {
	f := cnt.Filter
	if cnt.Owner != ability.OwnerAny {
		f.Owner = cnt.Owner
	}
	zoneCount := func(zone ability.Zone) int {
		n := 0
		for _, p := range s.Players {
			if f.Owner == ability.OwnerYou && p != controller {
				continue
			}
			if f.Owner == ability.OwnerOpponent && p == controller {
				continue
			}
			for _, c := range p.Zone(zone).Cards() {
				if k.matches(f, c, s, controller, source, current) {
					n++
				}
			}
		}
		return n
	}
	switch cnt.Kind {
	case ability.CountInPlay:
		if len(f.Types) == 0 {
			f.Types = []card.Type{card.TypeCharacter}
		}
		return zoneCount(ability.ZonePlay)
	case ability.CountInHand:
		if f.Owner == ability.OwnerAny {
			f.Owner = ability.OwnerYou
		}
		return zoneCount(ability.ZoneHand)
	case ability.CountInDiscard:
		if f.Owner == ability.OwnerAny {
			f.Owner = ability.OwnerYou
		}
		return zoneCount(ability.ZoneDiscard)
	case ability.CountSelfStat:
		if source == nil {
			return 0
		}
		return k.fold(source, cnt.Stat, s, false)
	case ability.CountSelfDamage:
		if source == nil {
			return 0
		}
		return source.Damage
	}
	return 0
}

func Count(cnt ability.Count, s *game.State, controller *game.Player, source *game.Card) int {
	return calc().Count(cnt, s, controller, source)
}
