package engine

import (
	"context"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/choice"
	"github.com/SvenDH/inkwell/game"
)

type costFamily struct{ e *Engine }

func (f costFamily) handle(ctx context.Context, eff ability.Effect, gc *Context) (bool, error) {
	e := f.e
	switch eff := eff.(type) {
	case ability.CostReduction:
		gc.Player.AddCostModifier(game.CostModifier{
			Source:     e.modifierSource(gc),
			Controller: gc.Player.ID,
			Amount:     eff.Amount,
			Filter:     eff.Filter,
			Duration:   e.duration(gc, eff.Duration),
			NextOnly:   eff.NextOnly,
		})
	case ability.CostIncrease:
		for _, opp := range gc.State.Opponents(gc.Player) {
			opp.AddCostModifier(game.CostModifier{
				Source:     e.modifierSource(gc),
				Controller: gc.Player.ID,
				Amount:     -eff.Amount,
				Filter:     eff.Filter,
				Duration:   e.duration(gc, eff.Duration),
			})
		}
	case ability.PlayForFree:
		from := eff.From
		if from == "" {
			from = ability.ZoneHand
		}
		var candidates []*game.Card
		for _, c := range gc.Player.Zone(from).Cards() {
			if eff.Filter.MatchStatic(c.Def) {
				candidates = append(candidates, c)
			}
		}
		picked, err := e.pick(ctx, gc, selection{
			player:   gc.Player,
			kind:     choice.KindTarget,
			prompt:   "Choose a card to play for free",
			cards:    candidates,
			min:      0,
			max:      1,
			optional: true,
		})
		if err != nil {
			return true, err
		}
		for _, c := range picked {
			if err := e.EnterPlay(ctx, gc.State, c); err != nil {
				return true, err
			}
			gc.State.Emit(ability.EventCardPlayed, c)
		}
	case ability.ExtraInkPlay:
		gc.Player.InkPlays += max(eff.Amount, 1)
	case ability.SingCost:
		// Read from the printed ability by CanSing.
	default:
		return false, nil
	}
	return true, nil
}

// modifierSource ties a cost modifier to its card only for static
// abilities, whose modifiers end when the card leaves play.
func (e *Engine) modifierSource(gc *Context) string {
	if gc.static() {
		return gc.sourceID()
	}
	return ""
}

// SingValue is the cost a character needs to sing song. Songs without a
// sing cost ability use their own cost.
func SingValue(song *game.Card) int {
	for _, a := range song.Abilities {
		for _, eff := range a.Effects {
			if sc, ok := eff.(ability.SingCost); ok {
				return sc.Value
			}
		}
	}
	return song.Def.Cost
}

// CanSing reports whether singer may exert to sing song.
func (e *Engine) CanSing(singer, song *game.Card, s *game.State) bool {
	if !song.Def.IsSong() || singer.Type() != card.TypeCharacter || !singer.InPlay() || singer.Exerted {
		return false
	}
	if e.stats.HasRestriction(singer, ability.CantSing, s) {
		return false
	}
	value := singer.Def.Cost
	if v, ok := e.stats.KeywordValue(singer, ability.Singer, s); ok && v > value {
		value = v
	}
	return value >= SingValue(song)
}
