package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/choice"
	"github.com/SvenDH/inkwell/game"
)

var (
	ErrNotActivated = errors.New("engine: not an activated ability")
	ErrCannotPay    = errors.New("engine: cannot pay ability cost")
)

// Activate pays the costs of an activated ability of c and runs its effects.
// Nothing is paid when any part of the cost cannot be.
func (e *Engine) Activate(ctx context.Context, c *game.Card, def *ability.Definition, gc *Context) error {
	if def == nil || def.Kind != ability.Activated {
		return ErrNotActivated
	}
	if gc == nil {
		gc = NewContext(c.Owner.State(), c.Owner, c)
	}
	if def.OncePerTurn && c.Used[def.ID] {
		return fmt.Errorf("%w: already used this turn", ErrCannotPay)
	}
	gc.Ability = def
	paid, err := e.pay(ctx, gc, def.Costs)
	if err != nil {
		return err
	}
	if !paid {
		return ErrCannotPay
	}
	return e.Run(ctx, def, gc)
}

func (e *Engine) canPay(gc *Context, cost ability.Cost) bool {
	s := gc.State
	src := gc.Source
	switch cost.Kind {
	case ability.CostExert:
		if src == nil || !src.InPlay() || src.Exerted {
			return false
		}
		// Characters can't exert the turn they arrive unless they have Rush.
		fresh := src.IsCharacter() && src.EnteredTurn == s.Turn
		return !fresh || e.stats.HasKeyword(src, ability.Rush, s)
	case ability.CostInk:
		return gc.Player.AvailableInk() >= cost.Amount
	case ability.CostBanishSelf:
		return src != nil && src.InPlay()
	case ability.CostDiscard:
		return gc.Player.Hand.Len() >= max(cost.Amount, 1)
	case ability.CostExertCharacter:
		return len(e.readyOthers(gc)) >= max(cost.Amount, 1)
	}
	return false
}

func (e *Engine) readyOthers(gc *Context) []*game.Card {
	var ready []*game.Card
	for _, c := range gc.Player.Characters() {
		if !c.Exerted && c != gc.Source {
			ready = append(ready, c)
		}
	}
	return ready
}

// pay checks every cost first and then pays them in order.
func (e *Engine) pay(ctx context.Context, gc *Context, costs []ability.Cost) (bool, error) {
	ink := 0
	for _, cost := range costs {
		if cost.Kind == ability.CostInk {
			ink += cost.Amount
		}
		if !e.canPay(gc, cost) {
			return false, nil
		}
	}
	if gc.Player.AvailableInk() < ink {
		return false, nil
	}
	for _, cost := range costs {
		switch cost.Kind {
		case ability.CostExert:
			gc.Source.Exerted = true
		case ability.CostInk:
			gc.Player.PayInk(cost.Amount)
		case ability.CostBanishSelf:
			if err := e.banish(gc, gc.Source); err != nil {
				return false, err
			}
		case ability.CostDiscard:
			if err := e.discard(ctx, gc, gc.Player, max(cost.Amount, 1), false); err != nil {
				return false, err
			}
		case ability.CostExertCharacter:
			picked, err := e.pick(ctx, gc, selection{
				player: gc.Player,
				kind:   choice.KindTarget,
				prompt: "Choose a character to exert",
				cards:  e.readyOthers(gc),
				min:    max(cost.Amount, 1),
				max:    max(cost.Amount, 1),
			})
			if err != nil {
				return false, err
			}
			for _, c := range picked {
				c.Exerted = true
			}
		}
	}
	return true, nil
}

// EnterPlay moves c into play, registers its static abilities and exerts it
// when an effect says it enters exerted.
func (e *Engine) EnterPlay(ctx context.Context, s *game.State, c *game.Card) error {
	if c.InPlay() {
		return nil
	}
	if err := s.Move(c, ability.ZonePlay); err != nil {
		return err
	}
	if e.stats.EntersExerted(c, s) {
		c.Exerted = true
	}
	return e.RegisterStatics(ctx, s, c)
}

// PlayCard pays c's cost from its owner's ink and plays it. Next-only cost
// reductions that applied are used up. An action resolves and goes to the
// discard; any other card enters play before its play triggers fire.
func (e *Engine) PlayCard(ctx context.Context, s *game.State, c *game.Card) error {
	p := c.Owner
	cost := p.CostOf(c)
	if !p.PayInk(cost) {
		return fmt.Errorf("%w: %s costs %d, %d ink ready", ErrCannotPay, c.Def.FullName(), cost, p.AvailableInk())
	}
	p.ConsumeCostModifiers(c)
	e.log.Debug("card played", "card", c.ID, "player", p.ID, "cost", cost)

	if c.Type() != card.TypeAction {
		if err := e.EnterPlay(ctx, s, c); err != nil {
			return err
		}
		return e.Fire(ctx, s, ability.EventCardPlayed, c)
	}
	if err := e.Fire(ctx, s, ability.EventCardPlayed, c); err != nil {
		return err
	}
	if c.Zone == ability.ZoneHand {
		return s.Move(c, ability.ZoneDiscard)
	}
	return nil
}

// RegisterStatics runs the static abilities of a card in play. Keyword
// abilities are read from the card directly and are skipped.
func (e *Engine) RegisterStatics(ctx context.Context, s *game.State, c *game.Card) error {
	for i := range c.Abilities {
		def := &c.Abilities[i]
		if def.Kind != ability.Static || def.Keyword != "" {
			continue
		}
		if err := e.Run(ctx, def, NewContext(s, c.Owner, c)); err != nil {
			return err
		}
	}
	return nil
}

// TriggerMatches reports whether def, printed on source, fires for ev caused
// by trigger. trigger is nil for events without a card, such as turn start.
func (e *Engine) TriggerMatches(def *ability.Definition, ev ability.Event, source, trigger *game.Card, s *game.State) bool {
	if def.Kind != ability.Triggered || !def.HasEvent(ev) {
		return false
	}
	controller := source.Owner
	if trigger != nil {
		switch def.TriggerSubject {
		case ability.SubjectSelf, "":
			if trigger != source {
				return false
			}
		case ability.SubjectYours:
			if trigger.Owner != controller {
				return false
			}
		case ability.SubjectOtherYours:
			if trigger.Owner != controller || trigger == source {
				return false
			}
		case ability.SubjectOpposing:
			if trigger.Owner == controller {
				return false
			}
		}
		if def.TriggerFilter != nil && !e.stats.Matches(*def.TriggerFilter, trigger, s, controller, source) {
			return false
		}
	} else {
		// Events without a card, like turn start, are about whose turn it is.
		switch def.TriggerSubject {
		case ability.SubjectSelf, ability.SubjectYours, "":
			if !s.IsTurnOf(controller) {
				return false
			}
		case ability.SubjectOpposing:
			if s.IsTurnOf(controller) {
				return false
			}
		}
	}
	cond := e.stats.Conditions()
	for i := range def.EventConditions {
		if !cond.Holds(&def.EventConditions[i], s, controller, source) {
			return false
		}
	}
	return def.Condition == nil || cond.Holds(def.Condition, s, controller, source)
}

// Fire runs every triggered ability in play that matches ev, in player order.
func (e *Engine) Fire(ctx context.Context, s *game.State, ev ability.Event, trigger *game.Card) error {
	sources := s.InPlay()
	if trigger != nil && !trigger.InPlay() {
		// A card that just left play still sees its own leave-play trigger.
		sources = append(sources, trigger)
	}
	for _, src := range sources {
		for i := range src.Abilities {
			def := &src.Abilities[i]
			if !e.TriggerMatches(def, ev, src, trigger, s) {
				continue
			}
			gc := NewContext(s, src.Owner, src)
			gc.Event = ev
			gc.TriggerCard = trigger
			if err := e.Run(ctx, def, gc); err != nil {
				return err
			}
		}
	}
	return nil
}
