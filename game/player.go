package game

import (
	"github.com/oklog/ulid/v2"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
)

// CostModifier changes the ink cost of matching cards a player plays.
// Positive amounts reduce the cost, negative amounts raise it.
type CostModifier struct {
	ID     string
	Source string
	// Controller is the player whose ability created the modifier. It may
	// sit in another player's list, as cost increases do.
	Controller string
	Amount     int
	Filter     ability.Filter
	Duration   ability.Duration
	// NextOnly modifiers are consumed by the first card they apply to.
	NextOnly bool
}

type Player struct {
	ID   string
	Name string
	Lore int

	Deck    Pile
	Hand    Pile
	Discard Pile
	Play    Pile
	Inkwell Pile

	CostModifiers []CostModifier
	// InkPlays is how many cards the player may still put into the inkwell
	// this turn.
	InkPlays int

	state *State
}

func NewPlayer(id string, deck ...*card.Card) *Player {
	p := &Player{ID: id, Name: id, InkPlays: 1}
	for _, def := range deck {
		p.Deck.Add(NewCard(def, p, ability.ZoneDeck))
	}
	return p
}

func (p *Player) State() *State { return p.state }

func (p *Player) Zone(zone ability.Zone) *Pile {
	switch zone {
	case ability.ZoneHand:
		return &p.Hand
	case ability.ZoneDeck:
		return &p.Deck
	case ability.ZoneDiscard:
		return &p.Discard
	case ability.ZonePlay:
		return &p.Play
	case ability.ZoneInkwell:
		return &p.Inkwell
	}
	return nil
}

// Characters returns the player's characters in play.
func (p *Player) Characters() []*Card {
	return p.InPlay(card.TypeCharacter)
}

func (p *Player) InPlay(t card.Type) []*Card {
	var found []*Card
	for _, c := range p.Play.Cards() {
		if c.Def.Type == t {
			found = append(found, c)
		}
	}
	return found
}

// AvailableInk counts ready cards in the inkwell.
func (p *Player) AvailableInk() int {
	n := 0
	for _, c := range p.Inkwell.Cards() {
		if !c.Exerted {
			n++
		}
	}
	return n
}

// PayInk exerts n ready ink cards. It pays nothing when the player cannot
// afford the full amount.
func (p *Player) PayInk(n int) bool {
	if p.AvailableInk() < n {
		return false
	}
	for _, c := range p.Inkwell.Cards() {
		if n == 0 {
			break
		}
		if !c.Exerted {
			c.Exerted = true
			n--
		}
	}
	return true
}

func (p *Player) GainLore(n int) {
	p.Lore += n
}

func (p *Player) LoseLore(n int) {
	p.Lore -= n
	if p.Lore < 0 {
		p.Lore = 0
	}
}

func (p *Player) AddCostModifier(m CostModifier) CostModifier {
	if m.ID == "" {
		m.ID = ulid.Make().String()
	}
	if m.Controller == "" {
		m.Controller = p.ID
	}
	p.CostModifiers = append(p.CostModifiers, m)
	return m
}

// CostOf folds every applicable cost modifier into the printed cost.
func (p *Player) CostOf(c *Card) int {
	cost := c.Def.Cost
	for _, m := range p.CostModifiers {
		if m.Filter.MatchStatic(c.Def) {
			cost -= m.Amount
		}
	}
	if cost < 0 {
		return 0
	}
	return cost
}

// ConsumeCostModifiers drops next-only modifiers that applied to c.
func (p *Player) ConsumeCostModifiers(c *Card) {
	kept := p.CostModifiers[:0]
	for _, m := range p.CostModifiers {
		if m.NextOnly && m.Filter.MatchStatic(c.Def) {
			continue
		}
		kept = append(kept, m)
	}
	p.CostModifiers = kept
}

// ExpireCostModifiers removes modifiers with the given duration.
func (p *Player) ExpireCostModifiers(d ability.Duration) {
	kept := p.CostModifiers[:0]
	for _, m := range p.CostModifiers {
		if m.Duration == d {
			continue
		}
		kept = append(kept, m)
	}
	p.CostModifiers = kept
}

// ExpireStartOfTurn removes "until the start of your next turn" modifiers
// controlled by the player whose turn is starting.
func (p *Player) ExpireStartOfTurn(controller string) {
	kept := p.CostModifiers[:0]
	for _, m := range p.CostModifiers {
		if m.Duration == ability.UntilStartOfNextTurn && m.Controller == controller {
			continue
		}
		kept = append(kept, m)
	}
	p.CostModifiers = kept
}

// RemoveCostModifiers drops every modifier created by the source card.
func (p *Player) RemoveCostModifiers(source string) {
	kept := p.CostModifiers[:0]
	for _, m := range p.CostModifiers {
		if m.Source != source {
			kept = append(kept, m)
		}
	}
	p.CostModifiers = kept
}

// Draw moves up to n cards from the top of the deck into the hand and
// returns the drawn cards.
func (p *Player) Draw(n int) []*Card {
	var drawn []*Card
	for i := 0; i < n; i++ {
		c := p.Deck.Pop()
		if c == nil {
			break
		}
		c.Zone = ability.ZoneHand
		p.Hand.Add(c)
		drawn = append(drawn, c)
		if p.state != nil {
			p.state.Emit(ability.EventCardDrawn, c)
		}
	}
	return drawn
}

func (p *Player) String() string { return p.Name }
