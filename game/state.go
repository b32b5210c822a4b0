// Package game is the mutable game state the engine runs against: players,
// their zones and the card instances in them.
package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/effects"
)

var (
	ErrUnknownZone = errors.New("game: unknown zone")
	ErrNotInZone   = errors.New("game: card is not in its recorded zone")
	ErrUnknownCard = errors.New("game: unknown card")
)

type EventHandler func(ev ability.Event, c *Card)

type State struct {
	Players []*Player
	// Active is the index of the player whose turn it is.
	Active  int
	Turn    int
	Effects *effects.Store

	rng      *rand.Rand
	handlers map[ability.Event][]EventHandler
}

func NewState(seed int64, players ...*Player) *State {
	s := &State{
		Players:  players,
		Turn:     1,
		Effects:  effects.NewStore(),
		rng:      rand.New(rand.NewSource(seed)),
		handlers: map[ability.Event][]EventHandler{},
	}
	for _, p := range players {
		p.state = s
	}
	return s
}

func (s *State) Rand() *rand.Rand { return s.rng }

func (s *State) Player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *State) ActivePlayer() *Player {
	if len(s.Players) == 0 {
		return nil
	}
	return s.Players[s.Active%len(s.Players)]
}

func (s *State) IsTurnOf(p *Player) bool { return s.ActivePlayer() == p }

func (s *State) Opponents(p *Player) []*Player {
	var opps []*Player
	for _, o := range s.Players {
		if o != p {
			opps = append(opps, o)
		}
	}
	return opps
}

// Opponent returns the first opponent of p, or nil in a solo game.
func (s *State) Opponent(p *Player) *Player {
	opps := s.Opponents(p)
	if len(opps) == 0 {
		return nil
	}
	return opps[0]
}

// InPlay returns every card in play, in player order.
func (s *State) InPlay() []*Card {
	var cards []*Card
	for _, p := range s.Players {
		cards = append(cards, p.Play.Cards()...)
	}
	return cards
}

func (s *State) Card(id string) *Card {
	for _, p := range s.Players {
		for _, zone := range []*Pile{&p.Play, &p.Hand, &p.Discard, &p.Inkwell, &p.Deck} {
			for _, c := range zone.Cards() {
				if c.ID == id {
					return c
				}
			}
		}
	}
	return nil
}

// Put places a new card instance straight into a zone. It is meant for game
// setup; no events are emitted.
func (s *State) Put(c *Card, zone ability.Zone) {
	pile := c.Owner.Zone(zone)
	c.Zone = zone
	if zone == ability.ZonePlay {
		c.EnteredTurn = s.Turn
	}
	pile.Add(c)
}

// Move takes c out of its current zone and puts it on top of the owner's
// destination zone. A card leaving play loses its damage and every active
// effect it sourced or was targeted by.
func (s *State) Move(c *Card, to ability.Zone) error {
	return s.move(c, to, false)
}

// MoveToBottom is Move that places the card at the bottom of the zone.
func (s *State) MoveToBottom(c *Card, to ability.Zone) error {
	return s.move(c, to, true)
}

func (s *State) move(c *Card, to ability.Zone, bottom bool) error {
	if c == nil {
		return ErrUnknownCard
	}
	from := c.Owner.Zone(c.Zone)
	dest := c.Owner.Zone(to)
	if from == nil || dest == nil {
		return fmt.Errorf("%w: %s -> %s", ErrUnknownZone, c.Zone, to)
	}
	if !from.Remove(c) {
		return fmt.Errorf("%w: %s in %s", ErrNotInZone, c.ID, c.Zone)
	}
	prev := c.Zone
	if prev == ability.ZonePlay && to != ability.ZonePlay {
		s.Effects.RemoveSource(c.ID)
		s.Effects.RemoveTarget(c.ID)
		for _, p := range s.Players {
			p.RemoveCostModifiers(c.ID)
		}
		c.reset()
	}
	if to != ability.ZonePlay && to != ability.ZoneInkwell {
		c.Exerted = false
	}
	c.Zone = to
	if bottom {
		dest.AddBottom(c)
	} else {
		dest.Add(c)
	}
	if to == ability.ZonePlay && prev != ability.ZonePlay {
		c.EnteredTurn = s.Turn
		c.Used = nil
	}
	return nil
}

func (s *State) Subscribe(ev ability.Event, h EventHandler) {
	s.handlers[ev] = append(s.handlers[ev], h)
}

func (s *State) Emit(ev ability.Event, c *Card) {
	for _, h := range s.handlers[ev] {
		h(ev, c)
	}
}

// EndTurn sweeps this-turn effects and passes the turn to the next player,
// whose until-start-of-next-turn effects then expire.
func (s *State) EndTurn() {
	s.Emit(ability.EventTurnEnd, nil)
	s.Effects.ExpireEndOfTurn()
	for _, p := range s.Players {
		p.ExpireCostModifiers(ability.ThisTurn)
	}
	s.Active = (s.Active + 1) % len(s.Players)
	s.Turn++
	next := s.ActivePlayer()
	s.Effects.ExpireStartOfTurn(next.ID)
	for _, p := range s.Players {
		p.ExpireStartOfTurn(next.ID)
	}
	next.InkPlays = 1
	for _, c := range next.Play.Cards() {
		c.Used = nil
	}
	s.Emit(ability.EventTurnStart, nil)
}
