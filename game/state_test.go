package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/effects"
)

func character(name string, cost, str, will int) *card.Card {
	return &card.Card{ID: name, Name: name, Type: card.TypeCharacter, Cost: cost, Strength: str, Willpower: will, Lore: 1}
}

func names(cards []*Card) []string {
	var out []string
	for _, c := range cards {
		out = append(out, c.Name())
	}
	return out
}

func TestPileTopIsLast(t *testing.T) {
	p := NewPlayer("p1", character("a", 1, 1, 1), character("b", 1, 1, 1), character("c", 1, 1, 1))

	assert.Equal(t, []string{"c", "b"}, names(p.Deck.Top(2)))
	assert.Equal(t, []string{"c", "b", "a"}, names(p.Deck.Top(5)))

	drawn := p.Draw(1)
	require.Len(t, drawn, 1)
	assert.Equal(t, "c", drawn[0].Name())
	assert.Equal(t, ability.ZoneHand, drawn[0].Zone)
	assert.Equal(t, 2, p.Deck.Len())

	p.Deck.AddBottom(drawn[0])
	assert.Equal(t, []string{"c", "a", "b"}, names(p.Deck.Cards()))
}

func TestDrawFromShortDeck(t *testing.T) {
	p := NewPlayer("p1", character("a", 1, 1, 1))
	assert.Len(t, p.Draw(3), 1)
	assert.Nil(t, p.Deck.Pop())
}

func TestShuffleIsSeeded(t *testing.T) {
	deck := func() *Player {
		var defs []*card.Card
		for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			defs = append(defs, character(n, 1, 1, 1))
		}
		return NewPlayer("p1", defs...)
	}
	p1, p2 := deck(), deck()
	s1, s2 := NewState(7, p1), NewState(7, p2)
	p1.Deck.Shuffle(s1.Rand())
	p2.Deck.Shuffle(s2.Rand())
	assert.Equal(t, names(p1.Deck.Cards()), names(p2.Deck.Cards()))
	assert.Len(t, p1.Deck.Cards(), 8)
}

func TestMoveLeavingPlayClearsState(t *testing.T) {
	p := NewPlayer("p1")
	s := NewState(1, p, NewPlayer("p2"))
	c := NewCard(character("hero", 3, 3, 4), p, ability.ZoneHand)
	s.Put(c, ability.ZonePlay)
	c.Damage = 2
	c.Exerted = true
	s.Effects.Add(effects.Record{Source: c.ID, Kind: effects.KindStat})
	s.Effects.Add(effects.Record{Source: "other", Targets: []string{c.ID}, Kind: effects.KindStat})
	s.Effects.Add(effects.Record{Source: "other", Targets: []string{"someone"}, Kind: effects.KindStat})

	require.NoError(t, s.Move(c, ability.ZoneHand))
	assert.Equal(t, 0, c.Damage)
	assert.False(t, c.Exerted)
	assert.True(t, p.Hand.Contains(c))
	assert.False(t, p.Play.Contains(c))
	assert.Equal(t, 1, s.Effects.Len())

	assert.ErrorIs(t, s.Move(c, ability.Zone("limbo")), ErrUnknownZone)
	c.Zone = ability.ZoneDiscard
	assert.ErrorIs(t, s.Move(c, ability.ZoneDeck), ErrNotInZone)
}

func TestCostModifiers(t *testing.T) {
	p := NewPlayer("p1")
	song := &card.Card{Name: "tune", Type: card.TypeAction, Cost: 3, Classifications: []string{"Song"}}
	hero := character("hero", 4, 1, 1)
	s := NewState(1, p)
	tune, champ := NewCard(song, p, ability.ZoneHand), NewCard(hero, p, ability.ZoneHand)
	s.Put(tune, ability.ZoneHand)
	s.Put(champ, ability.ZoneHand)

	p.AddCostModifier(CostModifier{Amount: 1, Filter: ability.Filter{Types: []card.Type{card.TypeCharacter}}, Duration: ability.ThisTurn, NextOnly: true})
	p.AddCostModifier(CostModifier{Amount: 2, Duration: ability.ThisTurn})
	p.AddCostModifier(CostModifier{Amount: 5, Filter: ability.Filter{Classifications: []string{"song"}}})

	assert.Equal(t, 1, p.CostOf(champ))
	assert.Equal(t, 0, p.CostOf(tune))

	p.ConsumeCostModifiers(champ)
	assert.Equal(t, 2, p.CostOf(champ))
	assert.Len(t, p.CostModifiers, 2)

	p.ExpireCostModifiers(ability.ThisTurn)
	assert.Equal(t, 4, p.CostOf(champ))
}

func TestLeavingPlayRemovesCostModifiers(t *testing.T) {
	p1, p2 := NewPlayer("p1"), NewPlayer("p2")
	s := NewState(1, p1, p2)
	mentor := NewCard(character("mentor", 2, 1, 1), p1, ability.ZoneHand)
	s.Put(mentor, ability.ZonePlay)
	hero := NewCard(character("hero", 4, 1, 1), p1, ability.ZoneHand)
	s.Put(hero, ability.ZoneHand)

	p1.AddCostModifier(CostModifier{Source: mentor.ID, Amount: 1})
	p2.AddCostModifier(CostModifier{Source: mentor.ID, Amount: -1})
	p1.AddCostModifier(CostModifier{Source: "elsewhere", Amount: 1})
	assert.Equal(t, 2, p1.CostOf(hero))

	require.NoError(t, s.Move(mentor, ability.ZoneDiscard))
	assert.Equal(t, 3, p1.CostOf(hero))
	assert.Len(t, p1.CostModifiers, 1)
	assert.Empty(t, p2.CostModifiers)
}

func TestPayInk(t *testing.T) {
	p := NewPlayer("p1")
	s := NewState(1, p)
	for i := 0; i < 3; i++ {
		s.Put(NewCard(character("ink", 1, 1, 1), p, ability.ZoneInkwell), ability.ZoneInkwell)
	}
	assert.False(t, p.PayInk(4))
	assert.Equal(t, 3, p.AvailableInk())
	assert.True(t, p.PayInk(2))
	assert.Equal(t, 1, p.AvailableInk())
}

func TestEndTurnSweeps(t *testing.T) {
	p1, p2 := NewPlayer("p1"), NewPlayer("p2")
	s := NewState(1, p1, p2)
	s.Effects.Add(effects.Record{ID: "turn", Duration: ability.ThisTurn})
	s.Effects.Add(effects.Record{ID: "p2-next", Controller: "p2", Duration: ability.UntilStartOfNextTurn})
	s.Effects.Add(effects.Record{ID: "p1-next", Controller: "p1", Duration: ability.UntilStartOfNextTurn})

	var events []ability.Event
	s.Subscribe(ability.EventTurnStart, func(ev ability.Event, _ *Card) { events = append(events, ev) })
	s.EndTurn()

	assert.Equal(t, p2, s.ActivePlayer())
	assert.Equal(t, 2, s.Turn)
	assert.Equal(t, []ability.Event{ability.EventTurnStart}, events)
	require.Len(t, s.Effects.All(), 1)
	assert.Equal(t, "p1-next", s.Effects.All()[0].ID)
}

func TestCostModifiersExpireByController(t *testing.T) {
	p1, p2 := NewPlayer("p1"), NewPlayer("p2")
	s := NewState(1, p1, p2)
	spell := NewCard(&card.Card{Name: "spell", Type: card.TypeAction, Cost: 3}, p2, ability.ZoneHand)
	s.Put(spell, ability.ZoneHand)

	p2.AddCostModifier(CostModifier{Controller: "p1", Amount: -2, Duration: ability.UntilStartOfNextTurn})
	p2.AddCostModifier(CostModifier{Amount: 1, Duration: ability.UntilStartOfNextTurn})
	assert.Equal(t, "p2", p2.CostModifiers[1].Controller)
	assert.Equal(t, 4, p2.CostOf(spell))

	s.EndTurn()
	assert.Equal(t, p2, s.ActivePlayer())
	assert.Equal(t, 5, p2.CostOf(spell))

	s.EndTurn()
	assert.Equal(t, p1, s.ActivePlayer())
	assert.Equal(t, 3, p2.CostOf(spell))
	assert.Empty(t, p2.CostModifiers)
}
