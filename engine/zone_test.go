package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/choice"
	"github.com/SvenDH/inkwell/game"
)

// numbered builds a deck c0..c(n-1), bottom first.
func numbered(n int) []*card.Card {
	deck := make([]*card.Card, n)
	for i := range deck {
		deck[i] = character(fmt.Sprintf("c%d", i), 1, 1, 1)
	}
	return deck
}

func names(cards []*game.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Name())
	}
	return out
}

func byName(p *game.Player, name string) *game.Card {
	for _, c := range p.Deck.Cards() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func TestLookAndDistribute(t *testing.T) {
	tests := []struct {
		name    string
		eff     ability.LookAndDistribute
		payload map[string][]string
		want    []string
	}{
		{
			name:    "split between top and bottom",
			eff:     ability.LookAndDistribute{Amount: 3},
			payload: map[string][]string{"top": {"c3", "c5"}, "bottom": {"c4"}},
			want:    []string{"c4", "c0", "c1", "c2", "c5", "c3"},
		},
		{
			name:    "all to the bottom",
			eff:     ability.LookAndDistribute{Amount: 2},
			payload: map[string][]string{"bottom": {"c4", "c5"}},
			want:    []string{"c5", "c4", "c0", "c1", "c2", "c3"},
		},
		{
			name: "no answer keeps order",
			eff:  ability.LookAndDistribute{Amount: 3},
			want: []string{"c0", "c1", "c2", "c3", "c4", "c5"},
		},
		{
			name: "no answer with bottom only",
			eff:  ability.LookAndDistribute{Amount: 3, BottomOnly: true},
			want: []string{"c3", "c4", "c5", "c0", "c1", "c2"},
		},
		{
			name:    "missing card falls back",
			eff:     ability.LookAndDistribute{Amount: 3},
			payload: map[string][]string{"top": {"c5"}, "bottom": {"c4"}},
			want:    []string{"c0", "c1", "c2", "c3", "c4", "c5"},
		},
		{
			name:    "duplicate card falls back",
			eff:     ability.LookAndDistribute{Amount: 2},
			payload: map[string][]string{"top": {"c5", "c5"}},
			want:    []string{"c0", "c1", "c2", "c3", "c4", "c5"},
		},
		{
			name:    "bottom not allowed",
			eff:     ability.LookAndDistribute{Amount: 2, TopOnly: true},
			payload: map[string][]string{"top": {"c4"}, "bottom": {"c5"}},
			want:    []string{"c0", "c1", "c2", "c3", "c4", "c5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, p1, _ := newGame(numbered(6)...)
			var r choice.Requester
			if tt.payload != nil {
				ids := map[string][]string{}
				for pile, cards := range tt.payload {
					for _, name := range cards {
						ids[pile] = append(ids[pile], byName(p1, name).ID)
					}
				}
				r = choice.NewScript(choice.Response{Payload: ids})
			}
			e := newEngine(r)

			require.NoError(t, e.Execute(context.Background(), tt.eff, NewContext(s, p1, nil)))
			assert.Equal(t, tt.want, names(p1.Deck.Cards()))
		})
	}
}

func TestLookAndDistributeRequest(t *testing.T) {
	s, p1, _ := newGame(numbered(4)...)
	script := choice.NewScript()
	e := newEngine(script)

	require.NoError(t, e.Execute(context.Background(), ability.LookAndDistribute{Amount: 2, TopOnly: true}, NewContext(s, p1, nil)))
	require.Len(t, script.Requests(), 1)
	req := script.Requests()[0]
	assert.Equal(t, choice.KindDistribute, req.Type)
	assert.Equal(t, p1.ID, req.PlayerID)
	assert.Len(t, req.Options, 2)
	assert.Equal(t, true, req.Context["topOnly"])
}

func TestSearchDeck(t *testing.T) {
	deck := numbered(20)
	deck[7] = &card.Card{Name: "Quest Map", Type: card.TypeItem, Cost: 2}

	tests := []struct {
		name    string
		filter  ability.Filter
		shuffle *bool
	}{
		{"shuffles afterwards", ability.Filter{Types: []card.Type{card.TypeItem}}, nil},
		{"keeps order", ability.Filter{Types: []card.Type{card.TypeItem}}, ability.BoolPtr(false)},
		{"by name", ability.Filter{Name: "Quest Map"}, ability.BoolPtr(false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, p1, _ := newGame(deck...)
			before := names(p1.Deck.Cards())
			e := newEngine(nil)

			eff := ability.SearchDeck{Filter: tt.filter, Amount: 1, Shuffle: tt.shuffle}
			require.NoError(t, e.Execute(context.Background(), eff, NewContext(s, p1, nil)))

			require.Equal(t, 1, p1.Hand.Len())
			assert.Equal(t, "Quest Map", p1.Hand.Cards()[0].Name())
			assert.Equal(t, 19, p1.Deck.Len())

			rest := append(append([]string(nil), before[:7]...), before[8:]...)
			if tt.shuffle == nil {
				assert.NotEqual(t, rest, names(p1.Deck.Cards()))
				assert.ElementsMatch(t, rest, names(p1.Deck.Cards()))
			} else {
				assert.Equal(t, rest, names(p1.Deck.Cards()))
			}
		})
	}
}

func TestSearchDeckNothingFound(t *testing.T) {
	s, p1, _ := newGame(numbered(3)...)
	script := choice.NewScript()
	e := newEngine(script)

	eff := ability.SearchDeck{Filter: ability.Filter{Types: []card.Type{card.TypeLocation}}, Amount: 1, Shuffle: ability.BoolPtr(false)}
	require.NoError(t, e.Execute(context.Background(), eff, NewContext(s, p1, nil)))
	assert.Equal(t, 0, p1.Hand.Len())
	assert.Equal(t, 3, p1.Deck.Len())
	assert.Empty(t, script.Requests())
}

func TestLookAndTake(t *testing.T) {
	deck := numbered(6)
	deck[4] = &card.Card{Name: "song", Type: card.TypeAction, Cost: 1, Classifications: []string{"Song"}}
	s, p1, _ := newGame(deck...)
	e := newEngine(nil)

	eff := ability.LookAndTake{Amount: 3, Take: 1, Filter: ability.Filter{Types: []card.Type{card.TypeAction}}}
	require.NoError(t, e.Execute(context.Background(), eff, NewContext(s, p1, nil)))

	assert.Equal(t, []string{"song"}, names(p1.Hand.Cards()))
	// c5 was seen first, so it ends up just above c3 at the bottom.
	assert.Equal(t, []string{"c3", "c5", "c0", "c1", "c2"}, names(p1.Deck.Cards()))
}

func TestZoneMoves(t *testing.T) {
	tests := []struct {
		name     string
		eff      ability.Effect
		wantZone ability.Zone
		wantDeck int
	}{
		{"return to hand", ability.ReturnToHand{Target: ability.ChosenCharacter(ability.OwnerOpponent)}, ability.ZoneHand, 2},
		{"put on bottom", ability.PutOnBottom{Target: ability.ChosenCharacter(ability.OwnerOpponent)}, ability.ZoneDeck, 3},
		{"into inkwell", ability.PutIntoInkwell{Target: ability.ChosenCharacter(ability.OwnerOpponent), Exerted: true}, ability.ZoneInkwell, 2},
		{"shuffle into deck", ability.ShuffleIntoDeck{Target: ability.ChosenCharacter(ability.OwnerOpponent)}, ability.ZoneDeck, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, p1, p2 := newGame()
			for _, def := range numbered(2) {
				c := game.NewCard(def, p2, ability.ZoneDeck)
				s.Put(c, ability.ZoneDeck)
			}
			victim := inPlay(s, p2, character("victim", 3, 2, 2))
			victim.Damage = 1

			require.NoError(t, newEngine(nil).Execute(context.Background(), tt.eff, NewContext(s, p1, nil)))
			assert.Equal(t, tt.wantZone, victim.Zone)
			assert.Equal(t, 0, victim.Damage)
			assert.Equal(t, tt.wantDeck, p2.Deck.Len())
			assert.True(t, p2.Zone(tt.wantZone).Contains(victim))
		})
	}
}

func TestPutOnBottomGoesUnderDeck(t *testing.T) {
	s, p1, p2 := newGame()
	for _, def := range numbered(2) {
		s.Put(game.NewCard(def, p2, ability.ZoneDeck), ability.ZoneDeck)
	}
	victim := inPlay(s, p2, character("victim", 3, 2, 2))

	require.NoError(t, newEngine(nil).Execute(context.Background(), ability.PutOnBottom{Target: ability.ChosenCharacter(ability.OwnerOpponent)}, NewContext(s, p1, nil)))
	assert.Equal(t, ability.ZoneDeck, victim.Zone)
	assert.Equal(t, []string{"victim", "c0", "c1"}, names(p2.Deck.Cards()))
}

func TestMillAndInk(t *testing.T) {
	s, p1, p2 := newGame()
	for _, def := range numbered(4) {
		s.Put(game.NewCard(def, p2, ability.ZoneDeck), ability.ZoneDeck)
	}
	e := newEngine(nil)
	gc := NewContext(s, p1, nil)

	require.NoError(t, e.Execute(context.Background(), ability.Mill{Amount: 2, Player: ability.PlayerEachOpponent}, gc))
	assert.Equal(t, []string{"c3", "c2"}, names(p2.Discard.Cards()))

	require.NoError(t, e.Execute(context.Background(), ability.InkFromDeck{Amount: 1, Exerted: true, Player: ability.PlayerEachOpponent}, gc))
	require.Equal(t, 1, p2.Inkwell.Len())
	assert.Equal(t, "c1", p2.Inkwell.Cards()[0].Name())
	assert.Equal(t, 0, p2.AvailableInk())
}

func TestDiscard(t *testing.T) {
	tests := []struct {
		name     string
		eff      ability.Effect
		pick     string
		wantHand []string
	}{
		{"chosen", ability.Discard{Amount: 1}, "c1", []string{"c0", "c2"}},
		{"fallback", ability.Discard{Amount: 2}, "", []string{"c2"}},
		{"random", ability.Discard{Amount: 2, Random: true}, "", nil},
		{"whole hand", ability.DiscardHand{}, "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, p1, _ := newGame()
			var r choice.Requester
			for _, def := range numbered(3) {
				c := game.NewCard(def, p1, ability.ZoneHand)
				s.Put(c, ability.ZoneHand)
				if c.Name() == tt.pick {
					r = choice.NewScript(choice.Select(c.ID))
				}
			}

			require.NoError(t, newEngine(r).Execute(context.Background(), tt.eff, NewContext(s, p1, nil)))
			if tt.wantHand == nil {
				assert.Equal(t, 1, p1.Hand.Len())
				assert.Equal(t, 2, p1.Discard.Len())
				return
			}
			assert.Equal(t, tt.wantHand, names(p1.Hand.Cards()))
		})
	}
}

func TestReturnFromDiscard(t *testing.T) {
	s, p1, _ := newGame()
	s.Put(game.NewCard(&card.Card{Name: "spell", Type: card.TypeAction, Cost: 2}, p1, ability.ZoneDiscard), ability.ZoneDiscard)
	s.Put(game.NewCard(character("hero", 2, 1, 1), p1, ability.ZoneDiscard), ability.ZoneDiscard)

	eff := ability.ReturnFromDiscard{Filter: ability.Filter{Types: []card.Type{card.TypeCharacter}}, Amount: 1}
	require.NoError(t, newEngine(nil).Execute(context.Background(), eff, NewContext(s, p1, nil)))
	assert.Equal(t, []string{"hero"}, names(p1.Hand.Cards()))
	assert.Equal(t, []string{"spell"}, names(p1.Discard.Cards()))
}

func TestRevealTopConditional(t *testing.T) {
	tests := []struct {
		name     string
		top      *card.Card
		wantHand int
		wantDeck []string
	}{
		{"match goes to hand", character("hero", 2, 1, 1), 1, []string{"c0", "c1"}},
		{"miss goes to bottom", &card.Card{Name: "spell", Type: card.TypeAction}, 0, []string{"spell", "c0", "c1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, p1, _ := newGame(append(numbered(2), tt.top)...)
			eff := ability.RevealTopConditional{Filter: ability.Filter{Types: []card.Type{card.TypeCharacter}}}

			require.NoError(t, newEngine(nil).Execute(context.Background(), eff, NewContext(s, p1, nil)))
			assert.Equal(t, tt.wantHand, p1.Hand.Len())
			assert.Equal(t, tt.wantDeck, names(p1.Deck.Cards()))
		})
	}
}

func TestRevealHandSendsToOpponents(t *testing.T) {
	s, p1, p2 := newGame()
	s.Put(game.NewCard(character("hero", 2, 1, 1), p2, ability.ZoneHand), ability.ZoneHand)
	spell := game.NewCard(&card.Card{Name: "spell", Type: card.TypeAction, Cost: 2}, p2, ability.ZoneHand)
	s.Put(spell, ability.ZoneHand)
	mine, theirs := choice.NewScript(), choice.NewScript(choice.Select())
	e := newEngine(choice.Router{p1.ID: mine, p2.ID: theirs})

	eff := ability.RevealHand{Discard: &ability.Filter{Types: []card.Type{card.TypeAction}}}
	require.NoError(t, e.Execute(context.Background(), eff, NewContext(s, p1, nil)))

	require.Len(t, mine.Requests(), 2)
	assert.Equal(t, choice.KindReveal, mine.Requests()[0].Type)
	assert.Len(t, mine.Requests()[0].Options, 2)
	assert.Equal(t, []string{spell.ID}, mine.Requests()[1].ValidIDs())
	assert.Empty(t, theirs.Requests())
	assert.Equal(t, ability.ZoneDiscard, spell.Zone)
}
