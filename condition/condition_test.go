package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/game"
)

func setup() (*game.State, *game.Player, *game.Card) {
	you, opp := game.NewPlayer("p1"), game.NewPlayer("p2")
	s := game.NewState(1, you, opp)
	self := game.NewCard(&card.Card{Name: "Mulan", Version: "Elite Archer", Type: card.TypeCharacter, Strength: 2, Willpower: 3}, you, ability.ZonePlay)
	s.Put(self, ability.ZonePlay)
	ally := game.NewCard(&card.Card{Name: "Mushu", Type: card.TypeCharacter, Classifications: []string{"Ally"}}, you, ability.ZonePlay)
	s.Put(ally, ability.ZonePlay)
	foe := game.NewCard(&card.Card{Name: "Shan Yu", Type: card.TypeCharacter}, opp, ability.ZonePlay)
	s.Put(foe, ability.ZonePlay)
	foe.Damage = 1
	opp.Lore = 4
	you.Lore = 2
	return s, you, self
}

func TestEval(t *testing.T) {
	s, you, self := setup()
	ev, err := NewEvaluator()
	require.NoError(t, err)

	tests := []struct {
		cond ability.Condition
		want bool
	}{
		{ability.Condition{Kind: ability.CondYourTurn}, true},
		{ability.Condition{Kind: ability.CondNotYourTurn}, false},
		{ability.Condition{Kind: ability.CondSelfDamaged}, false},
		{ability.Condition{Kind: ability.CondSelfUndamaged}, true},
		{ability.Condition{Kind: ability.CondSelfExerted}, false},
		{ability.Condition{Kind: ability.CondOtherCharacters, Value: 1}, true},
		{ability.Condition{Kind: ability.CondOtherCharacters, Value: 2}, false},
		{ability.Condition{Kind: ability.CondNamedInPlay, Name: "Mushu"}, true},
		{ability.Condition{Kind: ability.CondNamedInPlay, Name: "Mulan - Elite Archer"}, true},
		{ability.Condition{Kind: ability.CondNamedInPlay, Name: "Shan Yu"}, false},
		{ability.Condition{Kind: ability.CondClassInPlay, Name: "Ally"}, true},
		{ability.Condition{Kind: ability.CondItemsInPlay, Value: 1}, false},
		{ability.Condition{Kind: ability.CondHandEmpty}, true},
		{ability.Condition{Kind: ability.CondOpponentMoreLore}, true},
		{ability.Condition{Kind: ability.CondLoreAtLeast, Value: 3}, false},
		{ability.Condition{Kind: ability.CondDamagedOpponentChar}, true},
		{ability.Condition{Kind: ability.CondExpr, Expr: "you.characters == 2 && opponent.characters == 1"}, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.cond.Kind), func(t *testing.T) {
			got, err := ev.Eval(&tt.cond, s, you, self)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvalTracksState(t *testing.T) {
	s, you, self := setup()
	cond := &ability.Condition{Kind: ability.CondSelfDamaged}
	assert.False(t, Default().Holds(cond, s, you, self))
	self.Damage = 2
	assert.True(t, Default().Holds(cond, s, you, self))
	s.EndTurn()
	assert.False(t, Default().Holds(&ability.Condition{Kind: ability.CondYourTurn}, s, you, self))
}

func TestEvalErrors(t *testing.T) {
	s, you, self := setup()
	ev := Default()

	ok, err := ev.Eval(nil, s, you, self)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = ev.Eval(&ability.Condition{Kind: "bogus"}, s, you, self)
	assert.Error(t, err)

	_, err = ev.Eval(&ability.Condition{Kind: ability.CondExpr, Expr: "you.lore + 1"}, s, you, self)
	assert.ErrorIs(t, err, ErrNotBool)

	assert.False(t, ev.Holds(&ability.Condition{Kind: ability.CondExpr, Expr: "you.lore >"}, s, you, self))
}
