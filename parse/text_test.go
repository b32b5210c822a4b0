package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		known string
		want  string
	}{
		{"reminder", "Evasive (Only characters with Evasive can challenge this character.)", "", "Evasive"},
		{"sing reminder kept", "(A character with cost 2 or more can {E} to sing this song for free.)", "", "A character with cost 2 or more can {E} to sing this song for free."},
		{"caps flavor name", "HEAVY LIFTING This character gets +1 {S}.", "", "This character gets +1 {S}."},
		{"title flavor name", "Brave Little Tailor Whenever this character quests, draw a card.", "", "Whenever this character quests, draw a card."},
		{"entry name", "GOOD JOB! Whenever this character quests, draw a card.", "GOOD JOB!", "Whenever this character quests, draw a card."},
		{"curated name", "WHEN YOU WISH UPON A STAR Draw 2 cards.", "", "Draw 2 cards."},
		{"action verb start", "Deal 2 damage to chosen character.", "", "Deal 2 damage to chosen character."},
		{"rule word start", "Opposing characters enter play exerted.", "", "Opposing characters enter play exerted."},
		{"lowercase prefix is not a name", "Once per turn, when this character quests, gain 1 lore.", "", "Once per turn, when this character quests, gain 1 lore."},
		{"whitespace and dash", "{E}  -\n Draw a card.", "", "{E} — Draw a card."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preprocess(tt.text, tt.known))
		})
	}
}

func TestSplitCompound(t *testing.T) {
	first, second, ok := splitCompound("When you play this character and whenever she quests, gain 1 lore.")
	require.True(t, ok)
	assert.Equal(t, "When you play this character, gain 1 lore.", first)
	assert.Equal(t, "Whenever she quests, gain 1 lore.", second)

	_, _, ok = splitCompound("When you play this character, gain 1 lore.")
	assert.False(t, ok)
}

func TestParseKeywords(t *testing.T) {
	type kw struct {
		keyword ability.Keyword
		value   *int
	}
	tests := []struct {
		text string
		want []kw
	}{
		{"Evasive", []kw{{ability.Evasive, nil}}},
		{"Singer 5", []kw{{ability.Singer, ability.IntPtr(5)}}},
		{"Challenger +2", []kw{{ability.Challenger, ability.IntPtr(2)}}},
		{"Shift 5 {I}", []kw{{ability.Shift, ability.IntPtr(5)}}},
		{"Universal Shift 4", []kw{{ability.UniversalShift, ability.IntPtr(4)}}},
		{"Bodyguard, Ward", []kw{{ability.Bodyguard, nil}, {ability.Ward, nil}}},
		{"Evasive and more", nil},
		{"Rushing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var got []kw
			for _, def := range parseKeywords(tt.text) {
				got = append(got, kw{def.Keyword, def.KeywordValue})
				assert.Equal(t, ability.Static, def.Kind)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCosts(t *testing.T) {
	tests := []struct {
		text    string
		want    []ability.Cost
		wantErr bool
	}{
		{text: "{E}", want: []ability.Cost{{Kind: ability.CostExert}}},
		{text: "{E}, 2 {I}", want: []ability.Cost{{Kind: ability.CostExert}, {Kind: ability.CostInk, Amount: 2}}},
		{text: "1 {I}", want: []ability.Cost{{Kind: ability.CostInk, Amount: 1}}},
		{text: "{E}, Banish this item", want: []ability.Cost{{Kind: ability.CostExert}, {Kind: ability.CostBanishSelf}}},
		{text: "Discard a card", want: []ability.Cost{{Kind: ability.CostDiscard, Amount: 1}}},
		{text: "Exert one of your characters", want: []ability.Cost{{Kind: ability.CostExertCharacter, Amount: 1}}},
		{text: "Flip a coin", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := parseCosts(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFilter(t *testing.T) {
	characters := []card.Type{card.TypeCharacter}
	tests := []struct {
		phrase string
		want   ability.Filter
		ok     bool
	}{
		{"character", ability.Filter{Types: characters}, true},
		{"opposing damaged character", ability.Filter{Types: characters, Owner: ability.OwnerOpponent, Damaged: ability.BoolPtr(true)}, true},
		{"Seven Dwarfs characters", ability.Filter{Types: characters, Classifications: []string{"Seven Dwarfs"}}, true},
		{"character with cost 3 or less", ability.Filter{Types: characters, Cost: &ability.Compare{Op: ability.LessOrEqual, Value: 3}}, true},
		{"character with 5 {S} or more", ability.Filter{Types: characters, Strength: &ability.Compare{Op: ability.GreaterOrEqual, Value: 5}}, true},
		{"character named Mickey Mouse", ability.Filter{Types: characters, Name: "Mickey Mouse"}, true},
		{"character with Evasive", ability.Filter{Types: characters, Keyword: ability.Evasive}, true},
		{"song", ability.Filter{Types: []card.Type{card.TypeAction}, Classifications: []string{"Song"}}, true},
		{"item card", ability.Filter{Types: []card.Type{card.TypeItem}}, true},
		{"non-character card", ability.Filter{Types: []card.Type{card.TypeAction, card.TypeItem, card.TypeLocation}}, true},
		{"strange thing", ability.Filter{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			got, ok := parseFilter(tt.phrase)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseTarget(t *testing.T) {
	characters := []card.Type{card.TypeCharacter}
	tests := []struct {
		phrase   string
		targeted bool
		want     ability.Target
	}{
		{"this character", false, ability.Self{}},
		{"chosen character", false, ability.Chosen{Filter: ability.Filter{Types: characters}, Count: 1}},
		{"another chosen character", false, ability.Chosen{Filter: ability.Filter{Types: characters, ExcludeSelf: true}, Count: 1}},
		{"up to 2 chosen characters", false, ability.Chosen{Filter: ability.Filter{Types: characters}, Count: 2, UpTo: true}},
		{"chosen character of yours", false, ability.Chosen{Filter: ability.Filter{Types: characters, Owner: ability.OwnerYou}, Count: 1}},
		{"one of your characters", false, ability.Chosen{Filter: ability.Filter{Types: characters, Owner: ability.OwnerYou}, Count: 1}},
		{"each opposing character", false, ability.AllCards{Filter: ability.Filter{Types: characters, Owner: ability.OwnerOpponent}}},
		{"your other characters", false, ability.AllCards{Filter: ability.Filter{Types: characters, Owner: ability.OwnerYou, ExcludeSelf: true}}},
		{"them", true, ability.SameTarget{}},
		{"them", false, ability.TriggerCard{}},
		{"the challenging character", false, ability.TriggerCard{}},
		{"the top card of your deck", false, ability.TopOfDeck{Player: ability.PlayerYou}},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			st := &clauseState{targeted: tt.targeted}
			got, ok := st.parseTarget(tt.phrase)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	st := &clauseState{}
	_, ok := st.parseTarget("the moon")
	assert.False(t, ok)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		phrase string
		want   ability.Count
	}{
		{"the number of cards in your hand", ability.Count{Kind: ability.CountInHand, Owner: ability.OwnerYou}},
		{"other character you have in play", ability.Count{Kind: ability.CountInPlay, Owner: ability.OwnerYou, Filter: ability.Filter{Types: []card.Type{card.TypeCharacter}, ExcludeSelf: true}}},
		{"opposing characters in play", ability.Count{Kind: ability.CountInPlay, Owner: ability.OwnerOpponent, Filter: ability.Filter{Types: []card.Type{card.TypeCharacter}}}},
		{"character cards in your discard", ability.Count{Kind: ability.CountInDiscard, Owner: ability.OwnerYou, Filter: ability.Filter{Types: []card.Type{card.TypeCharacter}}}},
		{"this character's {S}", ability.Count{Kind: ability.CountSelfStat, Stat: ability.Strength}},
		{"the damage on this character", ability.Count{Kind: ability.CountSelfDamage}},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			got, ok := parseCount(tt.phrase)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCondition(t *testing.T) {
	tests := []struct {
		text string
		want ability.Condition
	}{
		{"it's your turn", ability.Condition{Kind: ability.CondYourTurn}},
		{"during your turn", ability.Condition{Kind: ability.CondYourTurn}},
		{"while this character is exerted", ability.Condition{Kind: ability.CondSelfExerted}},
		{"you have 2 or more other characters in play", ability.Condition{Kind: ability.CondOtherCharacters, Value: 2}},
		{"you have a character named Elsa in play", ability.Condition{Kind: ability.CondNamedInPlay, Name: "Elsa"}},
		{"you have a Princess character in play", ability.Condition{Kind: ability.CondClassInPlay, Name: "Princess"}},
		{"you have no cards in your hand", ability.Condition{Kind: ability.CondHandEmpty}},
		{"an opponent has more lore than you", ability.Condition{Kind: ability.CondOpponentMoreLore}},
		{"you have three or more lore", ability.Condition{Kind: ability.CondLoreAtLeast, Value: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := parseCondition(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := parseCondition("the moon is full")
	assert.False(t, ok)
}
