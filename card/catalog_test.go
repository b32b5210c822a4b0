package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCatalogJSON(t *testing.T) {
	src := `[
	  {"id": "tfc-1", "name": "Ariel", "version": "On Human Legs", "type": "Character",
	   "cost": 4, "strength": 3, "willpower": 4, "lore": 2, "classifications": ["Storyborn", "Hero", "Princess"],
	   "abilities": [{"type": "static", "name": "VOICELESS", "effect": "This character can't {E} to sing songs.",
	                  "fullText": "VOICELESS This character can't {E} to sing songs."}]},
	  {"name": "Friends on the Other Side", "type": "Action - Song", "cost": 3, "classifications": ["Song"],
	   "text": "Draw 2 cards."}
	]`
	cards, err := DecodeCatalog(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, TypeCharacter, cards[0].Type)
	assert.Equal(t, "Ariel - On Human Legs", cards[0].FullName())
	assert.Equal(t, "VOICELESS", cards[0].Abilities[0].Name)
	assert.True(t, cards[0].HasClassification("princess"))

	assert.Equal(t, TypeAction, cards[1].Type)
	assert.True(t, cards[1].IsSong())
	assert.Equal(t, "card-2", cards[1].ID)
}

func TestDecodeCatalogErrors(t *testing.T) {
	_, err := DecodeCatalog(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = DecodeCatalog(strings.NewReader(`[{"name": "X", "type": "Planeswalker"}]`))
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"Character", TypeCharacter},
		{"action - song", TypeAction},
		{"Item", TypeItem},
		{" Location ", TypeLocation},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
