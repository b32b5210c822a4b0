package coverage

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/parse"
)

func repos(t *testing.T) map[string]Repo {
	t.Helper()
	clock := time.Unix(1700000000, 0)
	now := func() time.Time { return clock }

	mem := NewMemory()
	mem.now = now

	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	db.now = now
	t.Cleanup(func() { db.Close() })

	return map[string]Repo{"memory": mem, "sqlite": db}
}

func TestRepoRecordMiss(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			a := parse.Miss{CardID: "a", CardName: "Alpha", CardType: card.TypeCharacter, Text: "Do a dance."}
			b := parse.Miss{CardID: "b", CardName: "Beta", CardType: card.TypeAction, Text: "Sing loudly."}
			require.NoError(t, repo.RecordMiss(ctx, b))
			require.NoError(t, repo.RecordMiss(ctx, a))
			require.NoError(t, repo.RecordMiss(ctx, a))

			got, err := repo.Misses(ctx)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "a", got[0].CardID)
			assert.Equal(t, 2, got[0].Count)
			assert.Equal(t, card.TypeCharacter, got[0].CardType)
			assert.Equal(t, "Do a dance.", got[0].Text)
			assert.Equal(t, time.Unix(1700000000, 0).Unix(), got[0].LastSeen.Unix())
			assert.Equal(t, "b", got[1].CardID)
			assert.Equal(t, 1, got[1].Count)

			require.NoError(t, repo.Reset(ctx))
			got, err = repo.Misses(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestMeasure(t *testing.T) {
	ctx := context.Background()
	cards := []*card.Card{
		{ID: "flyer", Name: "Flyer", Type: card.TypeCharacter, Text: "Evasive"},
		{ID: "odd", Name: "Odd", Type: card.TypeCharacter, Text: "Evasive\nDo a little dance."},
		{ID: "bolt", Name: "Bolt", Type: card.TypeAction, Text: "Deal 2 damage to chosen character."},
	}
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			comp := parse.New(parse.WithMissRecorder(repo))
			require.NoError(t, repo.RecordMiss(ctx, parse.Miss{CardID: "stale", Text: "old"}))

			r, err := Measure(ctx, comp, repo, cards, 10)
			require.NoError(t, err)
			assert.Equal(t, 3, r.Cards)
			assert.Equal(t, 4, r.Texts)
			assert.Equal(t, 3, r.Abilities)
			assert.Equal(t, 1, r.Misses)
			assert.Equal(t, map[card.Type]int{card.TypeCharacter: 1}, r.ByType)
			assert.InDelta(t, 0.75, r.Coverage(), 1e-9)
			require.Len(t, r.Top, 1)
			assert.Equal(t, "Do a little dance.", r.Top[0].Text)

			var buf bytes.Buffer
			require.NoError(t, r.Write(&buf))
			assert.Contains(t, buf.String(), "coverage: 75.0%")
			assert.Contains(t, buf.String(), `"Do a little dance."`)
		})
	}
}

func TestEmptyReportIsCovered(t *testing.T) {
	assert.Equal(t, 1.0, Report{}.Coverage())
}
