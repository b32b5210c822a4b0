package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SvenDH/inkwell/ability"
)

func TestStoreAddAssignsIDAndOrder(t *testing.T) {
	s := NewStore()
	a := s.Add(Record{Source: "c1", Kind: KindStat, Targets: []string{"x"}, Amount: 2})
	b := s.Add(Record{Source: "c2", Kind: KindStat, Targets: []string{"x"}, Amount: -1})

	require.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Less(t, a.Seq, b.Seq)
	assert.Equal(t, ability.Permanent, a.Duration)
	assert.Len(t, s.Query(func(r Record) bool { return r.TargetsCard("x") }), 2)
}

func TestStoreRecordsAreCopies(t *testing.T) {
	s := NewStore()
	targets := []string{"x"}
	s.Add(Record{Kind: KindStat, Targets: targets})
	targets[0] = "y"

	got := s.All()
	got[0].Amount = 99
	assert.Equal(t, []string{"x"}, s.All()[0].Targets)
	assert.Equal(t, 0, s.All()[0].Amount)
}

func TestStoreExpiry(t *testing.T) {
	tests := []struct {
		name  string
		sweep func(*Store) int
		left  []string
	}{
		{
			name:  "end of turn",
			sweep: func(s *Store) int { return s.ExpireEndOfTurn() },
			left:  []string{"perm", "next-p1", "next-p2", "while"},
		},
		{
			name:  "start of p1 turn",
			sweep: func(s *Store) int { return s.ExpireStartOfTurn("p1") },
			left:  []string{"perm", "turn", "next-p2", "while"},
		},
		{
			name:  "remove source",
			sweep: func(s *Store) int { return s.RemoveSource("src") },
			left:  []string{"perm", "turn", "next-p2", "while"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.Add(Record{ID: "perm", Duration: ability.Permanent})
			s.Add(Record{ID: "turn", Duration: ability.ThisTurn})
			s.Add(Record{ID: "next-p1", Source: "src", Controller: "p1", Duration: ability.UntilStartOfNextTurn})
			s.Add(Record{ID: "next-p2", Controller: "p2", Duration: ability.UntilStartOfNextTurn})
			s.Add(Record{ID: "while", Duration: ability.WhileCondition})

			assert.Equal(t, 1, tt.sweep(s))
			var ids []string
			for _, r := range s.All() {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.left, ids)
		})
	}
}

func TestStoreRemoveTargetKeepsFiltered(t *testing.T) {
	s := NewStore()
	s.Add(Record{ID: "direct", Targets: []string{"c"}})
	s.Add(Record{ID: "filtered", Targets: []string{"c"}, Filter: &ability.Filter{}})

	assert.Equal(t, 1, s.RemoveTarget("c"))
	assert.True(t, s.Remove("filtered"))
	assert.False(t, s.Remove("filtered"))
	assert.Equal(t, 0, s.Len())
}

func TestStoreRemoveTargetKeepsOtherTargets(t *testing.T) {
	s := NewStore()
	shared := s.Add(Record{ID: "shared", Kind: KindStat, Stat: ability.Strength, Amount: 2, Targets: []string{"a", "b"}})
	s.Add(Record{ID: "only-a", Kind: KindStat, Targets: []string{"a"}})
	s.Add(Record{ID: "untargeted", Kind: KindStat})

	assert.Equal(t, 2, s.RemoveTarget("a"))
	require.Equal(t, 2, s.Len())

	got := s.Query(func(r Record) bool { return r.ID == "shared" })
	require.Len(t, got, 1)
	assert.Equal(t, []string{"b"}, got[0].Targets)
	assert.Equal(t, 2, got[0].Amount)
	assert.Equal(t, shared.Seq, got[0].Seq)
	assert.Empty(t, s.Query(func(r Record) bool { return r.ID == "only-a" }))
	assert.Len(t, s.Query(func(r Record) bool { return r.ID == "untargeted" }), 1)
	assert.Equal(t, []string{"a", "b"}, shared.Targets)
}
