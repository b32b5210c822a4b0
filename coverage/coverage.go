// Package coverage keeps track of card rules text the compiler could not
// understand and reports how much of a catalog compiles.
package coverage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/parse"
)

// Entry is one distinct missed text of one card.
type Entry struct {
	CardID    string
	CardName  string
	CardType  card.Type
	Text      string
	Count     int
	FirstSeen time.Time
	LastSeen  time.Time
}

// Repo stores parse misses. Recording the same card text again bumps its
// count.
type Repo interface {
	parse.MissRecorder
	Misses(ctx context.Context) ([]Entry, error)
	Reset(ctx context.Context) error
	Close() error
}

// Memory is a Repo that lives in memory.
type Memory struct {
	mu      sync.Mutex
	entries map[entryKey]*Entry
	now     func() time.Time
}

type entryKey struct {
	card string
	text string
}

func NewMemory() *Memory {
	return &Memory{entries: map[entryKey]*Entry{}, now: time.Now}
}

func (m *Memory) RecordMiss(_ context.Context, miss parse.Miss) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	key := entryKey{miss.CardID, miss.Text}
	if e, ok := m.entries[key]; ok {
		e.Count++
		e.LastSeen = now
		return nil
	}
	m.entries[key] = &Entry{
		CardID:    miss.CardID,
		CardName:  miss.CardName,
		CardType:  miss.CardType,
		Text:      miss.Text,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}
	return nil
}

func (m *Memory) Misses(context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, *e)
	}
	sortEntries(out)
	return out, nil
}

func (m *Memory) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[entryKey]*Entry{}
	return nil
}

func (m *Memory) Close() error { return nil }

// sortEntries orders by count, most frequent first, then card and text.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.CardID != b.CardID {
			return a.CardID < b.CardID
		}
		return a.Text < b.Text
	})
}
