// Package effects holds the active (continuous) effects of a game. Records
// are appended, queried and removed; they are never changed in place.
package effects

import (
	"github.com/oklog/ulid/v2"

	"github.com/SvenDH/inkwell/ability"
)

type Kind string

const (
	KindStat          Kind = "stat"
	KindKeyword       Kind = "keyword"
	KindRestriction   Kind = "restriction"
	KindEntersExerted Kind = "enters_exerted"
)

// Record is one continuous modifier. It applies either to the cards listed
// in Targets or, when Filter is set, to every card in play it matches from
// the point of view of Controller.
type Record struct {
	ID         string
	Source     string
	Controller string
	Kind       Kind
	Targets    []string
	Filter     *ability.Filter

	Stat   ability.Stat
	Amount int
	// PerCount scales Amount by a count evaluated on every query.
	PerCount *ability.Count

	Keyword      ability.Keyword
	KeywordValue *int
	Restriction  ability.RestrictionKind

	Condition *ability.Condition
	Duration  ability.Duration
	// Seq orders records by creation.
	Seq uint64
}

// TargetsCard reports whether the record names the card id explicitly.
func (r Record) TargetsCard(id string) bool {
	for _, t := range r.Targets {
		if t == id {
			return true
		}
	}
	return false
}

type Store struct {
	records []Record
	seq     uint64
}

func NewStore() *Store {
	return &Store{}
}

// Add stores r and returns it with its id and sequence number set.
func (s *Store) Add(r Record) Record {
	s.seq++
	if r.ID == "" {
		r.ID = ulid.Make().String()
	}
	if r.Duration == "" {
		r.Duration = ability.Permanent
	}
	r.Targets = append([]string(nil), r.Targets...)
	r.Seq = s.seq
	s.records = append(s.records, r)
	return r
}

func (s *Store) Len() int { return len(s.records) }

// All returns a copy of every record in creation order.
func (s *Store) All() []Record {
	return append([]Record(nil), s.records...)
}

func (s *Store) Query(match func(Record) bool) []Record {
	var found []Record
	for _, r := range s.records {
		if match(r) {
			found = append(found, r)
		}
	}
	return found
}

func (s *Store) Remove(id string) bool {
	return s.removeWhere(func(r Record) bool { return r.ID == id }) > 0
}

func (s *Store) RemoveSource(cardID string) int {
	return s.removeWhere(func(r Record) bool { return r.Source == cardID })
}

// RemoveTarget takes the card out of every record that names it. A record
// left without targets is dropped; one with other targets is replaced by a
// copy without the card. Filtered records stay, since they apply to whatever
// matches. It returns the number of records dropped or replaced.
func (s *Store) RemoveTarget(cardID string) int {
	n := 0
	emptied := map[string]bool{}
	for i, r := range s.records {
		if r.Filter != nil || !r.TargetsCard(cardID) {
			continue
		}
		n++
		rest := make([]string, 0, len(r.Targets)-1)
		for _, t := range r.Targets {
			if t != cardID {
				rest = append(rest, t)
			}
		}
		if len(rest) == 0 {
			emptied[r.ID] = true
			continue
		}
		r.Targets = rest
		s.records[i] = r
	}
	s.removeWhere(func(r Record) bool { return emptied[r.ID] })
	return n
}

func (s *Store) ExpireEndOfTurn() int {
	return s.removeWhere(func(r Record) bool { return r.Duration == ability.ThisTurn })
}

// ExpireStartOfTurn removes "until the start of your next turn" records
// controlled by the player whose turn is starting.
func (s *Store) ExpireStartOfTurn(playerID string) int {
	return s.removeWhere(func(r Record) bool {
		return r.Duration == ability.UntilStartOfNextTurn && r.Controller == playerID
	})
}

func (s *Store) removeWhere(drop func(Record) bool) int {
	kept := s.records[:0]
	n := 0
	for _, r := range s.records {
		if drop(r) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	for i := len(kept); i < len(s.records); i++ {
		s.records[i] = Record{}
	}
	s.records = kept
	return n
}
