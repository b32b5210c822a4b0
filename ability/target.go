package ability

import (
	"strings"

	"github.com/SvenDH/inkwell/card"
)

type Zone string

const (
	ZoneHand    Zone = "hand"
	ZoneDeck    Zone = "deck"
	ZoneDiscard Zone = "discard"
	ZonePlay    Zone = "play"
	ZoneInkwell Zone = "inkwell"
)

type Stat string

const (
	Strength  Stat = "strength"
	Willpower Stat = "willpower"
	Lore      Stat = "lore"
)

type Owner string

const (
	OwnerAny      Owner = ""
	OwnerYou      Owner = "you"
	OwnerOpponent Owner = "opponent"
)

type CompareOp string

const (
	LessOrEqual    CompareOp = "le"
	GreaterOrEqual CompareOp = "ge"
	Equal          CompareOp = "eq"
)

type Compare struct {
	Op    CompareOp
	Value int
}

func (c *Compare) Match(v int) bool {
	if c == nil {
		return true
	}
	switch c.Op {
	case LessOrEqual:
		return v <= c.Value
	case GreaterOrEqual:
		return v >= c.Value
	}
	return v == c.Value
}

// Filter narrows a set of cards. Zero fields match everything.
type Filter struct {
	Types           []card.Type
	Classifications []string
	Name            string
	Cost            *Compare
	Strength        *Compare
	Willpower       *Compare
	Damaged         *bool
	Exerted         *bool
	Owner           Owner
	ExcludeSelf     bool
	Keyword         Keyword
}

func (f Filter) HasType(t card.Type) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, ft := range f.Types {
		if ft == t {
			return true
		}
	}
	return false
}

// MatchStatic checks the parts of the filter that only depend on the printed
// card. Owner, damage, exert and stat comparisons need game state and are
// checked by the resolver.
func (f Filter) MatchStatic(c *card.Card) bool {
	if !f.HasType(c.Type) {
		return false
	}
	if f.Name != "" && !strings.EqualFold(f.Name, c.Name) && !strings.EqualFold(f.Name, c.FullName()) {
		return false
	}
	for _, cl := range f.Classifications {
		if !c.HasClassification(cl) {
			return false
		}
	}
	return f.Cost.Match(c.Cost)
}

// PlayerScope selects players rather than cards.
type PlayerScope string

const (
	PlayerYou            PlayerScope = "you"
	PlayerEachOpponent   PlayerScope = "each_opponent"
	PlayerEachPlayer     PlayerScope = "each_player"
	PlayerChosenOpponent PlayerScope = "chosen_opponent"
)

type TargetKind string

const (
	TargetSelf        TargetKind = "self"
	TargetChosen      TargetKind = "chosen"
	TargetAll         TargetKind = "all"
	TargetSame        TargetKind = "same_target"
	TargetTopOfDeck   TargetKind = "top_card_of_deck"
	TargetTriggerCard TargetKind = "trigger_card"
)

// Target describes who or what an effect acts on.
type Target interface {
	TargetKind() TargetKind
}

// Self is the source card of the ability.
type Self struct{}

// Chosen is picked interactively by Chooser (the acting player when empty).
type Chosen struct {
	Filter  Filter
	Count   int
	UpTo    bool
	Chooser Owner
}

// AllCards is every card in play matching Filter.
type AllCards struct {
	Filter Filter
}

// SameTarget reuses the set resolved by the previous effect.
type SameTarget struct{}

type TopOfDeck struct {
	Player PlayerScope
}

// TriggerCard is the card that caused the triggering event.
type TriggerCard struct{}

func (Self) TargetKind() TargetKind        { return TargetSelf }
func (Chosen) TargetKind() TargetKind      { return TargetChosen }
func (AllCards) TargetKind() TargetKind    { return TargetAll }
func (SameTarget) TargetKind() TargetKind  { return TargetSame }
func (TopOfDeck) TargetKind() TargetKind   { return TargetTopOfDeck }
func (TriggerCard) TargetKind() TargetKind { return TargetTriggerCard }

// ChosenCharacter is the common "chosen character" descriptor.
func ChosenCharacter(owner Owner) Chosen {
	return Chosen{Filter: Filter{Types: []card.Type{card.TypeCharacter}, Owner: owner}, Count: 1}
}

type CountKind string

const (
	CountInPlay     CountKind = "in_play"
	CountInHand     CountKind = "in_hand"
	CountInDiscard  CountKind = "in_discard"
	CountSelfStat   CountKind = "self_stat"
	CountSelfDamage CountKind = "self_damage"
)

// Count is a number computed from game state at resolution time.
type Count struct {
	Kind   CountKind
	Filter Filter
	Owner  Owner
	Stat   Stat
}
