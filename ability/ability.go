// Package ability is the compiled, structured form of card rules text:
// ability definitions, the effect nodes they run and the target descriptors
// those effects act on.
package ability

import "fmt"

type Kind string

const (
	Triggered Kind = "triggered"
	Static    Kind = "static"
	Activated Kind = "activated"
)

type Duration string

const (
	Permanent            Duration = "permanent"
	ThisTurn             Duration = "this_turn"
	UntilStartOfNextTurn Duration = "until_start_of_next_turn"
	WhileCondition       Duration = "while_condition"
)

type Event string

const (
	EventCardPlayed          Event = "card_played"
	EventQuest               Event = "quest"
	EventChallenge           Event = "challenge"
	EventChallenged          Event = "challenged"
	EventBanished            Event = "banished"
	EventBanishedInChallenge Event = "banished_in_challenge"
	EventBanishesInChallenge Event = "banishes_in_challenge"
	EventTurnStart           Event = "turn_start"
	EventTurnEnd             Event = "turn_end"
	EventCardDrawn           Event = "card_drawn"
	EventDamaged             Event = "damaged"
	EventReadied             Event = "readied"
	EventSongPlayed          Event = "song_played"
	EventSing                Event = "sing"
	EventInkPlayed           Event = "ink_played"
	EventMovedToLocation     Event = "moved_to_location"
	EventItemPlayed          Event = "item_played"
	EventActionPlayed        Event = "action_played"
)

// Subject narrows which card an event must be about for a trigger to fire.
type Subject string

const (
	SubjectSelf       Subject = "self"
	SubjectYours      Subject = "yours"
	SubjectOtherYours Subject = "other_yours"
	SubjectOpposing   Subject = "opposing"
	SubjectAny        Subject = "any"
	SubjectPlayer     Subject = "player"
)

type Keyword string

const (
	Bodyguard      Keyword = "bodyguard"
	Evasive        Keyword = "evasive"
	Rush           Keyword = "rush"
	Ward           Keyword = "ward"
	Reckless       Keyword = "reckless"
	Support        Keyword = "support"
	Vanish         Keyword = "vanish"
	Alert          Keyword = "alert"
	Singer         Keyword = "singer"
	Shift          Keyword = "shift"
	UniversalShift Keyword = "universal_shift"
	Challenger     Keyword = "challenger"
	Resist         Keyword = "resist"
	Boost          Keyword = "boost"
	SingTogether   Keyword = "sing_together"
)

// Definition is one compiled unit of card rules text.
type Definition struct {
	ID   string
	Kind Kind
	Name string

	// Triggered abilities.
	Events          []Event
	EventConditions []Condition
	TriggerSubject  Subject
	TriggerFilter   *Filter
	OncePerTurn     bool

	// Static abilities, and triggered ones gated on a "while" clause.
	Condition *Condition

	// Activated abilities.
	Costs []Cost

	Keyword      Keyword
	KeywordValue *int

	Effects  []Effect
	Duration Duration
	Optional bool

	// Text is the preprocessed source text the definition was compiled from.
	Text string
}

// Valid reports whether the definition may be emitted: a definition with no
// effects is dropped.
func (d *Definition) Valid() bool {
	return d != nil && len(d.Effects) > 0
}

func (d *Definition) HasEvent(e Event) bool {
	for _, ev := range d.Events {
		if ev == e {
			return true
		}
	}
	return false
}

func (d Definition) String() string {
	switch d.Kind {
	case Triggered:
		return fmt.Sprintf("triggered%v %v", d.Events, d.Effects)
	case Activated:
		return fmt.Sprintf("activated%v %v", d.Costs, d.Effects)
	}
	if d.Keyword != "" {
		if d.KeywordValue != nil {
			return fmt.Sprintf("keyword %s %d", d.Keyword, *d.KeywordValue)
		}
		return "keyword " + string(d.Keyword)
	}
	return fmt.Sprintf("static %v", d.Effects)
}

// CostKind is one component of an activated ability's cost.
type CostKind string

const (
	CostExert          CostKind = "exert"
	CostInk            CostKind = "ink"
	CostBanishSelf     CostKind = "banish_self"
	CostDiscard        CostKind = "discard"
	CostExertCharacter CostKind = "exert_character"
)

type Cost struct {
	Kind   CostKind
	Amount int
}

func (c Cost) String() string {
	switch c.Kind {
	case CostExert:
		return "{E}"
	case CostInk:
		return fmt.Sprintf("%d {I}", c.Amount)
	}
	return string(c.Kind)
}

func IntPtr(n int) *int { return &n }

func BoolPtr(b bool) *bool { return &b }
