package ability

import "fmt"

type EffectType string

const (
	// resource
	EffectDraw             EffectType = "draw"
	EffectGainLore         EffectType = "gain_lore"
	EffectLoseLore         EffectType = "lose_lore"
	EffectLoreEqualToCount EffectType = "lore_equal_to_count"
	EffectDrawUntil        EffectType = "draw_until"

	// damage
	EffectDamage             EffectType = "damage"
	EffectDamageEqualToCount EffectType = "damage_equal_to_count"
	EffectRemoveDamage       EffectType = "remove_damage"
	EffectHealAndDraw        EffectType = "heal_and_draw"
	EffectMoveDamage         EffectType = "move_damage"
	EffectBanish             EffectType = "banish"

	// zone
	EffectSearchDeck        EffectType = "search_deck"
	EffectShuffleDeck       EffectType = "shuffle_deck"
	EffectLookAndDistribute EffectType = "look_and_distribute"
	EffectLookAndTake       EffectType = "look_and_take"
	EffectMill              EffectType = "mill"
	EffectReturnToHand      EffectType = "return_to_hand"
	EffectReturnFromDiscard EffectType = "return_from_discard"
	EffectPutOnBottom       EffectType = "put_on_bottom"
	EffectDiscard           EffectType = "discard"
	EffectDiscardHand       EffectType = "discard_hand"
	EffectPutIntoInkwell    EffectType = "put_into_inkwell"
	EffectInkFromDeck       EffectType = "ink_from_deck"
	EffectShuffleIntoDeck   EffectType = "shuffle_into_deck"

	// status
	EffectReady               EffectType = "ready"
	EffectExert               EffectType = "exert"
	EffectModifyStats         EffectType = "modify_stats"
	EffectModifyStatsPerCount EffectType = "modify_stats_per_count"
	EffectGrantKeyword        EffectType = "grant_keyword"
	EffectRestriction         EffectType = "restriction"
	EffectEntersExerted       EffectType = "enters_exerted"

	// cost
	EffectCostReduction EffectType = "cost_reduction"
	EffectCostIncrease  EffectType = "cost_increase"
	EffectPlayForFree   EffectType = "play_for_free"
	EffectExtraInkPlay  EffectType = "extra_ink_play"
	EffectSingCost      EffectType = "sing_cost"

	// opponent
	EffectOpponentChoiceBanish  EffectType = "opponent_choice_banish"
	EffectOpponentChoiceDiscard EffectType = "opponent_choice_discard"
	EffectOpponentChoiceReturn  EffectType = "opponent_choice_return"
	EffectOpponentChoiceDamage  EffectType = "opponent_choice_damage"
	EffectOpponentChoiceExert   EffectType = "opponent_choice_exert"
	EffectRevealHand            EffectType = "reveal_hand"
	EffectRevealTopConditional  EffectType = "reveal_top_conditional"

	// meta
	EffectConditional  EffectType = "conditional"
	EffectPayToResolve EffectType = "pay_to_resolve"
	EffectMay          EffectType = "may"
	EffectSequence     EffectType = "sequence"
	EffectChooseOne    EffectType = "choose_one"
)

// Effect is one executable instruction. Every variant is a distinct struct
// that carries only the fields its kind needs.
type Effect interface {
	Type() EffectType
}

type Draw struct {
	Amount int
	Player PlayerScope
}

type GainLore struct {
	Amount int
	Player PlayerScope
}

type LoseLore struct {
	Amount int
	Player PlayerScope
}

type LoreEqualToCount struct {
	Count  Count
	Player PlayerScope
}

// DrawUntil draws until the player holds HandSize cards.
type DrawUntil struct {
	HandSize int
	Player   PlayerScope
}

type Damage struct {
	Amount int
	Target Target
}

type DamageEqualToCount struct {
	Count  Count
	Target Target
}

type RemoveDamage struct {
	Amount int
	UpTo   bool
	All    bool
	Target Target
}

// HealAndDraw removes a player-chosen amount of damage (1..min(damage, Max))
// and draws that many cards.
type HealAndDraw struct {
	Max    int
	Target Target
}

type MoveDamage struct {
	Amount int
	UpTo   bool
	From   Target
	To     Target
}

type Banish struct {
	Target Target
}

// SearchDeck moves Amount matching cards from the deck to Destination. A nil
// Shuffle means shuffle.
type SearchDeck struct {
	Filter      Filter
	Amount      int
	Destination Zone
	Shuffle     *bool
	Reveal      bool
}

type ShuffleDeck struct {
	Player PlayerScope
}

// LookAndDistribute looks at the top Amount cards and puts each either on
// top or on the bottom of the deck in a chosen order.
type LookAndDistribute struct {
	Amount     int
	TopOnly    bool
	BottomOnly bool
}

// LookAndTake looks at the top Amount cards, takes up to Take matching ones
// into Destination and puts the rest on the bottom.
type LookAndTake struct {
	Amount      int
	Take        int
	Filter      Filter
	Destination Zone
	Reveal      bool
}

type Mill struct {
	Amount int
	Player PlayerScope
}

type ReturnToHand struct {
	Target Target
}

type ReturnFromDiscard struct {
	Filter      Filter
	Amount      int
	Destination Zone
}

type PutOnBottom struct {
	Target Target
}

type Discard struct {
	Amount int
	Player PlayerScope
	Random bool
}

type DiscardHand struct {
	Player PlayerScope
}

type PutIntoInkwell struct {
	Target  Target
	Exerted bool
}

type InkFromDeck struct {
	Amount  int
	Exerted bool
	Player  PlayerScope
}

type ShuffleIntoDeck struct {
	Target Target
}

type Ready struct {
	Target Target
}

type Exert struct {
	Target Target
}

type ModifyStats struct {
	Stat     Stat
	Amount   int
	Target   Target
	Duration Duration
}

// ModifyStatsPerCount grants Per for every unit of Count, recomputed on query.
type ModifyStatsPerCount struct {
	Stat     Stat
	Per      int
	Count    Count
	Target   Target
	Duration Duration
}

type GrantKeyword struct {
	Keyword  Keyword
	Value    *int
	Target   Target
	Duration Duration
}

type RestrictionKind string

const (
	CantQuest         RestrictionKind = "cant_quest"
	CantChallenge     RestrictionKind = "cant_challenge"
	CantBeChallenged  RestrictionKind = "cant_be_challenged"
	CantReady         RestrictionKind = "cant_ready"
	CantSing          RestrictionKind = "cant_sing"
	CantBeDealtDamage RestrictionKind = "cant_be_dealt_damage"
)

type Restriction struct {
	Restriction RestrictionKind
	Target      Target
	Duration    Duration
}

// EntersExerted makes the source enter play exerted, or with Filter every
// matching card that enters play.
type EntersExerted struct {
	Filter *Filter
}

// CostReduction lowers the ink cost of matching cards the controller plays.
// NextOnly reductions are consumed by the first matching play.
type CostReduction struct {
	Amount   int
	Filter   Filter
	Duration Duration
	NextOnly bool
}

// CostIncrease raises the cost of matching cards opponents play.
type CostIncrease struct {
	Amount   int
	Filter   Filter
	Duration Duration
}

type PlayForFree struct {
	Filter Filter
	From   Zone
}

type ExtraInkPlay struct {
	Amount int
}

// SingCost lets a character with cost Value or more exert to sing the song.
type SingCost struct {
	Value int
}

type OpponentChoiceBanish struct {
	Amount int
	Filter Filter
}

type OpponentChoiceDiscard struct {
	Amount int
}

type OpponentChoiceReturn struct {
	Amount int
	Filter Filter
}

type OpponentChoiceDamage struct {
	Amount int
	Damage int
	Filter Filter
}

type OpponentChoiceExert struct {
	Amount int
	Filter Filter
}

// RevealHand shows a player's hand to every player. With a Discard filter the
// acting player picks one matching card to discard from it.
type RevealHand struct {
	Player  PlayerScope
	Discard *Filter
}

// RevealTopConditional reveals the top card of the deck; a matching card goes
// to Destination, anything else to the bottom of the deck.
type RevealTopConditional struct {
	Filter      Filter
	Destination Zone
}

type Conditional struct {
	Condition Condition
	Then      Effect
	Else      Effect
}

// PayToResolve offers to pay Cost; Inner runs only when it was paid.
type PayToResolve struct {
	Cost  Cost
	Inner Effect
}

// May asks the acting player before running Inner. Then only runs if Inner
// was accepted ("If you do, ...").
type May struct {
	Inner Effect
	Then  Effect
}

type Sequence struct {
	Effects []Effect
}

type ChooseOne struct {
	Options []Effect
	// Labels holds the printed text of each option when it is known.
	Labels []string
}

func (Draw) Type() EffectType                  { return EffectDraw }
func (GainLore) Type() EffectType              { return EffectGainLore }
func (LoseLore) Type() EffectType              { return EffectLoseLore }
func (LoreEqualToCount) Type() EffectType      { return EffectLoreEqualToCount }
func (DrawUntil) Type() EffectType             { return EffectDrawUntil }
func (Damage) Type() EffectType                { return EffectDamage }
func (DamageEqualToCount) Type() EffectType    { return EffectDamageEqualToCount }
func (RemoveDamage) Type() EffectType          { return EffectRemoveDamage }
func (HealAndDraw) Type() EffectType           { return EffectHealAndDraw }
func (MoveDamage) Type() EffectType            { return EffectMoveDamage }
func (Banish) Type() EffectType                { return EffectBanish }
func (SearchDeck) Type() EffectType            { return EffectSearchDeck }
func (ShuffleDeck) Type() EffectType           { return EffectShuffleDeck }
func (LookAndDistribute) Type() EffectType     { return EffectLookAndDistribute }
func (LookAndTake) Type() EffectType           { return EffectLookAndTake }
func (Mill) Type() EffectType                  { return EffectMill }
func (ReturnToHand) Type() EffectType          { return EffectReturnToHand }
func (ReturnFromDiscard) Type() EffectType     { return EffectReturnFromDiscard }
func (PutOnBottom) Type() EffectType           { return EffectPutOnBottom }
func (Discard) Type() EffectType               { return EffectDiscard }
func (DiscardHand) Type() EffectType           { return EffectDiscardHand }
func (PutIntoInkwell) Type() EffectType        { return EffectPutIntoInkwell }
func (InkFromDeck) Type() EffectType           { return EffectInkFromDeck }
func (ShuffleIntoDeck) Type() EffectType       { return EffectShuffleIntoDeck }
func (Ready) Type() EffectType                 { return EffectReady }
func (Exert) Type() EffectType                 { return EffectExert }
func (ModifyStats) Type() EffectType           { return EffectModifyStats }
func (ModifyStatsPerCount) Type() EffectType   { return EffectModifyStatsPerCount }
func (GrantKeyword) Type() EffectType          { return EffectGrantKeyword }
func (Restriction) Type() EffectType           { return EffectRestriction }
func (EntersExerted) Type() EffectType         { return EffectEntersExerted }
func (CostReduction) Type() EffectType         { return EffectCostReduction }
func (CostIncrease) Type() EffectType          { return EffectCostIncrease }
func (PlayForFree) Type() EffectType           { return EffectPlayForFree }
func (ExtraInkPlay) Type() EffectType          { return EffectExtraInkPlay }
func (SingCost) Type() EffectType              { return EffectSingCost }
func (OpponentChoiceBanish) Type() EffectType  { return EffectOpponentChoiceBanish }
func (OpponentChoiceDiscard) Type() EffectType { return EffectOpponentChoiceDiscard }
func (OpponentChoiceReturn) Type() EffectType  { return EffectOpponentChoiceReturn }
func (OpponentChoiceDamage) Type() EffectType  { return EffectOpponentChoiceDamage }
func (OpponentChoiceExert) Type() EffectType   { return EffectOpponentChoiceExert }
func (RevealHand) Type() EffectType            { return EffectRevealHand }
func (RevealTopConditional) Type() EffectType  { return EffectRevealTopConditional }
func (Conditional) Type() EffectType           { return EffectConditional }
func (PayToResolve) Type() EffectType          { return EffectPayToResolve }
func (May) Type() EffectType                   { return EffectMay }
func (Sequence) Type() EffectType              { return EffectSequence }
func (ChooseOne) Type() EffectType             { return EffectChooseOne }

func (d Draw) String() string   { return fmt.Sprintf("draw(%d)", d.Amount) }
func (d Damage) String() string { return fmt.Sprintf("damage(%d)", d.Amount) }
