package ability

type ConditionKind string

const (
	CondYourTurn            ConditionKind = "your_turn"
	CondNotYourTurn         ConditionKind = "not_your_turn"
	CondSelfUndamaged       ConditionKind = "self_undamaged"
	CondSelfDamaged         ConditionKind = "self_damaged"
	CondSelfExerted         ConditionKind = "self_exerted"
	CondOtherCharacters     ConditionKind = "other_characters_at_least"
	CondItemsInPlay         ConditionKind = "items_in_play_at_least"
	CondNamedInPlay         ConditionKind = "named_in_play"
	CondClassInPlay         ConditionKind = "classification_in_play"
	CondHandEmpty           ConditionKind = "hand_empty"
	CondHandAtLeast         ConditionKind = "hand_at_least"
	CondOpponentMoreLore    ConditionKind = "opponent_more_lore"
	CondLoreAtLeast         ConditionKind = "lore_at_least"
	CondDamagedOpponentChar ConditionKind = "opponent_has_damaged_character"
	CondExpr                ConditionKind = "expr"
)

// Condition is a tagged predicate over game state, evaluated from the point
// of view of an ability's source card and controller.
type Condition struct {
	Kind  ConditionKind
	Value int
	Name  string
	// Expr is a raw expression, used when Kind is CondExpr.
	Expr string
}
