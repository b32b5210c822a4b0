// Package condition evaluates ability conditions against game state. Every
// condition is lowered to a CEL expression; compiled programs are cached.
package condition

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/game"
)

var ErrNotBool = errors.New("condition: expression is not boolean")

type Evaluator struct {
	env *cel.Env

	mu       sync.Mutex
	programs map[string]cel.Program
}

func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		ext.Strings(),
		cel.Variable("self", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("you", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("opponent", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("your_turn", cel.BoolType),
	)
	if err != nil {
		return nil, fmt.Errorf("condition: create CEL environment: %w", err)
	}
	return &Evaluator{env: env, programs: map[string]cel.Program{}}, nil
}

var (
	defaultOnce sync.Once
	defaultEval *Evaluator
)

// Default returns a shared evaluator. The environment is static, so building
// it can only fail on a programming error.
func Default() *Evaluator {
	defaultOnce.Do(func() {
		ev, err := NewEvaluator()
		if err != nil {
			panic(err)
		}
		defaultEval = ev
	})
	return defaultEval
}

// Expr lowers a condition to its CEL source.
func Expr(c ability.Condition) (string, error) {
	switch c.Kind {
	case ability.CondYourTurn:
		return "your_turn", nil
	case ability.CondNotYourTurn:
		return "!your_turn", nil
	case ability.CondSelfUndamaged:
		return "self.damage == 0", nil
	case ability.CondSelfDamaged:
		return "self.damage > 0", nil
	case ability.CondSelfExerted:
		return "self.exerted", nil
	case ability.CondOtherCharacters:
		return fmt.Sprintf("you.characters - (self.in_play && self.character ? 1 : 0) >= %d", c.Value), nil
	case ability.CondItemsInPlay:
		return fmt.Sprintf("you.items >= %d", c.Value), nil
	case ability.CondNamedInPlay:
		return fmt.Sprintf("%s in you.names", strconv.Quote(c.Name)), nil
	case ability.CondClassInPlay:
		return fmt.Sprintf("%s in you.classifications", strconv.Quote(c.Name)), nil
	case ability.CondHandEmpty:
		return "you.hand == 0", nil
	case ability.CondHandAtLeast:
		return fmt.Sprintf("you.hand >= %d", c.Value), nil
	case ability.CondOpponentMoreLore:
		return "opponent.lore > you.lore", nil
	case ability.CondLoreAtLeast:
		return fmt.Sprintf("you.lore >= %d", c.Value), nil
	case ability.CondDamagedOpponentChar:
		return "opponent.damaged_characters > 0", nil
	case ability.CondExpr:
		return c.Expr, nil
	}
	return "", fmt.Errorf("condition: unknown kind %q", c.Kind)
}

// Eval evaluates c for an ability of source controlled by you. A nil
// condition holds.
func (e *Evaluator) Eval(c *ability.Condition, s *game.State, you *game.Player, source *game.Card) (bool, error) {
	if c == nil {
		return true, nil
	}
	src, err := Expr(*c)
	if err != nil {
		return false, err
	}
	prg, err := e.program(src)
	if err != nil {
		return false, err
	}
	out, _, err := prg.Eval(Activation(s, you, source))
	if err != nil {
		return false, fmt.Errorf("condition: eval %q: %w", src, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNotBool, src)
	}
	return b, nil
}

// Holds is Eval with errors treated as false.
func (e *Evaluator) Holds(c *ability.Condition, s *game.State, you *game.Player, source *game.Card) bool {
	ok, err := e.Eval(c, s, you, source)
	return err == nil && ok
}

func (e *Evaluator) program(src string) (cel.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if prg, ok := e.programs[src]; ok {
		return prg, nil
	}
	ast, iss := e.env.Compile(src)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("condition: compile %q: %w", src, iss.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("condition: program %q: %w", src, err)
	}
	e.programs[src] = prg
	return prg, nil
}

// Activation builds the CEL variables for one evaluation.
func Activation(s *game.State, you *game.Player, source *game.Card) map[string]any {
	vars := map[string]any{
		"self":      cardVars(source),
		"you":       playerVars(you),
		"opponent":  playerVars(nil),
		"your_turn": false,
	}
	if s != nil && you != nil {
		vars["opponent"] = playerVars(s.Opponent(you))
		vars["your_turn"] = s.IsTurnOf(you)
	}
	return vars
}

func cardVars(c *game.Card) map[string]any {
	if c == nil {
		return map[string]any{
			"name":      "",
			"cost":      0,
			"damage":    0,
			"exerted":   false,
			"in_play":   false,
			"character": false,
		}
	}
	return map[string]any{
		"name":      c.Def.Name,
		"cost":      c.Def.Cost,
		"damage":    c.Damage,
		"exerted":   c.Exerted,
		"in_play":   c.InPlay(),
		"character": c.IsCharacter(),
	}
}

func playerVars(p *game.Player) map[string]any {
	if p == nil {
		p = &game.Player{}
	}
	names := []string{}
	classes := []string{}
	damaged := 0
	for _, c := range p.Play.Cards() {
		names = append(names, c.Def.Name, c.Def.FullName())
		classes = append(classes, c.Def.Classifications...)
		if c.IsCharacter() && c.Damaged() {
			damaged++
		}
	}
	return map[string]any{
		"lore":               p.Lore,
		"hand":               p.Hand.Len(),
		"deck":               p.Deck.Len(),
		"discard":            p.Discard.Len(),
		"inkwell":            p.Inkwell.Len(),
		"characters":         len(p.InPlay(card.TypeCharacter)),
		"items":              len(p.InPlay(card.TypeItem)),
		"locations":          len(p.InPlay(card.TypeLocation)),
		"damaged_characters": damaged,
		"names":              names,
		"classifications":    classes,
	}
}
