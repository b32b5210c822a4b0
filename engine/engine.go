// Package engine executes compiled effects against a game state. Effects are
// dispatched by type to one of six family handlers; meta effects (may,
// conditional, sequence, ...) are interpreted by the engine itself. Player
// decisions go through a choice.Requester and fall back to a deterministic
// answer when nobody responds.
//
// Execution never fails because of an effect: unknown types, malformed
// targets and broken transports are logged and skipped. The only error an
// effect returns is the context's.
package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/choice"
	"github.com/SvenDH/inkwell/game"
	"github.com/SvenDH/inkwell/observe"
	"github.com/SvenDH/inkwell/stats"
)

type Family string

const (
	FamilyCost     Family = "cost"
	FamilyDamage   Family = "damage"
	FamilyZone     Family = "zone"
	FamilyStatus   Family = "status"
	FamilyResource Family = "resource"
	FamilyOpponent Family = "opponent"
	FamilyMeta     Family = "meta"
)

var families = map[ability.EffectType]Family{
	ability.EffectDraw:             FamilyResource,
	ability.EffectGainLore:         FamilyResource,
	ability.EffectLoseLore:         FamilyResource,
	ability.EffectLoreEqualToCount: FamilyResource,
	ability.EffectDrawUntil:        FamilyResource,

	ability.EffectDamage:             FamilyDamage,
	ability.EffectDamageEqualToCount: FamilyDamage,
	ability.EffectRemoveDamage:       FamilyDamage,
	ability.EffectHealAndDraw:        FamilyDamage,
	ability.EffectMoveDamage:         FamilyDamage,
	ability.EffectBanish:             FamilyDamage,

	ability.EffectSearchDeck:        FamilyZone,
	ability.EffectShuffleDeck:       FamilyZone,
	ability.EffectLookAndDistribute: FamilyZone,
	ability.EffectLookAndTake:       FamilyZone,
	ability.EffectMill:              FamilyZone,
	ability.EffectReturnToHand:      FamilyZone,
	ability.EffectReturnFromDiscard: FamilyZone,
	ability.EffectPutOnBottom:       FamilyZone,
	ability.EffectDiscard:           FamilyZone,
	ability.EffectDiscardHand:       FamilyZone,
	ability.EffectPutIntoInkwell:    FamilyZone,
	ability.EffectInkFromDeck:       FamilyZone,
	ability.EffectShuffleIntoDeck:   FamilyZone,

	ability.EffectReady:               FamilyStatus,
	ability.EffectExert:               FamilyStatus,
	ability.EffectModifyStats:         FamilyStatus,
	ability.EffectModifyStatsPerCount: FamilyStatus,
	ability.EffectGrantKeyword:        FamilyStatus,
	ability.EffectRestriction:         FamilyStatus,
	ability.EffectEntersExerted:       FamilyStatus,

	ability.EffectCostReduction: FamilyCost,
	ability.EffectCostIncrease:  FamilyCost,
	ability.EffectPlayForFree:   FamilyCost,
	ability.EffectExtraInkPlay:  FamilyCost,
	ability.EffectSingCost:      FamilyCost,

	ability.EffectOpponentChoiceBanish:  FamilyOpponent,
	ability.EffectOpponentChoiceDiscard: FamilyOpponent,
	ability.EffectOpponentChoiceReturn:  FamilyOpponent,
	ability.EffectOpponentChoiceDamage:  FamilyOpponent,
	ability.EffectOpponentChoiceExert:   FamilyOpponent,
	ability.EffectRevealHand:            FamilyOpponent,
	ability.EffectRevealTopConditional:  FamilyOpponent,

	ability.EffectConditional:  FamilyMeta,
	ability.EffectPayToResolve: FamilyMeta,
	ability.EffectMay:          FamilyMeta,
	ability.EffectSequence:     FamilyMeta,
	ability.EffectChooseOne:    FamilyMeta,
}

// FamilyOf returns the family that executes effects of type t.
func FamilyOf(t ability.EffectType) (Family, bool) {
	f, ok := families[t]
	return f, ok
}

// handler executes the effects of one family. It reports false for a type
// it does not know.
type handler interface {
	handle(ctx context.Context, eff ability.Effect, gc *Context) (bool, error)
}

// Context is the scope of one ability execution.
type Context struct {
	State  *game.State
	Player *game.Player
	Source *game.Card

	Ability     *ability.Definition
	Event       ability.Event
	TriggerCard *game.Card

	// Targets, when set, answers the next chosen target descriptor instead
	// of asking the player. It is consumed by that resolution.
	Targets []*game.Card
	// LastTargets is the most recent resolution, reused by same_target.
	LastTargets []*game.Card
}

func NewContext(s *game.State, player *game.Player, source *game.Card) *Context {
	return &Context{State: s, Player: player, Source: source}
}

func (gc *Context) sourceID() string {
	if gc.Source == nil {
		return ""
	}
	return gc.Source.ID
}

func (gc *Context) static() bool {
	return gc.Ability != nil && gc.Ability.Kind == ability.Static
}

type Engine struct {
	log     *slog.Logger
	stats   *stats.Calculator
	chooser choice.Requester
	metrics *observe.Metrics

	handlers map[Family]handler
}

type Option func(*Engine)

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

func WithStats(calc *stats.Calculator) Option {
	return func(e *Engine) { e.stats = calc }
}

// WithRequester sets where player decisions are sent. Without one every
// decision takes its fallback.
func WithRequester(r choice.Requester) Option {
	return func(e *Engine) { e.chooser = r }
}

func WithMetrics(m *observe.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func New(opts ...Option) *Engine {
	e := &Engine{log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	if e.stats == nil {
		e.stats = stats.New(nil)
	}
	e.handlers = map[Family]handler{
		FamilyCost:     costFamily{e},
		FamilyDamage:   damageFamily{e},
		FamilyZone:     zoneFamily{e},
		FamilyStatus:   statusFamily{e},
		FamilyResource: resourceFamily{e},
		FamilyOpponent: opponentFamily{e},
		FamilyMeta:     metaFamily{e},
	}
	return e
}

func (e *Engine) Stats() *stats.Calculator { return e.stats }

// Execute runs one effect. Only a context error is returned.
func (e *Engine) Execute(ctx context.Context, eff ability.Effect, gc *Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if eff == nil || gc == nil || gc.State == nil {
		e.log.Warn("effect skipped: missing effect or context")
		return nil
	}
	family, ok := FamilyOf(eff.Type())
	var handled bool
	var err error
	if ok {
		handled, err = e.handlers[family].handle(ctx, eff, gc)
	}
	if !handled {
		e.log.Warn("unhandled effect type", "type", eff.Type(), "source", gc.sourceID())
		e.metrics.RecordUnhandled(ctx, string(eff.Type()))
		return nil
	}
	e.metrics.RecordEffect(ctx, string(eff.Type()), string(family))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return ctxErr
		}
		e.log.Warn("effect failed", "type", eff.Type(), "source", gc.sourceID(), "err", err)
	}
	return nil
}

// Run executes the effects of def strictly in order. Once-per-turn
// abilities that were already used this turn do nothing.
func (e *Engine) Run(ctx context.Context, def *ability.Definition, gc *Context) error {
	if !def.Valid() {
		return nil
	}
	if def.OncePerTurn && gc.Source != nil {
		if gc.Source.Used[def.ID] {
			e.log.Debug("ability already used this turn", "ability", def.ID)
			return nil
		}
		if gc.Source.Used == nil {
			gc.Source.Used = map[string]bool{}
		}
		gc.Source.Used[def.ID] = true
	}
	gc.Ability = def
	for _, eff := range def.Effects {
		if err := e.Execute(ctx, eff, gc); err != nil {
			return err
		}
	}
	return nil
}
