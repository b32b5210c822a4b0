package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/choice"
	"github.com/SvenDH/inkwell/game"
)

// ResolveTargets turns a target descriptor into cards. same_target returns
// the previous resolution without asking anything; every other descriptor
// replaces it, even when it resolves to nothing. A malformed descriptor
// resolves to no cards.
func (e *Engine) ResolveTargets(ctx context.Context, target ability.Target, gc *Context) ([]*game.Card, error) {
	if _, ok := target.(ability.SameTarget); ok {
		return append([]*game.Card(nil), gc.LastTargets...), nil
	}
	cards, err := e.resolve(ctx, target, gc)
	if err != nil {
		return nil, err
	}
	gc.LastTargets = cards
	return cards, nil
}

func (e *Engine) resolve(ctx context.Context, target ability.Target, gc *Context) ([]*game.Card, error) {
	s := gc.State
	switch t := target.(type) {
	case ability.Self:
		if gc.Source != nil {
			return []*game.Card{gc.Source}, nil
		}
	case ability.TriggerCard:
		if gc.TriggerCard != nil {
			return []*game.Card{gc.TriggerCard}, nil
		}
	case ability.AllCards:
		var found []*game.Card
		for _, c := range s.InPlay() {
			if e.stats.Matches(t.Filter, c, s, gc.Player, gc.Source) {
				found = append(found, c)
			}
		}
		return found, nil
	case ability.TopOfDeck:
		players, err := e.players(ctx, t.Player, gc)
		if err != nil {
			return nil, err
		}
		var found []*game.Card
		for _, p := range players {
			found = append(found, p.Deck.Top(1)...)
		}
		return found, nil
	case ability.Chosen:
		return e.chosen(ctx, t, gc)
	default:
		e.log.Warn("unresolvable target", "target", fmt.Sprintf("%T", target), "source", gc.sourceID())
	}
	return nil, nil
}

func (e *Engine) chosen(ctx context.Context, t ability.Chosen, gc *Context) ([]*game.Card, error) {
	if gc.Targets != nil {
		picked := gc.Targets
		gc.Targets = nil
		return picked, nil
	}
	s := gc.State
	chooser := gc.Player
	if t.Chooser == ability.OwnerOpponent {
		chooser = s.Opponent(gc.Player)
	}
	if chooser == nil {
		return nil, nil
	}
	var candidates []*game.Card
	for _, c := range s.InPlay() {
		if e.stats.Matches(t.Filter, c, s, gc.Player, gc.Source) {
			candidates = append(candidates, c)
		}
	}
	count := t.Count
	if count <= 0 {
		count = 1
	}
	min := count
	if t.UpTo {
		min = 0
	}
	return e.pick(ctx, gc, selection{
		player:   chooser,
		kind:     choice.KindTarget,
		prompt:   "Choose a target",
		cards:    candidates,
		min:      min,
		max:      count,
		optional: t.UpTo,
		invalid: func(c *game.Card) string {
			if c.Owner != chooser && e.stats.HasKeyword(c, ability.Ward, s) {
				return "ward"
			}
			return ""
		},
	})
}

// selection describes one card pick.
type selection struct {
	player   *game.Player
	kind     choice.Kind
	prompt   string
	cards    []*game.Card
	min      int
	max      int
	optional bool
	// invalid returns a reason when a card is shown but cannot be picked.
	invalid  func(*game.Card) string
	fallback func(choice.Request) choice.Response
	context  map[string]any
}

// pick asks p.player to select cards. Min is lowered to the number of valid
// cards so a selection is always possible.
func (e *Engine) pick(ctx context.Context, gc *Context, p selection) ([]*game.Card, error) {
	byID := map[string]*game.Card{}
	opts := make([]choice.Option, 0, len(p.cards))
	valid := 0
	for _, c := range p.cards {
		o := choice.Option{ID: c.ID, Display: c.String(), Valid: true}
		if p.invalid != nil {
			if reason := p.invalid(c); reason != "" {
				o.Valid, o.InvalidReason = false, reason
			}
		}
		if o.Valid {
			valid++
			byID[c.ID] = c
		}
		opts = append(opts, o)
	}
	if valid == 0 {
		return nil, nil
	}
	min, max := p.min, p.max
	if min > valid {
		min = valid
	}
	if max <= 0 || max > valid {
		max = valid
	}
	req := choice.NewRequest(p.kind, p.player.ID, p.prompt, opts, min, max)
	req.Optional = p.optional
	req.Source = gc.sourceID()
	req.Context = p.context
	ids, _, err := e.ask(ctx, req, p.fallback)
	if err != nil {
		return nil, err
	}
	picked := make([]*game.Card, 0, len(ids))
	for _, id := range ids {
		if len(picked) == max {
			break
		}
		if c, ok := byID[id]; ok {
			picked = append(picked, c)
			delete(byID, id)
		}
	}
	return picked, nil
}

// ask runs one choice flow to completion.
func (e *Engine) ask(ctx context.Context, req choice.Request, fallback func(choice.Request) choice.Response) ([]string, choice.Response, error) {
	f := choice.NewFlow()
	if err := f.Build(req); err != nil {
		return nil, choice.Response{}, err
	}
	start := time.Now()
	if err := f.Ask(ctx, e.chooser); err != nil {
		e.metrics.RecordChoice(ctx, string(choice.Failed), time.Since(start))
		return nil, choice.Response{}, err
	}
	e.metrics.RecordChoice(ctx, string(f.State()), time.Since(start))
	if f.State() == choice.Failed && e.chooser != nil {
		e.log.Warn("choice failed, using fallback", "request", req.ID, "player", req.PlayerID, "err", f.Err())
	}
	return f.Resolve(fallback)
}

// confirm asks a yes/no question. Declining or answering no is false; the
// fallback accepts.
func (e *Engine) confirm(ctx context.Context, gc *Context, p *game.Player, prompt string) (bool, error) {
	req := choice.NewRequest(choice.KindYesNo, p.ID, prompt, []choice.Option{
		{ID: "yes", Display: "Yes", Valid: true},
		{ID: "no", Display: "No", Valid: true},
	}, 1, 1)
	req.Optional = true
	req.Source = gc.sourceID()
	ids, _, err := e.ask(ctx, req, nil)
	if err != nil {
		return false, err
	}
	return len(ids) == 1 && ids[0] == "yes", nil
}

// amount asks for a number between lo and hi. Options are listed from hi
// down so the fallback takes the most.
func (e *Engine) amount(ctx context.Context, gc *Context, p *game.Player, prompt string, lo, hi int) (int, error) {
	if hi <= lo {
		return hi, nil
	}
	var opts []choice.Option
	for n := hi; n >= lo; n-- {
		id := strconv.Itoa(n)
		opts = append(opts, choice.Option{ID: id, Display: id, Valid: true})
	}
	req := choice.NewRequest(choice.KindAmount, p.ID, prompt, opts, 1, 1)
	req.Source = gc.sourceID()
	ids, _, err := e.ask(ctx, req, nil)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return hi, nil
	}
	n, err := strconv.Atoi(ids[0])
	if err != nil {
		return hi, nil
	}
	return n, nil
}

// mode asks which of n options to run and returns its index.
func (e *Engine) mode(ctx context.Context, gc *Context, labels []string) (int, error) {
	opts := make([]choice.Option, len(labels))
	for i, l := range labels {
		opts[i] = choice.Option{ID: strconv.Itoa(i), Display: l, Valid: true}
	}
	req := choice.NewRequest(choice.KindMode, gc.Player.ID, "Choose one", opts, 1, 1)
	req.Source = gc.sourceID()
	ids, _, err := e.ask(ctx, req, nil)
	if err != nil || len(ids) != 1 {
		return 0, err
	}
	i, err := strconv.Atoi(ids[0])
	if err != nil || i < 0 || i >= len(labels) {
		return 0, nil
	}
	return i, nil
}

// players resolves a player scope relative to the acting player.
func (e *Engine) players(ctx context.Context, scope ability.PlayerScope, gc *Context) ([]*game.Player, error) {
	s := gc.State
	switch scope {
	case ability.PlayerEachOpponent:
		return s.Opponents(gc.Player), nil
	case ability.PlayerEachPlayer:
		return s.Players, nil
	case ability.PlayerChosenOpponent:
		opps := s.Opponents(gc.Player)
		if len(opps) <= 1 {
			return opps, nil
		}
		opts := make([]choice.Option, len(opps))
		for i, o := range opps {
			opts[i] = choice.Option{ID: o.ID, Display: o.Name, Valid: true}
		}
		req := choice.NewRequest(choice.KindTarget, gc.Player.ID, "Choose an opponent", opts, 1, 1)
		req.Source = gc.sourceID()
		ids, _, err := e.ask(ctx, req, nil)
		if err != nil {
			return nil, err
		}
		for _, o := range opps {
			if len(ids) == 1 && ids[0] == o.ID {
				return []*game.Player{o}, nil
			}
		}
		return opps[:1], nil
	}
	if gc.Player == nil {
		return nil, nil
	}
	return []*game.Player{gc.Player}, nil
}

// reveal shows cards to every player except the acting one, one at a time,
// waiting for each acknowledgement before the next.
func (e *Engine) reveal(ctx context.Context, gc *Context, cards []*game.Card) error {
	if len(cards) == 0 || e.chooser == nil {
		return nil
	}
	opts := make([]choice.Option, len(cards))
	for i, c := range cards {
		opts[i] = choice.Option{ID: c.ID, Display: c.String()}
	}
	for _, p := range gc.State.Players {
		if p == gc.Player {
			continue
		}
		req := choice.NewRequest(choice.KindReveal, p.ID, "Revealed cards", opts, 0, 0)
		req.Optional = true
		req.Source = gc.sourceID()
		if _, err := e.chooser.RequestChoice(ctx, req); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			e.log.Debug("reveal not acknowledged", "player", p.ID, "err", err)
		}
	}
	return nil
}

// lowestValue is the deterministic opponent bot: it gives up the cards with
// the lowest willpower, then strength, then cost.
func (e *Engine) lowestValue(gc *Context, cards []*game.Card) func(choice.Request) choice.Response {
	return func(req choice.Request) choice.Response {
		byID := map[string]*game.Card{}
		for _, c := range cards {
			byID[c.ID] = c
		}
		ids := req.ValidIDs()
		sort.SliceStable(ids, func(i, j int) bool {
			a, b := byID[ids[i]], byID[ids[j]]
			aw, bw := e.stats.Willpower(a, gc.State), e.stats.Willpower(b, gc.State)
			if aw != bw {
				return aw < bw
			}
			as, bs := e.stats.Strength(a, gc.State), e.stats.Strength(b, gc.State)
			if as != bs {
				return as < bs
			}
			return a.Def.Cost < b.Def.Cost
		})
		n := req.Max
		if n <= 0 {
			n = req.Min
		}
		if n < len(ids) {
			ids = ids[:n]
		}
		return choice.Response{RequestID: req.ID, Selected: ids}
	}
}
