package engine

import (
	"context"
	"fmt"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/choice"
	"github.com/SvenDH/inkwell/game"
)

type zoneFamily struct{ e *Engine }

func (f zoneFamily) handle(ctx context.Context, eff ability.Effect, gc *Context) (bool, error) {
	e := f.e
	s := gc.State
	switch eff := eff.(type) {
	case ability.SearchDeck:
		return true, e.searchDeck(ctx, eff, gc)
	case ability.ShuffleDeck:
		players, err := e.players(ctx, eff.Player, gc)
		if err != nil {
			return true, err
		}
		for _, p := range players {
			p.Deck.Shuffle(s.Rand())
		}
	case ability.LookAndDistribute:
		return true, e.lookAndDistribute(ctx, eff, gc)
	case ability.LookAndTake:
		return true, e.lookAndTake(ctx, eff, gc)
	case ability.Mill:
		players, err := e.players(ctx, eff.Player, gc)
		if err != nil {
			return true, err
		}
		for _, p := range players {
			for _, c := range p.Deck.Top(eff.Amount) {
				if err := s.Move(c, ability.ZoneDiscard); err != nil {
					return true, err
				}
			}
		}
	case ability.ReturnToHand:
		return true, e.moveTargets(ctx, eff.Target, gc, ability.ZoneHand, false)
	case ability.PutOnBottom:
		return true, e.moveTargets(ctx, eff.Target, gc, ability.ZoneDeck, true)
	case ability.ReturnFromDiscard:
		amount := max(eff.Amount, 1)
		var candidates []*game.Card
		for _, c := range gc.Player.Discard.Cards() {
			if eff.Filter.MatchStatic(c.Def) {
				candidates = append(candidates, c)
			}
		}
		picked, err := e.pick(ctx, gc, selection{
			player: gc.Player,
			kind:   choice.KindTarget,
			prompt: "Choose a card from your discard",
			cards:  candidates,
			min:    amount,
			max:    amount,
		})
		if err != nil {
			return true, err
		}
		for _, c := range picked {
			if err := e.place(ctx, gc, c, destination(eff.Destination)); err != nil {
				return true, err
			}
		}
	case ability.Discard:
		players, err := e.players(ctx, eff.Player, gc)
		if err != nil {
			return true, err
		}
		for _, p := range players {
			if err := e.discard(ctx, gc, p, max(eff.Amount, 1), eff.Random); err != nil {
				return true, err
			}
		}
	case ability.DiscardHand:
		players, err := e.players(ctx, eff.Player, gc)
		if err != nil {
			return true, err
		}
		for _, p := range players {
			for _, c := range append([]*game.Card(nil), p.Hand.Cards()...) {
				if err := s.Move(c, ability.ZoneDiscard); err != nil {
					return true, err
				}
			}
		}
	case ability.PutIntoInkwell:
		targets, err := e.ResolveTargets(ctx, eff.Target, gc)
		if err != nil {
			return true, err
		}
		for _, c := range targets {
			if err := s.Move(c, ability.ZoneInkwell); err != nil {
				return true, err
			}
			c.Exerted = eff.Exerted
		}
	case ability.InkFromDeck:
		players, err := e.players(ctx, eff.Player, gc)
		if err != nil {
			return true, err
		}
		for _, p := range players {
			for _, c := range p.Deck.Top(max(eff.Amount, 1)) {
				if err := s.Move(c, ability.ZoneInkwell); err != nil {
					return true, err
				}
				c.Exerted = eff.Exerted
			}
		}
	case ability.ShuffleIntoDeck:
		targets, err := e.ResolveTargets(ctx, eff.Target, gc)
		if err != nil {
			return true, err
		}
		shuffled := map[*game.Player]bool{}
		for _, c := range targets {
			if err := s.Move(c, ability.ZoneDeck); err != nil {
				return true, err
			}
			shuffled[c.Owner] = true
		}
		for _, p := range s.Players {
			if shuffled[p] {
				p.Deck.Shuffle(s.Rand())
			}
		}
	default:
		return false, nil
	}
	return true, nil
}

func destination(z ability.Zone) ability.Zone {
	if z == "" {
		return ability.ZoneHand
	}
	return z
}

func (e *Engine) moveTargets(ctx context.Context, target ability.Target, gc *Context, to ability.Zone, bottom bool) error {
	targets, err := e.ResolveTargets(ctx, target, gc)
	if err != nil {
		return err
	}
	for _, c := range targets {
		if bottom {
			err = gc.State.MoveToBottom(c, to)
		} else {
			err = gc.State.Move(c, to)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// place moves c into zone, entering play properly when zone is play.
func (e *Engine) place(ctx context.Context, gc *Context, c *game.Card, zone ability.Zone) error {
	if zone == ability.ZonePlay {
		return e.EnterPlay(ctx, gc.State, c)
	}
	return gc.State.Move(c, zone)
}

func (e *Engine) discard(ctx context.Context, gc *Context, p *game.Player, n int, random bool) error {
	s := gc.State
	hand := append([]*game.Card(nil), p.Hand.Cards()...)
	if n > len(hand) {
		n = len(hand)
	}
	var picked []*game.Card
	if random {
		for _, i := range s.Rand().Perm(len(hand))[:n] {
			picked = append(picked, hand[i])
		}
	} else {
		var err error
		picked, err = e.pick(ctx, gc, selection{
			player: p,
			kind:   choice.KindTarget,
			prompt: fmt.Sprintf("Discard %d", n),
			cards:  hand,
			min:    n,
			max:    n,
		})
		if err != nil {
			return err
		}
	}
	for _, c := range picked {
		if err := s.Move(c, ability.ZoneDiscard); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) searchDeck(ctx context.Context, eff ability.SearchDeck, gc *Context) error {
	s := gc.State
	p := gc.Player
	amount := max(eff.Amount, 1)
	var candidates []*game.Card
	for _, c := range p.Deck.Cards() {
		if eff.Filter.MatchStatic(c.Def) {
			candidates = append(candidates, c)
		}
	}
	picked, err := e.pick(ctx, gc, selection{
		player:   p,
		kind:     choice.KindTarget,
		prompt:   "Search your deck",
		cards:    candidates,
		min:      0,
		max:      amount,
		optional: true,
	})
	if err != nil {
		return err
	}
	for _, c := range picked {
		if err := e.place(ctx, gc, c, destination(eff.Destination)); err != nil {
			return err
		}
	}
	if eff.Reveal {
		if err := e.reveal(ctx, gc, picked); err != nil {
			return err
		}
	}
	if eff.Shuffle == nil || *eff.Shuffle {
		p.Deck.Shuffle(s.Rand())
	}
	return nil
}

// lookAndDistribute answers with a payload {"top": ids, "bottom": ids}, each
// list ordered top to bottom as the cards will lie. The top cards go back on
// top of the deck in that order; the bottom cards go under the rest, the
// last listed becoming the bottom card. Any other answer keeps the cards on
// top in their original order, or puts them all on the bottom when only the
// bottom is allowed.
func (e *Engine) lookAndDistribute(ctx context.Context, eff ability.LookAndDistribute, gc *Context) error {
	p := gc.Player
	looked := p.Deck.Top(eff.Amount)
	if len(looked) == 0 {
		return nil
	}
	opts := make([]choice.Option, len(looked))
	for i, c := range looked {
		opts[i] = choice.Option{ID: c.ID, Display: c.String(), Valid: true}
	}
	req := choice.NewRequest(choice.KindDistribute, p.ID, "Put these cards on the top or bottom of your deck", opts, 0, len(looked))
	req.Source = gc.sourceID()
	req.Context = map[string]any{"topOnly": eff.TopOnly, "bottomOnly": eff.BottomOnly}

	fallback := func(choice.Request) choice.Response {
		ids := make([]string, len(looked))
		for i, c := range looked {
			ids[i] = c.ID
		}
		if eff.BottomOnly {
			return choice.Response{Payload: map[string][]string{"bottom": ids}}
		}
		return choice.Response{Payload: map[string][]string{"top": ids}}
	}
	_, resp, err := e.ask(ctx, req, fallback)
	if err != nil {
		return err
	}
	top, bottom, ok := distribution(resp, looked, eff)
	if !ok {
		if resp.Payload != nil || len(resp.Selected) > 0 {
			e.log.Warn("invalid distribution, keeping order", "request", req.ID)
		}
		top, bottom, _ = distribution(fallback(req), looked, eff)
	}

	rest := p.Deck.Cards()[:p.Deck.Len()-len(looked)]
	deck := make([]*game.Card, 0, p.Deck.Len())
	for i := len(bottom) - 1; i >= 0; i-- {
		deck = append(deck, bottom[i])
	}
	deck = append(deck, rest...)
	for i := len(top) - 1; i >= 0; i-- {
		deck = append(deck, top[i])
	}
	p.Deck.Set(deck)
	return nil
}

// distribution checks that every looked-at card appears exactly once.
func distribution(resp choice.Response, looked []*game.Card, eff ability.LookAndDistribute) (top, bottom []*game.Card, ok bool) {
	if resp.Payload == nil {
		return nil, nil, false
	}
	byID := map[string]*game.Card{}
	for _, c := range looked {
		byID[c.ID] = c
	}
	seen := map[string]bool{}
	collect := func(ids []string) ([]*game.Card, bool) {
		var cards []*game.Card
		for _, id := range ids {
			c, found := byID[id]
			if !found || seen[id] {
				return nil, false
			}
			seen[id] = true
			cards = append(cards, c)
		}
		return cards, true
	}
	top, okTop := collect(resp.Payload["top"])
	bottom, okBottom := collect(resp.Payload["bottom"])
	if !okTop || !okBottom || len(seen) != len(looked) {
		return nil, nil, false
	}
	if (eff.TopOnly && len(bottom) > 0) || (eff.BottomOnly && len(top) > 0) {
		return nil, nil, false
	}
	return top, bottom, true
}

// lookAndTake takes up to Take matching cards from the top Amount and puts
// the others on the bottom in the order they were seen.
func (e *Engine) lookAndTake(ctx context.Context, eff ability.LookAndTake, gc *Context) error {
	s := gc.State
	p := gc.Player
	looked := p.Deck.Top(eff.Amount)
	if len(looked) == 0 {
		return nil
	}
	take := max(eff.Take, 1)
	picked, err := e.pick(ctx, gc, selection{
		player:   p,
		kind:     choice.KindTarget,
		prompt:   "Choose cards to take",
		cards:    looked,
		min:      0,
		max:      take,
		optional: true,
		invalid: func(c *game.Card) string {
			if !eff.Filter.MatchStatic(c.Def) {
				return "does not match"
			}
			return ""
		},
	})
	if err != nil {
		return err
	}
	taken := map[*game.Card]bool{}
	for _, c := range picked {
		taken[c] = true
		if err := e.place(ctx, gc, c, destination(eff.Destination)); err != nil {
			return err
		}
	}
	if eff.Reveal {
		if err := e.reveal(ctx, gc, picked); err != nil {
			return err
		}
	}
	for _, c := range looked {
		if taken[c] {
			continue
		}
		if err := s.MoveToBottom(c, ability.ZoneDeck); err != nil {
			return err
		}
	}
	return nil
}
