// Package choice is the protocol between the engine and whatever decides on
// a player's behalf: a person over the network, a bot or a test script.
package choice

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
)

var (
	ErrNoController = errors.New("choice: no controller for player")
	ErrInvalid      = errors.New("choice: invalid response")
)

type Kind string

const (
	KindTarget     Kind = "target"
	KindAmount     Kind = "amount"
	KindYesNo      Kind = "yes_no"
	KindMode       Kind = "mode"
	KindDistribute Kind = "distribute"
	KindOpponent   Kind = "opponent_choice"
	KindReveal     Kind = "reveal"
)

type Option struct {
	ID            string `json:"id"`
	Display       string `json:"display"`
	Valid         bool   `json:"valid"`
	InvalidReason string `json:"invalidReason,omitempty"`
}

// Request asks one player to pick between Min and Max of Options.
type Request struct {
	ID       string         `json:"id"`
	Type     Kind           `json:"type"`
	PlayerID string         `json:"playerId"`
	Prompt   string         `json:"prompt"`
	Options  []Option       `json:"options"`
	Min      int            `json:"min"`
	Max      int            `json:"max"`
	Optional bool           `json:"optional"`
	Source   string         `json:"source,omitempty"`
	Context  map[string]any `json:"context,omitempty"`
}

func NewRequest(kind Kind, playerID, prompt string, opts []Option, min, max int) Request {
	return Request{
		ID:       ulid.Make().String(),
		Type:     kind,
		PlayerID: playerID,
		Prompt:   prompt,
		Options:  opts,
		Min:      min,
		Max:      max,
	}
}

// ValidIDs returns the ids of the valid options in order.
func (r Request) ValidIDs() []string {
	var ids []string
	for _, o := range r.Options {
		if o.Valid {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// Response is a player's answer. Payload carries structured answers such as
// the top and bottom piles of a look-and-distribute.
type Response struct {
	RequestID string              `json:"requestId"`
	Selected  []string            `json:"selectedIds"`
	Declined  bool                `json:"declined,omitempty"`
	Payload   map[string][]string `json:"payload,omitempty"`
}

// Validate checks a response against the request it answers.
func (r Request) Validate(resp Response) error {
	if resp.Declined {
		if !r.Optional {
			return fmt.Errorf("%w: request %s cannot be declined", ErrInvalid, r.ID)
		}
		return nil
	}
	if resp.Payload != nil && r.Type != KindDistribute {
		return fmt.Errorf("%w: payload not allowed for %s request", ErrInvalid, r.Type)
	}
	if len(resp.Selected) < r.Min || (r.Max > 0 && len(resp.Selected) > r.Max) {
		return fmt.Errorf("%w: %d selections, want %d..%d", ErrInvalid, len(resp.Selected), r.Min, r.Max)
	}
	valid := map[string]bool{}
	for _, id := range r.ValidIDs() {
		valid[id] = true
	}
	if err := checkIDs(resp.Selected, valid); err != nil {
		return err
	}
	// A card goes to exactly one pile.
	var piled []string
	for _, ids := range resp.Payload {
		piled = append(piled, ids...)
	}
	return checkIDs(piled, valid)
}

func checkIDs(ids []string, valid map[string]bool) error {
	seen := map[string]bool{}
	for _, id := range ids {
		if !valid[id] || seen[id] {
			return fmt.Errorf("%w: option %q", ErrInvalid, id)
		}
		seen[id] = true
	}
	return nil
}

// Requester delivers a request to a player's controller and blocks until
// it answers or fails.
type Requester interface {
	RequestChoice(ctx context.Context, req Request) (Response, error)
}

type RequesterFunc func(ctx context.Context, req Request) (Response, error)

func (f RequesterFunc) RequestChoice(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// Router sends each request to the requester registered for its player.
type Router map[string]Requester

func (rt Router) RequestChoice(ctx context.Context, req Request) (Response, error) {
	r, ok := rt[req.PlayerID]
	if !ok || r == nil {
		return Response{}, fmt.Errorf("%w %q", ErrNoController, req.PlayerID)
	}
	return r.RequestChoice(ctx, req)
}

// FirstValid is the deterministic answer used when no controller responds:
// the first Max valid options, or Min when Max is unbounded.
func FirstValid(req Request) Response {
	n := req.Max
	if n <= 0 {
		n = req.Min
	}
	ids := req.ValidIDs()
	if n < len(ids) {
		ids = ids[:n]
	}
	return Response{RequestID: req.ID, Selected: ids}
}

// Bot answers every request with FirstValid.
var Bot = RequesterFunc(func(_ context.Context, req Request) (Response, error) {
	return FirstValid(req), nil
})
