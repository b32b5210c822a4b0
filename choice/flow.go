package choice

import (
	"context"
	"errors"
	"fmt"
)

type State string

const (
	Idle            State = "idle"
	CandidatesBuilt State = "candidates_built"
	ChoiceRequested State = "choice_requested"
	Responded       State = "responded"
	Declined        State = "declined"
	Failed          State = "failed"
	Resolved        State = "resolved"
)

var ErrTransition = errors.New("choice: invalid transition")

var transitions = map[State][]State{
	Idle:            {CandidatesBuilt},
	CandidatesBuilt: {ChoiceRequested, Resolved},
	ChoiceRequested: {Responded, Declined, Failed},
	Responded:       {Resolved},
	Declined:        {Resolved},
	Failed:          {Resolved},
}

// Flow walks one interactive decision from candidate building to a resolved
// selection. No state is revisited.
type Flow struct {
	state    State
	history  []State
	req      Request
	resp     Response
	err      error
	selected []string
}

func NewFlow() *Flow {
	return &Flow{state: Idle, history: []State{Idle}}
}

func (f *Flow) State() State { return f.state }

func (f *Flow) History() []State { return append([]State(nil), f.history...) }

// Err is the transport or validation error that sent the flow to Failed.
func (f *Flow) Err() error { return f.err }

func (f *Flow) Request() Request { return f.req }

func (f *Flow) to(s State) error {
	for _, next := range transitions[f.state] {
		if next == s {
			f.state = s
			f.history = append(f.history, s)
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrTransition, f.state, s)
}

// Build records the request that will be asked.
func (f *Flow) Build(req Request) error {
	if err := f.to(CandidatesBuilt); err != nil {
		return err
	}
	f.req = req
	return nil
}

// Ask sends the request and classifies the outcome. A transport error or an
// invalid response moves the flow to Failed; only a context error is
// returned.
func (f *Flow) Ask(ctx context.Context, r Requester) error {
	if err := f.to(ChoiceRequested); err != nil {
		return err
	}
	if r == nil {
		f.err = ErrNoController
		return f.to(Failed)
	}
	resp, err := r.RequestChoice(ctx, f.req)
	if err == nil {
		err = f.req.Validate(resp)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			f.err = ctxErr
			_ = f.to(Failed)
			return ctxErr
		}
		f.err = err
		return f.to(Failed)
	}
	f.resp = resp
	if resp.Declined {
		return f.to(Declined)
	}
	return f.to(Responded)
}

// Resolve finishes the flow. Responded yields the selection, Declined an
// empty list and Failed the fallback.
func (f *Flow) Resolve(fallback func(Request) Response) ([]string, Response, error) {
	prev := f.state
	if err := f.to(Resolved); err != nil {
		return nil, Response{}, err
	}
	switch prev {
	case Responded:
		f.selected = f.resp.Selected
	case Failed, CandidatesBuilt:
		if fallback == nil {
			fallback = FirstValid
		}
		f.resp = fallback(f.req)
		f.selected = f.resp.Selected
	default:
		f.resp = Response{RequestID: f.req.ID, Declined: true}
		f.selected = nil
	}
	return f.selected, f.resp, nil
}
