package choice

import (
	"context"
	"errors"
	"sync"
)

var ErrScriptExhausted = errors.New("choice: script has no more responses")

// Script replays recorded responses in order and keeps every request it
// saw. Once the responses run out it fails, which sends the engine to its
// fallback.
type Script struct {
	mu        sync.Mutex
	responses []Response
	requests  []Request
}

func NewScript(responses ...Response) *Script {
	return &Script{responses: responses}
}

// Select is shorthand for a response picking ids.
func Select(ids ...string) Response { return Response{Selected: ids} }

func Decline() Response { return Response{Declined: true} }

func (s *Script) RequestChoice(_ context.Context, req Request) (Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if len(s.responses) == 0 {
		return Response{}, ErrScriptExhausted
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	resp.RequestID = req.ID
	return resp, nil
}

func (s *Script) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.responses)
}
