// Package wschoice carries choice requests to players over websockets. Each
// player holds one authenticated session; the server implements
// choice.Requester by sending the request down that session and waiting for
// the matching response.
package wschoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SvenDH/inkwell/choice"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024

	RequestAction  = "choice.request"
	ResponseAction = "choice.response"
	ErrorAction    = "error"
)

var ErrSessionClosed = errors.New("wschoice: session closed")

type Message struct {
	Type     string           `json:"type"`
	Request  *choice.Request  `json:"request,omitempty"`
	Response *choice.Response `json:"response,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func (m *Message) encode() []byte {
	data, _ := json.Marshal(m)
	return data
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Server struct {
	tokens *Tokens
	log    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewServer(tokens *Tokens, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{tokens: tokens, log: log, sessions: map[string]*session{}}
}

// Handler serves the authenticated websocket endpoint.
func (s *Server) Handler() http.Handler {
	return s.tokens.Middleware(http.HandlerFunc(s.serveWs))
}

func (s *Server) Connected(player string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[player]
	return ok
}

// RequestChoice implements choice.Requester.
func (s *Server) RequestChoice(ctx context.Context, req choice.Request) (choice.Response, error) {
	s.mu.Lock()
	sess := s.sessions[req.PlayerID]
	s.mu.Unlock()
	if sess == nil {
		return choice.Response{}, fmt.Errorf("%w %q", choice.ErrNoController, req.PlayerID)
	}
	return sess.request(ctx, req)
}

func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	player, ok := PlayerFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "player", player, "err", err)
		return
	}
	sess := newSession(conn, player, s.log)
	s.mu.Lock()
	if old := s.sessions[player]; old != nil {
		old.close()
	}
	s.sessions[player] = sess
	s.mu.Unlock()
	s.log.Info("player connected", "player", player)

	go sess.writePump()
	go func() {
		sess.readPump()
		s.mu.Lock()
		if s.sessions[player] == sess {
			delete(s.sessions, player)
		}
		s.mu.Unlock()
		s.log.Info("player disconnected", "player", player)
	}()
}

type session struct {
	player string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	log    *slog.Logger

	mu      sync.Mutex
	pending map[string]chan choice.Response
}

func newSession(conn *websocket.Conn, player string, log *slog.Logger) *session {
	return &session{
		player:  player,
		conn:    conn,
		send:    make(chan []byte, 16),
		done:    make(chan struct{}),
		log:     log,
		pending: map[string]chan choice.Response{},
	}
}

func (c *session) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *session) request(ctx context.Context, req choice.Request) (choice.Response, error) {
	ch := make(chan choice.Response, 1)
	c.mu.Lock()
	c.pending[req.ID] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, req.ID)
		c.mu.Unlock()
	}()

	m := Message{Type: RequestAction, Request: &req}
	select {
	case c.send <- m.encode():
	case <-c.done:
		return choice.Response{}, ErrSessionClosed
	case <-ctx.Done():
		return choice.Response{}, ctx.Err()
	}
	select {
	case resp := <-ch:
		return resp, nil
	case <-c.done:
		return choice.Response{}, ErrSessionClosed
	case <-ctx.Done():
		return choice.Response{}, ctx.Err()
	}
}

func (c *session) deliver(resp choice.Response) bool {
	c.mu.Lock()
	ch, ok := c.pending[resp.RequestID]
	c.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case ch <- resp:
	default:
	}
	return true
}

func (c *session) readPump() {
	defer c.close()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("unexpected close", "player", c.player, "err", err)
			}
			return
		}
		c.handle(data)
	}
}

func (c *session) handle(data []byte) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		c.reply(Message{Type: ErrorAction, Error: "malformed message"})
		return
	}
	switch m.Type {
	case ResponseAction:
		if m.Response == nil || !c.deliver(*m.Response) {
			c.reply(Message{Type: ErrorAction, Error: "no pending request"})
		}
	default:
		c.reply(Message{Type: ErrorAction, Error: fmt.Sprintf("unknown message type %q", m.Type)})
	}
}

func (c *session) reply(m Message) {
	select {
	case c.send <- m.encode():
	case <-c.done:
	}
}

func (c *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()
	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
