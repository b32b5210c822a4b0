package wschoice

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, errorResponse{Error: http.StatusText(status), Message: message})
}

func respondWithJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("wschoice: encode response", "err", err)
	}
}

type cors struct {
	handler http.Handler
}

func (c cors) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	c.handler.ServeHTTP(w, r)
}

type requestLog struct {
	handler http.Handler
	log     *slog.Logger
}

func (l requestLog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	l.handler.ServeHTTP(w, r)
	l.log.Debug("http request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
}

// Players lists the connected players in name order.
func (s *Server) Players() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.sessions))
	for p := range s.sessions {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Routes mounts the websocket endpoint at /ws together with /healthz and
// /players. A non-nil metrics handler is served at /metrics.
func (s *Server) Routes(metrics http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]any{"status": "ok", "players": len(s.Players())})
	})
	mux.Handle("/players", s.tokens.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondWithError(w, http.StatusMethodNotAllowed, "only GET is allowed")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string][]string{"players": s.Players()})
	})))
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	return requestLog{handler: cors{mux}, log: s.log}
}
