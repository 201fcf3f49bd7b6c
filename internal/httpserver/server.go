// internal/httpserver/server.go
//
// HTTP server wiring for the Mölkky scorekeeper.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Session-scoped endpoints: roster management, game lifecycle, scoring.
//   - History + export endpoints and the cross-session leaderboard.
//
// Notes:
//   - Every game route runs under the session middleware (session.go); the
//     session cookie is the only identity in the system.
//   - A request dispatches exactly one action through the reducer; the new
//     snapshot is persisted best-effort and returned as the response body.
//   - Validation failures come back as 400 with an error body. Actions the
//     reducer ignores (wrong phase) return 200 with the unchanged snapshot.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/nikosalonen/moelkky-sub000/internal/game"
	"github.com/nikosalonen/moelkky-sub000/internal/session"
	"github.com/nikosalonen/moelkky-sub000/internal/state"
	"github.com/nikosalonen/moelkky-sub000/internal/stats"
)

// Server bundles router, session persistence adapter, and the stats store.
type Server struct {
	r       *chi.Mux
	adapter *session.Adapter
	stats   *stats.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(ad *session.Adapter, st *stats.Store) *Server {
	s := &Server{r: chi.NewRouter(), adapter: ad, stats: st}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"molkky-scorekeeper","endpoints":["/health","/state","POST /players","POST /game/start","POST /game/score","/history"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Session-scoped game routes.
	s.r.Group(func(r chi.Router) {
		r.Use(s.withSession())

		r.Get("/state", s.handleState)

		r.Post("/players", s.handleAddPlayer)
		r.Delete("/players/{id}", s.handleRemovePlayer)
		r.Post("/teams", s.handleAddTeam)
		r.Delete("/teams/{id}", s.handleRemoveTeam)

		r.Post("/game/start", s.handleStartGame)
		r.Post("/game/score", s.handleSubmitScore)
		r.Post("/game/penalty", s.handleApplyPenalty)
		r.Post("/game/next", s.handleNextTurn)
		r.Post("/game/end", s.handleEndGame)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/reset", s.handleReset)

		s.mountHistory(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ dispatch -----------------------------------

// dispatch loads the session snapshot, runs one action through the
// reducer, persists the result best-effort, and writes the new snapshot.
// Reducer validation failures map to 400.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, act state.Action) {
	sid := sessionID(r)
	cur := s.adapter.Load(r.Context(), sid)
	next, err := state.Reduce(cur, act)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.adapter.Save(r.Context(), sid, next)
	s.recordCompletion(r, cur, next)
	_ = json.NewEncoder(w).Encode(next)
}

// recordCompletion pushes a freshly finished game into the stats store.
// Best effort, non-fatal if it fails.
func (s *Server) recordCompletion(r *http.Request, prev, next game.AppState) {
	if s.stats == nil {
		return
	}
	if prev.Phase != game.PhasePlaying || next.Phase != game.PhaseFinished {
		return
	}
	g := next.CurrentGame
	if g == nil || !g.Finished() {
		return
	}
	winner := ""
	if g.Winner != nil {
		winner = g.Winner.Name
	} else if g.WinningTeam != nil {
		winner = g.WinningTeam.Name
	}
	res := stats.Result{
		GameID:     g.ID,
		Mode:       string(g.Mode),
		WinnerName: winner,
		Rounds:     g.TotalRounds,
		Penalties:  len(g.Penalties),
		DurationMs: g.EndedAt.Sub(g.StartedAt).Milliseconds(),
		FinishedAt: g.EndedAt.UTC().Format(time.RFC3339),
	}
	if err := s.stats.RecordGame(r.Context(), res); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("record completed game")
	}
}

// ------------------------------ handlers -----------------------------------

// handleState returns the current snapshot without dispatching anything.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.adapter.Load(r.Context(), sessionID(r))
	_ = json.NewEncoder(w).Encode(snap)
}

type addPlayerReq struct {
	Name string `json:"name"`
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var req addPlayerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.dispatch(w, r, state.AddPlayer{Name: req.Name})
}

func (s *Server) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, state.RemovePlayer{ID: chi.URLParam(r, "id")})
}

type addTeamReq struct {
	Name      string   `json:"name"`
	PlayerIDs []string `json:"playerIds"`
}

func (s *Server) handleAddTeam(w http.ResponseWriter, r *http.Request) {
	var req addTeamReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.dispatch(w, r, state.AddTeam{Name: req.Name, PlayerIDs: req.PlayerIDs})
}

func (s *Server) handleRemoveTeam(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, state.RemoveTeam{ID: chi.URLParam(r, "id")})
}

type startGameReq struct {
	Mode string `json:"mode"` // "individual" | "team"
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	mode := game.Mode(req.Mode)
	if mode == "" {
		mode = game.ModeIndividual
	}
	s.dispatch(w, r, state.StartGame{Mode: mode, At: time.Now().UTC()})
}

type submitScoreReq struct {
	Value     int  `json:"value"`
	SinglePin bool `json:"singlePin"`
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitScoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.dispatch(w, r, state.SubmitScore{Value: req.Value, SinglePin: req.SinglePin, At: time.Now().UTC()})
}

type penaltyReq struct {
	Reason string `json:"reason"`
}

func (s *Server) handleApplyPenalty(w http.ResponseWriter, r *http.Request) {
	var req penaltyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.dispatch(w, r, state.ApplyPenalty{Reason: req.Reason, At: time.Now().UTC()})
}

func (s *Server) handleNextTurn(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, state.NextTurn{})
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, state.EndGame{At: time.Now().UTC()})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, state.NewGame{})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, state.ResetAll{})
}

// ------------------------------- small util --------------------------------

// writeError encodes an error body; dynamic messages go through the JSON
// encoder so quoting stays correct.
func writeError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt reads an integer env var with a default.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
