// internal/httpserver/routes_history.go
//
// History and statistics routes.
// Exposes:
//   - GET /history             → the session's completed-game list
//   - GET /history/export      → downloadable export document with summary
//   - GET /stats/leaderboard   → cross-session win counts (top 20 default)
//
// History is session-scoped (it lives in the persisted snapshot); the
// leaderboard aggregates every completed game the server has recorded.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nikosalonen/moelkky-sub000/internal/history"
	"github.com/nikosalonen/moelkky-sub000/internal/stats"
)

// mountHistory registers the history + stats routes.
func (s *Server) mountHistory(r chi.Router) {
	r.Route("/history", func(r chi.Router) {
		r.Get("/", s.handleHistory)
		r.Get("/export", s.handleHistoryExport)
	})
	r.Get("/stats/leaderboard", s.handleLeaderboard)
}

// handleHistory returns the completed games of the current session.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	snap := s.adapter.Load(r.Context(), sessionID(r))
	_ = json.NewEncoder(w).Encode(snap.History)
}

// handleHistoryExport builds and serves the export document. Sent with a
// content-disposition header so browsers offer it as a download.
func (s *Server) handleHistoryExport(w http.ResponseWriter, r *http.Request) {
	snap := s.adapter.Load(r.Context(), sessionID(r))
	doc := history.Export(snap.History, time.Now().UTC())
	w.Header().Set("Content-Disposition", `attachment; filename="molkky-history.json"`)
	_ = json.NewEncoder(w).Encode(doc)
}

// handleLeaderboard serves cross-session win counts from the stats store.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		_ = json.NewEncoder(w).Encode([]any{})
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	rows, err := s.stats.Leaderboard(r.Context(), limit)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []stats.LBRow{}
	}
	_ = json.NewEncoder(w).Encode(rows)
}
