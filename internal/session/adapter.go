// internal/session/adapter.go
//
// Persistence adapter between the reducer's AppState snapshot and the
// session key/value store.
// Responsibilities:
//   - Serialize the snapshot to three JSON entries: the full AppState,
//     the in-progress game, and the game history.
//   - Restore a snapshot on load, falling back to the empty default for
//     any entry that is missing or fails to parse.
//   - Keep persistence failures away from the rules engine: every write
//     is best-effort, logged, and never propagated. A session whose
//     writes fail simply lives memory-only until it ends.
//
// Time fields travel as RFC 3339 strings (encoding/json's time.Time
// encoding) and come back equal to the original instant.

package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/nikosalonen/moelkky-sub000/internal/game"
	"github.com/nikosalonen/moelkky-sub000/internal/store"
)

// Storage keys, one per persisted entry.
const (
	KeyAppState    = "appState"
	KeyCurrentGame = "currentGame"
	KeyHistory     = "gameHistory"
)

// Adapter reads and writes one session's snapshot through a Store.
type Adapter struct {
	store store.Store
}

// NewAdapter wraps a Store.
func NewAdapter(st store.Store) *Adapter {
	return &Adapter{store: st}
}

// Load restores the session's snapshot. Each entry is independent: a
// missing or unparseable entry falls back to its default, so a corrupt
// history never takes the roster down with it.
func (a *Adapter) Load(ctx context.Context, sessionID string) game.AppState {
	s := game.NewAppState()

	if raw, ok := a.load(ctx, sessionID, KeyAppState); ok {
		var loaded game.AppState
		if err := json.Unmarshal(raw, &loaded); err != nil {
			log.Warn().Err(err).Str("key", KeyAppState).Msg("corrupt snapshot, starting fresh")
		} else {
			s = loaded
		}
	}
	if raw, ok := a.load(ctx, sessionID, KeyCurrentGame); ok {
		var g game.Game
		if err := json.Unmarshal(raw, &g); err != nil {
			log.Warn().Err(err).Str("key", KeyCurrentGame).Msg("corrupt current game, dropping")
			s.CurrentGame = nil
		} else {
			s.CurrentGame = &g
		}
	}
	if raw, ok := a.load(ctx, sessionID, KeyHistory); ok {
		var hist []game.Game
		if err := json.Unmarshal(raw, &hist); err != nil {
			log.Warn().Err(err).Str("key", KeyHistory).Msg("corrupt history, dropping")
		} else {
			s.History = hist
		}
	}

	if s.Players == nil {
		s.Players = []game.Player{}
	}
	if s.History == nil {
		s.History = []game.Game{}
	}
	return s
}

// Save persists the snapshot as its three entries. Failures are logged
// and swallowed; the caller's state machine never sees them.
func (a *Adapter) Save(ctx context.Context, sessionID string, s game.AppState) {
	a.save(ctx, sessionID, KeyAppState, s)
	if s.CurrentGame != nil {
		a.save(ctx, sessionID, KeyCurrentGame, s.CurrentGame)
	} else if err := a.store.Delete(ctx, sessionID, KeyCurrentGame); err != nil {
		log.Warn().Err(err).Str("key", KeyCurrentGame).Msg("clear persisted entry")
	}
	a.save(ctx, sessionID, KeyHistory, s.History)
}

// Clear drops every persisted entry for the session.
func (a *Adapter) Clear(ctx context.Context, sessionID string) {
	for _, key := range []string{KeyAppState, KeyCurrentGame, KeyHistory} {
		if err := a.store.Delete(ctx, sessionID, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("clear persisted entry")
		}
	}
}

// load fetches one raw entry; false means absent (or unreadable, which
// is treated the same way).
func (a *Adapter) load(ctx context.Context, sessionID, key string) ([]byte, bool) {
	raw, err := a.store.Load(ctx, sessionID, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("load persisted entry")
		return nil, false
	}
	return raw, true
}

// save marshals and writes one entry, best-effort.
func (a *Adapter) save(ctx context.Context, sessionID, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("encode persisted entry")
		return
	}
	if err := a.store.Save(ctx, sessionID, key, raw); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("persist entry")
	}
}
