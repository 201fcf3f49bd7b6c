// internal/game/types.go
//
// Core type definitions for the Mölkky rules engine.
// Defines:
//   - Phase: lifecycle stage of a match (setup/playing/finished).
//   - Mode: individual vs. team play.
//   - Thrower: the score-carrying state shared by players and teams.
//   - Player, Team: roster entities.
//   - PenaltyRecord: append-only penalty log entry.
//   - Game: a single match from start to completion.
//   - AppState: the full session snapshot the reducer operates on.

package game

import (
	"time"

	"github.com/google/uuid"
)

// Phase represents the lifecycle stage of a match.
// Transitions only along setup → playing → finished → setup.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// Mode selects between individual and team play.
type Mode string

const (
	ModeIndividual Mode = "individual"
	ModeTeam       Mode = "team"
)

// Scoring constants. The target is exactly 50; overshooting resets to 25,
// as does a penalty. Three scoreless turns in a row eliminate a thrower.
const (
	WinningScore    = 50
	ResetScore      = 25
	EliminationMiss = 3

	SinglePinMin = 0 // 0 = miss
	SinglePinMax = 12
	MultiPinMin  = 2 // a multi-pin miss is recorded as single-pin 0
	MultiPinMax  = 12

	MaxNameLength = 50
	MinRosterSize = 2
	MinTeamSize   = 1
	MaxTeamSize   = 4
)

// Thrower holds the scoring state shared by players and teams.
// Score stays in [0,50]; Eliminated is monotonic within a game.
type Thrower struct {
	Score             int  `json:"score"`
	Penalties         int  `json:"penalties"`
	ConsecutiveMisses int  `json:"consecutiveMisses"`
	Eliminated        bool `json:"eliminated"`
	Active            bool `json:"active"`
}

// Player is a single participant. In team mode a player belongs to at most
// one team, referenced by TeamID.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Thrower
	TeamID string `json:"teamId,omitempty"`
}

// NewPlayer constructs a roster entry with a fresh identity and zeroed state.
func NewPlayer(name string) Player {
	return Player{ID: uuid.NewString(), Name: name}
}

// Team is an ordered group of 1–4 players. Member order is throw order;
// PlayerIndex is the cursor of the next member to throw.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Players     []Player `json:"players"`
	PlayerIndex int      `json:"playerIndex"`
	Thrower
}

// NewTeam constructs a team with a fresh identity. The members keep their
// own identities; the team carries the aggregate scoring state.
func NewTeam(name string, members []Player) Team {
	t := Team{ID: uuid.NewString(), Name: name, Players: make([]Player, len(members))}
	copy(t.Players, members)
	for i := range t.Players {
		t.Players[i].TeamID = t.ID
	}
	return t
}

// PenaltyRecord is an immutable log entry for a rule violation.
// Team fields are empty in individual mode.
type PenaltyRecord struct {
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	TeamID     string    `json:"teamId,omitempty"`
	TeamName   string    `json:"teamName,omitempty"`
	Reason     string    `json:"reason"`
	At         time.Time `json:"at"`
}

// Game is a single match. Winner/WinningTeam and EndedAt are set exactly
// once at completion; a nil winner with a non-nil EndedAt is a no-winner
// completion (everyone eliminated, or the game was ended early).
type Game struct {
	ID          string          `json:"id"`
	Mode        Mode            `json:"mode"`
	Players     []Player        `json:"players"`
	Teams       []Team          `json:"teams,omitempty"`
	Winner      *Player         `json:"winner,omitempty"`
	WinningTeam *Team           `json:"winningTeam,omitempty"`
	StartedAt   time.Time       `json:"startedAt"`
	EndedAt     *time.Time      `json:"endedAt,omitempty"`
	TotalRounds int             `json:"totalRounds"`
	Penalties   []PenaltyRecord `json:"penalties"`
}

// NewGame stamps a fresh match over the given roster.
func NewGame(mode Mode, players []Player, teams []Team, at time.Time) Game {
	g := Game{
		ID:        uuid.NewString(),
		Mode:      mode,
		StartedAt: at,
		Players:   make([]Player, len(players)),
		Penalties: []PenaltyRecord{},
	}
	copy(g.Players, players)
	if mode == ModeTeam {
		g.Teams = cloneTeams(teams)
	}
	return g
}

// Finished reports whether the game has been completed.
func (g Game) Finished() bool { return g.EndedAt != nil }

// AppState is the full session snapshot. It is only ever replaced as a
// whole by the reducer, never mutated in place.
type AppState struct {
	Phase       Phase    `json:"phase"`
	Mode        Mode     `json:"mode"`
	Players     []Player `json:"players"`
	Teams       []Team   `json:"teams,omitempty"`
	TurnIndex   int      `json:"turnIndex"`
	CurrentGame *Game    `json:"currentGame,omitempty"`
	History     []Game   `json:"history"`
}

// NewAppState returns the empty pre-game state.
func NewAppState() AppState {
	return AppState{
		Phase:   PhaseSetup,
		Mode:    ModeIndividual,
		Players: []Player{},
		History: []Game{},
	}
}

// Clone deep-copies the snapshot so a reducer can rewrite one branch
// without aliasing the previous state. Completed games in History are
// immutable, so that slice is copied one level deep only.
func (s AppState) Clone() AppState {
	out := s
	out.Players = make([]Player, len(s.Players))
	copy(out.Players, s.Players)
	out.Teams = cloneTeams(s.Teams)
	out.History = make([]Game, len(s.History))
	copy(out.History, s.History)
	if s.CurrentGame != nil {
		g := cloneGame(*s.CurrentGame)
		out.CurrentGame = &g
	}
	return out
}

// cloneGame deep-copies a game's roster snapshot and penalty log.
func cloneGame(g Game) Game {
	out := g
	out.Players = make([]Player, len(g.Players))
	copy(out.Players, g.Players)
	out.Teams = cloneTeams(g.Teams)
	out.Penalties = make([]PenaltyRecord, len(g.Penalties))
	copy(out.Penalties, g.Penalties)
	if g.Winner != nil {
		w := *g.Winner
		out.Winner = &w
	}
	if g.WinningTeam != nil {
		wt := *g.WinningTeam
		wt.Players = append([]Player(nil), g.WinningTeam.Players...)
		out.WinningTeam = &wt
	}
	if g.EndedAt != nil {
		end := *g.EndedAt
		out.EndedAt = &end
	}
	return out
}

// cloneTeams deep-copies a team slice, including member lists.
func cloneTeams(teams []Team) []Team {
	if teams == nil {
		return nil
	}
	out := make([]Team, len(teams))
	copy(out, teams)
	for i := range out {
		members := make([]Player, len(teams[i].Players))
		copy(members, teams[i].Players)
		out[i].Players = members
	}
	return out
}
