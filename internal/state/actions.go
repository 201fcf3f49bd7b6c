// internal/state/actions.go
//
// The closed set of actions the reducer understands. One struct per kind;
// payload timestamps ride in on the action so the reducer itself never
// reads the clock.

package state

import (
	"time"

	"github.com/nikosalonen/moelkky-sub000/internal/game"
)

// Action is a tagged union of every state transition. The marker method
// keeps the set closed to this package's declarations.
type Action interface {
	isAction()
}

// AddPlayer adds a named player to the roster. Setup phase only.
type AddPlayer struct {
	Name string
}

// RemovePlayer removes a player (and their team membership) from the
// roster. Setup phase only.
type RemovePlayer struct {
	ID string
}

// AddTeam groups 1–4 existing unassigned players into a team, in throw
// order. Setup phase only.
type AddTeam struct {
	Name      string
	PlayerIDs []string
}

// RemoveTeam disbands a team; its members stay on the roster. Setup only.
type RemoveTeam struct {
	ID string
}

// StartGame moves setup → playing and opens a fresh game over the roster.
type StartGame struct {
	Mode game.Mode
	At   time.Time
}

// SubmitScore applies one throw by the active player or team.
type SubmitScore struct {
	Value     int
	SinglePin bool
	At        time.Time
}

// ApplyPenalty resets the active thrower to 25, logs a penalty record,
// and consumes the turn.
type ApplyPenalty struct {
	Reason string
	At     time.Time
}

// NextTurn passes the turn without a throw.
type NextTurn struct{}

// EndGame aborts a playing game: finished, no winner.
type EndGame struct {
	At time.Time
}

// NewGame archives the finished game and returns to setup with the same
// roster, all scores and eliminations cleared.
type NewGame struct{}

// ResetAll archives any finished game, then clears the roster entirely.
type ResetAll struct{}

func (AddPlayer) isAction()    {}
func (RemovePlayer) isAction() {}
func (AddTeam) isAction()      {}
func (RemoveTeam) isAction()   {}
func (StartGame) isAction()    {}
func (SubmitScore) isAction()  {}
func (ApplyPenalty) isAction() {}
func (NextTurn) isAction()     {}
func (EndGame) isAction()      {}
func (NewGame) isAction()      {}
func (ResetAll) isAction()     {}
