// internal/state/reducer.go
//
// The single transition function over game.AppState.
// Responsibilities:
//   - Validate action payloads (names, scores, roster sizes) and surface
//     failures as errors with the state unchanged.
//   - Silently ignore actions that are illegal for the current phase
//     (e.g. a score submitted while not playing): unchanged state, nil error.
//   - Compose the rules engine into full turn handling: score application,
//     win detection, elimination, round counting, turn rotation.
//
// Notes:
//   - Reduce never mutates its input; it clones and rewrites.
//   - Turn rotation skips eliminated throwers. The bare NextIndex primitive
//     does not; the skip loop lives here, bounded to one full cycle.
package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikosalonen/moelkky-sub000/internal/game"
)

// Reduce maps (state, action) to the next state. Validation failures
// return the input state with an error; phase violations return the input
// state with no error.
func Reduce(s game.AppState, a Action) (game.AppState, error) {
	switch act := a.(type) {
	case AddPlayer:
		return addPlayer(s, act)
	case RemovePlayer:
		return removePlayer(s, act)
	case AddTeam:
		return addTeam(s, act)
	case RemoveTeam:
		return removeTeam(s, act)
	case StartGame:
		return startGame(s, act)
	case SubmitScore:
		return submitScore(s, act)
	case ApplyPenalty:
		return applyPenalty(s, act)
	case NextTurn:
		return nextTurn(s)
	case EndGame:
		return endGame(s, act)
	case NewGame:
		return newGame(s)
	case ResetAll:
		return resetAll(s)
	}
	return s, nil
}

// ----------------------------- roster ---------------------------------

func addPlayer(s game.AppState, a AddPlayer) (game.AppState, error) {
	if s.Phase != game.PhaseSetup {
		return s, nil
	}
	if err := game.ValidatePlayerName(a.Name, s.Players); err != nil {
		return s, err
	}
	next := s.Clone()
	next.Players = append(next.Players, game.NewPlayer(strings.TrimSpace(a.Name)))
	return next, nil
}

func removePlayer(s game.AppState, a RemovePlayer) (game.AppState, error) {
	if s.Phase != game.PhaseSetup {
		return s, nil
	}
	idx := -1
	for i := range s.Players {
		if s.Players[i].ID == a.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, nil
	}
	next := s.Clone()
	next.Players = append(next.Players[:idx], next.Players[idx+1:]...)
	// Drop the player from any team; a team emptied out disappears with them.
	for t := 0; t < len(next.Teams); t++ {
		members := next.Teams[t].Players
		for m := range members {
			if members[m].ID == a.ID {
				next.Teams[t].Players = append(members[:m], members[m+1:]...)
				break
			}
		}
		if len(next.Teams[t].Players) == 0 {
			next.Teams = append(next.Teams[:t], next.Teams[t+1:]...)
			t--
		}
	}
	return next, nil
}

func addTeam(s game.AppState, a AddTeam) (game.AppState, error) {
	if s.Phase != game.PhaseSetup {
		return s, nil
	}
	if err := game.ValidateTeamName(a.Name, s.Teams); err != nil {
		return s, err
	}
	if len(a.PlayerIDs) < game.MinTeamSize || len(a.PlayerIDs) > game.MaxTeamSize {
		return s, fmt.Errorf("a team needs %d–%d players", game.MinTeamSize, game.MaxTeamSize)
	}
	members := make([]game.Player, 0, len(a.PlayerIDs))
	seen := make(map[string]bool, len(a.PlayerIDs))
	for _, id := range a.PlayerIDs {
		if seen[id] {
			return s, errors.New("duplicate player in team")
		}
		seen[id] = true
		found := false
		for i := range s.Players {
			if s.Players[i].ID == id {
				if s.Players[i].TeamID != "" {
					return s, fmt.Errorf("player %q is already on a team", s.Players[i].Name)
				}
				members = append(members, s.Players[i])
				found = true
				break
			}
		}
		if !found {
			return s, errors.New("unknown player id")
		}
	}
	next := s.Clone()
	team := game.NewTeam(strings.TrimSpace(a.Name), members)
	for i := range next.Players {
		if seen[next.Players[i].ID] {
			next.Players[i].TeamID = team.ID
		}
	}
	next.Teams = append(next.Teams, team)
	return next, nil
}

func removeTeam(s game.AppState, a RemoveTeam) (game.AppState, error) {
	if s.Phase != game.PhaseSetup {
		return s, nil
	}
	idx := -1
	for i := range s.Teams {
		if s.Teams[i].ID == a.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, nil
	}
	next := s.Clone()
	next.Teams = append(next.Teams[:idx], next.Teams[idx+1:]...)
	for i := range next.Players {
		if next.Players[i].TeamID == a.ID {
			next.Players[i].TeamID = ""
		}
	}
	return next, nil
}

// ---------------------------- lifecycle --------------------------------

func startGame(s game.AppState, a StartGame) (game.AppState, error) {
	if s.Phase != game.PhaseSetup {
		return s, nil
	}
	switch a.Mode {
	case game.ModeIndividual:
		if len(s.Players) < game.MinRosterSize {
			return s, fmt.Errorf("need at least %d players", game.MinRosterSize)
		}
	case game.ModeTeam:
		if len(s.Teams) < game.MinRosterSize {
			return s, fmt.Errorf("need at least %d teams", game.MinRosterSize)
		}
	default:
		return s, errors.New("unknown game mode")
	}
	next := s.Clone()
	next.Mode = a.Mode
	next.Phase = game.PhasePlaying
	next.TurnIndex = 0
	setActive(&next, 0)
	g := game.NewGame(a.Mode, next.Players, next.Teams, a.At)
	next.CurrentGame = &g
	return next, nil
}

func submitScore(s game.AppState, a SubmitScore) (game.AppState, error) {
	if s.Phase != game.PhasePlaying || s.CurrentGame == nil {
		return s, nil
	}
	if err := game.ValidateScore(a.Value, a.SinglePin); err != nil {
		return s, err
	}
	if !turnIndexValid(s) {
		return s, nil
	}
	next := s.Clone()

	if next.Mode == game.ModeTeam {
		team := &next.Teams[next.TurnIndex]
		if team.Eliminated {
			return s, nil
		}
		tr, _ := game.ApplyScore(team.Thrower, a.Value)
		team.Thrower = game.RecordMiss(tr, a.Value)
		team.PlayerIndex = game.NextIndex(team.PlayerIndex, len(team.Players))
		if game.HasWon(team.Thrower) {
			finishGame(&next, nil, team, a.At)
			return next, nil
		}
		if game.AllTeamsEliminated(next.Teams) {
			finishGame(&next, nil, nil, a.At)
			return next, nil
		}
		advanceTurn(&next)
		return next, nil
	}

	p := &next.Players[next.TurnIndex]
	if p.Eliminated {
		return s, nil
	}
	tr, _ := game.ApplyScore(p.Thrower, a.Value)
	p.Thrower = game.RecordMiss(tr, a.Value)
	if game.HasWon(p.Thrower) {
		finishGame(&next, p, nil, a.At)
		return next, nil
	}
	if game.AllEliminated(next.Players) {
		finishGame(&next, nil, nil, a.At)
		return next, nil
	}
	advanceTurn(&next)
	return next, nil
}

func applyPenalty(s game.AppState, a ApplyPenalty) (game.AppState, error) {
	if s.Phase != game.PhasePlaying || s.CurrentGame == nil {
		return s, nil
	}
	if !turnIndexValid(s) {
		return s, nil
	}
	next := s.Clone()

	var rec game.PenaltyRecord
	if next.Mode == game.ModeTeam {
		team := &next.Teams[next.TurnIndex]
		if team.Eliminated {
			return s, nil
		}
		thrower := team.Players[team.PlayerIndex]
		team.Thrower = game.ApplyPenalty(team.Thrower)
		team.PlayerIndex = game.NextIndex(team.PlayerIndex, len(team.Players))
		rec = game.PenaltyRecord{
			PlayerID:   thrower.ID,
			PlayerName: thrower.Name,
			TeamID:     team.ID,
			TeamName:   team.Name,
			Reason:     a.Reason,
			At:         a.At,
		}
	} else {
		p := &next.Players[next.TurnIndex]
		if p.Eliminated {
			return s, nil
		}
		p.Thrower = game.ApplyPenalty(p.Thrower)
		rec = game.PenaltyRecord{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Reason:     a.Reason,
			At:         a.At,
		}
	}
	next.CurrentGame.Penalties = append(next.CurrentGame.Penalties, rec)
	// A penalty lands on 25 and can never win; advance like any other turn.
	advanceTurn(&next)
	return next, nil
}

func nextTurn(s game.AppState) (game.AppState, error) {
	if s.Phase != game.PhasePlaying || !turnIndexValid(s) {
		return s, nil
	}
	next := s.Clone()
	advanceTurn(&next)
	return next, nil
}

func endGame(s game.AppState, a EndGame) (game.AppState, error) {
	if s.Phase != game.PhasePlaying || s.CurrentGame == nil {
		return s, nil
	}
	next := s.Clone()
	finishGame(&next, nil, nil, a.At)
	return next, nil
}

func newGame(s game.AppState) (game.AppState, error) {
	if s.Phase != game.PhaseFinished {
		return s, nil
	}
	next := s.Clone()
	if next.CurrentGame != nil {
		next.History = append(next.History, *next.CurrentGame)
		next.CurrentGame = nil
	}
	for i := range next.Players {
		next.Players[i].Thrower = game.Thrower{}
	}
	for i := range next.Teams {
		next.Teams[i].Thrower = game.Thrower{}
		next.Teams[i].PlayerIndex = 0
		for m := range next.Teams[i].Players {
			next.Teams[i].Players[m].Thrower = game.Thrower{}
		}
	}
	next.TurnIndex = 0
	next.Phase = game.PhaseSetup
	return next, nil
}

func resetAll(s game.AppState) (game.AppState, error) {
	// Resetting mid-game would skip the finished phase; refuse silently.
	if s.Phase == game.PhasePlaying {
		return s, nil
	}
	next := game.NewAppState()
	next.History = append(next.History, s.History...)
	if s.CurrentGame != nil && s.CurrentGame.Finished() {
		next.History = append(next.History, *s.CurrentGame)
	}
	return next, nil
}

// ----------------------------- helpers ---------------------------------

// turnIndexValid checks TurnIndex against the roster the current mode
// rotates over.
func turnIndexValid(s game.AppState) bool {
	if s.Mode == game.ModeTeam {
		return s.TurnIndex >= 0 && s.TurnIndex < len(s.Teams)
	}
	return s.TurnIndex >= 0 && s.TurnIndex < len(s.Players)
}

// setActive marks exactly one roster slot active.
func setActive(s *game.AppState, idx int) {
	if s.Mode == game.ModeTeam {
		for i := range s.Teams {
			s.Teams[i].Active = i == idx
		}
		return
	}
	for i := range s.Players {
		s.Players[i].Active = i == idx
	}
}

// clearActive drops the active flag everywhere; used when play stops.
func clearActive(s *game.AppState) {
	for i := range s.Players {
		s.Players[i].Active = false
	}
	for i := range s.Teams {
		s.Teams[i].Active = false
	}
}

// advanceTurn moves TurnIndex to the next non-eliminated roster slot,
// at most one full cycle, and counts a round whenever the cursor passes
// slot 0. Callers guarantee at least one live thrower remains.
func advanceTurn(s *game.AppState) {
	var total int
	var dead func(int) bool
	if s.Mode == game.ModeTeam {
		total = len(s.Teams)
		dead = func(i int) bool { return s.Teams[i].Eliminated }
	} else {
		total = len(s.Players)
		dead = func(i int) bool { return s.Players[i].Eliminated }
	}
	next := s.TurnIndex
	wrapped := false
	for step := 0; step < total; step++ {
		next = game.NextIndex(next, total)
		if next == 0 {
			wrapped = true
		}
		if !dead(next) {
			break
		}
	}
	s.TurnIndex = next
	setActive(s, next)
	if wrapped && s.CurrentGame != nil {
		s.CurrentGame.TotalRounds++
	}
}

// finishGame refreshes the game's roster snapshot, stamps the completion,
// and moves the session to the finished phase.
func finishGame(s *game.AppState, winner *game.Player, winningTeam *game.Team, at time.Time) {
	g := *s.CurrentGame
	g.Players = append([]game.Player(nil), s.Players...)
	if len(s.Teams) > 0 {
		g.Teams = append([]game.Team(nil), s.Teams...)
	}
	g = game.CompleteGame(g, winner, winningTeam, at)
	s.CurrentGame = &g
	s.Phase = game.PhaseFinished
	clearActive(s)
}
