// internal/game/rules.go
//
// Core scoring rules for Mölkky.
// Responsibilities:
//   - Apply a throw to a thrower's score (exact-50 win, over-50 reset to 25).
//   - Apply penalties (forced reset to 25, penalty counter).
//   - Track consecutive misses and eliminate after the third.
//   - Rotate turn indexes and detect winners.
//   - Stamp game completion exactly once.
//
// Notes:
//   - Everything here is pure: inputs are taken by value and new values are
//     returned; callers decide what to do with the results.
//   - NextIndex rotates through every roster slot, eliminated or not.
//     Skipping eliminated throwers is the caller's concern.
package game

import "time"

// ApplyScore adds delta to the thrower's score.
// If the sum would exceed 50 the score resets to 25 and reset is true.
// Landing exactly on 50 is a win, detected separately via HasWon.
func ApplyScore(t Thrower, delta int) (Thrower, bool) {
	raw := t.Score + delta
	if raw > WinningScore {
		t.Score = ResetScore
		return t, true
	}
	t.Score = raw
	return t, false
}

// ApplyPenalty forces the score to 25 and increments the penalty count,
// regardless of the current score.
func ApplyPenalty(t Thrower) Thrower {
	t.Score = ResetScore
	t.Penalties++
	return t
}

// RecordMiss updates the consecutive-miss counter for a throw of delta
// points. A scoreless throw increments the counter and eliminates the
// thrower on the third; any scoring throw resets the counter.
// Elimination is monotonic: it is never cleared here.
func RecordMiss(t Thrower, delta int) Thrower {
	if delta == 0 {
		t.ConsecutiveMisses++
		if t.ConsecutiveMisses >= EliminationMiss {
			t.Eliminated = true
		}
		return t
	}
	t.ConsecutiveMisses = 0
	return t
}

// HasWon reports whether the thrower sits on exactly 50 points.
// Scores above 50 cannot occur (ApplyScore resets them), so equality is
// the whole test.
func HasWon(t Thrower) bool { return t.Score == WinningScore }

// NextIndex advances a turn cursor through a roster of the given size.
// Used identically for player rotation, team rotation, and the throw
// order inside a team.
func NextIndex(current, total int) int {
	if total <= 0 {
		return 0
	}
	return (current + 1) % total
}

// FindWinner returns the index of the first player at exactly 50, in
// roster order, or -1 if nobody has won. With two simultaneous winners
// the earlier roster position takes the game.
func FindWinner(players []Player) int {
	for i := range players {
		if HasWon(players[i].Thrower) {
			return i
		}
	}
	return -1
}

// FindWinningTeam is FindWinner over the team roster.
func FindWinningTeam(teams []Team) int {
	for i := range teams {
		if HasWon(teams[i].Thrower) {
			return i
		}
	}
	return -1
}

// AllEliminated reports whether no player can still throw.
// Empty rosters are not considered eliminated.
func AllEliminated(players []Player) bool {
	if len(players) == 0 {
		return false
	}
	for i := range players {
		if !players[i].Eliminated {
			return false
		}
	}
	return true
}

// AllTeamsEliminated is AllEliminated over the team roster.
func AllTeamsEliminated(teams []Team) bool {
	if len(teams) == 0 {
		return false
	}
	for i := range teams {
		if !teams[i].Eliminated {
			return false
		}
	}
	return true
}

// CompleteGame stamps the winner and end time onto a game. Called exactly
// once per game; a game that already has an end time is returned unchanged.
// Both winner arguments may be nil for a no-winner completion.
func CompleteGame(g Game, winner *Player, winningTeam *Team, at time.Time) Game {
	if g.Finished() {
		return g
	}
	if winner != nil {
		w := *winner
		g.Winner = &w
	}
	if winningTeam != nil {
		wt := *winningTeam
		wt.Players = append([]Player(nil), winningTeam.Players...)
		g.WinningTeam = &wt
	}
	end := at
	g.EndedAt = &end
	return g
}
