package game

import (
	"testing"
	"time"
)

func TestApplyScore(t *testing.T) {
	cases := []struct {
		name      string
		score     int
		delta     int
		want      int
		wantReset bool
	}{
		{"zero plus zero", 0, 0, 0, false},
		{"normal add", 12, 10, 22, false},
		{"lands exactly on 50", 45, 5, 50, false},
		{"49 plus 1", 49, 1, 50, false},
		{"overflow resets to 25", 48, 8, 25, true},
		{"overflow by one", 50, 1, 25, true},
		{"overflow from 49 with 12", 49, 12, 25, true},
		{"add from 25", 25, 12, 37, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, reset := ApplyScore(Thrower{Score: tc.score}, tc.delta)
			if got.Score != tc.want {
				t.Errorf("ApplyScore(%d, %d) score = %d, want %d", tc.score, tc.delta, got.Score, tc.want)
			}
			if reset != tc.wantReset {
				t.Errorf("ApplyScore(%d, %d) reset = %v, want %v", tc.score, tc.delta, reset, tc.wantReset)
			}
			if got.Score < 0 || got.Score > WinningScore {
				t.Errorf("ApplyScore(%d, %d) left score %d outside [0,50]", tc.score, tc.delta, got.Score)
			}
		})
	}
}

func TestHasWon(t *testing.T) {
	for score := 0; score <= WinningScore; score++ {
		won := HasWon(Thrower{Score: score})
		if won != (score == WinningScore) {
			t.Errorf("HasWon(score=%d) = %v", score, won)
		}
	}
}

func TestApplyPenalty(t *testing.T) {
	for _, start := range []int{0, 10, 25, 49, 50} {
		got := ApplyPenalty(Thrower{Score: start, Penalties: 2})
		if got.Score != ResetScore {
			t.Errorf("ApplyPenalty from %d: score = %d, want %d", start, got.Score, ResetScore)
		}
		if got.Penalties != 3 {
			t.Errorf("ApplyPenalty from %d: penalties = %d, want 3", start, got.Penalties)
		}
	}
}

func TestRecordMissEliminatesAfterThree(t *testing.T) {
	tr := Thrower{}
	for i := 1; i <= EliminationMiss; i++ {
		tr = RecordMiss(tr, 0)
		if tr.ConsecutiveMisses != i {
			t.Fatalf("after %d misses: counter = %d", i, tr.ConsecutiveMisses)
		}
		wantElim := i == EliminationMiss
		if tr.Eliminated != wantElim {
			t.Fatalf("after %d misses: eliminated = %v, want %v", i, tr.Eliminated, wantElim)
		}
	}
}

func TestRecordMissResetOnHit(t *testing.T) {
	tr := Thrower{}
	tr = RecordMiss(tr, 0)
	tr = RecordMiss(tr, 0)
	tr = RecordMiss(tr, 6) // scoring throw resets the streak
	if tr.ConsecutiveMisses != 0 {
		t.Errorf("counter = %d after scoring throw, want 0", tr.ConsecutiveMisses)
	}
	if tr.Eliminated {
		t.Error("eliminated after only two misses")
	}
	tr = RecordMiss(tr, 0)
	tr = RecordMiss(tr, 0)
	if tr.Eliminated {
		t.Error("eliminated after two misses post-reset")
	}
}

func TestRecordMissEliminationIsMonotonic(t *testing.T) {
	tr := Thrower{ConsecutiveMisses: 2}
	tr = RecordMiss(tr, 0)
	if !tr.Eliminated {
		t.Fatal("expected elimination on third miss")
	}
	tr = RecordMiss(tr, 8)
	if !tr.Eliminated {
		t.Error("elimination reverted by a scoring throw")
	}
}

func TestNextIndexCycles(t *testing.T) {
	for _, total := range []int{1, 2, 3, 7} {
		for start := 0; start < total; start++ {
			i := start
			for n := 0; n < total; n++ {
				i = NextIndex(i, total)
				if i < 0 || i >= total {
					t.Fatalf("NextIndex left range: %d of %d", i, total)
				}
			}
			if i != start {
				t.Errorf("NextIndex applied %d times from %d: got %d", total, start, i)
			}
		}
	}
	if got := NextIndex(0, 0); got != 0 {
		t.Errorf("NextIndex(0, 0) = %d, want 0", got)
	}
}

func TestFindWinnerTieBreak(t *testing.T) {
	players := []Player{
		{ID: "a", Name: "Alice", Thrower: Thrower{Score: 50}},
		{ID: "b", Name: "Bob", Thrower: Thrower{Score: 50}},
	}
	if got := FindWinner(players); got != 0 {
		t.Errorf("FindWinner with two at 50 = %d, want 0 (first in roster order)", got)
	}
	if got := FindWinner([]Player{{Thrower: Thrower{Score: 49}}}); got != -1 {
		t.Errorf("FindWinner with nobody at 50 = %d, want -1", got)
	}
}

func TestFindWinningTeam(t *testing.T) {
	teams := []Team{
		{ID: "t1", Name: "Red", Thrower: Thrower{Score: 37}},
		{ID: "t2", Name: "Blue", Thrower: Thrower{Score: 50}},
	}
	if got := FindWinningTeam(teams); got != 1 {
		t.Errorf("FindWinningTeam = %d, want 1", got)
	}
}

func TestAllEliminated(t *testing.T) {
	if AllEliminated(nil) {
		t.Error("empty roster reported eliminated")
	}
	mixed := []Player{
		{Thrower: Thrower{Eliminated: true}},
		{Thrower: Thrower{Eliminated: false}},
	}
	if AllEliminated(mixed) {
		t.Error("roster with a live player reported eliminated")
	}
	mixed[1].Eliminated = true
	if !AllEliminated(mixed) {
		t.Error("fully eliminated roster not detected")
	}
}

func TestCompleteGameStampsOnce(t *testing.T) {
	start := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	g := NewGame(ModeIndividual, []Player{NewPlayer("Alice"), NewPlayer("Bob")}, nil, start)
	if g.Finished() {
		t.Fatal("fresh game already finished")
	}

	winner := g.Players[0]
	end := start.Add(20 * time.Minute)
	done := CompleteGame(g, &winner, nil, end)
	if !done.Finished() {
		t.Fatal("game not finished after CompleteGame")
	}
	if done.Winner == nil || done.Winner.ID != winner.ID {
		t.Fatal("winner not stamped")
	}
	if !done.EndedAt.Equal(end) {
		t.Errorf("EndedAt = %v, want %v", done.EndedAt, end)
	}

	// Second completion must not restamp.
	again := CompleteGame(done, nil, nil, end.Add(time.Hour))
	if !again.EndedAt.Equal(end) {
		t.Errorf("EndedAt restamped to %v", again.EndedAt)
	}
	if again.Winner == nil {
		t.Error("winner cleared by repeated completion")
	}
}

func TestCompleteGameNoWinner(t *testing.T) {
	start := time.Now().UTC()
	g := NewGame(ModeIndividual, []Player{NewPlayer("Solo"), NewPlayer("Duo")}, nil, start)
	done := CompleteGame(g, nil, nil, start.Add(time.Minute))
	if !done.Finished() {
		t.Fatal("no-winner completion did not finish the game")
	}
	if done.Winner != nil || done.WinningTeam != nil {
		t.Error("no-winner completion still produced a winner")
	}
}
