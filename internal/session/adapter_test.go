package session

import (
	"context"
	"testing"
	"time"

	"github.com/nikosalonen/moelkky-sub000/internal/game"
	"github.com/nikosalonen/moelkky-sub000/internal/store"
)

func sampleState() game.AppState {
	started := time.Date(2024, 6, 1, 18, 4, 5, 123_000_000, time.UTC)
	ended := started.Add(22 * time.Minute)

	alice := game.NewPlayer("Alice")
	alice.Score = 50
	bob := game.NewPlayer("Bob")
	bob.Score = 25
	bob.Penalties = 1

	finished := game.NewGame(game.ModeIndividual, []game.Player{alice, bob}, nil, started)
	finished.Penalties = append(finished.Penalties, game.PenaltyRecord{
		PlayerID:   bob.ID,
		PlayerName: bob.Name,
		Reason:     "wrong throwing position",
		At:         started.Add(10 * time.Minute),
	})
	finished = game.CompleteGame(finished, &alice, nil, ended)

	current := game.NewGame(game.ModeIndividual, []game.Player{alice, bob}, nil, ended.Add(time.Minute))

	s := game.NewAppState()
	s.Phase = game.PhasePlaying
	s.Players = []game.Player{alice, bob}
	s.History = []game.Game{finished}
	s.CurrentGame = &current
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(store.NewMemoryStore())
	want := sampleState()

	a.Save(ctx, "s1", want)
	got := a.Load(ctx, "s1")

	if got.Phase != want.Phase || len(got.Players) != 2 {
		t.Fatalf("snapshot shape lost: phase=%s players=%d", got.Phase, len(got.Players))
	}
	if got.Players[0].Score != 50 || got.Players[1].Penalties != 1 {
		t.Error("thrower state lost in round trip")
	}
	if got.CurrentGame == nil {
		t.Fatal("current game lost")
	}
	if !got.CurrentGame.StartedAt.Equal(want.CurrentGame.StartedAt) {
		t.Errorf("StartedAt %v != %v", got.CurrentGame.StartedAt, want.CurrentGame.StartedAt)
	}
	if len(got.History) != 1 {
		t.Fatal("history lost")
	}
	h := got.History[0]
	// Millisecond-precision date equality through the JSON encoding.
	if !h.StartedAt.Equal(want.History[0].StartedAt) {
		t.Errorf("history StartedAt %v != %v", h.StartedAt, want.History[0].StartedAt)
	}
	if h.EndedAt == nil || !h.EndedAt.Equal(*want.History[0].EndedAt) {
		t.Error("history EndedAt lost precision")
	}
	if len(h.Penalties) != 1 || !h.Penalties[0].At.Equal(want.History[0].Penalties[0].At) {
		t.Error("penalty timestamp lost precision")
	}
	if h.Winner == nil || h.Winner.Name != "Alice" {
		t.Error("winner lost in round trip")
	}
}

func TestLoadEmptySessionGivesDefaults(t *testing.T) {
	a := NewAdapter(store.NewMemoryStore())
	got := a.Load(context.Background(), "nobody")
	if got.Phase != game.PhaseSetup {
		t.Errorf("phase = %s, want setup", got.Phase)
	}
	if got.Players == nil || got.History == nil {
		t.Error("nil slices in default state")
	}
	if got.CurrentGame != nil {
		t.Error("phantom current game")
	}
}

func TestCorruptEntryTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	a := NewAdapter(st)

	a.Save(ctx, "s1", sampleState())
	_ = st.Save(ctx, "s1", KeyAppState, []byte(`{not json`))

	got := a.Load(ctx, "s1")
	if got.Phase != game.PhaseSetup {
		t.Errorf("corrupt snapshot not treated as absent, phase = %s", got.Phase)
	}
	// The independent history entry still parses and survives.
	if len(got.History) != 1 {
		t.Error("intact history dropped alongside corrupt snapshot")
	}
}

func TestSaveClearsStaleCurrentGame(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	a := NewAdapter(st)

	withGame := sampleState()
	a.Save(ctx, "s1", withGame)

	withGame.CurrentGame = nil
	a.Save(ctx, "s1", withGame)

	got := a.Load(ctx, "s1")
	if got.CurrentGame != nil {
		t.Error("stale current game entry resurrected")
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(store.NewMemoryStore())
	a.Save(ctx, "s1", sampleState())
	a.Clear(ctx, "s1")
	got := a.Load(ctx, "s1")
	if len(got.Players) != 0 || len(got.History) != 0 {
		t.Error("entries survived Clear")
	}
}
