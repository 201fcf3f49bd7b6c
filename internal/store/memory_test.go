package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if _, err := m.Load(ctx, "s1", "appState"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load on empty store: err = %v, want ErrNotFound", err)
	}

	if err := m.Save(ctx, "s1", "appState", []byte(`{"phase":"setup"}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := m.Load(ctx, "s1", "appState")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != `{"phase":"setup"}` {
		t.Errorf("Load = %s", got)
	}

	// Sessions are isolated.
	if _, err := m.Load(ctx, "s2", "appState"); !errors.Is(err, ErrNotFound) {
		t.Error("value leaked across sessions")
	}

	// Save replaces.
	_ = m.Save(ctx, "s1", "appState", []byte(`{"phase":"playing"}`))
	got, _ = m.Load(ctx, "s1", "appState")
	if string(got) != `{"phase":"playing"}` {
		t.Errorf("after overwrite: %s", got)
	}

	if err := m.Delete(ctx, "s1", "appState"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Load(ctx, "s1", "appState"); !errors.Is(err, ErrNotFound) {
		t.Error("value survived delete")
	}
	// Deleting a missing key is fine.
	if err := m.Delete(ctx, "s1", "nope"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	buf := []byte(`{"a":1}`)
	_ = m.Save(ctx, "s1", "k", buf)
	buf[2] = 'x' // caller reuses the buffer
	got, _ := m.Load(ctx, "s1", "k")
	if string(got) != `{"a":1}` {
		t.Errorf("stored value aliased caller buffer: %s", got)
	}
}
