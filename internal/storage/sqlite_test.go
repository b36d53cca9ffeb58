package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created, parents included
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.BeginSession("candy", 7, 0, "board: {}")
	if err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.Session(id); err != nil {
		t.Errorf("Session(%q) after reopen: %v", id, err)
	}
}

func TestStoreSessionLifecycle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.BeginSession("candy_campaign", 42, 3, "board:\n  width: 8\n")
	if err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("session id %q is not a UUID", id)
	}

	rec, err := store.Session(id)
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if rec.GameID != "candy_campaign" || rec.Seed != 42 || rec.StartLevel != 3 {
		t.Errorf("Session() = %+v, want candy_campaign seed 42 level 3", rec)
	}
	if rec.Config != "board:\n  width: 8\n" {
		t.Errorf("Config = %q", rec.Config)
	}
	if rec.Finished {
		t.Error("new session should not be finished")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if !rec.EndedAt.IsZero() {
		t.Error("EndedAt should be zero before FinishSession")
	}

	if err := store.FinishSession(id, 1234, 560); err != nil {
		t.Fatalf("FinishSession() failed: %v", err)
	}

	rec, err = store.Session(id)
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if !rec.Finished || rec.Ticks != 1234 || rec.Score != 560 {
		t.Errorf("finished session = %+v, want ticks 1234 score 560", rec)
	}
	if rec.EndedAt.IsZero() {
		t.Error("EndedAt should be set after FinishSession")
	}
}

func TestStoreSwapsInOrder(t *testing.T) {
	store := openTestStore(t)

	id, err := store.BeginSession("candy", 1, 0, "")
	if err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}
	other, err := store.BeginSession("candy", 2, 0, "")
	if err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}

	swaps := []struct {
		tick      uint64
		from, to  int
		committed bool
	}{
		{3, 0, 1, false},
		{10, 7, 2, true},
		{25, 12, 20, true},
	}
	for _, sw := range swaps {
		if err := store.RecordSwap(id, sw.tick, sw.from, sw.to, sw.committed); err != nil {
			t.Fatalf("RecordSwap() failed: %v", err)
		}
	}
	if err := store.RecordSwap(other, 5, 1, 2, true); err != nil {
		t.Fatalf("RecordSwap() failed: %v", err)
	}

	got, err := store.Swaps(id)
	if err != nil {
		t.Fatalf("Swaps() failed: %v", err)
	}
	if len(got) != len(swaps) {
		t.Fatalf("Swaps() returned %d rows, want %d", len(got), len(swaps))
	}
	for i, want := range swaps {
		sw := got[i]
		if sw.Seq != i || sw.SessionID != id {
			t.Errorf("swap %d: seq %d session %q", i, sw.Seq, sw.SessionID)
		}
		if sw.Tick != want.tick || sw.From != want.from || sw.To != want.to || sw.Committed != want.committed {
			t.Errorf("swap %d = %+v, want %+v", i, sw, want)
		}
	}

	otherSwaps, err := store.Swaps(other)
	if err != nil {
		t.Fatalf("Swaps() failed: %v", err)
	}
	if len(otherSwaps) != 1 || otherSwaps[0].Seq != 0 {
		t.Errorf("other session swaps = %+v, want one with seq 0", otherSwaps)
	}
}

func TestStoreSessionPrefix(t *testing.T) {
	store := openTestStore(t)

	id, err := store.BeginSession("candy", 1, 0, "")
	if err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}

	rec, err := store.Session(id[:8])
	if err != nil {
		t.Fatalf("Session(prefix) failed: %v", err)
	}
	if rec.ID != id {
		t.Errorf("Session(prefix).ID = %q, want %q", rec.ID, id)
	}

	// Every UUID shares the empty prefix; an empty ID is never a match.
	if _, err := store.Session(""); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Session(\"\") error = %v, want ErrSessionNotFound", err)
	}
}

func TestStoreSessionAmbiguousPrefix(t *testing.T) {
	store := openTestStore(t)

	// Insert two IDs sharing a prefix directly; uuid.NewString would not.
	for _, id := range []string{"abc-1", "abc-2"} {
		if _, err := store.db.Exec(
			"INSERT INTO sessions (id, game_id, seed, config) VALUES (?, 'candy', 0, '')", id,
		); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	if _, err := store.Session("abc"); !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("Session(\"abc\") error = %v, want ErrAmbiguousID", err)
	}
	if rec, err := store.Session("abc-2"); err != nil || rec.ID != "abc-2" {
		t.Errorf("Session(\"abc-2\") = %v, %v", rec, err)
	}
}

func TestStoreNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Session("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Session() error = %v, want ErrSessionNotFound", err)
	}
	if err := store.FinishSession("missing", 1, 1); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("FinishSession() error = %v, want ErrSessionNotFound", err)
	}
	if err := store.DeleteSession("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("DeleteSession() error = %v, want ErrSessionNotFound", err)
	}

	swaps, err := store.Swaps("missing")
	if err != nil {
		t.Fatalf("Swaps() failed: %v", err)
	}
	if len(swaps) != 0 {
		t.Errorf("Swaps() for unknown session = %v, want none", swaps)
	}
}

func TestStoreRecentSessions(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i, game := range []string{"candy", "candy_campaign", "candy"} {
		id, err := store.BeginSession(game, int64(i), 0, "")
		if err != nil {
			t.Fatalf("BeginSession() failed: %v", err)
		}
		ids = append(ids, id)
	}

	all, err := store.RecentSessions("", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("RecentSessions() returned %d, want 3", len(all))
	}
	// Same-second inserts fall back to insertion order, newest first
	if all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Errorf("RecentSessions() order = %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}

	endless, err := store.RecentSessions("candy", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(endless) != 2 {
		t.Errorf("RecentSessions(candy) returned %d, want 2", len(endless))
	}

	limited, err := store.RecentSessions("", 1)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("RecentSessions(limit 1) returned %d", len(limited))
	}
}

func TestStoreDeleteSession(t *testing.T) {
	store := openTestStore(t)

	id, err := store.BeginSession("candy", 1, 0, "")
	if err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}
	if err := store.RecordSwap(id, 1, 0, 1, true); err != nil {
		t.Fatalf("RecordSwap() failed: %v", err)
	}

	if err := store.DeleteSession(id); err != nil {
		t.Fatalf("DeleteSession() failed: %v", err)
	}
	if _, err := store.Session(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Session() after delete error = %v", err)
	}
	swaps, err := store.Swaps(id)
	if err != nil {
		t.Fatalf("Swaps() failed: %v", err)
	}
	if len(swaps) != 0 {
		t.Errorf("swaps survived delete: %v", swaps)
	}
}
