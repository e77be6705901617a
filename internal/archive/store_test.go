package archive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openscrim/coachboard-go/internal/board"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test_archive.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	recs := []board.PlayerRecord{
		{PlayerID: "alice", Metrics: board.Metrics{"accuracy": 0.1 + 0.2, "score": 1200}},
		{PlayerID: "bob", Metrics: board.Metrics{"reaction_time": 215.25}},
		{PlayerID: "carol", Metrics: board.Metrics{}},
	}

	id, err := store.SaveSnapshot(ctx, "after scrims", recs)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected non-nil snapshot id")
	}

	got, err := store.LoadSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}

	// Order and every float value must survive exactly
	for i, want := range recs {
		if got[i].PlayerID != want.PlayerID {
			t.Errorf("expected '%s' at position %d, got '%s'", want.PlayerID, i, got[i].PlayerID)
		}
		if len(got[i].Metrics) != len(want.Metrics) {
			t.Errorf("expected %d metrics for '%s', got %d", len(want.Metrics), want.PlayerID, len(got[i].Metrics))
		}
		for k, v := range want.Metrics {
			if got[i].Metrics[k] != v {
				t.Errorf("expected %s=%v for '%s', got %v", k, v, want.PlayerID, got[i].Metrics[k])
			}
		}
	}
}

func TestLoadSnapshotNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.LoadSnapshot(context.Background(), uuid.New())
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestLatestSnapshot(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, _, err := store.LatestSnapshot(ctx); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound on empty archive, got %v", err)
	}

	if _, err := store.SaveSnapshot(ctx, "first", []board.PlayerRecord{
		{PlayerID: "alice", Metrics: board.Metrics{"score": 1}},
	}); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	time.Sleep(5 * time.Millisecond) // distinct created_at
	if _, err := store.SaveSnapshot(ctx, "second", []board.PlayerRecord{
		{PlayerID: "alice", Metrics: board.Metrics{"score": 2}},
		{PlayerID: "bob", Metrics: board.Metrics{"score": 3}},
	}); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	snap, recs, err := store.LatestSnapshot(ctx)
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if snap.Label != "second" {
		t.Errorf("expected label 'second', got '%s'", snap.Label)
	}
	if snap.PlayerCount != 2 {
		t.Errorf("expected player count 2, got %d", snap.PlayerCount)
	}
	if len(recs) != 2 || recs[0].Metrics["score"] != 2 {
		t.Errorf("expected the second snapshot's records, got %+v", recs)
	}
}

func TestListSnapshots(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	labels := []string{"one", "two", "three"}
	for _, label := range labels {
		if _, err := store.SaveSnapshot(ctx, label, []board.PlayerRecord{
			{PlayerID: "alice", Metrics: board.Metrics{"score": 1}},
		}); err != nil {
			t.Fatalf("SaveSnapshot: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	snaps, err := store.ListSnapshots(ctx, 0, 0)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snaps))
	}
	// Newest first
	if snaps[0].Label != "three" || snaps[2].Label != "one" {
		t.Errorf("expected newest-first order, got [%s %s %s]",
			snaps[0].Label, snaps[1].Label, snaps[2].Label)
	}
	if snaps[0].PlayerCount != 1 {
		t.Errorf("expected player count 1, got %d", snaps[0].PlayerCount)
	}

	limited, err := store.ListSnapshots(ctx, 2, 0)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 snapshots with limit 2, got %d", len(limited))
	}
}

func TestAllSnapshotsPagesPastListLimit(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	// One past the largest page ListSnapshots serves
	const n = 501
	for i := 0; i < n; i++ {
		if _, err := store.SaveSnapshot(ctx, fmt.Sprintf("snap-%03d", i), nil); err != nil {
			t.Fatalf("SaveSnapshot: %v", err)
		}
	}

	snaps, err := store.AllSnapshots(ctx)
	if err != nil {
		t.Fatalf("AllSnapshots: %v", err)
	}
	if len(snaps) != n {
		t.Fatalf("Expected %d snapshots, got %d", n, len(snaps))
	}

	seen := make(map[uuid.UUID]bool, n)
	for _, s := range snaps {
		if seen[s.ID] {
			t.Fatalf("Snapshot %s listed twice", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestDeleteSnapshot(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id, err := store.SaveSnapshot(ctx, "", []board.PlayerRecord{
		{PlayerID: "alice", Metrics: board.Metrics{"score": 1}},
	})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	if err := store.DeleteSnapshot(ctx, id); err != nil {
		t.Fatalf("DeleteSnapshot: %v", err)
	}
	if _, err := store.LoadSnapshot(ctx, id); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound after delete, got %v", err)
	}
	if err := store.DeleteSnapshot(ctx, id); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound on double delete, got %v", err)
	}
}

func TestSaveEmptySnapshot(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id, err := store.SaveSnapshot(ctx, "empty", nil)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	recs, err := store.LoadSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no records, got %d", len(recs))
	}
}

func TestBoardRoundTripThroughArchive(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	src := board.New()
	src.AddPlayer("alice", board.Metrics{"score": 10, "accuracy": 0.1 + 0.2})
	src.AddPlayer("bob", board.Metrics{"score": 10})
	src.AddPlayer("carol", board.Metrics{"score": 30})

	id, err := store.SaveSnapshot(ctx, "round trip", src.Snapshot())
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	recs, err := store.LoadSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	dst := board.New()
	dst.Restore(recs)

	// Same ranking, including the alice/bob tie in registration order
	want := []string{"carol", "alice", "bob"}
	top := dst.GetTopPlayers("score", 3)
	if len(top) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(top))
	}
	for i, idWant := range want {
		if top[i].PlayerID != idWant {
			t.Errorf("expected '%s' at position %d, got '%s'", idWant, i, top[i].PlayerID)
		}
	}

	stats, found := dst.GetPlayerStats("alice")
	if !found {
		t.Fatal("expected alice after round trip")
	}
	if stats["accuracy"] != 0.1+0.2 {
		t.Errorf("expected accuracy to round-trip exactly, got %v", stats["accuracy"])
	}
}
