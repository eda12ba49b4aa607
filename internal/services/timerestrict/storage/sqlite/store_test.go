package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage"
)

func TestRecordAndListActions(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 7, 23, 30, 0, 0, time.UTC)

	if err := store.RecordAction(ctx, storage.ActionRecord{
		Action:    storage.ActionDenied,
		Player:    "Alex",
		Day:       "Saturday",
		Window:    "2300-0700",
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("record action: %v", err)
	}
	if err := store.RecordAction(ctx, storage.ActionRecord{
		Action:    storage.ActionKicked,
		Player:    "Sam",
		Day:       "Saturday",
		Window:    "2300-0700",
		SweepID:   "sweep-1",
		CreatedAt: now.Add(time.Minute),
	}); err != nil {
		t.Fatalf("record action second: %v", err)
	}

	actions, err := store.ListActions(ctx, 10)
	if err != nil {
		t.Fatalf("list actions: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("actions len = %d, want 2", len(actions))
	}
	if actions[0].Player != "Sam" || actions[0].Action != storage.ActionKicked || actions[0].SweepID != "sweep-1" {
		t.Fatalf("actions[0] = %+v", actions[0])
	}
	if actions[1].Player != "Alex" || actions[1].Action != storage.ActionDenied {
		t.Fatalf("actions[1] = %+v", actions[1])
	}
	if !actions[1].CreatedAt.Equal(now) {
		t.Fatalf("actions[1].CreatedAt = %v, want %v", actions[1].CreatedAt, now)
	}
}

func TestListActionsRespectsLimit(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 7, 23, 30, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := store.RecordAction(ctx, storage.ActionRecord{
			Action:    storage.ActionKicked,
			Player:    "Player",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("record action %d: %v", i, err)
		}
	}
	actions, err := store.ListActions(ctx, 2)
	if err != nil {
		t.Fatalf("list actions: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("actions len = %d, want 2", len(actions))
	}
	if _, err := store.ListActions(ctx, 0); err == nil {
		t.Fatal("expected error for zero limit")
	}
}

func TestRecordActionValidation(t *testing.T) {
	store := openTempStore(t)

	if err := store.RecordAction(context.Background(), storage.ActionRecord{}); err == nil {
		t.Fatal("expected validation error for empty action")
	}
	if err := store.RecordAction(context.Background(), storage.ActionRecord{Action: storage.ActionDenied}); err == nil {
		t.Fatal("expected validation error for missing player")
	}
}

func TestReopenKeepsActions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.RecordAction(context.Background(), storage.ActionRecord{Action: storage.ActionDenied, Player: "Alex"}); err != nil {
		t.Fatalf("record action: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	actions, err := reopened.ListActions(context.Background(), 5)
	if err != nil {
		t.Fatalf("list actions: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("actions len = %d, want 1", len(actions))
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
