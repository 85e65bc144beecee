package store

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"grocerydb/internal/database"
	"grocerydb/internal/model"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type seqIDs struct{ n int }

func (g *seqIDs) New() string {
	g.n++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", g.n)
}

func setupHistoryTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenHistory(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestHistoryArchiveAndGetByID(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
	s := NewHistoryStoreWithSeams(setupHistoryTestDB(t), clock, &seqIDs{})

	entries := []model.ShoppingListEntry{
		{ItemName: "eggs", Quantity: 12},
		{ItemName: "flour", Quantity: 1},
	}
	archived, err := s.Archive(entries)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if archived.UUID == "" {
		t.Fatal("expected a generated uuid")
	}
	if !archived.CreatedAt.Equal(clock.t) {
		t.Errorf("created at = %v, want %v", archived.CreatedAt, clock.t)
	}

	// The archive is immutable: every read returns the written
	// entries verbatim, in name order.
	for i := 0; i < 3; i++ {
		got, err := s.GetByID(archived.UUID)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if !reflect.DeepEqual(got.Entries, entries) {
			t.Errorf("read %d: entries = %v, want %v", i, got.Entries, entries)
		}
	}
}

func TestHistoryGetByIDUnknown(t *testing.T) {
	s := NewHistoryStore(setupHistoryTestDB(t))

	_, err := s.GetByID("11111111-2222-4333-8444-555555555555")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestHistoryArchiveValidation(t *testing.T) {
	s := NewHistoryStore(setupHistoryTestDB(t))

	if _, err := s.Archive(nil); !errors.Is(err, ErrValidation) {
		t.Errorf("empty archive err = %v, want ErrValidation", err)
	}
	bad := []model.ShoppingListEntry{{ItemName: "flour", Quantity: 0}}
	if _, err := s.Archive(bad); !errors.Is(err, ErrValidation) {
		t.Errorf("zero-quantity entry err = %v, want ErrValidation", err)
	}
}

func TestHistoryArchiveAtomicity(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	ids := &seqIDs{}
	db := setupHistoryTestDB(t)
	s := NewHistoryStoreWithSeams(db, clock, ids)

	if _, err := s.Archive([]model.ShoppingListEntry{{ItemName: "milk", Quantity: 1}}); err != nil {
		t.Fatalf("first archive: %v", err)
	}

	// Force a header collision by replaying the same ID sequence; the
	// whole snapshot must roll back, leaving no partial entries.
	ids.n = 0
	_, err := s.Archive([]model.ShoppingListEntry{{ItemName: "butter", Quantity: 2}})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("colliding archive err = %v, want ErrPersistence", err)
	}

	var headers, rows int
	if err := db.QueryRow(`SELECT COUNT(*) FROM historical_lists`).Scan(&headers); err != nil {
		t.Fatalf("count headers: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM historical_list_entries`).Scan(&rows); err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if headers != 1 || rows != 1 {
		t.Errorf("headers/entries = %d/%d after failed archive, want 1/1", headers, rows)
	}
}

func TestHistoryGetByDate(t *testing.T) {
	clock := &fixedClock{}
	s := NewHistoryStoreWithSeams(setupHistoryTestDB(t), clock, &seqIDs{})

	clock.t = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	morning, err := s.Archive([]model.ShoppingListEntry{{ItemName: "milk", Quantity: 1}})
	if err != nil {
		t.Fatalf("archive morning: %v", err)
	}

	clock.t = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	evening, err := s.Archive([]model.ShoppingListEntry{{ItemName: "bread", Quantity: 2}})
	if err != nil {
		t.Fatalf("archive evening: %v", err)
	}

	clock.t = time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)
	if _, err := s.Archive([]model.ShoppingListEntry{{ItemName: "jam", Quantity: 1}}); err != nil {
		t.Fatalf("archive next day: %v", err)
	}

	lists, err := s.GetByDate(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("got %d lists, want 2", len(lists))
	}
	// Newest first.
	if lists[0].UUID != evening.UUID || lists[1].UUID != morning.UUID {
		t.Errorf("order = %s, %s, want %s, %s", lists[0].UUID, lists[1].UUID, evening.UUID, morning.UUID)
	}
	if len(lists[0].Entries) != 1 || lists[0].Entries[0].ItemName != "bread" {
		t.Errorf("evening entries = %v, want bread", lists[0].Entries)
	}

	empty, err := s.GetByDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("get by empty date: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d lists for empty day, want 0", len(empty))
	}
}
