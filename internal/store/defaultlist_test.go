package store

import (
	"errors"
	"testing"
)

func TestDefaultListCreate(t *testing.T) {
	s := NewDefaultListStore(setupCurrentTestDB(t))

	list, err := s.Create("Baking")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if list.Name != "Baking" {
		t.Errorf("name = %q, want Baking", list.Name)
	}
	if list.UUID == "" {
		t.Error("expected a generated uuid")
	}

	if _, err := s.Create("Baking"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate create err = %v, want ErrDuplicate", err)
	}
}

func TestDefaultListAddEntryUpserts(t *testing.T) {
	s := NewDefaultListStore(setupCurrentTestDB(t))

	if _, err := s.Create("Baking"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.AddEntry("Baking", "flour", 2, nil); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	// Re-adding replaces the target instead of duplicating.
	if err := s.AddEntry("Baking", "flour", 5, nil); err != nil {
		t.Fatalf("re-add entry: %v", err)
	}

	list, err := s.Get("Baking")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(list.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(list.Entries))
	}
	if list.Entries[0].TargetQuantity != 5 {
		t.Errorf("target = %d, want 5", list.Entries[0].TargetQuantity)
	}
}

func TestDefaultListAddEntryValidation(t *testing.T) {
	s := NewDefaultListStore(setupCurrentTestDB(t))

	if _, err := s.Create("Baking"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.AddEntry("Baking", "flour", 0, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("zero target err = %v, want ErrValidation", err)
	}
	if err := s.AddEntry("Baking", "flour", -2, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("negative target err = %v, want ErrValidation", err)
	}
	if err := s.AddEntry("Camping", "flour", 1, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown list err = %v, want ErrNotFound", err)
	}
}

func TestDefaultListRemoveEntry(t *testing.T) {
	s := NewDefaultListStore(setupCurrentTestDB(t))

	if _, err := s.Create("Baking"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.AddEntry("Baking", "flour", 2, nil); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	if err := s.RemoveEntry("Baking", "flour"); err != nil {
		t.Fatalf("remove entry: %v", err)
	}
	// Removing an absent entry is a no-op, not an error.
	if err := s.RemoveEntry("Baking", "flour"); err != nil {
		t.Errorf("second remove err = %v, want nil", err)
	}
	if err := s.RemoveEntry("Camping", "flour"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown list err = %v, want ErrNotFound", err)
	}
}

func TestDefaultListDeleteCascades(t *testing.T) {
	db := setupCurrentTestDB(t)
	s := NewDefaultListStore(db)

	if _, err := s.Create("Baking"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.AddEntry("Baking", "flour", 2, nil); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if err := s.AddEntry("Baking", "eggs", 12, nil); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	if err := s.Delete("Baking"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.Get("Baking"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}

	var orphans int
	if err := db.QueryRow(`SELECT COUNT(*) FROM default_list_entries`).Scan(&orphans); err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if orphans != 0 {
		t.Errorf("found %d orphaned entries, want 0", orphans)
	}

	if err := s.Delete("Baking"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestDefaultListListAll(t *testing.T) {
	s := NewDefaultListStore(setupCurrentTestDB(t))

	for _, name := range []string{"Weekly", "Baking"} {
		if _, err := s.Create(name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if err := s.AddEntry("Weekly", "milk", 1, nil); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	lists, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("got %d lists, want 2", len(lists))
	}
	if lists[0].Name != "Baking" || lists[1].Name != "Weekly" {
		t.Errorf("order = %q, %q, want Baking, Weekly", lists[0].Name, lists[1].Name)
	}
	if len(lists[1].Entries) != 1 {
		t.Errorf("Weekly entries = %d, want 1", len(lists[1].Entries))
	}
}
