package reconcile

import (
	"reflect"
	"testing"

	"grocerydb/internal/model"
)

func list(name string, entries ...model.DefaultListEntry) model.DefaultList {
	return model.DefaultList{Name: name, Entries: entries}
}

func entry(item string, target int) model.DefaultListEntry {
	return model.DefaultListEntry{ItemName: item, TargetQuantity: target}
}

func TestNeededMaxOfTargets(t *testing.T) {
	// Item X wanted at 3 by one list and 5 by another: the larger
	// floor wins, demand is not additive.
	lists := []model.DefaultList{
		list("Weekly", entry("X", 3)),
		list("Party", entry("X", 5)),
	}
	got := Needed(lists, map[string]int{"X": 1}, nil)

	want := []model.ShoppingListEntry{{ItemName: "X", Quantity: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Needed = %v, want %v", got, want)
	}
}

func TestNeededFullStockOmitted(t *testing.T) {
	lists := []model.DefaultList{list("Weekly", entry("X", 2))}
	got := Needed(lists, map[string]int{"X": 2}, nil)
	if len(got) != 0 {
		t.Errorf("Needed = %v, want empty", got)
	}
}

func TestNeededOverstockedClampsToZero(t *testing.T) {
	lists := []model.DefaultList{list("Weekly", entry("X", 2))}
	got := Needed(lists, map[string]int{"X": 7}, nil)
	if len(got) != 0 {
		t.Errorf("Needed = %v, want empty", got)
	}
}

func TestNeededBakingScenario(t *testing.T) {
	// Inventory {flour: 1, eggs: 0}, sugar absent; the Baking list
	// wants flour 2, eggs 12, sugar 1.
	lists := []model.DefaultList{
		list("Baking", entry("flour", 2), entry("eggs", 12), entry("sugar", 1)),
	}
	onHand := map[string]int{"flour": 1, "eggs": 0}

	got := Needed(lists, onHand, nil)
	want := []model.ShoppingListEntry{
		{ItemName: "eggs", Quantity: 12},
		{ItemName: "flour", Quantity: 1},
		{ItemName: "sugar", Quantity: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Needed = %v, want %v", got, want)
	}
}

func TestNeededDeterministic(t *testing.T) {
	lists := []model.DefaultList{
		list("A", entry("pasta", 4), entry("rice", 2), entry("beans", 6)),
		list("B", entry("rice", 5), entry("beans", 1)),
	}
	onHand := map[string]int{"pasta": 1, "beans": 2}

	first := Needed(lists, onHand, nil)
	second := Needed(lists, onHand, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs differ: %v vs %v", first, second)
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].ItemName >= first[i].ItemName {
			t.Errorf("output not name-ascending at %d: %v", i, first)
		}
	}
}

func TestNeededNoListsIsEmpty(t *testing.T) {
	if got := Needed(nil, map[string]int{"X": 1}, nil); len(got) != 0 {
		t.Errorf("Needed = %v, want empty", got)
	}
}

func TestNeededExtras(t *testing.T) {
	lists := []model.DefaultList{list("Weekly", entry("rice", 2))}
	extras := []Extra{
		{ItemName: "candles", Quantity: 3},
		{ItemName: "rice", Quantity: 1}, // below the list floor, ignored
	}
	got := Needed(lists, map[string]int{"candles": 1}, extras)

	want := []model.ShoppingListEntry{
		{ItemName: "candles", Quantity: 2},
		{ItemName: "rice", Quantity: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Needed = %v, want %v", got, want)
	}
}
