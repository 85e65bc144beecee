// Package reconcile computes what must be purchased to bring the
// inventory back up to the targets of the selected default lists.
package reconcile

import (
	"sort"

	"grocerydb/internal/model"
)

// Extra is an ad-hoc request merged into a generation run on top of
// the selected default lists.
type Extra struct {
	ItemName string
	Quantity int
}

// Needed returns one entry per item whose on-hand count is below its
// requested target, ordered by item name.
//
// When the same item appears on several selected lists the largest
// target wins: a default list is a stock floor, so overlapping lists
// must not double-count demand. Items absent from the inventory
// snapshot count as zero on hand, and items already at or above target
// are omitted.
func Needed(lists []model.DefaultList, onHand map[string]int, extras []Extra) []model.ShoppingListEntry {
	targets := make(map[string]int)
	for _, list := range lists {
		for _, e := range list.Entries {
			if e.TargetQuantity > targets[e.ItemName] {
				targets[e.ItemName] = e.TargetQuantity
			}
		}
	}
	for _, x := range extras {
		if x.Quantity > targets[x.ItemName] {
			targets[x.ItemName] = x.Quantity
		}
	}

	var entries []model.ShoppingListEntry
	for name, target := range targets {
		needed := target - onHand[name]
		if needed > 0 {
			entries = append(entries, model.ShoppingListEntry{ItemName: name, Quantity: needed})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ItemName < entries[j].ItemName
	})
	return entries
}
