package model

import "time"

// InventoryRecord is one on-hand count per distinct item name.
// A zero quantity means "not currently stocked"; the row is kept
// so the item's details survive restocking.
type InventoryRecord struct {
	ID          int64
	Name        string
	UPC         *string
	Quantity    int
	Description string
	Category    string
	CreatedAt   time.Time
}

// DefaultList is a named stock floor: the quantities the household
// wants to keep on hand, not a recipe to re-purchase from scratch.
type DefaultList struct {
	ID        int64
	UUID      string
	Name      string
	CreatedAt time.Time
	Entries   []DefaultListEntry
}

// DefaultListEntry is one (item, target) row within a default list.
// ItemName is unique within its list.
type DefaultListEntry struct {
	ID             int64
	ListID         int64
	ItemName       string
	TargetQuantity int
	UPC            *string
	CreatedAt      time.Time
}

// ShoppingListEntry is one line of a generated shopping list.
type ShoppingListEntry struct {
	ItemName string
	Quantity int
}

// HistoricalList is an archived shopping list. Once written it never
// changes; reprints re-read the same entries verbatim.
type HistoricalList struct {
	UUID      string
	CreatedAt time.Time
	Entries   []ShoppingListEntry
}
