package store

import (
	"database/sql"
	"fmt"
	"time"

	"grocerydb/internal/model"
)

// HistoryStore owns the archived shopping lists. Snapshots are
// immutable: there is no update path, and reprints re-read the stored
// entries verbatim.
type HistoryStore struct {
	db    *sql.DB
	clock Clock
	ids   IDGenerator
}

func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db, clock: RealClock{}, ids: UUIDGenerator{}}
}

// NewHistoryStoreWithSeams injects the clock and ID generator. Tests
// use this to pin timestamps and identifiers.
func NewHistoryStoreWithSeams(db *sql.DB, clock Clock, ids IDGenerator) *HistoryStore {
	return &HistoryStore{db: db, clock: clock, ids: ids}
}

// Archive freezes a generated shopping list under a fresh identifier.
// The header and entries commit in one transaction; on any failure
// nothing becomes visible.
func (s *HistoryStore) Archive(entries []model.ShoppingListEntry) (*model.HistoricalList, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: shopping list is empty", ErrValidation)
	}
	for _, e := range entries {
		if e.Quantity <= 0 {
			return nil, fmt.Errorf("%w: entry %q has quantity %d", ErrValidation, e.ItemName, e.Quantity)
		}
	}

	id := s.ids.New()
	createdAt := s.clock.Now().UTC().Truncate(time.Second)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: begin archive: %v", ErrPersistence, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO historical_lists (uuid, created_at) VALUES (?, ?)`,
		id, createdAt.Unix(),
	); err != nil {
		return nil, fmt.Errorf("%w: insert header: %v", ErrPersistence, err)
	}

	for _, e := range entries {
		if _, err := tx.Exec(
			`INSERT INTO historical_list_entries (list_uuid, item_name, quantity) VALUES (?, ?, ?)`,
			id, e.ItemName, e.Quantity,
		); err != nil {
			return nil, fmt.Errorf("%w: insert entry %q: %v", ErrPersistence, e.ItemName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit archive: %v", ErrPersistence, err)
	}

	list := &model.HistoricalList{
		UUID:      id,
		CreatedAt: createdAt,
		Entries:   append([]model.ShoppingListEntry(nil), entries...),
	}
	return list, nil
}

// GetByID returns the archived list with the given identifier.
func (s *HistoryStore) GetByID(id string) (*model.HistoricalList, error) {
	var created int64
	err := s.db.QueryRow(`SELECT created_at FROM historical_lists WHERE uuid = ?`, id).Scan(&created)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("historical list %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get historical list: %w", err)
	}

	list := &model.HistoricalList{UUID: id, CreatedAt: time.Unix(created, 0).UTC()}
	list.Entries, err = s.listEntries(id)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetByDate returns every list archived on the given UTC day, newest
// first. An empty day yields an empty slice, not an error.
func (s *HistoryStore) GetByDate(day time.Time) ([]model.HistoricalList, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	rows, err := s.db.Query(
		`SELECT uuid, created_at FROM historical_lists
		 WHERE created_at >= ? AND created_at < ?
		 ORDER BY created_at DESC, uuid DESC`,
		start.Unix(), end.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("list historical lists by date: %w", err)
	}
	defer rows.Close()

	var lists []model.HistoricalList
	for rows.Next() {
		var l model.HistoricalList
		var created int64
		if err := rows.Scan(&l.UUID, &created); err != nil {
			return nil, fmt.Errorf("scan historical list: %w", err)
		}
		l.CreatedAt = time.Unix(created, 0).UTC()
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lists {
		lists[i].Entries, err = s.listEntries(lists[i].UUID)
		if err != nil {
			return nil, err
		}
	}
	return lists, nil
}

func (s *HistoryStore) listEntries(id string) ([]model.ShoppingListEntry, error) {
	rows, err := s.db.Query(
		`SELECT item_name, quantity FROM historical_list_entries WHERE list_uuid = ? ORDER BY item_name ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("list historical entries: %w", err)
	}
	defer rows.Close()

	var entries []model.ShoppingListEntry
	for rows.Next() {
		var e model.ShoppingListEntry
		if err := rows.Scan(&e.ItemName, &e.Quantity); err != nil {
			return nil, fmt.Errorf("scan historical entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
