package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"grocerydb/internal/model"
)

// DefaultListStore owns the named default lists and their entries.
type DefaultListStore struct {
	db *sql.DB
}

func NewDefaultListStore(db *sql.DB) *DefaultListStore {
	return &DefaultListStore{db: db}
}

func scanDefaultList(scanner interface{ Scan(...any) error }) (*model.DefaultList, error) {
	var l model.DefaultList
	err := scanner.Scan(&l.ID, &l.UUID, &l.Name, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanEntry(scanner interface{ Scan(...any) error }) (*model.DefaultListEntry, error) {
	var e model.DefaultListEntry
	var upc sql.NullString
	err := scanner.Scan(&e.ID, &e.ListID, &e.ItemName, &e.TargetQuantity, &upc, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if upc.Valid {
		e.UPC = &upc.String
	}
	return &e, nil
}

const listCols = `id, uuid, name, created_at`
const entryCols = `id, list_id, item_name, target_quantity, upc, created_at`

// Create adds a new, empty default list.
func (s *DefaultListStore) Create(name string) (*model.DefaultList, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: list name is empty", ErrValidation)
	}

	_, err := s.db.Exec(
		`INSERT INTO default_lists (uuid, name) VALUES (?, ?)`,
		uuid.New().String(), name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("list %q: %w", name, ErrDuplicate)
		}
		return nil, fmt.Errorf("insert default list: %w", err)
	}
	return s.Get(name)
}

// AddEntry upserts an entry on a list: re-adding an item replaces its
// target quantity rather than duplicating the row.
func (s *DefaultListStore) AddEntry(listName, itemName string, targetQuantity int, upc *string) error {
	if targetQuantity <= 0 {
		return fmt.Errorf("%w: target quantity %d must be positive", ErrValidation, targetQuantity)
	}
	if itemName == "" {
		return fmt.Errorf("%w: item name is empty", ErrValidation)
	}

	listID, err := s.listID(listName)
	if err != nil {
		return err
	}

	var u sql.NullString
	if upc != nil {
		u = sql.NullString{String: *upc, Valid: true}
	}

	_, err = s.db.Exec(
		`INSERT INTO default_list_entries (list_id, item_name, target_quantity, upc) VALUES (?, ?, ?, ?)
		 ON CONFLICT (list_id, item_name) DO UPDATE SET target_quantity = excluded.target_quantity, upc = excluded.upc`,
		listID, itemName, targetQuantity, u,
	)
	if err != nil {
		return fmt.Errorf("upsert list entry: %w", err)
	}
	return nil
}

// RemoveEntry drops an item from a list. A missing entry is a no-op;
// an unknown list is an error.
func (s *DefaultListStore) RemoveEntry(listName, itemName string) error {
	listID, err := s.listID(listName)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`DELETE FROM default_list_entries WHERE list_id = ? AND item_name = ?`,
		listID, itemName,
	)
	if err != nil {
		return fmt.Errorf("delete list entry: %w", err)
	}
	return nil
}

// Delete removes a default list and, via the foreign key cascade, all
// of its entries.
func (s *DefaultListStore) Delete(name string) error {
	result, err := s.db.Exec(`DELETE FROM default_lists WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete default list: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("list %q: %w", name, ErrNotFound)
	}
	return nil
}

// Get returns a default list with its entries loaded.
func (s *DefaultListStore) Get(name string) (*model.DefaultList, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM default_lists WHERE name = ?`, name)
	l, err := scanDefaultList(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("list %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get default list: %w", err)
	}

	l.Entries, err = s.entries(l.ID)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// List returns all default lists with entries, ordered by list name.
func (s *DefaultListStore) List() ([]model.DefaultList, error) {
	rows, err := s.db.Query(`SELECT ` + listCols + ` FROM default_lists ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list default lists: %w", err)
	}
	defer rows.Close()

	var lists []model.DefaultList
	for rows.Next() {
		l, err := scanDefaultList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan default list: %w", err)
		}
		lists = append(lists, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lists {
		lists[i].Entries, err = s.entries(lists[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return lists, nil
}

func (s *DefaultListStore) entries(listID int64) ([]model.DefaultListEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+entryCols+` FROM default_list_entries WHERE list_id = ? ORDER BY item_name ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []model.DefaultListEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *DefaultListStore) listID(name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM default_lists WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("list %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("look up default list: %w", err)
	}
	return id, nil
}
