package store

import (
	"database/sql"
	"fmt"
	"strings"

	"grocerydb/internal/model"
)

// InventoryStore owns the on-hand quantity rows. Absence of an item is
// not an error: an unknown name simply has quantity zero.
type InventoryStore struct {
	db *sql.DB
}

func NewInventoryStore(db *sql.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

func scanInventory(scanner interface{ Scan(...any) error }) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	var upc sql.NullString
	err := scanner.Scan(&rec.ID, &rec.Name, &upc, &rec.Quantity, &rec.Description, &rec.Category, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if upc.Valid {
		rec.UPC = &upc.String
	}
	return &rec, nil
}

const inventoryCols = `id, name, upc, quantity, description, category, created_at`

// Get returns the record for the given name, or nil if there is none.
func (s *InventoryStore) Get(name string) (*model.InventoryRecord, error) {
	row := s.db.QueryRow(`SELECT `+inventoryCols+` FROM inventory WHERE name = ?`, name)
	rec, err := scanInventory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return rec, nil
}

// FindByUPC returns the record carrying the given UPC, or nil.
func (s *InventoryStore) FindByUPC(upc string) (*model.InventoryRecord, error) {
	row := s.db.QueryRow(`SELECT `+inventoryCols+` FROM inventory WHERE upc = ?`, upc)
	rec, err := scanInventory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find inventory by upc: %w", err)
	}
	return rec, nil
}

// Quantity returns the on-hand count for the item, zero when absent.
func (s *InventoryStore) Quantity(name string) (int, error) {
	rec, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, nil
	}
	return rec.Quantity, nil
}

// Create inserts a new inventory record.
func (s *InventoryStore) Create(name string, upc *string, quantity int, description, category string) (*model.InventoryRecord, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity %d is negative", ErrValidation, quantity)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: item name is empty", ErrValidation)
	}

	var u sql.NullString
	if upc != nil {
		u = sql.NullString{String: *upc, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO inventory (name, upc, quantity, description, category) VALUES (?, ?, ?, ?, ?)`,
		name, u, quantity, description, category,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("item %q: %w", name, ErrDuplicate)
		}
		return nil, fmt.Errorf("insert inventory record: %w", err)
	}
	return s.Get(name)
}

// SetQuantity upserts the on-hand count for an item.
func (s *InventoryStore) SetQuantity(name string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity %d is negative", ErrValidation, quantity)
	}
	if name == "" {
		return fmt.Errorf("%w: item name is empty", ErrValidation)
	}

	_, err := s.db.Exec(
		`INSERT INTO inventory (name, quantity) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET quantity = excluded.quantity`,
		name, quantity,
	)
	if err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}
	return nil
}

// AttachUPC records a scanned code against an existing item so later
// scans resolve through the UPC index instead of a fresh lookup.
func (s *InventoryStore) AttachUPC(name, upc string) error {
	if upc == "" {
		return fmt.Errorf("%w: upc is empty", ErrValidation)
	}

	result, err := s.db.Exec(`UPDATE inventory SET upc = ? WHERE name = ?`, upc, name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("upc %q: %w", upc, ErrDuplicate)
		}
		return fmt.Errorf("attach upc: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %q: %w", name, ErrNotFound)
	}
	return nil
}

// UpdateDetails renames an item and replaces its description. A name
// consisting only of digits is rejected so names and UPCs stay
// distinguishable at the prompt.
func (s *InventoryStore) UpdateDetails(name, newName, description string) error {
	if newName == "" || isAllDigits(newName) {
		return fmt.Errorf("%w: name %q must not be empty or numeric only", ErrValidation, newName)
	}

	result, err := s.db.Exec(
		`UPDATE inventory SET name = ?, description = ? WHERE name = ?`,
		newName, description, name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("item %q: %w", newName, ErrDuplicate)
		}
		return fmt.Errorf("update inventory details: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %q: %w", name, ErrNotFound)
	}
	return nil
}

// Delete removes an inventory record entirely. This is the admin
// "remove permanently" path; routine depletion just sets quantity zero.
func (s *InventoryStore) Delete(name string) error {
	result, err := s.db.Exec(`DELETE FROM inventory WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete inventory record: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %q: %w", name, ErrNotFound)
	}
	return nil
}

// List returns the full inventory snapshot ordered by name.
func (s *InventoryStore) List() ([]model.InventoryRecord, error) {
	rows, err := s.db.Query(`SELECT ` + inventoryCols + ` FROM inventory ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var records []model.InventoryRecord
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Snapshot returns the name -> on-hand mapping reconciliation consumes.
func (s *InventoryStore) Snapshot() (map[string]int, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}
	onHand := make(map[string]int, len(records))
	for _, rec := range records {
		onHand[rec.Name] = rec.Quantity
	}
	return onHand, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
