// Package grocery ties the stores, the reconciliation engine, and the
// external collaborators together into the user-level operations.
package grocery

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"grocerydb/internal/model"
	"grocerydb/internal/reconcile"
	"grocerydb/internal/store"
	"grocerydb/internal/upc"
)

// Renderer consumes finished lists and reports. Implementations print
// to paper or to plain text; failures here are reported but never
// affect stored data.
type Renderer interface {
	ShoppingList(list *model.HistoricalList, reprint bool) error
	Inventory(records []model.InventoryRecord) error
	DefaultLists(lists []model.DefaultList) error
}

type Service struct {
	inventory *store.InventoryStore
	lists     *store.DefaultListStore
	history   *store.HistoryStore
	lookup    upc.Lookup
	renderer  Renderer
	logger    *slog.Logger
}

func NewService(inventory *store.InventoryStore, lists *store.DefaultListStore, history *store.HistoryStore, lookup upc.Lookup, renderer Renderer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		inventory: inventory,
		lists:     lists,
		history:   history,
		lookup:    lookup,
		renderer:  renderer,
		logger:    logger,
	}
}

// AddItem increments the on-hand count for an item, creating its
// record on first sight. When a UPC is given and the name is unknown,
// the lookup collaborator fills in the details; any lookup failure
// falls back to the supplied name or the UPC literal.
func (s *Service) AddItem(ctx context.Context, name, code string, quantity int) (*model.InventoryRecord, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity %d must be positive", store.ErrValidation, quantity)
	}
	if name == "" && code == "" {
		return nil, fmt.Errorf("%w: need an item name or a UPC", store.ErrValidation)
	}

	description, category := "", ""
	var upcField *string
	if code != "" {
		upcField = &code

		// A scanned code may already be known.
		if rec, err := s.inventory.FindByUPC(code); err != nil {
			return nil, err
		} else if rec != nil {
			if err := s.inventory.SetQuantity(rec.Name, rec.Quantity+quantity); err != nil {
				return nil, err
			}
			return s.inventory.Get(rec.Name)
		}

		if name == "" {
			product, err := s.lookup.Lookup(ctx, code)
			if err != nil {
				s.logger.Warn("upc lookup failed, continuing without details", "upc", code, "error", err)
			}
			if product != nil && product.Name != "" {
				name = product.Name
				description = product.Description
				category = product.Category
			} else {
				name = code
			}
		}
	}

	rec, err := s.inventory.Get(name)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		if category == "" {
			category = fallbackCategory(name)
		}
		return s.inventory.Create(name, upcField, quantity, description, category)
	}
	// A name-first item scanned for the first time keeps the code, so
	// the next scan hits the UPC index directly.
	if upcField != nil && rec.UPC == nil {
		if err := s.inventory.AttachUPC(name, code); err != nil {
			return nil, err
		}
	}
	if err := s.inventory.SetQuantity(name, rec.Quantity+quantity); err != nil {
		return nil, err
	}
	return s.inventory.Get(name)
}

// RemoveItem decrements the on-hand count, clamped at zero. Removing
// more than is stocked is not an error, it just means "now empty".
func (s *Service) RemoveItem(name string, quantity int) (*model.InventoryRecord, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity %d must be positive", store.ErrValidation, quantity)
	}

	rec, err := s.inventory.Get(name)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("item %q: %w", name, store.ErrNotFound)
	}

	remaining := rec.Quantity - quantity
	if remaining < 0 {
		remaining = 0
	}
	if err := s.inventory.SetQuantity(name, remaining); err != nil {
		return nil, err
	}
	return s.inventory.Get(name)
}

// GenerateList reconciles the selected default lists (plus any ad-hoc
// extras) against the inventory, archives the result, and renders it.
// Nothing is archived when everything is fully stocked; the returned
// list is nil in that case.
func (s *Service) GenerateList(listNames []string, extras []reconcile.Extra) (*model.HistoricalList, error) {
	selected := make([]model.DefaultList, 0, len(listNames))
	for _, name := range listNames {
		list, err := s.lists.Get(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, *list)
	}

	onHand, err := s.inventory.Snapshot()
	if err != nil {
		return nil, err
	}

	entries := reconcile.Needed(selected, onHand, extras)
	if len(entries) == 0 {
		return nil, nil
	}

	archived, err := s.history.Archive(entries)
	if err != nil {
		return nil, err
	}

	if err := s.renderer.ShoppingList(archived, false); err != nil {
		s.logger.Warn("shopping list archived but not printed", "list", archived.UUID, "error", err)
	}
	return archived, nil
}

var uuidPattern = regexp.MustCompile(`^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$`)

// Reprint re-renders archived lists. The query is either a list
// identifier or a YYYY-MM-DD date; a date can match several lists,
// newest first.
func (s *Service) Reprint(query string) ([]model.HistoricalList, error) {
	var lists []model.HistoricalList

	if uuidPattern.MatchString(query) {
		list, err := s.history.GetByID(query)
		if err != nil {
			return nil, err
		}
		lists = []model.HistoricalList{*list}
	} else {
		day, err := time.Parse("2006-01-02", query)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is neither a list id nor a YYYY-MM-DD date", store.ErrValidation, query)
		}
		lists, err = s.history.GetByDate(day)
		if err != nil {
			return nil, err
		}
	}

	for i := range lists {
		if err := s.renderer.ShoppingList(&lists[i], true); err != nil {
			s.logger.Warn("reprint failed to render", "list", lists[i].UUID, "error", err)
		}
	}
	return lists, nil
}

// InventoryReport renders the full inventory snapshot.
func (s *Service) InventoryReport() error {
	records, err := s.inventory.List()
	if err != nil {
		return err
	}
	if err := s.renderer.Inventory(records); err != nil {
		s.logger.Warn("inventory report failed to render", "error", err)
	}
	return nil
}

// ShowList renders a single default list and returns it.
func (s *Service) ShowList(name string) (*model.DefaultList, error) {
	list, err := s.lists.Get(name)
	if err != nil {
		return nil, err
	}
	if err := s.renderer.DefaultLists([]model.DefaultList{*list}); err != nil {
		s.logger.Warn("default list failed to render", "list", name, "error", err)
	}
	return list, nil
}

// DefaultListsReport renders every default list with its targets.
func (s *Service) DefaultListsReport() error {
	lists, err := s.lists.List()
	if err != nil {
		return err
	}
	if err := s.renderer.DefaultLists(lists); err != nil {
		s.logger.Warn("default lists report failed to render", "error", err)
	}
	return nil
}
