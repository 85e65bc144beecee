package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"grocerydb/internal/model"
)

// ShoppingList renders an archived list with its PDF417 identifier
// barcode. Reprints get an inverted banner with the original date.
func (p *Escpos) ShoppingList(list *model.HistoricalList, reprint bool) error {
	p.header()
	p.feed(1)
	if reprint {
		p.banner("REPRINT " + list.CreatedAt.Format("2006-01-02 15:04:05 (UTC)"))
	}
	p.title("Shopping List")
	for _, e := range list.Entries {
		p.justify(e.ItemName, strconv.Itoa(e.Quantity))
	}
	p.feed(1)
	if err := p.PDF417(list.UUID, DefaultPDF417Options()); err != nil {
		return err
	}
	p.cut()
	return p.err
}

// Inventory renders the full on-hand report.
func (p *Escpos) Inventory(records []model.InventoryRecord) error {
	p.header()
	p.feed(1)
	p.title("Inventory Report")
	for _, rec := range records {
		p.justify(rec.Name, strconv.Itoa(rec.Quantity))
	}
	p.cut()
	return p.err
}

// DefaultLists renders one page per default list with its targets.
func (p *Escpos) DefaultLists(lists []model.DefaultList) error {
	for _, list := range lists {
		p.header()
		p.feed(1)
		p.banner("DEFAULT LIST")
		p.title(list.Name)
		for _, e := range list.Entries {
			p.justify(e.ItemName, strconv.Itoa(e.TargetQuantity))
		}
		p.cut()
	}
	return p.err
}

// Text renders the same documents as plain lines, used when no
// printer is configured.
type Text struct {
	w     io.Writer
	width int
	now   func() time.Time
}

func NewText(w io.Writer, cfg Config) *Text {
	width := cfg.CharWidth
	if width <= 0 {
		width = defaultCharWidth
	}
	return &Text{w: w, width: width, now: time.Now}
}

func (t *Text) line(s string) error {
	_, err := fmt.Fprintln(t.w, s)
	return err
}

func (t *Text) header(title string) error {
	if err := t.line("Printed at: " + t.now().UTC().Format("01/02/2006 15:04:05 UTC")); err != nil {
		return err
	}
	if err := t.line(strings.Repeat("-", t.width)); err != nil {
		return err
	}
	return t.line("== " + title + " ==")
}

func (t *Text) ShoppingList(list *model.HistoricalList, reprint bool) error {
	title := "Shopping List"
	if reprint {
		title = "Shopping List (reprint of " + list.CreatedAt.Format("2006-01-02 15:04:05 UTC") + ")"
	}
	if err := t.header(title); err != nil {
		return err
	}
	for _, e := range list.Entries {
		if err := t.line(justifyLine(e.ItemName, strconv.Itoa(e.Quantity), t.width)); err != nil {
			return err
		}
	}
	return t.line("List ID: " + list.UUID)
}

func (t *Text) Inventory(records []model.InventoryRecord) error {
	if err := t.header("Inventory Report"); err != nil {
		return err
	}
	for _, rec := range records {
		if err := t.line(justifyLine(rec.Name, strconv.Itoa(rec.Quantity), t.width)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Text) DefaultLists(lists []model.DefaultList) error {
	for _, list := range lists {
		if err := t.header("Default List: " + list.Name); err != nil {
			return err
		}
		for _, e := range list.Entries {
			if err := t.line(justifyLine(e.ItemName, strconv.Itoa(e.TargetQuantity), t.width)); err != nil {
				return err
			}
		}
	}
	return nil
}
