package printer

import "fmt"

// PDF417Options mirror the GS ( k symbol parameters. The zero value
// is not valid; use DefaultPDF417Options as a base.
type PDF417Options struct {
	Width            int // module width, 2..8
	Rows             int // 0 = auto, else 3..90
	HeightMultiplier int // 0..16
	Columns          int // data column count, 0..30
	ErrorCorrection  int // 1..40
	Truncated        bool
}

func DefaultPDF417Options() PDF417Options {
	return PDF417Options{Width: 3, ErrorCorrection: 20}
}

const pdf417MaxContent = 500

func (o PDF417Options) validate(content string) error {
	if len(content)+3 >= pdf417MaxContent {
		return fmt.Errorf("pdf417 content too large: %d bytes", len(content))
	}
	if o.Width < 2 || o.Width > 8 {
		return fmt.Errorf("pdf417 width must be between 2 and 8, got %d", o.Width)
	}
	if o.Rows != 0 && (o.Rows < 3 || o.Rows > 90) {
		return fmt.Errorf("pdf417 rows must be 0 (auto) or between 3 and 90, got %d", o.Rows)
	}
	if o.HeightMultiplier < 0 || o.HeightMultiplier > 16 {
		return fmt.Errorf("pdf417 height multiplier must be between 0 and 16, got %d", o.HeightMultiplier)
	}
	if o.Columns < 0 || o.Columns > 30 {
		return fmt.Errorf("pdf417 data column count must be between 0 and 30, got %d", o.Columns)
	}
	if o.ErrorCorrection < 1 || o.ErrorCorrection > 40 {
		return fmt.Errorf("pdf417 error correction level must be between 1 and 40, got %d", o.ErrorCorrection)
	}
	return nil
}

// pdf417Sequence builds the full ESC/POS command stream that stores a
// PDF417 symbol and prints it centered.
func pdf417Sequence(content string, o PDF417Options) ([]byte, error) {
	if err := o.validate(content); err != nil {
		return nil, err
	}

	// GS ( k with pL=3 pH=0 cn=0x30: one-byte function parameter.
	fn := func(code, param byte) []byte {
		return []byte{0x1d, 0x28, 0x6b, 0x03, 0x00, 0x30, code, param}
	}

	var model byte // 0 standard, 1 truncated
	if o.Truncated {
		model = 1
	}

	data := append([]byte(nil), cmdAlignCenter...)
	data = append(data, fn(70, model)...)                    // function 070: select model
	data = append(data, fn(65, byte(o.Columns))...)          // function 065: columns
	data = append(data, fn(66, byte(o.Rows))...)             // function 066: rows
	data = append(data, fn(67, byte(o.Width))...)            // function 067: module width
	data = append(data, fn(68, byte(o.HeightMultiplier))...) // function 068: row height

	// Function 069: error correction, two parameter bytes (pL=4).
	data = append(data, 0x1d, 0x28, 0x6b, 0x04, 0x00, 0x30, 69, 49, byte(o.ErrorCorrection))

	// Function 080: store symbol data. pL/pH cover the content plus
	// the cn/fn/m bytes.
	total := len(content) + 3
	data = append(data, 0x1d, 0x28, 0x6b, byte(total%256), byte(total/256), 0x30, 0x50, 0x30)
	data = append(data, content...)

	data = append(data, fn(81, 0x30)...) // function 081: print symbol

	return data, nil
}

// PDF417 prints a barcode encoding content, typically the archived
// list identifier so a reprint can be requested by scanning it.
func (p *Escpos) PDF417(content string, o PDF417Options) error {
	seq, err := pdf417Sequence(content, o)
	if err != nil {
		return err
	}
	p.write(seq)
	p.write(cmdAlignLeft)
	return p.err
}
