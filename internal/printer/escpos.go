// Package printer renders shopping lists and reports for an ESC/POS
// receipt printer, or as plain text when no printer is attached.
// Rendering failures never invalidate already-archived data; callers
// log them and move on.
package printer

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

// Config describes the output format. Profile is informational (kept
// from the device configuration); CharWidth is the number of printable
// columns per line.
type Config struct {
	Profile   string
	CharWidth int
}

const defaultCharWidth = 48

// ESC/POS command sequences.
var (
	cmdInit        = []byte{0x1b, 0x40}
	cmdAlignLeft   = []byte{0x1b, 0x61, 0x00}
	cmdAlignCenter = []byte{0x1b, 0x61, 0x01}
	cmdDoubleSize  = []byte{0x1d, 0x21, 0x11}
	cmdNormalSize  = []byte{0x1d, 0x21, 0x00}
	cmdInvertOn    = []byte{0x1d, 0x42, 0x01}
	cmdInvertOff   = []byte{0x1d, 0x42, 0x00}
	cmdCut         = []byte{0x1d, 0x56, 0x42, 0x00}
)

// Escpos writes ESC/POS command streams to an attached device. Write
// errors are sticky: the first one is kept and every later call is a
// no-op, so callers check once at the end of a document.
type Escpos struct {
	w     io.Writer
	width int
	now   func() time.Time
	err   error
}

func NewEscpos(w io.Writer, cfg Config) *Escpos {
	width := cfg.CharWidth
	if width <= 0 {
		width = defaultCharWidth
	}
	return &Escpos{w: w, width: width, now: time.Now}
}

func (p *Escpos) write(b []byte) {
	if p.err != nil {
		return
	}
	if _, err := p.w.Write(b); err != nil {
		p.err = fmt.Errorf("write to printer: %w", err)
	}
}

func (p *Escpos) reset() { p.write(cmdInit) }

func (p *Escpos) text(s string) { p.write([]byte(s + "\n")) }

func (p *Escpos) feed(n int) {
	for i := 0; i < n; i++ {
		p.write([]byte{'\n'})
	}
}

// rule prints a horizontal line across the configured width.
func (p *Escpos) rule() { p.text(strings.Repeat("-", p.width)) }

// justify prints left flush-left and right flush-right on one line,
// truncating left with an ellipsis when both cannot fit.
func (p *Escpos) justify(left, right string) {
	p.write(cmdInit)
	p.text(justifyLine(left, right, p.width))
}

// header prints the document header with the generation time.
func (p *Escpos) header() {
	p.reset()
	p.feed(1)
	p.text("Printed at: " + p.now().UTC().Format("01/02/2006 15:04:05 UTC"))
}

// title prints a centered double-size heading.
func (p *Escpos) title(s string) {
	p.write(cmdAlignCenter)
	p.write(cmdDoubleSize)
	p.text(s)
	p.write(cmdNormalSize)
	p.write(cmdAlignLeft)
	p.feed(1)
}

// banner prints a centered, inverted heading, used for reprints.
func (p *Escpos) banner(s string) {
	p.write(cmdAlignCenter)
	p.write(cmdDoubleSize)
	p.write(cmdInvertOn)
	p.text(s)
	p.write(cmdInvertOff)
	p.write(cmdNormalSize)
	p.write(cmdAlignLeft)
	p.feed(1)
}

func (p *Escpos) cut() {
	p.feed(3)
	p.write(cmdCut)
}

// justifyLine measures and trims by rune so item names like
// "jalapeño" are never split mid-character.
func justifyLine(left, right string, width int) string {
	leftLen := utf8.RuneCountInString(left)
	rightLen := utf8.RuneCountInString(right)
	if leftLen+rightLen > width {
		trim := width - (rightLen + 5)
		if trim < 0 {
			trim = 0
		}
		runes := []rune(left)
		if trim > len(runes) {
			trim = len(runes)
		}
		left = string(runes[:trim]) + "..."
		leftLen = trim + 3
	}
	pad := width - leftLen - rightLen
	if pad < 0 {
		pad = 0
	}
	return left + strings.Repeat(" ", pad) + right
}
