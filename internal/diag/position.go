// Package diag collects and formats compiler diagnostics for the tsonic
// core. Every pass threads a *Collector instead of returning an error;
// only internal compiler errors panic.
package diag

import "fmt"

// Position is a source location, reported in file/line/column plus a byte
// offset for tooling that wants it. Columns are rune counts, not bytes.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open source range used for "related locations" and for
// underlining diagnostics with more than one character of width.
type Span struct {
	Start  Position
	Length int
}
