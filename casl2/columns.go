package casl2

import (
	"unicode/utf16"
	"unicode/utf8"
)

// ColumnTable maps the byte offsets of one line to UTF-16 columns, the unit
// LSP positions are counted in.
type ColumnTable []int

func NewColumnTable(text string) ColumnTable {
	cols := make(ColumnTable, len(text)+1)
	col := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		for j := 0; j < size; j++ {
			cols[i+j] = col
		}
		if n := utf16.RuneLen(r); n > 0 {
			col += n
		} else {
			col++
		}
		i += size
	}
	cols[len(text)] = col
	return cols
}

// Column returns the UTF-16 column of a byte offset. Offsets past the end
// clamp to the line length.
func (c ColumnTable) Column(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset >= len(c) {
		return c[len(c)-1]
	}
	return c[offset]
}
