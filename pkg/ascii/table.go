package ascii

import "strings"

// Table is a header row plus body rows drawn with box characters:
//
//	┌──────┬───────┐
//	│ Item │ Value │
//	├──────┼───────┤
//	│ a    │ 1     │
//	└──────┴───────┘
type Table struct {
	Header []string
	Rows   [][]string
	// Align holds per-column alignment for body cells; missing entries are left aligned.
	Align []Align
}

// String renders the table. Column widths follow the widest cell by display
// width. Header cells are centered. The result has no trailing newline.
func (t Table) String() string {
	cols := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return ""
	}

	header := t.normalize(t.Header, cols)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = t.normalize(row, cols)
	}

	widths := make([]int, cols)
	for _, row := range append([][]string{header}, rows...) {
		for c, cell := range row {
			if w := StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(rule(widths, "┌", "┬", "┐"))
	sb.WriteString(line(header, widths, func(int) Align { return AlignCenter }))
	if len(rows) > 0 {
		sb.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, row := range rows {
		sb.WriteString(line(row, widths, t.alignFor))
	}
	sb.WriteString(strings.TrimSuffix(rule(widths, "└", "┴", "┘"), "\n"))
	return sb.String()
}

func (t Table) alignFor(col int) Align {
	if col < len(t.Align) {
		return t.Align[col]
	}
	return AlignLeft
}

func (t Table) normalize(row []string, cols int) []string {
	out := make([]string, cols)
	for i := range out {
		if i < len(row) {
			out[i] = row[i]
		}
	}
	return out
}

func rule(widths []int, left, mid, right string) string {
	var sb strings.Builder
	sb.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			sb.WriteString(mid)
		}
		sb.WriteString(strings.Repeat("─", w+2))
	}
	sb.WriteString(right + "\n")
	return sb.String()
}

func line(cells []string, widths []int, align func(int) Align) string {
	var sb strings.Builder
	sb.WriteString("│")
	for i, cell := range cells {
		sb.WriteString(" " + Pad(cell, widths[i], align(i)) + " │")
	}
	sb.WriteString("\n")
	return sb.String()
}
