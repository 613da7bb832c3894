package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// CellStyler picks a style for a cell from its text.
type CellStyler func(cell string) lipgloss.Style

// Table collects rows for inventory and field listings. Rendering draws
// a bordered table on a color terminal and borderless aligned columns
// otherwise, so piped output stays grep-friendly.
type Table struct {
	headers []string
	rows    [][]string
	stylers map[int]CellStyler
	plain   bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		stylers: map[int]CellStyler{},
		plain:   IsNoColor() || !IsTTY(),
	}
}

// Row appends a row. Missing cells render empty.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// StyleColumn colors the cells of column col (zero-based) with fn.
// Ignored in plain mode.
func (t *Table) StyleColumn(col int, fn CellStyler) *Table {
	t.stylers[col] = fn
	return t
}

// Plain forces borderless, uncolored rendering.
func (t *Table) Plain(plain bool) *Table {
	t.plain = plain
	return t
}

// String renders the table.
func (t *Table) String() string {
	tbl := table.New().Headers(t.headers...)

	for _, row := range t.rows {
		cells := make([]string, len(t.headers))
		copy(cells, row)
		tbl.Row(cells...)
	}

	cellPad := lipgloss.NewStyle().PaddingRight(2)
	if t.plain {
		return tbl.
			Border(lipgloss.HiddenBorder()).
			BorderTop(false).BorderBottom(false).BorderLeft(false).BorderRight(false).
			BorderColumn(false).BorderHeader(false).
			StyleFunc(func(_, _ int) lipgloss.Style { return cellPad }).
			String()
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(ColorCyan).PaddingRight(1)
	cell := lipgloss.NewStyle().PaddingRight(1)
	return tbl.
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorDimGray)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if fn, ok := t.stylers[col]; ok && row >= 0 && row < len(t.rows) && col < len(t.rows[row]) {
				return fn(t.rows[row][col]).Inherit(cell)
			}
			return cell
		}).
		String()
}
