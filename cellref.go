package xlcell

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellRef represents a single cell reference in a workbook.
type CellRef struct {
	Sheet string // sheet name (empty = unspecified)
	Row   int    // 0-based row index
	Col   int    // 0-based column index
}

// NewCellRef creates a CellRef with explicit sheet, row, col.
func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// ParseCellRef parses a cell reference string like "A1", "Sheet1!B5" or "$A$1".
func ParseCellRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell reference")
	}

	var sheet string
	cellPart := s
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		sheet = strings.Trim(s[:idx], "'")
		cellPart = s[idx+1:]
	}

	row, col, err := ParseCellName(cellPart)
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}
	return CellRef{Sheet: sheet, Row: row, Col: col}, nil
}

// ParseCellName converts a label like "B2" to 0-based row and column.
func ParseCellName(label string) (row, col int, err error) {
	label = strings.ReplaceAll(strings.TrimSpace(label), "$", "")
	c, r, err := excelize.CellNameToCoordinates(label)
	if err != nil {
		return 0, 0, err
	}
	return r - 1, c - 1, nil
}

// CellName converts 0-based row and column to a label: (0, 0) → "A1",
// (0, 26) → "AA1".
func CellName(row, col int) (string, error) {
	return excelize.CoordinatesToCellName(col+1, row+1)
}

// CellName returns just the cell part like "A1" without sheet name.
// An out-of-range reference renders as "R<row>C<col>".
func (c CellRef) CellName() string {
	name, err := CellName(c.Row, c.Col)
	if err != nil {
		return fmt.Sprintf("R%dC%d", c.Row+1, c.Col+1)
	}
	return name
}

// String formats the CellRef as "Sheet1!A1" or "A1" if no sheet.
func (c CellRef) String() string {
	name := c.CellName()
	if c.Sheet != "" {
		return c.Sheet + "!" + name
	}
	return name
}
