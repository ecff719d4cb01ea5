package xlcell

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateTimeNumFmt is the built-in "m/d/yy h:mm" format excelize applies to
// time.Time values.
const dateTimeNumFmt = 22

// Sheet gives indexed and labelled access to the cells of one worksheet.
type Sheet struct {
	wb   *Workbook
	name string
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// Workbook returns the workbook that owns the sheet.
func (s *Sheet) Workbook() *Workbook { return s.wb }

// Ref returns the reference of the cell at the 0-based row and column.
func (s *Sheet) Ref(row, col int) CellRef {
	return NewCellRef(s.name, row, col)
}

// Cell resolves the cell at the 0-based row and column.
func (s *Sheet) Cell(row, col int) (*Value, error) {
	return NewValue(s.wb, s.Ref(row, col))
}

// CellAt resolves the cell at a label such as "B2".
func (s *Sheet) CellAt(label string) (*Value, error) {
	row, col, err := ParseCellName(label)
	if err != nil {
		return nil, fmt.Errorf("cell label %q: %w", label, err)
	}
	return s.Cell(row, col)
}

// Set stores v at the 0-based row and column. Accepted types are string,
// the Go integer types, float32, float64, bool, time.Time and nil (clears
// the cell). A time.Time is stored as a date serial with a date-time format,
// keeping its wall clock.
func (s *Sheet) Set(row, col int, v any) error {
	ref := s.Ref(row, col)
	cell, err := CellName(row, col)
	if err != nil {
		return fmt.Errorf("set cell %s: %w", ref, err)
	}

	switch val := v.(type) {
	case nil, string, bool, float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
	case time.Time:
		return s.setTime(ref, cell, val)
	default:
		return fmt.Errorf("set cell %s to %T: %w", ref, v, ErrUnsupportedValue)
	}

	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	if err := s.wb.file.SetCellValue(s.name, cell, v); err != nil {
		return fmt.Errorf("set cell %s: %w", ref, err)
	}
	return nil
}

// SetAt stores v at a label such as "B2". See Set for accepted types.
func (s *Sheet) SetAt(label string, v any) error {
	row, col, err := ParseCellName(label)
	if err != nil {
		return fmt.Errorf("cell label %q: %w", label, err)
	}
	return s.Set(row, col, v)
}

// SetFormula stores a formula (with or without the leading "=") at the
// 0-based row and column.
func (s *Sheet) SetFormula(row, col int, formula string) error {
	ref := s.Ref(row, col)
	cell, err := CellName(row, col)
	if err != nil {
		return fmt.Errorf("set formula %s: %w", ref, err)
	}

	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	if err := s.wb.file.SetCellFormula(s.name, cell, formula); err != nil {
		return fmt.Errorf("set formula %s: %w", ref, err)
	}
	return nil
}

func (s *Sheet) setTime(ref CellRef, cell string, t time.Time) error {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)

	s.wb.mu.Lock()
	var err error
	if s.wb.date1904 != s.wb.fileDate1904 {
		// excelize would encode in the file's date system, not the overridden one.
		err = s.wb.file.SetCellFloat(s.name, cell, timeToSerial(wall, s.wb.date1904), -1, 64)
	} else {
		err = s.wb.file.SetCellValue(s.name, cell, wall)
	}
	s.wb.mu.Unlock()
	if err != nil {
		return fmt.Errorf("set cell %s: %w", ref, err)
	}

	isDate, err := s.wb.IsDateFormatted(ref)
	if err != nil {
		return fmt.Errorf("set cell %s: %w", ref, err)
	}
	if isDate {
		return nil
	}

	// No date format on the cell yet: excelize skips its default over an
	// existing style, and SetCellFloat never applies one.
	styleID, err := s.wb.file.NewStyle(&excelize.Style{NumFmt: dateTimeNumFmt})
	if err != nil {
		return fmt.Errorf("date style for %s: %w", ref, err)
	}
	if err := s.wb.file.SetCellStyle(s.name, cell, cell, styleID); err != nil {
		return fmt.Errorf("set cell %s: %w", ref, err)
	}
	return nil
}
