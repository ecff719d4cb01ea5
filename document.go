package xlcell

import "time"

// Document abstracts the spreadsheet library that owns the cells. Value
// consumes it; Workbook implements it on top of excelize.
type Document interface {
	// ReadCell returns the raw stored content of a cell. Formula cells come
	// back with KindFormula and the formula source in Text.
	ReadCell(ref CellRef) (Cell, error)

	// EvaluateFormula runs the formula engine on a formula cell. The result
	// kind is never KindFormula.
	EvaluateFormula(ref CellRef) (Cell, error)

	// IsDateFormatted reports whether the cell's number format represents a
	// date and/or time.
	IsDateFormatted(ref CellRef) (bool, error)

	// DecodeDateSerial converts a date serial number to a calendar timestamp
	// using the date system and location that apply to the cell.
	DecodeDateSerial(serial float64, ref CellRef) (time.Time, error)
}
