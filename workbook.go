package xlcell

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
)

// Workbook is a Document backed by an excelize file. It also owns the file's
// lifecycle: open, save and close.
type Workbook struct {
	file         *excelize.File
	opts         *Options
	date1904     bool         // date system used for serials, after WithDate1904
	fileDate1904 bool         // date system recorded in the file
	dateStyle    map[int]bool // style ID → number format is a date/time

	mu sync.Mutex // protects dateStyle and writes
}

var _ Document = (*Workbook)(nil)

// Open opens an .xlsx file. A missing file yields an error matching fs.ErrNotExist.
func Open(path string, opts ...Option) (*Workbook, error) {
	o := buildOptions(opts)
	f, err := excelize.OpenFile(path, excelize.Options{Password: o.password})
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	return newWorkbook(f, o)
}

// OpenReader reads a workbook from r.
func OpenReader(r io.Reader, opts ...Option) (*Workbook, error) {
	o := buildOptions(opts)
	f, err := excelize.OpenReader(r, excelize.Options{Password: o.password})
	if err != nil {
		return nil, fmt.Errorf("open workbook reader: %w", err)
	}
	return newWorkbook(f, o)
}

// NewWorkbook creates an empty workbook with a single sheet named "Sheet1".
func NewWorkbook(opts ...Option) (*Workbook, error) {
	return newWorkbook(excelize.NewFile(), buildOptions(opts))
}

// FromFile wraps an already opened excelize file. Closing the Workbook
// closes f.
func FromFile(f *excelize.File, opts ...Option) (*Workbook, error) {
	return newWorkbook(f, buildOptions(opts))
}

func buildOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func newWorkbook(f *excelize.File, o *Options) (*Workbook, error) {
	wb := &Workbook{
		file:      f,
		opts:      o,
		dateStyle: make(map[int]bool),
	}
	props, err := f.GetWorkbookProps()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read workbook properties: %w", err)
	}
	if props.Date1904 != nil {
		wb.fileDate1904 = *props.Date1904
	}
	wb.date1904 = wb.fileDate1904
	if o.date1904 != nil {
		wb.date1904 = *o.date1904
	}
	return wb, nil
}

// SheetNames returns all sheet names in workbook order.
func (wb *Workbook) SheetNames() []string {
	return wb.file.GetSheetList()
}

// Sheet returns the sheet at the 0-based index.
func (wb *Workbook) Sheet(index int) (*Sheet, error) {
	names := wb.file.GetSheetList()
	if index < 0 || index >= len(names) {
		return nil, fmt.Errorf("sheet index %d (workbook has %d): %w", index, len(names), ErrSheetNotFound)
	}
	return &Sheet{wb: wb, name: names[index]}, nil
}

// SheetByName returns the named sheet.
func (wb *Workbook) SheetByName(name string) (*Sheet, error) {
	idx, err := wb.file.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q: %w", name, ErrSheetNotFound)
	}
	return &Sheet{wb: wb, name: name}, nil
}

// Value resolves the cell at ref for coercion.
func (wb *Workbook) Value(ref CellRef) (*Value, error) {
	return NewValue(wb, ref)
}

// ReadCell returns the stored content of the cell at ref.
func (wb *Workbook) ReadCell(ref CellRef) (Cell, error) {
	sheet, cell, err := wb.locate(ref)
	if err != nil {
		return Cell{}, err
	}
	c := Cell{Ref: ref}

	formula, err := wb.file.GetCellFormula(sheet, cell)
	if err != nil {
		return Cell{}, err
	}
	if formula != "" {
		c.Kind = KindFormula
		c.Text = strings.TrimPrefix(formula, "=")
		return c, nil
	}

	typ, err := wb.file.GetCellType(sheet, cell)
	if err != nil {
		return Cell{}, err
	}
	raw, err := wb.file.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return Cell{}, err
	}

	switch typ {
	case excelize.CellTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Cell{}, fmt.Errorf("boolean cell holds %q: %w", raw, err)
		}
		c.Kind, c.Bool = KindBoolean, b
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		c.Kind, c.Text = KindText, raw
	case excelize.CellTypeError:
		c.Kind, c.Text = KindError, raw
	case excelize.CellTypeDate:
		t, err := parseISODate(raw)
		if err != nil {
			return Cell{}, err
		}
		c.Kind, c.Number = KindNumeric, timeToSerial(t, wb.date1904)
	default:
		if raw == "" {
			c.Kind = KindBlank
			return c, nil
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.Kind, c.Text = KindText, raw
			return c, nil
		}
		c.Kind, c.Number = KindNumeric, n
	}
	return c, nil
}

// EvaluateFormula calculates the formula at ref with the excelize engine.
// The engine reports Excel errors (#DIV/0!, #N/A, ...) through its error
// return; those yield a KindError cell. Any other engine failure, such as an
// unsupported function, is returned unchanged whatever result came with it.
func (wb *Workbook) EvaluateFormula(ref CellRef) (Cell, error) {
	sheet, cell, err := wb.locate(ref)
	if err != nil {
		return Cell{}, err
	}
	result, err := wb.file.CalcCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		if literal := err.Error(); isFormulaError(literal) {
			return Cell{Ref: ref, Kind: KindError, Text: literal}, nil
		}
		return Cell{}, err
	}
	return classifyResult(ref, result), nil
}

// IsDateFormatted reports whether the cell's number format is a date or time format.
func (wb *Workbook) IsDateFormatted(ref CellRef) (bool, error) {
	sheet, cell, err := wb.locate(ref)
	if err != nil {
		return false, err
	}
	typ, err := wb.file.GetCellType(sheet, cell)
	if err != nil {
		return false, err
	}
	if typ == excelize.CellTypeDate {
		return true, nil
	}
	styleID, err := wb.file.GetCellStyle(sheet, cell)
	if err != nil {
		return false, err
	}
	return wb.isDateStyle(styleID)
}

func (wb *Workbook) isDateStyle(styleID int) (bool, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()

	if isDate, ok := wb.dateStyle[styleID]; ok {
		return isDate, nil
	}
	style, err := wb.file.GetStyle(styleID)
	if err != nil {
		return false, fmt.Errorf("style %d: %w", styleID, err)
	}
	var code string
	if style.CustomNumFmt != nil {
		code = *style.CustomNumFmt
	}
	isDate := isDateNumFmt(style.NumFmt, code)
	wb.dateStyle[styleID] = isDate
	return isDate, nil
}

// DecodeDateSerial converts a date serial to a timestamp in the workbook's
// date system. The wall clock is placed in the configured location.
func (wb *Workbook) DecodeDateSerial(serial float64, ref CellRef) (time.Time, error) {
	t, err := excelize.ExcelDateToTime(serial, wb.date1904)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), wb.opts.location), nil
}

// Save writes the workbook back to the path it was opened from.
func (wb *Workbook) Save() error {
	if err := wb.applyCalcProps(); err != nil {
		return err
	}
	if err := wb.file.Save(); err != nil {
		return fmt.Errorf("save workbook %q: %w", wb.file.Path, err)
	}
	return nil
}

// SaveAs writes the workbook to path.
func (wb *Workbook) SaveAs(path string) error {
	if err := wb.applyCalcProps(); err != nil {
		return err
	}
	if err := wb.file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}

// Write writes the workbook to w.
func (wb *Workbook) Write(w io.Writer) error {
	if err := wb.applyCalcProps(); err != nil {
		return err
	}
	return wb.file.Write(w)
}

// Close closes the underlying excelize file.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}

// File returns the underlying excelize file for advanced operations.
func (wb *Workbook) File() *excelize.File {
	return wb.file
}

func (wb *Workbook) applyCalcProps() error {
	if !wb.opts.recalculateOnOpen {
		return nil
	}
	recalc := true
	if err := wb.file.SetCalcProps(&excelize.CalcPropsOptions{FullCalcOnLoad: &recalc}); err != nil {
		return fmt.Errorf("set calc properties: %w", err)
	}
	return nil
}

func (wb *Workbook) locate(ref CellRef) (sheet, cell string, err error) {
	if ref.Sheet == "" {
		return "", "", fmt.Errorf("cell reference %s has no sheet", ref)
	}
	cell, err = CellName(ref.Row, ref.Col)
	if err != nil {
		return "", "", fmt.Errorf("cell reference %s: %w", ref, err)
	}
	return ref.Sheet, cell, nil
}

var formulaErrors = map[string]bool{
	"#NULL!":        true,
	"#DIV/0!":       true,
	"#VALUE!":       true,
	"#REF!":         true,
	"#NAME?":        true,
	"#NUM!":         true,
	"#N/A":          true,
	"#GETTING_DATA": true,
	"#SPILL!":       true,
	"#CALC!":        true,
}

func isFormulaError(s string) bool {
	return formulaErrors[s]
}

// classifyResult maps the engine's string result to a cell kind. Booleans
// come back as TRUE/FALSE and numbers as plain float literals.
//
// The engine does not say whether a result was text, so ="TRUE" reads as
// Boolean and ="12" as Numeric. A reference to an empty cell (=B9) comes back
// as "" and reads as Blank, not as the 0 Excel displays.
func classifyResult(ref CellRef, result string) Cell {
	c := Cell{Ref: ref}
	switch {
	case isFormulaError(result):
		c.Kind, c.Text = KindError, result
	case result == "":
		c.Kind = KindBlank
	case result == "TRUE" || result == "FALSE":
		c.Kind, c.Bool = KindBoolean, result == "TRUE"
	default:
		if n, ok := parseResultNumber(result); ok {
			c.Kind, c.Number = KindNumeric, n
		} else {
			c.Kind, c.Text = KindText, result
		}
	}
	return c
}

// parseResultNumber accepts only the literal forms the engine emits, so that
// text results such as "0123", " 12" or "+5" stay text.
func parseResultNumber(s string) (float64, bool) {
	if s == "" || strings.TrimSpace(s) != s || s[0] == '+' {
		return 0, false
	}
	digits := strings.TrimPrefix(s, "-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISODate(s string) (time.Time, error) {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date cell holds %q: not an ISO 8601 date", s)
}

var (
	epoch1900 = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// timeToSerial converts a wall-clock time to a date serial.
func timeToSerial(t time.Time, date1904 bool) float64 {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	epoch := epoch1900
	if date1904 {
		epoch = epoch1904
	}
	secs := float64(wall.Unix()-epoch.Unix()) + float64(wall.Nanosecond())/1e9
	return secs / 86400
}
