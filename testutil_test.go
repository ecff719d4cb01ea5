package xlcell

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// createBook1 writes a fixture workbook with one column per storage kind and
// one row per accessor.
//
//	B: text   C: integer   D: decimal   E: date/time   F: boolean
//	G: formula over the row   H: blank   J: text-concatenating formula   K: =NA()
//
// Row 2 targets Text, 3 Int, 4 Float, 5 Bool, 6 dates, 7 times, 8 date-times.
func createBook1(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	dateStyle := newNumFmtStyle(t, f, 14)     // m/d/yy
	timeStyle := newNumFmtStyle(t, f, 21)     // h:mm:ss
	dateTimeStyle := newNumFmtStyle(t, f, 22) // m/d/yy h:mm

	date := time.Date(2015, 12, 1, 0, 0, 0, 0, time.UTC)
	dateTime := time.Date(2015, 12, 1, 10, 10, 30, 0, time.UTC)

	values := map[string]any{
		"B2": "あいうえお", "C2": 123, "D2": 150.51, "E2": date, "F2": true,
		"B3": "456", "C3": 123, "D3": 150.51, "E3": date, "F3": true,
		"B4": "123.456", "C4": 123, "D4": 150.51, "E4": date, "F4": true,
		"B5": "true", "C5": 1, "D5": 0.5, "E5": date, "F5": true,
		"B6": "2015-12-01", "C6": 42339, "D6": 150.51, "E6": date, "F6": true,
		"B7": "10:10:30", "C7": 0.5, "D7": 150.51, "F7": false,
		"B8": "2015-12-01 10:10:30", "C8": 42339, "D8": 150.51, "E8": dateTime, "F8": false,
	}
	for cell, v := range values {
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
	// 10:10:30 as a bare time serial
	require.NoError(t, f.SetCellValue(sheet, "E7", (10*3600+10*60+30)/86400.0))
	require.NoError(t, f.SetCellStyle(sheet, "E6", "E6", dateStyle))
	require.NoError(t, f.SetCellStyle(sheet, "E7", "E7", timeStyle))

	formulas := map[string]string{
		"G2": "C2&D2", "J2": "B2&C2",
		"G3": "C3*3", "J3": "B3&C3", "K3": "NA()",
		"G4": "D4/3", "J4": "C4&B4", "K4": "NA()",
		"G5": "1>2", "K5": "NA()",
		"G6": "E6+2", "J6": "B6&C6", "K6": "NA()",
		"G7": "E7+0.1", "J7": "B7&C7", "K7": "NA()",
		"G8": "E8+2", "J8": "B8&C8", "K8": "NA()",
	}
	for cell, formula := range formulas {
		require.NoError(t, f.SetCellFormula(sheet, cell, formula))
	}
	require.NoError(t, f.SetCellStyle(sheet, "G6", "G6", dateStyle))
	require.NoError(t, f.SetCellStyle(sheet, "G7", "G7", timeStyle))
	require.NoError(t, f.SetCellStyle(sheet, "G8", "G8", dateTimeStyle))

	path := filepath.Join(t.TempDir(), "book1.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func newNumFmtStyle(t *testing.T, f *excelize.File, numFmt int) int {
	t.Helper()
	id, err := f.NewStyle(&excelize.Style{NumFmt: numFmt})
	require.NoError(t, err)
	return id
}

// openBook1 opens the fixture and returns its first sheet.
func openBook1(t *testing.T, opts ...Option) *Sheet {
	t.Helper()
	wb, err := Open(createBook1(t), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })

	sheet, err := wb.Sheet(0)
	require.NoError(t, err)
	return sheet
}
