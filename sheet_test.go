package xlcell

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// setAndReopen writes values through a fresh workbook, saves it and returns
// the first sheet of the reopened file.
func setAndReopen(t *testing.T, set func(s *Sheet)) *Sheet {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book1.xlsx")

	wb, err := NewWorkbook()
	require.NoError(t, err)
	sheet, err := wb.Sheet(0)
	require.NoError(t, err)
	set(sheet)
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })
	sheet, err = reopened.Sheet(0)
	require.NoError(t, err)
	return sheet
}

func TestSheet_SetString(t *testing.T) {
	sheet := setAndReopen(t, func(s *Sheet) {
		require.NoError(t, s.SetAt("A1", "あいうえお"))
	})

	v, err := sheet.CellAt("A1")
	require.NoError(t, err)
	got, err := v.Text()
	require.NoError(t, err)
	assert.Equal(t, "あいうえお", got)
}

func TestSheet_SetStringByIndex(t *testing.T) {
	sheet := setAndReopen(t, func(s *Sheet) {
		require.NoError(t, s.Set(0, 0, "あいうえお"))
		require.NoError(t, s.Set(1, 0, "かきくけこ"))
		require.NoError(t, s.Set(2, 1, "さしすせそ"))
	})

	for label, want := range map[string]string{
		"A1": "あいうえお",
		"A2": "かきくけこ",
		"B3": "さしすせそ",
	} {
		v, err := sheet.CellAt(label)
		require.NoError(t, err)
		got, err := v.Text()
		require.NoError(t, err)
		assert.Equal(t, want, got, label)
	}
}

func TestSheet_SetInt(t *testing.T) {
	sheet := setAndReopen(t, func(s *Sheet) {
		require.NoError(t, s.SetAt("A1", 12345))
		require.NoError(t, s.SetAt("A2", int64(-42)))
		require.NoError(t, s.SetAt("A3", uint8(7)))
	})

	for label, want := range map[string]int{"A1": 12345, "A2": -42, "A3": 7} {
		v, err := sheet.CellAt(label)
		require.NoError(t, err)
		got, err := v.Int()
		require.NoError(t, err)
		assert.Equal(t, want, got, label)
	}
}

func TestSheet_SetFloat(t *testing.T) {
	sheet := setAndReopen(t, func(s *Sheet) {
		require.NoError(t, s.SetAt("A1", 150.51))
		require.NoError(t, s.SetAt("A2", float32(0.5)))
	})

	v, err := sheet.CellAt("A1")
	require.NoError(t, err)
	got, err := v.Float()
	require.NoError(t, err)
	assert.InDelta(t, 150.51, got, 0.00001)

	v, err = sheet.CellAt("A2")
	require.NoError(t, err)
	got, err = v.Float()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 0.00001)
}

func TestSheet_SetBool(t *testing.T) {
	sheet := setAndReopen(t, func(s *Sheet) {
		require.NoError(t, s.SetAt("A1", true))
	})

	v, err := sheet.CellAt("A1")
	require.NoError(t, err)
	got, err := v.Bool()
	require.NoError(t, err)
	assert.True(t, got)
}

func TestSheet_SetDate(t *testing.T) {
	want := time.Date(2017, 9, 23, 13, 32, 24, 0, time.UTC)
	sheet := setAndReopen(t, func(s *Sheet) {
		require.NoError(t, s.SetAt("A1", want))
	})

	v, err := sheet.CellAt("A1")
	require.NoError(t, err)
	assert.True(t, v.IsDate())
	got, err := v.Time()
	require.NoError(t, err)
	assert.WithinDuration(t, want, got, time.Second)
}

func TestSheet_SetDateKeepsWallClock(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	sheet := setAndReopen(t, func(s *Sheet) {
		require.NoError(t, s.SetAt("A1", time.Date(2017, 9, 23, 13, 32, 24, 0, jst)))
	})

	v, err := sheet.CellAt("A1")
	require.NoError(t, err)
	got, err := v.Time()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2017, 9, 23, 13, 32, 24, 0, time.UTC), got, time.Second)
}

func TestSheet_SetDateWithDate1904Override(t *testing.T) {
	want := time.Date(2015, 12, 1, 0, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "book1.xlsx")

	wb, err := NewWorkbook(WithDate1904(true))
	require.NoError(t, err)
	sheet, err := wb.Sheet(0)
	require.NoError(t, err)
	require.NoError(t, sheet.SetAt("A1", want))

	raw, err := wb.File().GetCellValue("Sheet1", "A1", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "40877", raw) // 42339 in the 1900 system

	v, err := sheet.CellAt("A1")
	require.NoError(t, err)
	assert.True(t, v.IsDate())
	got, err := v.Time()
	require.NoError(t, err)
	assert.WithinDuration(t, want, got, time.Second)

	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	reopened, err := Open(path, WithDate1904(true))
	require.NoError(t, err)
	defer reopened.Close()
	sheet, err = reopened.Sheet(0)
	require.NoError(t, err)
	v, err = sheet.CellAt("A1")
	require.NoError(t, err)
	got, err = v.Time()
	require.NoError(t, err)
	assert.WithinDuration(t, want, got, time.Second)
}

func TestSheet_SetDateOverNumberStyle(t *testing.T) {
	wb, err := NewWorkbook()
	require.NoError(t, err)
	defer wb.Close()
	sheet, err := wb.Sheet(0)
	require.NoError(t, err)

	numStyle := newNumFmtStyle(t, wb.File(), 4)
	require.NoError(t, wb.File().SetCellStyle("Sheet1", "A1", "A1", numStyle))
	require.NoError(t, sheet.SetAt("A1", time.Date(2015, 12, 1, 0, 0, 0, 0, time.UTC)))

	v, err := sheet.CellAt("A1")
	require.NoError(t, err)
	assert.True(t, v.IsDate())
}

func TestSheet_SetNilClears(t *testing.T) {
	sheet := setAndReopen(t, func(s *Sheet) {
		require.NoError(t, s.SetAt("A1", "temporary"))
		require.NoError(t, s.SetAt("A1", nil))
	})

	v, err := sheet.CellAt("A1")
	require.NoError(t, err)
	got, err := v.Text()
	require.NoError(t, err)
	assert.Equal(t, "", got)
	_, err = v.Int()
	assert.ErrorIs(t, err, ErrInvalidCoercion)
}

func TestSheet_SetUnsupportedValue(t *testing.T) {
	wb, err := NewWorkbook()
	require.NoError(t, err)
	defer wb.Close()
	sheet, err := wb.Sheet(0)
	require.NoError(t, err)

	f, err := os.CreateTemp(t.TempDir(), "value")
	require.NoError(t, err)
	defer f.Close()

	for _, v := range []any{f, struct{}{}, []string{"a"}, map[string]int{}} {
		err := sheet.SetAt("A1", v)
		assert.ErrorIs(t, err, ErrUnsupportedValue)
	}
}

func TestSheet_SetFormula(t *testing.T) {
	sheet := setAndReopen(t, func(s *Sheet) {
		require.NoError(t, s.SetAt("A1", 20))
		require.NoError(t, s.SetAt("A2", 22))
		require.NoError(t, s.SetFormula(2, 0, "SUM(A1:A2)"))
	})

	v, err := sheet.CellAt("A3")
	require.NoError(t, err)
	assert.Equal(t, KindFormula, v.RawKind())
	got, err := v.Int()
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestSheet_BadLabel(t *testing.T) {
	wb, err := NewWorkbook()
	require.NoError(t, err)
	defer wb.Close()
	sheet, err := wb.Sheet(0)
	require.NoError(t, err)

	_, err = sheet.CellAt("1A")
	assert.Error(t, err)
	assert.Error(t, sheet.SetAt("", "x"))
	assert.Error(t, sheet.Set(-1, 0, "x"))
}
