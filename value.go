package xlcell

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value answers typed queries about one cell. Formula cells are evaluated
// once when the Value is built, and every accessor then works on the result.
// A Value holds no resources and needs no teardown.
type Value struct {
	doc       Document
	raw       Cell
	effective Cell // evaluated result for formula cells, raw otherwise
	date      bool // effective kind is Numeric with a date/time format
}

// NewValue reads the cell at ref from doc and resolves it for coercion.
// Formula evaluation errors are returned exactly as doc reported them.
func NewValue(doc Document, ref CellRef) (*Value, error) {
	raw, err := doc.ReadCell(ref)
	if err != nil {
		return nil, fmt.Errorf("read cell %s: %w", ref, err)
	}
	raw.Ref = ref
	return FromCell(doc, raw)
}

// FromCell resolves a cell snapshot the caller already holds. doc is used for
// formula evaluation and date handling of the cell at raw.Ref.
func FromCell(doc Document, raw Cell) (*Value, error) {
	v := &Value{doc: doc, raw: raw, effective: raw}

	if raw.Kind == KindFormula {
		res, err := doc.EvaluateFormula(raw.Ref)
		if err != nil {
			return nil, err
		}
		res.Ref = raw.Ref
		v.effective = res
	}

	if v.effective.Kind == KindNumeric {
		isDate, err := doc.IsDateFormatted(raw.Ref)
		if err != nil {
			return nil, fmt.Errorf("number format of %s: %w", raw.Ref, err)
		}
		v.date = isDate
	}
	return v, nil
}

// Ref returns the reference of the underlying cell.
func (v *Value) Ref() CellRef { return v.raw.Ref }

// Kind returns the effective kind: the evaluated kind for formula cells,
// the stored kind otherwise.
func (v *Value) Kind() Kind { return v.effective.Kind }

// RawKind returns the stored kind, KindFormula for formula cells.
func (v *Value) RawKind() Kind { return v.raw.Kind }

// IsDate reports whether the cell holds a date-formatted number.
func (v *Value) IsDate() bool { return v.date }

// Text returns the cell as text. Whole numbers render without a decimal
// point ("44", not "44.0"), booleans as "true"/"false", blanks as "".
// Date-formatted numbers fail with ErrUnsupportedKind.
func (v *Value) Text() (string, error) {
	switch v.effective.Kind {
	case KindText:
		return v.effective.Text, nil
	case KindNumeric:
		if v.date {
			return "", v.fail("text", ErrUnsupportedKind, "date rendering is not supported")
		}
		return formatNumber(v.effective.Number), nil
	case KindBoolean:
		return strconv.FormatBool(v.effective.Bool), nil
	case KindBlank:
		return "", nil
	default:
		return "", v.fail("text", ErrInvalidCoercion, "")
	}
}

// Int returns the cell as an integer, truncating toward zero. Text is parsed
// as a decimal number first.
func (v *Value) Int() (int, error) {
	var f float64
	switch v.effective.Kind {
	case KindText:
		n, err := parseNumber(v.effective.Text)
		if err != nil {
			return 0, v.fail("int", ErrInvalidCoercion, err.Error())
		}
		f = n
	case KindNumeric:
		if v.date {
			return 0, v.fail("int", ErrInvalidCoercion, "cell is date formatted")
		}
		f = v.effective.Number
	default:
		return 0, v.fail("int", ErrInvalidCoercion, "")
	}

	t := math.Trunc(f)
	if math.IsNaN(t) || t < float64(math.MinInt) || t >= -float64(math.MinInt) {
		return 0, v.fail("int", ErrInvalidCoercion, fmt.Sprintf("%v is out of range", f))
	}
	return int(t), nil
}

// Float returns the cell as a float64. Text is parsed as a decimal number.
func (v *Value) Float() (float64, error) {
	switch v.effective.Kind {
	case KindText:
		n, err := parseNumber(v.effective.Text)
		if err != nil {
			return 0, v.fail("float", ErrInvalidCoercion, err.Error())
		}
		return n, nil
	case KindNumeric:
		if v.date {
			return 0, v.fail("float", ErrInvalidCoercion, "cell is date formatted")
		}
		return v.effective.Number, nil
	default:
		return 0, v.fail("float", ErrInvalidCoercion, "")
	}
}

// Bool returns the value of a boolean cell. No other kind converts.
func (v *Value) Bool() (bool, error) {
	if v.effective.Kind != KindBoolean {
		return false, v.fail("bool", ErrInvalidCoercion, "")
	}
	return v.effective.Bool, nil
}

// Time decodes a date-formatted number into a timestamp. Decoder errors are
// returned as the document reported them.
func (v *Value) Time() (time.Time, error) {
	if v.effective.Kind != KindNumeric || !v.date {
		return time.Time{}, v.fail("time", ErrInvalidCoercion, "")
	}
	return v.doc.DecodeDateSerial(v.effective.Number, v.raw.Ref)
}

func (v *Value) fail(target string, sentinel error, reason string) error {
	return &CoercionError{
		Ref:    v.raw.Ref,
		Kind:   v.effective.Kind,
		Target: target,
		Reason: reason,
		Err:    sentinel,
	}
}

// formatNumber renders integral values without a fraction and everything
// else in the shortest form that parses back to the same float64.
func formatNumber(n float64) string {
	if n == math.Ceil(n) && !math.IsInf(n, 0) {
		if n == 0 {
			return "0" // no "-0"
		}
		return strconv.FormatFloat(n, 'f', 0, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func parseNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}
