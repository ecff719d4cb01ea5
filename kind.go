package xlcell

// Kind is the storage kind of a cell value.
type Kind int

const (
	KindBlank Kind = iota
	KindText
	KindNumeric
	KindBoolean
	KindFormula
	KindError
)

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "Blank"
	case KindText:
		return "Text"
	case KindNumeric:
		return "Numeric"
	case KindBoolean:
		return "Boolean"
	case KindFormula:
		return "Formula"
	case KindError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Cell is a snapshot of one cell's stored content.
//
// Only the field matching Kind is meaningful: Text for KindText, Number for
// KindNumeric, Bool for KindBoolean. A formula cell keeps its source (without
// the leading "=") in Text, an error cell keeps its literal ("#N/A").
type Cell struct {
	Ref    CellRef
	Kind   Kind
	Text   string
	Number float64
	Bool   bool
}
