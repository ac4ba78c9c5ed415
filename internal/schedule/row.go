package schedule

// CellKind tags the loosely-typed cell values a spreadsheet decoder hands
// us. Branching on the tag keeps duration normalization exhaustive instead
// of sniffing runtime types.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is one raw spreadsheet cell. Text is always populated with the
// cell's rendered value; Number is meaningful only when Kind is CellNumber.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell builds a text or empty cell from a rendered value.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell builds a numeric cell, keeping the rendered text alongside.
func NumberCell(v float64, text string) Cell {
	return Cell{Kind: CellNumber, Text: text, Number: v}
}

// Row is one raw record from the tabular source, keyed by field.
type Row struct {
	OrderID  Cell
	Name     Cell
	Duration Cell
	Notes    Cell
}
