// Package xlsx decodes uploaded spreadsheets into raw schedule rows. It
// owns the binary container format; everything past its boundary works on
// the tagged cell values in internal/schedule.
package xlsx

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"timeboxer/internal/schedule"
)

type columnMap struct {
	orderID  int
	name     int
	duration int
	notes    int
}

// Read decodes the first sheet of an xlsx document. The first row must be
// a header naming the order-id, name, and duration columns (notes are
// optional); the remaining rows come back untyped for the row validator.
// A missing required column fails the whole read, it is not a per-row
// rejection.
func Read(r io.Reader) ([]schedule.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	out := make([]schedule.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		out = append(out, schedule.Row{
			OrderID:  cellAt(raw, columns.orderID),
			Name:     cellAt(raw, columns.name),
			Duration: cellAt(raw, columns.duration),
			Notes:    cellAt(raw, columns.notes),
		})
	}
	return out, nil
}

func mapColumns(header []string) (columnMap, error) {
	columns := columnMap{orderID: -1, name: -1, duration: -1, notes: -1}
	for i, title := range header {
		switch normalizeHeader(title) {
		case "orderid", "order", "#", "№":
			columns.orderID = i
		case "name", "task", "taskname":
			columns.name = i
		case "duration", "estimatedduration":
			columns.duration = i
		case "notes", "note":
			columns.notes = i
		}
	}

	switch {
	case columns.orderID < 0:
		return columns, fmt.Errorf("missing required column: order id")
	case columns.name < 0:
		return columns, fmt.Errorf("missing required column: name")
	case columns.duration < 0:
		return columns, fmt.Errorf("missing required column: duration")
	}
	return columns, nil
}

func normalizeHeader(title string) string {
	cleaned := strings.ToLower(strings.TrimSpace(title))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(cleaned)
}

// cellAt classifies one rendered cell into the engine's tagged union.
// GetRows renders every cell as text; a value that parses as a float was a
// numeric cell (durations arrive as fractional days), anything else stays
// text. Short rows simply lack trailing cells.
func cellAt(raw []string, index int) schedule.Cell {
	if index < 0 || index >= len(raw) {
		return schedule.Cell{Kind: schedule.CellEmpty}
	}
	value := strings.TrimSpace(raw[index])
	if value == "" {
		return schedule.Cell{Kind: schedule.CellEmpty}
	}
	if number, err := strconv.ParseFloat(value, 64); err == nil {
		return schedule.NumberCell(number, value)
	}
	return schedule.TextCell(value)
}
