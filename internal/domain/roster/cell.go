package roster

import (
	"strconv"
	"time"
)

// CellKind identifies which variant a Cell holds.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDateTime
	CellTimeOfDay
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellDateTime:
		return "datetime"
	case CellTimeOfDay:
		return "time"
	default:
		return "unknown"
	}
}

// Cell is one raw spreadsheet value as produced by the reader. Exactly one
// variant is meaningful, selected by Kind. The zero value is an empty cell.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	// Time holds a calendar instant for CellDateTime, or a clock time on
	// the zero date for CellTimeOfDay.
	Time time.Time
}

func EmptyCell() Cell                { return Cell{Kind: CellEmpty} }
func TextCell(s string) Cell         { return Cell{Kind: CellText, Text: s} }
func NumberCell(f float64) Cell      { return Cell{Kind: CellNumber, Number: f} }
func DateTimeCell(t time.Time) Cell  { return Cell{Kind: CellDateTime, Time: t} }
func TimeOfDayCell(t time.Time) Cell { return Cell{Kind: CellTimeOfDay, Time: t} }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// DisplayString renders the raw value for diagnostics and issue payloads.
func (c Cell) DisplayString() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDateTime:
		return c.Time.Format("2006-01-02 15:04:05")
	case CellTimeOfDay:
		return c.Time.Format("15:04:05")
	default:
		return ""
	}
}

// RawCell pairs a literal header string with its cell value.
type RawCell struct {
	Header string
	Value  Cell
}

// RawRow is one spreadsheet row with its original 1-based position.
// Column order is preserved: when two headers resolve to the same
// canonical key, the later column wins.
type RawRow struct {
	Position int
	Cells    []RawCell
}
