package table

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/izzyreal/reportgrid/internal/report"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending", "-1":
		return Descending
	default:
		return Ascending
	}
}

// SortState is the active sort column; an empty Column means unsorted.
type SortState struct {
	Column    string    `json:"column,omitempty"`
	Direction Direction `json:"-"`
}

var sortableColumns = []string{
	report.ColumnStatus,
	report.ColumnSuite,
	report.ColumnTest,
	report.ColumnPackageInfo,
	report.ColumnClassName,
	report.ColumnMethodName,
	report.ColumnParameters,
	report.ColumnType,
	report.ColumnStartTime,
	report.ColumnEndTime,
}

func IsSortable(column string) bool {
	return slices.Contains(sortableColumns, column)
}

// sortRecords sorts records in place. Equal keys keep their relative order
// in both directions.
func sortRecords(records []report.Record, column string, dir Direction) {
	slices.SortStableFunc(records, func(a, b report.Record) int {
		av, _ := a.Field(column)
		bv, _ := b.Field(column)
		if dir == Descending {
			return compareValues(bv, av)
		}
		return compareValues(av, bv)
	})
}

// compareValues orders numbers before non-numbers. Numbers compare
// numerically, everything else lexically.
func compareValues(a, b string) int {
	af, aerr := strconv.ParseFloat(strings.TrimSpace(a), 64)
	bf, berr := strconv.ParseFloat(strings.TrimSpace(b), 64)
	switch {
	case aerr == nil && berr == nil:
		return cmp.Compare(af, bf)
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	return strings.Compare(a, b)
}
