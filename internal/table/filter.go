package table

import (
	"strings"

	"github.com/izzyreal/reportgrid/internal/report"
)

// filterColumns are the fields searched by the text filter.
var filterColumns = []string{
	report.ColumnStatus,
	report.ColumnSuite,
	report.ColumnTest,
	report.ColumnPackageInfo,
	report.ColumnClassName,
	report.ColumnMethodName,
	report.ColumnStacktrace,
}

// NormalizeFilter trims, collapses whitespace runs to one space and
// lower-cases filter text.
func NormalizeFilter(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// Matches reports whether any filter column of r contains term. term must
// already be normalized; the empty term matches everything.
func Matches(r report.Record, term string) bool {
	if term == "" {
		return true
	}
	for _, col := range filterColumns {
		v, _ := r.Field(col)
		if strings.Contains(NormalizeFilter(v), term) {
			return true
		}
	}
	return false
}
