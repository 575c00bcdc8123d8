package report

import (
	"html"
	"html/template"
	"strings"
	"time"
)

const currentDateKey = "currentDate"

const displayDateLayout = "Jan 2, 2006, 03:04:05 PM"

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
}

// FormatValue renders a config summary value for display. Only the report
// creation date gets reformatted; unparsable dates are shown as-is.
func FormatValue(key, value string) string {
	if key != currentDateKey {
		return value
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return value
}

// StacktraceHTML escapes a stack trace and keeps its line and tab layout.
func StacktraceHTML(stacktrace string) template.HTML {
	if stacktrace == "" {
		return template.HTML("No data to display")
	}
	escaped := html.EscapeString(stacktrace)
	escaped = strings.ReplaceAll(escaped, "\n", "<br/>")
	escaped = strings.ReplaceAll(escaped, "\t", "&nbsp;&nbsp;&nbsp;&nbsp;")
	return template.HTML(escaped)
}
