package report

import "strings"

const (
	StatusPassed  = "Passed"
	StatusFailed  = "Failed"
	StatusSkipped = "Skipped"
	StatusRunning = "Running"
)

// Record is one test or configuration method result as emitted by the
// runtime reporter. Optional fields are empty when the reporter left them out.
type Record struct {
	Suite       string    `json:"suite"`
	Test        string    `json:"test"`
	PackageInfo string    `json:"packageInfo"`
	ClassName   string    `json:"className"`
	MethodName  string    `json:"methodName"`
	Parameters  string    `json:"parameters,omitempty"`
	Status      string    `json:"status"`
	StartTime   string    `json:"startTime,omitempty"`
	EndTime     string    `json:"endTime,omitempty"`
	Description string    `json:"description,omitempty"`
	Exception   string    `json:"exception,omitempty"`
	Stacktrace  string    `json:"stacktrace,omitempty"`
	Type        string    `json:"type,omitempty"`
	Logs        []LogLine `json:"logs,omitempty"`
}

type LogLine struct {
	Message string `json:"message,omitempty"`
	Image   string `json:"image,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Column keys accepted by Field. They match the JSON attribute names so the
// same key can travel through query strings and table headers.
const (
	ColumnStatus      = "status"
	ColumnSuite       = "suite"
	ColumnTest        = "test"
	ColumnPackageInfo = "packageInfo"
	ColumnClassName   = "className"
	ColumnMethodName  = "methodName"
	ColumnParameters  = "parameters"
	ColumnStacktrace  = "stacktrace"
	ColumnType        = "type"
	ColumnStartTime   = "startTime"
	ColumnEndTime     = "endTime"
)

// Field returns the value stored under column and whether column is known.
func (r Record) Field(column string) (string, bool) {
	switch column {
	case ColumnStatus:
		return r.Status, true
	case ColumnSuite:
		return r.Suite, true
	case ColumnTest:
		return r.Test, true
	case ColumnPackageInfo:
		return r.PackageInfo, true
	case ColumnClassName:
		return r.ClassName, true
	case ColumnMethodName:
		return r.MethodName, true
	case ColumnParameters:
		return r.Parameters, true
	case ColumnStacktrace:
		return r.Stacktrace, true
	case ColumnType:
		return r.Type, true
	case ColumnStartTime:
		return r.StartTime, true
	case ColumnEndTime:
		return r.EndTime, true
	default:
		return "", false
	}
}

// QualifiedName renders package.Class.method(params), the title used for
// stacktrace and screenshot views.
func (r Record) QualifiedName() string {
	params := r.Parameters
	if params == "" {
		params = " "
	}
	return r.PackageInfo + "." + r.ClassName + "." + r.MethodName + "(" + params + ")"
}

func NormalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "passed":
		return StatusPassed
	case "failed":
		return StatusFailed
	case "skipped":
		return StatusSkipped
	default:
		return StatusRunning
	}
}
