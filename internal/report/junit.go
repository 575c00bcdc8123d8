package report

import (
	"encoding/xml"
	"fmt"
	"strings"
)

type junitRoot struct {
	XMLName xml.Name
}

type junitTestSuites struct {
	Suites []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name      string           `xml:"name,attr"`
	Package   string           `xml:"package,attr"`
	Timestamp string           `xml:"timestamp,attr"`
	TestCases []junitTestCase  `xml:"testcase"`
	Suites    []junitTestSuite `xml:"testsuite"`
}

type junitTestCase struct {
	Name      string         `xml:"name,attr"`
	ClassName string         `xml:"classname,attr"`
	Failures  []junitMessage `xml:"failure"`
	Errors    []junitMessage `xml:"error"`
	Skipped   []junitMessage `xml:"skipped"`
	SystemOut string         `xml:"system-out"`
	SystemErr string         `xml:"system-err"`
}

type junitMessage struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// ParseJUnitXML converts a JUnit XML result file into a Document. The
// outermost suite becomes the record suite and the innermost suite the
// record test; classname splits into package and class.
func ParseJUnitXML(data []byte, source string) (Document, error) {
	var root junitRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return Document{}, fmt.Errorf("parse junit report %q: %w", source, err)
	}

	var top []junitTestSuite
	switch root.XMLName.Local {
	case "testsuite":
		var ts junitTestSuite
		if err := xml.Unmarshal(data, &ts); err != nil {
			return Document{}, fmt.Errorf("parse junit report %q: %w", source, err)
		}
		top = append(top, ts)
	case "testsuites":
		var tss junitTestSuites
		if err := xml.Unmarshal(data, &tss); err != nil {
			return Document{}, fmt.Errorf("parse junit report %q: %w", source, err)
		}
		top = tss.Suites
	default:
		return Document{}, fmt.Errorf("parse junit report %q: unexpected root element <%s>", source, root.XMLName.Local)
	}

	var doc Document
	for _, ts := range top {
		suiteName := strings.TrimSpace(ts.Name)
		walkJUnitSuite(ts, func(inner junitTestSuite) {
			for _, tc := range inner.TestCases {
				doc.TestMethods = append(doc.TestMethods, junitRecord(suiteName, inner, tc))
			}
		})
	}
	doc.ReportSummary.TestMethodsSummary = Summarize(doc.TestMethods)
	doc.ReportSummary.ConfigurationMethodsSummary = Summarize(nil)
	return doc, nil
}

func walkJUnitSuite(ts junitTestSuite, fn func(junitTestSuite)) {
	fn(ts)
	for _, child := range ts.Suites {
		walkJUnitSuite(child, fn)
	}
}

func junitRecord(suite string, ts junitTestSuite, tc junitTestCase) Record {
	className := strings.TrimSpace(tc.ClassName)
	if className == "" {
		className = strings.TrimSpace(ts.Package)
	}
	pkg := ""
	if i := strings.LastIndex(className, "."); i >= 0 {
		pkg, className = className[:i], className[i+1:]
	}

	r := Record{
		Suite:       suite,
		Test:        strings.TrimSpace(ts.Name),
		PackageInfo: pkg,
		ClassName:   className,
		MethodName:  strings.TrimSpace(tc.Name),
		Status:      StatusPassed,
		StartTime:   strings.TrimSpace(ts.Timestamp),
	}
	var first []junitMessage
	switch {
	case len(tc.Failures) > 0 || len(tc.Errors) > 0:
		r.Status = StatusFailed
		first = append(append(first, tc.Failures...), tc.Errors...)
	case len(tc.Skipped) > 0:
		r.Status = StatusSkipped
		first = tc.Skipped
	}
	if len(first) > 0 {
		r.Exception = strings.TrimSpace(first[0].Type)
		r.Description = strings.TrimSpace(first[0].Message)
	}
	r.Stacktrace = collectJUnitMessages(tc.Failures, tc.Errors, tc.Skipped, tc.SystemOut, tc.SystemErr)
	return r
}

func collectJUnitMessages(failures, errors, skipped []junitMessage, systemOut, systemErr string) string {
	var lines []string
	appendMessages := func(kind string, msgs []junitMessage) {
		for _, m := range msgs {
			headParts := []string{kind}
			if t := strings.TrimSpace(m.Type); t != "" {
				headParts = append(headParts, "type="+t)
			}
			if msg := strings.TrimSpace(m.Message); msg != "" {
				headParts = append(headParts, "message="+msg)
			}
			lines = append(lines, strings.Join(headParts, " "))
			if body := strings.TrimSpace(m.Body); body != "" {
				lines = append(lines, body)
			}
		}
	}
	appendMessages("failure", failures)
	appendMessages("error", errors)
	appendMessages("skipped", skipped)
	if v := strings.TrimSpace(systemOut); v != "" {
		lines = append(lines, "system-out", v)
	}
	if v := strings.TrimSpace(systemErr); v != "" {
		lines = append(lines, "system-err", v)
	}
	return strings.Join(lines, "\n")
}
