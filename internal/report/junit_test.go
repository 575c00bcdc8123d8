package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const junitXML = `<testsuites>
  <testsuite name="smoke" timestamp="2015-03-04T05:06:07">
    <testsuite name="login" package="com.example.web">
      <testcase name="ok" classname="com.example.web.LoginTest"></testcase>
      <testcase name="fail" classname="com.example.web.LoginTest">
        <failure message="boom" type="java.lang.AssertionError">at LoginTest.fail(LoginTest.java:10)</failure>
        <system-out>stdout line</system-out>
      </testcase>
      <testcase name="skip"><skipped message="not now"/></testcase>
    </testsuite>
  </testsuite>
</testsuites>`

func TestParseJUnitXML(t *testing.T) {
	doc, err := ParseJUnitXML([]byte(junitXML), "junit.xml")
	if err != nil {
		t.Fatalf("parse junit: %v", err)
	}
	if len(doc.TestMethods) != 3 {
		t.Fatalf("expected 3 records, got %d", len(doc.TestMethods))
	}
	if want := (Counts{Passed: 1, Failed: 1, Skipped: 1}); doc.ReportSummary.TestMethodsSummary != want {
		t.Fatalf("unexpected summary: %+v", doc.ReportSummary.TestMethodsSummary)
	}

	ok := doc.TestMethods[0]
	if ok.Suite != "smoke" || ok.Test != "login" || ok.PackageInfo != "com.example.web" || ok.ClassName != "LoginTest" || ok.Status != StatusPassed {
		t.Fatalf("unexpected first record: %+v", ok)
	}

	fail := doc.TestMethods[1]
	if fail.Status != StatusFailed || fail.Exception != "java.lang.AssertionError" || fail.Description != "boom" {
		t.Fatalf("unexpected failed record: %+v", fail)
	}
	if !strings.Contains(fail.Stacktrace, "failure type=java.lang.AssertionError message=boom\nat LoginTest.fail") ||
		!strings.Contains(fail.Stacktrace, "system-out\nstdout line") {
		t.Fatalf("unexpected stacktrace: %q", fail.Stacktrace)
	}

	skip := doc.TestMethods[2]
	if skip.Status != StatusSkipped || skip.PackageInfo != "com.example" || skip.ClassName != "web" {
		t.Fatalf("classname should fall back to the suite package: %+v", skip)
	}
}

func TestParseJUnitXMLRejectsOtherDocuments(t *testing.T) {
	if _, err := ParseJUnitXML([]byte(`<html></html>`), "page.xml"); err == nil {
		t.Fatalf("expected error for unexpected root element")
	}
	if _, err := ParseJUnitXML([]byte(`not xml`), "broken.xml"); err == nil {
		t.Fatalf("expected error for invalid XML")
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TEST-smoke.XML")
	if err := os.WriteFile(path, []byte(junitXML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("load junit: %v", err)
	}
	if len(doc.TestMethods) != 3 {
		t.Fatalf("expected junit records, got %d", len(doc.TestMethods))
	}
}
