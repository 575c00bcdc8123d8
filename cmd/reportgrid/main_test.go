package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/izzyreal/reportgrid/internal/report"
)

func TestInitLoggingLevelFromEnv(t *testing.T) {
	cases := []struct {
		name    string
		env     string
		debugOn bool
		infoOn  bool
		warnOn  bool
	}{
		{name: "debug", env: "debug", debugOn: true, infoOn: true, warnOn: true},
		{name: "warn", env: "warn", debugOn: false, infoOn: false, warnOn: true},
		{name: "default", env: "", debugOn: false, infoOn: true, warnOn: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("REPORTGRID_LOG_LEVEL", tc.env)
			initLogging()
			h := slog.Default().Handler()
			ctx := context.Background()
			if got := h.Enabled(ctx, slog.LevelDebug); got != tc.debugOn {
				t.Fatalf("debug enabled=%v want %v", got, tc.debugOn)
			}
			if got := h.Enabled(ctx, slog.LevelInfo); got != tc.infoOn {
				t.Fatalf("info enabled=%v want %v", got, tc.infoOn)
			}
			if got := h.Enabled(ctx, slog.LevelWarn); got != tc.warnOn {
				t.Fatalf("warn enabled=%v want %v", got, tc.warnOn)
			}
		})
	}
}

func TestUsageWritesExpectedText(t *testing.T) {
	out := captureStderr(t, usage)
	if !strings.Contains(out, "reportgrid - runtime test reports and grid administration") {
		t.Fatalf("missing usage title, got: %q", out)
	}
	if !strings.Contains(out, "validate-upgrade") || !strings.Contains(out, "table") {
		t.Fatalf("missing commands in usage: %q", out)
	}
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()
	_ = w.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read stderr: %v", err)
	}
	return string(b)
}

func writeReport(t *testing.T, n int) string {
	t.Helper()
	var doc report.Document
	for i := 0; i < n; i++ {
		status := report.StatusPassed
		if i == 3 {
			status = report.StatusFailed
		}
		doc.TestMethods = append(doc.TestMethods, report.Record{
			Suite:       "suite",
			Test:        "test",
			PackageInfo: "com.example",
			ClassName:   "Sample",
			MethodName:  fmt.Sprintf("m%02d", i),
			Status:      status,
		})
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write report: %v", err)
	}
	return path
}

func TestRunTablePrintsPage(t *testing.T) {
	path := writeReport(t, 12)

	var out bytes.Buffer
	if err := runTable([]string{"-page", "2", "-sort", "methodName", "-dir", "desc", path}, &out); err != nil {
		t.Fatalf("run table: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "m01") || strings.Contains(got, "m11") {
		t.Fatalf("expected second page of descending rows, got:\n%s", got)
	}
	if !strings.Contains(got, "page 2/2") || !strings.Contains(got, "11-12 of 12") {
		t.Fatalf("missing page footer, got:\n%s", got)
	}

	out.Reset()
	if err := runTable([]string{"-filter", "failed", path}, &out); err != nil {
		t.Fatalf("run filtered table: %v", err)
	}
	if !strings.Contains(out.String(), "m03") || strings.Contains(out.String(), "m04") {
		t.Fatalf("expected only the failed row, got:\n%s", out.String())
	}

	out.Reset()
	if err := runTable([]string{"-filter", "nothing-matches", path}, &out); err != nil {
		t.Fatalf("run empty table: %v", err)
	}
	if !strings.Contains(out.String(), "No data to display") {
		t.Fatalf("expected empty placeholder, got:\n%s", out.String())
	}
}

func TestRunTableErrors(t *testing.T) {
	path := writeReport(t, 2)
	var out bytes.Buffer
	if err := runTable(nil, &out); err == nil {
		t.Fatalf("expected usage error without a report path")
	}
	if err := runTable([]string{"-table", "bogus", path}, &out); err == nil {
		t.Fatalf("expected error for unknown table")
	}
	if err := runTable([]string{"-sort", "bogus", path}, &out); err == nil {
		t.Fatalf("expected error for unknown sort column")
	}
	if err := runTable([]string{"-page-size", "0", path}, &out); err == nil {
		t.Fatalf("expected error for page size 0")
	}
}

func TestRunValidateUpgrade(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(good, []byte(`[{"name":"selenium","linux":{"url":"https://cdn.example.com/s.jar","checksum":"x"}}]`), 0o644); err != nil {
		t.Fatalf("write good: %v", err)
	}
	if err := os.WriteFile(bad, []byte(`[{"name":"selenium","solaris":{}}]`), 0o644); err != nil {
		t.Fatalf("write bad: %v", err)
	}

	var out bytes.Buffer
	if err := runValidateUpgrade([]string{good}, &out); err != nil {
		t.Fatalf("validate good: %v", err)
	}
	if !strings.Contains(out.String(), "selenium: 1 platform(s)") {
		t.Fatalf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := runValidateUpgrade([]string{bad}, &out); err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(out.String(), `Attribute "solaris" is invalid`) {
		t.Fatalf("expected problem to be printed, got %q", out.String())
	}
}
