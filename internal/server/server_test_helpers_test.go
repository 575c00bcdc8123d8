package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/izzyreal/reportgrid/internal/config"
	"github.com/izzyreal/reportgrid/internal/report"
	"github.com/izzyreal/reportgrid/internal/store"
)

func newTestState(t *testing.T) *stateStore {
	t.Helper()

	tmp := t.TempDir()
	db, err := store.Open(filepath.Join(tmp, "reportgrid.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	cfg := config.Default()
	cfg.Server.DBPath = filepath.Join(tmp, "reportgrid.db")
	cfg.Server.MDNS = false
	cfg.Reports.Dir = filepath.Join(tmp, "reports")
	cfg.Grid.SauceConfigFile = filepath.Join(tmp, "conf", "sauceConfig.json")
	cfg.Grid.IconsDir = filepath.Join(tmp, "icons")
	cfg.Grid.HubVersion = "v2.0.0"
	if err := os.MkdirAll(cfg.Grid.IconsDir, 0o755); err != nil {
		t.Fatalf("create icons dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Grid.IconsDir, "firefox.png"), []byte("png"), 0o644); err != nil {
		t.Fatalf("write icon: %v", err)
	}
	return newStateStore(cfg, db)
}

func newTestHTTPServer(t *testing.T) (*httptest.Server, *stateStore) {
	t.Helper()
	s := newTestState(t)
	ts := httptest.NewServer(buildRouter(s))
	t.Cleanup(ts.Close)
	return ts, s
}

// sampleDocument has n test methods spread over two suites and two
// configuration methods. Every fifth test fails with a stack trace.
func sampleDocument(n int) report.Document {
	doc := report.Document{
		ConfigSummary:    map[string]string{"currentDate": "2015-03-04T05:06:07Z", "browser": "firefox"},
		ReporterMetadata: map[string]report.MetadataEntry{"browser": {DisplayLabel: "Browser"}},
		LocalConfigSummary: []map[string]string{
			{"test": "login", "locale": "en_US"},
		},
	}
	for i := 0; i < n; i++ {
		rec := report.Record{
			Suite:       "suite-a",
			Test:        "login",
			PackageInfo: "com.example.web",
			ClassName:   "LoginTest",
			MethodName:  fmt.Sprintf("case%02d", i),
			Status:      report.StatusPassed,
			StartTime:   fmt.Sprintf("2015-03-04T05:%02d:00Z", i%60),
		}
		if i%2 == 1 {
			rec.Suite = "suite-b"
			rec.Test = "checkout"
			rec.ClassName = "CheckoutTest"
		}
		if i%5 == 0 {
			rec.Status = report.StatusFailed
			rec.Stacktrace = "java.lang.AssertionError: boom\n\tat LoginTest.case(LoginTest.java:10)"
		}
		doc.TestMethods = append(doc.TestMethods, rec)
	}
	doc.ConfigurationMethods = []report.Record{
		{PackageInfo: "com.example.web", ClassName: "Base", MethodName: "setUp", Status: report.StatusPassed, Type: "BeforeClass"},
		{PackageInfo: "com.example.web", ClassName: "Base", MethodName: "tearDown", Status: report.StatusSkipped, Type: "AfterClass"},
	}
	doc.ReportSummary.TestMethodsSummary = report.Summarize(doc.TestMethods)
	doc.ReportSummary.ConfigurationMethodsSummary = report.Summarize(doc.ConfigurationMethods)
	return doc
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func mustRequest(t *testing.T, client *http.Client, method, url, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	body := readBody(t, resp)
	if err := json.Unmarshal([]byte(body), out); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
}

func importSample(t *testing.T, ts *httptest.Server, n int) store.PersistedReport {
	t.Helper()
	resp := mustRequest(t, ts.Client(), http.MethodPost, ts.URL+"/api/v1/reports/import?name=nightly", "application/json", string(mustMarshal(t, sampleDocument(n))))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("import status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var saved store.PersistedReport
	decodeJSON(t, resp, &saved)
	return saved
}
