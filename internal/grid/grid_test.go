package grid

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	fixed := time.Date(2015, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	n, err := r.Register(Node{ID: " node-1 ", Status: "ONLINE"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if n.ID != "node-1" || n.Status != StatusOnline || n.OS != NotAvailable || n.Version != NotAvailable {
		t.Fatalf("unexpected defaults: %+v", n)
	}
	if n.Configuration.RemoteHost != "node-1" || !n.LastSeenUTC.Equal(fixed) {
		t.Fatalf("unexpected remote host or timestamp: %+v", n)
	}

	if _, err := r.Register(Node{}); !errors.Is(err, ErrNodeIDRequired) {
		t.Fatalf("expected ErrNodeIDRequired, got %v", err)
	}
}

func TestRegistryForceRestart(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"b", "a"} {
		if _, err := r.Register(Node{ID: id, Status: StatusOnline}); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}
	if _, err := r.ForceRestart(nil); !errors.Is(err, ErrNoNodesSelected) {
		t.Fatalf("expected ErrNoNodesSelected, got %v", err)
	}
	restarted, err := r.ForceRestart([]string{"a", "ghost"})
	if err != nil {
		t.Fatalf("force restart: %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, restarted); diff != "" {
		t.Fatalf("restarted mismatch (-want +got):\n%s", diff)
	}

	nodes := r.Nodes()
	if len(nodes) != 2 || nodes[0].ID != "a" || !nodes[0].IsShuttingDown || nodes[1].IsShuttingDown {
		t.Fatalf("unexpected nodes: %+v", nodes)
	}

	if _, err := r.Register(Node{ID: "a", Status: StatusOffline}); err != nil {
		t.Fatalf("re-register offline: %v", err)
	}
	if n, _ := r.Get("a"); !n.IsShuttingDown {
		t.Fatalf("offline heartbeat must keep the shutting down flag")
	}
	if _, err := r.Register(Node{ID: "a", Status: StatusOnline}); err != nil {
		t.Fatalf("re-register online: %v", err)
	}
	if n, _ := r.Get("a"); n.IsShuttingDown {
		t.Fatalf("online heartbeat must clear the shutting down flag")
	}
}

func TestSlotIconAndProxyClass(t *testing.T) {
	tests := []struct {
		in, icon, version string
	}{
		{"firefox", "firefox.png", ""},
		{"internet explorer:v11", "internet_explorer.png", "v11:"},
		{"chrome:v45.0", "chrome.png", "v45.0:"},
	}
	for _, tt := range tests {
		icon, version := SlotIcon(tt.in)
		if icon != tt.icon || version != tt.version {
			t.Fatalf("SlotIcon(%q) = %q, %q; want %q, %q", tt.in, icon, version, tt.icon, tt.version)
		}
	}
	if got := ProxyClass("com.paypal.selion.proxy.SeLionRemoteProxy"); got != "SeLionRemoteProxy" {
		t.Fatalf("unexpected proxy class: %q", got)
	}
	if got := ProxyClass("DefaultRemoteProxy"); got != "DefaultRemoteProxy" {
		t.Fatalf("unexpected proxy class: %q", got)
	}
}

func TestBuildNodeView(t *testing.T) {
	n := Node{
		ID:              "http://10.0.0.1:5555",
		Status:          StatusOffline,
		IsShuttingDown:  true,
		Version:         "1.0.0",
		OS:              "linux",
		UptimeInMinutes: -1,
		Configuration:   NodeConfiguration{Proxy: "org.openqa.grid.selenium.proxy.DefaultRemoteProxy", MaxSession: 5},
		SlotUsage: map[string]SlotInfo{
			"firefox":               {Used: 1, PercentUsed: 20, MaxInstances: 5},
			"internet explorer:v11": {MaxInstances: 1},
		},
	}
	v := BuildNodeView(n, "v1.2.0", func(name string) bool { return name == "firefox.png" })

	if v.ProxyClass != "DefaultRemoteProxy" || v.HeaderClass != "header offline shuttingdown" {
		t.Fatalf("unexpected header: %q %q", v.ProxyClass, v.HeaderClass)
	}
	if v.VersionInfo != " on linux" {
		t.Fatalf("offline node should only show os, got %q", v.VersionInfo)
	}
	if !v.Outdated {
		t.Fatalf("expected node older than hub to be outdated")
	}
	if !v.Left[2].Hidden || v.Left[2].Value != "not supported" {
		t.Fatalf("uptime should be hidden for non-SeLion proxies: %+v", v.Left[2])
	}

	want := []SlotView{
		{BrowserType: "firefox", Icon: "firefox.png", HasIcon: true, Tooltip: "{used:1,percentUsed:20,maxInstances:5}", Busy: true},
		{BrowserType: "internet explorer:v11", Icon: "internet_explorer.png", Version: "v11:", Tooltip: "{used:0,percentUsed:0,maxInstances:1}"},
	}
	if diff := cmp.Diff(want, v.Slots); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}

	n.Status = StatusOnline
	n.IsShuttingDown = false
	n.Configuration.Proxy = "com.paypal.selion.proxy.SeLionRemoteProxy"
	v = BuildNodeView(n, "", nil)
	if v.VersionInfo != "v1.0.0 on linux" || v.HeaderClass != "header" || v.Outdated {
		t.Fatalf("unexpected online view: %q %q %v", v.VersionInfo, v.HeaderClass, v.Outdated)
	}
	if v.Left[2].Hidden || v.Left[2].Value != "-1" {
		t.Fatalf("SeLion proxies show raw values: %+v", v.Left[2])
	}
	if v.Slots[0].HasIcon {
		t.Fatalf("nil icon probe must fall back to text")
	}
}

func TestParseDownloadsValid(t *testing.T) {
	artifacts, errs := ParseDownloads([]byte(`[
		{"name": "selenium", "roles": ["node", "hub"],
		 "any": {"url": "http://downloads.example.com/selenium.jar", "checksum": "abc"}},
		{"name": "chromedriver",
		 "linux": {"url": "https://cdn.example.com/chromedriver_linux64.zip", "checksum": "def"},
		 "mac": {"url": "https://cdn.example.com/chromedriver_mac.zip?v=2", "checksum": "ghi"}}
	]`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(artifacts) != 2 || artifacts[0].Name != "selenium" || len(artifacts[1].Platforms) != 2 {
		t.Fatalf("unexpected artifacts: %+v", artifacts)
	}
	if diff := cmp.Diff([]string{"node", "hub"}, artifacts[0].Roles); diff != "" {
		t.Fatalf("roles mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDownloadsErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"invalid json", `[{`, "Invalid JSON"},
		{"missing name", `[{"roles": ["node"]}]`, `There is no "name" attribute`},
		{"bad key", `[{"name": "x", "solaris": {}}]`, `Attribute "solaris" is invalid for element x. Valid values: name,roles,any,windows,linux,mac`},
		{"bad role", `[{"name": "x", "roles": ["node", "robot"]}]`, `Role "robot" is invalid for element x`},
		{"missing url", `[{"name": "x", "any": {"checksum": "a"}}]`, `There is no "url" attribute`},
		{"bad url", `[{"name": "x", "any": {"url": "ftp://example.com/a", "checksum": "a"}}]`, "unsupported or invalid URL"},
		{"missing checksum", `[{"name": "x", "windows": {"url": "http://example.com/a.exe"}}]`, `There is no "checksum" attribute`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := ParseDownloads([]byte(tt.json))
			if len(errs) == 0 || !strings.Contains(strings.Join(errs, "\n"), tt.want) {
				t.Fatalf("expected %q in %v", tt.want, errs)
			}
		})
	}
}

func TestArtifactMarshalFlattensPlatforms(t *testing.T) {
	a := Artifact{Name: "x", Platforms: map[string]PlatformDownload{"any": {URL: "http://a.b/c", Checksum: "d"}}}
	b, err := a.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"any":{"url":"http://a.b/c","checksum":"d"},"name":"x"}` {
		t.Fatalf("unexpected json: %s", b)
	}
	_, errs := ParseDownloads([]byte("[" + string(b) + "]"))
	if len(errs) != 0 {
		t.Fatalf("marshalled artifact should validate: %v", errs)
	}
}

func TestSauceConfigRoundTrip(t *testing.T) {
	cfg, err := NewSauceConfig("alice", "secret", "https://saucelabs.com/rest/v1")
	if err != nil {
		t.Fatalf("new sauce config: %v", err)
	}
	if cfg.AuthenticationKey != "YWxpY2U6c2VjcmV0" {
		t.Fatalf("unexpected auth key: %q", cfg.AuthenticationKey)
	}

	path := filepath.Join(t.TempDir(), "conf", "sauceConfig.json")
	if err := WriteSauceConfig(path, cfg); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"sauceURL\": \"https://saucelabs.com/rest/v1\"") {
		t.Fatalf("expected indented JSON, got %s", data)
	}

	loaded, err := ReadSauceConfig(path)
	if err != nil {
		t.Fatalf("read sauce config: %v", err)
	}
	url, err := loaded.UserURL()
	if err != nil || url != "https://saucelabs.com/rest/v1/alice" {
		t.Fatalf("unexpected user url %q: %v", url, err)
	}
}

func TestNewSauceConfigValidation(t *testing.T) {
	_, err := NewSauceConfig("", "", "ftp://x")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"username is required", "access key is required", "must be an absolute http or https URL"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
	if _, err := (SauceConfig{AuthenticationKey: "!!"}).UserName(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestIsOutdated(t *testing.T) {
	tests := []struct {
		node, hub string
		want      bool
	}{
		{node: "1.0.0", hub: "v1.2.0", want: true},
		{node: "v1.2.0", hub: "1.2.0", want: false},
		{node: "v2.0.0", hub: "v1.2.0", want: false},
		{node: NotAvailable, hub: "v1.2.0", want: false},
		{node: "v1.0.0", hub: "", want: false},
	}
	for _, tt := range tests {
		if got := isOutdated(tt.node, tt.hub); got != tt.want {
			t.Fatalf("isOutdated(%q, %q) = %v, want %v", tt.node, tt.hub, got, tt.want)
		}
	}
}
