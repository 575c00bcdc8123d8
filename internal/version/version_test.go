package version

import "testing"

func TestCurrentVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = " v1.2.3 "
	if got := Current(); got != "v1.2.3" {
		t.Fatalf("expected trimmed version, got %q", got)
	}

	Version = "   "
	if got := Current(); got != "dev" {
		t.Fatalf("expected dev fallback, got %q", got)
	}
}

func TestCanonical(t *testing.T) {
	tests := map[string]string{
		"1.2.3":   "v1.2.3",
		"v2.0":    "v2.0.0",
		" v1.0.0": "v1.0.0",
		"dev":     "",
		"":        "",
	}
	for in, want := range tests {
		if got := Canonical(in); got != want {
			t.Fatalf("Canonical(%q): got %q want %q", in, got, want)
		}
	}
}

func TestIsNewer(t *testing.T) {
	if !IsNewer("v1.3.0", "1.2.9") {
		t.Fatalf("expected v1.3.0 to be newer than 1.2.9")
	}
	if IsNewer("v1.2.0", "v1.2.0") {
		t.Fatalf("equal versions are not newer")
	}
	if IsNewer("v1.2.0", "dev") || IsNewer("dev", "v1.0.0") {
		t.Fatalf("non-semver input must never be newer")
	}
}
