package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time with:
// -ldflags "-X github.com/izzyreal/reportgrid/internal/version.Version=vX.Y.Z"
var Version = "dev"

func Current() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		return "dev"
	}
	return v
}

// Canonical returns v as a semver string with a leading "v", or "" when v is
// not a semantic version. "dev" builds are never canonical.
func Canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// IsNewer reports whether candidate is a strictly newer semantic version
// than current. Non-semver inputs are never newer.
func IsNewer(candidate, current string) bool {
	c, cur := Canonical(candidate), Canonical(current)
	if c == "" || cur == "" {
		return false
	}
	return semver.Compare(c, cur) > 0
}
