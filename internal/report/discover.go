package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches report JSON and JUnit XML files at any depth.
const DefaultPattern = "**/*.{json,xml}"

// Discover lists report files under dir matching pattern, sorted.
func Discover(dir, pattern string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid report pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob reports in %q: %w", dir, err)
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(dir, filepath.FromSlash(m)))
	}
	sort.Strings(out)
	return out, nil
}
