package grid

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
)

var (
	artifactKeys   = []string{"name", "roles"}
	platformKeys   = []string{"any", "windows", "linux", "mac"}
	validRoles     = []string{"node", "hub", "standalone", "sauce", "ios-driver", "selendroid"}
	downloadURLExp = regexp.MustCompile(`^(http|https)://[A-Za-z0-9_-]+\.[A-Za-z0-9_%&?/.=-]+$`)
)

type PlatformDownload struct {
	URL      string `json:"url"`
	Checksum string `json:"checksum"`
}

// Artifact is one entry of the auto-upgrade download list.
type Artifact struct {
	Name      string                      `json:"name"`
	Roles     []string                    `json:"roles,omitempty"`
	Platforms map[string]PlatformDownload `json:"platforms"`
}

// MarshalJSON writes platforms back as top-level keys, the shape the
// download list uses on disk.
func (a Artifact) MarshalJSON() ([]byte, error) {
	out := map[string]any{"name": a.Name}
	if len(a.Roles) > 0 {
		out["roles"] = a.Roles
	}
	for k, v := range a.Platforms {
		out[k] = v
	}
	return json.Marshal(out)
}

// ParseDownloads decodes and validates a download list. It returns every
// problem found; the artifacts are only usable when the list is empty.
func ParseDownloads(data []byte) ([]Artifact, []string) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, []string{fmt.Sprintf("Invalid JSON %v", err)}
	}

	var (
		out  []Artifact
		errs []string
	)
	for i, entry := range raw {
		a, entryErrs := parseArtifact(i, entry)
		errs = append(errs, entryErrs...)
		out = append(out, a)
	}
	return out, errs
}

func parseArtifact(index int, entry map[string]json.RawMessage) (Artifact, []string) {
	a := Artifact{Platforms: map[string]PlatformDownload{}}
	var errs []string

	rawName, ok := entry["name"]
	if !ok {
		return a, []string{fmt.Sprintf(`There is no "name" attribute in element %d: %s`, index, compact(entry))}
	}
	if err := json.Unmarshal(rawName, &a.Name); err != nil || strings.TrimSpace(a.Name) == "" {
		return a, []string{fmt.Sprintf(`Attribute "name" of element %d must be a non-empty string`, index)}
	}

	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := entry[key]
		switch {
		case key == "name":
		case key == "roles":
			if err := json.Unmarshal(value, &a.Roles); err != nil {
				errs = append(errs, fmt.Sprintf(`Attribute "roles" of element %s must be a list of strings`, a.Name))
				continue
			}
			for _, role := range a.Roles {
				if !slices.Contains(validRoles, role) {
					errs = append(errs, fmt.Sprintf(`Role "%s" is invalid for element %s. Valid roles: %s`, role, a.Name, strings.Join(validRoles, ",")))
					break
				}
			}
		case slices.Contains(platformKeys, key):
			p, err := parsePlatform(value)
			if err != "" {
				errs = append(errs, err)
				continue
			}
			a.Platforms[key] = p
		default:
			errs = append(errs, fmt.Sprintf(`Attribute "%s" is invalid for element %s. Valid values: %s,%s`,
				key, a.Name, strings.Join(artifactKeys, ","), strings.Join(platformKeys, ",")))
		}
	}
	return a, errs
}

func parsePlatform(value json.RawMessage) (PlatformDownload, string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(value, &fields); err != nil {
		return PlatformDownload{}, fmt.Sprintf("Platform entry must be an object: %s", string(value))
	}
	rawURL, ok := fields["url"]
	if !ok {
		return PlatformDownload{}, fmt.Sprintf(`There is no "url" attribute in the below JSON element: %s`, compact(fields))
	}
	var p PlatformDownload
	if err := json.Unmarshal(rawURL, &p.URL); err != nil || !downloadURLExp.MatchString(p.URL) {
		return PlatformDownload{}, fmt.Sprintf("%s is an unsupported or invalid URL. Hint: URL must start with http or https", string(rawURL))
	}
	rawChecksum, ok := fields["checksum"]
	if !ok {
		return PlatformDownload{}, fmt.Sprintf(`There is no "checksum" attribute in the below JSON element: %s`, compact(fields))
	}
	if err := json.Unmarshal(rawChecksum, &p.Checksum); err != nil {
		return PlatformDownload{}, fmt.Sprintf(`Attribute "checksum" must be a string: %s`, string(rawChecksum))
	}
	return p, ""
}

func compact(v map[string]json.RawMessage) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
