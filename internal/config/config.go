package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

type File struct {
	Version int     `yaml:"version" json:"version"`
	Server  Server  `yaml:"server" json:"server"`
	Reports Reports `yaml:"reports" json:"reports"`
	Grid    Grid    `yaml:"grid" json:"grid"`
}

type Server struct {
	Addr         string `yaml:"addr" json:"addr"`
	DBPath       string `yaml:"db_path" json:"db_path"`
	MDNS         bool   `yaml:"mdns" json:"mdns"`
	MDNSInstance string `yaml:"mdns_instance,omitempty" json:"mdns_instance,omitempty"`
}

type Reports struct {
	Dir                string `yaml:"dir" json:"dir"`
	Pattern            string `yaml:"pattern" json:"pattern"`
	PageSize           int    `yaml:"page_size" json:"page_size"`
	PageSizes          []int  `yaml:"page_sizes" json:"page_sizes"`
	StripWindow        int    `yaml:"strip_window" json:"strip_window"`
	AutoRefreshSeconds int    `yaml:"auto_refresh_seconds" json:"auto_refresh_seconds"`
}

type Grid struct {
	HubVersion      string `yaml:"hub_version,omitempty" json:"hub_version,omitempty"`
	SauceConfigFile string `yaml:"sauce_config_file" json:"sauce_config_file"`
	IconsDir        string `yaml:"icons_dir,omitempty" json:"icons_dir,omitempty"`
}

func Default() File {
	return File{
		Version: 1,
		Server: Server{
			Addr:   ":8080",
			DBPath: "reportgrid.db",
			MDNS:   true,
		},
		Reports: Reports{
			Dir:                "reports",
			Pattern:            "**/*.{json,xml}",
			PageSize:           10,
			PageSizes:          []int{10, 25, 50, 100},
			StripWindow:        5,
			AutoRefreshSeconds: 300,
		},
		Grid: Grid{
			SauceConfigFile: "sauceConfig.json",
		},
	}
}

func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config file %q: %w", path, err)
	}

	return Parse(data, path)
}

// LoadOptional behaves like Load but falls back to Default when path does
// not exist.
func LoadOptional(path string) (File, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML over the defaults, so omitted keys keep their default.
func Parse(data []byte, source string) (File, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse YAML in %q: %w", source, err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("invalid config in %q: %s", source, strings.Join(errs, "; "))
	}
	return cfg, nil
}

func (cfg File) Validate() []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported config version %d", cfg.Version))
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		errs = append(errs, "server.addr is required")
	}
	if strings.TrimSpace(cfg.Server.DBPath) == "" {
		errs = append(errs, "server.db_path is required")
	}

	if strings.TrimSpace(cfg.Reports.Dir) == "" {
		errs = append(errs, "reports.dir is required")
	}
	if !doublestar.ValidatePattern(cfg.Reports.Pattern) {
		errs = append(errs, fmt.Sprintf("reports.pattern invalid %q", cfg.Reports.Pattern))
	}
	if cfg.Reports.PageSize < 1 {
		errs = append(errs, "reports.page_size must be >= 1")
	}
	for i, size := range cfg.Reports.PageSizes {
		if size < 1 {
			errs = append(errs, fmt.Sprintf("reports.page_sizes[%d] must be >= 1", i))
		}
	}
	if len(cfg.Reports.PageSizes) > 0 && !slices.Contains(cfg.Reports.PageSizes, cfg.Reports.PageSize) {
		errs = append(errs, fmt.Sprintf("reports.page_size %d must be one of reports.page_sizes", cfg.Reports.PageSize))
	}
	if cfg.Reports.StripWindow < 1 {
		errs = append(errs, "reports.strip_window must be >= 1")
	}
	if cfg.Reports.AutoRefreshSeconds < 0 {
		errs = append(errs, "reports.auto_refresh_seconds must be >= 0")
	}

	if strings.TrimSpace(cfg.Grid.SauceConfigFile) == "" {
		errs = append(errs, "grid.sauce_config_file is required")
	}
	if v := strings.TrimSpace(cfg.Grid.HubVersion); v != "" {
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		if !semver.IsValid(v) {
			errs = append(errs, fmt.Sprintf("grid.hub_version %q is not a semantic version", cfg.Grid.HubVersion))
		}
	}

	return errs
}
