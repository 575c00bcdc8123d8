package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is the page-scoped report structure produced by the runtime
// reporter.
type Document struct {
	ReportSummary        ReportSummary            `json:"reportSummary"`
	TestMethods          []Record                 `json:"testMethods"`
	ConfigurationMethods []Record                 `json:"configurationMethods"`
	ConfigSummary        map[string]string        `json:"configSummary,omitempty"`
	LocalConfigSummary   []map[string]string      `json:"localConfigSummary,omitempty"`
	ReporterMetadata     map[string]MetadataEntry `json:"reporterMetadata,omitempty"`
}

type ReportSummary struct {
	TestMethodsSummary          Counts `json:"testMethodsSummary"`
	ConfigurationMethodsSummary Counts `json:"configurationMethodsSummary"`
}

type MetadataEntry struct {
	DisplayLabel string `json:"displayLabel,omitempty"`
}

// KeyValue is one rendered row of a config summary.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Load reads a report file. Files ending in .xml are read as JUnit XML.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read report file %q: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return ParseJUnitXML(data, path)
	}
	return Parse(data, path)
}

func Parse(data []byte, source string) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse report %q: %w", source, err)
	}
	normalizeStatuses(doc.TestMethods)
	normalizeStatuses(doc.ConfigurationMethods)
	doc.ReportSummary.TestMethodsSummary = Summarize(doc.TestMethods)
	doc.ReportSummary.ConfigurationMethodsSummary = Summarize(doc.ConfigurationMethods)
	return doc, nil
}

func normalizeStatuses(records []Record) {
	for i := range records {
		records[i].Status = NormalizeStatus(records[i].Status)
	}
}

// DisplayName returns the metadata display label for key, or key itself.
func (d Document) DisplayName(key string) string {
	if entry, ok := d.ReporterMetadata[key]; ok && entry.DisplayLabel != "" {
		return entry.DisplayLabel
	}
	return key
}

// ConfigRows renders the global config summary sorted by key.
func (d Document) ConfigRows() []KeyValue {
	return d.rows(d.ConfigSummary)
}

// LocalConfig returns the local config summary recorded for test, if any.
func (d Document) LocalConfig(test string) ([]KeyValue, bool) {
	for _, entry := range d.LocalConfigSummary {
		if entry["test"] == test {
			return d.rows(entry), true
		}
	}
	return nil, false
}

func (d Document) rows(in map[string]string) []KeyValue {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]KeyValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, KeyValue{Key: d.DisplayName(k), Value: FormatValue(k, in[k])})
	}
	return out
}
