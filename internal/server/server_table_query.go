package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/izzyreal/reportgrid/internal/report"
	"github.com/izzyreal/reportgrid/internal/table"
)

const (
	tableTests  = "tests"
	tableConfig = "config"

	// configParamPrefix namespaces the configuration table parameters on the
	// report page, which carries both tables in one query string.
	configParamPrefix = "c_"
)

var errUnknownTable = errors.New("table must be tests or config")

// tableQuery is the full state of one table view. Requests are stateless:
// every view is rebuilt from the records with these parameters.
type tableQuery struct {
	Filter   string
	Sort     string
	Dir      table.Direction
	Page     int
	PageSize int
	Group    table.GroupPath
}

func parseTableQuery(q url.Values, prefix string, defaultPageSize int) (tableQuery, error) {
	tq := tableQuery{
		Filter:   q.Get(prefix + "filter"),
		Sort:     strings.TrimSpace(q.Get(prefix + "sort")),
		Dir:      table.ParseDirection(q.Get(prefix + "dir")),
		Page:     1,
		PageSize: defaultPageSize,
		Group:    table.ParseGroupPath(q[prefix+"group"]),
	}
	if raw := strings.TrimSpace(q.Get(prefix + "page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return tableQuery{}, fmt.Errorf("invalid %spage %q", prefix, raw)
		}
		tq.Page = n
	}
	if raw := strings.TrimSpace(q.Get(prefix + "page_size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return tableQuery{}, fmt.Errorf("invalid %spage_size %q", prefix, raw)
		}
		tq.PageSize = n
	}
	return tq, nil
}

// buildModel replays a query onto a fresh model in the order a user would
// have clicked through it.
func buildModel(records []report.Record, tq tableQuery) (*table.Model, error) {
	m := table.New(table.DefaultPageSize)
	m.SetSource(records)
	if err := m.RestrictToGroup(tq.Group); err != nil {
		return nil, err
	}
	m.ApplyFilter(tq.Filter)
	if tq.Sort != "" {
		if err := m.SetSort(tq.Sort, tq.Dir); err != nil {
			return nil, err
		}
	}
	if err := m.SetPageSize(tq.PageSize); err != nil {
		return nil, err
	}
	m.GotoPage(tq.Page)
	return m, nil
}

func recordsFor(doc report.Document, name string) ([]report.Record, error) {
	switch name {
	case tableTests:
		return doc.TestMethods, nil
	case tableConfig:
		return doc.ConfigurationMethods, nil
	default:
		return nil, errUnknownTable
	}
}

// withParams copies q and applies set; empty values delete the key.
func withParams(q url.Values, set map[string][]string) string {
	out := url.Values{}
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	for k, v := range set {
		if len(v) == 0 || (len(v) == 1 && v[0] == "") {
			out.Del(k)
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return "?"
	}
	return "?" + out.Encode()
}
