package server

import (
	"cmp"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/izzyreal/reportgrid/internal/report"
	"github.com/izzyreal/reportgrid/internal/store"
	"github.com/izzyreal/reportgrid/internal/table"
)

type reportIndexView struct {
	Reports    []store.PersistedReport
	LastRescan string
}

type summaryBar struct {
	Label   string
	Class   string
	Count   int
	Percent string
	URL     string
}

type groupView struct {
	Key      string
	DOMID    string
	Count    int
	URL      string
	Active   bool
	Children []groupView
}

type columnView struct {
	Key    string
	Label  string
	URL    string
	Active bool
	Dir    string
}

type rowView struct {
	Record        report.Record
	UUID          string
	StacktraceURL string
	LocalConfig   []report.KeyValue
}

type pageLink struct {
	N       int
	URL     string
	Current bool
}

type hiddenField struct {
	Name  string
	Value string
}

type tableView struct {
	Name      string
	Title     string
	Columns   []columnView
	Rows      []rowView
	Page      table.PageInfo
	Strip     []pageLink
	FirstURL  string
	PrevURL   string
	NextURL   string
	LastURL   string
	Filter    string
	FilterKey string
	SizeKey   string
	PageSizes []int
	Hidden    []hiddenField
	Error     string

	tree *table.Tree
}

type reportPageView struct {
	ID             string
	Name           string
	Description    string
	Counts         report.Counts
	Bars           []summaryBar
	Config         []report.KeyValue
	AllURL         string
	AllActive      bool
	Groups         []groupView
	Tests          tableView
	Configs        tableView
	RefreshSeconds int
}

type column struct {
	key   string
	label string
}

var testColumns = []column{
	{report.ColumnStatus, "Status"},
	{report.ColumnSuite, "Suite"},
	{report.ColumnTest, "Test"},
	{report.ColumnPackageInfo, "Package"},
	{report.ColumnClassName, "Class"},
	{report.ColumnMethodName, "Method"},
	{report.ColumnParameters, "Parameters"},
	{report.ColumnStartTime, "Start"},
	{report.ColumnEndTime, "End"},
}

var configColumns = []column{
	{report.ColumnStatus, "Status"},
	{report.ColumnType, "Type"},
	{report.ColumnPackageInfo, "Package"},
	{report.ColumnClassName, "Class"},
	{report.ColumnMethodName, "Method"},
	{report.ColumnStartTime, "Start"},
	{report.ColumnEndTime, "End"},
}

func (s *stateStore) reportIndexHandler(w http.ResponseWriter, r *http.Request) {
	reports, err := s.db.ListReports()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	view := reportIndexView{Reports: reports}
	if v, _, ok, err := s.db.GetAppState(store.StateLastRescan); err == nil && ok {
		view.LastRescan = v
	}
	renderHTML(w, http.StatusOK, "report_index", view)
}

func (s *stateStore) reportPageHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	saved, doc, ok, err := s.db.GetReport(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	view := reportPageView{
		ID:             saved.ID,
		Name:           saved.Name,
		Description:    saved.Description,
		Counts:         doc.ReportSummary.TestMethodsSummary,
		RefreshSeconds: s.cfg.Reports.AutoRefreshSeconds,
	}
	view.Config = doc.ConfigRows()
	view.Bars = summaryBars(q, view.Counts)

	view.Tests = s.buildTableView(id, doc, tableTests, q)
	view.Configs = s.buildTableView(id, doc, tableConfig, q)

	active := table.ParseGroupPath(q["group"])
	view.AllActive = active.IsAll()
	view.AllURL = withParams(q, map[string][]string{"group": nil, "page": nil, "sort": nil, "dir": nil})
	view.Groups = groupViews(view.Tests.tree.Roots, q, active)

	renderHTML(w, http.StatusOK, "report_page", view)
}

func summaryBars(q url.Values, c report.Counts) []summaryBar {
	bar := func(label string, n int) summaryBar {
		status := strings.ToLower(label)
		return summaryBar{
			Label:   label,
			Class:   status,
			Count:   n,
			Percent: strconv.FormatFloat(c.Percent(n), 'f', 2, 64),
			URL:     withParams(q, map[string][]string{"filter": {status}, "page": nil, "sort": nil, "dir": nil}),
		}
	}
	return []summaryBar{
		bar(report.StatusPassed, c.Passed),
		bar(report.StatusFailed, c.Failed),
		bar(report.StatusSkipped, c.Skipped),
		bar(report.StatusRunning, c.Running),
	}
}

func groupViews(nodes []*table.TreeNode, q url.Values, active table.GroupPath) []groupView {
	out := make([]groupView, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, groupView{
			Key:      n.Key,
			DOMID:    n.Path.DOMID(),
			Count:    n.Count,
			URL:      withParams(q, map[string][]string{"group": n.Path, "page": nil, "sort": nil, "dir": nil}),
			Active:   slices.Equal(n.Path, active),
			Children: groupViews(n.Children, q, active),
		})
	}
	return out
}

// buildTableView renders one of the two report tables. Bad parameters
// degrade to an error line above the unfiltered first page.
func (s *stateStore) buildTableView(reportID string, doc report.Document, name string, q url.Values) tableView {
	prefix := ""
	view := tableView{Name: name, Title: "Test methods", PageSizes: s.cfg.Reports.PageSizes}
	cols := testColumns
	if name == tableConfig {
		prefix = configParamPrefix
		view.Title = "Configuration methods"
		cols = configColumns
	}
	records, _ := recordsFor(doc, name)
	key := func(k string) string { return prefix + k }
	view.FilterKey = key("filter")
	view.SizeKey = key("page_size")

	tq, err := parseTableQuery(q, prefix, s.cfg.Reports.PageSize)
	if name == tableConfig {
		tq.Group = nil
	}
	var m *table.Model
	if err == nil {
		m, err = buildModel(records, tq)
	}
	if err != nil {
		slog.Debug("report table query rejected", "report", reportID, "table", name, "error", err)
		view.Error = err.Error()
		m, _ = buildModel(records, tableQuery{PageSize: s.cfg.Reports.PageSize, Page: 1})
	}

	view.tree = m.Tree()
	view.Filter = m.FilterText()
	st := m.Sort()
	for _, c := range cols {
		cv := columnView{Key: c.key, Label: c.label}
		dir := table.Ascending
		if st.Column == c.key {
			cv.Active = true
			cv.Dir = st.Direction.String()
			dir = st.Direction.Flip()
		}
		cv.URL = withParams(q, map[string][]string{key("sort"): {c.key}, key("dir"): {dir.String()}, key("page"): nil})
		view.Columns = append(view.Columns, cv)
	}

	view.Page = m.Page()
	offset := (view.Page.CurrentPage - 1) * view.Page.PageSize
	for i, rec := range m.VisibleSlice() {
		row := rowView{
			Record: rec,
			UUID:   rowUUID(reportID, name, rec),
			StacktraceURL: fmt.Sprintf("/reports/%s/stacktrace%s", url.PathEscape(reportID),
				withParams(q, map[string][]string{"table": {name}, "row": {strconv.Itoa(offset + i)}})),
		}
		if name == tableTests {
			row.LocalConfig, _ = doc.LocalConfig(rec.Test)
		}
		view.Rows = append(view.Rows, row)
	}

	pageURL := func(n int) string {
		return withParams(q, map[string][]string{key("page"): {strconv.Itoa(n)}})
	}
	for _, n := range m.PageStrip(s.cfg.Reports.StripWindow) {
		view.Strip = append(view.Strip, pageLink{N: n, URL: pageURL(n), Current: n == view.Page.CurrentPage})
	}
	if view.Page.PageCount > 0 {
		view.FirstURL = pageURL(1)
		view.PrevURL = pageURL(max(1, view.Page.CurrentPage-1))
		view.NextURL = pageURL(min(view.Page.PageCount, view.Page.CurrentPage+1))
		view.LastURL = pageURL(view.Page.PageCount)
	}

	skip := map[string]bool{key("filter"): true, key("page_size"): true, key("page"): true, key("sort"): true, key("dir"): true}
	for k, values := range q {
		if skip[k] {
			continue
		}
		for _, v := range values {
			view.Hidden = append(view.Hidden, hiddenField{Name: k, Value: v})
		}
	}
	slices.SortStableFunc(view.Hidden, func(a, b hiddenField) int { return cmp.Compare(a.Name, b.Name) })
	return view
}

func (s *stateStore) stacktraceHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, doc, ok, err := s.db.GetReport(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	name := q.Get("table")
	records, err := recordsFor(doc, name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	prefix := ""
	if name == tableConfig {
		prefix = configParamPrefix
	}
	tq, err := parseTableQuery(q, prefix, s.cfg.Reports.PageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if name == tableConfig {
		tq.Group = nil
	}
	m, err := buildModel(records, tq)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	row, err := strconv.Atoi(q.Get("row"))
	filtered := m.Filtered()
	if err != nil || row < 0 || row >= len(filtered) {
		http.Error(w, "row out of range", http.StatusNotFound)
		return
	}
	rec := filtered[row]
	renderHTML(w, http.StatusOK, "stacktrace", struct {
		Title string
		Body  template.HTML
	}{Title: rec.QualifiedName(), Body: report.StacktraceHTML(rec.Stacktrace)})
}
