// Package table holds the in-memory report table: group restriction, text
// filter, column sort and pagination over a list of report records.
package table

import (
	"errors"
	"fmt"

	"github.com/izzyreal/reportgrid/internal/report"
)

const (
	DefaultPageSize    = 10
	DefaultStripWindow = 5
)

var (
	ErrInvalidPageSize = errors.New("page size must be at least 1")
	ErrUnknownColumn   = errors.New("unknown sort column")
)

// Model is the state behind one rendered report table. It is not safe for
// concurrent use; each table owns its own Model.
type Model struct {
	all      []report.Record
	active   []report.Record
	filtered []report.Record
	tree     *Tree

	filterText string
	sort       SortState
	pageSize   int
	page       int
}

// PageInfo describes the visible window. StartIndex and EndIndex are
// 1-based and inclusive; EndIndex is 0 when nothing is visible.
type PageInfo struct {
	StartIndex  int `json:"start_index"`
	EndIndex    int `json:"end_index"`
	Count       int `json:"count"`
	Total       int `json:"total"`
	PageCount   int `json:"page_count"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

func New(pageSize int) *Model {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	m := &Model{pageSize: pageSize, page: 1}
	m.SetSource(nil)
	return m
}

// SetSource replaces every record and resets filter, sort and page.
func (m *Model) SetSource(records []report.Record) {
	m.all = append([]report.Record(nil), records...)
	m.active = m.all
	m.tree = BuildTree(m.all)
	m.filterText = ""
	m.sort = SortState{}
	m.page = 1
	m.refilter()
}

// RestrictToGroup narrows the active records to those matching every key of
// path. An empty path (or "all") restores every record. The current filter
// text is applied to the new subset.
func (m *Model) RestrictToGroup(path GroupPath) error {
	if len(path) > len(groupColumns) {
		return fmt.Errorf("restrict to group: %w", ErrGroupPathTooLong)
	}
	if path.IsAll() {
		m.active = m.all
	} else {
		m.active = make([]report.Record, 0, len(m.all))
		for _, r := range m.all {
			if path.Matches(r) {
				m.active = append(m.active, r)
			}
		}
	}
	m.sort = SortState{}
	m.page = 1
	m.refilter()
	return nil
}

// ApplyFilter rebuilds the filtered set from the active records. Any sort
// applied before is dropped.
func (m *Model) ApplyFilter(text string) {
	m.filterText = NormalizeFilter(text)
	m.sort = SortState{}
	m.page = 1
	m.refilter()
}

func (m *Model) refilter() {
	m.filtered = make([]report.Record, 0, len(m.active))
	for _, r := range m.active {
		if Matches(r, m.filterText) {
			m.filtered = append(m.filtered, r)
		}
	}
}

// ApplySort sorts by column, flipping the direction when column is already
// the active one.
func (m *Model) ApplySort(column string) error {
	dir := Ascending
	if m.sort.Column == column {
		dir = m.sort.Direction.Flip()
	}
	return m.SetSort(column, dir)
}

// SetSort sorts the filtered records by column in the given direction.
func (m *Model) SetSort(column string, dir Direction) error {
	if !IsSortable(column) {
		return fmt.Errorf("sort by %q: %w", column, ErrUnknownColumn)
	}
	sortRecords(m.filtered, column, dir)
	m.sort = SortState{Column: column, Direction: dir}
	return nil
}

func (m *Model) SetPageSize(size int) error {
	if size < 1 {
		return ErrInvalidPageSize
	}
	m.pageSize = size
	m.page = 1
	return nil
}

// GotoPage moves to page n, clamped into [1, PageCount]. It does nothing
// when there are no pages.
func (m *Model) GotoPage(n int) {
	count := m.PageCount()
	if count == 0 {
		return
	}
	m.page = min(max(n, 1), count)
}

func (m *Model) FirstPage() { m.GotoPage(1) }
func (m *Model) LastPage()  { m.GotoPage(m.PageCount()) }
func (m *Model) NextPage()  { m.GotoPage(m.page + 1) }
func (m *Model) PrevPage()  { m.GotoPage(m.page - 1) }

// PageCount is ceil(filtered / pageSize); 0 for an empty filtered set.
func (m *Model) PageCount() int {
	return (len(m.filtered) + m.pageSize - 1) / m.pageSize
}

// VisibleSlice returns the records of the current page. The returned slice
// must not be modified.
func (m *Model) VisibleSlice() []report.Record {
	start, end := m.window()
	return m.filtered[start:end:end]
}

func (m *Model) window() (int, int) {
	start := (m.page - 1) * m.pageSize
	if start > len(m.filtered) {
		start = len(m.filtered)
	}
	end := min(start+m.pageSize, len(m.filtered))
	return start, end
}

func (m *Model) Page() PageInfo {
	start, end := m.window()
	info := PageInfo{
		StartIndex:  start + 1,
		Count:       end - start,
		Total:       len(m.filtered),
		PageCount:   m.PageCount(),
		CurrentPage: m.page,
		PageSize:    m.pageSize,
	}
	if info.Count > 0 {
		info.EndIndex = end
	}
	return info
}

// PageStrip returns the page numbers for the numbered navigation buttons: at
// most window pages, kept around the current page.
func (m *Model) PageStrip(window int) []int {
	if window < 1 {
		window = DefaultStripWindow
	}
	count := m.PageCount()
	if count == 0 {
		return nil
	}
	start := m.page - window/2
	start = max(1, min(start, count-window+1))
	end := min(count, start+window-1)
	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out
}

func (m *Model) FilterText() string      { return m.filterText }
func (m *Model) Sort() SortState         { return m.sort }
func (m *Model) PageSize() int           { return m.pageSize }
func (m *Model) Tree() *Tree             { return m.tree }
func (m *Model) All() []report.Record    { return m.all }
func (m *Model) Active() []report.Record { return m.active }

// Filtered returns the filtered and sorted records across every page.
func (m *Model) Filtered() []report.Record { return m.filtered }
