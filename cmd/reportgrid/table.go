package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/izzyreal/reportgrid/internal/report"
	rtable "github.com/izzyreal/reportgrid/internal/table"
)

func runTable(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("table", flag.ContinueOnError)
	fs.SetOutput(out)
	which := fs.String("table", "tests", "table to print: tests or config")
	filter := fs.String("filter", "", "filter text")
	sortCol := fs.String("sort", "", "sort column")
	dir := fs.String("dir", "asc", "sort direction: asc or desc")
	group := fs.String("group", "", "comma separated group path: suite,test,package,class")
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", rtable.DefaultPageSize, "rows per page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: reportgrid table [flags] <report.json>")
	}

	doc, err := report.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	records := doc.TestMethods
	switch *which {
	case "tests":
	case "config":
		records = doc.ConfigurationMethods
	default:
		return fmt.Errorf("unknown table %q", *which)
	}

	m := rtable.New(*pageSize)
	m.SetSource(records)
	var path rtable.GroupPath
	if g := strings.TrimSpace(*group); g != "" {
		path = rtable.ParseGroupPath(strings.Split(g, ","))
	}
	if err := m.RestrictToGroup(path); err != nil {
		return err
	}
	m.ApplyFilter(*filter)
	if *sortCol != "" {
		if err := m.SetSort(*sortCol, rtable.ParseDirection(*dir)); err != nil {
			return err
		}
	}
	if err := m.SetPageSize(*pageSize); err != nil {
		return err
	}
	m.GotoPage(*page)

	renderPage(out, m)
	return nil
}

func renderPage(out io.Writer, m *rtable.Model) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"#", "STATUS", "PACKAGE", "CLASS", "METHOD", "PARAMETERS", "START", "END"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
	})

	info := m.Page()
	for i, r := range m.VisibleSlice() {
		t.AppendRow(table.Row{info.StartIndex + i, r.Status, r.PackageInfo, r.ClassName, r.MethodName, r.Parameters, r.StartTime, r.EndTime})
	}
	if info.Count == 0 {
		t.AppendRow(table.Row{"", "No data to display"})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("page %d/%d", info.CurrentPage, info.PageCount), fmt.Sprintf("%d-%d of %d", info.StartIndex, info.EndIndex, info.Total)})
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.Render()
}
