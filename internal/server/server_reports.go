package server

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/izzyreal/reportgrid/internal/report"
	"github.com/izzyreal/reportgrid/internal/server/httpx"
	"github.com/izzyreal/reportgrid/internal/store"
	"github.com/izzyreal/reportgrid/internal/table"
)

const maxReportBodyBytes = 32 << 20

type reportListResponse struct {
	Reports []store.PersistedReport `json:"reports"`
}

type rescanFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type rescanResult struct {
	Imported int             `json:"imported"`
	Failed   []rescanFailure `json:"failed,omitempty"`
}

type tablePageResponse struct {
	Report string          `json:"report"`
	Table  string          `json:"table"`
	Filter string          `json:"filter,omitempty"`
	Sort   string          `json:"sort,omitempty"`
	Dir    string          `json:"dir,omitempty"`
	Group  []string        `json:"group,omitempty"`
	Page   table.PageInfo  `json:"page"`
	Strip  []int           `json:"strip"`
	Rows   []report.Record `json:"rows"`
}

func (s *stateStore) listReportsHandler(w http.ResponseWriter, r *http.Request) {
	reports, err := s.db.ListReports()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, reportListResponse{Reports: reports})
}

func (s *stateStore) importReportHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxReportBodyBytes))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	parse := report.Parse
	if strings.Contains(r.Header.Get("Content-Type"), "xml") {
		parse = report.ParseJUnitXML
	}
	doc, err := parse(body, "request body")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = "report " + time.Now().UTC().Format(time.RFC3339)
	}
	saved, err := s.db.SaveReport(name, strings.TrimSpace(r.URL.Query().Get("description")), "", doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	slog.Info("report imported", "id", saved.ID, "name", saved.Name, "tests", saved.Counts.Total())
	httpx.WriteJSON(w, http.StatusCreated, saved)
}

func (s *stateStore) rescanReportsHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.rescanReports()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// rescanReports imports every report file under the configured directory.
// Files that fail to load are reported and skipped.
func (s *stateStore) rescanReports() (rescanResult, error) {
	dir := s.cfg.Reports.Dir
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return rescanResult{}, nil
	}
	paths, err := report.Discover(dir, s.cfg.Reports.Pattern)
	if err != nil {
		return rescanResult{}, err
	}

	var res rescanResult
	for _, path := range paths {
		doc, err := report.Load(path)
		if err != nil {
			slog.Warn("skip report file", "path", path, "error", err)
			res.Failed = append(res.Failed, rescanFailure{Path: path, Error: err.Error()})
			continue
		}
		name, err := filepath.Rel(dir, path)
		if err != nil {
			name = filepath.Base(path)
		}
		if _, err := s.db.SaveReport(filepath.ToSlash(name), "", path, doc); err != nil {
			return res, fmt.Errorf("save report %q: %w", path, err)
		}
		res.Imported++
	}
	if err := s.db.SetAppState(store.StateLastRescan, time.Now().UTC().Format(time.RFC3339)); err != nil {
		slog.Warn("record rescan time failed", "error", err)
	}
	return res, nil
}

func (s *stateStore) deleteReportHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted, err := s.db.DeleteReport(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	slog.Info("report deleted", "id", id)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *stateStore) reportTableHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := chi.URLParam(r, "table")

	_, doc, ok, err := s.db.GetReport(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	records, err := recordsFor(doc, name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	tq, err := parseTableQuery(r.URL.Query(), "", s.cfg.Reports.PageSize)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := buildModel(records, tq)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := tablePageResponse{
		Report: id,
		Table:  name,
		Filter: m.FilterText(),
		Group:  tq.Group,
		Page:   m.Page(),
		Strip:  m.PageStrip(s.cfg.Reports.StripWindow),
		Rows:   m.VisibleSlice(),
	}
	if st := m.Sort(); st.Column != "" {
		resp.Sort = st.Column
		resp.Dir = st.Direction.String()
	}
	if resp.Strip == nil {
		resp.Strip = []int{}
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
