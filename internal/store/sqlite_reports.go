package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/izzyreal/reportgrid/internal/report"
)

type PersistedReport struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	SourcePath  string        `json:"source_path,omitempty"`
	Counts      report.Counts `json:"counts"`
	ImportedUTC time.Time     `json:"imported_utc"`
}

// SaveReport stores doc and returns its id. Reports imported from the same
// non-empty source path replace the previous import and keep its id.
func (s *Store) SaveReport(name, description, sourcePath string, doc report.Document) (PersistedReport, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return PersistedReport{}, fmt.Errorf("encode report: %w", err)
	}
	sourcePath = strings.TrimSpace(sourcePath)

	id := ""
	if sourcePath != "" {
		row := s.db.QueryRow(`SELECT id FROM reports WHERE source_path = ?`, sourcePath)
		if err := row.Scan(&id); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return PersistedReport{}, fmt.Errorf("lookup report by source: %w", err)
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	counts := doc.ReportSummary.TestMethodsSummary
	now := time.Now().UTC()
	if _, err := s.db.Exec(`
		INSERT INTO reports (id, name, description, source_path, document_json, passed, failed, skipped, running, imported_utc)
		VALUES (?, ?, ?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			document_json=excluded.document_json,
			passed=excluded.passed,
			failed=excluded.failed,
			skipped=excluded.skipped,
			running=excluded.running,
			imported_utc=excluded.imported_utc
	`, id, name, description, sourcePath, string(body), counts.Passed, counts.Failed, counts.Skipped, counts.Running, now.Format(time.RFC3339Nano)); err != nil {
		return PersistedReport{}, fmt.Errorf("save report: %w", err)
	}

	return PersistedReport{
		ID:          id,
		Name:        name,
		Description: description,
		SourcePath:  sourcePath,
		Counts:      counts,
		ImportedUTC: now,
	}, nil
}

const reportColumns = `id, name, COALESCE(description, ''), COALESCE(source_path, ''), passed, failed, skipped, running, imported_utc`

func scanReport(scanner interface{ Scan(dest ...any) error }) (PersistedReport, error) {
	var (
		r        PersistedReport
		imported string
	)
	if err := scanner.Scan(&r.ID, &r.Name, &r.Description, &r.SourcePath, &r.Counts.Passed, &r.Counts.Failed, &r.Counts.Skipped, &r.Counts.Running, &imported); err != nil {
		return PersistedReport{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, imported); err == nil {
		r.ImportedUTC = t
	}
	return r, nil
}

// ListReports returns every report, newest import first.
func (s *Store) ListReports() ([]PersistedReport, error) {
	rows, err := s.db.Query(`SELECT ` + reportColumns + ` FROM reports ORDER BY imported_utc DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := []PersistedReport{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

// GetReport loads a report and its document. The bool is false when no
// report has that id.
func (s *Store) GetReport(id string) (PersistedReport, report.Document, bool, error) {
	row := s.db.QueryRow(`SELECT `+reportColumns+`, document_json FROM reports WHERE id = ?`, id)
	var (
		r        PersistedReport
		imported string
		body     string
	)
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.SourcePath, &r.Counts.Passed, &r.Counts.Failed, &r.Counts.Skipped, &r.Counts.Running, &imported, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return PersistedReport{}, report.Document{}, false, nil
	}
	if err != nil {
		return PersistedReport{}, report.Document{}, false, fmt.Errorf("get report: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, imported); err == nil {
		r.ImportedUTC = t
	}
	doc, err := report.Parse([]byte(body), "report "+id)
	if err != nil {
		return PersistedReport{}, report.Document{}, false, err
	}
	return r, doc, true, nil
}

func (s *Store) DeleteReport(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete report: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
