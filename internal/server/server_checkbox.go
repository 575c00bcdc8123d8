package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/izzyreal/reportgrid/internal/checkbox"
	"github.com/izzyreal/reportgrid/internal/report"
	"github.com/izzyreal/reportgrid/internal/server/httpx"
)

// checkboxGetHandler answers the checked subset of the requested uuids.
func (s *stateStore) checkboxGetHandler(w http.ResponseWriter, r *http.Request) {
	checked, err := s.db.CheckedAmong(r.URL.Query()["uuid"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	items := make([]checkbox.Item, 0, len(checked))
	for _, id := range checked {
		items = append(items, checkbox.Item{UUID: id})
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

// checkboxSetHandler always answers 200; failures travel in the result
// field so the page script can show them.
func (s *stateStore) checkboxSetHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := strings.TrimSpace(q.Get("uuid"))
	if id == "" {
		httpx.WriteJSON(w, http.StatusOK, checkbox.SetResponse{Result: "uuid is required"})
		return
	}
	value, err := checkbox.ParseValue(q.Get("value"))
	if err != nil {
		httpx.WriteJSON(w, http.StatusOK, checkbox.SetResponse{Result: err.Error()})
		return
	}
	if err := s.db.SetChecked(id, value); err != nil {
		slog.Error("store checkbox state", "uuid", id, "error", err)
		httpx.WriteJSON(w, http.StatusOK, checkbox.SetResponse{Result: err.Error()})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, checkbox.SetResponse{Result: checkbox.ResultOK})
}

var rowNamespace = uuid.MustParse("7c4a9f52-3d0e-4f7b-9a53-2f6ad1c0e8b1")

// rowUUID is a stable id for a report row, so its checkbox survives
// re-imports of the same report.
func rowUUID(reportID, tableName string, rec report.Record) string {
	key := strings.Join([]string{reportID, tableName, rec.QualifiedName(), rec.StartTime}, "\x00")
	return uuid.NewSHA1(rowNamespace, []byte(key)).String()
}
