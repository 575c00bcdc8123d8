package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func buildRouter(s *stateStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// UI
	r.Get("/", s.reportIndexHandler)
	r.Get("/ui/shared.js", sharedJSHandler)
	r.Get("/reports/{id}", s.reportPageHandler)
	r.Get("/reports/{id}/stacktrace", s.stacktraceHandler)

	// Health/info
	r.Get("/healthz", s.healthzHandler)
	r.Get("/api/v1/server-info", serverInfoHandler)

	// Report API
	r.Get("/api/v1/reports", s.listReportsHandler)
	r.Post("/api/v1/reports/import", s.importReportHandler)
	r.Post("/api/v1/reports/rescan", s.rescanReportsHandler)
	r.Delete("/api/v1/reports/{id}", s.deleteReportHandler)
	r.Get("/api/v1/reports/{id}/{table}", s.reportTableHandler)

	// Checkbox sync
	r.Get("/get", s.checkboxGetHandler)
	r.Get("/set", s.checkboxSetHandler)

	// Grid administration
	r.Get("/grid/nodes", s.gridNodesHandler)
	r.HandleFunc("/grid/restart", s.gridRestartHandler)
	r.HandleFunc("/grid/upgrade", s.gridUpgradeHandler)
	r.HandleFunc("/grid/sauce", s.gridSauceHandler)
	r.Post("/api/v1/nodes/heartbeat", s.nodeHeartbeatHandler)
	r.Get("/api/v1/nodes", s.listNodesHandler)
	if dir := s.cfg.Grid.IconsDir; dir != "" {
		r.Handle("/grid/icons/*", http.StripPrefix("/grid/icons/", http.FileServer(http.Dir(dir))))
	}

	return r
}
