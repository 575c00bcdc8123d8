package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/izzyreal/reportgrid/internal/server/httpx"
	"github.com/izzyreal/reportgrid/internal/version"
)

type serverInfoResponse struct {
	Name       string `json:"name"`
	APIVersion int    `json:"api_version"`
	Version    string `json:"version"`
	Hostname   string `json:"hostname,omitempty"`
}

type healthzResponse struct {
	Status string `json:"status"`
}

func (s *stateStore) healthzHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, healthzResponse{Status: "db unavailable"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, healthzResponse{Status: "ok"})
}

func serverInfoHandler(w http.ResponseWriter, r *http.Request) {
	host, _ := os.Hostname()
	host = strings.TrimSpace(host)
	httpx.WriteJSON(w, http.StatusOK, serverInfoResponse{
		Name:       "reportgrid",
		APIVersion: 1,
		Version:    version.Current(),
		Hostname:   host,
	})
}
