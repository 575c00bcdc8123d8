package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/izzyreal/reportgrid/internal/grid"
	"github.com/izzyreal/reportgrid/internal/server/httpx"
	"github.com/izzyreal/reportgrid/internal/store"
)

const (
	restartFormID     = "restart_nodes"
	msgSelectNodes    = "Please select at least 1 node in order to perform restarts."
	msgNodesRestarted = "All nodes were forcibly restarted."
	msgDownloadsSaved = "Download list saved."
	msgSauceSaved     = "Sauce configuration updated."
	maxFormBodyBytes  = 1 << 20
	maxHeartbeatBytes = 1 << 20
	defaultSauceURL   = "https://saucelabs.com/rest/v1"
	formIDField       = "form_id"
)

type gridNodesView struct {
	HubVersion string
	Nodes      []grid.NodeView
}

type gridRestartView struct {
	Nodes   []grid.Node
	Message string
	Error   string
}

type gridUpgradeView struct {
	DownloadJSON string
	Artifacts    []grid.Artifact
	Message      string
	Errors       []string
}

type gridSauceView struct {
	UserName string
	SauceURL string
	UserURL  string
	Message  string
	Error    string
}

type heartbeatResponse struct {
	Accepted bool      `json:"accepted"`
	Node     grid.Node `json:"node"`
}

type nodeListResponse struct {
	Nodes []grid.Node `json:"nodes"`
}

func (s *stateStore) nodeHeartbeatHandler(w http.ResponseWriter, r *http.Request) {
	var n grid.Node
	if err := json.NewDecoder(io.LimitReader(r.Body, maxHeartbeatBytes)).Decode(&n); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	registered, err := s.nodes.Register(n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Debug("node heartbeat", "node", registered.ID, "status", registered.Status, "version", registered.Version)
	httpx.WriteJSON(w, http.StatusOK, heartbeatResponse{Accepted: true, Node: registered})
}

func (s *stateStore) listNodesHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, nodeListResponse{Nodes: s.nodes.Nodes()})
}

func (s *stateStore) gridNodesHandler(w http.ResponseWriter, r *http.Request) {
	view := gridNodesView{HubVersion: s.cfg.Grid.HubVersion}
	for _, n := range s.nodes.Nodes() {
		view.Nodes = append(view.Nodes, grid.BuildNodeView(n, s.cfg.Grid.HubVersion, s.iconExists))
	}
	renderHTML(w, http.StatusOK, "grid_nodes", view)
}

// iconExists probes the icons directory for a browser icon.
func (s *stateStore) iconExists(name string) bool {
	dir := s.cfg.Grid.IconsDir
	if dir == "" || strings.ContainsAny(name, `/\`) {
		return false
	}
	st, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !st.IsDir()
}

func (s *stateStore) gridRestartHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		renderHTML(w, http.StatusOK, "grid_restart", gridRestartView{Nodes: s.nodes.Nodes()})
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBodyBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		if r.PostForm.Get(formIDField) != restartFormID {
			http.Error(w, "unknown form", http.StatusBadRequest)
			return
		}
		view := gridRestartView{}
		restarted, err := s.nodes.ForceRestart(r.PostForm["nodes"])
		switch {
		case errors.Is(err, grid.ErrNoNodesSelected):
			view.Error = msgSelectNodes
		case err != nil:
			view.Error = err.Error()
		default:
			slog.Info("nodes forcibly restarted", "nodes", restarted)
			view.Message = msgNodesRestarted
		}
		view.Nodes = s.nodes.Nodes()
		renderHTML(w, http.StatusOK, "grid_restart", view)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *stateStore) gridUpgradeHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		view := gridUpgradeView{}
		raw, _, ok, err := s.db.GetAppState(store.StateGridDownloads)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if ok {
			view.DownloadJSON = raw
			view.Artifacts, _ = grid.ParseDownloads([]byte(raw))
		}
		renderHTML(w, http.StatusOK, "grid_upgrade", view)
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBodyBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		raw := strings.TrimSpace(r.PostForm.Get("downloadJSON"))
		artifacts, errs := grid.ParseDownloads([]byte(raw))
		view := gridUpgradeView{DownloadJSON: raw}
		if len(errs) > 0 {
			view.Errors = errs
			renderHTML(w, http.StatusBadRequest, "grid_upgrade", view)
			return
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(raw), "", "  "); err == nil {
			raw = buf.String()
		}
		if err := s.db.SetAppState(store.StateGridDownloads, raw); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		slog.Info("grid download list updated", "artifacts", len(artifacts))
		view.DownloadJSON = raw
		view.Artifacts = artifacts
		view.Message = msgDownloadsSaved
		renderHTML(w, http.StatusOK, "grid_upgrade", view)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *stateStore) gridSauceHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		renderHTML(w, http.StatusOK, "grid_sauce", s.sauceView())
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBodyBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		cfg, err := grid.NewSauceConfig(r.PostForm.Get("username"), r.PostForm.Get("accessKey"), r.PostForm.Get("sauceURL"))
		if err != nil {
			view := s.sauceView()
			view.Error = err.Error()
			renderHTML(w, http.StatusBadRequest, "grid_sauce", view)
			return
		}
		s.sauceMu.Lock()
		err = grid.WriteSauceConfig(s.cfg.Grid.SauceConfigFile, cfg)
		s.sauceMu.Unlock()
		if err != nil {
			slog.Error("write sauce config", "path", s.cfg.Grid.SauceConfigFile, "error", err)
			view := s.sauceView()
			view.Error = err.Error()
			renderHTML(w, http.StatusInternalServerError, "grid_sauce", view)
			return
		}
		slog.Info("sauce config updated", "path", s.cfg.Grid.SauceConfigFile)
		view := s.sauceView()
		view.Message = msgSauceSaved
		renderHTML(w, http.StatusOK, "grid_sauce", view)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// sauceView reloads the sauce config from disk. A missing file shows an
// empty form with the default URL.
func (s *stateStore) sauceView() gridSauceView {
	s.sauceMu.Lock()
	defer s.sauceMu.Unlock()
	cfg, err := grid.ReadSauceConfig(s.cfg.Grid.SauceConfigFile)
	if err != nil {
		view := gridSauceView{SauceURL: defaultSauceURL}
		if !errors.Is(err, fs.ErrNotExist) {
			view.Error = err.Error()
		}
		return view
	}
	view := gridSauceView{SauceURL: cfg.SauceURL}
	view.UserName, _ = cfg.UserName()
	view.UserURL, _ = cfg.UserURL()
	return view
}
