// Package server is the reportgrid HTTP service: report pages and their JSON
// API, the checkbox sync endpoints and the grid administration pages.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/izzyreal/reportgrid/internal/config"
	"github.com/izzyreal/reportgrid/internal/grid"
	"github.com/izzyreal/reportgrid/internal/store"
)

type stateStore struct {
	cfg   config.File
	db    *store.Store
	nodes *grid.Registry

	// sauceMu serializes writes to the sauce config file.
	sauceMu sync.Mutex
}

func newStateStore(cfg config.File, db *store.Store) *stateStore {
	return &stateStore{cfg: cfg, db: db, nodes: grid.NewRegistry()}
}

func Run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("open sqlite store: %w", err)
	}
	defer db.Close()

	s := newStateStore(cfg, db)
	if res, err := s.rescanReports(); err != nil {
		slog.Warn("initial report scan failed", "dir", cfg.Reports.Dir, "error", err)
	} else {
		slog.Info("initial report scan done", "dir", cfg.Reports.Dir, "imported", res.Imported, "failed", len(res.Failed))
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           buildRouter(s),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopMDNS := startMDNSAdvertiser(cfg.Server)
	defer stopMDNS()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("reportgrid server started", "addr", cfg.Server.Addr, "db", cfg.Server.DBPath)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		slog.Info("reportgrid server stopped")
		return nil
	case err := <-errCh:
		if err != nil {
			return err
		}
		slog.Info("reportgrid server stopped")
		return nil
	}
}

// loadConfig reads the optional config file and applies env overrides.
func loadConfig() (config.File, error) {
	path := envOrDefault("REPORTGRID_CONFIG", "reportgrid.yaml")
	cfg, err := config.LoadOptional(path)
	if err != nil {
		return config.File{}, fmt.Errorf("load config: %w", err)
	}
	cfg.Server.Addr = envOrDefault("REPORTGRID_SERVER_ADDR", cfg.Server.Addr)
	if strings.TrimSpace(os.Getenv("REPORTGRID_MDNS_ENABLE")) == "false" {
		cfg.Server.MDNS = false
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
