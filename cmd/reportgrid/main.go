package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/izzyreal/reportgrid/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	initLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "server":
		err = server.Run(ctx)
	case "table":
		err = runTable(os.Args[2:], os.Stdout)
	case "validate-upgrade":
		err = runValidateUpgrade(os.Args[2:], os.Stdout)
	case "checkbox":
		err = runCheckbox(ctx, os.Args[2:], os.Stdout)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "reportgrid: %v\n", err)
		os.Exit(1)
	}
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(os.Getenv("REPORTGRID_LOG_LEVEL"))) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func usage() {
	fmt.Fprintf(os.Stderr, `reportgrid - runtime test reports and grid administration

Usage:
  reportgrid <command> [flags]

Commands:
  server            Run the report and grid admin server
  table             Print one page of a report table
  validate-upgrade  Check an auto-upgrade download list
  checkbox          Get or set report row checkboxes on a running server
  help              Show this help
`)
}
