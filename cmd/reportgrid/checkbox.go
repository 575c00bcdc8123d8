package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/izzyreal/reportgrid/internal/checkbox"
)

const defaultServerURL = "http://127.0.0.1:8080"

// runCheckbox reads or writes row checkbox state on a running server.
//
//	reportgrid checkbox get <uuid>...
//	reportgrid checkbox set [-value=false] <uuid>...
func runCheckbox(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: reportgrid checkbox get|set [flags] <uuid>...")
	}
	fs := flag.NewFlagSet("checkbox "+args[0], flag.ContinueOnError)
	fs.SetOutput(out)
	serverURL := fs.String("server", envOrDefault("REPORTGRID_SERVER_URL", defaultServerURL), "reportgrid server base URL")
	value := fs.String("value", "true", "checkbox value for set")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	uuids := fs.Args()
	if len(uuids) == 0 {
		return errors.New("at least one uuid is required")
	}
	client := checkbox.NewClient(*serverURL)

	switch args[0] {
	case "get":
		checked, err := client.Checked(ctx, uuids...)
		if err != nil {
			return fmt.Errorf("get checkbox state: %w", err)
		}
		for _, u := range checked {
			fmt.Fprintln(out, u)
		}
		return nil
	case "set":
		v, err := checkbox.ParseValue(*value)
		if err != nil {
			return err
		}
		if len(uuids) == 1 {
			if err := client.Set(ctx, uuids[0], v); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s=%t\n", uuids[0], v)
			return nil
		}
		done := make(chan error, len(uuids))
		for _, u := range uuids {
			client.SetAsync(u, v, func(err error) { done <- err })
		}
		var errs []error
		for range uuids {
			select {
			case err := <-done:
				errs = append(errs, err)
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d checkbox(es) set to %t\n", len(uuids), v)
		return nil
	default:
		return fmt.Errorf("unknown checkbox command %q", args[0])
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
