package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/izzyreal/reportgrid/internal/grid"
)

func runValidateUpgrade(args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: reportgrid validate-upgrade <downloads.json>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read download list: %w", err)
	}
	artifacts, errs := grid.ParseDownloads(data)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(out, e)
		}
		return fmt.Errorf("download list has %d problem(s)", len(errs))
	}
	for _, a := range artifacts {
		fmt.Fprintf(out, "%s: %d platform(s)\n", a.Name, len(a.Platforms))
	}
	return nil
}
