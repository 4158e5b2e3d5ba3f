package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"logtag/internal/diag"
	"logtag/internal/diagfmt"
	"logtag/internal/driver"
)

// diagFormat selects how collected diagnostics are rendered.
type diagFormat string

const (
	diagFormatPretty diagFormat = "pretty"
	diagFormatJSON   diagFormat = "json"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", string(diagFormatPretty):
		return diagFormatPretty, nil
	case string(diagFormatJSON):
		return diagFormatJSON, nil
	}
	return "", fmt.Errorf("--format must be pretty or json, got %q", value)
}

// emitBag renders one bag in the chosen format. The bag is sorted in place
// so output order is deterministic.
func emitBag(w io.Writer, bag *diag.Bag, format diagFormat, color bool) error {
	bag.Sort()
	if format == diagFormatJSON {
		return diagfmt.JSON(w, bag, diagfmt.JSONOpts{IncludeNotes: true})
	}
	diagfmt.Pretty(w, bag, diagfmt.PrettyOpts{Color: color, ShowNotes: true})
	return nil
}

// renderResults writes per-unit diagnostics to diagW and host failures to
// errW, returning the number of failed units. JSON output merges every
// per-unit bag into one array so the host build parses a single document;
// pretty output stays grouped per unit.
func renderResults(diagW, errW io.Writer, results []driver.UnitResult, format diagFormat, color bool) (int, error) {
	failed := 0
	merged := diag.NewBag(0)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errW, "%s: %v\n", res.Path, res.Err)
			failed++
			continue
		}
		if res.Bag == nil || res.Bag.Len() == 0 {
			continue
		}
		if res.Bag.HasErrors() {
			failed++
		}
		if format == diagFormatJSON {
			merged.Merge(res.Bag)
			continue
		}
		if err := emitBag(diagW, res.Bag, format, color); err != nil {
			return failed, err
		}
	}
	if format == diagFormatJSON && merged.Len() > 0 {
		if err := emitBag(diagW, merged, format, color); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

// printBags renders per-unit diagnostics and returns the number of failed
// units. Pretty output goes to stderr; JSON goes to stdout for machine
// consumption.
func printBags(cmd *cobra.Command, results []driver.UnitResult, format diagFormat) (int, error) {
	diagW := io.Writer(os.Stderr)
	if format == diagFormatJSON {
		diagW = cmd.OutOrStdout()
	}
	return renderResults(diagW, os.Stderr, results, format, useColor(cmd, os.Stderr))
}
