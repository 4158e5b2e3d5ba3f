package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"logtag/internal/bytecode"
	"logtag/internal/diag"
	"logtag/internal/gen"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] path",
	Short: "Generate log tag property sources",
	Long:  "Gen emits one source file per annotated unit declaring a read-only property that returns the unit's derived log tag. Path may be a unit file or a directory.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGen,
}

func init() {
	genCmd.Flags().String("out", "logtag-gen", "directory for generated sources")
	genCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

func runGen(cmd *cobra.Command, args []string) error {
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := readDiagFormat(formatValue)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	files, err := collectUnitFiles(args[0])
	if err != nil {
		return err
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	generated := 0
	for _, path := range files {
		unit, err := bytecode.ReadUnitFile(path)
		if err != nil {
			return err
		}
		art, ok := gen.Property(unit, reporter)
		if !ok {
			continue
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, art.FileName), []byte(art.Source), 0o644); err != nil {
			return err
		}
		generated++
	}

	if bag.Len() > 0 {
		diagW := io.Writer(os.Stderr)
		if format == diagFormatJSON {
			diagW = cmd.OutOrStdout()
		}
		if err := emitBag(diagW, bag, format, useColor(cmd, os.Stderr)); err != nil {
			return err
		}
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d source file(s) generated in %s\n", generated, outDir)
	}
	if bag.HasErrors() {
		return fmt.Errorf("generation failed")
	}
	return nil
}
