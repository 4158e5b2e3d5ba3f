package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"logtag/internal/driver"
	"logtag/internal/facade"
	"logtag/internal/project"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [flags] path",
	Short: "Rewrite unit files to bind log tags",
	Long:  "Rewrite injects a tag-binding call before every recognized static logging call in the method bodies of annotated units. Path may be a unit file or a directory.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRewrite,
}

func init() {
	rewriteCmd.Flags().Int("jobs", 0, "parallel workers (0 = all cores)")
	rewriteCmd.Flags().String("out", "", "directory for rewritten unit files (default: in place)")
	rewriteCmd.Flags().String("gen", "", "directory for generated property sources")
	rewriteCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	rewriteCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

func runRewrite(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	genDir, err := cmd.Flags().GetString("gen")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
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

	fac, manifest, err := resolveFacade()
	if err != nil {
		return err
	}
	if outDir == "" && manifest != nil {
		outDir = manifest.Config.Output.Dir
	}
	if genDir == "" && manifest != nil {
		genDir = manifest.Config.Output.GenDir
	}

	files, err := collectUnitFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "no unit files found")
		}
		return nil
	}

	opts := driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		OutDir:         outDir,
		GenDir:         genDir,
		Facade:         fac,
	}

	var results []driver.UnitResult
	if shouldUseTUI(uiModeValue) && !quiet {
		results, err = runRewriteWithUI(context.Background(), "rewriting units", files, opts)
	} else {
		results, err = driver.RewriteFiles(context.Background(), files, opts)
	}
	if err != nil {
		return err
	}

	return reportResults(cmd, results, quiet, format)
}

// resolveFacade loads the project manifest (if any) and materializes the
// recognized facade from it.
func resolveFacade() (facade.Facade, *project.Manifest, error) {
	manifest, found, err := project.Load(".")
	if err != nil {
		return facade.Facade{}, nil, err
	}
	if !found {
		return facade.Default(), nil, nil
	}
	return manifest.Config.ResolveFacade(), manifest, nil
}

// collectUnitFiles accepts a single unit file or a directory.
func collectUnitFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return driver.ListUnitFiles(path)
	}
	return []string{path}, nil
}

func reportResults(cmd *cobra.Command, results []driver.UnitResult, quiet bool, format diagFormat) error {
	failed, err := printBags(cmd, results, format)
	if err != nil {
		return err
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		printStageTimings(cmd.OutOrStdout(), results)
	}

	if !quiet {
		injections := 0
		for _, res := range results {
			injections += res.Injections
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d unit(s), %d injection(s)\n", len(results), injections)
	}
	if failed > 0 {
		return fmt.Errorf("%d unit(s) failed", failed)
	}
	return nil
}
