package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"logtag/internal/diag"
	"logtag/internal/tag"
)

var deriveCmd = &cobra.Command{
	Use:   "derive [flags] qualified-name",
	Short: "Print the derived log tag for a unit name",
	Long:  "Derive applies the tag derivation rule to a dot-separated qualified name: an explicit --tag wins verbatim, otherwise the simple name truncated to 23 characters.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDerive,
}

func init() {
	deriveCmd.Flags().String("tag", "", "explicit tag override")
	deriveCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

func runDerive(cmd *cobra.Command, args []string) error {
	override, err := cmd.Flags().GetString("tag")
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

	bag := diag.NewBag(maxDiagnostics)
	derived := tag.Derive(args[0], override, diag.BagReporter{Bag: bag})

	if bag.Len() > 0 {
		if err := emitBag(os.Stderr, bag, format, useColor(cmd, os.Stderr)); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), derived)
	return nil
}
