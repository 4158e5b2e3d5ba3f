package main

import (
	"github.com/spf13/cobra"

	"logtag/internal/bytecode"
)

var dumpCmd = &cobra.Command{
	Use:   "dump file.lgu",
	Short: "Print a unit file's instruction streams",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	unit, err := bytecode.ReadUnitFile(args[0])
	if err != nil {
		return err
	}
	return bytecode.DumpUnit(cmd.OutOrStdout(), unit)
}
