package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile and execute a source file (requires an external runtime)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runRun is a stub: the stack-machine assembler/runtime that would execute
// the emitted listing is an external collaborator, out of scope for this
// repository (§1). Use `compile` to produce the listing for a runtime of
// your own.
func runRun(cmd *cobra.Command, args []string) error {
	return fmt.Errorf("run: executing the emitted listing requires an external assembler/runtime, not available in this build; use 'nvmc compile' to produce the listing")
}
