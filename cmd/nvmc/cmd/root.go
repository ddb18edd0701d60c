package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nvmc",
	Short: "Compiler for the stack-machine numeric language",
	Long: `nvmc compiles a small C-family imperative language, whose only value
type is a double-precision number, to a textual stack-machine assembly
listing.

The compiler itself is the lex -> parse -> optimize -> codegen pipeline;
assembling and running the emitted listing are the job of a separate
runtime this driver does not implement.`,
	Version: "0.1.0-dev",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
