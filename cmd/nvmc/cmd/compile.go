package cmd

import (
	"fmt"
	"os"

	"github.com/nvmlang/nvmc/compiler"
	"github.com/spf13/cobra"
)

var compileOutput string

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a source file to a stack-machine assembly listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write the listing here instead of stdout")
}

func runCompile(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	listing, err := compiler.Compile(string(source))
	if err != nil {
		if ce, ok := compiler.AsCompilerError(err); ok {
			ce.Write(os.Stderr)
			return fmt.Errorf("compilation failed")
		}
		return err
	}

	if compileOutput == "" {
		fmt.Print(listing)
		return nil
	}
	return os.WriteFile(compileOutput, []byte(listing), 0o644)
}
