// Command nvmc is the thin driver wiring around the compiler pipeline
// (§6). It loads a source file, runs the pipeline, and writes the emitted
// listing — everything beyond that (assembling, running, AST
// visualization) is an external collaborator per the pipeline's scope.
package main

import (
	"fmt"
	"os"

	"github.com/nvmlang/nvmc/cmd/nvmc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
