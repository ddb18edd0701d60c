// Package compiler wires the pipeline stages together (§5): parse, then
// optimize, then generate. It owns no state of its own between calls,
// grounded in the teacher's frontend/build.go entry point.
package compiler

import (
	"github.com/nvmlang/nvmc/backend/vm"
	"github.com/nvmlang/nvmc/frontend/errors"
	"github.com/nvmlang/nvmc/frontend/optimizer"
	"github.com/nvmlang/nvmc/frontend/parser"
)

// Compile runs the full pipeline over source and returns the emitted
// assembly listing, or the first diagnostic any stage raised.
func Compile(source string) (string, error) {
	program, err := parser.Parse(source)
	if err != nil {
		return "", err
	}
	program = optimizer.Optimize(program)
	listing, err := vm.Generate(program)
	if err != nil {
		return "", err
	}
	return listing, nil
}

// AsCompilerError narrows err to the diagnostic interface every pipeline
// stage actually returns, for callers that want the Write(io.Writer)
// rendering instead of a bare Error() string.
func AsCompilerError(err error) (errors.CompilerError, bool) {
	ce, ok := err.(errors.CompilerError)
	return ce, ok
}
