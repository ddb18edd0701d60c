package cmd

import (
	"fmt"
	"os"

	nvmast "github.com/nvmlang/nvmc/frontend/ast"
	"github.com/nvmlang/nvmc/frontend/parser"
	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Parse a source file and dump its AST (debug aid, not a stable format)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAST(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	program, err := parser.Parse(string(source))
	if err != nil {
		return err
	}

	for _, fn := range program.Functions {
		dumpFunction(fn, 0)
	}
	return nil
}

// dumpFunction is a minimal, untested debug dump. AST
// visualization is explicitly out of scope; this exists only so `ast` mode
// has something to print.
func dumpFunction(fn *nvmast.FunctionDefinition, indent int) {
	pad := indentString(indent)
	fmt.Printf("%sfunc %s(%d params)\n", pad, fn.Name, len(fn.Params.Params))
	dumpStatements(fn.Body.Body, indent+1)
}

func dumpStatements(stmts *nvmast.Statements, indent int) {
	for _, stmt := range stmts.List {
		dumpStatement(stmt, indent)
	}
}

func dumpStatement(stmt nvmast.Statement, indent int) {
	pad := indentString(indent)
	switch s := stmt.(type) {
	case *nvmast.Block:
		fmt.Printf("%sBlock\n", pad)
		dumpStatements(s.Body, indent+1)
	case *nvmast.If:
		fmt.Printf("%sIf\n", pad)
		dumpStatements(s.Body.Body, indent+1)
	case *nvmast.IfElse:
		fmt.Printf("%sIfElse\n", pad)
		dumpStatements(s.ThenBody.Body, indent+1)
		dumpStatements(s.ElseBody.Body, indent+1)
	case *nvmast.While:
		fmt.Printf("%sWhile\n", pad)
		dumpStatements(s.Body.Body, indent+1)
	case *nvmast.VariableDeclaration:
		fmt.Printf("%sVariableDeclaration %s\n", pad, s.Target.Name)
	case *nvmast.Assignment:
		fmt.Printf("%sAssignment %s\n", pad, s.Target.Name)
	case *nvmast.Return:
		fmt.Printf("%sReturn\n", pad)
	case *nvmast.ExpressionStatement:
		fmt.Printf("%sExpressionStatement\n", pad)
	default:
		fmt.Printf("%s%T\n", pad, stmt)
	}
}

func indentString(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += "  "
	}
	return s
}
