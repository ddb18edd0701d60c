package parser

import (
	"testing"

	"github.com/nvmlang/nvmc/frontend/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return program
}

func TestParseMinimalMain(t *testing.T) {
	program := mustParse(t, "func main() { print(1 + 2); }")
	if len(program.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(program.Functions))
	}
	fn := program.Functions[0]
	if fn.Name != "main" {
		t.Errorf("got name %q, want main", fn.Name)
	}
	if len(fn.Params.Params) != 0 {
		t.Errorf("got %d params, want 0", len(fn.Params.Params))
	}
	if len(fn.Body.Body.List) != 1 {
		t.Fatalf("got %d statements, want 1", len(fn.Body.Body.List))
	}
	stmt, ok := fn.Body.Body.List[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.ExpressionStatement", fn.Body.Body.List[0])
	}
	if _, ok := stmt.Expression.(*ast.FunctionCall); !ok {
		t.Errorf("got %T, want *ast.FunctionCall", stmt.Expression)
	}
}

func TestParseIfElseBodyWrapping(t *testing.T) {
	// Single-statement if/else bodies, with no braces, must still become
	// *ast.Block nodes (§4.2 body wrapping).
	program := mustParse(t, "func main() { if (1 < 2) return 1; else return 2; }")
	stmt := program.Functions[0].Body.Body.List[0]
	ifElse, ok := stmt.(*ast.IfElse)
	if !ok {
		t.Fatalf("got %T, want *ast.IfElse", stmt)
	}
	if len(ifElse.ThenBody.Body.List) != 1 {
		t.Errorf("then body not wrapped correctly")
	}
	if len(ifElse.ElseBody.Body.List) != 1 {
		t.Errorf("else body not wrapped correctly")
	}
}

func TestParseWhileLoop(t *testing.T) {
	program := mustParse(t, "func main() { var x = 0; while (x < 3) { x = x + 1; } }")
	body := program.Functions[0].Body.Body.List
	if len(body) != 2 {
		t.Fatalf("got %d statements, want 2", len(body))
	}
	loop, ok := body[1].(*ast.While)
	if !ok {
		t.Fatalf("got %T, want *ast.While", body[1])
	}
	if len(loop.Body.Body.List) != 1 {
		t.Errorf("got %d statements in loop body, want 1", len(loop.Body.Body.List))
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3): the outer node is the '+'.
	program := mustParse(t, "func main() { return 1 + 2 * 3; }")
	ret := program.Functions[0].Body.Body.List[0].(*ast.Return)
	add, ok := ret.Value.(*ast.BinOp)
	if !ok {
		t.Fatalf("got %T, want *ast.BinOp", ret.Value)
	}
	mul, ok := add.Right.(*ast.BinOp)
	if !ok {
		t.Fatalf("right operand got %T, want *ast.BinOp (multiplication)", add.Right)
	}
	if _, ok := mul.Left.(*ast.Number); !ok {
		t.Errorf("expected the multiplication's left operand to be a literal")
	}
}

func TestParseFunctionWithParamsAndCall(t *testing.T) {
	program := mustParse(t, "func add(a, b) { return a + b; } func main() { print(add(1, 2)); }")
	if len(program.Functions) != 2 {
		t.Fatalf("got %d functions, want 2", len(program.Functions))
	}
	add := program.Functions[0]
	if len(add.Params.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(add.Params.Params))
	}
	if add.Params.Params[0].Name != "a" || add.Params.Params[1].Name != "b" {
		t.Errorf("got params %v", add.Params.Params)
	}
}

func TestParseVariableDeclarationWithoutInitializer(t *testing.T) {
	program := mustParse(t, "func main() { var x; }")
	decl := program.Functions[0].Body.Body.List[0].(*ast.VariableDeclaration)
	if decl.Initializer != nil {
		t.Errorf("expected nil initializer")
	}
}

func TestParseUnaryAndParenthesized(t *testing.T) {
	program := mustParse(t, "func main() { return -(a + b); }")
	ret := program.Functions[0].Body.Body.List[0].(*ast.Return)
	neg, ok := ret.Value.(*ast.UnOp)
	if !ok {
		t.Fatalf("got %T, want *ast.UnOp", ret.Value)
	}
	if _, ok := neg.Child.(*ast.BinOp); !ok {
		t.Errorf("got %T, want *ast.BinOp inside the parentheses", neg.Child)
	}
}

func TestParseErrorOnMissingSemicolon(t *testing.T) {
	if _, err := Parse("func main() { return 1 }"); err == nil {
		t.Fatal("expected a syntax error for missing ';'")
	}
}

func TestParseErrorOnUnclosedParameterList(t *testing.T) {
	if _, err := Parse("func main( { }"); err == nil {
		t.Fatal("expected a syntax error for malformed parameter list")
	}
}

func TestParseNestedBlockRedeclaration(t *testing.T) {
	// Parsing doesn't reject shadowing; that is the symbol table's job.
	program := mustParse(t, "func f() { var x = 1; { var x = 2; } return x; }")
	body := program.Functions[0].Body.Body.List
	if len(body) != 3 {
		t.Fatalf("got %d statements, want 3", len(body))
	}
	if _, ok := body[1].(*ast.Block); !ok {
		t.Errorf("got %T, want *ast.Block", body[1])
	}
}
