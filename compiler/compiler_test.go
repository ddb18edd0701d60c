package compiler

import (
	"strings"
	"testing"
)

func TestCompileEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		contains []string
	}{
		{
			name: "constant folded print",
			src:  "func main() { print(1 + 2); }",
			contains: []string{
				"PUSH 0\nPOP AX\nCALL main\nHLT",
				"main:",
				"PUSH 3",
				"OUT",
			},
		},
		{
			name: "while loop with negated jump",
			src:  "func main() { var x = 0; while (x < 3) { x = x + 1; } print(x); }",
			contains: []string{
				"JMPGE",
				"JMP L",
			},
		},
		{
			name: "recursive fibonacci",
			src: `
func fib(n) {
	if (n <= 2) return 1;
	return fib(n - 1) + fib(n - 2);
}
func main() { print(fib(7)); }
`,
			contains: []string{"fib:", "CALL fib", "PUSH 0\nRET"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			listing, err := Compile(c.src)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			for _, want := range c.contains {
				if !strings.Contains(listing, want) {
					t.Errorf("missing %q in listing:\n%s", want, listing)
				}
			}
		})
	}
}

func TestCompileRedefinitionError(t *testing.T) {
	_, err := Compile("func f() { var x = 1; var x = 2; }")
	if err == nil {
		t.Fatal("expected a redefinition error")
	}
	ce, ok := AsCompilerError(err)
	if !ok {
		t.Fatalf("got %T, not a CompilerError", err)
	}
	if !strings.Contains(ce.Error(), "redefinition") {
		t.Errorf("got %q, want it to mention redefinition", ce.Error())
	}
}

func TestCompileMissingMain(t *testing.T) {
	if _, err := Compile("func notmain() { }"); err == nil {
		t.Fatal("expected an error for a missing main")
	}
}

func TestCompileSyntaxError(t *testing.T) {
	_, err := Compile("func main() { return }")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if _, ok := AsCompilerError(err); !ok {
		t.Errorf("expected a CompilerError")
	}
}
