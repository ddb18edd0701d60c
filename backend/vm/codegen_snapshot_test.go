package vm

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/nvmlang/nvmc/frontend/optimizer"
	"github.com/nvmlang/nvmc/frontend/parser"
)

// TestCodegenSnapshots pins the full emitted listing for a handful of
// representative programs, the way fixture_test.go pins interpreter output
// for whole DWScript scripts.
func TestCodegenSnapshots(t *testing.T) {
	cases := map[string]string{
		"constant_fold_print": "func main() { print(1 + 2); }",
		"while_loop":           "func main() { var x = 0; while (x < 3) { x = x + 1; } print(x); }",
		"recursive_fibonacci": `
func fib(n) {
	if (n <= 2) return 1;
	return fib(n - 1) + fib(n - 2);
}
func main() { print(fib(7)); }
`,
		"block_shadowing": "func f() { var x = 1; { var x = 2; } return x; } func main() { print(f()); }",
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			program, err := parser.Parse(src)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			program = optimizer.Optimize(program)
			listing, err := Generate(program)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			snaps.MatchSnapshot(t, name, listing)
		})
	}
}
