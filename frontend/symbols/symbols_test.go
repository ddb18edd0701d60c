package symbols

import (
	"testing"

	"github.com/nvmlang/nvmc/frontend/token"
)

func TestBuiltinsPreregistered(t *testing.T) {
	table := New()
	cases := map[string]struct {
		ret   FunctionReturnKind
		arity int
		opc   string
	}{
		"read":  {ReturnNumber, 0, "IN"},
		"print": {ReturnVoid, 1, "OUT"},
		"sqrt":  {ReturnNumber, 1, "SQRT"},
	}
	for name, want := range cases {
		sym := table.LookupFunction(name)
		if sym == nil {
			t.Fatalf("%s: not registered", name)
		}
		if sym.ReturnKind != want.ret || sym.Arity != want.arity || sym.Internal != want.opc {
			t.Errorf("%s: got %+v, want %+v", name, sym, want)
		}
	}
}

func TestDeclareVariableAddressAllocation(t *testing.T) {
	table := New()
	table.EnterFunctionScope()
	a, ok := table.DeclareVariable("a", token.Origin{Line: 1, Column: 1})
	if !ok || a.Address != 0 {
		t.Fatalf("got %+v ok=%v, want address 0", a, ok)
	}
	b, ok := table.DeclareVariable("b", token.Origin{Line: 1, Column: 2})
	if !ok || b.Address != 8 {
		t.Fatalf("got %+v ok=%v, want address 8", b, ok)
	}
	if table.NextLocalVariableAddress() != 16 {
		t.Errorf("got %d, want 16", table.NextLocalVariableAddress())
	}
}

func TestDeclareVariableRedefinitionRejected(t *testing.T) {
	table := New()
	table.EnterFunctionScope()
	table.DeclareVariable("x", token.Origin{})
	_, ok := table.DeclareVariable("x", token.Origin{})
	if ok {
		t.Fatal("expected redefinition to be rejected")
	}
}

func TestShadowingAcrossBlocks(t *testing.T) {
	table := New()
	table.EnterFunctionScope()
	outer, _ := table.DeclareVariable("x", token.Origin{})
	table.EnterBlock()
	inner, _ := table.DeclareVariable("x", token.Origin{})
	if inner.Address == outer.Address {
		t.Fatalf("inner and outer got the same address %d", inner.Address)
	}
	if table.LookupVariable("x") != inner {
		t.Error("lookup should find the innermost shadowing declaration")
	}
	table.LeaveBlock()
	if table.LookupVariable("x") != outer {
		t.Error("lookup after leaving the block should find the outer declaration again")
	}
}

func TestLeaveBlockRestoresAddress(t *testing.T) {
	table := New()
	table.EnterFunctionScope()
	table.DeclareVariable("x", token.Origin{}) // address 0, counter -> 8
	table.EnterBlock()
	table.DeclareVariable("y", token.Origin{}) // address 8, counter -> 16
	table.DeclareVariable("z", token.Origin{}) // address 16, counter -> 24
	table.LeaveBlock()
	if table.NextLocalVariableAddress() != 8 {
		t.Errorf("got %d, want 8 (restored to outer scope's max address + 8)", table.NextLocalVariableAddress())
	}
}

func TestLeaveOutermostBlockResetsToZero(t *testing.T) {
	table := New()
	table.EnterFunctionScope()
	table.EnterBlock()
	table.DeclareVariable("x", token.Origin{})
	table.LeaveBlock()
	if table.NextLocalVariableAddress() != 0 {
		t.Errorf("got %d, want 0", table.NextLocalVariableAddress())
	}
}

func TestDeclareFunctionRedefinitionAgainstBuiltin(t *testing.T) {
	table := New()
	_, ok := table.DeclareFunction(&FunctionSymbol{Name: "print", Arity: 1})
	if ok {
		t.Fatal("expected redefinition against a built-in to be rejected")
	}
}
