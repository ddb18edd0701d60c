// Package symbols implements the compiler's symbol table (§3, §6): a
// scoped stack of variable maps (front = innermost) plus a flat map of
// functions, grounded in the teacher's frontend/ast/symbols/table.go but
// generalized from a parent-pointer chain to an explicit slice so block
// exit can restore nextLocalVariableAddress exactly as the stack-machine
// calling convention requires.
package symbols

import "github.com/nvmlang/nvmc/frontend/token"

// VariableSymbol is a declared local variable.
type VariableSymbol struct {
	Name    string
	Address uint // byte offset within the current function's frame
	Origin  token.Origin
}

// FunctionReturnKind distinguishes void functions from number-returning
// ones (§3); used by the code generator's "yields a value" predicate.
type FunctionReturnKind int

const (
	ReturnVoid FunctionReturnKind = iota
	ReturnNumber
)

// FunctionSymbol is a declared function, built-in or user-defined.
type FunctionSymbol struct {
	Name       string
	ReturnKind FunctionReturnKind
	Arity      int
	Origin     token.Origin

	// Internal is non-empty for built-ins (§4.4): it names the opcode the
	// call lowers to directly (IN, OUT, SQRT) instead of emitting CALL.
	Internal string

	// Label is the code-generator label for a non-internal function. It
	// equals Name for user functions (§6: "user function labels use the
	// function's source name").
	Label string
}

const variableSize uint = 8 // bytes per variable slot (§3)

// Table is the symbol table for one compilation: a front-to-back stack of
// variable scopes plus a flat function map.
type Table struct {
	scopes    []map[string]*VariableSymbol // scopes[0] is innermost
	functions map[string]*FunctionSymbol

	nextLocalVariableAddress uint
}

// New creates an empty table with built-in functions pre-registered
// (§4.4: read, print, sqrt).
func New() *Table {
	t := &Table{functions: make(map[string]*FunctionSymbol)}
	t.registerBuiltin("read", ReturnNumber, 0, "IN")
	t.registerBuiltin("print", ReturnVoid, 1, "OUT")
	t.registerBuiltin("sqrt", ReturnNumber, 1, "SQRT")
	return t
}

func (t *Table) registerBuiltin(name string, ret FunctionReturnKind, arity int, opcode string) {
	t.functions[name] = &FunctionSymbol{
		Name:       name,
		ReturnKind: ret,
		Arity:      arity,
		Internal:   opcode,
	}
}

// EnterFunctionScope resets the address counter and pushes a fresh
// innermost scope, as codegen does when it starts generating a function
// body (§4.4: "resets nextLocalVariableAddress to 0").
func (t *Table) EnterFunctionScope() {
	t.nextLocalVariableAddress = 0
	t.scopes = []map[string]*VariableSymbol{make(map[string]*VariableSymbol)}
}

// LeaveFunctionScope drops every scope; called once codegen finishes a
// function body.
func (t *Table) LeaveFunctionScope() {
	t.scopes = nil
	t.nextLocalVariableAddress = 0
}

// EnterBlock pushes a new innermost scope (§3: "Entering a block pushes an
// empty map").
func (t *Table) EnterBlock() {
	t.scopes = append([]map[string]*VariableSymbol{make(map[string]*VariableSymbol)}, t.scopes...)
}

// LeaveBlock pops the innermost scope and restores
// nextLocalVariableAddress to the maximum address still visible in the
// newly-exposed outer scope, plus one variable's width — or 0 when the
// block being left was outermost (§3).
func (t *Table) LeaveBlock() {
	t.scopes = t.scopes[1:]
	if len(t.scopes) == 0 {
		t.nextLocalVariableAddress = 0
		return
	}
	var max uint
	found := false
	for _, sym := range t.scopes[0] {
		if !found || sym.Address > max {
			max = sym.Address
			found = true
		}
	}
	if found {
		t.nextLocalVariableAddress = max + variableSize
	} else {
		t.nextLocalVariableAddress = 0
	}
}

// DeclareVariable registers name in the innermost scope at the next free
// address. ok is false if name is already declared in that same scope
// (redefinition, §3).
func (t *Table) DeclareVariable(name string, origin token.Origin) (*VariableSymbol, bool) {
	innermost := t.scopes[0]
	if existing, ok := innermost[name]; ok {
		return existing, false
	}
	sym := &VariableSymbol{Name: name, Address: t.nextLocalVariableAddress, Origin: origin}
	innermost[name] = sym
	t.nextLocalVariableAddress += variableSize
	return sym, true
}

// LookupVariable scans scopes front-to-back (innermost first), so a
// shadowing inner declaration hides an outer one (§3).
func (t *Table) LookupVariable(name string) *VariableSymbol {
	for _, scope := range t.scopes {
		if sym, ok := scope[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupVariableInInnermostScope reports whether name is already declared
// in the current innermost scope, used to detect redefinition.
func (t *Table) LookupVariableInInnermostScope(name string) (*VariableSymbol, bool) {
	sym, ok := t.scopes[0][name]
	return sym, ok
}

// NextLocalVariableAddress returns the current end-of-locals offset, the
// value used to compute a variable's AX-relative address (§4.4).
func (t *Table) NextLocalVariableAddress() uint {
	return t.nextLocalVariableAddress
}

// DeclareFunction registers a user function. ok is false if the name is
// already declared (program-wide redefinition, §3), including a clash
// against a built-in.
func (t *Table) DeclareFunction(sym *FunctionSymbol) (*FunctionSymbol, bool) {
	if existing, ok := t.functions[sym.Name]; ok {
		return existing, false
	}
	t.functions[sym.Name] = sym
	return sym, true
}

// LookupFunction returns the function symbol for name, or nil.
func (t *Table) LookupFunction(name string) *FunctionSymbol {
	return t.functions[name]
}
