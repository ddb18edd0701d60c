package vm

import (
	"strconv"

	"github.com/nvmlang/nvmc/frontend/ast"
	"github.com/nvmlang/nvmc/frontend/errors"
	"github.com/nvmlang/nvmc/frontend/symbols"
	"github.com/nvmlang/nvmc/frontend/token"
)

// Generator is a visitor over an optimized AST that emits the stack-machine
// listing described in §4.4/§6. It owns the symbol table for the duration
// of one compilation.
type Generator struct {
	out    *listing
	symtab *symbols.Table
}

// Generate lowers program to a complete textual listing, including the
// entry sequence, or returns the first diagnostic raised.
func Generate(program *ast.Program) (string, error) {
	g := &Generator{out: &listing{}, symtab: symbols.New()}

	g.out.line("PUSH 0")
	g.out.line("POP AX")
	g.out.line("CALL main")
	g.out.line("HLT")

	if err := g.declareFunctions(program); err != nil {
		return "", err
	}

	for _, fn := range program.Functions {
		if err := g.genFunctionDefinition(fn); err != nil {
			return "", err
		}
	}

	main := g.symtab.LookupFunction("main")
	if main == nil || main.Internal != "" || main.Arity != 0 {
		return "", errors.NewUnlocalizedSyntaxError("program must declare a zero-argument function named 'main'")
	}

	return g.out.String(), nil
}

// declareFunctions registers every top-level function before any body is
// generated, so forward and mutually-recursive calls resolve regardless of
// declaration order.
func (g *Generator) declareFunctions(program *ast.Program) error {
	for _, fn := range program.Functions {
		sym := &symbols.FunctionSymbol{
			Name:       fn.Name,
			ReturnKind: symbols.ReturnNumber,
			Arity:      len(fn.Params.Params),
			Origin:     fn.Pos(),
			Label:      fn.Name,
		}
		if existing, ok := g.symtab.DeclareFunction(sym); !ok {
			return &errors.RedefinitionError{
				Name:          fn.Name,
				Origin:        fn.Pos(),
				PriorOrigin:   existing.Origin,
				PriorInternal: existing.Internal != "",
			}
		}
	}
	return nil
}

// genFunctionDefinition lowers one user function: label, prolog, parameter
// reception, body, epilog, implicit trailing return (§4.4).
func (g *Generator) genFunctionDefinition(fn *ast.FunctionDefinition) error {
	sym := g.symtab.LookupFunction(fn.Name)
	g.out.label(sym.Label)
	g.out.line("PUSH AX")

	g.symtab.EnterFunctionScope()

	if len(fn.Params.Params) > 0 {
		g.out.line("POP CX")
		for _, param := range fn.Params.Params {
			if _, err := g.declareLocal(param.Name, param.Origin, true); err != nil {
				g.symtab.LeaveFunctionScope()
				return err
			}
		}
		g.out.line("PUSH CX")
	}

	if err := g.genStatements(fn.Body.Body); err != nil {
		g.symtab.LeaveFunctionScope()
		return err
	}

	g.symtab.LeaveFunctionScope()
	g.emitEpilog()
	g.out.line("PUSH 0")
	g.out.line("RET")
	return nil
}

func (g *Generator) genBlock(block *ast.Block) error {
	g.symtab.EnterBlock()
	err := g.genStatements(block.Body)
	g.symtab.LeaveBlock()
	return err
}

func (g *Generator) genStatements(stmts *ast.Statements) error {
	for _, stmt := range stmts.List {
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return g.genBlock(s)
	case *ast.If:
		return g.genIf(s)
	case *ast.IfElse:
		return g.genIfElse(s)
	case *ast.While:
		return g.genWhile(s)
	case *ast.Assignment:
		return g.genAssignment(s)
	case *ast.VariableDeclaration:
		return g.genVariableDeclaration(s)
	case *ast.Return:
		return g.genReturn(s)
	case *ast.ExpressionStatement:
		if err := g.genExpression(s.Expression); err != nil {
			return err
		}
		if g.yieldsValue(s.Expression) {
			g.out.line("POP")
		}
		return nil
	case *ast.Statements:
		return g.genStatements(s)
	default:
		return errors.NewLogicError("unexpected statement node %T", stmt)
	}
}

func (g *Generator) genIf(s *ast.If) error {
	elseLabel := g.out.newLabel()
	if err := g.genComparison(s.Cond); err != nil {
		return err
	}
	g.out.line("%s %s", jumpMnemonic(s.Cond.Op.NegatedComparison()), elseLabel)
	if err := g.genBlock(s.Body); err != nil {
		return err
	}
	g.out.label(elseLabel)
	return nil
}

func (g *Generator) genIfElse(s *ast.IfElse) error {
	elseLabel := g.out.newLabel()
	endLabel := g.out.newLabel()
	if err := g.genComparison(s.Cond); err != nil {
		return err
	}
	g.out.line("%s %s", jumpMnemonic(s.Cond.Op.NegatedComparison()), elseLabel)
	if err := g.genBlock(s.ThenBody); err != nil {
		return err
	}
	g.out.line("JMP %s", endLabel)
	g.out.label(elseLabel)
	if err := g.genBlock(s.ElseBody); err != nil {
		return err
	}
	g.out.label(endLabel)
	return nil
}

func (g *Generator) genWhile(s *ast.While) error {
	startLabel := g.out.newLabel()
	endLabel := g.out.newLabel()
	g.out.label(startLabel)
	if err := g.genComparison(s.Cond); err != nil {
		return err
	}
	g.out.line("%s %s", jumpMnemonic(s.Cond.Op.NegatedComparison()), endLabel)
	if err := g.genBlock(s.Body); err != nil {
		return err
	}
	g.out.line("JMP %s", startLabel)
	g.out.label(endLabel)
	return nil
}

func (g *Generator) genComparison(cmp *ast.Comparison) error {
	if err := g.genExpression(cmp.Left); err != nil {
		return err
	}
	return g.genExpression(cmp.Right)
}

// genAssignment evaluates the value, then either stores to the already
// resolved variable or auto-declares it in the innermost scope if it is
// not visible anywhere yet (§4.4, §9 — auto-declaration is retained).
func (g *Generator) genAssignment(s *ast.Assignment) error {
	if err := g.genExpression(s.Value); err != nil {
		return err
	}
	sym := g.symtab.LookupVariable(s.Target.Name)
	if sym == nil {
		_, err := g.declareLocal(s.Target.Name, s.Target.Origin, true)
		return err
	}
	g.emitStore(sym)
	return nil
}

func (g *Generator) genVariableDeclaration(s *ast.VariableDeclaration) error {
	hasInit := s.Initializer != nil
	if hasInit {
		if err := g.genExpression(s.Initializer); err != nil {
			return err
		}
	}
	_, err := g.declareLocal(s.Target.Name, s.Target.Origin, hasInit)
	return err
}

func (g *Generator) genReturn(s *ast.Return) error {
	if s.Value != nil {
		if err := g.genExpression(s.Value); err != nil {
			return err
		}
		if g.yieldsValue(s.Value) {
			g.out.line("POP BX")
			g.emitEpilog()
			g.out.line("PUSH BX")
			g.out.line("RET")
			return nil
		}
	}
	g.emitEpilog()
	g.out.line("RET")
	return nil
}

func (g *Generator) genExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.Number:
		g.out.line("PUSH %s", formatNumber(e.Value))
		return nil
	case *ast.Variable:
		sym := g.symtab.LookupVariable(e.Name)
		if sym == nil {
			return errors.NewSyntaxError(e.Origin, "undeclared variable '%s'", e.Name)
		}
		g.emitLoad(sym)
		return nil
	case *ast.BinOp:
		if err := g.genExpression(e.Left); err != nil {
			return err
		}
		if err := g.genExpression(e.Right); err != nil {
			return err
		}
		g.out.line(binOpMnemonic(e.Op))
		return nil
	case *ast.UnOp:
		return g.genUnOp(e)
	case *ast.FunctionCall:
		return g.genCall(e)
	default:
		return errors.NewLogicError("unexpected expression node %T", expr)
	}
}

func (g *Generator) genUnOp(u *ast.UnOp) error {
	switch u.Op {
	case token.OpUnaryPlus:
		return g.genExpression(u.Child)
	case token.OpNeg:
		if err := g.genExpression(u.Child); err != nil {
			return err
		}
		g.out.line("PUSH -1")
		g.out.line("MUL")
		return nil
	default:
		return errors.NewLogicError("unexpected unary operator %v", u.Op)
	}
}

// genCall visits arguments last-to-first (so the first pushed is the last
// argument, and the last pushed — and therefore first popped by the callee
// — is the first argument), then emits either the internal opcode or CALL
// (§4.4).
func (g *Generator) genCall(call *ast.FunctionCall) error {
	sym := g.symtab.LookupFunction(call.Name)
	if sym == nil {
		return errors.NewSyntaxError(call.Origin, "call to undeclared function '%s'", call.Name)
	}
	if sym.Arity != len(call.Args.Args) {
		return errors.NewSyntaxError(call.Origin, "function '%s' expects %d argument(s), got %d", call.Name, sym.Arity, len(call.Args.Args))
	}
	for i := len(call.Args.Args) - 1; i >= 0; i-- {
		if err := g.genExpression(call.Args.Args[i]); err != nil {
			return err
		}
	}
	if sym.Internal != "" {
		g.out.line(sym.Internal)
		return nil
	}
	g.out.line("CALL %s", sym.Label)
	return nil
}

// yieldsValue implements the predicate from §4.4/glossary.
func (g *Generator) yieldsValue(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Number, *ast.Variable, *ast.BinOp, *ast.UnOp:
		return true
	case *ast.FunctionCall:
		sym := g.symtab.LookupFunction(e.Name)
		return sym != nil && sym.ReturnKind == symbols.ReturnNumber
	default:
		return false
	}
}

func (g *Generator) emitEpilog() {
	g.out.line("POP AX")
}

// declareLocal registers name at the current frontier. The frontier is
// always offset 0 from AX at the moment of declaration, since AX has not
// yet been advanced for this slot, so a pending value is stored with a
// direct POP [AX] before the advance (§4.4).
func (g *Generator) declareLocal(name string, origin token.Origin, withValue bool) (*symbols.VariableSymbol, error) {
	if existing, ok := g.symtab.LookupVariableInInnermostScope(name); ok {
		return nil, &errors.RedefinitionError{Name: name, Origin: origin, PriorOrigin: existing.Origin}
	}
	if withValue {
		g.out.line("POP [AX]")
	}
	sym, _ := g.symtab.DeclareVariable(name, origin)
	g.out.line("PUSH AX")
	g.out.line("PUSH 8")
	g.out.line("ADD")
	g.out.line("POP AX")
	return sym, nil
}

// emitAddress emits the subtraction sequence resolving sym's address
// relative to the current AX, leaving the address in BX — or returns "AX"
// directly when the offset is zero (§4.4).
func (g *Generator) emitAddress(sym *symbols.VariableSymbol) string {
	offset := g.symtab.NextLocalVariableAddress() - sym.Address
	if offset == 0 {
		return "AX"
	}
	g.out.line("PUSH AX")
	g.out.line("PUSH %d", offset)
	g.out.line("SUB")
	g.out.line("POP BX")
	return "BX"
}

func (g *Generator) emitLoad(sym *symbols.VariableSymbol) {
	reg := g.emitAddress(sym)
	g.out.line("PUSH [%s]", reg)
}

func (g *Generator) emitStore(sym *symbols.VariableSymbol) {
	reg := g.emitAddress(sym)
	g.out.line("POP [%s]", reg)
}

func jumpMnemonic(op token.Op) string {
	switch op {
	case token.OpLess:
		return "JMPL"
	case token.OpLessEquals:
		return "JMPLE"
	case token.OpGreater:
		return "JMPG"
	case token.OpGreaterEquals:
		return "JMPGE"
	case token.OpEquals:
		return "JMPE"
	case token.OpNotEquals:
		return "JMPNE"
	default:
		return ""
	}
}

func binOpMnemonic(op token.Op) string {
	switch op {
	case token.OpAdd:
		return "ADD"
	case token.OpSub:
		return "SUB"
	case token.OpMul:
		return "MUL"
	case token.OpDiv:
		return "DIV"
	default:
		return ""
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
