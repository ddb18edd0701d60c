// Package optimizer rewrites an AST in place before code generation (§4.3).
// Each pass is a small, composable tree rewrite; Optimize runs the default
// pipeline in the documented order. Grounded in the teacher's visitor-style
// AST walk (frontend/ast/nodes.go's accept methods) but expressed as plain
// recursive rewrite functions, since nothing here benefits from double
// dispatch.
package optimizer

import (
	"math"

	"github.com/nvmlang/nvmc/frontend/ast"
	"github.com/nvmlang/nvmc/frontend/token"
)

const equalityTolerance = 1e-9

// Optimize rewrites every function body in program and returns it.
func Optimize(program *ast.Program) *ast.Program {
	for _, fn := range program.Functions {
		fn.Body = rewriteBlock(fn.Body)
	}
	return program
}

func rewriteBlock(block *ast.Block) *ast.Block {
	if block == nil {
		return nil
	}
	for i, stmt := range block.Body.List {
		block.Body.List[i] = rewriteStatement(stmt)
	}
	return block
}

func rewriteStatement(stmt ast.Statement) ast.Statement {
	switch s := stmt.(type) {
	case *ast.Block:
		return rewriteBlock(s)
	case *ast.If:
		s.Cond = rewriteComparison(s.Cond)
		s.Body = rewriteBlock(s.Body)
		return s
	case *ast.IfElse:
		s.Cond = rewriteComparison(s.Cond)
		s.ThenBody = rewriteBlock(s.ThenBody)
		s.ElseBody = rewriteBlock(s.ElseBody)
		return s
	case *ast.While:
		s.Cond = rewriteComparison(s.Cond)
		s.Body = rewriteBlock(s.Body)
		return s
	case *ast.Assignment:
		s.Value = rewriteExpr(s.Value)
		return s
	case *ast.VariableDeclaration:
		if s.Initializer != nil {
			s.Initializer = rewriteExpr(s.Initializer)
		}
		return s
	case *ast.Return:
		if s.Value != nil {
			s.Value = rewriteExpr(s.Value)
		}
		return s
	case *ast.ExpressionStatement:
		s.Expression = rewriteExpr(s.Expression)
		return s
	case *ast.Statements:
		for i, inner := range s.List {
			s.List[i] = rewriteStatement(inner)
		}
		return s
	default:
		return stmt
	}
}

func rewriteComparison(cmp *ast.Comparison) *ast.Comparison {
	if cmp == nil {
		return nil
	}
	cmp.Left = rewriteExpr(cmp.Left)
	cmp.Right = rewriteExpr(cmp.Right)
	return cmp
}

// rewriteExpr applies the pipeline to a single expression subtree,
// post-order: children are rewritten first, so a fold at a leaf is already
// visible to its parent's own simplification step.
func rewriteExpr(expr ast.Expression) ast.Expression {
	switch e := expr.(type) {
	case *ast.UnOp:
		e.Child = rewriteExpr(e.Child)
		return simplifyUnOp(e)
	case *ast.BinOp:
		e.Left = rewriteExpr(e.Left)
		e.Right = rewriteExpr(e.Right)
		return simplifyBinOp(e)
	case *ast.FunctionCall:
		for i, arg := range e.Args.Args {
			e.Args.Args[i] = rewriteExpr(arg)
		}
		return e
	default:
		return expr
	}
}

// simplifyUnOp applies unary-plus elision and double-negation collapse
// (§4.3): "+x" rewrites to "x", and "-(-x)" rewrites to "x". Both are exact
// syntactic rewrites, not numeric folds, so they apply regardless of
// whether the operand is itself a constant.
func simplifyUnOp(u *ast.UnOp) ast.Expression {
	if u.Op == token.OpUnaryPlus {
		return u.Child
	}
	// u.Op == token.OpNeg
	if inner, ok := u.Child.(*ast.UnOp); ok && inner.Op == token.OpNeg {
		return inner.Child
	}
	if num, ok := u.Child.(*ast.Number); ok {
		return newNumber(u.Pos(), -num.Value)
	}
	return u
}

// simplifyBinOp applies, in order: constant folding when both operands are
// numeric literals, then the trivial-identity rewrites (§4.3): "x + 0" and
// "0 + x" fold to "x", "x * 1" and "1 * x" fold to "x", and "x * 0" and
// "0 * x" fold to the literal 0. Equality against 0 or 1 uses a 1e-9
// tolerance since the operand may itself be the result of a prior fold.
func simplifyBinOp(b *ast.BinOp) ast.Expression {
	left, leftIsNum := b.Left.(*ast.Number)
	right, rightIsNum := b.Right.(*ast.Number)

	if leftIsNum && rightIsNum {
		return newNumber(b.Pos(), foldConstants(b.Op, left.Value, right.Value))
	}

	switch b.Op {
	case token.OpAdd:
		if rightIsNum && isZero(right.Value) {
			return b.Left
		}
		if leftIsNum && isZero(left.Value) {
			return b.Right
		}
	case token.OpMul:
		if rightIsNum && isOne(right.Value) {
			return b.Left
		}
		if leftIsNum && isOne(left.Value) {
			return b.Right
		}
		if (rightIsNum && isZero(right.Value)) || (leftIsNum && isZero(left.Value)) {
			return newNumber(b.Pos(), 0)
		}
	}
	return b
}

func foldConstants(op token.Op, left, right float64) float64 {
	switch op {
	case token.OpAdd:
		return left + right
	case token.OpSub:
		return left - right
	case token.OpMul:
		return left * right
	case token.OpDiv:
		return left / right
	}
	return 0
}

func isZero(v float64) bool { return math.Abs(v) < equalityTolerance }
func isOne(v float64) bool  { return math.Abs(v-1) < equalityTolerance }

func newNumber(origin token.Origin, value float64) *ast.Number {
	n := &ast.Number{Value: value}
	n.Origin = origin
	return n
}
