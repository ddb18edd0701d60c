// Package ast defines the tagged-variant tree produced by the parser and
// consumed by the optimizer and code generator (§3). Every node carries its
// source Origin; tree ownership is strictly hierarchical, so the optimizer
// either rebuilds a subtree or returns a replacement rather than sharing
// pointers.
package ast

import "github.com/nvmlang/nvmc/frontend/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Origin
}

// Expression is a node that produces a value (or, for calls, may not).
type Expression interface {
	Node
	exprNode()
}

// Statement is a node that appears in a statement list.
type Statement interface {
	Node
	stmtNode()
}

// base carries the origin shared by every node; embedded by every variant.
type base struct {
	Origin token.Origin
}

func (b base) Pos() token.Origin { return b.Origin }

// ---- Expressions ----

// Number is a numeric literal leaf.
type Number struct {
	base
	Value float64
}

// Variable is a name reference leaf.
type Variable struct {
	base
	Name string
}

// BinOp is a binary arithmetic expression: +, -, *, /.
type BinOp struct {
	base
	Op          token.Op
	Left, Right Expression
}

// NewBinOp validates that op is one of the binary arithmetic operators
// before constructing the node (§3 arity/operator invariant).
func NewBinOp(origin token.Origin, op token.Op, left, right Expression) (*BinOp, bool) {
	switch op {
	case token.OpAdd, token.OpSub, token.OpMul, token.OpDiv:
		return &BinOp{base: base{origin}, Op: op, Left: left, Right: right}, true
	default:
		return nil, false
	}
}

// UnOp is a unary expression: unary+, neg.
type UnOp struct {
	base
	Op    token.Op
	Child Expression
}

// NewUnOp validates that op is one of the unary operators before
// constructing the node.
func NewUnOp(origin token.Origin, op token.Op, child Expression) (*UnOp, bool) {
	switch op {
	case token.OpUnaryPlus, token.OpNeg:
		return &UnOp{base: base{origin}, Op: op, Child: child}, true
	default:
		return nil, false
	}
}

// Comparison only appears as the condition of If/IfElse/While; it is never
// a general expression operand (§3).
type Comparison struct {
	base
	Op          token.Op
	Left, Right Expression
}

// FunctionCall invokes a declared or built-in function.
type FunctionCall struct {
	base
	Name string
	Args *ArgumentsList
}

// ArgumentsList holds a call's argument expressions, in source order.
type ArgumentsList struct {
	base
	Args []Expression
}

func (*Number) exprNode()       {}
func (*Variable) exprNode()     {}
func (*BinOp) exprNode()        {}
func (*UnOp) exprNode()         {}
func (*FunctionCall) exprNode() {}

// ---- Statements ----

// Assignment stores value into target. If target is not declared in any
// visible scope when codegen visits it, codegen declares it in the
// innermost scope (auto-declaration, §4.4).
type Assignment struct {
	base
	Target *Variable
	Value  Expression
}

// VariableDeclaration introduces target in the innermost scope, optionally
// initializing it.
type VariableDeclaration struct {
	base
	Target      *Variable
	Initializer Expression // nil if no initializer
}

// Statements is a flat list of statements, used as the body of Block
// (including the Block that is a FunctionDefinition's body).
type Statements struct {
	base
	List []Statement
}

// Block is a lexical scope wrapping a Statements list. Every If/IfElse/While
// body is a Block, even for single-statement sources, so every conditional
// or loop introduces a scope (§3).
type Block struct {
	base
	Body *Statements
}

// If is a conditional with no else branch.
type If struct {
	base
	Cond *Comparison
	Body *Block
}

// IfElse is a conditional with both branches.
type IfElse struct {
	base
	Cond               *Comparison
	ThenBody, ElseBody *Block
}

// While is a pre-tested loop.
type While struct {
	base
	Cond *Comparison
	Body *Block
}

// ParametersList holds a function's formal parameters.
type ParametersList struct {
	base
	Params []*Variable
}

// FunctionDefinition declares a top-level function.
type FunctionDefinition struct {
	base
	Name   string
	Params *ParametersList
	Body   *Block
}

// Return yields a value from the enclosing function.
type Return struct {
	base
	Value Expression // always set by the parser: 'return' requires an expression
}

// ExpressionStatement lifts an expression (e.g. a call for its side
// effects) to statement position. Assignments are Assignment statements.
type ExpressionStatement struct {
	base
	Expression Expression
}

func (*Assignment) stmtNode()           {}
func (*VariableDeclaration) stmtNode()  {}
func (*Statements) stmtNode()           {}
func (*Block) stmtNode()                {}
func (*If) stmtNode()                   {}
func (*IfElse) stmtNode()               {}
func (*While) stmtNode()                {}
func (*FunctionDefinition) stmtNode()   {}
func (*Return) stmtNode()               {}
func (*ExpressionStatement) stmtNode()  {}

// Program is the root node: a flat sequence of top-level function
// definitions (§6: "functions declared only at top level").
type Program struct {
	Functions []*FunctionDefinition
}
