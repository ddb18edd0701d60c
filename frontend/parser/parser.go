// Package parser is a hand-written recursive-descent parser (§4.2) that
// turns a token sequence into an *ast.Program. It holds a single cursor
// over a pre-scanned token buffer, grounded in the teacher's
// frontend/ast/parser.go cursor design but split into its own package
// since the specification treats Parser and AST as distinct components.
package parser

import (
	"github.com/nvmlang/nvmc/frontend/ast"
	"github.com/nvmlang/nvmc/frontend/errors"
	"github.com/nvmlang/nvmc/frontend/scanner"
	"github.com/nvmlang/nvmc/frontend/token"
)

// Parser holds the token buffer and cursor.
type Parser struct {
	tokens []token.Token
	index  int
}

// New pre-scans source and returns a Parser positioned at the first token.
func New(source string) (*Parser, error) {
	tokens, err := scanner.ScanAll(source)
	if err != nil {
		return nil, err
	}
	return &Parser{tokens: tokens}, nil
}

// Parse runs the Program production (§4.2): a sequence of function
// definitions, nothing else is permitted at top level (§6: "Functions
// declared only at top level. No global variables.").
func Parse(source string) (*ast.Program, error) {
	p, err := New(source)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	for p.current().Kind != token.EOF {
		fn, err := p.parseFunctionDefinition()
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, fn)
	}
	return program, nil
}

func (p *Parser) parseFunctionDefinition() (*ast.FunctionDefinition, error) {
	origin := p.current().Origin
	if _, err := p.expect(token.KeywordFunc); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Id)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	params, err := p.parseParametersList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDefinition{Name: nameTok.Name, Params: params, Body: body}
	fn.Origin = origin
	return fn, nil
}

func (p *Parser) parseParametersList() (*ast.ParametersList, error) {
	origin := p.current().Origin
	list := &ast.ParametersList{}
	list.Origin = origin
	if p.current().Kind == token.RightParen {
		return list, nil
	}
	for {
		tok, err := p.expect(token.Id)
		if err != nil {
			return nil, err
		}
		list.Params = append(list.Params, newVariable(tok.Origin, tok.Name))
		if p.current().Kind != token.Comma {
			break
		}
		p.advance()
	}
	return list, nil
}

// parseBlock implements Block = '{' FunctionScope '}' (§4.2).
func (p *Parser) parseBlock() (*ast.Block, error) {
	origin := p.current().Origin
	if _, err := p.expect(token.LeftBrace); err != nil {
		return nil, err
	}
	stmts, err := p.parseFunctionScope(token.RightBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightBrace); err != nil {
		return nil, err
	}
	block := &ast.Block{Body: stmts}
	block.Origin = origin
	return block, nil
}

// parseFunctionScope implements FunctionScope = FunctionScopeStmt* (§4.2),
// stopping once `until` is seen.
func (p *Parser) parseFunctionScope(until token.Kind) (*ast.Statements, error) {
	stmts := &ast.Statements{}
	stmts.Origin = p.current().Origin
	for p.current().Kind != until && p.current().Kind != token.EOF {
		stmt, err := p.parseFunctionScopeStmt()
		if err != nil {
			return nil, err
		}
		stmts.List = append(stmts.List, stmt)
	}
	return stmts, nil
}

// parseFunctionScopeStmt dispatches on one-token lookahead, falling back to
// two-token lookahead for Assignment (§4.2).
func (p *Parser) parseFunctionScopeStmt() (ast.Statement, error) {
	switch p.current().Kind {
	case token.LeftBrace:
		return p.parseBlock()
	case token.KeywordIf:
		return p.parseIf()
	case token.KeywordWhile:
		return p.parseWhile()
	case token.KeywordVar:
		return p.parseVariableDeclaration()
	case token.KeywordReturn:
		return p.parseReturn()
	}

	if p.current().Kind == token.Id && p.peek().Kind == token.Assign {
		return p.parseAssignment()
	}

	origin := p.current().Origin
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	stmt := &ast.ExpressionStatement{Expression: expr}
	stmt.Origin = origin
	return stmt, nil
}

// parseBody parses a single FunctionScopeStmt and wraps it in a Block if it
// is not already one, so every if/else/while body introduces a scope
// (§4.2).
func (p *Parser) parseBody() (*ast.Block, error) {
	stmt, err := p.parseFunctionScopeStmt()
	if err != nil {
		return nil, err
	}
	if block, ok := stmt.(*ast.Block); ok {
		return block, nil
	}
	origin := stmt.Pos()
	stmts := &ast.Statements{List: []ast.Statement{stmt}}
	stmts.Origin = origin
	block := &ast.Block{Body: stmts}
	block.Origin = origin
	return block, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	origin := p.current().Origin
	p.advance() // 'if'
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	thenBody, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != token.KeywordElse {
		stmt := &ast.If{Cond: cond, Body: thenBody}
		stmt.Origin = origin
		return stmt, nil
	}
	p.advance() // 'else'
	elseBody, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfElse{Cond: cond, ThenBody: thenBody, ElseBody: elseBody}
	stmt.Origin = origin
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	origin := p.current().Origin
	p.advance() // 'while'
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	stmt := &ast.While{Cond: cond, Body: body}
	stmt.Origin = origin
	return stmt, nil
}

// parseComparison implements Comparison = Expression CompOp Expression
// (§4.2) — a dedicated production reachable only from conditional headers.
func (p *Parser) parseComparison() (*ast.Comparison, error) {
	origin := p.current().Origin
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	opTok := p.current()
	if opTok.Kind != token.CompOp {
		return nil, errors.NewSyntaxError(opTok.Origin, "expected a comparison operator, but got '%s'", opTok.Kind)
	}
	p.advance()
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	cmp := &ast.Comparison{Op: opTok.Op, Left: left, Right: right}
	cmp.Origin = origin
	return cmp, nil
}

func (p *Parser) parseVariableDeclaration() (ast.Statement, error) {
	origin := p.current().Origin
	p.advance() // 'var'
	nameTok, err := p.expect(token.Id)
	if err != nil {
		return nil, err
	}
	decl := &ast.VariableDeclaration{Target: newVariable(nameTok.Origin, nameTok.Name)}
	decl.Origin = origin
	if p.current().Kind == token.Assign {
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Initializer = value
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	origin := p.current().Origin
	p.advance() // 'return'
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	ret := &ast.Return{Value: value}
	ret.Origin = origin
	return ret, nil
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	nameTok, _ := p.expect(token.Id)
	origin := nameTok.Origin
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	assign := &ast.Assignment{Target: newVariable(nameTok.Origin, nameTok.Name), Value: value}
	assign.Origin = origin
	return assign, nil
}

// parseExpression implements Expression = Term ([+-] Term)* (§4.2).
func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == token.BinOp && isAdditive(p.current().Op) {
		opTok := p.current()
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node, ok := ast.NewBinOp(opTok.Origin, opTok.Op, left, right)
		if !ok {
			return nil, errors.NewLogicError("unexpected additive operator %v", opTok.Op)
		}
		left = node
	}
	return left, nil
}

// parseTerm implements Term = Factor ([*/] Factor)* (§4.2).
func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == token.BinOp && isMultiplicative(p.current().Op) {
		opTok := p.current()
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node, ok := ast.NewBinOp(opTok.Origin, opTok.Op, left, right)
		if !ok {
			return nil, errors.NewLogicError("unexpected multiplicative operator %v", opTok.Op)
		}
		left = node
	}
	return left, nil
}

// parseFactor implements Factor = ('+'|'-') Factor | '(' Expression ')' |
// Number | Variable | Call (§4.2).
func (p *Parser) parseFactor() (ast.Expression, error) {
	tok := p.current()
	switch tok.Kind {
	case token.UnOp:
		p.advance()
		child, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node, ok := ast.NewUnOp(tok.Origin, tok.Op, child)
		if !ok {
			return nil, errors.NewLogicError("unexpected unary operator %v", tok.Op)
		}
		return node, nil
	case token.LeftParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen); err != nil {
			return nil, err
		}
		return expr, nil
	case token.Number:
		p.advance()
		return newNumber(tok.Origin, tok.NumberValue), nil
	case token.Id:
		if p.peek().Kind == token.LeftParen {
			return p.parseCall()
		}
		p.advance()
		return newVariable(tok.Origin, tok.Name), nil
	}
	return nil, errors.NewSyntaxError(tok.Origin, "expected an expression, but got '%s'", tok.Kind)
}

func (p *Parser) parseCall() (ast.Expression, error) {
	nameTok := p.current()
	p.advance()
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	call := &ast.FunctionCall{Name: nameTok.Name, Args: args}
	call.Origin = nameTok.Origin
	return call, nil
}

func (p *Parser) parseArguments() (*ast.ArgumentsList, error) {
	list := &ast.ArgumentsList{}
	list.Origin = p.current().Origin
	if p.current().Kind == token.RightParen {
		return list, nil
	}
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list.Args = append(list.Args, expr)
		if p.current().Kind != token.Comma {
			break
		}
		p.advance()
	}
	return list, nil
}

// newVariable and newNumber build leaf expression nodes with their origin
// set, since ast.base is unexported and so cannot be keyed directly in a
// composite literal from outside the ast package.
func newVariable(origin token.Origin, name string) *ast.Variable {
	v := &ast.Variable{Name: name}
	v.Origin = origin
	return v
}

func newNumber(origin token.Origin, value float64) *ast.Number {
	n := &ast.Number{Value: value}
	n.Origin = origin
	return n
}

func isAdditive(op token.Op) bool {
	return op == token.OpAdd || op == token.OpSub
}

func isMultiplicative(op token.Op) bool {
	return op == token.OpMul || op == token.OpDiv
}

// ---- cursor helpers ----

func (p *Parser) current() token.Token {
	return p.tokens[p.index]
}

func (p *Parser) peek() token.Token {
	if p.index+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.index+1]
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.index < len(p.tokens)-1 {
		p.index++
	}
	return tok
}

// expect consumes the current token if it matches kind, else reports a
// Syntax error carrying the offending token's origin, or "but got EOF" if
// the cursor is past the end (§4.2).
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		if tok.Kind == token.EOF {
			return token.Token{}, errors.NewSyntaxError(tok.Origin, "expected '%s', but got EOF", kind)
		}
		return token.Token{}, errors.NewSyntaxError(tok.Origin, "expected '%s', but got '%s'", kind, tok.Kind)
	}
	return p.advance(), nil
}
