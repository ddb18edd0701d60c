// Package token defines the lexical tokens produced by the scanner and
// consumed by the parser, along with the source-position bookkeeping shared
// by every later stage of the pipeline.
package token

import "fmt"

// Origin is a 1-based (line, column) source position attached to every
// token and to every AST node that can be the subject of a diagnostic.
type Origin struct {
	Line   int
	Column int
}

func (o Origin) String() string {
	return fmt.Sprintf("%d:%d", o.Line, o.Column)
}

// Kind identifies the lexical category of a Token (§3). Binary/unary '+'
// and '-' are disambiguated by the scanner, so the distinction lives here
// at the token level rather than being re-derived by the parser.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	Number // numeric literal, value in Token.NumberValue
	Id     // identifier, name in Token.Name

	LeftParen
	RightParen
	LeftBrace
	RightBrace

	BinOp  // +, -, *, /  — operator in Token.Op
	UnOp   // unary +, unary - (neg) — operator in Token.Op
	CompOp // <, <=, >, >=, ==, != — operator in Token.Op

	Assign
	Comma
	Semicolon

	KeywordIf
	KeywordElse
	KeywordWhile
	KeywordFunc
	KeywordVar
	KeywordReturn
)

var kindNames = map[Kind]string{
	ILLEGAL:       "<illegal>",
	EOF:           "<eof>",
	Number:        "number",
	Id:            "identifier",
	LeftParen:     "(",
	RightParen:    ")",
	LeftBrace:     "{",
	RightBrace:    "}",
	BinOp:         "binary operator",
	UnOp:          "unary operator",
	CompOp:        "comparison operator",
	Assign:        "=",
	Comma:         ",",
	Semicolon:     ";",
	KeywordIf:     "if",
	KeywordElse:   "else",
	KeywordWhile:  "while",
	KeywordFunc:   "func",
	KeywordVar:    "var",
	KeywordReturn: "return",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "<unknown>"
}

// Op identifies a specific operator, shared by BinOp/UnOp/CompOp tokens and
// by the matching AST nodes.
type Op int

const (
	OpNone Op = iota

	// Binary arithmetic (BinOp).
	OpAdd
	OpSub
	OpMul
	OpDiv

	// Unary (UnOp).
	OpUnaryPlus
	OpNeg

	// Comparison (CompOp).
	OpLess
	OpLessEquals
	OpGreater
	OpGreaterEquals
	OpEquals
	OpNotEquals
)

var opSymbols = map[Op]string{
	OpAdd:            "+",
	OpSub:            "-",
	OpMul:            "*",
	OpDiv:            "/",
	OpUnaryPlus:      "+",
	OpNeg:            "-",
	OpLess:           "<",
	OpLessEquals:     "<=",
	OpGreater:        ">",
	OpGreaterEquals:  ">=",
	OpEquals:         "==",
	OpNotEquals:      "!=",
}

func (op Op) String() string {
	if sym, ok := opSymbols[op]; ok {
		return sym
	}
	return "<unknown op>"
}

// NegatedComparison returns the complementary comparison operator used to
// lower a negated conditional jump (§4.4): < ↔ >=, <= ↔ >, == ↔ !=.
func (op Op) NegatedComparison() Op {
	switch op {
	case OpLess:
		return OpGreaterEquals
	case OpLessEquals:
		return OpGreater
	case OpGreater:
		return OpLessEquals
	case OpGreaterEquals:
		return OpLess
	case OpEquals:
		return OpNotEquals
	case OpNotEquals:
		return OpEquals
	default:
		return OpNone
	}
}

// MaxIdentifierLength is the hard truncation point for identifiers (§4.1,
// §8). Overflow is truncated, not rejected — see DESIGN.md for the
// corresponding Open Question decision.
const MaxIdentifierLength = 256

// keywords maps source spelling to the keyword Kind it produces.
var keywords = map[string]Kind{
	"if":     KeywordIf,
	"else":   KeywordElse,
	"while":  KeywordWhile,
	"func":   KeywordFunc,
	"var":    KeywordVar,
	"return": KeywordReturn,
}

// LookupIdentifier returns the keyword Kind for name, or Id if name is not
// a keyword.
func LookupIdentifier(name string) Kind {
	if kind, ok := keywords[name]; ok {
		return kind
	}
	return Id
}

// Token is a single lexical token with its origin and payload. Only the
// fields relevant to Kind are populated.
type Token struct {
	Kind   Kind
	Op     Op // valid when Kind == BinOp, UnOp or CompOp
	Origin Origin

	Literal     string  // raw source text, used for diagnostics
	NumberValue float64 // valid when Kind == Number
	Name        string  // valid when Kind == Id
}

func (t Token) String() string {
	switch t.Kind {
	case BinOp, UnOp, CompOp:
		return fmt.Sprintf("%s(%s)@%s", t.Kind, t.Op, t.Origin)
	case Number:
		return fmt.Sprintf("number(%v)@%s", t.NumberValue, t.Origin)
	case Id:
		return fmt.Sprintf("identifier(%q)@%s", t.Name, t.Origin)
	default:
		return fmt.Sprintf("%s@%s", t.Kind, t.Origin)
	}
}

// MakesNextSignBinary reports whether this token, when immediately
// preceding a '+'/'-', makes that operator binary rather than unary
// (§4.1). Only a number literal, an identifier, or a closing round
// parenthesis qualify; in particular a '}' does not.
func (t Token) MakesNextSignBinary() bool {
	switch t.Kind {
	case Number, Id, RightParen:
		return true
	default:
		return false
	}
}
