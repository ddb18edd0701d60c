package scanner

import (
	"testing"

	"github.com/nvmlang/nvmc/frontend/token"
)

func kinds(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := ScanAll(src)
	if err != nil {
		t.Fatalf("ScanAll(%q): %v", src, err)
	}
	return toks
}

func TestSignDisambiguation(t *testing.T) {
	cases := []struct {
		src      string
		wantKind token.Kind
		wantOp   token.Op
	}{
		{"1 + 2", token.BinOp, token.OpAdd},
		{"x + 2", token.BinOp, token.OpAdd},
		{") + 2", token.BinOp, token.OpAdd},
		{"} + 2", token.UnOp, token.OpUnaryPlus},
		{", + 2", token.UnOp, token.OpUnaryPlus},
		{"; + 2", token.UnOp, token.OpUnaryPlus},
		{"+2", token.UnOp, token.OpUnaryPlus},
		{"* + 2", token.UnOp, token.OpUnaryPlus},
		{"1 - 2", token.BinOp, token.OpSub},
		{"-2", token.UnOp, token.OpNeg},
	}
	for _, c := range cases {
		toks := kinds(t, c.src)
		// find the '+'/'-' token: it's the last BinOp/UnOp token, the one right before the trailing number.
		var found *token.Token
		for i := range toks {
			if toks[i].Kind == token.BinOp || toks[i].Kind == token.UnOp {
				found = &toks[i]
			}
		}
		if found == nil {
			t.Fatalf("%q: no +/- token found in %v", c.src, toks)
		}
		if found.Kind != c.wantKind || found.Op != c.wantOp {
			t.Errorf("%q: got kind=%v op=%v, want kind=%v op=%v", c.src, found.Kind, found.Op, c.wantKind, c.wantOp)
		}
	}
}

func TestNumberLiteral(t *testing.T) {
	cases := map[string]float64{
		"42":       42,
		"3.14":     3.14,
		"1e10":     1e10,
		"1.5e-3":   1.5e-3,
		"2E+4":     2e4,
		".5":       0.5,
	}
	for src, want := range cases {
		toks := kinds(t, src)
		if toks[0].Kind != token.Number {
			t.Fatalf("%q: expected Number, got %v", src, toks[0].Kind)
		}
		if toks[0].NumberValue != want {
			t.Errorf("%q: got %v, want %v", src, toks[0].NumberValue, want)
		}
	}
}

func TestIdentifierTruncation(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	toks := kinds(t, string(long))
	if toks[0].Kind != token.Id {
		t.Fatalf("expected identifier, got %v", toks[0].Kind)
	}
	if len(toks[0].Name) != token.MaxIdentifierLength {
		t.Errorf("got name length %d, want %d", len(toks[0].Name), token.MaxIdentifierLength)
	}
	if len(toks[0].Literal) != 300 {
		t.Errorf("literal should retain full length, got %d", len(toks[0].Literal))
	}
}

func TestKeywords(t *testing.T) {
	src := "if else while func var return notakeyword"
	toks := kinds(t, src)
	want := []token.Kind{
		token.KeywordIf, token.KeywordElse, token.KeywordWhile,
		token.KeywordFunc, token.KeywordVar, token.KeywordReturn, token.Id,
	}
	for i, w := range want {
		if toks[i].Kind != w {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, w)
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	cases := map[string]token.Op{
		"<":  token.OpLess,
		"<=": token.OpLessEquals,
		">":  token.OpGreater,
		">=": token.OpGreaterEquals,
		"==": token.OpEquals,
		"!=": token.OpNotEquals,
	}
	for src, want := range cases {
		toks := kinds(t, src)
		if toks[0].Kind != token.CompOp || toks[0].Op != want {
			t.Errorf("%q: got kind=%v op=%v, want CompOp/%v", src, toks[0].Kind, toks[0].Op, want)
		}
	}
	toks := kinds(t, "=")
	if toks[0].Kind != token.Assign {
		t.Errorf("'=' should be Assign, got %v", toks[0].Kind)
	}
}

func TestIllegalCharacter(t *testing.T) {
	if _, err := ScanAll("@"); err == nil {
		t.Fatal("expected error for illegal character")
	}
}

func TestLineColumnTracking(t *testing.T) {
	toks := kinds(t, "x\n  y")
	if toks[0].Origin.Line != 1 {
		t.Errorf("x: got line %d, want 1", toks[0].Origin.Line)
	}
	if toks[1].Origin.Line != 2 || toks[1].Origin.Column != 3 {
		t.Errorf("y: got %v, want line 2 column 3", toks[1].Origin)
	}
}
