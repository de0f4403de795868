package lexer

import "testing"

func TestLexIdentifiersAndKeywords(t *testing.T) {
	toks, err := Lex("struct Light fooBar _x2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []struct {
		typ  TokenType
		text string
	}{
		{TokenKeyword, "struct"},
		{TokenIdentifier, "Light"},
		{TokenIdentifier, "fooBar"},
		{TokenIdentifier, "_x2"},
		{TokenEOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Text != w.text {
			t.Errorf("token %d: got {%v %q}, want {%v %q}", i, toks[i].Type, toks[i].Text, w.typ, w.text)
		}
	}
}

func TestLexNumberLiterals(t *testing.T) {
	toks, err := Lex("42 7u 3.14 2.0f 1e3 5.5e-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != TokenIntLiteral || toks[0].Int != 42 {
		t.Errorf("got %+v, want int 42", toks[0])
	}
	if toks[1].Type != TokenUIntLiteral || toks[1].Int != 7 {
		t.Errorf("got %+v, want uint 7", toks[1])
	}
	if toks[2].Type != TokenFloatLiteral || toks[2].Float != 3.14 {
		t.Errorf("got %+v, want float 3.14", toks[2])
	}
	if toks[3].Type != TokenFloatLiteral || toks[3].Float != 2.0 {
		t.Errorf("got %+v, want float 2.0", toks[3])
	}
	if toks[4].Type != TokenFloatLiteral || toks[4].Float != 1000 {
		t.Errorf("got %+v, want float 1000", toks[4])
	}
	if toks[5].Type != TokenFloatLiteral || toks[5].Float != 0.055 {
		t.Errorf("got %+v, want float 0.055", toks[5])
	}
}

func TestLexBoolLiterals(t *testing.T) {
	toks, err := Lex("true false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != TokenBoolLiteral || toks[0].Bool != true {
		t.Errorf("got %+v, want bool true", toks[0])
	}
	if toks[1].Type != TokenBoolLiteral || toks[1].Bool != false {
		t.Errorf("got %+v, want bool false", toks[1])
	}
}

func TestLexSymbolsLongestMatchFirst(t *testing.T) {
	toks, err := Lex("a += b == c <<= d < e")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantSymbols := []string{"+=", "==", "<<=", "<"}
	var got []string
	for _, tok := range toks {
		if tok.Type == TokenSymbol {
			got = append(got, tok.Text)
		}
	}
	if len(got) != len(wantSymbols) {
		t.Fatalf("got symbols %v, want %v", got, wantSymbols)
	}
	for i := range wantSymbols {
		if got[i] != wantSymbols[i] {
			t.Errorf("symbol %d: got %q, want %q", i, got[i], wantSymbols[i])
		}
	}
}

func TestLexSkipsLineAndBlockComments(t *testing.T) {
	src := "a // a line comment\nb /* a\nblock comment */ c"
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var idents []string
	for _, tok := range toks {
		if tok.Type == TokenIdentifier {
			idents = append(idents, tok.Text)
		}
	}
	want := []string{"a", "b", "c"}
	if len(idents) != len(want) {
		t.Fatalf("got idents %v, want %v", idents, want)
	}
	for i := range want {
		if idents[i] != want[i] {
			t.Errorf("ident %d: got %q, want %q", i, idents[i], want[i])
		}
	}
}

func TestLexTracksLineAndColumn(t *testing.T) {
	toks, err := Lex("a\nb  c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("token a: got line %d col %d, want 1 1", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 2 || toks[1].Column != 1 {
		t.Errorf("token b: got line %d col %d, want 2 1", toks[1].Line, toks[1].Column)
	}
	if toks[2].Line != 2 || toks[2].Column != 4 {
		t.Errorf("token c: got line %d col %d, want 2 4", toks[2].Line, toks[2].Column)
	}
}

func TestLexUnexpectedCharacterReportsPosition(t *testing.T) {
	_, err := Lex("a @ b")
	if err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got error of type %T, want *Error", err)
	}
	if lexErr.Line != 1 || lexErr.Column != 3 {
		t.Errorf("got line %d col %d, want 1 3", lexErr.Line, lexErr.Column)
	}
}
