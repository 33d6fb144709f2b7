package token

import "testing"

func collect(t *testing.T, s *Scanner) []Token {
	t.Helper()
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestScanner_Braces(t *testing.T) {
	toks := collect(t, New([]byte("{}")))
	if len(toks) != 3 || toks[0].Type != OpenBrace || toks[1].Type != CloseBrace || toks[2].Type != EOF {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestScanner_ControlWordWithParam(t *testing.T) {
	toks := collect(t, New([]byte(`\b1 bold`)))
	if toks[0].Type != Control || toks[0].Raw != `\b1` {
		t.Fatalf("want control \\b1, got %+v", toks[0])
	}
	word, param, has := toks[0].Word()
	if word != `\b` || param != 1 || !has {
		t.Fatalf("Word() = %q %d %v", word, param, has)
	}
	if toks[1].Type != Character || toks[1].Ch != 'b' {
		t.Fatalf("delimiter space should be consumed, not emitted; got %+v", toks[1])
	}
}

func TestScanner_ControlWordNoParam(t *testing.T) {
	toks := collect(t, New([]byte(`\par`)))
	word, _, has := toks[0].Word()
	if word != `\par` || has {
		t.Fatalf("Word() = %q, %v", word, has)
	}
}

func TestScanner_ControlWordNegativeParam(t *testing.T) {
	toks := collect(t, New([]byte(`\li-240`)))
	word, param, has := toks[0].Word()
	if word != `\li` || param != -240 || !has {
		t.Fatalf("Word() = %q %d %v", word, param, has)
	}
}

func TestScanner_ControlSymbol(t *testing.T) {
	toks := collect(t, New([]byte(`\*\~\\`)))
	wantRaw := []string{`\*`, `\~`, `\\`}
	for i, want := range wantRaw {
		if toks[i].Raw != want {
			t.Fatalf("token %d: want %q, got %q", i, want, toks[i].Raw)
		}
	}
}

func TestScanner_HexEscape(t *testing.T) {
	toks := collect(t, New([]byte(`\'e9`)))
	word, param, has := toks[0].Word()
	if word != `\'` || param != 0xe9 || !has {
		t.Fatalf("Word() = %q %x %v", word, param, has)
	}
}

func TestScanner_HexEscapeSingleDigit(t *testing.T) {
	// only one hex digit follows before a non-hex byte
	toks := collect(t, New([]byte(`\'ag`)))
	if toks[0].Raw != `\'a` {
		t.Fatalf("want \\'a, got %q", toks[0].Raw)
	}
}

func TestScanner_Character(t *testing.T) {
	toks := collect(t, New([]byte("hi")))
	if toks[0].Ch != 'h' || toks[1].Ch != 'i' {
		t.Fatalf("unexpected characters: %+v", toks)
	}
}

func TestScanner_UnescapedBackslashAtEOF(t *testing.T) {
	s := New([]byte(`\`))
	if _, err := s.Next(); err == nil {
		t.Fatal("expected error for trailing unescaped backslash")
	}
}

func TestScanner_UnescapedBackslashBeforeSpace(t *testing.T) {
	s := New([]byte("\\ text"))
	if _, err := s.Next(); err == nil {
		t.Fatal("expected error for backslash followed by whitespace")
	}
}

func TestScanner_Deterministic(t *testing.T) {
	buf := []byte(`{\b hello}`)
	s1 := New(buf)
	s2 := New(buf)
	for i := 0; ; i++ {
		t1, err1 := s1.Next()
		t2, err2 := s2.Next()
		if err1 != err2 || t1 != t2 {
			t.Fatalf("scan %d diverged: (%+v,%v) vs (%+v,%v)", i, t1, err1, t2, err2)
		}
		if t1.Type == EOF {
			break
		}
	}
}
