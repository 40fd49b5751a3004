package hfstol

import (
	"reflect"
	"testing"
)

// buildEncoder constructs an encoder directly from a list of symbol
// strings (numbered from 1; 0 stays epsilon), without going through the
// binary alphabet parser, so tokenizer behavior can be tested in
// isolation.
func buildEncoder(t *testing.T, syms ...string) *encoder {
	t.Helper()
	a := &alphabet{
		symbols: append([]string{""}, syms...),
		flags:   make([]flagDiacriticOperation, len(syms)+1),
	}
	return newEncoder(a, SymbolNumber(len(a.symbols)))
}

func tokenizeAll(t *testing.T, e *encoder, input string) []SymbolNumber {
	t.Helper()
	pos := 0
	var out []SymbolNumber
	for pos < len(input) {
		s := e.findKey(input, &pos)
		out = append(out, s)
		if s == noSymbol {
			break
		}
	}
	return out
}

func TestTokenizeLongestMatch(t *testing.T) {
	// a=1, ab=2, abc=3
	e := buildEncoder(t, "a", "ab", "abc")

	tests := []struct {
		input string
		want  []SymbolNumber
	}{
		{"abcd", []SymbolNumber{3, noSymbol}},
		{"abd", []SymbolNumber{2, noSymbol}},
		{"ad", []SymbolNumber{1, noSymbol}},
		{"abc", []SymbolNumber{3}},
	}
	for _, tc := range tests {
		got := tokenizeAll(t, e, tc.input)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestASCIIShadowing(t *testing.T) {
	// Symbol "x" alone would fast-path through ascii_symbols['x'].
	e := buildEncoder(t, "x")
	if e.asciiSymbols['x'] == noSymbol {
		t.Fatal("single-byte symbol x must populate the ASCII fast path")
	}

	// Adding a longer symbol starting with the same byte must shadow it.
	e2 := buildEncoder(t, "x", "xy")
	if e2.asciiSymbols['x'] != noSymbol {
		t.Fatal("a multi-byte symbol starting with x must clear the ASCII fast path for x")
	}
	// But the trie must still find the single-byte symbol when "xy" doesn't match.
	pos := 0
	got := e2.findKey("xz", &pos)
	if got != 1 { // "x" was inserted first -> symbol number 1
		t.Fatalf("findKey(%q) = %v, want the single-byte symbol (1)", "xz", got)
	}
	if pos != 1 {
		t.Fatalf("pos after matching the single-byte symbol = %d, want 1", pos)
	}

	pos = 0
	got = e2.findKey("xy", &pos)
	if got != 2 {
		t.Fatalf("findKey(%q) = %v, want the longer symbol (2)", "xy", got)
	}
	if pos != 2 {
		t.Fatalf("pos after matching the longer symbol = %d, want 2", pos)
	}
}

func TestTokenizeFailureAdvancesByOneByte(t *testing.T) {
	e := buildEncoder(t, "a")
	pos := 0
	s := e.findKey("z", &pos)
	if s != noSymbol {
		t.Fatalf("findKey on an unknown byte = %v, want noSymbol", s)
	}
	if pos != 1 {
		t.Fatalf("pos after a tokenization failure = %d, want 1 (advance by one byte)", pos)
	}
}

func TestTokenizeWholeStringFailure(t *testing.T) {
	e := buildEncoder(t, "a", "b")
	_, err := e.tokenize("abc")
	if err != ErrTokenizationFailed {
		t.Fatalf("tokenize(%q) error = %v, want ErrTokenizationFailed", "abc", err)
	}
}
