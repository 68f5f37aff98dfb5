package statement

import (
	"reflect"
	"testing"
)

func TestTokenizeQuotedComma(t *testing.T) {
	got := Tokenize("a,\"b,c\",d\ne,f,g")
	want := [][]string{
		{"a", "b,c", "d"},
		{"e", "f", "g"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestTokenizeEscapedQuote(t *testing.T) {
	got := Tokenize(`"He said ""hi"""`)
	want := [][]string{{`He said "hi"`}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestTokenizeLineEndings(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"crlf", "a,b\r\nc,d"},
		{"lf", "a,b\nc,d"},
		{"cr", "a,b\rc,d"},
	}
	want := [][]string{{"a", "b"}, {"c", "d"}}
	for _, tc := range cases {
		if got := Tokenize(tc.in); !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: got %#v, want %#v", tc.name, got, want)
		}
	}
}

func TestTokenizeNewlineInsideQuotes(t *testing.T) {
	got := Tokenize("a,\"line1\nline2\",b")
	want := [][]string{{"a", "line1\nline2", "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestTokenizeRaggedRows(t *testing.T) {
	got := Tokenize("a,b,c\nd\ne,f")
	want := [][]string{{"a", "b", "c"}, {"d"}, {"e", "f"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rows not ragged: got %#v, want %#v", got, want)
	}
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	// Best effort: the rest of the input becomes cell content, no error.
	got := Tokenize("a,\"unterminated,still same cell\nnext line")
	want := [][]string{{"a", "unterminated,still same cell\nnext line"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestTokenizeEmptyCells(t *testing.T) {
	got := Tokenize("a,,c")
	want := [][]string{{"a", "", "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	if got := Tokenize(""); len(got) != 0 {
		t.Fatalf("expected empty grid, got %#v", got)
	}
}

func TestTokenizeUTF8(t *testing.T) {
	got := Tokenize("Njũgũna,Kamau\nWairimũ,Ōtieno")
	want := [][]string{{"Njũgũna", "Kamau"}, {"Wairimũ", "Ōtieno"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	in := "a,\"b,c\",d\r\ne,\"f\"\"g\",h"
	first := Tokenize(in)
	second := Tokenize(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("tokenizer not idempotent")
	}
}
