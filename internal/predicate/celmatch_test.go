package predicate

import "testing"

func TestEmptyExpressionMatchesNothing(t *testing.T) {
	m, err := Compile("")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if m.Match(1, []byte("anything")) {
		t.Fatalf("disabled matcher must not match")
	}
}

func TestTextMatch(t *testing.T) {
	m, err := Compile(`text.contains("retry")`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !m.Match(1, []byte("please retry this")) {
		t.Fatalf("expected match")
	}
	if m.Match(2, []byte("fresh upload")) {
		t.Fatalf("unexpected match")
	}
}

func TestJSONFieldMatch(t *testing.T) {
	m, err := Compile(`json.kind == "ping"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !m.Match(1, []byte(`{"kind":"ping","n":1}`)) {
		t.Fatalf("expected json match")
	}
	if m.Match(2, []byte(`{"kind":"upload"}`)) {
		t.Fatalf("unexpected json match")
	}
	// Not JSON at all: evaluation errors count as no-match.
	if m.Match(3, []byte("plain text")) {
		t.Fatalf("non-JSON payload must not match a json expression")
	}
}

func TestSequenceAndSize(t *testing.T) {
	m, err := Compile(`sequence < 10 && size > 2`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !m.Match(5, []byte("abcd")) {
		t.Fatalf("expected match")
	}
	if m.Match(50, []byte("abcd")) {
		t.Fatalf("sequence bound ignored")
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile(`text ==`); err == nil {
		t.Fatalf("syntax error must fail compile")
	}
	if _, err := Compile(`nosuchvar == 1`); err == nil {
		t.Fatalf("unknown variable must fail check")
	}
}
