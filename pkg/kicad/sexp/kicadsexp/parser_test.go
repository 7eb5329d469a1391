package kicadsexp

import (
	"strings"
	"testing"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr string
	}{
		{name: "single list", input: "(layer F.Cu)", want: []string{"(layer F.Cu)"}},
		{name: "nested", input: `(pad "1" smd (at 1 -2))`, want: []string{"(pad 1 smd (at 1 -2))"}},
		{name: "several top level", input: "(a) b (c d)", want: []string{"(a)", "b", "(c d)"}},
		{name: "empty list", input: "()", want: []string{"()"}},
		{name: "escapes", input: `(descr "a\"b\nc")`, want: []string{"(descr a\"b\nc)"}},
		{name: "empty input", input: "  \n ", want: nil},
		{name: "unclosed", input: "(a (b)", wantErr: "unclosed"},
		{name: "stray close", input: "(a))", wantErr: "unexpected ')'"},
		{name: "unterminated string", input: `(a "b`, wantErr: "1:4: unexpected EOF in string"},
		{name: "position of stray close", input: "(a\n  ))", wantErr: "2:4: unexpected ')'"},
		{name: "position of unclosed list", input: "(a\n (b)", wantErr: "opened at 1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParseString(%q) error = %v, want %q", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseString(%q) unexpected error: %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseString(%q) returned %d expressions, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].String() != tt.want[i] {
					t.Errorf("expr %d = %q, want %q", i, got[i].String(), tt.want[i])
				}
			}
		})
	}
}

func TestParseDeepNesting(t *testing.T) {
	depth := 10000
	input := strings.Repeat("(x ", depth) + strings.Repeat(")", depth)

	got, err := ParseString(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d expressions, want 1", len(got))
	}

	n := 0
	for s := got[0]; s != nil && !s.IsLeaf(); {
		n++
		l := s.(*List)
		if l.Len() < 2 {
			break
		}
		s = l.Get(1)
	}
	if n != depth {
		t.Errorf("depth = %d, want %d", n, depth)
	}
}
