package syntax

import "testing"

func mustParse(t *testing.T, pattern string, reverse bool) *Node {
	t.Helper()
	n, err := Parse(pattern, reverse)
	if err != nil {
		t.Fatalf("Parse(%q, %v): unexpected error: %v", pattern, reverse, err)
	}
	return n
}

func TestParseBasicShapes(t *testing.T) {
	tests := []struct {
		pattern  string
		wantKind NodeKind
	}{
		{"a|bc", NodeUnion},
		{"^abc$", NodeAnchored},
		{"ab", NodeConcat},
		{"a*", NodeKleene},
		{"a+", NodePlus},
		{"a?", NodeOpt},
		{"a{2,3}", NodeRepeat},
		{"(?=a)", NodeLookaround},
		{"(a)", NodeGroup},
		{".", NodeWildcard},
		{"\\d", NodeSpecialClass},
		{"[a-c]", NodeCharClass},
	}
	for _, tt := range tests {
		n := mustParse(t, tt.pattern, false)
		if n.Kind != tt.wantKind {
			t.Errorf("Parse(%q).Kind = %d, want %d", tt.pattern, n.Kind, tt.wantKind)
		}
	}
}

func TestParseUnionBranches(t *testing.T) {
	n := mustParse(t, "a|bc|d", false)
	if n.Kind != NodeUnion || len(n.Items) != 3 {
		t.Fatalf("unexpected union shape: %+v", n)
	}
}

func TestParseAnchors(t *testing.T) {
	n := mustParse(t, "^abc$", false)
	if !n.Start || !n.End {
		t.Fatalf("expected both anchors set, got %+v", n)
	}
	n = mustParse(t, "^abc", false)
	if !n.Start || n.End {
		t.Fatalf("expected only start anchor, got %+v", n)
	}
}

func TestParseRepeatBounds(t *testing.T) {
	tests := []struct {
		pattern  string
		wantKind RepeatKind
		wantN    int
		wantM    int
	}{
		{"a{2}", RepeatExact, 2, 0},
		{"a{2,}", RepeatAtLeast, 2, 0},
		{"a{,5}", RepeatAtMost, 0, 5},
		{"a{2,5}", RepeatBetween, 2, 5},
	}
	for _, tt := range tests {
		n := mustParse(t, tt.pattern, false)
		if n.Kind != NodeRepeat {
			t.Fatalf("Parse(%q) did not produce NodeRepeat: %+v", tt.pattern, n)
		}
		if n.RepeatKind != tt.wantKind || n.RepeatN != tt.wantN || n.RepeatM != tt.wantM {
			t.Errorf("Parse(%q) = {%d %d %d}, want {%d %d %d}",
				tt.pattern, n.RepeatKind, n.RepeatN, n.RepeatM, tt.wantKind, tt.wantN, tt.wantM)
		}
	}
}

func TestParseRepeatBoundOrderError(t *testing.T) {
	if _, err := Parse("a{5,2}", false); err == nil {
		t.Fatal("expected error for inverted repetition bounds")
	}
}

func TestParseHexEscapes(t *testing.T) {
	n := mustParse(t, `\x41`, false)
	if n.Kind != NodeAsciiCp || n.Rune != 'A' {
		t.Fatalf("\\x41 = %+v, want AsciiCp 'A'", n)
	}

	n = mustParse(t, "\\u0041", false)
	if n.Kind != NodeUnicodeCp || n.Rune != 'A' {
		t.Fatalf("\\u0041 = %+v, want UnicodeCp 'A'", n)
	}

	// A fifth upper-hex digit is consumed as part of the escape.
	n = mustParse(t, "\\u0041F", false)
	if n.Kind != NodeUnicodeCp || n.Rune != 0x0041F || n.Hex != "0041F" {
		t.Fatalf("\\u0041F = %+v, want UnicodeCp U+0041F", n)
	}

	// A fifth digit outside [0-9A-F] is not part of the escape.
	n = mustParse(t, "\\u0041g", false)
	if n.Kind != NodeConcat || len(n.Items) != 2 {
		t.Fatalf("\\u0041g = %+v, want Concat(UnicodeCp, Char)", n)
	}
	if n.Items[0].Kind != NodeUnicodeCp || n.Items[0].Rune != 'A' {
		t.Errorf("\\u0041g first factor = %+v, want UnicodeCp 'A'", n.Items[0])
	}
	if n.Items[1].Kind != NodeChar || n.Items[1].Rune != 'g' {
		t.Errorf("\\u0041g second factor = %+v, want literal 'g'", n.Items[1])
	}
}

func TestParseHexEscapeErrors(t *testing.T) {
	badPatterns := []string{`\xG1`, `\x1`, `\u123`, `\xgg`}
	for _, p := range badPatterns {
		if _, err := Parse(p, false); err == nil {
			t.Errorf("Parse(%q): expected error, got none", p)
		}
	}
}

func TestParseCharClassRanges(t *testing.T) {
	n := mustParse(t, "[a-cx]", false)
	if n.Kind != NodeCharClass || len(n.ClassItems) != 2 {
		t.Fatalf("unexpected char class shape: %+v", n)
	}
	if n.ClassItems[0].Kind != ClassRange || n.ClassItems[0].Lo != 'a' || n.ClassItems[0].Hi != 'c' {
		t.Errorf("range item = %+v", n.ClassItems[0])
	}
	if n.ClassItems[1].Kind != ClassAtom || n.ClassItems[1].Lo != 'x' {
		t.Errorf("atom item = %+v", n.ClassItems[1])
	}
}

func TestParseCharClassNegation(t *testing.T) {
	n := mustParse(t, "[^abc]", false)
	if !n.Negated {
		t.Fatalf("expected negated class, got %+v", n)
	}
}

func TestParseCharClassDashErrors(t *testing.T) {
	badPatterns := []string{"[-a]", "[a-]", "[]", "[a-\\d]"}
	for _, p := range badPatterns {
		if _, err := Parse(p, false); err == nil {
			t.Errorf("Parse(%q): expected error, got none", p)
		}
	}
}

func TestParseLookaroundDirection(t *testing.T) {
	tests := []struct {
		pattern string
		dir     LookDirection
		pol     LookPolarity
	}{
		{"(?=a)", LookAhead, LookPositive},
		{"(?!a)", LookAhead, LookNegative},
		{"(?<=a)", LookBehind, LookPositive},
		{"(?<!a)", LookBehind, LookNegative},
	}
	for _, tt := range tests {
		n := mustParse(t, tt.pattern, false)
		if n.Direction != tt.dir || n.Polarity != tt.pol {
			t.Errorf("Parse(%q) = {dir:%d pol:%d}, want {dir:%d pol:%d}",
				tt.pattern, n.Direction, n.Polarity, tt.dir, tt.pol)
		}
	}
}

func TestParseReverseSwapsConcatOrder(t *testing.T) {
	fwd := mustParse(t, "abc", false)
	rev := mustParse(t, "abc", true)

	if fwd.Kind != NodeConcat || rev.Kind != NodeConcat || len(fwd.Items) != 3 || len(rev.Items) != 3 {
		t.Fatalf("unexpected shapes: fwd=%+v rev=%+v", fwd, rev)
	}
	for i := range fwd.Items {
		if fwd.Items[i].Rune != rev.Items[len(rev.Items)-1-i].Rune {
			t.Errorf("reverse concat order mismatch at %d", i)
		}
	}
}

func TestParseReverseSwapsAnchors(t *testing.T) {
	n := mustParse(t, "^abc$", true)
	// forward: Start=true End=true; swap is a no-op when symmetric, so use
	// an asymmetric pattern.
	_ = n

	n2 := mustParse(t, "^abc", true)
	if n2.Start || !n2.End {
		t.Fatalf("expected reverse mode to swap ^ to $, got %+v", n2)
	}
}

func TestParseReverseSwapsLookaroundDirection(t *testing.T) {
	tests := []struct {
		pattern string
		wantDir LookDirection
	}{
		{"(?=a)", LookBehind},
		{"(?!a)", LookBehind},
		{"(?<=a)", LookAhead},
		{"(?<!a)", LookAhead},
	}
	for _, tt := range tests {
		n := mustParse(t, tt.pattern, true)
		if n.Direction != tt.wantDir {
			t.Errorf("Parse(%q, reverse=true).Direction = %d, want %d", tt.pattern, n.Direction, tt.wantDir)
		}
	}
}

func TestParseReverseLookaroundInnerReversed(t *testing.T) {
	// Reverse mode applies to the assertion's content too: a reversed tree's
	// lookarounds must describe reversed text, since the runtime hands their
	// nested program a window of the string the enclosing program scans.
	n := mustParse(t, "(?=ab)", true)
	if n.Direction != LookBehind {
		t.Fatalf("expected reverse mode to flip lookahead to lookbehind, got %+v", n)
	}
	concat := n.Inner
	if concat.Kind != NodeConcat || len(concat.Items) != 2 {
		t.Fatalf("unexpected inner concat shape: %+v", concat)
	}
	if concat.Items[0].Rune != 'b' || concat.Items[1].Rune != 'a' {
		t.Errorf("expected reversed order b,a inside lookaround, got %q,%q",
			concat.Items[0].Rune, concat.Items[1].Rune)
	}
}

func TestParseLazyMarkerIgnored(t *testing.T) {
	n := mustParse(t, "a*?", false)
	if n.Kind != NodeKleene || !n.Lazy {
		t.Fatalf("expected lazy Kleene node, got %+v", n)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	badPatterns := []string{
		"a|",
		"(abc",
		"abc)",
		"a**", // bare '*' cannot start an atom
		"a{",
		"a{,}",
		"[abc",
		`\`,
		"(?@abc)",
	}
	for _, p := range badPatterns {
		if _, err := Parse(p, false); err == nil {
			t.Errorf("Parse(%q): expected error, got none", p)
		} else if _, ok := err.(*SyntaxError); !ok {
			t.Errorf("Parse(%q): error %v is not *SyntaxError", p, err)
		}
	}
}

func TestParseEmptyPatternIsSyntaxError(t *testing.T) {
	if _, err := Parse("", false); err == nil {
		t.Fatal("expected error for empty pattern (Concat requires >=1 factor)")
	}
}
