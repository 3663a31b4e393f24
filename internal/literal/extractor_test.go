package literal

import (
	"reflect"
	"testing"

	"github.com/coregx/rxnfa/syntax"
)

func mustParse(t *testing.T, pattern string) *syntax.Node {
	t.Helper()
	n, err := syntax.Parse(pattern, false)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return n
}

func TestExtractConcatLiteralRun(t *testing.T) {
	n := mustParse(t, "abc")
	lits, ok := Extract(n)
	if !ok {
		t.Fatal("expected required literal for a plain literal concat")
	}
	if !reflect.DeepEqual(lits, []string{"abc"}) {
		t.Errorf("got %v, want [abc]", lits)
	}
}

func TestExtractUnionOfLiterals(t *testing.T) {
	n := mustParse(t, "cat|dog")
	lits, ok := Extract(n)
	if !ok {
		t.Fatal("expected required literal set for a union of literals")
	}
	want := map[string]bool{"cat": true, "dog": true}
	got := map[string]bool{}
	for _, l := range lits {
		got[l] = true
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractUnionWithUnanchoredBranchIsNotRequired(t *testing.T) {
	n := mustParse(t, "cat|.*")
	if _, ok := Extract(n); ok {
		t.Error("a union with an unbounded branch must not yield a required literal")
	}
}

func TestExtractLookaroundIsTransparent(t *testing.T) {
	n := mustParse(t, "ab(?=c)de")
	lits, ok := Extract(n)
	if !ok {
		t.Fatal("expected required literal around a zero-width lookahead")
	}
	if !reflect.DeepEqual(lits, []string{"abde"}) {
		t.Errorf("got %v, want [abde]", lits)
	}
}

func TestExtractPlainKleeneIsNotRequired(t *testing.T) {
	n := mustParse(t, "a*")
	if _, ok := Extract(n); ok {
		t.Error("a* can match the empty string, so it has no required literal")
	}
}

func TestExtractPlusReusesInnerLiteral(t *testing.T) {
	n := mustParse(t, "ab+")
	lits, ok := Extract(n)
	if !ok {
		t.Fatal("b+ requires at least one occurrence of its operand")
	}
	// 'a' and the plus operand 'b' are each individually required, so both
	// survive as separate runs.
	if !reflect.DeepEqual(lits, []string{"a", "b"}) {
		t.Errorf("got %v, want [a b]", lits)
	}
}

func TestExtractRepeatAtLeastOne(t *testing.T) {
	n := mustParse(t, "x{2,}")
	lits, ok := Extract(n)
	if !ok || !reflect.DeepEqual(lits, []string{"x"}) {
		t.Errorf("x{2,} should require literal x, got %v ok=%v", lits, ok)
	}
}

func TestExtractCharClassIsNotRequired(t *testing.T) {
	n := mustParse(t, "[abc]")
	if _, ok := Extract(n); ok {
		t.Error("a bare character class has no single required literal")
	}
}

func TestBuildAndMayMatch(t *testing.T) {
	pf, ok := Build([]string{"abc", "xyz"})
	if !ok {
		t.Fatal("expected Build to succeed with a non-empty literal set")
	}
	if !pf.MayMatch([]byte("xxabcxx")) {
		t.Error("MayMatch should be true when a literal is present")
	}
	if pf.MayMatch([]byte("nothing here")) {
		t.Error("MayMatch should be false when no literal is present")
	}
}

func TestBuildEmptyLiteralsSkipsPrefilter(t *testing.T) {
	if _, ok := Build(nil); ok {
		t.Error("Build with no literals should report no usable prefilter")
	}
}
