package literal

import "github.com/coregx/ahocorasick"

// Prefilter rejects haystacks that cannot possibly contain a match, without
// running the NFA at all. It is built from a set of literals that Extract
// proved are each individually required by some reachable path through the
// pattern, so failing to find any of them in the haystack rules out a match
// entirely (mirrors the Aho-Corasick literal-alternation prefilter the
// ahocorasick package is built for).
type Prefilter struct {
	auto *ahocorasick.Automaton
}

// Build compiles lits into a Prefilter. It returns (nil, false) if lits is
// empty or the automaton fails to build, signaling that no prefilter should
// be applied (the caller must always run the full scan in that case).
func Build(lits []string) (*Prefilter, bool) {
	if len(lits) == 0 {
		return nil, false
	}
	b := ahocorasick.NewBuilder()
	for _, l := range lits {
		b.AddPattern([]byte(l))
	}
	auto, err := b.Build()
	if err != nil {
		return nil, false
	}
	return &Prefilter{auto: auto}, true
}

// MayMatch reports whether haystack could contain a match of the pattern
// the Prefilter was built from. A false result is conclusive: no scan is
// needed. A true result means the scan must still run to confirm.
func (p *Prefilter) MayMatch(haystack []byte) bool {
	if p == nil {
		return true
	}
	return p.auto.IsMatch(haystack)
}
