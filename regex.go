// Package rxnfa compiles a regular expression pattern into a pair of NFA
// programs, one matching forward and one matching the reverse of the
// pattern's language, and uses them together to find every match interval
// in an input: a forward scan locates candidate match ends, a reverse scan
// over the reversed input locates candidate match starts, and every
// (start, end) pair consistent with both is confirmed by an anchored
// replay.
package rxnfa

import (
	"errors"

	"github.com/coregx/rxnfa/internal/literal"
	"github.com/coregx/rxnfa/nfa"
	"github.com/coregx/rxnfa/syntax"
)

// Config controls pattern compilation limits.
type Config struct {
	// MaxRepeatExpansion bounds how many operand copies a single bounded
	// repetition ({n}, {n,}, {,m}, {n,m}) may expand to. Zero means
	// unbounded. Default: 1000.
	MaxRepeatExpansion int

	// EnablePrefilter builds an Aho-Corasick literal prefilter from the
	// pattern when possible, and uses it to reject haystacks that cannot
	// contain a match before running either NFA. Default: true.
	EnablePrefilter bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRepeatExpansion: 1000,
		EnablePrefilter:    true,
	}
}

// Match is a single half-open match interval over codepoint positions:
// the matched text is input[Start:End] when input is indexed by rune.
type Match struct {
	Start, End int
}

// Regex is a compiled pattern: a forward program, a reverse program built
// from the reverse-mode AST of the same pattern, and an optional literal
// prefilter. It is immutable after Compile returns, so a single Regex is
// safe to use concurrently from multiple goroutines — each Scan call
// allocates its own nfa.ExecState values.
type Regex struct {
	forward    *nfa.Program
	reverse    *nfa.Program
	prefilt    *literal.Prefilter
	hasPrefilt bool
}

// Compile parses and compiles pattern using DefaultConfig.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if pattern is invalid. Intended for
// compile-time-constant patterns, mirroring regexp.MustCompile.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// CompileWithConfig parses and compiles pattern under cfg.
func CompileWithConfig(pattern string, cfg Config) (*Regex, error) {
	fwdRoot, err := syntax.Parse(pattern, false)
	if err != nil {
		return nil, err
	}
	revRoot, err := syntax.Parse(pattern, true)
	if err != nil {
		return nil, err
	}

	ccfg := nfa.CompileConfig{MaxRepeatExpansion: cfg.MaxRepeatExpansion}
	fwdProg, err := nfa.CompileWithConfig(fwdRoot, ccfg)
	if err != nil {
		return nil, withPattern(err, pattern)
	}
	revProg, err := nfa.CompileWithConfig(revRoot, ccfg)
	if err != nil {
		return nil, withPattern(err, pattern)
	}

	re := &Regex{forward: fwdProg, reverse: revProg}
	if cfg.EnablePrefilter {
		if lits, ok := literal.Extract(fwdRoot); ok {
			if pf, ok := literal.Build(lits); ok {
				re.prefilt = pf
				re.hasPrefilt = true
			}
		}
	}
	return re, nil
}

// Scan returns every non-empty match interval in input, in ascending order
// of start position (and, for equal starts, ascending end position). A
// zero-length match is reported only for empty input, as (0,0).
func (re *Regex) Scan(input string) []Match {
	runes := []rune(input)

	if len(runes) == 0 {
		if re.acceptsEmpty() {
			return []Match{{Start: 0, End: 0}}
		}
		return nil
	}

	if re.hasPrefilt && !re.prefilt.MayMatch([]byte(input)) {
		return nil
	}

	endBits := re.forward.NewExecState().Scan(runes)
	startBits := re.reverseStartBits(runes)

	var matches []Match
	confirm := re.forward.NewExecState()
	for i, start := range startBits {
		if !start {
			continue
		}
		for j := i; j < len(endBits); j++ {
			if !endBits[j] {
				continue
			}
			if confirm.Process(runes, i, j+1, false) {
				matches = append(matches, Match{Start: i, End: j + 1})
			}
		}
	}
	return matches
}

// IsMatch reports whether Scan would return at least one match for input.
func (re *Regex) IsMatch(input string) bool {
	runes := []rune(input)
	if len(runes) == 0 {
		return re.acceptsEmpty()
	}
	if re.hasPrefilt && !re.prefilt.MayMatch([]byte(input)) {
		return false
	}
	endBits := re.forward.NewExecState().Scan(runes)
	startBits := re.reverseStartBits(runes)
	confirm := re.forward.NewExecState()
	for i, start := range startBits {
		if !start {
			continue
		}
		for j := i; j < len(endBits); j++ {
			if endBits[j] && confirm.Process(runes, i, j+1, true) {
				return true
			}
		}
	}
	return false
}

// withPattern attaches the original source text to a compile error on its
// way out of the top-level entry points; the nfa package leaves the field
// empty because it only ever sees a parsed tree, never the pattern string.
func withPattern(err error, pattern string) error {
	var ce *nfa.CompileError
	if errors.As(err, &ce) && ce.Pattern == "" {
		ce.Pattern = pattern
	}
	return err
}

func (re *Regex) acceptsEmpty() bool {
	fwd := re.forward.NewExecState().Process(nil, 0, 0, false)
	rev := re.reverse.NewExecState().Process(nil, 0, 0, false)
	return fwd && rev
}

// reverseStartBits scans the reverse program over the reversed input and
// remaps the resulting bitmap back to forward-index order, so the returned
// slice's index i is true iff a match can start at forward position i.
func (re *Regex) reverseStartBits(runes []rune) []bool {
	reversed := make([]rune, len(runes))
	for i, r := range runes {
		reversed[len(runes)-1-i] = r
	}
	revBitmap := re.reverse.NewExecState().Scan(reversed)
	n := len(runes)
	startBits := make([]bool, n)
	for i := 0; i < n; i++ {
		startBits[i] = revBitmap[n-1-i]
	}
	return startBits
}
