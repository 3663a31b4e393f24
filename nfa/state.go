// Package nfa implements the AST-to-NFA compiler and the NFA runtime: an
// immutable Program (transitions, predicates, guards) built by Compile, and
// a per-call ExecState (active state set, flags) that simulates it via
// epsilon-closure set simulation.
package nfa

import "github.com/coregx/rxnfa/syntax"

// StateID identifies a state within a single Program. IDs are dense and
// allocated by the builder's monotonic counter, which is what gives every
// fragment's states a name distinct from every other fragment's without
// needing an explicit per-fragment tag prefix: the arena itself is the
// renaming scheme, since no two fragments ever allocate the same ID.
type StateID int

// Flags is the runtime record guards are evaluated against. Pos is always
// the index of the next character that has not yet been consumed in the
// current run, as an index into the full Input (the window's start index
// before anything is consumed, its end index once the window is
// exhausted); Input/InputLen always describe the FULL haystack a Program
// is executing over, even when a particular Process call only iterates a
// sub-window of it, so that anchor and lookaround guards evaluated mid-window
// can still see context outside that window.
type Flags struct {
	Input    []rune
	InputLen int
	Pos      int
}

// PredicateKind identifies the shape of a Predicate: a tagged variant
// (Literal, Wildcard, Digit, ...) rather than a dynamic closure, so
// predicates can be compared and inspected without invoking them.
type PredicateKind uint8

const (
	PredLiteral PredicateKind = iota
	PredWildcard
	PredDigit
	PredNotDigit
	PredWord
	PredNotWord
	PredSpace
	PredNotSpace
	PredCharClass
)

// ClassMemberKind mirrors syntax.ClassItemKind at the predicate level, after
// special-class escapes inside a bracket expression have been resolved to
// something a Predicate can test directly.
type ClassMemberKind uint8

const (
	MemberAtom ClassMemberKind = iota
	MemberRange
	MemberDigit
	MemberNotDigit
	MemberWord
	MemberNotWord
	MemberSpace
	MemberNotSpace
)

// ClassMember is one resolved member of a PredCharClass predicate.
type ClassMember struct {
	Kind   ClassMemberKind
	Lo, Hi rune
}

// Predicate is a pure, total codepoint test: char -> bool. Kind determines
// which fields are meaningful.
type Predicate struct {
	Kind PredicateKind

	// PredLiteral.
	Lit rune

	// PredCharClass.
	Negated bool
	Members []ClassMember
}

// Match reports whether c satisfies the predicate. Match never panics: it
// is called with arbitrary runes from the input and must be total.
func (p Predicate) Match(c rune) bool {
	switch p.Kind {
	case PredLiteral:
		return c == p.Lit
	case PredWildcard:
		return c != '\n'
	case PredDigit:
		return isDigit(c)
	case PredNotDigit:
		return !isDigit(c)
	case PredWord:
		return isWord(c)
	case PredNotWord:
		return !isWord(c)
	case PredSpace:
		return isSpace(c)
	case PredNotSpace:
		return !isSpace(c)
	case PredCharClass:
		return p.matchClass(c) != p.Negated
	default:
		return false
	}
}

func (p Predicate) matchClass(c rune) bool {
	for _, m := range p.Members {
		switch m.Kind {
		case MemberAtom:
			if c == m.Lo {
				return true
			}
		case MemberRange:
			if c >= m.Lo && c <= m.Hi {
				return true
			}
		case MemberDigit:
			if isDigit(c) {
				return true
			}
		case MemberNotDigit:
			if !isDigit(c) {
				return true
			}
		case MemberWord:
			if isWord(c) {
				return true
			}
		case MemberNotWord:
			if !isWord(c) {
				return true
			}
		case MemberSpace:
			if isSpace(c) {
				return true
			}
		case MemberNotSpace:
			if !isSpace(c) {
				return true
			}
		}
	}
	return false
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isWord(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c)
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// GuardKind identifies the shape of a Guard: a zero-width predicate
// evaluated over Flags rather than over a single character.
type GuardKind uint8

const (
	GuardStartAnchor GuardKind = iota
	GuardEndAnchor
	GuardLookAround
)

// Guard is a zero-width assertion attached to a state: the state may only
// be entered if Eval holds for the runtime Flags in effect at the time.
type Guard struct {
	Kind GuardKind

	// GuardLookAround.
	Direction syntax.LookDirection
	Polarity  syntax.LookPolarity
	Nested    *Program
}

// Eval reports whether the guard holds given the current runtime flags.
func (g Guard) Eval(f Flags) bool {
	switch g.Kind {
	case GuardStartAnchor:
		return f.Pos == 0 || (f.Pos > 0 && f.Input[f.Pos-1] == '\n')
	case GuardEndAnchor:
		return f.Pos == f.InputLen || (f.Pos < f.InputLen && f.Input[f.Pos] == '\n')
	case GuardLookAround:
		return g.evalLookAround(f)
	default:
		return false
	}
}

func (g Guard) evalLookAround(f Flags) bool {
	var window []rune
	if g.Direction == syntax.LookAhead {
		window = f.Input[f.Pos:f.InputLen]
	} else {
		// Lookbehind: the nested program is compiled from the reversed
		// subtree and runs over the prefix ending just before the current
		// position, read backwards.
		window = reverseRunes(f.Input[:f.Pos])
	}
	matched := g.Nested.newExecState().Process(window, 0, len(window), true)
	if g.Polarity == syntax.LookNegative {
		return !matched
	}
	return matched
}

func reverseRunes(in []rune) []rune {
	out := make([]rune, len(in))
	for i, r := range in {
		out[len(in)-1-i] = r
	}
	return out
}
