package nfa

import (
	"fmt"

	"github.com/coregx/rxnfa/syntax"
)

// CompileConfig bounds how far a compile will expand a bounded repetition
// before giving up, guarding against patterns like a{1,100000} blowing up
// the state count.
type CompileConfig struct {
	// MaxRepeatExpansion is the largest total number of operand copies a
	// single {n}, {n,}, {,m}, or {n,m} node may expand to. Zero means
	// unbounded.
	MaxRepeatExpansion int
}

// DefaultCompileConfig returns the compiler's default bounds.
func DefaultCompileConfig() CompileConfig {
	return CompileConfig{MaxRepeatExpansion: 1000}
}

// Compile builds a Program from a parsed AST using DefaultCompileConfig.
func Compile(root *syntax.Node) (*Program, error) {
	return CompileWithConfig(root, DefaultCompileConfig())
}

// CompileWithConfig builds a Program from a parsed AST under cfg.
func CompileWithConfig(root *syntax.Node, cfg CompileConfig) (*Program, error) {
	c := &compiler{b: newBuilder(), cfg: cfg}
	frag, err := c.compileNode(root)
	if err != nil {
		return nil, err
	}
	return c.b.build(frag.start, frag.end), nil
}

type compiler struct {
	b   *builder
	cfg CompileConfig
}

func (c *compiler) compileNode(n *syntax.Node) (fragment, error) {
	switch n.Kind {
	case syntax.NodeUnion:
		return c.compileUnion(n)
	case syntax.NodeAnchored:
		return c.compileAnchored(n)
	case syntax.NodeConcat:
		return c.compileConcat(n)
	case syntax.NodeKleene:
		inner, err := c.compileNode(n.Inner)
		if err != nil {
			return fragment{}, err
		}
		return c.b.star(inner), nil
	case syntax.NodePlus:
		inner, err := c.compileNode(n.Inner)
		if err != nil {
			return fragment{}, err
		}
		return c.b.plus(inner), nil
	case syntax.NodeOpt:
		inner, err := c.compileNode(n.Inner)
		if err != nil {
			return fragment{}, err
		}
		return c.b.opt(inner), nil
	case syntax.NodeRepeat:
		return c.compileRepeat(n)
	case syntax.NodeLookaround:
		return c.compileLookaround(n)
	case syntax.NodeGroup:
		return c.compileNode(n.Inner)
	case syntax.NodeChar:
		return c.b.literal(Predicate{Kind: PredLiteral, Lit: n.Rune}), nil
	case syntax.NodeWildcard:
		return c.b.literal(Predicate{Kind: PredWildcard}), nil
	case syntax.NodeSpecialClass:
		return c.compileSpecialClass(n)
	case syntax.NodeAsciiCp, syntax.NodeUnicodeCp:
		return c.b.literal(Predicate{Kind: PredLiteral, Lit: n.Rune}), nil
	case syntax.NodeCharClass:
		return c.compileCharClass(n)
	default:
		return fragment{}, &CompileError{Err: fmt.Errorf("unhandled AST node kind %d", n.Kind)}
	}
}

func (c *compiler) compileUnion(n *syntax.Node) (fragment, error) {
	frags := make([]fragment, len(n.Items))
	for i, it := range n.Items {
		f, err := c.compileNode(it)
		if err != nil {
			return fragment{}, err
		}
		frags[i] = f
	}
	return c.b.union(frags...), nil
}

func (c *compiler) compileAnchored(n *syntax.Node) (fragment, error) {
	var parts []fragment
	if n.Start {
		parts = append(parts, c.b.guardFrag(Guard{Kind: GuardStartAnchor}))
	}
	inner, err := c.compileNode(n.Inner)
	if err != nil {
		return fragment{}, err
	}
	parts = append(parts, inner)
	if n.End {
		parts = append(parts, c.b.guardFrag(Guard{Kind: GuardEndAnchor}))
	}
	return c.b.concat(parts...), nil
}

func (c *compiler) compileConcat(n *syntax.Node) (fragment, error) {
	frags := make([]fragment, len(n.Items))
	for i, it := range n.Items {
		f, err := c.compileNode(it)
		if err != nil {
			return fragment{}, err
		}
		frags[i] = f
	}
	return c.b.concat(frags...), nil
}

// compileRepeat lowers a bounded repetition to concat/opt/plus combinations
// of the operand, rather than adding a dedicated counting construct, so the
// rest of the runtime never needs to know about repetition bounds.
func (c *compiler) compileRepeat(n *syntax.Node) (fragment, error) {
	switch n.RepeatKind {
	case syntax.RepeatExact:
		if err := c.checkExpansion(n.RepeatN); err != nil {
			return fragment{}, err
		}
		return c.compileNCopies(n.Inner, n.RepeatN)
	case syntax.RepeatAtLeast:
		if n.RepeatN == 0 {
			inner, err := c.compileNode(n.Inner)
			if err != nil {
				return fragment{}, err
			}
			return c.b.star(inner), nil
		}
		if err := c.checkExpansion(n.RepeatN); err != nil {
			return fragment{}, err
		}
		// n-1 mandatory copies, then a plus-wrapped final copy: n or more in
		// total.
		head, err := c.compileNCopies(n.Inner, n.RepeatN-1)
		if err != nil {
			return fragment{}, err
		}
		tail, err := c.compileNode(n.Inner)
		if err != nil {
			return fragment{}, err
		}
		return c.b.concat(head, c.b.plus(tail)), nil
	case syntax.RepeatAtMost:
		if err := c.checkExpansion(n.RepeatM); err != nil {
			return fragment{}, err
		}
		return c.compileUpTo(n.Inner, n.RepeatM)
	case syntax.RepeatBetween:
		if err := c.checkExpansion(n.RepeatM); err != nil {
			return fragment{}, err
		}
		head, err := c.compileNCopies(n.Inner, n.RepeatN)
		if err != nil {
			return fragment{}, err
		}
		tail, err := c.compileUpTo(n.Inner, n.RepeatM-n.RepeatN)
		if err != nil {
			return fragment{}, err
		}
		return c.b.concat(head, tail), nil
	default:
		return fragment{}, &CompileError{Err: fmt.Errorf("unknown repeat kind %d", n.RepeatKind)}
	}
}

func (c *compiler) compileNCopies(inner *syntax.Node, n int) (fragment, error) {
	if n == 0 {
		return c.b.epsilonFrag(), nil
	}
	frags := make([]fragment, n)
	for i := 0; i < n; i++ {
		f, err := c.compileNode(inner)
		if err != nil {
			return fragment{}, err
		}
		frags[i] = f
	}
	return c.b.concat(frags...), nil
}

// compileUpTo builds zero-to-m optional copies of inner, nested so copy k
// only becomes reachable once copy k-1 matched: opt(inner & opt(inner & ...)).
func (c *compiler) compileUpTo(inner *syntax.Node, m int) (fragment, error) {
	if m <= 0 {
		return c.b.epsilonFrag(), nil
	}
	head, err := c.compileNode(inner)
	if err != nil {
		return fragment{}, err
	}
	rest, err := c.compileUpTo(inner, m-1)
	if err != nil {
		return fragment{}, err
	}
	return c.b.opt(c.b.concat(head, rest)), nil
}

func (c *compiler) checkExpansion(count int) error {
	max := c.cfg.MaxRepeatExpansion
	if max > 0 && count > max {
		return &CompileError{Err: fmt.Errorf("%w: %d copies requested, limit is %d", ErrRepeatTooLarge, count, max)}
	}
	return nil
}

// compileLookaround compiles the assertion's subtree into its own, fully
// independent Program (its own state arena), embedding it inside a guard
// rather than splicing its states into the enclosing one. Lookbehind
// compiles the structurally reversed subtree, since the nested program
// runs backwards over the prefix preceding the current position.
func (c *compiler) compileLookaround(n *syntax.Node) (fragment, error) {
	sub := n.Inner
	if n.Direction == syntax.LookBehind {
		sub = syntax.Reverse(n.Inner)
	}
	nested, err := CompileWithConfig(sub, c.cfg)
	if err != nil {
		return fragment{}, err
	}
	return c.b.guardFrag(Guard{
		Kind:      GuardLookAround,
		Direction: n.Direction,
		Polarity:  n.Polarity,
		Nested:    nested,
	}), nil
}

// compileSpecialClass resolves a \d \D \w \W \s \S \t \r \n \v \f \0 escape.
// The class-predicate letters (d D w W s S) become set-membership
// predicates; the rest (t r n v f 0) are fixed single characters, so they
// compile to an ordinary literal.
func (c *compiler) compileSpecialClass(n *syntax.Node) (fragment, error) {
	switch n.Special {
	case 'd':
		return c.b.literal(Predicate{Kind: PredDigit}), nil
	case 'D':
		return c.b.literal(Predicate{Kind: PredNotDigit}), nil
	case 'w':
		return c.b.literal(Predicate{Kind: PredWord}), nil
	case 'W':
		return c.b.literal(Predicate{Kind: PredNotWord}), nil
	case 's':
		return c.b.literal(Predicate{Kind: PredSpace}), nil
	case 'S':
		return c.b.literal(Predicate{Kind: PredNotSpace}), nil
	case 't':
		return c.b.literal(Predicate{Kind: PredLiteral, Lit: '\t'}), nil
	case 'r':
		return c.b.literal(Predicate{Kind: PredLiteral, Lit: '\r'}), nil
	case 'n':
		return c.b.literal(Predicate{Kind: PredLiteral, Lit: '\n'}), nil
	case 'v':
		return c.b.literal(Predicate{Kind: PredLiteral, Lit: '\v'}), nil
	case 'f':
		return c.b.literal(Predicate{Kind: PredLiteral, Lit: '\f'}), nil
	case '0':
		return c.b.literal(Predicate{Kind: PredLiteral, Lit: 0}), nil
	default:
		return fragment{}, &CompileError{Err: fmt.Errorf("unknown special class escape %q", n.Special)}
	}
}

func (c *compiler) compileCharClass(n *syntax.Node) (fragment, error) {
	members := make([]ClassMember, 0, len(n.ClassItems))
	for _, it := range n.ClassItems {
		switch it.Kind {
		case syntax.ClassAtom:
			members = append(members, ClassMember{Kind: MemberAtom, Lo: it.Lo})
		case syntax.ClassRange:
			members = append(members, ClassMember{Kind: MemberRange, Lo: it.Lo, Hi: it.Hi})
		case syntax.ClassSpecial:
			members = append(members, specialToMember(it.Special))
		}
	}
	return c.b.literal(Predicate{Kind: PredCharClass, Negated: n.Negated, Members: members}), nil
}

func specialToMember(special byte) ClassMember {
	switch special {
	case 'd':
		return ClassMember{Kind: MemberDigit}
	case 'D':
		return ClassMember{Kind: MemberNotDigit}
	case 'w':
		return ClassMember{Kind: MemberWord}
	case 'W':
		return ClassMember{Kind: MemberNotWord}
	case 's':
		return ClassMember{Kind: MemberSpace}
	case 'S':
		return ClassMember{Kind: MemberNotSpace}
	case 't':
		return ClassMember{Kind: MemberAtom, Lo: '\t'}
	case 'r':
		return ClassMember{Kind: MemberAtom, Lo: '\r'}
	case 'n':
		return ClassMember{Kind: MemberAtom, Lo: '\n'}
	case 'v':
		return ClassMember{Kind: MemberAtom, Lo: '\v'}
	case 'f':
		return ClassMember{Kind: MemberAtom, Lo: '\f'}
	case '0':
		return ClassMember{Kind: MemberAtom, Lo: 0}
	default:
		return ClassMember{Kind: MemberAtom, Lo: rune(special)}
	}
}
