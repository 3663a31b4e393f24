// Package literal extracts literal substrings that are guaranteed to occur
// in any string an NFA program matches, for use as an Aho-Corasick prefilter
// ahead of the full scan.
package literal

import "github.com/coregx/rxnfa/syntax"

// Extract walks an AST and returns a set of literal substrings such that
// every match of n contains at least one of them. required is false when no
// such set could be derived (e.g. the pattern can match arbitrary text, or a
// union branch has no literal of its own), in which case literals should be
// ignored and no prefilter applied.
//
// Extraction is conservative by construction rather than exhaustive: a
// factor that may match zero times (*, ?, {0,...}, {,m}) or is class-based
// contributes nothing, while + and repetitions with a lower bound of at least
// one contribute their operand's literals. It never
// causes a wrong (too strong) requirement to be returned.
func Extract(n *syntax.Node) (lits []string, required bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind {
	case syntax.NodeGroup, syntax.NodeAnchored, syntax.NodePlus:
		return Extract(n.Inner)
	case syntax.NodeRepeat:
		if n.RepeatKind == syntax.RepeatAtLeast && n.RepeatN >= 1 {
			return Extract(n.Inner)
		}
		if (n.RepeatKind == syntax.RepeatExact || n.RepeatKind == syntax.RepeatBetween) && n.RepeatN >= 1 {
			return Extract(n.Inner)
		}
		return nil, false
	case syntax.NodeConcat:
		return extractConcat(n.Items)
	case syntax.NodeUnion:
		return extractUnion(n.Items)
	case syntax.NodeChar, syntax.NodeAsciiCp, syntax.NodeUnicodeCp:
		return []string{string(n.Rune)}, true
	default:
		// NodeKleene, NodeOpt, NodeLookaround, NodeWildcard, NodeSpecialClass,
		// NodeCharClass: none guarantee a fixed literal on their own.
		return nil, false
	}
}

// extractConcat merges consecutive literal factors into runs. A
// NodeLookaround factor is zero-width: it contributes no characters to the
// matched text but also does not break an adjacent run, since the text on
// either side of it remains contiguous in the match. Any other non-literal
// factor flushes the current run and is otherwise skipped, but does not
// invalidate runs found elsewhere in the concatenation: every factor in a
// concat is mandatory, so any one surviving run is a valid requirement for
// the whole.
func extractConcat(items []*syntax.Node) ([]string, bool) {
	var runs []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			runs = append(runs, string(current))
			current = nil
		}
	}
	for _, it := range items {
		switch it.Kind {
		case syntax.NodeChar, syntax.NodeAsciiCp, syntax.NodeUnicodeCp:
			current = append(current, it.Rune)
		case syntax.NodeLookaround:
			// zero-width, transparent to adjacent runs
		default:
			flush()
			if sub, ok := Extract(it); ok {
				runs = append(runs, sub...)
			}
		}
	}
	flush()
	return runs, len(runs) > 0
}

// extractUnion requires every branch to yield its own literal set: the
// result is their union, since whichever branch actually matched is
// guaranteed to contain one of its own literals.
func extractUnion(items []*syntax.Node) ([]string, bool) {
	var all []string
	for _, it := range items {
		sub, ok := Extract(it)
		if !ok {
			return nil, false
		}
		all = append(all, sub...)
	}
	return all, true
}
