package syntax

// Reverse returns a new tree describing the language of reversed matches of
// n, without re-lexing any source text. It performs exactly the structural
// transform Parse applies when reverse=true (swap concatenation order, swap
// ^/$ , flip lookaround direction) but starting from an already-parsed tree.
// The compiler uses this to build the nested program for a lookbehind's
// subtree, which has no separate source span to re-parse.
//
// A lookaround's Direction flips and its inner assertion is reversed along
// with everything else: the inner subtree is always expressed in the
// orientation of the string the enclosing program scans, so a reversed
// tree's lookarounds must describe reversed text.
func Reverse(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case NodeUnion:
		items := make([]*Node, len(n.Items))
		for i, it := range n.Items {
			items[i] = Reverse(it)
		}
		return &Node{Kind: NodeUnion, Pos: n.Pos, Items: items}
	case NodeAnchored:
		return &Node{Kind: NodeAnchored, Pos: n.Pos, Start: n.End, End: n.Start, Inner: Reverse(n.Inner)}
	case NodeConcat:
		items := make([]*Node, len(n.Items))
		for i, it := range n.Items {
			items[len(items)-1-i] = Reverse(it)
		}
		return &Node{Kind: NodeConcat, Pos: n.Pos, Items: items}
	case NodeKleene, NodePlus, NodeOpt:
		return &Node{Kind: n.Kind, Pos: n.Pos, Inner: Reverse(n.Inner), Lazy: n.Lazy}
	case NodeRepeat:
		return &Node{
			Kind: NodeRepeat, Pos: n.Pos, Inner: Reverse(n.Inner),
			RepeatKind: n.RepeatKind, RepeatN: n.RepeatN, RepeatM: n.RepeatM, Lazy: n.Lazy,
		}
	case NodeLookaround:
		dir := n.Direction
		if dir == LookAhead {
			dir = LookBehind
		} else {
			dir = LookAhead
		}
		return &Node{Kind: NodeLookaround, Pos: n.Pos, Direction: dir, Polarity: n.Polarity, Inner: Reverse(n.Inner)}
	case NodeGroup:
		return &Node{Kind: NodeGroup, Pos: n.Pos, Inner: Reverse(n.Inner)}
	default:
		// Leaf kinds (Char, Wildcard, SpecialClass, AsciiCp, UnicodeCp,
		// CharClass) read the same forwards or backwards.
		return n
	}
}
