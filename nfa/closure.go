package nfa

import "github.com/coregx/rxnfa/internal/sparse"

// closeInto computes the guard-filtered epsilon-closure of seeds into dst,
// using x.flags for guard evaluation. A state whose guards fail is treated
// as unreachable: it is not added to dst and its own epsilon edges are not
// followed.
func (x *ExecState) closeInto(dst *sparse.SparseSet, seeds []StateID) {
	dst.Clear()
	stack := append(x.stackBuf[:0], seeds...)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if dst.Contains(uint32(s)) {
			continue
		}
		if !x.admit(s) {
			continue
		}
		dst.Insert(uint32(s))
		stack = append(stack, x.prog.epsilon[s]...)
	}
	x.stackBuf = stack
}

func (x *ExecState) admit(s StateID) bool {
	for _, g := range x.prog.guards[s] {
		if !g.Eval(x.flags) {
			return false
		}
	}
	return true
}

// stepFromSet computes the raw (unclosed) successor states reached by
// matching ch against every predicate edge leaving a state in set.
func (x *ExecState) stepFromSet(set *sparse.SparseSet, ch rune) []StateID {
	x.rawBuf = x.rawBuf[:0]
	for _, sv := range set.Values() {
		s := StateID(sv)
		for _, e := range x.prog.predEdges[s] {
			if e.pred.Match(ch) {
				x.rawBuf = append(x.rawBuf, e.to)
			}
		}
	}
	return x.rawBuf
}

func toStateIDs(values []uint32, into []StateID) []StateID {
	for _, v := range values {
		into = append(into, StateID(v))
	}
	return into
}
