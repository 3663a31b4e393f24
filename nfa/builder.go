package nfa

// fragment is a partially built NFA piece: an entry state and an exit
// state, with whatever graph lies between them already recorded in the
// owning builder. Operators combine fragments by adding new states and
// epsilon bridges; they never copy or rename existing states, since every
// state already has a process-wide unique StateID from the builder's
// monotonic counter.
type fragment struct {
	start, end StateID
}

// builder accumulates states and edges for a single Program under
// construction. It is not safe for concurrent use; each compile creates its
// own builder.
type builder struct {
	epsilon   map[StateID][]StateID
	predEdges map[StateID][]predEdge
	guards    map[StateID][]Guard
	next      StateID
}

func newBuilder() *builder {
	return &builder{
		epsilon:   make(map[StateID][]StateID),
		predEdges: make(map[StateID][]predEdge),
		guards:    make(map[StateID][]Guard),
	}
}

func (b *builder) newState() StateID {
	id := b.next
	b.next++
	return id
}

func (b *builder) addEpsilon(from, to StateID) {
	b.epsilon[from] = append(b.epsilon[from], to)
}

func (b *builder) addPredicate(from StateID, pred Predicate, to StateID) {
	b.predEdges[from] = append(b.predEdges[from], predEdge{pred: pred, to: to})
}

func (b *builder) addGuard(state StateID, g Guard) {
	b.guards[state] = append(b.guards[state], g)
}

// build freezes the accumulated graph into an immutable Program.
func (b *builder) build(start, accept StateID) *Program {
	n := int(b.next)
	pr := &Program{
		numStates: n,
		start:     start,
		accept:    accept,
		epsilon:   make([][]StateID, n),
		predEdges: make([][]predEdge, n),
		guards:    make([][]Guard, n),
	}
	for s, tos := range b.epsilon {
		pr.epsilon[s] = tos
	}
	for s, edges := range b.predEdges {
		pr.predEdges[s] = edges
	}
	for s, gs := range b.guards {
		pr.guards[s] = gs
	}
	return pr
}

// literal builds a single consuming transition on pred.
func (b *builder) literal(pred Predicate) fragment {
	s := b.newState()
	e := b.newState()
	b.addPredicate(s, pred, e)
	return fragment{start: s, end: e}
}

// epsilonFrag builds a zero-width fragment that always matches, consuming
// nothing. It is the identity element for concat (the {0} repeat case).
func (b *builder) epsilonFrag() fragment {
	s := b.newState()
	e := b.newState()
	b.addEpsilon(s, e)
	return fragment{start: s, end: e}
}

// guardFrag builds a zero-width fragment whose exit state may only be
// entered if g holds, used for anchors and lookarounds.
func (b *builder) guardFrag(g Guard) fragment {
	s := b.newState()
	e := b.newState()
	b.addEpsilon(s, e)
	b.addGuard(e, g)
	return fragment{start: s, end: e}
}

// concat chains fragments end-to-start via epsilon bridges: Concat operator.
func (b *builder) concat(frags ...fragment) fragment {
	if len(frags) == 0 {
		return b.epsilonFrag()
	}
	for i := 0; i < len(frags)-1; i++ {
		b.addEpsilon(frags[i].end, frags[i+1].start)
	}
	return fragment{start: frags[0].start, end: frags[len(frags)-1].end}
}

// union builds a shared entry/exit pair with epsilon branches to and from
// each operand: Union operator.
func (b *builder) union(frags ...fragment) fragment {
	s := b.newState()
	e := b.newState()
	for _, f := range frags {
		b.addEpsilon(s, f.start)
		b.addEpsilon(f.end, e)
	}
	return fragment{start: s, end: e}
}

// star builds zero-or-more repetition: Kleene operator.
func (b *builder) star(f fragment) fragment {
	s := b.newState()
	e := b.newState()
	b.addEpsilon(s, f.start)
	b.addEpsilon(s, e)
	b.addEpsilon(f.end, f.start)
	b.addEpsilon(f.end, e)
	return fragment{start: s, end: e}
}

// plus builds one-or-more repetition: Plus operator.
func (b *builder) plus(f fragment) fragment {
	e := b.newState()
	b.addEpsilon(f.end, f.start)
	b.addEpsilon(f.end, e)
	return fragment{start: f.start, end: e}
}

// opt builds zero-or-one repetition: Opt operator.
func (b *builder) opt(f fragment) fragment {
	s := b.newState()
	e := b.newState()
	b.addEpsilon(s, f.start)
	b.addEpsilon(s, e)
	b.addEpsilon(f.end, e)
	return fragment{start: s, end: e}
}
