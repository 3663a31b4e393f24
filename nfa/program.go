package nfa

// predEdge is a single consuming transition: from the owning state, match
// pred against the next input character and move to to.
type predEdge struct {
	pred Predicate
	to   StateID
}

// Program is an immutable compiled NFA: a set of states connected by
// epsilon transitions and predicate-guarded consuming transitions, plus
// per-state guards. It has no mutable fields, so a single Program can be
// shared by any number of concurrently running ExecStates.
type Program struct {
	numStates int
	start     StateID
	accept    StateID
	epsilon   [][]StateID
	predEdges [][]predEdge
	guards    [][]Guard
}

// NumStates returns the number of states in the program.
func (pr *Program) NumStates() int { return pr.numStates }

// Start returns the program's entry state.
func (pr *Program) Start() StateID { return pr.start }

// Accept returns the program's sole accepting state.
func (pr *Program) Accept() StateID { return pr.accept }

// NewExecState returns a fresh, independent execution context for this
// program. Each ExecState owns its own scratch buffers and may be stepped
// through input without affecting any other ExecState over the same
// Program.
func (pr *Program) NewExecState() *ExecState {
	return pr.newExecState()
}
