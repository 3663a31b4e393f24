package nfa

import "github.com/coregx/rxnfa/internal/sparse"

// ExecState is a single mutable run of a Program over some input. It owns
// its own scratch buffers, so any number of ExecStates may run
// concurrently over the same (immutable) Program: ExecState itself is never
// shared across goroutines.
type ExecState struct {
	prog  *Program
	flags Flags

	// sets.Set1 holds the current closed, guard-filtered active set;
	// sets.Set2 is the set under construction for the next step, so the
	// active set is never mutated while it is being iterated.
	sets *sparse.SparseSets

	stackBuf []StateID // scratch for closeInto's DFS stack
	rawBuf   []StateID // scratch for stepFromSet's result
	idBuf    []StateID // scratch for sparse set -> []StateID conversion
}

func (pr *Program) newExecState() *ExecState {
	return &ExecState{
		prog: pr,
		sets: sparse.NewSparseSets(uint32(pr.numStates)),
	}
}

// Accepts reports whether the accept state is in the current active set.
func (x *ExecState) Accepts() bool {
	return x.sets.Set1.Contains(uint32(x.prog.accept))
}

// Process runs the program over input[start:end), anchored exactly at
// start: unlike Scan, no new match-start threads are injected mid-run. If
// shortCircuit is true, Process returns true the moment the accept state
// becomes active, without consuming the rest of the window. input is
// always the full haystack a candidate interval was drawn from (not a
// copy of just that interval), so that anchor and lookaround guards
// evaluated inside [start,end) can still see context outside it.
func (x *ExecState) Process(input []rune, start, end int, shortCircuit bool) bool {
	x.flags = Flags{Input: input, InputLen: len(input), Pos: start}
	x.closeInto(x.sets.Set1, []StateID{x.prog.start})
	if shortCircuit && x.Accepts() {
		return true
	}
	for i := start; i < end; i++ {
		raw := x.stepFromSet(x.sets.Set1, input[i])
		x.flags.Pos = i + 1
		x.closeInto(x.sets.Set2, raw)
		x.sets.Swap()
		if shortCircuit && x.Accepts() {
			return true
		}
		if x.sets.Set1.IsEmpty() {
			break
		}
	}
	return x.Accepts()
}

// Scan runs the program across the whole input in a single pass and
// returns, for each index i, whether the accept state was active right
// after consuming input[i]. Before stepping on input[i], a fresh thread
// starting the program at position i is merged into the active set, so a
// single pass explores every possible match start simultaneously: this is
// what lets a continuous scan produce position-independent end-of-match
// results instead of only tracking the most recent reset.
func (x *ExecState) Scan(input []rune) []bool {
	x.flags = Flags{Input: input, InputLen: len(input), Pos: 0}
	x.closeInto(x.sets.Set1, []StateID{x.prog.start})

	bitmap := make([]bool, len(input))
	for i, ch := range input {
		x.flags.Pos = i

		x.idBuf = toStateIDs(x.sets.Set1.Values(), x.idBuf[:0])
		x.idBuf = append(x.idBuf, x.prog.start)
		x.closeInto(x.sets.Set2, x.idBuf)

		raw := x.stepFromSet(x.sets.Set2, ch)
		x.flags.Pos = i + 1
		x.closeInto(x.sets.Set1, raw)
		bitmap[i] = x.Accepts()
	}
	return bitmap
}
