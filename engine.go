package hfstol

import "time"

// LookupOptions bundles the per-call search parameters. The zero value
// means "no limit": every analysis, no beam, no cutoff, duplicates kept.
type LookupOptions struct {
	// NBest caps the number of analyses considered, applied in ascending
	// weight order for weighted transducers. Zero means unlimited.
	NBest int
	// Beam discards any analysis whose weight exceeds the lowest emitted
	// weight by more than *Beam. Nil means no beam; an explicit zero keeps
	// only analyses tied with the lowest weight.
	Beam *float64
	// TimeCutoff bounds how long a single Lookup call may search before
	// giving up and returning whatever it has found so far with TimedOut
	// set. Zero means no cutoff.
	TimeCutoff time.Duration
	// Unique suppresses duplicate analysis strings, keeping the
	// lowest-weight occurrence for weighted transducers and the
	// first-found occurrence otherwise.
	Unique bool
}

// outputBufferCapacity bounds how deep the search may recurse: a branch
// that would write past this many output symbols is abandoned, which is
// the only defense against epsilon cycles.
const outputBufferCapacity = 1000

// startIndex is the table-space address of the start state, the first
// entry of the index table.
const startIndex TableIndex = 0

// searchState carries the mutable, per-Lookup-call search context: the
// tokenized input (terminated with noSymbol), the output symbols built up
// so far, the flag diacritic register stack, weight accumulator, and the
// bookkeeping needed for the time cutoff and endless-loop guard.
type searchState struct {
	input  []SymbolNumber
	output []SymbolNumber // len == outputBufferCapacity; filled up to the recursion depth

	flagState    flagDiacriticState
	weight       float32
	collector    collector
	limitReached bool
	callCount    uint64
	deadline     time.Time
	hasDeadline  bool
}

// engine runs the recursive lookup search over one transducer's tables.
// One implementation covers plain and weighted files with and without flag
// diacritics: which behavior applies is selected by hasFlags plus which
// collector is passed to search, not by separate engine types.
type engine struct {
	alphabet    *alphabet
	indices     []indexRecord
	transitions []transitionRecord
	hasFlags    bool
	weighted    bool
}

func newEngine(a *alphabet, indices []indexRecord, transitions []transitionRecord, weighted bool) *engine {
	hasFlags := false
	for _, op := range a.flags {
		if op.isFlag() {
			hasFlags = true
			break
		}
	}
	return &engine{alphabet: a, indices: indices, transitions: transitions, hasFlags: hasFlags, weighted: weighted}
}

// search runs one lookup of input (already tokenized, not yet
// noSymbol-terminated) and feeds every accepted analysis to c. It returns
// true if the time cutoff was hit before the search completed.
func (e *engine) search(input []SymbolNumber, opts LookupOptions, c collector) bool {
	st := &searchState{
		input:     append(append([]SymbolNumber{}, input...), noSymbol),
		output:    make([]SymbolNumber, outputBufferCapacity),
		flagState: newFlagDiacriticState(maxInt(e.alphabet.numFeatures, 1)),
		collector: c,
	}
	if opts.TimeCutoff > 0 {
		st.hasDeadline = true
		st.deadline = time.Now().Add(opts.TimeCutoff)
	}
	e.getAnalyses(st, 0, 0, startIndex)
	return st.limitReached
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// getAnalyses is the recursive workhorse, shared by plain and weighted
// search: unweighted transitionRecords always carry Weight == 0, so the
// weight accounting is a no-op for them, and finalTransition/finalIndex
// handle the two finality encodings.
func (e *engine) getAnalyses(st *searchState, inputPos, outputPos int, i TableIndex) {
	if st.hasDeadline {
		st.callCount++
		if st.limitReached || (st.callCount%1000000 == 0 && time.Now().After(st.deadline)) {
			st.limitReached = true
			return
		}
	}
	if outputPos >= len(st.output) {
		return // endless-loop protection: output buffer would overrun
	}

	if i >= transitionTargetTableStart {
		ti := i - transitionTargetTableStart
		e.tryEpsilonTransitions(st, inputPos, outputPos, ti+1)

		if st.input[inputPos] == noSymbol {
			if int(ti) >= len(e.transitions) {
				return
			}
			if e.finalTransition(ti) {
				w := e.finalTransitionWeight(ti)
				st.weight += w
				st.collector.note(st.weight, st.output[:outputPos])
				st.weight -= w
			}
			return
		}

		input := st.input[inputPos]
		e.findTransitions(st, input, inputPos+1, outputPos, ti+1)
		return
	}

	e.tryEpsilonIndices(st, inputPos, outputPos, i+1)

	if st.input[inputPos] == noSymbol {
		if e.finalIndex(i) {
			w := e.finalIndexWeight(i)
			st.weight += w
			st.collector.note(st.weight, st.output[:outputPos])
			st.weight -= w
		}
		return
	}

	input := st.input[inputPos]
	e.findIndex(st, input, inputPos+1, outputPos, i+1)
}

// finalTransition reports whether a transition slot marks a final state.
// Plain files encode finality as target == 1 alone; weighted files
// additionally require both symbols to be noSymbol. The appended sentinel
// records never read as final because their target is noTableIndex.
func (e *engine) finalTransition(i TableIndex) bool {
	t := e.transitions[i]
	if e.weighted {
		return t.Input == noSymbol && t.Output == noSymbol && t.Target == 1
	}
	return t.Target == 1
}

func (e *engine) finalTransitionWeight(i TableIndex) float32 {
	return e.transitions[i].Weight
}

// finalIndex reports whether an index slot marks a final state. Plain
// files encode finality as target == 1; in weighted files the target of a
// noSymbol-input slot holds a bit-reinterpreted final weight, so any value
// other than noTableIndex counts as final.
func (e *engine) finalIndex(i TableIndex) bool {
	if int(i) >= len(e.indices) {
		return false
	}
	idx := e.indices[i]
	if e.weighted {
		return idx.Input == noSymbol && idx.Target != noTableIndex
	}
	return idx.Target == 1
}

func (e *engine) finalIndexWeight(i TableIndex) float32 {
	if !e.weighted {
		return 0
	}
	return e.indices[i].finalWeight()
}

// tryEpsilonTransitions explores every epsilon (and, if hasFlags, flag
// diacritic) transition in the current transition-table bucket before any
// input-consuming alternative, so each state's epsilon closure is fully
// explored before a symbol is consumed.
func (e *engine) tryEpsilonTransitions(st *searchState, inputPos, outputPos int, i TableIndex) {
	for int(i) < len(e.transitions) && e.transitions[i].Input != noSymbol {
		t := e.transitions[i]
		if e.hasFlags && e.alphabet.isFlagDiacritic(t.Input) {
			op := e.alphabet.flags[t.Input]
			saved := st.flagState
			next, ok := pushState(saved, op)
			if ok {
				st.flagState = next
				st.output[outputPos] = t.Output
				st.weight += t.Weight
				e.getAnalyses(st, inputPos, outputPos+1, t.Target)
				st.weight -= t.Weight
				st.flagState = saved
			}
			i++
			continue
		}
		if t.Input != 0 {
			return // not epsilon and not a flag: findTransitions handles it
		}
		st.output[outputPos] = t.Output
		st.weight += t.Weight
		e.getAnalyses(st, inputPos, outputPos+1, t.Target)
		st.weight -= t.Weight
		i++
	}
}

func (e *engine) tryEpsilonIndices(st *searchState, inputPos, outputPos int, i TableIndex) {
	if int(i) >= len(e.indices) {
		return
	}
	if e.indices[i].Input == 0 {
		e.tryEpsilonTransitions(st, inputPos, outputPos, e.indices[i].Target-transitionTargetTableStart)
	}
}

// findTransitions scans the bucket for transitions matching input.
func (e *engine) findTransitions(st *searchState, input SymbolNumber, inputPos, outputPos int, i TableIndex) {
	for int(i) < len(e.transitions) && e.transitions[i].Input != noSymbol {
		if e.transitions[i].Input == input {
			t := e.transitions[i]
			st.output[outputPos] = t.Output
			st.weight += t.Weight
			e.getAnalyses(st, inputPos, outputPos+1, t.Target)
			st.weight -= t.Weight
		} else {
			return
		}
		i++
	}
}

func (e *engine) findIndex(st *searchState, input SymbolNumber, inputPos, outputPos int, i TableIndex) {
	if int(i)+int(input) >= len(e.indices) {
		return
	}
	idx := e.indices[int(i)+int(input)]
	if idx.Input == input {
		e.findTransitions(st, input, inputPos, outputPos, idx.Target-transitionTargetTableStart)
	}
}
