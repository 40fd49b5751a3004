package hfstol

import (
	"bufio"
	"fmt"
	"os"

	"github.com/golang/glog"
)

// Transducer is an opened optimized-lookup binary: its alphabet and
// tables are immutable once loaded, so a *Transducer may be shared freely
// across goroutines — each Lookup call allocates its own search state (see
// engine.go's searchState) and touches no shared mutable data.
type Transducer struct {
	alphabet *alphabet
	encoder  *encoder
	engine   *engine
	weighted bool
	file     *os.File
}

// Result is what a Lookup call returns.
type Result struct {
	// Analyses holds one []string per accepted analysis, in the order the
	// configured collector produced them (ascending weight for weighted
	// transducers, discovery order otherwise).
	Analyses [][]string
	// TokenizationFailed is true when the input could not be split into
	// known symbols; Analyses is empty in that case.
	TokenizationFailed bool
	// TimedOut is true when LookupOptions.TimeCutoff was exceeded; the
	// Analyses found before the cutoff are still returned.
	TimedOut bool
}

// Open parses the optimized-lookup binary at path: the optional HFST3
// container header, the fixed header, the alphabet, and the index and
// transition tables, entirely into memory.
func Open(path string) (*Transducer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	t, err := parseTransducer(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	t.file = f
	return t, nil
}

func parseTransducer(f *os.File) (*Transducer, error) {
	r := bufio.NewReaderSize(f, 64*1024)

	h, err := parseHeader(r)
	if err != nil {
		return nil, err
	}
	a, err := parseAlphabet(r, h)
	if err != nil {
		return nil, err
	}
	indices, err := readIndexTable(r, h)
	if err != nil {
		return nil, err
	}
	transitions, err := readTransitionTable(r, h)
	if err != nil {
		return nil, err
	}

	if h.Cyclic || h.HasInputEpsilonCycles || h.HasUnweightedInputEpsilonCycles {
		glog.Warningf("%s: transducer has epsilon cycles; lookup relies solely on the output-buffer bound to terminate", f.Name())
	}

	enc := newEncoder(a, h.NumberOfInputSymbols)
	eng := newEngine(a, indices, transitions, h.Weighted)

	return &Transducer{alphabet: a, encoder: enc, engine: eng, weighted: h.Weighted}, nil
}

// SymbolCount returns the number of symbols in the transducer's alphabet.
func (t *Transducer) SymbolCount() uint16 {
	return t.alphabet.symbolCount()
}

// Close releases the underlying file. The Transducer must not be used
// afterward.
func (t *Transducer) Close() error {
	if t.file == nil {
		return nil
	}
	return t.file.Close()
}

// Lookup tokenizes word and searches the transducer for every analysis
// reachable from the start state. opts.Unique selects the collector,
// opts.TimeCutoff bounds the search, and opts.NBest/opts.Beam are applied
// to the collected analyses (NBest in discovery order for unweighted
// transducers).
func (t *Transducer) Lookup(word string, opts LookupOptions) Result {
	symbols, err := t.encoder.tokenize(word)
	if err != nil {
		return Result{TokenizationFailed: true}
	}

	var c collector
	switch {
	case t.weighted && opts.Unique:
		c = newWeightedUniqueCollector(t.alphabet)
	case t.weighted && !opts.Unique:
		c = newWeightedAllCollector(t.alphabet)
	case !t.weighted && opts.Unique:
		c = newPlainUniqueCollector(t.alphabet)
	default:
		c = newPlainAllCollector(t.alphabet)
	}

	if glog.V(1) {
		glog.Infof("lookup %q: %d input symbols, weighted=%v unique=%v", word, len(symbols), t.weighted, opts.Unique)
	}

	timedOut := t.engine.search(symbols, opts, c)
	analyses := c.results(opts)
	if !t.weighted && opts.NBest > 0 && len(analyses) > opts.NBest {
		analyses = analyses[:opts.NBest]
	}
	return Result{Analyses: analyses, TimedOut: timedOut}
}
