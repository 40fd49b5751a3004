package hfstol

import "sort"

// collector accumulates the symbol sequences noted by the search engine
// into whatever shape the caller asked for. The four implementations cover
// plain/weighted crossed with all/unique, sharing one engine; Transducer.
// Lookup picks one based on LookupOptions and the file's weighted flag.
// weight is always passed in even for unweighted collectors, which simply
// ignore it.
type collector interface {
	note(weight float32, output []SymbolNumber)
	results(opts LookupOptions) [][]string
}

func stringsOf(a *alphabet, output []SymbolNumber) []string {
	out := make([]string, 0, len(output))
	for _, s := range output {
		if s == noSymbol {
			break
		}
		if str := a.stringOf(s); str != "" {
			out = append(out, str)
		}
	}
	return out
}

func joinParts(parts []string) string {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	buf := make([]byte, 0, n)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return string(buf)
}

// plainAllCollector keeps every analysis in the order the search found it,
// duplicates included.
type plainAllCollector struct {
	alphabet *alphabet
	out      [][]string
}

func newPlainAllCollector(a *alphabet) *plainAllCollector { return &plainAllCollector{alphabet: a} }

func (c *plainAllCollector) note(weight float32, output []SymbolNumber) {
	c.out = append(c.out, stringsOf(c.alphabet, output))
}

func (c *plainAllCollector) results(opts LookupOptions) [][]string {
	return c.out
}

// plainUniqueCollector keeps only the first occurrence of each distinct
// analysis string.
type plainUniqueCollector struct {
	alphabet *alphabet
	seen     map[string]bool
	out      [][]string
}

func newPlainUniqueCollector(a *alphabet) *plainUniqueCollector {
	return &plainUniqueCollector{alphabet: a, seen: map[string]bool{}}
}

func (c *plainUniqueCollector) note(weight float32, output []SymbolNumber) {
	parts := stringsOf(c.alphabet, output)
	key := joinParts(parts)
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.out = append(c.out, parts)
}

func (c *plainUniqueCollector) results(opts LookupOptions) [][]string {
	return c.out
}

// weightedEntry pairs a found analysis with its accumulated weight.
type weightedEntry struct {
	weight float32
	parts  []string
}

// weightedAllCollector keeps every analysis with its weight; results
// come back in ascending weight order.
type weightedAllCollector struct {
	alphabet *alphabet
	entries  []weightedEntry
}

func newWeightedAllCollector(a *alphabet) *weightedAllCollector {
	return &weightedAllCollector{alphabet: a}
}

func (c *weightedAllCollector) note(weight float32, output []SymbolNumber) {
	c.entries = append(c.entries, weightedEntry{weight: weight, parts: stringsOf(c.alphabet, output)})
}

func (c *weightedAllCollector) results(opts LookupOptions) [][]string {
	return applyBeamAndNBest(c.entries, opts)
}

// weightedUniqueCollector keeps the lowest weight seen for each distinct
// analysis string.
type weightedUniqueCollector struct {
	alphabet *alphabet
	best     map[string]float32
	order    []string
	parts    map[string][]string
}

func newWeightedUniqueCollector(a *alphabet) *weightedUniqueCollector {
	return &weightedUniqueCollector{alphabet: a, best: map[string]float32{}, parts: map[string][]string{}}
}

func (c *weightedUniqueCollector) note(weight float32, output []SymbolNumber) {
	parts := stringsOf(c.alphabet, output)
	key := joinParts(parts)
	if prev, ok := c.best[key]; !ok || prev > weight {
		if !ok {
			c.order = append(c.order, key)
		}
		c.best[key] = weight
		c.parts[key] = parts
	}
}

func (c *weightedUniqueCollector) results(opts LookupOptions) [][]string {
	entries := make([]weightedEntry, len(c.order))
	for i, k := range c.order {
		entries[i] = weightedEntry{weight: c.best[k], parts: c.parts[k]}
	}
	return applyBeamAndNBest(entries, opts)
}

// applyBeamAndNBest sorts ascending by weight, then walks the list
// counting every visited entry toward NBest (even ones rejected by the
// beam), with the beam's reference weight pinned to the very first entry
// visited.
func applyBeamAndNBest(entries []weightedEntry, opts LookupOptions) [][]string {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].weight < entries[j].weight })

	nBest := opts.NBest
	if nBest <= 0 {
		nBest = len(entries)
	}

	out := make([][]string, 0, len(entries))
	lowest := float32(0)
	for i, e := range entries {
		if i >= nBest {
			break
		}
		if i == 0 {
			lowest = e.weight
		}
		if opts.Beam == nil || float64(e.weight) <= float64(lowest)+*opts.Beam {
			out = append(out, e.parts)
		}
	}
	return out
}
