package hfstol

import (
	"bufio"
	"fmt"
	"strings"
)

// alphabet is the symbol table plus the parsed flag diacritic table,
// indexed in parallel by SymbolNumber. Symbol lookup only ever goes from
// number to string (the reverse direction is handled by the byte trie
// tokenizer in trie.go, built over the same strings), so unlike a general
// vocabulary there is no string-to-number side to maintain.
type alphabet struct {
	symbols     []string                 // indexed by SymbolNumber
	flags       []flagDiacriticOperation // indexed by SymbolNumber, parallel to symbols
	numFeatures int
}

// parseAlphabet reads exactly h.NumberOfSymbols NUL-terminated strings from
// r and classifies each as either a literal symbol or a flag diacritic of
// the form "@OP.FEATURE.VALUE@" / "@OP.FEATURE@".
func parseAlphabet(r *bufio.Reader, h *header) (*alphabet, error) {
	a := &alphabet{
		symbols: make([]string, h.NumberOfSymbols),
		flags:   make([]flagDiacriticOperation, h.NumberOfSymbols),
	}
	for k := range a.flags {
		a.flags[k] = flagDiacriticOperation{Feature: noSymbol}
	}
	features := map[string]SymbolNumber{}
	// The empty value ("no value given", e.g. "@C.FEATURE@") is pinned to
	// id 0 before any symbol is read; every other value is interned
	// starting at 1.
	values := map[string]int16{"": 0}
	nextValue := int16(1)

	for k := SymbolNumber(0); k < h.NumberOfSymbols; k++ {
		line, err := r.ReadString(0)
		if err != nil {
			return nil, fmt.Errorf("%w: symbol %d: %v", ErrBadHeader, k, err)
		}
		line = strings.TrimSuffix(line, "\x00")
		if len(line) >= 1000 {
			return nil, fmt.Errorf("%w: symbol %d is 1000 bytes or longer", ErrBadHeader, k)
		}

		if op, ok := parseFlagDiacriticSymbol(line, features, values, &nextValue, &a.numFeatures); ok {
			a.flags[k] = op
			a.symbols[k] = ""
			continue
		}
		a.symbols[k] = line
	}
	// The first symbol is epsilon, which must never print regardless of
	// what the file spells it as (commonly "@_EPSILON_SYMBOL_@").
	if len(a.symbols) > 0 {
		a.symbols[0] = ""
	}
	return a, nil
}

// parseFlagDiacriticSymbol recognizes "@P.FEATURE.VALUE@"-shaped symbols
// and interns FEATURE/VALUE into small integers shared across the whole
// alphabet.
func parseFlagDiacriticSymbol(line string, features map[string]SymbolNumber, values map[string]int16, nextValue *int16, numFeatures *int) (flagDiacriticOperation, bool) {
	if len(line) < 5 || line[0] != '@' || line[len(line)-1] != '@' || line[2] != '.' {
		return flagDiacriticOperation{}, false
	}
	var op flagDiacriticOperator
	switch line[1] {
	case 'P':
		op = flagP
	case 'N':
		op = flagN
	case 'R':
		op = flagR
	case 'D':
		op = flagD
	case 'C':
		op = flagC
	case 'U':
		op = flagU
	default:
		return flagDiacriticOperation{}, false
	}

	body := line[3 : len(line)-1]
	feat, val, _ := strings.Cut(body, ".")

	featID, ok := features[feat]
	if !ok {
		featID = SymbolNumber(*numFeatures)
		features[feat] = featID
		*numFeatures++
	}

	// Every value string other than "" is interned in file order, starting
	// at 1; "" was pre-seeded to 0 above so a value-less flag always reads
	// as the neutral value regardless of what other values this alphabet
	// happens to define.
	valID, ok := values[val]
	if !ok {
		valID = *nextValue
		values[val] = valID
		*nextValue++
	}

	return flagDiacriticOperation{Operator: op, Feature: featID, Value: valID}, true
}

func (a *alphabet) symbolCount() uint16 { return uint16(len(a.symbols)) }

func (a *alphabet) stringOf(s SymbolNumber) string {
	if int(s) >= len(a.symbols) {
		return ""
	}
	return a.symbols[s]
}

func (a *alphabet) isFlagDiacritic(s SymbolNumber) bool {
	return int(s) < len(a.flags) && a.flags[s].isFlag()
}
