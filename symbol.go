package hfstol

// SymbolNumber identifies an entry in a transducer's symbol table. It
// doubles as the alphabet for both input and output sides.
type SymbolNumber uint16

// TableIndex addresses either the index table or the transition table; the
// two share one address space, see transitionTargetTableStart.
type TableIndex uint32

const (
	// noSymbol marks the end of a symbol run or a table slot that no input
	// symbol occupies (epsilon is symbol 0, not noSymbol).
	noSymbol SymbolNumber = 0xFFFF
	// noTableIndex marks an absent target or an uninitialized index slot.
	noTableIndex TableIndex = 0xFFFFFFFF
	// transitionTargetTableStart is the first address of the transition
	// table when the index and transition tables share one address space.
	// An index whose target is below this value is itself an index-table
	// index; at or above it, subtracting it out gives a transition-table
	// offset.
	transitionTargetTableStart TableIndex = 0x80000000
)
