package hfstol

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// indexRecord is one entry of the index table. On the wire this is 6 bytes:
// a SymbolNumber followed by a uint32 target/weight union. Weighted and
// unweighted files share this same layout; weighted files additionally
// reinterpret Target as a float32 bit pattern when Input == noSymbol,
// exposed via finalWeight.
type indexRecord struct {
	Input  SymbolNumber
	Target TableIndex
}

// finalWeight reinterprets Target's bits as a float32. The file format
// overloads the target field of a final index slot to carry the final
// weight; only meaningful when Input == noSymbol.
func (r indexRecord) finalWeight() float32 {
	return math.Float32frombits(uint32(r.Target))
}

// transitionRecord is one entry of the transition table, normalized to a
// single Go shape regardless of whether the file is weighted (12 bytes on
// the wire: in, out, target, weight) or plain (8 bytes: in, out, target).
// Unweighted files decode with Weight == 0 throughout, so the search engine
// in engine.go never needs to branch on weightedness at the record level.
type transitionRecord struct {
	Input  SymbolNumber
	Output SymbolNumber
	Target TableIndex
	Weight float32
}

const (
	indexRecordSize              = 6
	transitionRecordSizePlain    = 8
	transitionRecordSizeWeighted = 12
)

// readIndexTable reads h.IndexTableSize fixed 6-byte records.
func readIndexTable(r io.Reader, h *header) ([]indexRecord, error) {
	buf := make([]byte, indexRecordSize*int(h.IndexTableSize))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: index table: %v", ErrBadHeader, err)
	}
	out := make([]indexRecord, h.IndexTableSize)
	for i := range out {
		off := i * indexRecordSize
		out[i] = indexRecord{
			Input:  SymbolNumber(binary.LittleEndian.Uint16(buf[off:])),
			Target: TableIndex(binary.LittleEndian.Uint32(buf[off+2:])),
		}
	}
	return out, nil
}

// readTransitionTable reads h.TransitionTableSize fixed records, 8 or 12
// bytes wide depending on h.Weighted, normalizing both into
// transitionRecord. Weighted tables additionally get two synthetic
// sentinel transitions (Input=Output=noSymbol, Target=noTableIndex)
// appended at the end, so a bucket scan that starts at the table's last
// real record always runs into a terminator instead of the table edge.
func readTransitionTable(r io.Reader, h *header) ([]transitionRecord, error) {
	recSize := transitionRecordSizePlain
	if h.Weighted {
		recSize = transitionRecordSizeWeighted
	}
	buf := make([]byte, recSize*int(h.TransitionTableSize))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: transition table: %v", ErrBadHeader, err)
	}
	out := make([]transitionRecord, h.TransitionTableSize, h.TransitionTableSize+2)
	for i := range out {
		off := i * recSize
		rec := transitionRecord{
			Input:  SymbolNumber(binary.LittleEndian.Uint16(buf[off:])),
			Output: SymbolNumber(binary.LittleEndian.Uint16(buf[off+2:])),
			Target: TableIndex(binary.LittleEndian.Uint32(buf[off+4:])),
		}
		if h.Weighted {
			rec.Weight = math.Float32frombits(binary.LittleEndian.Uint32(buf[off+8:]))
		}
		out[i] = rec
	}
	if h.Weighted {
		out = append(out,
			transitionRecord{Input: noSymbol, Output: noSymbol, Target: noTableIndex},
			transitionRecord{Input: noSymbol, Output: noSymbol, Target: noTableIndex},
		)
	}
	return out, nil
}
