package hfstol

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// fixture describes one optimized-lookup binary to synthesize for a test.
// Building these by hand (rather than shipping a real compiled .hfstol
// fixture) keeps every byte of the table layout traceable to the scenario
// it is meant to exercise.
type fixture struct {
	weighted    bool
	numInput    uint16
	symbols     []string // symbols[0] must be "" (epsilon)
	indices     []indexRecord
	transitions []transitionRecord
}

func writeFixture(t *testing.T, f fixture) string {
	t.Helper()
	var buf bytes.Buffer

	boolFlags := [9]bool{f.weighted, false, false, false, false, false, false, false, false}
	for _, v := range []interface{}{
		uint16(f.numInput),
		uint16(len(f.symbols)),
		uint32(len(f.indices)),
		uint32(len(f.transitions)),
		uint32(0), // number_of_states: unused by the engine, not validated
		uint32(len(f.transitions)),
	} {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("binary.Write: %v", err)
		}
	}
	for _, v := range boolFlags {
		flag := uint32(0)
		if v {
			flag = 1
		}
		if err := binary.Write(&buf, binary.LittleEndian, flag); err != nil {
			t.Fatalf("binary.Write: %v", err)
		}
	}

	for _, s := range f.symbols {
		buf.WriteString(s)
		buf.WriteByte(0)
	}

	for _, idx := range f.indices {
		binary.Write(&buf, binary.LittleEndian, uint16(idx.Input))
		binary.Write(&buf, binary.LittleEndian, uint32(idx.Target))
	}

	for _, tr := range f.transitions {
		binary.Write(&buf, binary.LittleEndian, uint16(tr.Input))
		binary.Write(&buf, binary.LittleEndian, uint16(tr.Output))
		binary.Write(&buf, binary.LittleEndian, uint32(tr.Target))
		if f.weighted {
			bits := math.Float32bits(tr.Weight)
			binary.Write(&buf, binary.LittleEndian, bits)
		}
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.hfstol")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	return path
}

// tts is shorthand for transitionTargetTableStart-relative addressing when
// building fixtures by hand.
func tts(offset uint32) TableIndex { return transitionTargetTableStart + TableIndex(offset) }

// beam builds the LookupOptions.Beam pointer for a literal width.
func beam(b float64) *float64 { return &b }
