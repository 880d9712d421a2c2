package machine

import (
	"testing"

	"github.com/sim86/sim86/internal/decode"
)

func TestByteHalvesOverlapWord(t *testing.T) {
	m := New()
	al := decode.RegAccess{Reg: decode.AX, Size: decode.Byte, Offset: decode.Low}
	ah := decode.RegAccess{Reg: decode.AX, Size: decode.Byte, Offset: decode.High}

	m.SetRegByte(al, 0x34)
	m.SetRegByte(ah, 0x12)

	if got := m.RegWord(decode.AX); got != 0x1234 {
		t.Fatalf("got ax=0x%04x, want 0x1234", got)
	}

	m.SetRegByte(al, 0xFF)
	if got := m.RegByte(ah); got != 0x12 {
		t.Fatalf("writing al changed ah: got 0x%02x, want 0x12", got)
	}
}

func TestMemoryLittleEndian(t *testing.T) {
	m := New()
	mem := decode.MemAccess{Direct: true, Disp: 10, Size: decode.Word}
	m.WriteMem(mem, 0xBEEF)
	if m.RAM[10] != 0xEF || m.RAM[11] != 0xBE {
		t.Fatalf("got bytes %02x %02x, want ef be", m.RAM[10], m.RAM[11])
	}
	if got := m.ReadMem(mem); got != 0xBEEF {
		t.Fatalf("got 0x%04x, want 0xbeef", got)
	}
}

func TestByteWriteDoesNotTouchNeighbor(t *testing.T) {
	m := New()
	m.RAM[11] = 0xAA
	mem := decode.MemAccess{Direct: true, Disp: 10, Size: decode.Byte}
	m.WriteMem(mem, 0x12)
	if m.RAM[11] != 0xAA {
		t.Fatalf("byte write touched the following byte: got 0x%02x", m.RAM[11])
	}
}

func TestSegmentSelectionPrefersSSForBP(t *testing.T) {
	m := New()
	m.SetRegWord(decode.BP, 5)
	m.SetRegWord(decode.SS, 0)
	m.SetRegWord(decode.DS, 0)
	mem := decode.MemAccess{
		Terms: [2]decode.MemTerm{{Reg: decode.RegAccess{Reg: decode.BP, Size: decode.Word}, Present: true}},
		Size:  decode.Word,
	}
	if seg := segmentFor(mem); seg != decode.SS {
		t.Fatalf("got %v, want SS", seg)
	}
}

func TestSegmentSelectionDefaultsToDS(t *testing.T) {
	mem := decode.MemAccess{
		Terms: [2]decode.MemTerm{{Reg: decode.RegAccess{Reg: decode.BX, Size: decode.Word}, Present: true}},
		Size:  decode.Word,
	}
	if seg := segmentFor(mem); seg != decode.DS {
		t.Fatalf("got %v, want DS", seg)
	}
}

func TestLoadCodeTooLarge(t *testing.T) {
	m := New()
	if err := m.LoadCode(make([]byte, RAMSize+1)); err != ErrCodeTooLarge {
		t.Fatalf("got %v, want ErrCodeTooLarge", err)
	}
}
