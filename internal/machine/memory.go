// Package machine holds the architectural state a simulated program
// runs against: a 1 MiB RAM image, the 13-register file, and the 9
// status/control flags, plus the typed accessors spec §4.F describes.
package machine

import (
	"errors"

	"github.com/sim86/sim86/internal/decode"
)

// RAMSize is the simulated machine's full 1 MiB address space.
const RAMSize = 1 << 20

// ErrCodeTooLarge means the input would not fit below the 1 MiB RAM
// ceiling. Loaded programs are also expected to respect the 64 KiB
// single-segment limit from spec §6, which the caller enforces before
// ever reaching LoadCode.
var ErrCodeTooLarge = errors.New("machine: code image larger than RAM")

// Memory is the simulator's entire architectural state. Segment
// registers remain zero for the lifetime of a sim86 session (spec §3),
// so every effective address degenerates to its 16-bit offset.
type Memory struct {
	RAM       [RAMSize]byte
	Registers [decode.RegisterCount]uint16
	Flags     Flags
	CodeEnd   uint32
}

// New returns a zeroed Memory ready to have code loaded into it.
func New() *Memory {
	return &Memory{}
}

// LoadCode copies code into RAM starting at offset 0 and records
// CodeEnd as one past the last loaded byte.
func (m *Memory) LoadCode(code []byte) error {
	if len(code) > len(m.RAM) {
		return ErrCodeTooLarge
	}
	copy(m.RAM[:], code)
	m.CodeEnd = uint32(len(code))
	return nil
}

// RegWord returns the 16-bit value of a register.
func (m *Memory) RegWord(r decode.Register) uint16 { return m.Registers[r] }

// SetRegWord assigns the 16-bit value of a register.
func (m *Memory) SetRegWord(r decode.Register, v uint16) { m.Registers[r] = v }

// RegByte returns the addressed half of an AX/BX/CX/DX register.
func (m *Memory) RegByte(a decode.RegAccess) uint8 {
	v := m.Registers[a.Reg]
	if a.Offset == decode.High {
		return uint8(v >> 8)
	}
	return uint8(v)
}

// SetRegByte assigns the addressed half of an AX/BX/CX/DX register,
// preserving the other half (spec §3 invariant: AH/AL overlap AX).
func (m *Memory) SetRegByte(a decode.RegAccess, b uint8) {
	v := m.Registers[a.Reg]
	if a.Offset == decode.High {
		v = (v & 0x00FF) | uint16(b)<<8
	} else {
		v = (v & 0xFF00) | uint16(b)
	}
	m.Registers[a.Reg] = v
}

// ReadReg returns a RegAccess's current value, zero-extended to 16 bits
// for byte accesses.
func (m *Memory) ReadReg(a decode.RegAccess) uint16 {
	if a.Size == decode.Byte {
		return uint16(m.RegByte(a))
	}
	return m.RegWord(a.Reg)
}

// WriteReg stores v into a RegAccess, masking to the access's size.
func (m *Memory) WriteReg(a decode.RegAccess, v uint16) {
	if a.Size == decode.Byte {
		m.SetRegByte(a, uint8(v))
		return
	}
	m.SetRegWord(a.Reg, v)
}

// segmentFor picks SS when the first EA term is BP, DS otherwise (spec
// §3 MemAccess). A direct address has no terms and always uses DS.
func segmentFor(mem decode.MemAccess) decode.Register {
	if !mem.Direct && mem.Terms[0].Present && mem.Terms[0].Reg.Reg == decode.BP {
		return decode.SS
	}
	return decode.DS
}

// effectiveAddress sums the present EA terms and the displacement,
// truncated to 16 bits.
func (m *Memory) effectiveAddress(mem decode.MemAccess) uint16 {
	if mem.Direct {
		return uint16(mem.Disp)
	}
	var off int32
	for _, t := range mem.Terms {
		if t.Present {
			off += int32(m.RegWord(t.Reg.Reg))
		}
	}
	off += int32(mem.Disp)
	return uint16(off)
}

// physicalAddress computes (seg<<4)+ea. Segment registers are always 0
// in this simulator, so this degenerates to the effective address, but
// the computation is kept explicit per spec §4.F / §3's note.
func (m *Memory) physicalAddress(mem decode.MemAccess) uint32 {
	seg := uint32(m.RegWord(segmentFor(mem)))
	ea := uint32(m.effectiveAddress(mem))
	return (seg<<4 + ea) & (RAMSize - 1)
}

// ReadMem loads a byte or little-endian word from the addressed memory
// location.
func (m *Memory) ReadMem(mem decode.MemAccess) uint16 {
	addr := m.physicalAddress(mem)
	if mem.Size == decode.Byte {
		return uint16(m.RAM[addr])
	}
	return uint16(m.RAM[addr]) | uint16(m.RAM[addr+1])<<8
}

// WriteMem stores a byte or little-endian word to the addressed memory
// location. A byte write never touches the following byte (spec §9's
// "independent arms" note on the source's BYTE/WORD write bug).
func (m *Memory) WriteMem(mem decode.MemAccess, v uint16) {
	addr := m.physicalAddress(mem)
	switch mem.Size {
	case decode.Byte:
		m.RAM[addr] = uint8(v)
	case decode.Word:
		m.RAM[addr] = uint8(v)
		m.RAM[addr+1] = uint8(v >> 8)
	}
}

// Read returns the current value of any readable operand. Reading an
// empty operand is a decoder bug, not a runtime condition, so it panics
// (spec §7's SIM_INVARIANT class).
func (m *Memory) Read(arg decode.OpcodeArg) uint16 {
	switch arg.Kind {
	case decode.ArgRegister:
		return m.ReadReg(arg.Reg)
	case decode.ArgMemory:
		return m.ReadMem(arg.Mem)
	case decode.ArgImmediate, decode.ArgIpinc:
		return uint16(arg.Imm.Value)
	default:
		panic("machine: read from empty operand")
	}
}

// Write stores v into a register or memory operand. Writing to an
// immediate or empty operand is a SIM_INVARIANT violation.
func (m *Memory) Write(arg decode.OpcodeArg, v uint16) {
	switch arg.Kind {
	case decode.ArgRegister:
		m.WriteReg(arg.Reg, v)
	case decode.ArgMemory:
		m.WriteMem(arg.Mem, v)
	default:
		panic("machine: write to non-writable operand")
	}
}

// SizeOf reports the operand width of arg, used by the simulator to
// pick 8-bit vs 16-bit flag arithmetic.
func (m *Memory) SizeOf(arg decode.OpcodeArg) decode.Size {
	switch arg.Kind {
	case decode.ArgRegister:
		return arg.Reg.Size
	case decode.ArgMemory:
		return arg.Mem.Size
	case decode.ArgImmediate, decode.ArgIpinc:
		return arg.Imm.Size
	default:
		panic("machine: size of empty operand")
	}
}
