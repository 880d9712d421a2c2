// Package decode turns a matched enc.Encoding plus a code prefix into a
// fully resolved Opcode and the number of bytes it consumed.
package decode

// Register names one of the 13 architectural registers.
type Register uint8

const (
	AX Register = iota
	BX
	CX
	DX
	SP
	BP
	SI
	DI
	ES
	CS
	SS
	DS
	IP

	RegisterCount
)

var registerNames = [RegisterCount]string{
	AX: "ax", BX: "bx", CX: "cx", DX: "dx",
	SP: "sp", BP: "bp", SI: "si", DI: "di",
	ES: "es", CS: "cs", SS: "ss", DS: "ds", IP: "ip",
}

// String renders the register's word-form NASM name.
func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return "??"
}

// Size distinguishes byte and word operand widths.
type Size uint8

const (
	Byte Size = iota
	Word
)

// HalfOffset names which half of a word register a byte access targets.
type HalfOffset uint8

const (
	None HalfOffset = iota
	Low
	High
)

// RegAccess identifies a register operand. Invariant: Size==Word implies
// Offset==None; Size==Byte implies Offset is Low or High and Reg is one
// of AX, BX, CX, DX.
type RegAccess struct {
	Reg    Register
	Size   Size
	Offset HalfOffset
}

var byteRegNames = [4][2]string{
	AX: {"al", "ah"}, CX: {"cl", "ch"}, DX: {"dl", "dh"}, BX: {"bl", "bh"},
}

// String renders the register access in NASM form: al/bl/cl/dl/ah/bh/ch/dh
// for byte accesses, the full word name otherwise.
func (a RegAccess) String() string {
	if a.Size == Byte {
		idx := 0
		if a.Offset == High {
			idx = 1
		}
		return byteRegNames[a.Reg][idx]
	}
	return a.Reg.String()
}

// regWordByIndex maps a 3-bit REG/RM field (w=1) to its register.
var regWordByIndex = [8]Register{AX, CX, DX, BX, SP, BP, SI, DI}

// regByteByIndex maps a 3-bit REG/RM field (w=0) to its register access.
var regByteByIndex = [8]RegAccess{
	{Reg: AX, Size: Byte, Offset: Low},
	{Reg: CX, Size: Byte, Offset: Low},
	{Reg: DX, Size: Byte, Offset: Low},
	{Reg: BX, Size: Byte, Offset: Low},
	{Reg: AX, Size: Byte, Offset: High},
	{Reg: CX, Size: Byte, Offset: High},
	{Reg: DX, Size: Byte, Offset: High},
	{Reg: BX, Size: Byte, Offset: High},
}

// RegFromIndex resolves a 3-bit register field (REG or RM with mod=11)
// to a RegAccess, per the w=0/w=1 tables in spec §3/§4.D.
func RegFromIndex(index uint8, w uint8) RegAccess {
	if w == 0 {
		return regByteByIndex[index]
	}
	return RegAccess{Reg: regWordByIndex[index], Size: Word, Offset: None}
}
