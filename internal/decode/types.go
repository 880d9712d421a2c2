package decode

import "github.com/sim86/sim86/internal/enc"

// MemTerm is one optional base/index register contributing to an
// effective address.
type MemTerm struct {
	Reg     RegAccess
	Present bool
}

// MemAccess describes a memory operand: up to two base/index register
// terms plus a displacement, combined per spec §3 — sum of present
// term registers plus Disp, truncated to 16 bits. Segment selection
// (SS if the first term is BP, DS otherwise) lives in the machine
// package, which is the only place that reads segment registers.
type MemAccess struct {
	Terms [2]MemTerm
	Disp  int16
	Size  Size

	// Direct reports a mod=00,rm=110 direct address: both terms absent
	// and Disp holds the full 16-bit absolute offset rather than a
	// signed displacement added to a base.
	Direct bool
}

// ImmAccess is an immediate value (or, reused verbatim, an IPINC
// relative branch displacement).
type ImmAccess struct {
	Value int16
	Size  Size
}

// ArgKind tags the variant held by an OpcodeArg.
type ArgKind uint8

const (
	ArgNone ArgKind = iota
	ArgRegister
	ArgMemory
	ArgImmediate
	ArgIpinc
)

// OpcodeArg is a tagged union over the four kinds of operand an Opcode
// can carry as dst or src.
type OpcodeArg struct {
	Kind ArgKind
	Reg  RegAccess
	Mem  MemAccess
	Imm  ImmAccess
}

// Opcode is a fully decoded instruction: mnemonic, at most two
// arguments, and the number of bytes it consumed (used by both the
// printer, transitively, and the simulator to advance IP).
type Opcode struct {
	Type enc.Mnemonic
	Dst  OpcodeArg
	Src  OpcodeArg
	Len  uint8
}
