package decode

import "errors"

// The decoder surfaces exactly these three error classes (spec §4.D/§7).
// FILE_ERROR and SIM_INVARIANT are not decoder concerns: the former
// belongs to the CLI driver, the latter to the simulator.
var (
	// ErrEnd means the code buffer ran out in the middle of an opcode.
	ErrEnd = errors.New("decode: code ended in the middle of an opcode")

	// ErrInvalid means the encoding table itself is malformed (a
	// non-byte-aligned field group). This is a programming bug.
	ErrInvalid = errors.New("decode: invalid encoding (programming error)")

	// ErrUnknownOpcode means no table entry matched the code prefix.
	ErrUnknownOpcode = errors.New("decode: unknown opcode")
)
