package machine

import "strings"

// Flags holds the 9 status/control bits the simulator models (spec §3).
type Flags struct {
	Overflow  bool
	Direction bool
	Interrupt bool
	Trap      bool
	Sign      bool
	Zero      bool
	AuxCarry  bool
	Parity    bool
	Carry     bool
}

// String serializes the set flags in the fixed trace order C P A Z S O
// T I D, one letter per set flag, omitting clears. An all-clear Flags
// value serializes to the empty string.
func (f Flags) String() string {
	var b strings.Builder
	if f.Carry {
		b.WriteByte('C')
	}
	if f.Parity {
		b.WriteByte('P')
	}
	if f.AuxCarry {
		b.WriteByte('A')
	}
	if f.Zero {
		b.WriteByte('Z')
	}
	if f.Sign {
		b.WriteByte('S')
	}
	if f.Overflow {
		b.WriteByte('O')
	}
	if f.Trap {
		b.WriteByte('T')
	}
	if f.Interrupt {
		b.WriteByte('I')
	}
	if f.Direction {
		b.WriteByte('D')
	}
	return b.String()
}
