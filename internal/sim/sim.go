// Package sim executes decoded instructions against machine state with
// 8086-accurate semantics (spec §4.G). Dispatch is a table indexed by
// mnemonic, matching the function-pointer style the original C source
// used for simulation (spec §9).
package sim

import (
	"fmt"

	"github.com/sim86/sim86/internal/decode"
	"github.com/sim86/sim86/internal/enc"
	"github.com/sim86/sim86/internal/machine"
)

type handler func(m *machine.Memory, op decode.Opcode)

var dispatch = buildDispatch()

func buildDispatch() map[enc.Mnemonic]handler {
	d := map[enc.Mnemonic]handler{
		enc.MOV: movHandler,
		enc.ADD: aluHandler(enc.ADD),
		enc.ADC: aluHandler(enc.ADC),
		enc.SUB: aluHandler(enc.SUB),
		enc.SBB: aluHandler(enc.SBB),
		enc.CMP: aluHandler(enc.CMP),
		enc.AND: aluHandler(enc.AND),
		enc.OR:  aluHandler(enc.OR),
		enc.XOR: aluHandler(enc.XOR),

		enc.LOOP:   loopHandler(enc.LOOP),
		enc.LOOPE:  loopHandler(enc.LOOPE),
		enc.LOOPNE: loopHandler(enc.LOOPNE),
		enc.JCXZ:   jcxzHandler,
	}
	for _, m := range []enc.Mnemonic{
		enc.JE, enc.JL, enc.JLE, enc.JB, enc.JBE, enc.JP, enc.JO, enc.JS,
		enc.JNE, enc.JNL, enc.JNLE, enc.JNB, enc.JNBE, enc.JNP, enc.JNO, enc.JNS,
	} {
		d[m] = jccHandler(m)
	}
	return d
}

// Step advances IP by the opcode's length and then runs its handler, in
// that order — relative jumps are specified from the end of the jump
// instruction (spec §3 invariant).
func Step(m *machine.Memory, op decode.Opcode) {
	m.SetRegWord(decode.IP, m.RegWord(decode.IP)+uint16(op.Len))
	h, ok := dispatch[op.Type]
	if !ok {
		panic(fmt.Sprintf("sim: unhandled mnemonic %v", op.Type))
	}
	h(m, op)
}

func movHandler(m *machine.Memory, op decode.Opcode) {
	m.Write(op.Dst, m.Read(op.Src))
}

func aluHandler(op enc.Mnemonic) handler {
	return func(m *machine.Memory, o decode.Opcode) {
		size := m.SizeOf(o.Dst)
		mask, _ := maskFor(size)
		l := uint32(m.Read(o.Dst)) & mask
		r := uint32(m.Read(o.Src)) & mask

		var result uint32
		var cf, af, of bool
		switch op {
		case enc.ADD:
			result, cf, af, of = addCarry(l, r, 0, size)
		case enc.ADC:
			result, cf, af, of = addCarry(l, r, boolToU32(m.Flags.Carry), size)
		case enc.SUB:
			result, cf, af, of = subBorrow(l, r, 0, size)
		case enc.SBB:
			result, cf, af, of = subBorrow(l, r, boolToU32(m.Flags.Carry), size)
		case enc.CMP:
			result, cf, af, of = subBorrow(l, r, 0, size)
		case enc.AND:
			result = l & r
		case enc.OR:
			result = l | r
		case enc.XOR:
			result = l ^ r
		}

		sf, zf, pf := szp(result, size)
		m.Flags.Sign, m.Flags.Zero, m.Flags.Parity = sf, zf, pf

		switch op {
		case enc.ADD, enc.ADC, enc.SUB, enc.SBB, enc.CMP:
			m.Flags.Carry, m.Flags.AuxCarry, m.Flags.Overflow = cf, af, of
		case enc.AND, enc.OR, enc.XOR:
			m.Flags.Carry, m.Flags.Overflow, m.Flags.AuxCarry = false, false, false
		}

		if op != enc.CMP {
			m.Write(o.Dst, uint16(result))
		}
	}
}

func jccHandler(m enc.Mnemonic) handler {
	cond := jccConditions[m]
	return func(mem *machine.Memory, op decode.Opcode) {
		if cond(mem.Flags) {
			takeIpinc(mem, op)
		}
	}
}

var jccConditions = map[enc.Mnemonic]func(machine.Flags) bool{
	enc.JE:  func(f machine.Flags) bool { return f.Zero },
	enc.JNE: func(f machine.Flags) bool { return !f.Zero },
	enc.JL:  func(f machine.Flags) bool { return f.Sign != f.Overflow },
	enc.JNL: func(f machine.Flags) bool { return f.Sign == f.Overflow },
	enc.JLE: func(f machine.Flags) bool { return (f.Sign != f.Overflow) || f.Zero },
	enc.JNLE: func(f machine.Flags) bool {
		return (f.Sign == f.Overflow) && !f.Zero
	},
	enc.JB:   func(f machine.Flags) bool { return f.Carry },
	enc.JNB:  func(f machine.Flags) bool { return !f.Carry },
	enc.JBE:  func(f machine.Flags) bool { return f.Carry || f.Zero },
	enc.JNBE: func(f machine.Flags) bool { return !f.Carry && !f.Zero },
	enc.JP:   func(f machine.Flags) bool { return f.Parity },
	enc.JNP:  func(f machine.Flags) bool { return !f.Parity },
	enc.JO:   func(f machine.Flags) bool { return f.Overflow },
	enc.JNO:  func(f machine.Flags) bool { return !f.Overflow },
	enc.JS:   func(f machine.Flags) bool { return f.Sign },
	enc.JNS:  func(f machine.Flags) bool { return !f.Sign },
}

func loopHandler(m enc.Mnemonic) handler {
	return func(mem *machine.Memory, op decode.Opcode) {
		cx := mem.RegWord(decode.CX) - 1
		mem.SetRegWord(decode.CX, cx)
		take := cx != 0
		switch m {
		case enc.LOOPE:
			take = take && mem.Flags.Zero
		case enc.LOOPNE:
			take = take && !mem.Flags.Zero
		}
		if take {
			takeIpinc(mem, op)
		}
	}
}

func jcxzHandler(mem *machine.Memory, op decode.Opcode) {
	if mem.RegWord(decode.CX) == 0 {
		takeIpinc(mem, op)
	}
}

// takeIpinc applies a taken branch's relative displacement to IP. The
// ipinc value always lands in Dst per the decoder's operand-slot rule.
func takeIpinc(mem *machine.Memory, op decode.Opcode) {
	ip := mem.RegWord(decode.IP)
	mem.SetRegWord(decode.IP, uint16(int32(ip)+int32(op.Dst.Imm.Value)))
}
