package sim

import (
	"testing"

	"github.com/sim86/sim86/internal/decode"
	"github.com/sim86/sim86/internal/enc"
	"github.com/sim86/sim86/internal/machine"
)

func run(t *testing.T, m *machine.Memory, code []byte) {
	t.Helper()
	if err := m.LoadCode(code); err != nil {
		t.Fatalf("LoadCode: %v", err)
	}
	for {
		ip := m.RegWord(decode.IP)
		if uint32(ip) >= m.CodeEnd {
			return
		}
		op, _, err := decode.Decode(m.RAM[ip:m.CodeEnd])
		if err != nil {
			t.Fatalf("decode at ip=%d: %v", ip, err)
		}
		Step(m, op)
	}
}

func TestMovRegReg(t *testing.T) {
	m := machine.New()
	m.SetRegWord(decode.BX, 0x1234)
	run(t, m, []byte{0x89, 0xD9}) // mov cx, bx

	if got := m.RegWord(decode.CX); got != 0x1234 {
		t.Fatalf("got cx=0x%04x, want 0x1234", got)
	}
	if got := m.RegWord(decode.BX); got != 0x1234 {
		t.Fatalf("bx changed: got 0x%04x", got)
	}
	if got := m.RegWord(decode.IP); got != 2 {
		t.Fatalf("got ip=%d, want 2", got)
	}
	if m.Flags != (machine.Flags{}) {
		t.Fatalf("mov must not touch flags, got %+v", m.Flags)
	}
}

func TestAddSignExtendedImmediate(t *testing.T) {
	m := machine.New()
	m.SetRegWord(decode.AX, 10)
	run(t, m, []byte{0x83, 0xC0, 0xFB}) // add ax, -5

	if got := m.RegWord(decode.AX); got != 5 {
		t.Fatalf("got ax=%d, want 5", got)
	}
	// -5 sign-extends to 0xFFFB; 10+0xFFFB overflows 16 bits, so CF is set
	// the same way original_source/sim86/src/opcode_run.c's set_add_carry
	// (b > RegSize_max - a) sets it for this pair.
	if !m.Flags.Carry || m.Flags.Zero || m.Flags.Sign {
		t.Fatalf("unexpected flags: %+v", m.Flags)
	}
}

func TestSubToZero(t *testing.T) {
	m := machine.New()
	m.SetRegWord(decode.AX, 7)
	run(t, m, []byte{0x29, 0xC0}) // sub ax, ax

	if got := m.RegWord(decode.AX); got != 0 {
		t.Fatalf("got ax=%d, want 0", got)
	}
	if !m.Flags.Zero || m.Flags.Sign || m.Flags.Carry || m.Flags.Overflow {
		t.Fatalf("got flags %+v, want ZF only", m.Flags)
	}
	if !m.Flags.Parity {
		t.Fatalf("expected PF=1 for result 0 (even parity)")
	}
}

func TestConditionalJumpTakenSkipsInstruction(t *testing.T) {
	m := machine.New()
	// mov al,5; cmp al,5; je +2; mov al,0
	run(t, m, []byte{0xB0, 0x05, 0x3C, 0x05, 0x74, 0x02, 0xB0, 0x00})

	if got := m.RegByte(decode.RegAccess{Reg: decode.AX, Size: decode.Byte, Offset: decode.Low}); got != 5 {
		t.Fatalf("got al=%d, want 5 (jump should have skipped the reset)", got)
	}
	if got := m.RegWord(decode.IP); got != 8 {
		t.Fatalf("got ip=%d, want 8", got)
	}
}

func TestJumpOffsetLaw(t *testing.T) {
	m := machine.New()
	m.SetRegWord(decode.IP, 100)
	op := decode.Opcode{
		Type: enc.JE,
		Dst:  decode.OpcodeArg{Kind: decode.ArgIpinc, Imm: decode.ImmAccess{Value: 10, Size: decode.Byte}},
		Len:  2,
	}
	m.Flags.Zero = true
	Step(m, op)
	if got := m.RegWord(decode.IP); got != 100+2+10 {
		t.Fatalf("got ip=%d, want %d", got, 100+2+10)
	}
}

func TestLoopDecrementsThenTests(t *testing.T) {
	m := machine.New()
	m.SetRegWord(decode.CX, 1)
	m.SetRegWord(decode.IP, 0)
	op := decode.Opcode{
		Type: enc.LOOP,
		Dst:  decode.OpcodeArg{Kind: decode.ArgIpinc, Imm: decode.ImmAccess{Value: -2, Size: decode.Byte}},
		Len:  2,
	}
	Step(m, op)
	if got := m.RegWord(decode.CX); got != 0 {
		t.Fatalf("got cx=%d, want 0", got)
	}
	if got := m.RegWord(decode.IP); got != 2 {
		t.Fatalf("loop should not jump once cx reaches 0, got ip=%d", got)
	}
}

func TestAndClearsCarryAndOverflow(t *testing.T) {
	m := machine.New()
	m.SetRegWord(decode.AX, 0xFF00)
	m.Flags.Carry = true
	m.Flags.Overflow = true
	run(t, m, []byte{0x25, 0x0F, 0x00}) // and ax, 0x000F

	if got := m.RegWord(decode.AX); got != 0 {
		t.Fatalf("got ax=0x%04x, want 0", got)
	}
	if m.Flags.Carry || m.Flags.Overflow {
		t.Fatalf("and must clear CF and OF, got %+v", m.Flags)
	}
	if !m.Flags.Zero {
		t.Fatalf("expected ZF=1")
	}
}

func TestAdcUsesCarryIn(t *testing.T) {
	m := machine.New()
	m.SetRegWord(decode.AX, 0x0001)
	m.Flags.Carry = true
	op := decode.Opcode{
		Type: enc.ADC,
		Dst:  decode.OpcodeArg{Kind: decode.ArgRegister, Reg: decode.RegAccess{Reg: decode.AX, Size: decode.Word}},
		Src:  decode.OpcodeArg{Kind: decode.ArgImmediate, Imm: decode.ImmAccess{Value: 1, Size: decode.Word}},
		Len:  3,
	}
	Step(m, op)
	if got := m.RegWord(decode.AX); got != 3 {
		t.Fatalf("got ax=%d, want 3 (1+1+carry-in)", got)
	}
}

func TestCmpDoesNotWriteBack(t *testing.T) {
	m := machine.New()
	m.SetRegWord(decode.AX, 5)
	run(t, m, []byte{0x3C, 0x05}) // cmp al, 5

	if got := m.RegWord(decode.AX); got != 5 {
		t.Fatalf("cmp must not modify its destination, got ax=%d", got)
	}
	if !m.Flags.Zero {
		t.Fatalf("expected ZF=1 from cmp al,5 with al=5")
	}
}
