// Package printer renders decode.Opcode values into NASM-syntax text.
// It is shared by the decompile path and the trace logger, which both
// need byte-for-byte identical textual forms (spec §4.E).
package printer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sim86/sim86/internal/decode"
)

// Header writes the NASM bits-16 preamble that precedes a decompiled
// program.
func Header(w io.Writer) error {
	_, err := io.WriteString(w, "bits 16\n\n")
	return err
}

// Format renders op as a single NASM instruction line, without a
// trailing newline.
func Format(op decode.Opcode) string {
	mnemonic := op.Type.String()
	switch {
	case op.Dst.Kind == decode.ArgNone && op.Src.Kind == decode.ArgNone:
		return mnemonic
	case op.Src.Kind == decode.ArgNone:
		return mnemonic + " " + formatArg(op.Dst, op.Src.Kind == decode.ArgMemory, op.Len)
	default:
		dstMem := op.Dst.Kind == decode.ArgMemory
		srcMem := op.Src.Kind == decode.ArgMemory
		return mnemonic + " " +
			formatArg(op.Dst, srcMem, op.Len) + ", " +
			formatArg(op.Src, dstMem, op.Len)
	}
}

// Write renders op as one NASM line terminated by a newline.
func Write(w io.Writer, op decode.Opcode) error {
	_, err := fmt.Fprintf(w, "%s\n", Format(op))
	return err
}

func formatArg(arg decode.OpcodeArg, otherIsMemory bool, length uint8) string {
	switch arg.Kind {
	case decode.ArgRegister:
		return arg.Reg.String()
	case decode.ArgMemory:
		return formatMem(arg.Mem)
	case decode.ArgImmediate:
		s := strconv.Itoa(int(arg.Imm.Value))
		if otherIsMemory {
			if arg.Imm.Size == decode.Byte {
				return "byte " + s
			}
			return "word " + s
		}
		return s
	case decode.ArgIpinc:
		// The relative displacement is measured from the byte after the
		// instruction; NASM's $ means "this instruction's own address",
		// so we add the instruction length back in (spec §4.E/GLOSSARY).
		n := int(arg.Imm.Value) + int(length)
		return fmt.Sprintf("$%+d", n)
	default:
		return ""
	}
}

// FormatMem renders a memory operand's address expression alone (no
// byte/word size prefix), the form the trace logger uses to name a
// memory destination in its delta lines.
func FormatMem(m decode.MemAccess) string {
	return formatMem(m)
}

func formatMem(m decode.MemAccess) string {
	if m.Direct {
		return fmt.Sprintf("[%d]", m.Disp)
	}
	s := "["
	first := true
	for _, t := range m.Terms {
		if !t.Present {
			continue
		}
		if !first {
			s += " + "
		}
		s += t.Reg.String()
		first = false
	}
	if m.Disp > 0 {
		if first {
			s += fmt.Sprintf("%d", m.Disp)
			first = false
		} else {
			s += fmt.Sprintf(" + %d", m.Disp)
		}
	} else if m.Disp < 0 {
		s += fmt.Sprintf(" - %d", -int(m.Disp))
	}
	return s + "]"
}
