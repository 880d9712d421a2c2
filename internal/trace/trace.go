// Package trace formats per-instruction state deltas and the end-of-run
// register/flags summary (spec §4.H), grounded on the snapshot-then-diff
// approach in original_source/sim86's Opcode_run trace block.
package trace

import (
	"fmt"
	"io"

	"github.com/sim86/sim86/internal/decode"
	"github.com/sim86/sim86/internal/machine"
	"github.com/sim86/sim86/internal/printer"
	"github.com/sim86/sim86/internal/sim"
)

// Logger writes delta lines to w as instructions execute.
type Logger struct {
	w io.Writer
}

// NewLogger returns a Logger writing to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Step snapshots m's observable state, executes op via sim.Step, then
// writes one line: the decompiled instruction, " ;", a
// " name:0x<old>->0x<new>" token for each changed memory destination and
// register (Register-enum order), then " flags:<old>-><new>" if the flags
// string changed.
func (l *Logger) Step(m *machine.Memory, op decode.Opcode) {
	var ogMem uint16
	hasMemDst := op.Dst.Kind == decode.ArgMemory
	if hasMemDst {
		ogMem = m.ReadMem(op.Dst.Mem)
	}
	var ogRegs [decode.RegisterCount]uint16
	ogRegs = m.Registers
	ogFlags := m.Flags

	sim.Step(m, op)

	fmt.Fprintf(l.w, "%s ;", printer.Format(op))

	if hasMemDst {
		newMem := m.ReadMem(op.Dst.Mem)
		if newMem != ogMem {
			fmt.Fprintf(l.w, " %s:0x%x->0x%x", printer.FormatMem(op.Dst.Mem), ogMem, newMem)
		}
	}

	for r := decode.Register(0); r < decode.RegisterCount; r++ {
		if ogRegs[r] != m.Registers[r] {
			fmt.Fprintf(l.w, " %s:0x%x->0x%x", r, ogRegs[r], m.Registers[r])
		}
	}

	if og, cur := ogFlags.String(), m.Flags.String(); og != cur {
		fmt.Fprintf(l.w, " flags:%s->%s", og, cur)
	}

	fmt.Fprintln(l.w)
}

// FinalBlock writes the blank-line-prefixed end-of-run summary: every
// non-zero register in Register-enum order (IP force-included
// regardless of value, a deliberate supplement — see SPEC_FULL.md), then
// the flags line if any flag is set.
func FinalBlock(w io.Writer, m *machine.Memory) {
	fmt.Fprintf(w, "\nFinal registers:\n")
	for r := decode.Register(0); r < decode.RegisterCount; r++ {
		v := m.Registers[r]
		if v == 0 && r != decode.IP {
			continue
		}
		fmt.Fprintf(w, "      %s: 0x%04x (%d)\n", r, v, v)
	}
	if s := m.Flags.String(); s != "" {
		fmt.Fprintf(w, "   flags: %s\n", s)
	}
}
