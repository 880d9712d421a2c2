// Command sim86 decompiles or simulates a raw 8086 machine-code file.
// Subcommand shape and the "sim86: error: <msg>" wire format mirror
// original_source/sim86/src/sim86.c's main(), rebuilt on cobra the way
// oisee-z80-optimizer/cmd/z80opt/main.go wires its subcommand tree.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sim86/sim86/internal/decode"
	"github.com/sim86/sim86/internal/loader"
	"github.com/sim86/sim86/internal/machine"
	"github.com/sim86/sim86/internal/printer"
	"github.com/sim86/sim86/internal/sim"
	"github.com/sim86/sim86/internal/trace"
)

var errLog = log.New(os.Stderr, "", 0)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: sim86 <cmd> <src_file>")
	fmt.Fprintln(os.Stderr, "Available commands: decompile, run, trace")
}

// decodeErrMessage turns one of the decoder's sentinel errors into the
// exact wording §7 assigns it.
func decodeErrMessage(err error, firstByte byte) string {
	switch {
	case err == decode.ErrEnd:
		return "Code ended in the middle of an opcode"
	case err == decode.ErrUnknownOpcode:
		return fmt.Sprintf("Unknown opcode '0x%02x'", firstByte)
	case err == decode.ErrInvalid:
		return "Invalid opcode code for encoding"
	default:
		return err.Error()
	}
}

// runDecompile writes the NASM header then one instruction line per
// decoded opcode, advancing IP by each opcode's length as it goes (§6).
func runDecompile(mem *machine.Memory, out *os.File) error {
	if err := printer.Header(out); err != nil {
		return err
	}
	for {
		ip := mem.RegWord(decode.IP)
		if uint32(ip) >= mem.CodeEnd {
			return nil
		}
		code := mem.RAM[ip:mem.CodeEnd]
		op, length, err := decode.Decode(code)
		if err != nil {
			return fmt.Errorf("%s", decodeErrMessage(err, code[0]))
		}
		if err := printer.Write(out, op); err != nil {
			return err
		}
		mem.SetRegWord(decode.IP, ip+uint16(length))
	}
}

// runProgram executes the loaded program to completion, optionally
// logging a trace of every instruction's state delta when logger is
// non-nil (§6's run vs trace outputs).
func runProgram(mem *machine.Memory, logger *trace.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	for {
		ip := mem.RegWord(decode.IP)
		if uint32(ip) >= mem.CodeEnd {
			break
		}
		code := mem.RAM[ip:mem.CodeEnd]
		op, _, derr := decode.Decode(code)
		if derr != nil {
			return fmt.Errorf("%s", decodeErrMessage(derr, code[0]))
		}
		if logger != nil {
			logger.Step(mem, op)
		} else {
			sim.Step(mem, op)
		}
	}

	if logger != nil {
		trace.FinalBlock(os.Stdout, mem)
	}
	return nil
}

func loadMemory(path string) (*machine.Memory, error) {
	code, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	mem := machine.New()
	if err := mem.LoadCode(code); err != nil {
		return nil, err
	}
	return mem, nil
}

func withOneArg(use, short string, fn func(path string) error) *cobra.Command {
	return &cobra.Command{
		Use:                   use,
		Short:                 short,
		Args:                  cobra.ArbitraryArgs,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		SilenceErrors:         true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				errLog.Print("sim86: error: Missing source file path")
				printUsage()
				os.Exit(1)
			}
			return fn(args[0])
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:           "sim86",
		Short:         "8086 decoder and simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		withOneArg("decompile <src_file>", "Disassemble a raw 8086 binary to NASM text", func(path string) error {
			mem, err := loadMemory(path)
			if err != nil {
				return err
			}
			return runDecompile(mem, os.Stdout)
		}),
		withOneArg("run <src_file>", "Execute a raw 8086 binary", func(path string) error {
			mem, err := loadMemory(path)
			if err != nil {
				return err
			}
			return runProgram(mem, nil)
		}),
		withOneArg("trace <src_file>", "Execute a raw 8086 binary, logging every state change", func(path string) error {
			mem, err := loadMemory(path)
			if err != nil {
				return err
			}
			logger := trace.NewLogger(dimWriter(os.Stdout))
			return runProgram(mem, logger)
		}),
	)

	if len(os.Args) < 2 {
		errLog.Print("sim86: error: Missing command and source file path")
		printUsage()
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		errLog.Printf("sim86: error: %s", err)
		if strings.Contains(err.Error(), "unknown command") {
			printUsage()
		}
		os.Exit(1)
	}
}

// dimWriter wraps stdout so the trace logger's " ;" separator renders
// dim when stdout is an interactive terminal, and plain when piped or
// redirected — trace's byte format (§8 determinism) must stay identical
// either way, so the dimming lives entirely in this thin wrapper rather
// than in trace.Logger itself.
func dimWriter(f *os.File) *dimmer {
	return &dimmer{f: f, tty: term.IsTerminal(int(f.Fd()))}
}

type dimmer struct {
	f   *os.File
	tty bool
}

func (d *dimmer) Write(p []byte) (int, error) {
	if !d.tty {
		return d.f.Write(p)
	}
	const dimOn, dimOff = "\x1b[2m", "\x1b[0m"
	out := make([]byte, 0, len(p)+8)
	for _, b := range p {
		if b == ';' {
			out = append(out, dimOn...)
			out = append(out, b)
			out = append(out, dimOff...)
			continue
		}
		out = append(out, b)
	}
	if _, err := d.f.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
