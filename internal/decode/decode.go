package decode

import (
	"errors"

	"github.com/sim86/sim86/internal/bits"
	"github.com/sim86/sim86/internal/enc"
)

// Decode matches the start of code against the encoding table, consumes
// the matched encoding's fields and tail bytes, and returns the fully
// resolved Opcode plus the number of bytes consumed. See spec §4.D for
// the step-by-step algorithm this function implements.
func Decode(code []byte) (Opcode, int, error) {
	e, _, err := enc.Match(code)
	if err != nil {
		return Opcode{}, 0, classify(err)
	}
	if e == nil {
		return Opcode{}, 0, ErrUnknownOpcode
	}

	r := bits.NewReader(code)
	fs, err := enc.ParseBits(e, r)
	if err != nil {
		// Match already proved this encoding parses cleanly; a failure
		// here means Table and Match disagree, a pure programming bug.
		return Opcode{}, 0, ErrInvalid
	}

	w := fs.Val[enc.W]
	s := fs.Val[enc.S]
	mod := fs.Val[enc.Mod]
	rm := fs.Val[enc.Rm]

	direct := fs.Has[enc.Mod] && mod == 0b00 && rm == 0b110

	dispLen := 0
	switch {
	case direct || (fs.Has[enc.Mod] && mod == 0b10):
		dispLen = 2
	case fs.Has[enc.Mod] && mod == 0b01:
		dispLen = 1
	}

	dataLen := 0
	switch {
	case fs.Has[enc.DataIfW] && w == 1 && s == 0:
		dataLen = 2
	case fs.Has[enc.Data]:
		dataLen = 1
	}

	ipincLen := 0
	switch {
	case fs.Has[enc.Ipinc16]:
		ipincLen = 2
	case fs.Has[enc.Ipinc8]:
		ipincLen = 1
	}

	dispVal, err := r.Bytes(dispLen)
	if err != nil {
		return Opcode{}, 0, classify(err)
	}
	dataVal, err := r.Bytes(dataLen)
	if err != nil {
		return Opcode{}, 0, classify(err)
	}
	ipincVal, err := r.Bytes(ipincLen)
	if err != nil {
		return Opcode{}, 0, classify(err)
	}

	var regArg OpcodeArg
	haveReg := fs.Has[enc.Reg]
	if haveReg {
		regArg = OpcodeArg{Kind: ArgRegister, Reg: RegFromIndex(fs.Val[enc.Reg], w)}
	}

	var rmArg OpcodeArg
	haveMod := fs.Has[enc.Mod]
	if haveMod {
		if mod == 0b11 {
			rmArg = OpcodeArg{Kind: ArgRegister, Reg: RegFromIndex(rm, w)}
		} else {
			rmArg = OpcodeArg{Kind: ArgMemory, Mem: buildMemAccess(mod, rm, dispVal, w, direct)}
		}
	}

	var dst, src OpcodeArg
	switch {
	case haveMod && haveReg:
		if fs.Val[enc.D] == 1 {
			dst, src = regArg, rmArg
		} else {
			dst, src = rmArg, regArg
		}
	case haveMod && !haveReg:
		dst = rmArg
	case !haveMod && haveReg:
		if fs.Val[enc.D] == 1 {
			dst = regArg
		} else {
			src = regArg
		}
	}

	// Step 6: the first still-empty slot (dst checked before src) takes
	// the immediate, or the IPINC value if this encoding carries one.
	target := &dst
	if dst.Kind != ArgNone {
		target = &src
	}
	switch {
	case ipincLen > 0:
		size := Byte
		if ipincLen == 2 {
			size = Word
		}
		*target = OpcodeArg{Kind: ArgIpinc, Imm: ImmAccess{Value: ipincVal, Size: size}}
	case dataLen > 0:
		size := Byte
		if dataLen == 2 || s == 1 {
			size = Word
		}
		*target = OpcodeArg{Kind: ArgImmediate, Imm: ImmAccess{Value: dataVal, Size: size}}
	}

	length := r.Pos()
	return Opcode{Type: e.Op, Dst: dst, Src: src, Len: uint8(length)}, length, nil
}

func classify(err error) error {
	if errors.Is(err, bits.ErrEnd) {
		return ErrEnd
	}
	return ErrInvalid
}
