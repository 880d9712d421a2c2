package decode

// eaTerms gives the canonical 8086 effective-address base/index term(s)
// for each R/M field value, used whenever mod != 11 and the mod=00/rm=110
// direct-address special case does not apply. See spec §4.D.
var eaTerms = [8][2]MemTerm{
	0: {{Reg: RegAccess{Reg: BX, Size: Word}, Present: true}, {Reg: RegAccess{Reg: SI, Size: Word}, Present: true}},
	1: {{Reg: RegAccess{Reg: BX, Size: Word}, Present: true}, {Reg: RegAccess{Reg: DI, Size: Word}, Present: true}},
	2: {{Reg: RegAccess{Reg: BP, Size: Word}, Present: true}, {Reg: RegAccess{Reg: SI, Size: Word}, Present: true}},
	3: {{Reg: RegAccess{Reg: BP, Size: Word}, Present: true}, {Reg: RegAccess{Reg: DI, Size: Word}, Present: true}},
	4: {{Reg: RegAccess{Reg: SI, Size: Word}, Present: true}, {}},
	5: {{Reg: RegAccess{Reg: DI, Size: Word}, Present: true}, {}},
	6: {{Reg: RegAccess{Reg: BP, Size: Word}, Present: true}, {}},
	7: {{Reg: RegAccess{Reg: BX, Size: Word}, Present: true}, {}},
}

func sizeFromW(w uint8) Size {
	if w == 1 {
		return Word
	}
	return Byte
}

// buildMemAccess resolves a MOD/RM pair (mod != 11) plus its already-read
// displacement into a MemAccess.
func buildMemAccess(mod, rm uint8, disp int16, w uint8, direct bool) MemAccess {
	size := sizeFromW(w)
	if direct {
		return MemAccess{Disp: disp, Size: size, Direct: true}
	}
	return MemAccess{Terms: eaTerms[rm], Disp: disp, Size: size}
}
