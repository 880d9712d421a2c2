package enc

// Mnemonic identifies an opcode type. Table order and Mnemonic order are
// deliberately decoupled — nothing requires entries in Table to appear
// in Mnemonic's iota order, and several mnemonics (the ALU family) have
// three Table entries apiece.
type Mnemonic uint8

const (
	MOV Mnemonic = iota
	ADD
	ADC
	SUB
	SBB
	CMP
	AND
	OR
	XOR

	JE
	JL
	JLE
	JB
	JBE
	JP
	JO
	JS
	JNE
	JNL
	JNLE
	JNB
	JNBE
	JNP
	JNO
	JNS

	LOOP
	LOOPE
	LOOPNE
	JCXZ

	mnemonicCount
)

var mnemonicNames = [mnemonicCount]string{
	MOV: "mov",
	ADD: "add", ADC: "adc", SUB: "sub", SBB: "sbb", CMP: "cmp",
	AND: "and", OR: "or", XOR: "xor",
	JE: "je", JL: "jl", JLE: "jle", JB: "jb", JBE: "jbe",
	JP: "jp", JO: "jo", JS: "js",
	JNE: "jne", JNL: "jnl", JNLE: "jnle", JNB: "jnb", JNBE: "jnbe",
	JNP: "jnp", JNO: "jno", JNS: "jns",
	LOOP: "loop", LOOPE: "loope", LOOPNE: "loopne", JCXZ: "jcxz",
}

// String renders the mnemonic in lowercase NASM form.
func (m Mnemonic) String() string {
	if int(m) < len(mnemonicNames) {
		return mnemonicNames[m]
	}
	return "??"
}

// IsConditionalJump reports whether m is one of the 16 Jcc mnemonics.
func IsConditionalJump(m Mnemonic) bool {
	return m >= JE && m <= JNS
}

// IsALU reports whether m is one of the eight two-operand ALU mnemonics.
func IsALU(m Mnemonic) bool {
	return m >= ADD && m <= XOR
}
