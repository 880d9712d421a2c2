package enc

// Encoding is one row of the table: a mnemonic plus the ordered field
// slots that describe its on-wire shape. The table is append-only and
// order-significant — Match returns the first row whose literal fields
// match the incoming bytes.
type Encoding struct {
	Op     Mnemonic
	Fields []Field
}

// aluOpsel is the 3-bit group-1 opcode extension used by the
// "immediate to r/m" form of the ALU family (100000sw / mod-opsel-rm).
var aluOpsel = map[Mnemonic]uint8{
	ADD: 0b000, OR: 0b001, ADC: 0b010, SBB: 0b011,
	AND: 0b100, SUB: 0b101, XOR: 0b110, CMP: 0b111,
}

// aluRegLit is the literal top-6-bits opcode prefix for the
// "register/memory with register" form of each ALU mnemonic (00SSS0dw).
var aluRegLit = map[Mnemonic]uint8{
	ADD: 0b000000, OR: 0b000010, ADC: 0b000100, SBB: 0b000110,
	AND: 0b001000, SUB: 0b001010, XOR: 0b001100, CMP: 0b001110,
}

// aluAccLit is the literal top-7-bits opcode prefix for the
// "immediate to accumulator" form of each ALU mnemonic (00SSS10w).
var aluAccLit = map[Mnemonic]uint8{
	ADD: 0b0000010, OR: 0b0000110, ADC: 0b0001010, SBB: 0b0001110,
	AND: 0b0010010, SUB: 0b0010110, XOR: 0b0011010, CMP: 0b0011110,
}

// aluFamily lists the eight two-operand ALU mnemonics in the order their
// encodings appear in the table.
var aluFamily = []Mnemonic{ADD, OR, ADC, SBB, AND, SUB, XOR, CMP}

// jccLit maps each conditional jump / loop-family mnemonic to its
// single-byte 8086 opcode.
var jccLit = map[Mnemonic]uint8{
	JO: 0x70, JNO: 0x71, JB: 0x72, JNB: 0x73, JE: 0x74, JNE: 0x75,
	JBE: 0x76, JNBE: 0x77, JS: 0x78, JNS: 0x79, JP: 0x7A, JNP: 0x7B,
	JL: 0x7C, JNL: 0x7D, JLE: 0x7E, JNLE: 0x7F,
	LOOPNE: 0xE0, LOOPE: 0xE1, LOOP: 0xE2, JCXZ: 0xE3,
}

// jccOrder lists the 20 single-byte jump/loop mnemonics in the order
// their rows appear in the table.
var jccOrder = []Mnemonic{
	JE, JL, JLE, JB, JBE, JP, JO, JS,
	JNE, JNL, JNLE, JNB, JNBE, JNP, JNO, JNS,
	LOOP, LOOPE, LOOPNE, JCXZ,
}

// Table is the static, immutable encoding table for every opcode sim86
// supports. See spec §6 for the source-of-truth bit layouts.
var Table = buildTable()

func buildTable() []Encoding {
	var t []Encoding

	// MOV, register/memory to/from register: 100010 D W MOD REG RM
	t = append(t, Encoding{MOV, []Field{
		Lit(6, 0b100010), dField(), wField(), modField(), regField(), rmField(),
	}})
	// MOV, immediate to register/memory: 1100011 W MOD 000 RM DATA DATA_IF_W
	t = append(t, Encoding{MOV, []Field{
		Lit(7, 0b1100011), wField(), modField(), Lit(3, 0b000), rmField(),
		dataField(), dataIfWField(), setD(0),
	}})
	// MOV, immediate to register: 1011 W REG DATA DATA_IF_W
	t = append(t, Encoding{MOV, []Field{
		Lit(4, 0b1011), wField(), regField(), dataField(), dataIfWField(), setD(1),
	}})
	// MOV, memory to accumulator: 1010000 W DISP
	t = append(t, Encoding{MOV, []Field{
		Lit(7, 0b1010000), wField(), dispField(),
		setMod(0b00), setRm(0b110), setD(1), setReg(0),
	}})
	// MOV, accumulator to memory: 1010001 W DISP
	t = append(t, Encoding{MOV, []Field{
		Lit(7, 0b1010001), wField(), dispField(),
		setMod(0b00), setRm(0b110), setD(0), setReg(0),
	}})

	// ALU family, grouped by form: first every register/memory with
	// register row, then every immediate to register/memory row, then
	// every immediate to accumulator row; within each group mnemonics
	// follow aluFamily order (matches 8086 opcode-space ordering).
	for _, op := range aluFamily {
		t = append(t, Encoding{op, []Field{
			Lit(6, aluRegLit[op]), dField(), wField(), modField(), regField(), rmField(),
		}})
	}
	for _, op := range aluFamily {
		t = append(t, Encoding{op, []Field{
			Lit(6, 0b100000), sField(), wField(), modField(), Lit(3, aluOpsel[op]), rmField(),
			dataField(), dataIfWField(),
		}})
	}
	for _, op := range aluFamily {
		t = append(t, Encoding{op, []Field{
			Lit(7, aluAccLit[op]), wField(), dataField(), dataIfWField(),
			setD(1), setReg(0),
		}})
	}

	// Conditional jumps and the LOOP family: one literal byte, then an
	// 8-bit relative displacement.
	for _, op := range jccOrder {
		t = append(t, Encoding{op, []Field{
			Lit(8, jccLit[op]), ipinc8Field(),
		}})
	}

	return t
}
