// Package enc holds the declarative description of every supported 8086
// opcode — an ordered list of bit-field slots per mnemonic/encoding — and
// the matcher that finds the unique table entry for an incoming code
// prefix. No instruction-specific code lives here, only data and the
// generic field-parsing routine both the matcher and the decoder share.
package enc

// FieldType names one slot in an Encoding's field list.
type FieldType uint8

const (
	// Literal is a fixed bit pattern that must match the incoming code
	// exactly; a mismatch means the whole encoding is not compatible.
	Literal FieldType = iota
	S
	W
	D
	Mod
	Reg
	Rm
	Sr
	Disp
	Data
	Ipinc8
	Ipinc16
	DataIfW
	fieldTypeCount
)

// Field is one bit-level slot in an Encoding. Bits is the number of bits
// read from the stream for this slot; Bits==0 marks either a tail field
// (Disp, Data, Ipinc8, Ipinc16, DataIfW — consumed later, once the bit
// stream is byte-aligned) or a "set" directive that injects Value into
// the decoded field array without reading anything.
type Field struct {
	Type  FieldType
	Bits  uint8
	Value uint8
}

// Lit matches a literal bit pattern of the given width.
func Lit(bits int, value uint8) Field { return Field{Type: Literal, Bits: uint8(bits), Value: value} }

// Bit-read slots: one or more bits pulled from the stream into the
// decoded field array.
func sField() Field   { return Field{Type: S, Bits: 1} }
func wField() Field   { return Field{Type: W, Bits: 1} }
func dField() Field   { return Field{Type: D, Bits: 1} }
func modField() Field { return Field{Type: Mod, Bits: 2} }
func regField() Field { return Field{Type: Reg, Bits: 3} }
func rmField() Field  { return Field{Type: Rm, Bits: 3} }

// Set-directives: inject a constant into an already-typed field slot
// without consuming any bits from the stream.
func setD(v uint8) Field   { return Field{Type: D, Value: v} }
func setMod(v uint8) Field { return Field{Type: Mod, Value: v} }
func setReg(v uint8) Field { return Field{Type: Reg, Value: v} }
func setRm(v uint8) Field  { return Field{Type: Rm, Value: v} }

// Tail fields: zero-length markers that record "this field is present"
// so the decoder can compute variable-length byte reads once the bit
// groups are exhausted (see Decode's tail-length computation).
func dispField() Field    { return Field{Type: Disp} }
func dataField() Field    { return Field{Type: Data} }
func dataIfWField() Field { return Field{Type: DataIfW} }
func ipinc8Field() Field  { return Field{Type: Ipinc8} }
