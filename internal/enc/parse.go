package enc

import (
	"errors"

	"github.com/sim86/sim86/internal/bits"
)

// ErrNotCompat means a Literal field's bits did not match the incoming
// code. It is internal to the matcher: Match swallows it and moves on
// to the next table row; it must never reach a caller outside this
// package.
var ErrNotCompat = errors.New("enc: encoding not compatible with code")

// ErrMalformed means the encoding table itself is broken — a field
// group left the bit reader unaligned. This is a programming bug in
// Table, not a runtime input error (the INVALID error class).
var ErrMalformed = errors.New("enc: malformed encoding (not byte-aligned)")

// FieldSet holds the decoded bit-level fields of one matched Encoding:
// which field types were present (read from the stream or injected by a
// set-directive) and their values. Tail fields (Disp, Data, Ipinc8,
// Ipinc16, DataIfW) only ever set Has — their values are resolved later
// by the decoder once their length is known.
type FieldSet struct {
	Has [fieldTypeCount]bool
	Val [fieldTypeCount]uint8
}

// ParseBits runs e's whole field list against r: it checks literals,
// records flag/mod/reg/rm/sr values (read or set-directive) into a
// FieldSet, and marks tail fields as present without reading them. Used
// in dry-run mode by the matcher and for real by the decoder, which
// needs r left positioned at the first tail byte.
func ParseBits(e *Encoding, r *bits.Reader) (FieldSet, error) {
	var fs FieldSet
	for _, f := range e.Fields {
		switch f.Type {
		case Literal:
			v, err := r.Bits(f.Bits)
			if err != nil {
				return fs, err
			}
			if v != f.Value {
				return fs, ErrNotCompat
			}
		case Disp, Data, Ipinc8, Ipinc16, DataIfW:
			fs.Has[f.Type] = true
		default: // S, W, D, Mod, Reg, Rm, Sr
			if f.Bits == 0 {
				fs.Has[f.Type] = true
				fs.Val[f.Type] = f.Value
				continue
			}
			v, err := r.Bits(f.Bits)
			if err != nil {
				return fs, err
			}
			fs.Has[f.Type] = true
			fs.Val[f.Type] = v
		}
	}
	if !r.Aligned() {
		return fs, ErrMalformed
	}
	return fs, nil
}

// Match scans Table in order and returns the first Encoding whose
// literal fields are compatible with the start of code, along with the
// FieldSet produced while matching it. A nil Encoding with a nil error
// means no entry
// matched. Any error other than "not compatible" aborts the scan
// immediately and is returned to the caller — per spec, the matcher
// never backtracks past a non-NotCompat failure.
func Match(code []byte) (*Encoding, FieldSet, error) {
	for i := range Table {
		r := bits.NewReader(code)
		fs, err := ParseBits(&Table[i], r)
		if err == nil {
			return &Table[i], fs, nil
		}
		if errors.Is(err, ErrNotCompat) {
			continue
		}
		if errors.Is(err, bits.ErrEnd) {
			return nil, FieldSet{}, bits.ErrEnd
		}
		// Any other failure (ErrMalformed, bits.ErrInvalid, bits.ErrUnaligned)
		// is a table bug, not an input error.
		return nil, FieldSet{}, err
	}
	return nil, FieldSet{}, nil
}
