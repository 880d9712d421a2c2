package sim

import (
	"math/bits"

	"github.com/sim86/sim86/internal/decode"
)

func maskFor(size decode.Size) (mask uint32, width uint) {
	if size == decode.Byte {
		return 0xFF, 8
	}
	return 0xFFFF, 16
}

// addCarry computes l+r+cin within the given width, returning the
// masked result and the carry/aux-carry/overflow flags it produced.
// OF uses the sign-based formula ("operands share a sign and the result
// doesn't"), equivalent to the doubled-width CF-XOR formula but one that
// generalizes cleanly to the carry-in case.
func addCarry(l, r, cin uint32, size decode.Size) (result uint32, cf, af, of bool) {
	mask, width := maskFor(size)
	sum := l + r + cin
	result = sum & mask
	cf = sum > mask
	af = (l&0xF)+(r&0xF)+cin > 0xF
	signBit := uint32(1) << (width - 1)
	sameSign := (l & signBit) == (r & signBit)
	of = sameSign && (result&signBit) != (l & signBit)
	return
}

// subBorrow computes l-r-bin within the given width.
func subBorrow(l, r, bin uint32, size decode.Size) (result uint32, cf, af, of bool) {
	mask, width := maskFor(size)
	diff := int64(l) - int64(r) - int64(bin)
	cf = diff < 0
	result = uint32(diff & int64(mask))
	af = (int64(l&0xF) - int64(r&0xF) - int64(bin)) < 0
	signBit := uint32(1) << (width - 1)
	diffSign := (l & signBit) != (r & signBit)
	of = diffSign && (result&signBit) != (l & signBit)
	return
}

// szp computes SF, ZF, and PF (even parity of the low 8 bits) for a
// result already masked to size.
func szp(result uint32, size decode.Size) (sf, zf, pf bool) {
	mask, width := maskFor(size)
	zf = result&mask == 0
	sf = (result>>(width-1))&1 != 0
	pf = bits.OnesCount8(uint8(result))%2 == 0
	return
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
