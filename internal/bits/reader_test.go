package bits

import "testing"

func TestBitsMSBFirst(t *testing.T) {
	r := NewReader([]byte{0b10110010})
	cases := []struct {
		n    uint8
		want uint8
	}{
		{3, 0b101},
		{2, 0b10},
		{3, 0b010},
	}
	for i, c := range cases {
		got, err := r.Bits(c.n)
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if got != c.want {
			t.Fatalf("case %d: got %03b want %03b", i, got, c.want)
		}
	}
	if !r.Aligned() {
		t.Fatalf("expected reader aligned after consuming exactly one byte")
	}
}

func TestBitsUnaligned(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFF})
	if _, err := r.Bits(6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Bits(4); err != ErrUnaligned {
		t.Fatalf("got %v, want ErrUnaligned", err)
	}
}

func TestBitsEnd(t *testing.T) {
	r := NewReader(nil)
	if _, err := r.Bits(1); err != ErrEnd {
		t.Fatalf("got %v, want ErrEnd", err)
	}
}

func TestBitsInvalidWidth(t *testing.T) {
	r := NewReader([]byte{0x00})
	if _, err := r.Bits(9); err != ErrInvalid {
		t.Fatalf("got %v, want ErrInvalid", err)
	}
}

func TestBytesSignExtend(t *testing.T) {
	r := NewReader([]byte{0xFB})
	v, err := r.Bytes(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != -5 {
		t.Fatalf("got %d, want -5", v)
	}
}

func TestBytesLittleEndian(t *testing.T) {
	r := NewReader([]byte{0x9C, 0xD8})
	v, err := r.Bytes(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uint16(v) != 0xD89C {
		t.Fatalf("got 0x%04x, want 0xd89c", uint16(v))
	}
}

func TestBytesRequiresAligned(t *testing.T) {
	r := NewReader([]byte{0xFF})
	if _, err := r.Bits(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Bytes(1); err != ErrInvalid {
		t.Fatalf("got %v, want ErrInvalid", err)
	}
}

func TestPos(t *testing.T) {
	r := NewReader([]byte{0x89, 0xD9})
	if _, err := r.Bits(8); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Bits(8); err != nil {
		t.Fatal(err)
	}
	if r.Pos() != 2 {
		t.Fatalf("got %d, want 2", r.Pos())
	}
}
