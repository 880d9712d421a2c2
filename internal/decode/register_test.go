package decode

import "testing"

func TestRegFromIndexWord(t *testing.T) {
	a := RegFromIndex(1, 1)
	if a.Reg != CX || a.Size != Word || a.Offset != None {
		t.Fatalf("got %+v, want word CX", a)
	}
	if a.String() != "cx" {
		t.Fatalf("got %q, want cx", a.String())
	}
}

func TestRegFromIndexByteHalves(t *testing.T) {
	cases := []struct {
		index uint8
		want  string
	}{
		{0, "al"}, {1, "cl"}, {2, "dl"}, {3, "bl"},
		{4, "ah"}, {5, "ch"}, {6, "dh"}, {7, "bh"},
	}
	for _, c := range cases {
		a := RegFromIndex(c.index, 0)
		if a.String() != c.want {
			t.Fatalf("index %d: got %q, want %q", c.index, a.String(), c.want)
		}
	}
}

func TestByteHalvesShareWordRegister(t *testing.T) {
	al := RegFromIndex(0, 0)
	ah := RegFromIndex(4, 0)
	if al.Reg != AX || ah.Reg != AX {
		t.Fatalf("al/ah must both address AX")
	}
	if al.Offset != Low || ah.Offset != High {
		t.Fatalf("al must be Low offset, ah High")
	}
}
