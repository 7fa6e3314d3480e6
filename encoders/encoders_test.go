package encoders

import (
	"bytes"
	"testing"

	"github.com/go-lzopt/lzopt/bitio"
)

// TestEncoderRoundTrip is spec.md's testable property 9
// (encoder/decoder symmetry): for every registered encoder, encoding then
// decoding a literal run followed by a sequence of copy edges returns the
// same values, the way the teacher's flate_test.go/snappy_test.go/
// lz4_test.go round-trip every codec they ship.
func TestEncoderRoundTrip(t *testing.T) {
	copies := []struct{ d, ell int }{
		{1, 1}, {2, 3}, {5, 10}, {100, 64},
	}
	lit := []byte{'x'}

	for _, name := range Names() {
		enc, err := Get(name)
		if err != nil {
			t.Fatalf("%s: Get: %v", name, err)
		}

		buf := make([]byte, 0, 256)
		w := bitio.NewWriter(buf)
		enc.EncodeLiteralRun(w, lit)
		for _, c := range copies {
			enc.EncodeCopy(w, c.d, c.ell, 0)
		}
		data := append(w.Bytes(), make([]byte, enc.ExtraRead())...)

		r := bitio.NewReader(data)
		dst := make([]byte, len(lit))
		gotEll := enc.DecodeLiteralRun(r, 0, dst)
		if gotEll != len(lit) || !bytes.Equal(dst, lit) {
			t.Fatalf("%s: literal run round-trip: got %q (len %d), want %q", name, dst[:gotEll], gotEll, lit)
		}
		for _, c := range copies {
			d, ell := enc.DecodeCopy(r)
			if d != c.d || ell != c.ell {
				t.Fatalf("%s: copy edge round-trip: got (d=%d,ell=%d), want (d=%d,ell=%d)", name, d, ell, c.d, c.ell)
			}
		}
	}
}

// TestEncoderNamesNotEmpty guards against an empty registry silently
// turning the round-trip test above into a no-op.
func TestEncoderNamesNotEmpty(t *testing.T) {
	if len(Names()) == 0 {
		t.Fatal("encoders: registry is empty")
	}
}
