package bitio

import "testing"

func TestWriteReadRoundTrip(t *testing.T) {
	values := []struct {
		v, bits uint64
	}{
		{0, 1}, {1, 1}, {5, 3}, {127, 7}, {1 << 20, 22}, {1<<30 - 1, 30},
	}
	buf := make([]byte, 0, 64)
	w := NewWriter(buf)
	for _, tc := range values {
		w.Write(tc.v, uint(tc.bits))
	}
	data := append(w.Bytes(), make([]byte, SafeTrailingBytes)...)

	r := NewReader(data)
	for _, tc := range values {
		got := r.Read(uint(tc.bits))
		if got != tc.v {
			t.Fatalf("got %d, want %d (bits=%d)", got, tc.v, tc.bits)
		}
	}
}

func TestGammaRoundTrip(t *testing.T) {
	table := NewGammaTable(
		[]uint64{4, 20, 276, 65812},
		[]uint{2, 4, 8, 16},
	)
	buf := make([]byte, 0, 1024)
	w := NewWriter(buf)
	for v := uint64(1); v <= table.Max(); v++ {
		table.Encode(w, v)
	}
	data := append(w.Bytes(), make([]byte, SafeTrailingBytes)...)

	r := NewReader(data)
	for v := uint64(1); v <= table.Max(); v++ {
		got := table.Decode(r)
		if got != v {
			t.Fatalf("decoded %d, want %d", got, v)
		}
	}
}

func TestGammaClassBoundaries(t *testing.T) {
	table := NewGammaTable([]uint64{4, 20, 276}, []uint{2, 4, 8})
	for _, v := range []uint64{1, 4, 5, 20, 21, 276} {
		buf := make([]byte, 0, 16)
		w := NewWriter(buf)
		table.Encode(w, v)
		data := append(w.Bytes(), make([]byte, SafeTrailingBytes)...)
		got := table.Decode(NewReader(data))
		if got != v {
			t.Fatalf("boundary value %d round-tripped as %d", v, got)
		}
	}
}

func TestHybridDistanceRoundTrip(t *testing.T) {
	for _, v := range []uint64{1, 2, 63, 64, 16383, 16384, 1 << 20, 1 << 29} {
		buf := make([]byte, 0, 16)
		w := NewWriter(buf)
		EncodeHybridDistance(w, v)
		data := append(w.Bytes(), make([]byte, SafeTrailingBytes)...)
		got := DecodeHybridDistance(NewReader(data))
		if got != v {
			t.Fatalf("distance %d round-tripped as %d", v, got)
		}
	}
}

func TestHybridLengthRoundTrip(t *testing.T) {
	for _, v := range []uint64{1, 2, 127, 128, 32767} {
		buf := make([]byte, 0, 16)
		w := NewWriter(buf)
		EncodeHybridLength(w, v)
		data := append(w.Bytes(), make([]byte, SafeTrailingBytes)...)
		got := DecodeHybridLength(NewReader(data))
		if got != v {
			t.Fatalf("length %d round-tripped as %d", v, got)
		}
	}
}

func TestLiteralRunLengthRoundTrip(t *testing.T) {
	for _, fixed := range []int{0, 8, 16, 32} {
		for _, length := range []int{1, 2, 3, 255, 65535} {
			buf := make([]byte, 0, 16)
			w := NewWriter(buf)
			EncodeLiteralRunLength(w, length, fixed)
			data := append(w.Bytes(), make([]byte, SafeTrailingBytes)...)
			got := DecodeLiteralRunLength(NewReader(data), fixed)
			if got != length {
				t.Fatalf("fixed=%d length=%d round-tripped as %d", fixed, length, got)
			}
		}
	}
}
