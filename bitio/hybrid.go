package bitio

import "math/bits"

// hybridDistanceWidths holds the four binary widths {6, 14, 22, 30}
// selected by the 2-bit distance tag of spec.md's hybrid encoder family
// (EncodeHybridDistance): v = value-1 is written with its tag in (t+1)
// bytes, where t is the smallest tag whose width holds bitlen(v+1), or 3
// if none does.
var hybridDistanceWidths = [4]uint{6, 14, 22, 30}

func hybridTag(v uint64, widths [4]uint) uint {
	nbits := bits.Len64(v + 1)
	for t, w := range widths {
		if nbits <= int(w) {
			return uint(t)
		}
	}
	return uint(len(widths) - 1)
}

// EncodeHybridDistance writes value (>=1) as a 2-bit-tagged, byte-aligned
// field.
func EncodeHybridDistance(w *Writer, value uint64) {
	v := value - 1
	t := hybridTag(v, hybridDistanceWidths)
	w.Write(v<<2|uint64(t), (t+1)*8)
}

// DecodeHybridDistance reads a value written by EncodeHybridDistance.
func DecodeHybridDistance(r *Reader) uint64 {
	peek := r.Peek64()
	t := uint(peek & 0x3)
	raw := r.Read((t + 1) * 8)
	return (raw >> 2) + 1
}

// hybridLengthWidths holds the two binary widths {7, 15} selected by the
// 1-bit length tag.
var hybridLengthWidths = [2]uint{7, 15}

// EncodeHybridLength writes value (>=1) as a 1-bit-tagged, byte-aligned
// field, analogous to EncodeHybridDistance but with a single tag bit.
func EncodeHybridLength(w *Writer, value uint64) {
	v := value - 1
	t := hybridTag(v, [4]uint{hybridLengthWidths[0], hybridLengthWidths[1], hybridLengthWidths[1], hybridLengthWidths[1]})
	if t > 1 {
		t = 1
	}
	w.Write(v<<1|uint64(t), (t+1)*8)
}

// DecodeHybridLength reads a value written by EncodeHybridLength.
func DecodeHybridLength(r *Reader) uint64 {
	peek := r.Peek64()
	t := uint(peek & 0x1)
	raw := r.Read((t + 1) * 8)
	return (raw >> 1) + 1
}

// literalPrefixWidth returns the bit width of the literal-length prefix tag
// used by the hybrid{,-8,-16,-32} family: 1 bit selects "length 1" versus a
// following fixed-width count, with the hybrid-N variants picking the
// fixed width N directly instead of the 1/8/16/32 escalation.
func literalPrefixWidth(fixed int) uint {
	if fixed <= 0 {
		return 0
	}
	return uint(fixed)
}

// EncodeLiteralRunLength writes a literal run length using the hybrid
// family's literal-length prefix. For fixed > 0 (the hybrid-N variants) a
// 1-bit tag of 0 means "length 1" (no further bits); a tag of 1 is
// followed by the run length minus 2 in `fixed` bits, so the longest run
// is 2^fixed + 1. When fixed == 0 (plain "hybrid") the run length minus 1
// is written directly in 32 bits with no tag.
func EncodeLiteralRunLength(w *Writer, length int, fixed int) {
	if fixed == 0 {
		w.Write(uint64(length-1), literalPrefixWidth(32))
		return
	}
	if length == 1 {
		w.Write(0, 1)
		return
	}
	w.Write(1, 1)
	w.Write(uint64(length-2), literalPrefixWidth(fixed))
}

// DecodeLiteralRunLength reverses EncodeLiteralRunLength.
func DecodeLiteralRunLength(r *Reader, fixed int) int {
	if fixed == 0 {
		return int(r.Read(32)) + 1
	}
	tag := r.Read(1)
	if tag == 0 {
		return 1
	}
	return int(r.Read(literalPrefixWidth(fixed))) + 2
}
