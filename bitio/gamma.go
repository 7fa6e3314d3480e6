package bitio

import "math/bits"

// A GammaTable is a cost class table: C[k] is the largest value encodable
// with binary width B[k] in the k-th class, so C is strictly ascending and
// C[len(C)-1] is the largest representable value. Encode/Decode implement
// the gamma-like code from spec section 4.C: a unary prefix of k zeros
// followed by a 1 selects class k (0-based), then value-C[k-1]-1 (value-1
// for k == 0) is written in B[k] bits.
type GammaTable struct {
	C []uint64
	B []uint
}

// NewGammaTable builds a table from ascending class upper bounds and their
// binary widths; len(bounds) must equal len(widths).
func NewGammaTable(bounds []uint64, widths []uint) GammaTable {
	return GammaTable{C: bounds, B: widths}
}

// classOf returns the smallest k such that t.C[k] >= value.
func (t GammaTable) classOf(value uint64) int {
	for k, bound := range t.C {
		if bound >= value {
			return k
		}
	}
	return len(t.C) - 1
}

// Encode writes value (which must satisfy 1 <= value <= t.C[last]) to w.
func (t GammaTable) Encode(w *Writer, value uint64) {
	k := t.classOf(value)
	// Unary prefix: k zeros then a 1, packed as the single bit pattern
	// 1<<k written in k+1 bits (LSB-first, so the terminal 1 lands at
	// bit k and is what TrailingZeros64 will find on decode).
	w.Write(1<<uint(k), uint(k+1))
	var lowerBound uint64
	if k > 0 {
		lowerBound = t.C[k-1]
	}
	w.Write(value-lowerBound-1, t.B[k])
}

// Decode reads one gamma-like coded value from r.
func (t GammaTable) Decode(r *Reader) uint64 {
	peek := r.Peek64()
	k := bits.TrailingZeros64(peek)
	if k > len(t.C)-1 {
		k = len(t.C) - 1
	}
	r.Skip(uint(k + 1))
	remainder := r.Read(t.B[k])
	var lowerBound uint64
	if k > 0 {
		lowerBound = t.C[k-1]
	}
	return lowerBound + 1 + remainder
}

// Max returns the largest value the table can encode.
func (t GammaTable) Max() uint64 {
	if len(t.C) == 0 {
		return 0
	}
	return t.C[len(t.C)-1]
}

// UpperBoundBits returns an upper bound (in bits) on the length of any
// codeword this table produces: the widest unary prefix (len(C) classes)
// plus the widest binary remainder. Used to size the per-level cache
// buffer in the FSG's caching variant (ub_gamma in spec's glossary).
func (t GammaTable) UpperBoundBits() int {
	maxB := uint(0)
	for _, b := range t.B {
		if b > maxB {
			maxB = b
		}
	}
	return len(t.C) + int(maxB)
}
