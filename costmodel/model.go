// Package costmodel implements the cost model and encoder registry from
// spec.md section 4.B: distance/length cost classes, per-edge cost, a
// SHA-1 model identity, and the closed set of concrete encoders with their
// cost tables. The cost-estimation shape (a matrix indexed by quantized
// offset/length class, with a separate literal cost) is grounded in
// github.com/ulikunitz/lz's CostEstimator/SimpleEstimator
// (other_examples/ulikunitz-lz__cost_estimator.go): a Cost(m, o) function
// of match length and offset, with literals handled as offset 0.
package costmodel

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
)

// Model is the tuple (D, L, M, f_lit, v_lit, c_char) from spec.md section 3.
// D and L must be strictly ascending; M has len(D)*len(L) entries in
// row-major (length, then distance) order, matching the cost_id formula
// below.
type Model struct {
	D []int
	L []int
	M []float64

	LitFixed float64 // f_lit
	LitVar   float64 // v_lit
	CharCost float64 // c_char

	lenShift uint // ceil(log2(len(D))), precomputed by Prepare
}

// Prepare must be called once after D, L, M are populated (e.g. after
// loading from a target file) and before GetIdx/GetCost/EdgeCost are used.
// It precomputes the length-index shift used by the injective cost_id
// serialization.
func (m *Model) Prepare() {
	m.lenShift = ceilLog2(len(m.D))
}

func ceilLog2(n int) uint {
	if n <= 1 {
		return 0
	}
	return uint(bits.Len(uint(n - 1)))
}

// GetIdx returns the lower-bound indices (first index whose threshold is
// >= the given value) for a distance d and length ell, per spec.md section
// 4.B. Requires d <= D[last] and ell <= L[last].
func (m *Model) GetIdx(d, ell int) (dstIdx, lenIdx int) {
	dstIdx = lowerBound(m.D, d)
	lenIdx = lowerBound(m.L, ell)
	return
}

func lowerBound(xs []int, v int) int {
	lo, hi := 0, len(xs)
	for lo < hi {
		mid := (lo + hi) / 2
		if xs[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= len(xs) {
		lo = len(xs) - 1
	}
	return lo
}

// CostID returns the injective serial len_idx*2^ceil(log2|D|) + dst_idx for
// a pair of indices, as used to tag edges produced by the FSG so a later
// GetCost lookup doesn't need to re-derive indices from (d, ell).
func (m *Model) CostID(dstIdx, lenIdx int) int {
	return lenIdx<<m.lenShift | dstIdx
}

// SplitCostID reverses CostID.
func (m *Model) SplitCostID(costID int) (dstIdx, lenIdx int) {
	dstIdx = costID & ((1 << m.lenShift) - 1)
	lenIdx = costID >> m.lenShift
	return
}

// GetCost returns the cost matrix entry for a (distance-class, length-class)
// pair of indices.
func (m *Model) GetCost(dstIdx, lenIdx int) float64 {
	return m.M[lenIdx*len(m.D)+dstIdx]
}

// EdgeCost returns the cost of an edge identified by (d, ell, costID) for a
// copy edge (d > 0) or by ell alone for a literal edge (d == 0), per the
// formula in spec.md section 3: M[idx] for copies, f_lit + ell*v_lit for
// literals, plus ell*c_char additive either way.
func (m *Model) EdgeCost(d, ell, costID int) float64 {
	var base float64
	if d == 0 {
		base = m.LitFixed + float64(ell)*m.LitVar
	} else {
		dstIdx, lenIdx := m.SplitCostID(costID)
		base = m.GetCost(dstIdx, lenIdx)
	}
	return base + float64(ell)*m.CharCost
}

// Serialize produces the canonical little-endian float64 serialization of
// (D, L, M) that ID hashes: D values, then L values, then M in row-major
// order, each as an 8-byte IEEE-754 double (distances/lengths are integral
// but hashed as doubles for a format-independent identity, matching
// spec.md section 3's "SHA-1 of the cost matrix serialized as IEEE-754
// doubles").
func (m *Model) Serialize() []byte {
	buf := make([]byte, 0, 8*(len(m.D)+len(m.L)+len(m.M)))
	for _, d := range m.D {
		buf = appendFloat64(buf, float64(d))
	}
	for _, l := range m.L {
		buf = appendFloat64(buf, float64(l))
	}
	for _, v := range m.M {
		buf = appendFloat64(buf, v)
	}
	return buf
}

func appendFloat64(buf []byte, f float64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
	return append(buf, b[:]...)
}

// ID returns the 40-char hex SHA-1 of the model's canonical serialization
// (Serialize), identifying the model by its ladders and cost matrix.
func (m *Model) ID() string {
	sum := sha1.Sum(m.Serialize())
	return fmt.Sprintf("%x", sum)
}
