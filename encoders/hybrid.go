package encoders

import (
	"github.com/go-lzopt/lzopt/bitio"
	"github.com/go-lzopt/lzopt/costmodel"
)

// hybrid implements the hybrid{,-8,-16,-32} family from spec.md section
// 4.B: 2-bit-tagged distance in {6,14,22,30} bits, 1-bit-tagged length in
// {7,15} bits, both byte-aligned per phrase; the literal run length is a
// plain 32-bit count for "hybrid" and a 1-bit tag plus an N-bit count for
// hybrid-N. The byte-aligned phrase framing is
// grounded in the teacher's lz4/block.go token+varint layout
// (github.com/pierrec/lz4/v4's token byte followed by aligned extension
// bytes), adapted here to a 2-bit/1-bit tag instead of a 4-bit nibble.
type hybrid struct {
	name        string
	litFixed    int // 0 for plain "hybrid" (32-bit count, no tag); else N
	model       *costmodel.Model
	maxDistance int
	maxLength   int
}

func init() {
	register("hybrid", func() Encoder { return newHybrid("hybrid", 0) })
	register("hybrid-8", func() Encoder { return newHybrid("hybrid-8", 8) })
	register("hybrid-16", func() Encoder { return newHybrid("hybrid-16", 16) })
	register("hybrid-32", func() Encoder { return newHybrid("hybrid-32", 32) })
}

func newHybrid(name string, litFixed int) *hybrid {
	m := &costmodel.Model{
		D:        []int{64, 16384, 4194304, 1 << 30},
		L:        []int{128, 32768},
		LitFixed: 8,
		LitVar:   8,
	}
	m.M = make([]float64, len(m.D)*len(m.L))
	for li := range m.L {
		for di := range m.D {
			bytes := float64(di + 1)
			m.M[li*len(m.D)+di] = bytes * 8
		}
	}
	m.Prepare()
	return &hybrid{name: name, litFixed: litFixed, model: m, maxDistance: 1 << 30, maxLength: 32768}
}

func (h *hybrid) Name() string                { return h.name }
func (h *hybrid) CostModel() *costmodel.Model { return h.model }
func (h *hybrid) LiteralWindow() int {
	if h.litFixed > 0 && h.litFixed < 20 {
		// tag plus a litFixed-bit count of length-2
		return 1<<uint(h.litFixed) + 1
	}
	return 1 << 20
}
func (h *hybrid) DataLen(bits int) int        { return baseDataLen(bits) }
func (h *hybrid) ExtraRead() int              { return baseExtraRead() }

func (h *hybrid) EncodeCopy(w *bitio.Writer, d, ell, costID int) {
	bitio.EncodeHybridDistance(w, uint64(d))
	bitio.EncodeHybridLength(w, uint64(ell))
}

func (h *hybrid) DecodeCopy(r *bitio.Reader) (d, ell int) {
	d = int(bitio.DecodeHybridDistance(r))
	ell = int(bitio.DecodeHybridLength(r))
	return
}

func (h *hybrid) EncodeLiteralRun(w *bitio.Writer, raw []byte) {
	bitio.EncodeLiteralRunLength(w, len(raw), h.litFixed)
	w.WriteByteAligned(raw)
}

func (h *hybrid) DecodeLiteralRun(r *bitio.Reader, ellOut int, dst []byte) int {
	ell := bitio.DecodeLiteralRunLength(r, h.litFixed)
	r.AlignByte()
	copy(dst, r.ReadBytes(ell))
	return ell
}
