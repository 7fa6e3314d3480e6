package encoders

import (
	"github.com/go-lzopt/lzopt/bitio"
	"github.com/go-lzopt/lzopt/costmodel"
)

// soda09DstBounds/soda09DstWidths and soda09LenBounds/soda09LenWidths are
// the gamma-like cost-class tables for the soda09 family, ported verbatim
// (as unsigned upper bounds and binary widths) from
// original_source/libs/encoders.cpp's soda09_dst/soda09_len arrays.
var (
	soda09DstBounds = []uint64{16384, 278528, 2375680, 19152896, 153370624, 1227112448}
	soda09DstWidths = []uint{14, 18, 21, 24, 27, 30}

	soda09LenBounds = []uint64{8, 16, 24, 32, 48, 64, 80, 112, 176, 304, 560, 1072, 2096, 4144, 1052720}
	soda09LenWidths = []uint{3, 3, 3, 3, 4, 4, 4, 5, 6, 7, 8, 9, 10, 11, 20}
)

// soda09 implements the soda09{,-0U,-1U} family from spec.md section 4.B:
// gamma-like codes for both distance and length, with an 8/16-bit literal
// run length prefix. "0U"/"1U" differ by start_ offset (0 vs 1, applied
// to the literal run length before the prefix is chosen); plain "soda09"
// is single-char-literal only (litWindow == 1).
type soda09 struct {
	name    string
	start   int // start_ offset: 0 for "-0U", 1 for "-1U"/"soda09"
	single  bool
	model   *costmodel.Model
	dstTbl  bitio.GammaTable
	lenTbl  bitio.GammaTable
	litWide uint // 8 or 16
}

func init() {
	register("soda09", func() Encoder { return newSoda09("soda09", 1, true, 8) })
	register("soda09-0U", func() Encoder { return newSoda09("soda09-0U", 0, false, 8) })
	register("soda09-1U", func() Encoder { return newSoda09("soda09-1U", 1, false, 16) })
}

func newSoda09(name string, start int, single bool, litWide uint) *soda09 {
	dstTbl := bitio.NewGammaTable(soda09DstBounds, soda09DstWidths)
	lenTbl := bitio.NewGammaTable(soda09LenBounds, soda09LenWidths)

	D := make([]int, len(soda09DstBounds))
	for i, b := range soda09DstBounds {
		D[i] = int(b)
	}
	L := make([]int, len(soda09LenBounds))
	for i, b := range soda09LenBounds {
		L[i] = int(b)
	}
	m := &costmodel.Model{D: D, L: L, LitFixed: float64(litWide), LitVar: 8}
	m.M = make([]float64, len(D)*len(L))
	for li, lb := range L {
		for di := range D {
			// Gamma-like codeword length: unary prefix (di+1 bits) plus
			// the class's binary remainder width.
			m.M[li*len(D)+di] = float64(di+1) + float64(soda09DstWidths[di])
			_ = lb
		}
	}
	m.Prepare()

	return &soda09{name: name, start: start, single: single, model: m, dstTbl: dstTbl, lenTbl: lenTbl, litWide: litWide}
}

func (s *soda09) Name() string                { return s.name }
func (s *soda09) CostModel() *costmodel.Model { return s.model }
func (s *soda09) LiteralWindow() int {
	if s.single {
		return 1
	}
	// The prefix holds length-start in litWide bits.
	return int(1)<<s.litWide - 1 + s.start
}
func (s *soda09) DataLen(bits int) int { return baseDataLen(bits) }
func (s *soda09) ExtraRead() int       { return baseExtraRead() }

func (s *soda09) EncodeCopy(w *bitio.Writer, d, ell, costID int) {
	s.dstTbl.Encode(w, uint64(d))
	s.lenTbl.Encode(w, uint64(ell))
}

func (s *soda09) DecodeCopy(r *bitio.Reader) (d, ell int) {
	d = int(s.dstTbl.Decode(r))
	ell = int(s.lenTbl.Decode(r))
	return
}

func (s *soda09) EncodeLiteralRun(w *bitio.Writer, raw []byte) {
	if s.single {
		w.WriteByteAligned(raw)
		return
	}
	w.Write(uint64(len(raw)-s.start), s.litWide)
	w.WriteByteAligned(raw)
}

func (s *soda09) DecodeLiteralRun(r *bitio.Reader, ellOut int, dst []byte) int {
	if s.single {
		r.AlignByte()
		copy(dst, r.ReadBytes(1))
		return 1
	}
	ell := int(r.Read(s.litWide)) + s.start
	r.AlignByte()
	copy(dst, r.ReadBytes(ell))
	return ell
}
