package encoders

import (
	"github.com/go-lzopt/lzopt/bitio"
	"github.com/go-lzopt/lzopt/costmodel"
)

// nibble4Bounds/nibble4Widths are the gamma-like cost-class table for the
// nibble4 family, ported from original_source/libs/encoders.cpp's
// nibble::class_desc arrays (a 3-bit binary-width step, shared between
// distance and length per spec.md section 4.B: "nibble4 family: gamma-
// like with 3-bit binary-width step").
var (
	nibble4Bounds = []uint64{8, 72, 584, 4680, 37448, 299592, 2396744, 19173960, 153391688, 1227133512}
	nibble4Widths = []uint{3, 6, 9, 12, 15, 18, 21, 24, 27, 30}
)

// nibble4 implements the nibble4{,...} family: distance and length are
// both coded with the same class table (nibble4Bounds/nibble4Widths), with
// an 8-bit literal run length prefix.
type nibble4 struct {
	name   string
	model  *costmodel.Model
	dstTbl bitio.GammaTable
	lenTbl bitio.GammaTable
}

func init() {
	register("nibble4", func() Encoder { return newNibble4("nibble4") })
}

func newNibble4(name string) *nibble4 {
	dstTbl := bitio.NewGammaTable(nibble4Bounds, nibble4Widths)
	lenTbl := bitio.NewGammaTable(nibble4Bounds, nibble4Widths)

	D := make([]int, len(nibble4Bounds))
	L := make([]int, len(nibble4Bounds))
	for i, b := range nibble4Bounds {
		D[i] = int(b)
		L[i] = int(b)
	}
	m := &costmodel.Model{D: D, L: L, LitFixed: 8, LitVar: 8}
	m.M = make([]float64, len(D)*len(L))
	for li := range L {
		for di := range D {
			m.M[li*len(D)+di] = float64(di+1) + float64(nibble4Widths[di])
		}
	}
	m.Prepare()

	return &nibble4{name: name, model: m, dstTbl: dstTbl, lenTbl: lenTbl}
}

func (n *nibble4) Name() string                { return n.name }
func (n *nibble4) CostModel() *costmodel.Model { return n.model }
func (n *nibble4) LiteralWindow() int          { return 1<<8 + 1 } // tag plus an 8-bit count of length-2
func (n *nibble4) DataLen(bits int) int        { return baseDataLen(bits) }
func (n *nibble4) ExtraRead() int              { return baseExtraRead() }

func (n *nibble4) EncodeCopy(w *bitio.Writer, d, ell, costID int) {
	n.dstTbl.Encode(w, uint64(d))
	n.lenTbl.Encode(w, uint64(ell))
}

func (n *nibble4) DecodeCopy(r *bitio.Reader) (d, ell int) {
	d = int(n.dstTbl.Decode(r))
	ell = int(n.lenTbl.Decode(r))
	return
}

func (n *nibble4) EncodeLiteralRun(w *bitio.Writer, raw []byte) {
	bitio.EncodeLiteralRunLength(w, len(raw), 8)
	w.WriteByteAligned(raw)
}

func (n *nibble4) DecodeLiteralRun(r *bitio.Reader, ellOut int, dst []byte) int {
	ell := bitio.DecodeLiteralRunLength(r, 8)
	r.AlignByte()
	copy(dst, r.ReadBytes(ell))
	return ell
}
