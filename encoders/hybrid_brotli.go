package encoders

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"

	"github.com/go-lzopt/lzopt/bitio"
)

// hybridBrotli is hybrid-32 with its literal runs passed through Brotli
// at the default quality, the way the teacher's brotli package frames a
// compressed block: a length-prefixed byte-aligned blob. Copy edges are
// unchanged, for the same reason nibble4-snappy leaves them unchanged:
// the bit-optimal parser has already chosen cost-optimal copy edges
// under the encoder's own cost model, so re-compressing them would
// fight the parser rather than help it.
type hybridBrotli struct {
	*hybrid
}

func init() {
	register("hybrid-brotli", func() Encoder {
		return &hybridBrotli{hybrid: newHybrid("hybrid-brotli", 32)}
	})
}

func (h *hybridBrotli) EncodeLiteralRun(w *bitio.Writer, raw []byte) {
	bitio.EncodeLiteralRunLength(w, len(raw), h.litFixed)
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	bw.Write(raw)
	bw.Close()
	w.Write(uint64(buf.Len()), 32)
	w.WriteByteAligned(buf.Bytes())
}

func (h *hybridBrotli) DecodeLiteralRun(r *bitio.Reader, ellOut int, dst []byte) int {
	ell := bitio.DecodeLiteralRunLength(r, h.litFixed)
	compressedLen := int(r.Read(32))
	r.AlignByte()
	compressed := r.ReadBytes(compressedLen)
	br := brotli.NewReader(bytes.NewReader(compressed))
	n, err := io.ReadFull(br, dst[:ell])
	if err != nil && err != io.ErrUnexpectedEOF {
		panic(err)
	}
	_ = n
	return ell
}
