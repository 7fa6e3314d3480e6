package encoders

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/go-lzopt/lzopt/bitio"
)

// nibble4LZ4 is nibble4 with its literal runs passed through LZ4 block
// compression, the direct successor to the teacher's own lz4 package
// (distinct from the token/varint framing idiom already grounding
// hybrid's copy-edge layout): here the dependency is exercised for real
// rather than just cited for its framing shape.
type nibble4LZ4 struct {
	*nibble4
}

func init() {
	register("nibble4-lz4", func() Encoder {
		return &nibble4LZ4{nibble4: newNibble4("nibble4-lz4")}
	})
}

func (n *nibble4LZ4) EncodeLiteralRun(w *bitio.Writer, raw []byte) {
	bitio.EncodeLiteralRunLength(w, len(raw), 8)
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	zw.Write(raw)
	zw.Close()
	w.Write(uint64(buf.Len()), 32)
	w.WriteByteAligned(buf.Bytes())
}

func (n *nibble4LZ4) DecodeLiteralRun(r *bitio.Reader, ellOut int, dst []byte) int {
	ell := bitio.DecodeLiteralRunLength(r, 8)
	compressedLen := int(r.Read(32))
	r.AlignByte()
	compressed := r.ReadBytes(compressedLen)
	zr := lz4.NewReader(bytes.NewReader(compressed))
	if _, err := io.ReadFull(zr, dst[:ell]); err != nil && err != io.ErrUnexpectedEOF {
		panic(err)
	}
	return ell
}
