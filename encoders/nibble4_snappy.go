package encoders

import (
	"github.com/golang/snappy"

	"github.com/go-lzopt/lzopt/bitio"
)

// nibble4Snappy is nibble4 with its literal runs passed through Snappy
// block compression before the byte-aligned write, the way the teacher's
// snappy/encode.go frames a block: a varint-style length prefix (here a
// fixed 32-bit count, matching this package's other length fields)
// followed by the compressed bytes. Distance/length copy edges are
// unchanged from plain nibble4, since Snappy's own LZ77 would only
// compete with (not help) the cost-optimal copy edges already chosen by
// the bit-optimal parser.
type nibble4Snappy struct {
	*nibble4
}

func init() {
	register("nibble4-snappy", func() Encoder {
		return &nibble4Snappy{nibble4: newNibble4("nibble4-snappy")}
	})
}

func (n *nibble4Snappy) EncodeLiteralRun(w *bitio.Writer, raw []byte) {
	bitio.EncodeLiteralRunLength(w, len(raw), 8)
	compressed := snappy.Encode(nil, raw)
	w.Write(uint64(len(compressed)), 32)
	w.WriteByteAligned(compressed)
}

func (n *nibble4Snappy) DecodeLiteralRun(r *bitio.Reader, ellOut int, dst []byte) int {
	ell := bitio.DecodeLiteralRunLength(r, 8)
	compressedLen := int(r.Read(32))
	r.AlignByte()
	compressed := r.ReadBytes(compressedLen)
	raw, err := snappy.Decode(dst[:0:cap(dst)], compressed)
	if err != nil {
		panic(err)
	}
	copy(dst, raw)
	return ell
}
