package encoders

import (
	"github.com/klauspost/compress/zstd"

	"github.com/go-lzopt/lzopt/bitio"
)

// soda09Zstd is soda09-0U with its literal runs passed through zstd
// before the byte-aligned write, grounded the same way nibble4-snappy
// and hybrid-brotli are: copy edges stay exactly as soda09-0U encodes
// them, only the literal-run sub-codec changes.
type soda09Zstd struct {
	*soda09
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func init() {
	register("soda09-zstd", func() Encoder {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			panic(err)
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			panic(err)
		}
		return &soda09Zstd{soda09: newSoda09("soda09-zstd", 0, false, 8), enc: enc, dec: dec}
	})
}

func (s *soda09Zstd) EncodeLiteralRun(w *bitio.Writer, raw []byte) {
	w.Write(uint64(len(raw)), s.litWide)
	compressed := s.enc.EncodeAll(raw, nil)
	w.Write(uint64(len(compressed)), 32)
	w.WriteByteAligned(compressed)
}

func (s *soda09Zstd) DecodeLiteralRun(r *bitio.Reader, ellOut int, dst []byte) int {
	ell := int(r.Read(s.litWide))
	compressedLen := int(r.Read(32))
	r.AlignByte()
	compressed := r.ReadBytes(compressedLen)
	raw, err := s.dec.DecodeAll(compressed, dst[:0:cap(dst)])
	if err != nil {
		panic(err)
	}
	copy(dst, raw)
	return ell
}
