// Package decompress reverses package format: reads the compressed-file
// header, streams phrases, and applies an overlap-safe copy for distances
// smaller than the chunk size, per spec.md section 4.K.
package decompress

import (
	"fmt"

	"github.com/go-lzopt/lzopt/bitio"
	"github.com/go-lzopt/lzopt/encoders"
	"github.com/go-lzopt/lzopt/format"
)

// Buffer decompresses a full compressed file (header + body) into a
// freshly allocated buffer of the recorded uncompressed size.
func Buffer(compressed []byte) ([]byte, error) {
	name, size, bodyOff, err := format.ExtractHeader(compressed)
	if err != nil {
		return nil, err
	}
	enc, err := encoders.Get(name)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	if err := decodeBody(compressed[bodyOff:], enc, int(size), out); err != nil {
		return nil, err
	}
	return out, nil
}

// BufferWith decompresses body (the encoder body only, no header) for a
// caller who already knows the encoder and uncompressed size, matching
// the decompress_buffer(enc, compressed_ptr, output_ptr, uncompressed_size)
// programmatic entry point in spec.md section 6.
func BufferWith(encName string, body []byte, uncompressedSize int, out []byte) error {
	enc, err := encoders.Get(encName)
	if err != nil {
		return err
	}
	return decodeBody(body, enc, uncompressedSize, out)
}

func decodeBody(body []byte, enc encoders.Encoder, uncompressedSize int, out []byte) error {
	r := bitio.NewReader(body)
	pos := 0
	for pos < uncompressedSize {
		ell := enc.DecodeLiteralRun(r, 0, out[pos:])
		pos += ell
		if pos > uncompressedSize {
			return fmt.Errorf("decompress: literal run overruns output at %d", pos)
		}
		next := int(r.Read(32))
		for c := 0; c < next; c++ {
			d, ell := enc.DecodeCopy(r)
			if d <= 0 || d > pos {
				return fmt.Errorf("decompress: invalid copy distance %d at position %d", d, pos)
			}
			if pos+ell > uncompressedSize {
				return fmt.Errorf("decompress: copy overruns output at %d", pos)
			}
			overlapSafeCopy(out, pos, d, ell)
			pos += ell
		}
	}
	return nil
}

// overlapSafeCopy copies ell bytes from out[pos-d:] to out[pos:], so that
// a copy with d < ell repeats the d-byte pattern forward, as an LZ77 copy
// means. For d >= 8 it copies in 8-byte chunks (a chunk's source and
// destination never overlap); for d < 8 it copies one byte at a time, with
// no 8-byte chunks.
func overlapSafeCopy(out []byte, pos, d, ell int) {
	src := pos - d
	if d >= 8 {
		n := 0
		for n+8 <= ell {
			copy(out[pos+n:pos+n+8], out[src+n:src+n+8])
			n += 8
		}
		for ; n < ell; n++ {
			out[pos+n] = out[src+n]
		}
		return
	}
	// d < 8: copy byte by byte, so every source byte has already been
	// written when it is read.
	for n := 0; n < ell; n++ {
		out[pos+n] = out[src+n]
	}
}
