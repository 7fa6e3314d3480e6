// Package format implements the encoded-parsing writer/reader and the
// compressed-file header from spec.md sections 4.G and 6: a parsing is
// serialized starting with a literal edge, each literal edge followed by
// its raw bytes and a 32-bit nextliteral counter of how many copy edges
// follow before the next literal (or end).
package format

import (
	"encoding/binary"
	"fmt"

	"github.com/go-lzopt/lzopt"
	"github.com/go-lzopt/lzopt/bitio"
	"github.com/go-lzopt/lzopt/encoders"
)

// ParsingLength returns the total bit cost of a parsing under model,
// Sigma edge_cost(e) + Sigma ell_i * c_char, matching spec.md's
// parsing_length(sol, cm) used by the writer to size its output buffer.
func ParsingLength(p lzopt.Parsing, enc encoders.Encoder) float64 {
	m := enc.CostModel()
	total := 0.0
	for _, e := range p {
		total += m.EdgeCost(e.D, e.Ell, e.CostID)
	}
	return total
}

// Write serializes p using enc into a fresh buffer sized by DataLen, per
// spec.md section 4.G: encoded length is ceil(bitcost/8) plus the
// encoder's trailing safe-read padding.
func Write(p lzopt.Parsing, enc encoders.Encoder, text []byte) ([]byte, error) {
	if len(p) == 0 {
		return nil, nil
	}
	if !p[0].IsLiteral() {
		return nil, fmt.Errorf("format: first edge of a parsing must be a literal")
	}
	bitLen := int(ParsingLength(p, enc)) + 64 // headroom; writer grows on demand
	buf := make([]byte, 0, enc.DataLen(bitLen))
	w := bitio.NewWriter(buf)

	pos := 0
	for i := 0; i < len(p); {
		e := p[i]
		if !e.IsLiteral() {
			return nil, fmt.Errorf("format: expected literal edge at index %d", i)
		}
		enc.EncodeLiteralRun(w, text[pos:pos+e.Ell])
		pos += e.Ell
		i++

		next := 0
		for i < len(p) && !p[i].IsLiteral() {
			next++
			i++
		}
		w.Write(uint64(next), 32)
		for c := 0; c < next; c++ {
			ce := p[i-next+c]
			enc.EncodeCopy(w, ce.D, ce.Ell, ce.CostID)
			pos += ce.Ell
		}
	}

	out := w.Bytes()
	return append(out, make([]byte, enc.ExtraRead())...), nil
}

// Read replays a parsing written by Write, reconstructing the edge
// sequence and the decoded text into dst (which must be at least
// uncompressedSize bytes). It mirrors the phrase-reader contract in
// spec.md section 4.G.
func Read(body []byte, enc encoders.Encoder, uncompressedSize int, dst []byte) (lzopt.Parsing, error) {
	r := bitio.NewReader(body)
	var parsing lzopt.Parsing
	pos := 0
	for pos < uncompressedSize {
		ell := enc.DecodeLiteralRun(r, 0, dst[pos:])
		parsing = append(parsing, lzopt.Edge{D: 0, Ell: ell})
		pos += ell

		next := int(r.Read(32))
		for c := 0; c < next; c++ {
			d, cell := enc.DecodeCopy(r)
			if d <= 0 || d > pos {
				return nil, fmt.Errorf("format: copy edge at position %d has invalid distance %d", pos, d)
			}
			for k := 0; k < cell; k++ {
				dst[pos+k] = dst[pos-d+k]
			}
			parsing = append(parsing, lzopt.Edge{D: d, Ell: cell})
			pos += cell
		}
	}
	return parsing, nil
}

// Header is the compressed-file header: encoder name (null-terminated
// ASCII) and uncompressed size (little-endian u32), per spec.md section 6.
func CreateHeader(encoderName string, uncompressedSize uint32) []byte {
	out := make([]byte, 0, len(encoderName)+1+4)
	out = append(out, encoderName...)
	out = append(out, 0)
	var sz [4]byte
	binary.LittleEndian.PutUint32(sz[:], uncompressedSize)
	return append(out, sz[:]...)
}

// ExtractHeader parses a compressed file's header, returning the encoder
// name, uncompressed size, and the offset where the body begins.
func ExtractHeader(compressed []byte) (encoderName string, uncompressedSize uint32, bodyOffset int, err error) {
	nul := -1
	for i, b := range compressed {
		if b == 0 {
			nul = i
			break
		}
	}
	if nul < 0 {
		return "", 0, 0, fmt.Errorf("format: missing null terminator in header")
	}
	if len(compressed) < nul+5 {
		return "", 0, 0, fmt.Errorf("format: truncated header")
	}
	name := string(compressed[:nul])
	size := binary.LittleEndian.Uint32(compressed[nul+1 : nul+5])
	return name, size, nul + 5, nil
}

// FixParsing rewrites the nextliteral fields of an already-encoded
// parsing body whose (d, ell) pairs and literal bytes are correct but
// whose nextliteral counters are bogus, per spec.md section 6's
// fix_parsing entry point: it replays the input bit-for-bit (decoding
// each literal run and each copy edge only to know their bit widths, and
// re-encoding them identically) except that each nextliteral field is
// replaced with the value nextLiteralIterator reports.
func FixParsing(body []byte, enc encoders.Encoder, uncompressedLen int, nextLiteralIterator func() int) ([]byte, error) {
	r := bitio.NewReader(body)
	w := bitio.NewWriter(make([]byte, 0, len(body)))

	pos := 0
	for pos < uncompressedLen {
		lit := make([]byte, uncompressedLen-pos) // upper bound; trimmed below
		ell := enc.DecodeLiteralRun(r, 0, lit)
		enc.EncodeLiteralRun(w, lit[:ell])
		pos += ell

		bogus := int(r.Read(32))
		_ = bogus
		next := nextLiteralIterator()
		w.Write(uint64(next), 32)

		for c := 0; c < next; c++ {
			d, cell := enc.DecodeCopy(r)
			enc.EncodeCopy(w, d, cell, 0)
			pos += cell
		}
	}
	return append(w.Bytes(), make([]byte, enc.ExtraRead())...), nil
}

// SafeBufferSize implements the "safe buffer size" formula from spec.md
// section 6: max(data_len_E(compressedBitLength), compressedByteLength +
// extra_read_E).
func SafeBufferSize(enc encoders.Encoder, compressedByteLength int) int {
	a := enc.DataLen(compressedByteLength * 8)
	b := compressedByteLength + enc.ExtraRead()
	if a > b {
		return a
	}
	return b
}
