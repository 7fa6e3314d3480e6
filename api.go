package lzopt

import (
	"fmt"

	"github.com/go-lzopt/lzopt/bicriteria"
	"github.com/go-lzopt/lzopt/costmodel"
	"github.com/go-lzopt/lzopt/decompress"
	"github.com/go-lzopt/lzopt/encoders"
	"github.com/go-lzopt/lzopt/format"
	"github.com/go-lzopt/lzopt/fsg"
	"github.com/go-lzopt/lzopt/integrate"
	"github.com/go-lzopt/lzopt/parser"
	"github.com/go-lzopt/lzopt/suffixarray"
)

// saCache is shared across calls in this process, per spec.md section 5's
// memory-ownership note that suffix array ownership is shared via a
// cache.
var saCache suffixarray.Cache

// GeneratorNames lists every FSG variant the "-g <generator>" bit-optimal
// flag and the "gens" CLI subcommand can select, querying the fsg package
// directly rather than hardcoding a second copy of the list (spec.md
// section 6).
func GeneratorNames() []string { return fsg.Names() }

// buildGen constructs the named generator variant over text/model using
// the shared suffix array cache. An empty genName selects "plain".
func buildGen(text []byte, model *costmodel.Model, genName string) (fsg.Generator, error) {
	arr, err := saCache.Get(text)
	if err != nil {
		return nil, err
	}
	cfg := fsg.Config{Text: text, SA: arr.SA, ISA: arr.ISA(), Model: model}
	return fsg.NewNamed(genName, cfg, len(text))
}

// genFactory builds a generator for a model over text using the shared
// suffix array cache, for use as a bicriteria.GenFactory.
func genFactory(text []byte, genName string) bicriteria.GenFactory {
	return func(model *costmodel.Model) fsg.Generator {
		gen, err := buildGen(text, model, genName)
		if err != nil {
			// Construction failure is fatal per spec.md section 4.A;
			// the only realistic causes (text too large for int32, or an
			// unknown generator name) are checked well before this point
			// by callers, so panic here mirrors the spec's "fatal"
			// classification without forcing every call site to plumb an
			// error through GenFactory.
			panic(err)
		}
		return gen
	}
}

// CompressBitOptimal runs the single-criterion bit-optimal parser
// (spec.md section 4.F) for text under enc's native cost model using the
// named generator variant ("" or "plain" for the default), with no
// bicriteria bound. This is the "bit-optimal" CLI subcommand's core.
func CompressBitOptimal(text []byte, enc encoders.Encoder, genName string) (Parsing, error) {
	gen, err := buildGen(text, enc.CostModel(), genName)
	if err != nil {
		return nil, err
	}
	res := parser.Parse(text, gen, parser.EdgeCoster{Cost: enc.CostModel()}, enc.LiteralWindow())
	return res.Parsing, nil
}

// CompressBicriteria runs the full bicriteria driver (spec.md section
// 4.H) for text against encoder enc and weight model wcm, bound W, using
// the named generator variant for every model the driver builds, then
// integrates the resulting fused-cost-model parsing back onto enc's
// native cost model (spec.md section 4.J) so it is directly encodable.
func CompressBicriteria(text []byte, enc encoders.Encoder, wcm *costmodel.Model, bound float64, genName string) (Parsing, error) {
	_, err := saCache.Get(text) // warms the cache; ignore result here
	if err != nil {
		return nil, err
	}
	parsing, _, err := bicriteria.Solve(text, enc.CostModel(), wcm, genFactory(text, genName), bicriteria.Options{Bound: bound})
	if err != nil {
		return nil, err
	}

	nativeGen, err := buildGen(text, enc.CostModel(), genName)
	if err != nil {
		return nil, err
	}
	return integrate.Integrate(parsing, nativeGen, enc.CostModel())
}

// CompressBuffer encodes uncompressedData with encoder enc (a plain
// bit-optimal parse; callers wanting bicriteria behavior call
// CompressBicriteria then format.Write directly) and returns the raw
// parsing body (no header), per spec.md section 6's compress_buffer.
func CompressBuffer(encName string, uncompressedData []byte) ([]byte, error) {
	enc, err := encoders.Get(encName)
	if err != nil {
		return nil, err
	}
	parsing, err := CompressBitOptimal(uncompressedData, enc, "")
	if err != nil {
		return nil, err
	}
	return format.Write(parsing, enc, uncompressedData)
}

// Compress encodes uncompressedData with encoder enc and prepends the
// compressed-file header, per spec.md section 6's compress entry point.
func Compress(encName string, uncompressedData []byte) ([]byte, error) {
	body, err := CompressBuffer(encName, uncompressedData)
	if err != nil {
		return nil, err
	}
	header := format.CreateHeader(encName, uint32(len(uncompressedData)))
	return append(header, body...), nil
}

// DecompressBuffer reverses CompressBuffer: decodes body (no header)
// given the encoder name and uncompressed size.
func DecompressBuffer(encName string, body []byte, uncompressedSize int) ([]byte, error) {
	out := make([]byte, uncompressedSize)
	if err := decompress.BufferWith(encName, body, uncompressedSize, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decompress reverses Compress: reads the header, then decodes the body.
func Decompress(compressedData []byte) ([]byte, error) {
	return decompress.Buffer(compressedData)
}

// ExtractHeader returns the encoder name, uncompressed size, and the
// offset where the body begins, per spec.md section 6.
func ExtractHeader(compressedData []byte) (encName string, uncompressedSize uint32, bodyOffset int, err error) {
	return format.ExtractHeader(compressedData)
}

// CreateHeader builds a compressed-file header for encName/uncompressedSize.
func CreateHeader(encName string, uncompressedSize uint32) []byte {
	return format.CreateHeader(encName, uncompressedSize)
}

// FixParsing rewrites the nextliteral fields of an already-encoded
// parsing whose (d, ell) pairs and literal bytes are correct but whose
// nextliteral counters are bogus (e.g. assembled from an edge list
// without tracking framing), per spec.md section 6's fix_parsing entry
// point. nextLiteralIterator is called once per literal edge, in order,
// and must return the true number of copy edges following it before the
// next literal (or end of text).
func FixParsing(encName string, parsingWithBogusNextLiterals []byte, uncompressedLen int, nextLiteralIterator func() int) ([]byte, error) {
	enc, err := encoders.Get(encName)
	if err != nil {
		return nil, err
	}
	return format.FixParsing(parsingWithBogusNextLiterals, enc, uncompressedLen, nextLiteralIterator)
}
