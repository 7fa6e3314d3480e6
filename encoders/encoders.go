// Package encoders is the closed registry of concrete LZ77 encoders named
// in spec.md section 4.B: hybrid{,-8,-16,-32}, soda09{,-0U,-1U}, and
// nibble4{,...} -- plus a handful of literal-run variants
// (hybrid-brotli, soda09-zstd, nibble4-snappy, nibble4-lz4) that swap the
// literal-run sub-codec for a real third-party block compressor while
// leaving copy-edge encoding untouched. Each encoder is modeled as a value
// type implementing the small capability interface Encoder and is looked
// up by name in a registry table; callers such as format.Write and the
// decompressor invoke its methods through that interface for every edge.
package encoders

import (
	"fmt"

	"github.com/go-lzopt/lzopt/bitio"
	"github.com/go-lzopt/lzopt/costmodel"
)

// Encoder is the capability set every registered encoder implements.
type Encoder interface {
	Name() string
	CostModel() *costmodel.Model
	LiteralWindow() int

	EncodeCopy(w *bitio.Writer, d, ell, costID int)
	DecodeCopy(r *bitio.Reader) (d, ell int)

	EncodeLiteralRun(w *bitio.Writer, raw []byte)
	DecodeLiteralRun(r *bitio.Reader, ellOut int, dst []byte) int

	// DataLen and ExtraRead implement the "safe buffer size" formula from
	// spec.md section 6: data_len(bits) = ceil(bits/8) + 8, extra_read = 8
	// for every encoder in this registry.
	DataLen(bits int) int
	ExtraRead() int
}

// registry is the closed set of encoders by name.
var registry = map[string]func() Encoder{}

func register(name string, f func() Encoder) {
	registry[name] = f
}

// Get returns the encoder for a registered name.
func Get(name string) (Encoder, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("encoders: unknown encoder %q", name)
	}
	return f(), nil
}

// Names lists every registered encoder name, for the "encoders" CLI
// subcommand.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	return out
}

func baseDataLen(bits int) int { return (bits+7)/8 + bitio.SafeTrailingBytes }
func baseExtraRead() int       { return bitio.SafeTrailingBytes }
