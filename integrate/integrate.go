// Package integrate implements the solution integrator from spec.md
// section 4.J: re-encodes a parsing produced under a fused cost model so
// its edges align with a single encoder's native cost model, by replaying
// a fresh FSG over the text and matching each edge's length against the
// mesh produced at its position.
package integrate

import (
	"errors"
	"fmt"

	"github.com/go-lzopt/lzopt"
	"github.com/go-lzopt/lzopt/costmodel"
	"github.com/go-lzopt/lzopt/fsg"
)

// ErrNoMatch is returned when a fixable edge finds no matching length in
// the replayed mesh, indicating a bug upstream (spec.md section 4.J /
// section 7's "Integration miss").
var ErrNoMatch = errors.New("integrate: fixable edge found no match")

// Integrate replays gen over text (which must be a fresh generator built
// for nativeModel) and re-labels each edge of p to the (d, ell, cost_id)
// the replayed mesh assigns at that position, so the result is directly
// encodable by the encoder nativeModel belongs to. Literal edges pass
// through verbatim.
func Integrate(p lzopt.Parsing, gen fsg.Generator, nativeModel *costmodel.Model) (lzopt.Parsing, error) {
	out := make(lzopt.Parsing, 0, len(p))
	pos := 0
	for _, e := range p {
		if e.IsLiteral() {
			out = append(out, e)
			for i := 0; i < e.Ell; i++ {
				gen.Advance()
			}
			pos += e.Ell
			continue
		}
		mesh := gen.Advance()
		matched, ok := matchLength(mesh, e.Ell)
		if !ok {
			return nil, fmt.Errorf("%w: at position %d, length %d", ErrNoMatch, pos, e.Ell)
		}
		for i := 1; i < e.Ell; i++ {
			gen.Advance()
		}
		out = append(out, lzopt.Edge{D: matched.D, Ell: matched.Ell, CostID: matched.CostID})
		pos += e.Ell
	}
	return out, nil
}

func matchLength(mesh []fsg.Edge, ell int) (fsg.Edge, bool) {
	for _, m := range mesh {
		if m.Ell == ell {
			return m, true
		}
	}
	return fsg.Edge{}, false
}
