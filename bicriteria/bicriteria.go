// Package bicriteria implements the bicriteria optimizer from spec.md
// section 4.H: it fuses a space cost model and a time weight model into a
// Lagrangian dual on λ, repeatedly invoking the bit-optimal parser on the
// fused cost model, maintaining a two-solution basis on the dual envelope,
// and recovering a feasible primal via path-swap + solution integration.
package bicriteria

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/go-lzopt/lzopt"
	"github.com/go-lzopt/lzopt/costmodel"
	"github.com/go-lzopt/lzopt/fsg"
	"github.com/go-lzopt/lzopt/parser"
	"github.com/go-lzopt/lzopt/pathswap"
)

// debug gates verbose driver logging, matching the teacher's
// zstd/zstd.go const-bool-gate idiom.
const debug = false

func logf(format string, args ...interface{}) {
	if debug {
		log.Printf("bicriteria: "+format, args...)
	}
}

// ErrInfeasible is returned when the requested bound W is below the
// weight-optimal solution's weight.
var ErrInfeasible = errors.New("bicriteria: bound is infeasible (below weight-optimal weight)")

// Fused holds the cost and weight models derived from fusing a space model
// and a time model over their unioned distance/length ladder, per spec.md
// section 4.H step 1; lambdaModel builds the combined cost+λ*weight model
// from them.
type Fused struct {
	Cost   *costmodel.Model
	Weight *costmodel.Model
}

// Fuse unions the distance and length ladders of cm and wcm and builds
// cost/weight models over the shared ladder U, re-deriving each matrix
// entry by looking up the nearest class in the original model (since the
// two source models may use different quantizations).
func Fuse(cm, wcm *costmodel.Model) Fused {
	D := unionSorted(cm.D, wcm.D)
	L := unionSorted(cm.L, wcm.L)

	cost := rebuild(D, L, cm)
	weight := rebuild(D, L, wcm)
	return Fused{Cost: cost, Weight: weight}
}

func unionSorted(a, b []int) []int {
	set := map[int]bool{}
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		set[v] = true
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func rebuild(D, L []int, src *costmodel.Model) *costmodel.Model {
	m := &costmodel.Model{D: D, L: L, LitFixed: src.LitFixed, LitVar: src.LitVar, CharCost: src.CharCost}
	m.M = make([]float64, len(D)*len(L))
	m.Prepare()
	for li, ell := range L {
		for di, d := range D {
			dstIdx, lenIdx := src.GetIdx(d, ell)
			m.M[li*len(D)+di] = src.GetCost(dstIdx, lenIdx)
		}
	}
	return m
}

// lambdaModel returns cost + λ*weight over the fused ladder, per spec.md
// section 4.H step 1's λ(λ) formula.
func lambdaModel(f Fused, lambda float64) *costmodel.Model {
	m := &costmodel.Model{D: f.Cost.D, L: f.Cost.L,
		LitFixed: f.Cost.LitFixed + lambda*f.Weight.LitFixed,
		LitVar:   f.Cost.LitVar + lambda*f.Weight.LitVar,
		CharCost: f.Cost.CharCost + lambda*f.Weight.CharCost,
	}
	m.M = make([]float64, len(m.D)*len(m.L))
	for i := range m.M {
		m.M[i] = f.Cost.M[i] + lambda*f.Weight.M[i]
	}
	m.Prepare()
	return m
}

// GenFactory builds a fresh fsg.Generator for a given cost model (the FSG
// depends on the model's distance/length ladder, so a new model needs a
// new generator).
type GenFactory func(model *costmodel.Model) fsg.Generator

// parseUnder runs the bit-optimal bi-cost parser for the fused (cost,
// weight) pair under a given combining model for the copy/literal
// relaxation order (lambda model, or cost/weight alone for the
// endpoints).
func parseUnder(text []byte, genFor GenFactory, order *costmodel.Model, cost, weight *costmodel.Model) (lzopt.Parsing, float64, float64) {
	gen := genFor(order)
	res := parser.Parse(text, gen, parser.EdgeCoster{Cost: cost, Weight: weight}, 0)
	return res.Parsing, res.Total.Cost, res.Total.Weight
}

// Options configures one bicriteria compression request.
type Options struct {
	// Bound is the decompression-time bound W, in whatever units
	// cmTime's matrix was loaded with.
	Bound float64
	// Epsilon is the dual-gap termination threshold; zero defaults to
	// 1e-6 per spec.md section 4.H step 5.
	Epsilon float64
	// MaxIterations bounds the λ loop as a backstop against numerical
	// stalls; zero defaults to 64.
	MaxIterations int
}

// Solve runs the full bicriteria driver (spec.md section 4.H) for text
// under the fused models cmSpace/cmTime, returning the final parsing in
// fused-cost-model space (callers typically then Integrate it against a
// concrete encoder's native cost model).
func Solve(text []byte, cmSpace, cmTime *costmodel.Model, genFor GenFactory, opts Options) (lzopt.Parsing, lzopt.SolutionInfo, error) {
	if opts.Epsilon <= 0 {
		opts.Epsilon = 1e-6
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 64
	}

	fused := Fuse(cmSpace, cmTime)

	// Endpoint solutions: cost-optimal (ties broken by weight) and
	// weight-optimal (ties broken by cost).
	costOptParsing, sC, tC := parseUnder(text, genFor, fused.Cost, fused.Cost, fused.Weight)
	weightOptParsing, sW, tW := parseUnder(text, genFor, fused.Weight, fused.Weight, fused.Cost)
	// weightOptParsing above was parsed with (cost=weight-model,
	// weight=cost-model) to break ties by cost while optimizing weight
	// first; re-read its actual (space,time) under the real cost/weight
	// roles.
	sW2, tW2 := evalUnder(weightOptParsing, fused.Cost, fused.Weight)
	sW, tW = sW2, tW2
	_ = sC

	if opts.Bound >= tC {
		return costOptParsing, lzopt.SolutionInfo{Cost: sC, Weight: tC, Parsing: costOptParsing}, nil
	}
	if opts.Bound == tW {
		return weightOptParsing, lzopt.SolutionInfo{Cost: sW, Weight: tW, Parsing: weightOptParsing}, nil
	}
	if opts.Bound < tW {
		return nil, lzopt.SolutionInfo{}, fmt.Errorf("%w: W=%g below weight-optimal weight %g", ErrInfeasible, opts.Bound, tW)
	}

	basis := lzopt.Basis{
		Left:  lzopt.SolutionInfo{Cost: sC, Weight: tC, Parsing: costOptParsing},
		Right: lzopt.SolutionInfo{Cost: sW, Weight: tW, Parsing: weightOptParsing},
	}
	if basis.Left.Weight > opts.Bound {
		basis.Left, basis.Right = basis.Right, basis.Left
	}

	prevPhi := intersectionValue(basis, opts.Bound)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		lambda, _, ok := intersectionLambda(basis, opts.Bound)
		if !ok {
			logf("parallel dual lines at iteration %d, keeping prior basis", iter)
			break
		}
		lm := lambdaModel(fused, lambda)
		p, c, w := parseUnder(text, genFor, lm, fused.Cost, fused.Weight)
		lastInfo := lzopt.SolutionInfo{Cost: c, Weight: w, Parsing: p}

		newBasis := basis
		if w <= opts.Bound {
			if betterLine(c, w, opts.Bound, newBasis.Left.Cost, newBasis.Left.Weight) {
				newBasis.Left = lastInfo
			}
		} else {
			if betterLine(c, w, opts.Bound, newBasis.Right.Cost, newBasis.Right.Weight) {
				newBasis.Right = lastInfo
			}
		}

		newPhi := intersectionValue(newBasis, opts.Bound)
		delta := abs(prevPhi-newPhi) / maxf(abs(newPhi), 1e-12)
		basis = newBasis
		prevPhi = newPhi
		if delta <= opts.Epsilon {
			logf("dual gap closed after %d iterations (delta=%g)", iter+1, delta)
			break
		}
	}

	swapped, err := pathswap.Swap(text, basis.Left, basis.Right, opts.Bound, fused.Cost, fused.Weight)
	if err != nil {
		return nil, lzopt.SolutionInfo{}, err
	}
	sc, wc := evalUnder(swapped, fused.Cost, fused.Weight)
	return swapped, lzopt.SolutionInfo{Cost: sc, Weight: wc, Parsing: swapped}, nil
}

func evalUnder(p lzopt.Parsing, cost, weight *costmodel.Model) (c, w float64) {
	for _, e := range p {
		c += cost.EdgeCost(e.D, e.Ell, e.CostID)
		w += weight.EdgeCost(e.D, e.Ell, e.CostID)
	}
	return
}

// betterLine reports whether (c,w) would lower the dual line's value at
// the point where it currently binds, compared to the existing (c0,w0)
// occupying that basis slot -- a cost-optimal-style "strictly lower cost
// at the same feasibility side wins" rule.
func betterLine(c, w, bound, c0, w0 float64) bool {
	return c < c0 || (c == c0 && absf(w-bound) < absf(w0-bound))
}

// intersectionLambda returns the λ at which the two basis lines
// cost+λ*(weight-W) intersect, per spec.md's dual-basis definition.
// ok is false if the lines are parallel (equal weights).
func intersectionLambda(b lzopt.Basis, bound float64) (lambda, phi float64, ok bool) {
	dw := b.Left.Weight - b.Right.Weight
	if dw == 0 {
		return 0, 0, false
	}
	lambda = (b.Right.Cost - b.Left.Cost) / dw
	phi = b.Left.Cost + lambda*(b.Left.Weight-bound)
	return lambda, phi, true
}

func intersectionValue(b lzopt.Basis, bound float64) float64 {
	_, phi, ok := intersectionLambda(b, bound)
	if !ok {
		return b.Left.Cost
	}
	return phi
}

func abs(v float64) float64  { return absf(v) }
func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
