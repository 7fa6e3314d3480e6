package bicriteria

import (
	"testing"

	"github.com/go-lzopt/lzopt/costmodel"
	"github.com/go-lzopt/lzopt/fsg"
	"github.com/go-lzopt/lzopt/suffixarray"
)

// spaceModel and timeModel give distinct cost/weight matrices over the
// same ladder, a small hybrid-like model, so the cost-optimal and
// weight-optimal endpoints genuinely differ (S4/S5 need that to be
// meaningful).
func spaceModel() *costmodel.Model {
	m := &costmodel.Model{D: []int{8, 64, 1024}, L: []int{4, 16, 64}}
	m.M = make([]float64, len(m.D)*len(m.L))
	for li, ell := range m.L {
		for di, d := range m.D {
			m.M[li*len(m.D)+di] = float64(d+1) * 0.1 / float64(ell)
		}
	}
	m.LitFixed, m.LitVar = 8, 8
	m.Prepare()
	return m
}

func timeModel() *costmodel.Model {
	m := &costmodel.Model{D: []int{8, 64, 1024}, L: []int{4, 16, 64}}
	m.M = make([]float64, len(m.D)*len(m.L))
	for li, d := range m.D {
		_ = d
		for di := range m.D {
			// Longer, further-away copies cost more decode time than
			// short local ones, the opposite slope from spaceModel, so
			// the two endpoints disagree about which parsing is best.
			m.M[li*len(m.D)+di] = float64(di+1) * float64(li+1)
		}
	}
	m.LitFixed, m.LitVar = 1, 1
	m.Prepare()
	return m
}

func testGenFactory(text []byte) GenFactory {
	var cache suffixarray.Cache
	return func(model *costmodel.Model) fsg.Generator {
		arr, err := cache.Get(text)
		if err != nil {
			panic(err)
		}
		return fsg.New(fsg.Config{Text: text, SA: arr.SA, ISA: arr.ISA(), Model: model})
	}
}

// TestSolveEndpoints covers the cost-optimal end of S4: a bound above the
// cost-optimal weight returns a valid parsing that reproduces the text,
// repeating that solve gives the same cost, and a bound equal to the
// cost-optimal weight returns a valid solution within that weight. The
// weight-optimal end is not checked here.
func TestSolveEndpoints(t *testing.T) {
	text := []byte("abcabcabcabcxyzxyzxyzabcabcabc")
	cm, wm := spaceModel(), timeModel()
	gen := testGenFactory(text)

	costOpt, infoC, err := Solve(text, cm, wm, gen, Options{Bound: 1e18})
	if err != nil {
		t.Fatalf("cost-optimal endpoint: %v", err)
	}
	if !costOpt.Valid(len(text)) {
		t.Fatalf("cost-optimal endpoint: invalid parsing")
	}
	if _, _, _, ok := costOpt.VerifyAgainst(text); !ok {
		t.Fatalf("cost-optimal endpoint: parsing does not reproduce text")
	}

	_, infoWWide, err := Solve(text, cm, wm, gen, Options{Bound: 1e18})
	if err != nil {
		t.Fatalf("re-solving at the same wide bound: %v", err)
	}
	if infoWWide.Cost != infoC.Cost {
		t.Fatalf("Solve is not deterministic at a fixed bound: %g vs %g", infoWWide.Cost, infoC.Cost)
	}

	atCostWeight, infoAtCostWeight, err := Solve(text, cm, wm, gen, Options{Bound: infoC.Weight})
	if err != nil {
		t.Fatalf("bound at cost-optimal weight: %v", err)
	}
	if !atCostWeight.Valid(len(text)) {
		t.Fatalf("bound at cost-optimal weight: invalid parsing")
	}
	if infoAtCostWeight.Weight > infoC.Weight+1e-9 {
		t.Fatalf("solution at bound=%g has weight %g", infoC.Weight, infoAtCostWeight.Weight)
	}
}

// TestSolveInteriorBound is S5: a bound strictly between the weight-
// optimal and cost-optimal weights must return a valid parsing that
// reproduces the text, is feasible (weight <= bound) and has a
// non-negative cost. Where the cost lies relative to the endpoints' costs
// is not checked.
func TestSolveInteriorBound(t *testing.T) {
	text := []byte("abcabcabcabcxyzxyzxyzabcabcabc")
	cm, wm := spaceModel(), timeModel()
	gen := testGenFactory(text)

	_, infoC, err := Solve(text, cm, wm, gen, Options{Bound: 1e18})
	if err != nil {
		t.Fatalf("cost-optimal endpoint: %v", err)
	}
	// The weight-optimal weight is the true infimum of feasible bounds;
	// find it the same way Solve does internally, by asking for a bound
	// far below any parsing's weight and reading the error's reported
	// weight-optimal weight is not exposed, so instead solve at a very
	// small bound and only proceed if it is reported infeasible, then
	// widen until feasible.
	var wMin float64
	lo, hi := 0.0, infoC.Weight
	for i := 0; i < 30 && hi-lo > 1e-6; i++ {
		mid := (lo + hi) / 2
		if _, _, err := Solve(text, cm, wm, gen, Options{Bound: mid}); err != nil {
			lo = mid
		} else {
			hi = mid
		}
	}
	wMin = hi

	interior := (wMin + infoC.Weight) / 2
	parsing, info, err := Solve(text, cm, wm, gen, Options{Bound: interior})
	if err != nil {
		t.Fatalf("interior bound %g: %v", interior, err)
	}
	if !parsing.Valid(len(text)) {
		t.Fatalf("interior bound: invalid parsing")
	}
	if _, _, _, ok := parsing.VerifyAgainst(text); !ok {
		t.Fatalf("interior bound: parsing does not reproduce text")
	}
	if info.Weight > interior+1e-6 {
		t.Fatalf("interior bound %g: solution weight %g exceeds bound", interior, info.Weight)
	}
	if info.Cost < 0 {
		t.Fatalf("interior bound: negative cost %g", info.Cost)
	}
}
