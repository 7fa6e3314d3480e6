package fsg

import "fmt"

// Names lists every generator variant this package exposes, for the
// "gens" CLI subcommand (spec.md section 6) and for NewNamed's dispatch
// below, kept as a single source of truth so the two can't drift apart.
func Names() []string {
	return []string{"plain", "rightmost", "generalized", "caching", "cached", "hashchain"}
}

// NewNamed builds the generator variant named by name over cfg, for a
// text of n bytes, per the "-g <generator>" bit-optimal CLI flag. caching
// and cached both need a caching pass to produce or replay the gamma-coded
// streams Caching.Bytes/NewCached exchange; without a persisted cache file
// to read, "cached" builds one from a fresh caching pass over the same
// text, matching what a real cache-then-replay pipeline does on its first
// run (no stale cache yet available).
func NewNamed(name string, cfg Config, n int) (Generator, error) {
	switch name {
	case "", "plain":
		return New(cfg), nil
	case "rightmost":
		return NewRightmost(cfg), nil
	case "generalized":
		return Generalized(cfg), nil
	case "hashchain":
		return NewHashChain(cfg, 64), nil
	case "caching":
		return NewCaching(cfg, New(cfg), n), nil
	case "cached":
		caching := NewCaching(cfg, New(cfg), n)
		for i := 0; i < n; i++ {
			caching.Advance()
		}
		return NewCached(cfg, caching.Bytes()), nil
	default:
		return nil, fmt.Errorf("fsg: unknown generator %q (want one of %v)", name, Names())
	}
}
