// Package lzopt is a bicriteria LZ77 compressor: given an input text and a
// target decompression machine model, it produces an LZ77 parsing whose
// encoded size is minimized subject to an upper bound on estimated
// decompression time (or, symmetrically, minimizes time subject to a space
// bound).
//
// The package is organized the way the engine itself is: a forward star
// generator (package fsg) streams maximal phrase edges from a suffix array
// (package suffixarray) through a reduced-suffix-array sliding window
// (package rsa); a bit-optimal parser (package parser) turns that stream
// into a single weighted-shortest-path parsing using a cost model (package
// costmodel); a bicriteria driver (package bicriteria) iterates the parser
// over a Lagrangian-dual family of fused cost models, reconciling two basis
// parsings with a path swap (package pathswap) and a solution integrator
// (package integrate); the result is serialized by package format and
// reversed by package decompress.
package lzopt
