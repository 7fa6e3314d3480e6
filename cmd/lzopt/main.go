// Command lzopt is the CLI front end for the lzopt bicriteria LZ77
// compressor: it wires the core engine (package lzopt and its
// subpackages) to file I/O, bound/level parsing, and the encoder/target
// registries. No CLI framework is grounded anywhere in the retrieved
// corpus for a single-purpose compression tool, so this uses the standard
// library's flag package directly, the way the teacher's own packages
// carry no CLI layer at all (the teacher is a library; this adds the
// thinnest possible entry point around it per SPEC_FULL.md).
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "compress":
		err = runCompress(os.Args[2:])
	case "bit-optimal":
		err = runBitOptimal(os.Args[2:])
	case "decompress":
		err = runDecompress(os.Args[2:])
	case "encoders":
		err = runEncoders(os.Args[2:])
	case "gens":
		err = runGens(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "lzopt: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: lzopt <command> [flags]

commands:
  compress     -i <file> -e <encoder> -t <target> [-b <bound>] [-l <level>] [-g <generator>] [-c] [-z]
  bit-optimal  -i <file> -o <out> -e <encoder> [-m <model_file>] [-g <generator>] [-b <bucket_MiB>] [-c] [-p] [-z]
  decompress   <input> <output>
  encoders     list available encoder names
  gens         list available generator names

-m, -p, -z and bit-optimal's -b are accepted and have no effect.`)
}
