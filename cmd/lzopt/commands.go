package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/go-lzopt/lzopt"
	"github.com/go-lzopt/lzopt/encoders"
	"github.com/go-lzopt/lzopt/format"
	"github.com/go-lzopt/lzopt/target"
)

func runEncoders(args []string) error {
	names := encoders.Names()
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func runGens(args []string) error {
	names := lzopt.GeneratorNames()
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func runDecompress(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: lzopt decompress <input> <output>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	out, err := lzopt.Decompress(data)
	if err != nil {
		return err
	}
	return os.WriteFile(args[1], out, 0644)
}

func runBitOptimal(args []string) error {
	fs := flag.NewFlagSet("bit-optimal", flag.ContinueOnError)
	input := fs.String("i", "", "input file")
	output := fs.String("o", "", "output file")
	encName := fs.String("e", "", "encoder name")
	_ = fs.String("m", "", "model file (accepted, not read: the cost model comes from -e)")
	genName := fs.String("g", "plain", "generator (see the gens subcommand)")
	_ = fs.Int("b", 0, "bucket MiB (accepted, not used)")
	verify := fs.Bool("c", false, "verify round-trip")
	_ = fs.Bool("p", false, "print stats (accepted, not used)")
	_ = fs.Bool("z", false, "progress meter (accepted, not used)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" || *output == "" || *encName == "" {
		return fmt.Errorf("bit-optimal: -i, -o, and -e are required")
	}

	text, err := os.ReadFile(*input)
	if err != nil {
		return err
	}
	enc, err := encoders.Get(*encName)
	if err != nil {
		return err
	}
	if !validGenName(*genName) {
		return fmt.Errorf("bit-optimal: unknown generator %q (want one of %v)", *genName, lzopt.GeneratorNames())
	}
	parsing, err := lzopt.CompressBitOptimal(text, enc, *genName)
	if err != nil {
		return err
	}
	if !parsing.Valid(len(text)) {
		return fmt.Errorf("bit-optimal: produced an invalid parsing (internal error)")
	}
	body, err := format.Write(parsing, enc, text)
	if err != nil {
		return err
	}
	header := format.CreateHeader(*encName, uint32(len(text)))
	out := append(header, body...)
	if err := os.WriteFile(*output, out, 0644); err != nil {
		return err
	}
	if *verify {
		return verifyRoundTrip(out, text)
	}
	return nil
}

func runCompress(args []string) error {
	fs := flag.NewFlagSet("compress", flag.ContinueOnError)
	input := fs.String("i", "", "input file")
	encName := fs.String("e", "", "encoder name")
	targetName := fs.String("t", "", "target file")
	bound := fs.String("b", "", "bound spec")
	level := fs.String("l", "", "level spec")
	genName := fs.String("g", "plain", "generator (see the gens subcommand)")
	verify := fs.Bool("c", false, "verify round-trip")
	_ = fs.Bool("z", false, "progress meter (accepted, not used)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" || *encName == "" || *targetName == "" {
		return fmt.Errorf("compress: -i, -e, and -t are required")
	}

	text, err := os.ReadFile(*input)
	if err != nil {
		return err
	}
	enc, err := encoders.Get(*encName)
	if err != nil {
		return err
	}
	tgtFile, err := os.Open(*targetName)
	if err != nil {
		return err
	}
	defer tgtFile.Close()
	tgt, err := target.Parse(tgtFile)
	if err != nil {
		return err
	}
	wcm, err := tgt.ModelFor(*encName)
	if err != nil {
		return err
	}

	boundNanos, label, err := resolveBound(*bound, *level)
	if err != nil {
		return err
	}
	if !validGenName(*genName) {
		return fmt.Errorf("compress: unknown generator %q (want one of %v)", *genName, lzopt.GeneratorNames())
	}

	parsing, err := lzopt.CompressBicriteria(text, enc, wcm, boundNanos, *genName)
	if err != nil {
		return err
	}
	body, err := format.Write(parsing, enc, text)
	if err != nil {
		return err
	}
	header := format.CreateHeader(*encName, uint32(len(text)))
	out := append(header, body...)

	outName := fmt.Sprintf("%s#%s#%s.lzo", *input, *encName, label)
	if err := os.WriteFile(outName, out, 0644); err != nil {
		return err
	}
	if *verify {
		return verifyRoundTrip(out, text)
	}
	return nil
}

// resolveBound turns a -b spec into a concrete nanosecond time bound, per
// spec.md section 6, using the first time item of the spec. A non-empty -l
// spec is rejected with an error, and both being empty is an input-format
// error.
func resolveBound(boundSpec, levelSpec string) (float64, string, error) {
	if boundSpec != "" {
		items, err := parseBoundSpec(boundSpec)
		if err != nil {
			return 0, "", err
		}
		for _, b := range items {
			if b.isTime() {
				return b.nanos(), boundLabel(items), nil
			}
		}
		return 0, "", fmt.Errorf("compress: -b must include at least one time unit (m/s)")
	}
	if levelSpec != "" {
		return 0, "", fmt.Errorf("compress: -l level syntax requires pre-computed min/max endpoints (run bit-optimal at both encoders first); use -b directly")
	}
	return 0, "", fmt.Errorf("compress: one of -b or -l is required")
}

func validGenName(name string) bool {
	for _, n := range lzopt.GeneratorNames() {
		if n == name {
			return true
		}
	}
	return false
}

func verifyRoundTrip(compressed, original []byte) error {
	out, err := lzopt.Decompress(compressed)
	if err != nil {
		return fmt.Errorf("verify: decompress failed: %w", err)
	}
	if len(out) != len(original) {
		return fmt.Errorf("verify: length mismatch: got %d, want %d", len(out), len(original))
	}
	for i := range out {
		if out[i] != original[i] {
			return fmt.Errorf("verify: first mismatch at byte %d", i)
		}
	}
	return nil
}
