// Command miloc compiles a Milo832 shading-language source file to an
// assembled word stream, the thin driver collaborator named in spec.md §6.
// It is deliberately minimal: parse, generate, assemble, write — all the
// interesting behavior lives in lang/parser, codegen, and asm.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/benjcooley/milo832/asm"
	"github.com/benjcooley/milo832/codegen"
	"github.com/benjcooley/milo832/lang/parser"
)

const (
	binMagic   = 0x4D494C4F // "MILO"
	binVersion = 1
)

func main() {
	var (
		vertex = flag.Bool("v", false, "compile as a vertex-stage program (default: fragment)")
		out    = flag.String("o", "", "output file (default: stdout, hex dump)")
		binOut = flag.Bool("bin", false, "write a .bin word stream instead of a hex dump")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: miloc [-v] [-bin] [-o FILE] SOURCE.glsl")
		os.Exit(2)
	}
	_ = *vertex // stage selection affects only which binding table a driver uses at run time

	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "miloc:", err)
		os.Exit(1)
	}

	p := parser.New(string(src), flag.Arg(0))
	prog := p.ParseProgram()
	if p.Errors.HasErrors() {
		fmt.Fprint(os.Stderr, p.Errors.Error())
		os.Exit(1)
	}

	g := codegen.New()
	asmText := g.Generate(prog)
	if g.Errors.HasErrors() {
		fmt.Fprint(os.Stderr, g.Errors.Error())
		os.Exit(1)
	}

	a := asm.New(flag.Arg(0))
	words := a.Assemble(asmText)
	if a.Errors.HasErrors() {
		fmt.Fprint(os.Stderr, a.Errors.Error())
		os.Exit(1)
	}

	var w = os.Stdout
	if *out != "" {
		f, err := os.Create(*out) // #nosec G304 -- user-specified output path
		if err != nil {
			fmt.Fprintln(os.Stderr, "miloc:", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if *binOut {
		writeBin(w, words)
	} else {
		writeHex(w, words)
	}
}

// writeBin emits the magic/version/word_count header followed by the
// little-endian word stream, per spec.md §6's binary format.
func writeBin(w *os.File, words []uint64) {
	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:4], binMagic)
	binary.LittleEndian.PutUint32(hdr[4:8], binVersion)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(words)))
	w.Write(hdr[:])
	for _, word := range words {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], word)
		w.Write(buf[:])
	}
}

func writeHex(w *os.File, words []uint64) {
	for i, word := range words {
		fmt.Fprintf(w, "%04d: %016x\n", i, word)
	}
}
