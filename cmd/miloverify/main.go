// Command miloverify drives a compiled Milo832 fragment shader over a set
// of (u,v) sample points and reports its output, the thin "run / generate
// / verify" driver collaborator named in spec.md §6. Interpretation lives
// in vm and the tolerance value comes from config; the per-channel
// tolerance comparison is done here in verifyCmd.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benjcooley/milo832/config"
	"github.com/benjcooley/milo832/vm"
)

// defaultSamplePoints mirrors the original shader_test.c fallback: a small
// fixed set of (u,v) points used when none are given on the command line.
var defaultSamplePoints = [][2]float32{
	{0.0, 0.0}, {1.0, 0.0}, {0.0, 1.0}, {1.0, 1.0}, {0.5, 0.5},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		runCmd(os.Args[2:])
	case "generate":
		generateCmd(os.Args[2:])
	case "verify":
		verifyCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: miloverify run PROGRAM.bin [u,v ...]")
	fmt.Fprintln(os.Stderr, "       miloverify generate PROGRAM.bin [u,v ...]  (writes an EXPECTED.csv fixture to stdout)")
	fmt.Fprintln(os.Stderr, "       miloverify verify PROGRAM.bin EXPECTED.csv [u,v ...]")
}

// generateCmd runs the program over a point set and emits the
// "u,v,r,g,b,a" fixture format verifyCmd later reads back, matching
// shader_test.c's own generate-then-verify workflow.
func generateCmd(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	words, err := readBin(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "miloverify:", err)
		os.Exit(1)
	}

	points := parsePoints(fs.Args()[1:])
	cfg, _ := config.Load()

	for _, pt := range points {
		r, g, b, a := sample(words, cfg, pt)
		fmt.Printf("%v,%v,%v,%v,%v,%v\n", pt[0], pt[1], r, g, b, a)
	}
}

func runCmd(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	words, err := readBin(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "miloverify:", err)
		os.Exit(1)
	}

	points := parsePoints(fs.Args()[1:])
	cfg, _ := config.Load()

	for _, pt := range points {
		r, g, b, a := sample(words, cfg, pt)
		fmt.Printf("(%v, %v) -> (%v, %v, %v, %v)\n", pt[0], pt[1], r, g, b, a)
	}
}

func verifyCmd(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 2 {
		usage()
		os.Exit(2)
	}

	words, err := readBin(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "miloverify:", err)
		os.Exit(1)
	}
	expected, err := readExpectedCSV(fs.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, "miloverify:", err)
		os.Exit(1)
	}

	cfg, _ := config.Load()
	failed := false
	for i, row := range expected {
		r, g, b, a := sample(words, cfg, row.uv)
		got := [4]float32{r, g, b, a}
		var mismatches []string
		for c, name := range []string{"r", "g", "b", "a"} {
			diff := got[c] - row.rgba[c]
			if diff < 0 {
				diff = -diff
			}
			if float64(diff) > cfg.Verify.Tolerance {
				mismatches = append(mismatches, fmt.Sprintf("%s: got %v want %v (diff %v > tol %v)",
					name, got[c], row.rgba[c], diff, cfg.Verify.Tolerance))
			}
		}
		if len(mismatches) > 0 {
			failed = true
			fmt.Printf("sample %d (%v,%v): FAIL\n", i, row.uv[0], row.uv[1])
			for _, m := range mismatches {
				fmt.Println("  " + m)
			}
		} else {
			fmt.Printf("sample %d (%v,%v): PASS\n", i, row.uv[0], row.uv[1])
		}
	}
	if failed {
		os.Exit(1)
	}
}

func sample(words []uint64, cfg *config.Config, uv [2]float32) (r, g, b, a float32) {
	machine := vm.New()
	if cfg != nil {
		machine.MaxCycles = cfg.Execution.MaxCycles
	}
	machine.LoadProgram(words)
	machine.BindFragmentInputs(vm.FragmentInputs{Texcoord: uv})
	machine.Run()
	return machine.ExtractFragmentOutput()
}

func readBin(path string) ([]uint64, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified input path
	if err != nil {
		return nil, err
	}
	if len(data) < 12 {
		return nil, fmt.Errorf("truncated .bin header")
	}
	count := binary.LittleEndian.Uint32(data[8:12])
	words := make([]uint64, 0, count)
	for off := 12; off+8 <= len(data); off += 8 {
		words = append(words, binary.LittleEndian.Uint64(data[off:off+8]))
	}
	return words, nil
}

type expectedRow struct {
	uv   [2]float32
	rgba [4]float32
}

// readExpectedCSV parses "u,v,r,g,b,a" rows, the format shader_verify.c's
// expected-output fixtures use.
func readExpectedCSV(path string) ([]expectedRow, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified input path
	if err != nil {
		return nil, err
	}
	var rows []expectedRow
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 6 {
			return nil, fmt.Errorf("malformed row %q", line)
		}
		vals := make([]float32, 6)
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
			if err != nil {
				return nil, fmt.Errorf("malformed value %q: %w", f, err)
			}
			vals[i] = float32(v)
		}
		rows = append(rows, expectedRow{
			uv:   [2]float32{vals[0], vals[1]},
			rgba: [4]float32{vals[2], vals[3], vals[4], vals[5]},
		})
	}
	return rows, nil
}

func parsePoints(args []string) [][2]float32 {
	if len(args) == 0 {
		return defaultSamplePoints
	}
	points := make([][2]float32, 0, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, ",", 2)
		if len(parts) != 2 {
			continue
		}
		u, err1 := strconv.ParseFloat(parts[0], 32)
		v, err2 := strconv.ParseFloat(parts[1], 32)
		if err1 != nil || err2 != nil {
			continue
		}
		points = append(points, [2]float32{float32(u), float32(v)})
	}
	if len(points) == 0 {
		return defaultSamplePoints
	}
	return points
}
