// Command apex assembles and runs an APEX pipeline program: the batch and
// interactive front end over the cpu/asm/trace packages (SPEC_FULL.md
// section 6.2), in the teacher's idiom of hand-parsed positional CLI
// arguments rather than a flag library.
package main

import (
	"fmt"
	"os"
	"strconv"

	"apex/asm"
	"apex/cpu"
	"apex/trace"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: apex <input_file> <mode> <cycle_budget>")
		os.Exit(1)
	}

	inputFile := os.Args[1]
	mode := os.Args[2]

	cycleBudget, err := strconv.Atoi(os.Args[3])
	if err != nil || cycleBudget < 0 {
		fmt.Fprintln(os.Stderr, "cycle_budget must be a non-negative integer")
		os.Exit(1)
	}

	f, err := os.Open(inputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	code, err := asm.Load(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	c := cpu.New(code)

	switch mode {
	case "simulate":
		trace.CodeListing(os.Stdout, code)
		w := trace.Writer{Out: os.Stdout, Verbose: true}
		for !c.Done() {
			if cycleBudget > 0 && c.Cycle >= cycleBudget {
				break
			}
			w.Tick(c)
			c.Tick()
		}
		fmt.Println("(apex) >> Simulation Complete")
		trace.Dump(os.Stdout, c)

	case "display":
		trace.CodeListing(os.Stdout, code)
		c.Run(cycleBudget)
		fmt.Println("(apex) >> Simulation Complete")
		trace.Dump(os.Stdout, c)

	case "debug":
		cpu.Debug(c, cycleBudget)

	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q: want simulate, display, or debug\n", mode)
		os.Exit(1)
	}
}
