package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

type perftJob struct {
	label string
	fen   string
	depth int
}

var perftJobs = []perftJob{
	{"Initial", "", 3},
	{"Initial", "", 4},
	{"Initial", "", 5},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3},
	{"Position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4},
	{"Position4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 3},
}

func main() {
	// Usage: go run ./cmd/benchrun
	// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s")
	if code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance (verified against dragontoothmg):")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	failed := false
	for _, job := range perftJobs {
		args := []string{"run", "./cmd/perft", "-depth", strconv.Itoa(job.depth), "-label", job.label, "-verify", "-log-level", "warn"}
		if job.fen != "" {
			args = append(args, "-fen", job.fen)
		}
		if run("go", args...) != 0 {
			failed = true
		}
	}

	fmt.Println("\nSearch:")
	if run("go", "run", "./cmd/searchbench", "-depth", "3", "-log-level", "warn") != 0 {
		failed = true
	}
	if failed {
		os.Exit(1)
	}
}
