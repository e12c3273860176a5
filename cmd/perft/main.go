package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"

	gm "minimax-chess/chessmg"
	"minimax-chess/internal/cliutil"
)

// dragonPerft counts leaves with the reference generator.
func dragonPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		n += dragonPerft(b, depth-1)
		unapply()
	}
	return n
}

func main() {
	fen := flag.String("fen", gm.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", cliutil.EnvInt(cliutil.EnvDepth, 0), "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	parallel := flag.Int("parallel", 0, "Split the root across N workers (0 = sequential, with -divide)")
	verify := flag.Bool("verify", false, "Cross-check the node count against dragontoothmg")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	logLevel := flag.String("log-level", cliutil.EnvString(cliutil.EnvLogLevel, "info"), "zerolog level")
	flag.Parse()

	logger, err := cliutil.NewLogger(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", *logLevel).Msg("bad log level")
	}
	log.Logger = logger

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := gm.ParseBoard(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("parse fen")
	}

	if *divide {
		var div map[gm.DivideEntry]uint64
		if *parallel > 0 {
			div, err = gm.PerftDivideParallel(context.Background(), &board, *depth, *parallel)
			if err != nil {
				log.Fatal().Err(err).Msg("parallel divide")
			}
		} else {
			div = gm.PerftDivide(&board, *depth)
		}
		type kv struct {
			e gm.DivideEntry
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for e, n := range div {
			arr = append(arr, kv{e, n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].e.String() < arr[j].e.String() })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.e.String(), x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		if *verify {
			check(*fen, *depth, sum)
		}
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatal().Err(err).Msg("creating cpuprofile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("start cpu profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes, nodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		nodes = gm.Perft(&board, *depth)
		totalNodes += nodes
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *verify {
		check(*fen, *depth, nodes)
	}

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Fatal().Err(err).Msg("creating memprofile")
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("write heap profile")
		}
		_ = f.Close()
	}
}

func check(fen string, depth int, got uint64) {
	ref := dragontoothmg.ParseFen(fen)
	want := dragonPerft(&ref, depth)
	if got != want {
		log.Error().Uint64("got", got).Uint64("want", want).Int("depth", depth).Msg("perft mismatch")
		os.Exit(1)
	}
	log.Info().Uint64("nodes", got).Int("depth", depth).Msg("perft verified against dragontoothmg")
}
