package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog/log"

	gm "minimax-chess/chessmg"
	"minimax-chess/engine"
	"minimax-chess/internal/cliutil"
)

// suite is searched when no -fen is given.
var suite = []string{
	gm.FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
}

func main() {
	depthFlag := flag.Int("depth", cliutil.EnvInt(cliutil.EnvDepth, 3), "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run per position")
	fenFlag := flag.String("fen", "", "FEN to search (empty = built-in suite)")
	ttBits := flag.Int("tt-bits", cliutil.EnvInt(cliutil.EnvTTBits, engine.DefaultConfig().TTBits), "transposition table size as a power of two")
	workers := flag.Int("workers", 1, "root workers (1 = sequential search)")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	logLevel := flag.String("log-level", cliutil.EnvString(cliutil.EnvLogLevel, "info"), "zerolog level")
	flag.Parse()

	logger, err := cliutil.NewLogger(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", *logLevel).Msg("bad log level")
	}
	log.Logger = logger

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}

	cfg := engine.DefaultConfig()
	cfg.TTBits = *ttBits
	cfg.Workers = *workers
	searcher, err := engine.NewSearcher(cfg, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("engine config")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fens := suite
	if *fenFlag != "" {
		fens = []string{*fenFlag}
	}

	fmt.Printf("searchbench: positions=%d depth=%d repeat=%d workers=%d\n", len(fens), *depthFlag, *repeatFlag, *workers)

	var total engine.CutStatistics
	startAll := time.Now()
	for _, fen := range fens {
		board, err := gm.ParseBoard(fen)
		if err != nil {
			log.Fatal().Err(err).Str("fen", fen).Msg("parse fen")
		}
		for i := 0; i < *repeatFlag; i++ {
			searcher.NewGame()

			iterStart := time.Now()
			var r engine.Result
			var ok bool
			if *workers > 1 {
				r, ok, err = searcher.ParallelBestMove(context.Background(), board, *depthFlag)
				if err != nil {
					log.Fatal().Err(err).Msg("parallel search")
				}
			} else {
				r, ok = searcher.BestMove(board, *depthFlag)
			}
			iterElapsed := time.Since(iterStart)
			if !ok {
				fmt.Printf("%s: no legal move\n", fen)
				continue
			}

			st := searcher.Stats()
			total.Nodes += st.Nodes
			total.TTCutoffs += st.TTCutoffs
			total.BetaCutoffs += st.BetaCutoffs
			fmt.Printf("iteration %d: bestmove %v score %d nodes %d tt-cuts %d beta-cuts %d hit-rate %.2f time=%v\n",
				i+1, r.Move, r.Score, st.Nodes, st.TTCutoffs, st.BetaCutoffs, st.HitRate(), iterElapsed)
		}
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total: nodes %d tt-cuts %d beta-cuts %d time %v nps %.0f\n",
		total.Nodes, total.TTCutoffs, total.BetaCutoffs, totalElapsed, float64(total.Nodes)/totalElapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}
