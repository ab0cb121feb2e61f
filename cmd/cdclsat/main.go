// Command cdclsat reads a DIMACS CNF instance, runs the CDCL solver on
// it, and prints the result and search statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/satcore/cdcl/parsers"
	"github.com/satcore/cdcl/sat"
)

var (
	flagCPUProfile = flag.Bool("cpuprof", false, "save pprof CPU profile in cpuprof")
	flagMemProfile = flag.Bool("memprof", false, "save pprof memory profile in memprof")
	flagGzipped    = flag.Bool("gzip", false, "the instance file is gzip-compressed")
	flagVerbose    = flag.Bool("verbose", false, "print periodic search progress")
	flagConfLimit  = flag.Int64("conf-limit", 0, "stop after this many conflicts (0 = unlimited)")
	flagPropLimit  = flag.Int64("prop-limit", 0, "stop after this many propagations (0 = unlimited)")
	flagSeed       = flag.Uint64("seed", 1, "random seed used for random polarity choices")
)

type config struct {
	instanceFile string
	gzipped      bool
	memProfile   bool
	cpuProfile   bool
	opts         sat.Options
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}

	opts := sat.DefaultOptions
	opts.Verbose = *flagVerbose
	opts.ConflictLimit = *flagConfLimit
	opts.PropagationLimit = *flagPropLimit
	opts.RandomSeed = *flagSeed

	return &config{
		instanceFile: flag.Arg(0),
		gzipped:      *flagGzipped,
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		opts:         opts,
	}, nil
}

func run(cfg *config) error {
	s := sat.NewSolver(cfg.opts)

	if err := parsers.LoadDIMACS(cfg.instanceFile, cfg.gzipped, s); err != nil {
		return fmt.Errorf("could not load instance: %s", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumConstraints())

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)

	stats := s.Stats()
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", stats.TotalConflicts, float64(stats.TotalConflicts)/elapsed.Seconds())
	fmt.Printf("c restarts:   %d\n", stats.TotalRestarts)
	fmt.Printf("c learnts:    %d\n", stats.NumLearntClauses)
	fmt.Printf("s %s\n", status.String())

	if status == sat.Satisfiable {
		for v := 0; v < s.NumVariables(); v++ {
			if s.ReadModel(sat.Var(v)) {
				fmt.Printf("v %d\n", v+1)
			} else {
				fmt.Printf("v -%d\n", v+1)
			}
		}
	}

	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
