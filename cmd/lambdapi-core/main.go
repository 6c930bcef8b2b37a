// Command lambdapi-core is a small driver over the core engine: it
// loads a persisted signature (a YAML export or a sqlite snapshot
// store, both from internal/sig), replays a batch of commands against
// it (internal/command), and reports each command's result, optionally
// saving the resulting signature back out.
//
// This is not the surface language described elsewhere in this
// module's design notes — there is no parser here. A batch file is a
// YAML document of already-elaborated term records (see
// internal/command's CommandRecord), the same shape a signature
// loader would hand the core after parsing and elaboration.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lambdapi-core/engine/internal/command"
	"github.com/lambdapi-core/engine/internal/config"
	"github.com/lambdapi-core/engine/internal/debugtrace"
	"github.com/lambdapi-core/engine/internal/normal"
	"github.com/lambdapi-core/engine/internal/sig"
)

func main() {
	var (
		sigPath      = flag.String("sig", "", "path to a YAML signature snapshot to load before running the batch")
		dbPath       = flag.String("db", "", "path to a sqlite signature store to load the latest snapshot from")
		snapshotID   = flag.String("snapshot", "", "snapshot id to load from -db (defaults to the latest one)")
		batchPath    = flag.String("batch", "", "path to a YAML command batch to replay")
		saveYAML     = flag.String("save-sig", "", "write the resulting signature to this YAML file after the batch runs")
		saveDB       = flag.String("save-db", "", "save the resulting signature as a new snapshot in this sqlite store")
		strategyName = flag.String("strategy", "whnf", "default evaluation strategy for eval commands without their own override (whnf, hnf, snf)")
		traceReduce  = flag.Bool("trace-reduction", false, "log each eval command's before/after term")
		traceConv    = flag.Bool("trace-conversion", false, "log each eq_modulo command's verdict")
		noColor      = flag.Bool("no-color", false, "disable colorized result output even on a terminal")
	)
	flag.Parse()

	if *batchPath == "" {
		fmt.Fprintln(os.Stderr, "lambdapi-core: -batch is required")
		flag.Usage()
		os.Exit(2)
	}

	sg, err := loadSignature(*sigPath, *dbPath, *snapshotID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lambdapi-core: %s\n", err)
		os.Exit(1)
	}

	strategy, err := parseStrategy(*strategyName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lambdapi-core: %s\n", err)
		os.Exit(1)
	}

	s := command.State{
		Signature: sg,
		Eval:      normal.Config{Strategy: strategy},
		Tracer: debugtrace.NewTracer(debugtrace.Flags{
			TraceReduction:  *traceReduce,
			TraceConversion: *traceConv,
		}, os.Stderr, nil),
	}

	rec, err := command.LoadBatchYAMLFile(*batchPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lambdapi-core: loading batch: %s\n", err)
		os.Exit(1)
	}

	color := !*noColor && isatty.IsTerminal(os.Stdout.Fd())
	s, results, runErr := command.RunBatch(s, rec)
	for i, r := range results {
		printResult(i, r, color)
	}

	if *saveYAML != "" {
		if err := s.Signature.WriteYAMLFile(*saveYAML); err != nil {
			fmt.Fprintf(os.Stderr, "lambdapi-core: saving signature to %s: %s\n", *saveYAML, err)
			os.Exit(1)
		}
	}
	if *saveDB != "" {
		if err := saveToStore(*saveDB, s.Signature); err != nil {
			fmt.Fprintf(os.Stderr, "lambdapi-core: saving signature to %s: %s\n", *saveDB, err)
			os.Exit(1)
		}
	}

	if runErr != nil {
		os.Exit(1)
	}
}

func loadSignature(sigPath, dbPath, snapshotID string) (*sig.Signature, error) {
	switch {
	case dbPath != "":
		st, err := sig.OpenStore(dbPath)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", dbPath, err)
		}
		defer st.Close()
		id := snapshotID
		if id == "" {
			id, err = st.LatestSnapshotID()
			if err != nil {
				return nil, fmt.Errorf("finding latest snapshot in %s: %w", dbPath, err)
			}
		}
		return st.LoadSnapshot(id)
	case sigPath != "":
		return sig.ReadYAMLFile(sigPath)
	default:
		return sig.NewSignature(), nil
	}
}

func saveToStore(path string, sg *sig.Signature) error {
	st, err := sig.OpenStore(path)
	if err != nil {
		return err
	}
	defer st.Close()
	_, err = st.SaveSnapshot(sg)
	return err
}

func parseStrategy(name string) (normal.Strategy, error) {
	switch name {
	case config.StrategyWhnf:
		return normal.StrategyWhnf, nil
	case config.StrategyHnf:
		return normal.StrategyHnf, nil
	case config.StrategySnf:
		return normal.StrategySnf, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (want one of %s, %s, %s)",
			name, config.StrategyWhnf, config.StrategyHnf, config.StrategySnf)
	}
}

func printResult(i int, r *command.Result, color bool) {
	if r.IsError() {
		fmt.Fprintln(os.Stdout, paint(color, 31, fmt.Sprintf("[%d] error: %s", i, r.Err)))
		return
	}
	if r == nil {
		return
	}
	prefix := fmt.Sprintf("[%d]", i)
	if r.Position != nil {
		prefix = fmt.Sprintf("[%d:%d:%d]", i, r.Position.Line, r.Position.Column)
	}
	fmt.Fprintln(os.Stdout, paint(color, 32, prefix+" "+r.Message))
}

func paint(color bool, code int, s string) string {
	if !color {
		return s
	}
	return fmt.Sprintf("\033[%dm%s\033[0m", code, s)
}
