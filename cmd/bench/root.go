package bench

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/cbench/cmd/util"
	"github.com/ValentinKolb/cbench/lib/artifact"
	libBench "github.com/ValentinKolb/cbench/lib/bench"
	"github.com/ValentinKolb/cbench/lib/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	BenchCmd = &cobra.Command{
		Use:     "bench",
		Short:   "Benchmark the codecs on a batch of employees",
		Long:    `Encode and decode the batch with every selected codec, measure the mean latencies and the artifact size, check that the round trip is lossless and that the artifact survives being stored and read back.`,
		PreRunE: util.BindCommandFlags,
		RunE:    run,
	}
)

func init() {
	key := "iterations"
	BenchCmd.Flags().Int(key, libBench.DefaultIterations, util.WrapString("Number of encode and decode calls per measurement"))

	key = "rounds"
	BenchCmd.Flags().Int(key, libBench.DefaultRounds, util.WrapString("How often every measurement is repeated, with more than one round the report includes stddev, min, max and median"))

	key = "codecs"
	BenchCmd.Flags().String(key, "json,xml,proto", util.WrapString("Comma separated list of codecs to benchmark (json, xml, proto)"))

	key = "json-indent"
	BenchCmd.Flags().String(key, "0,2", util.WrapString("Comma separated list of JSON indents, one json codec is benchmarked per entry (0 is compact)"))

	key = "store"
	BenchCmd.Flags().String(key, "fs", util.WrapString("Where artifacts are persisted for the fidelity check (fs, pebble, memory, none)"))

	key = "out-dir"
	BenchCmd.Flags().String(key, "artifacts", util.WrapString("Directory of the fs and pebble stores, every run gets its own namespace"))

	key = "report-format"
	BenchCmd.Flags().String(key, report.FormatTable, util.WrapString("Output format (table, json, yaml)"))

	util.SetupDataFlags(BenchCmd)
}

func run(_ *cobra.Command, _ []string) error {
	s, err := util.GetSchema()
	if err != nil {
		return err
	}

	batch, err := util.GetBatch()
	if err != nil {
		return err
	}

	codecs, err := util.GetCodecs(s)
	if err != nil {
		return err
	}

	config := libBench.Config{
		Iterations: viper.GetInt("iterations"),
		Rounds:     viper.GetInt("rounds"),
	}

	runID := artifact.NewRunID()
	store, err := newStore(viper.GetString("store"), viper.GetString("out-dir"), runID)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	runner, err := libBench.NewRunner(config, store)
	if err != nil {
		return err
	}

	util.Logger.Infof("Run %s: %d records, %d codecs", runID, len(batch), len(codecs))
	util.Logger.Debugf("%s", config.String())

	results := runner.Run(batch, codecs...)
	if err := report.Write(os.Stdout, viper.GetString("report-format"), report.NewBenchmark(runID, config, len(batch), results)); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Ok() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d codecs failed", failed, len(results))
	}
	return nil
}

// newStore creates the artifact store by name, "none" disables persistence
func newStore(name, dir, runID string) (artifact.IStore, error) {
	switch name {
	case "fs":
		return artifact.NewFSStore(dir, runID)
	case "pebble":
		return artifact.NewPebbleStore(dir, runID)
	case "memory":
		return artifact.NewMemoryStore(runID), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("invalid store %s (expected one of: fs, pebble, memory, none)", name)
	}
}
