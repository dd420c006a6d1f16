package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ValentinKolb/cbench/lib/bench"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned for an output format other than table, json or yaml
var ErrUnknownFormat = errors.New("unknown report format")

// Benchmark is the serializable summary of one benchmark run
type Benchmark struct {
	RunID      string `json:"run_id" yaml:"run_id"`
	Iterations int    `json:"iterations" yaml:"iterations"`
	Rounds     int    `json:"rounds" yaml:"rounds"`
	Records    int    `json:"records" yaml:"records"`
	Codecs     []Row  `json:"codecs" yaml:"codecs"`
}

// Row holds the results of one codec
type Row struct {
	Codec           string      `json:"codec" yaml:"codec"`
	Format          string      `json:"format" yaml:"format"`
	EncodeNs        int64       `json:"encode_mean_ns" yaml:"encode_mean_ns"`
	DecodeNs        int64       `json:"decode_mean_ns" yaml:"decode_mean_ns"`
	Encode          bench.Stats `json:"encode" yaml:"encode"`
	Decode          bench.Stats `json:"decode" yaml:"decode"`
	SizeBytes       int         `json:"size_bytes" yaml:"size_bytes"`
	Verified        bool        `json:"verified" yaml:"verified"`
	PersistVerified bool        `json:"persist_verified" yaml:"persist_verified"`
	Location        string      `json:"location,omitempty" yaml:"location,omitempty"`
	Mismatch        string      `json:"mismatch,omitempty" yaml:"mismatch,omitempty"`
	Error           string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewBenchmark converts runner results into a report
func NewBenchmark(runID string, config bench.Config, records int, results []bench.Result) Benchmark {
	b := Benchmark{
		RunID:      runID,
		Iterations: config.Iterations,
		Rounds:     config.Rounds,
		Records:    records,
		Codecs:     make([]Row, 0, len(results)),
	}
	for _, r := range results {
		row := Row{
			Codec:           r.Codec,
			Format:          r.Format,
			EncodeNs:        r.EncodeMean.Nanoseconds(),
			DecodeNs:        r.DecodeMean.Nanoseconds(),
			Encode:          r.Encode,
			Decode:          r.Decode,
			SizeBytes:       r.Size,
			Verified:        r.Verified,
			PersistVerified: r.PersistVerified,
			Location:        r.Location,
			Mismatch:        r.Mismatch,
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		b.Codecs = append(b.Codecs, row)
	}
	return b
}

// Write renders the benchmark report in the given format
func Write(w io.Writer, format string, b Benchmark) error {
	switch strings.ToLower(format) {
	case FormatTable, "markdown", "md", "":
		return generateTable(w, b)
	case FormatJSON:
		return generateJSON(w, b)
	case FormatYAML, "yml":
		return generateYAML(w, b)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func generateTable(w io.Writer, b Benchmark) error {
	if len(b.Codecs) == 0 {
		return fmt.Errorf("no results to report")
	}

	smallest := findSmallest(b.Codecs)

	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run %s: %d records, %d iterations x %d rounds\n", b.RunID, b.Records, b.Iterations, b.Rounds)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Codec | Encode | Decode | Size | Size Ratio | Round Trip | Persisted |")
	fmt.Fprintln(w, "|-------|--------|--------|------|------------|------------|-----------|")

	for _, r := range b.Codecs {
		if r.Error != "" {
			fmt.Fprintf(w, "| %s | - | - | - | - | FAILED | - |\n", r.Codec)
			continue
		}

		ratio := "-"
		if smallest > 0 {
			ratio = fmt.Sprintf("%.2fx", float64(r.SizeBytes)/float64(smallest))
		}

		persisted := "-"
		if r.Location != "" {
			persisted = passFail(r.PersistVerified)
		}

		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s |\n",
			r.Codec,
			formatDuration(time.Duration(r.EncodeNs)),
			formatDuration(time.Duration(r.DecodeNs)),
			formatBytes(r.SizeBytes),
			ratio,
			passFail(r.Verified),
			persisted,
		)
	}

	if b.Rounds > 1 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Codec | Encode Min | Encode Max | Encode StdDev | Decode Min | Decode Max | Decode StdDev |")
		fmt.Fprintln(w, "|-------|------------|------------|---------------|------------|------------|---------------|")
		for _, r := range b.Codecs {
			if r.Error != "" {
				continue
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s |\n",
				r.Codec,
				formatDuration(r.Encode.Min),
				formatDuration(r.Encode.Max),
				formatDuration(r.Encode.StdDev),
				formatDuration(r.Decode.Min),
				formatDuration(r.Decode.Max),
				formatDuration(r.Decode.StdDev),
			)
		}
	}

	var problems []string
	for _, r := range b.Codecs {
		if r.Error != "" {
			problems = append(problems, fmt.Sprintf("  - %s: %s", r.Codec, r.Error))
		} else if r.Mismatch != "" {
			problems = append(problems, fmt.Sprintf("  - %s: %s", r.Codec, r.Mismatch))
		}
	}
	if len(problems) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Problems:")
		for _, p := range problems {
			fmt.Fprintln(w, p)
		}
	}

	locations := make([]string, 0, len(b.Codecs))
	for _, r := range b.Codecs {
		if r.Location != "" {
			locations = append(locations, fmt.Sprintf("  - %s: %s", r.Codec, r.Location))
		}
	}
	if len(locations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Artifacts:")
		for _, l := range locations {
			fmt.Fprintln(w, l)
		}
	}

	return nil
}

func generateJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func generateYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// findSmallest returns the smallest artifact size of all successful codecs
func findSmallest(rows []Row) int {
	smallest := 0
	for _, r := range rows {
		if r.Error != "" || r.SizeBytes == 0 {
			continue
		}
		if smallest == 0 || r.SizeBytes < smallest {
			smallest = r.SizeBytes
		}
	}
	return smallest
}

func passFail(ok bool) string {
	if ok {
		return "OK"
	}
	return "MISMATCH"
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

func formatBytes(b int) string {
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(b)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d B", b)
	}

	formatted := fmt.Sprintf("%.1f", size)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")

	return formatted + " " + units[unit]
}
