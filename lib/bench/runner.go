package bench

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/ValentinKolb/cbench/lib/artifact"
	"github.com/ValentinKolb/cbench/lib/codec"
	"github.com/ValentinKolb/cbench/lib/record"
	"github.com/lni/dragonboat/v4/logger"
)

// Logger is the logger used by the benchmark runner
var Logger = logger.GetLogger("bench")

// Result holds everything measured for one codec in one run
type Result struct {
	// Codec is the name of the measured codec
	Codec string
	// Format is the artifact format of the codec
	Format string
	// Records is the number of records in the benchmarked batch
	Records int
	// EncodeMean and DecodeMean are the mean latencies over all rounds
	EncodeMean time.Duration
	DecodeMean time.Duration
	// Encode and Decode summarize the per-round means
	Encode Stats
	Decode Stats
	// Size is the artifact size in bytes
	Size int
	// Verified reports whether the in-memory round trip was lossless
	Verified bool
	// Mismatch describes the first difference if Verified is false
	Mismatch string
	// Persisted reports whether the artifact was written to the store
	Persisted bool
	// PersistVerified reports whether the stored artifact came back byte-identical
	// and decoded to the same batch
	PersistVerified bool
	// Location is where the artifact was stored
	Location string
	// Err is set if the pass for this codec was aborted
	Err error
}

// Ok reports whether the pass completed and every check passed
func (r Result) Ok() bool {
	return r.Err == nil && r.Verified && (!r.Persisted || r.PersistVerified)
}

// Runner benchmarks codecs against a batch
type Runner struct {
	config Config
	store  artifact.IStore
}

// NewRunner creates a runner. A nil store disables the persistence check.
func NewRunner(config Config, store artifact.IStore) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Runner{config: config, store: store}, nil
}

// Run benchmarks every codec in order and returns one result per codec.
// A failing codec does not stop the remaining ones.
func (r *Runner) Run(batch record.Batch, codecs ...codec.ICodec) []Result {
	results := make([]Result, 0, len(codecs))
	for _, c := range codecs {
		res := r.RunCodec(batch, c)
		if res.Err != nil {
			Logger.Errorf("%s: %v", res.Codec, res.Err)
		} else {
			Logger.Infof("%s: encode %v, decode %v, %d bytes, verified=%v persisted=%v",
				res.Codec, res.EncodeMean, res.DecodeMean, res.Size, res.Verified, res.PersistVerified)
		}
		results = append(results, res)
	}
	return results
}

// RunCodec benchmarks a single codec
func (r *Runner) RunCodec(batch record.Batch, c codec.ICodec) Result {
	res := Result{Codec: c.Name(), Format: c.Format(), Records: batch.Len()}

	encodeSamples := make([]time.Duration, 0, r.config.Rounds)
	decodeSamples := make([]time.Duration, 0, r.config.Rounds)

	var art codec.Artifact
	var decoded record.Batch
	for round := 0; round < r.config.Rounds; round++ {
		mean, a, err := MeasureResult(func() (codec.Artifact, error) {
			return c.Encode(batch)
		}, r.config.Iterations)
		if err != nil {
			res.Err = fmt.Errorf("encode: %w", err)
			return res
		}
		art = a
		encodeSamples = append(encodeSamples, mean)

		// decode always works on an artifact produced outside of the timed region
		mean, d, err := MeasureResult(func() (record.Batch, error) {
			return c.Decode(art)
		}, r.config.Iterations)
		if err != nil {
			res.Err = fmt.Errorf("decode: %w", err)
			return res
		}
		decoded = d
		decodeSamples = append(decodeSamples, mean)
	}

	res.Encode = NewStats(encodeSamples)
	res.Decode = NewStats(decodeSamples)
	res.EncodeMean = res.Encode.Mean
	res.DecodeMean = res.Decode.Mean
	res.Size = art.Size()

	res.Verified = record.Verify(batch, decoded)
	if !res.Verified {
		res.Mismatch = record.Diff(batch, decoded)
	}

	if r.store == nil {
		return res
	}
	if err := r.persist(&res, c, art, decoded); err != nil {
		res.Err = err
	}
	return res
}

// persist stores the artifact, reads it back and compares both the bytes and the
// decoded batch against the in-memory results
func (r *Runner) persist(res *Result, c codec.ICodec, art codec.Artifact, decoded record.Batch) error {
	name := ArtifactName(c, art)

	location, err := r.store.Put(name, art.Data)
	if err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	res.Persisted = true
	res.Location = location

	data, err := r.store.Get(name)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	reloaded, err := c.Decode(codec.NewArtifact(c.Format(), data))
	if err != nil {
		return fmt.Errorf("decode stored artifact: %w", err)
	}

	res.PersistVerified = bytes.Equal(art.Data, data) && record.Verify(decoded, reloaded)
	if !res.PersistVerified && res.Mismatch == "" {
		res.Mismatch = "stored artifact differs: " + record.Diff(decoded, reloaded)
	}
	return nil
}

// ArtifactName returns the storage name of a codec's artifact, e.g. "data.json",
// "data.indent2.json", "data.xml" or "data.bin"
func ArtifactName(c codec.ICodec, art codec.Artifact) string {
	variant := strings.TrimPrefix(c.Name(), c.Format())
	variant = strings.TrimPrefix(variant, "-")
	if variant == "" {
		return "data" + art.Extension()
	}
	return "data." + variant + art.Extension()
}
