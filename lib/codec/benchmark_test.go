package codec

import (
	"testing"

	"github.com/ValentinKolb/cbench/lib/record"
)

// benchmarkBatches returns a set of batches for targeted benchmarking
func benchmarkBatches() map[string]record.Batch {
	return map[string]record.Batch{
		"Empty":  {},
		"Sample": record.Sample(),
		"100":    record.Generate(100),
		"10000":  record.Generate(10000),
	}
}

// BenchmarkEncode benchmarks encoding for all codecs with various batch sizes
func BenchmarkEncode(b *testing.B) {
	batches := benchmarkBatches()

	for name, c := range testCodecs(b) {
		for batchName, batch := range batches {
			b.Run(name+"_"+batchName, func(b *testing.B) {
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := c.Encode(batch); err != nil {
						b.Fatalf("Failed to encode: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkDecode benchmarks decoding for all codecs with various batch sizes
func BenchmarkDecode(b *testing.B) {
	batches := benchmarkBatches()

	for name, c := range testCodecs(b) {
		for batchName, batch := range batches {
			b.Run(name+"_"+batchName, func(b *testing.B) {
				artifact, err := c.Encode(batch)
				if err != nil {
					b.Fatalf("Failed to encode: %v", err)
				}
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := c.Decode(artifact); err != nil {
						b.Fatalf("Failed to decode: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkSize reports the artifact size for all codecs with various batch sizes
func BenchmarkSize(b *testing.B) {
	batches := benchmarkBatches()

	for name, c := range testCodecs(b) {
		for batchName, batch := range batches {
			b.Run(name+"_"+batchName, func(b *testing.B) {
				artifact, err := c.Encode(batch)
				if err != nil {
					b.Fatalf("Failed to encode: %v", err)
				}
				b.ReportMetric(float64(artifact.Size()), "bytes")
				b.ReportMetric(float64(artifact.Size())/float64(max(batch.Len(), 1)), "bytes/record")
			})
		}
	}
}
