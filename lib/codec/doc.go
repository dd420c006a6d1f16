// Package codec provides the batch encodings compared by the benchmark harness.
// It defines a common interface and one implementation per artifact format.
//
// Key Components:
//
//   - ICodec: Core interface that all codec implementations must satisfy. A codec
//     turns a record.Batch into an Artifact and back.
//
//   - jsonCodecImpl: Structured text. The artifact is {"employee":[...]}, either compact
//     or indented by a configurable number of spaces. Decoding ignores indentation.
//
//   - xmlCodecImpl: Markup. All records are wrapped in a single <root> element with one
//     <employee> child per record. Decoding is lenient about whitespace only.
//
//   - protoCodecImpl: Schema-binary. Encoding is driven by a schema loaded at runtime
//     (see package schema). Batches are validated against the declared field kinds before
//     anything is written, and the message is framed with a varint length prefix so that
//     an empty batch still produces a non-empty artifact and truncation is detected.
//
// Thread Safety:
//
//	All codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	c := codec.NewProtoCodec(s)
//	artifact, err := c.Encode(batch)
//	// ... store artifact.Data ...
//	decoded, err := c.Decode(codec.NewArtifact(c.Format(), data))
package codec
