// Package record provides the in-memory data model shared by every codec, the
// benchmark harness and the RPC layer.
//
// The package focuses on:
//   - A plain value type for a single employee record
//   - An ordered batch of records that is never mutated once built
//   - Structural equality between an original and a decoded batch
//
// Key Components:
//
//   - Record: Comparable value type with the eight fields of the employee schema.
//
//   - Batch: Ordered slice of records. Codecs and the harness only read a batch
//     or produce a new one.
//
//   - Verify / Diff: Round-trip verification used after every decode to assert
//     that a codec is lossless. Numbers compare by value, text compares exactly.
//
//   - Sample / Generate / LoadFile: Sources for the batch under test.
package record
