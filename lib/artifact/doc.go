// Package artifact persists encoded artifacts so the benchmark can verify that
// they survive a store and retrieve cycle unchanged.
//
// Every benchmark run gets its own namespace, identified by a ksuid run id. Three
// IStore implementations are available:
//
//   - fsStoreImpl: one file per artifact in <dir>/<run>/<name>
//   - pebbleStoreImpl: one key per artifact in a pebble database shared by all runs
//   - memStoreImpl: an in-memory map, used when nothing should be written to disk
//
// Stores are safe for concurrent use.
package artifact
