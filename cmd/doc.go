// Package cmd implements the command-line interface of cbench.
//
// The package is organized into several subpackages:
//
//   - bench: Runs the codec benchmark and prints the report
//   - serve: Starts the SendEmployees server
//   - send: Sends a batch to a server and prints the reply and round-trip time
//   - selftest: Starts a server in-process, sends one batch and shuts it down
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set with an environment variable CBENCH_<FLAG>
// (e.g. CBENCH_LOG_LEVEL=debug), .env and .env.local are loaded on start.
// See cbench -help for a list of all commands.
package cmd
