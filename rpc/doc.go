// Package rpc provides the minimal batch RPC of cbench: one client sends a batch
// of employee records in a single request and the server acknowledges how many
// records it received.
//
// The package is organized into several subpackages:
//
//   - common: Method ids, reply status, the Ack reply, configuration structures
//     and logging shared by client, server and transports.
//
//   - transport: Network communication abstractions with pluggable implementations
//     (TCP, Unix sockets, HTTP).
//
//   - client: The SendEmployees client, every call is returned as a future (Call).
//
//   - server: The SendEmployees server including its metrics endpoint.
//
// The request payload is the size-delimited protobuf batch produced by the proto
// codec, the reply is the acknowledgment message of the same schema.
package rpc
